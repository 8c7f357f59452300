// Package embedding defines the vector generator contract consumed by the index,
// plus local generators for tests, tooling, and caching.
package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperjump/embedkit/internal/models"
	"github.com/hyperjump/embedkit/internal/vector"
)

// ErrVectorCountMismatch is returned when a generator does not return one vector per input text.
var ErrVectorCountMismatch = errors.New("generator returned wrong number of vectors")

// Generator produces one vector per input text, in input order.
// Implementations may block on I/O; callers own timeouts through ctx.
type Generator interface {
	Generate(ctx context.Context, texts []string, model string) ([]vector.Vector, error)
}

// ResultGenerator is implemented by generators that can report usage alongside the vectors.
type ResultGenerator interface {
	Generator
	GenerateResult(ctx context.Context, texts []string, model string) (*models.EmbeddingResult, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, texts []string, model string) ([]vector.Vector, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, texts []string, model string) ([]vector.Vector, error) {
	return f(ctx, texts, model)
}

// GenerateSingle generates the vector for a single text.
func GenerateSingle(ctx context.Context, gen Generator, text, model string) (vector.Vector, error) {
	vecs, err := gen.Generate(ctx, []string{text}, model)
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("%w: got %d, want 1", ErrVectorCountMismatch, len(vecs))
	}
	return vecs[0], nil
}

// Embed runs one generation call and wraps the output in an EmbeddingResult.
func Embed(ctx context.Context, gen Generator, texts []string, model string) (*models.EmbeddingResult, error) {
	if rg, ok := gen.(ResultGenerator); ok {
		res, err := rg.GenerateResult(ctx, texts, model)
		if err != nil {
			return nil, err
		}
		if len(res.Data) != len(texts) {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrVectorCountMismatch, len(res.Data), len(texts))
		}
		return res, nil
	}
	vecs, err := gen.Generate(ctx, texts, model)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVectorCountMismatch, len(vecs), len(texts))
	}
	return models.NewEmbeddingResult(model, vecs, nil), nil
}
