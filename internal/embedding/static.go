package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperjump/embedkit/internal/vector"
)

// ErrUnknownText is returned by StaticGenerator for a text it has no vector for.
var ErrUnknownText = errors.New("no vector for text")

// StaticGenerator serves precomputed vectors from a lookup table. Texts missing from the
// table are sent to Fallback in a single call, or fail with ErrUnknownText when it is nil.
type StaticGenerator struct {
	vectors  map[string]vector.Vector
	Fallback Generator
}

// NewStaticGenerator builds a generator from parallel texts and vectors.
// A later duplicate text overwrites an earlier one.
func NewStaticGenerator(texts []string, vectors []vector.Vector) (*StaticGenerator, error) {
	if len(texts) != len(vectors) {
		return nil, fmt.Errorf("%w: %d texts, %d vectors", ErrVectorCountMismatch, len(texts), len(vectors))
	}
	g := &StaticGenerator{vectors: make(map[string]vector.Vector, len(texts))}
	for i, text := range texts {
		g.vectors[text] = vectors[i].Clone()
	}
	return g, nil
}

// Set adds or replaces the vector for text.
func (g *StaticGenerator) Set(text string, v vector.Vector) {
	if g.vectors == nil {
		g.vectors = make(map[string]vector.Vector)
	}
	g.vectors[text] = v.Clone()
}

// Len returns the number of texts in the table.
func (g *StaticGenerator) Len() int {
	return len(g.vectors)
}

// Generate returns copies of the stored vectors in input order.
func (g *StaticGenerator) Generate(ctx context.Context, texts []string, model string) ([]vector.Vector, error) {
	out := make([]vector.Vector, len(texts))
	var missing []string
	var missingAt []int
	for i, text := range texts {
		if v, ok := g.vectors[text]; ok {
			out[i] = v.Clone()
			continue
		}
		if g.Fallback == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownText, text)
		}
		missing = append(missing, text)
		missingAt = append(missingAt, i)
	}
	if len(missing) == 0 {
		return out, nil
	}
	vecs, err := g.Fallback.Generate(ctx, missing, model)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missing) {
		return nil, fmt.Errorf("%w: fallback returned %d, want %d", ErrVectorCountMismatch, len(vecs), len(missing))
	}
	for j, i := range missingAt {
		out[i] = vecs[j]
	}
	return out, nil
}
