package embedding

import (
	"context"
	"math"
	"strings"

	"github.com/hyperjump/embedkit/internal/models"
	"github.com/hyperjump/embedkit/internal/vector"
)

// DefaultHashDimensions is used when NewHashGenerator is given a non-positive dimension.
const DefaultHashDimensions = 384

// HashGenerator is a deterministic generator for tests and offline tooling. It derives a
// fixed-dimension unit vector from the text hash so that the same text always gets the
// same vector. The model name is recorded but does not affect the output.
type HashGenerator struct {
	dimensions int
}

// NewHashGenerator returns a generator producing vectors of the given dimension.
func NewHashGenerator(dimensions int) *HashGenerator {
	if dimensions <= 0 {
		dimensions = DefaultHashDimensions
	}
	return &HashGenerator{dimensions: dimensions}
}

// Generate returns one vector per text.
func (g *HashGenerator) Generate(ctx context.Context, texts []string, model string) ([]vector.Vector, error) {
	out := make([]vector.Vector, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = g.vectorFor(text)
	}
	return out, nil
}

// GenerateResult is Generate plus a whitespace token count as usage.
func (g *HashGenerator) GenerateResult(ctx context.Context, texts []string, model string) (*models.EmbeddingResult, error) {
	vecs, err := g.Generate(ctx, texts, model)
	if err != nil {
		return nil, err
	}
	tokens := 0
	for _, text := range texts {
		tokens += len(strings.Fields(text))
	}
	return models.NewEmbeddingResult(model, vecs, &models.Usage{PromptTokens: tokens, TotalTokens: tokens}), nil
}

// Dimensions returns the vector dimension.
func (g *HashGenerator) Dimensions() int {
	return g.dimensions
}

func (g *HashGenerator) vectorFor(text string) vector.Vector {
	h := HashString(text)
	v := make(vector.Vector, g.dimensions)
	for i := range v {
		v[i] = math.Sin(float64(h*(i+1)))*0.1 + 0.01
	}
	return vector.Normalize(v)
}

// HashString returns a non-negative 31-multiplier string hash.
func HashString(s string) int {
	h := 0
	for _, c := range s {
		h = 31*h + int(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
