package models

import "github.com/hyperjump/embedkit/internal/vector"

// EmbeddingVector is a single generated vector and its position in the batch.
type EmbeddingVector struct {
	Values vector.Vector `json:"embedding"`
	Index  int           `json:"index"`
}

// Usage is the token accounting a generator may report for one call.
type Usage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// EmbeddingResult is the output of one generation call. It is not modified after creation.
type EmbeddingResult struct {
	Data  []EmbeddingVector `json:"data"`
	Model string            `json:"model"`
	Usage *Usage            `json:"usage,omitempty"`
}

// NewEmbeddingResult wraps vectors in batch order.
func NewEmbeddingResult(model string, vectors []vector.Vector, usage *Usage) *EmbeddingResult {
	data := make([]EmbeddingVector, len(vectors))
	for i, v := range vectors {
		data[i] = EmbeddingVector{Values: v, Index: i}
	}
	return &EmbeddingResult{Data: data, Model: model, Usage: usage}
}

// Vectors returns the vectors ordered by their batch index.
func (r *EmbeddingResult) Vectors() []vector.Vector {
	out := make([]vector.Vector, len(r.Data))
	for i, d := range r.Data {
		if d.Index >= 0 && d.Index < len(out) {
			out[d.Index] = d.Values
		} else {
			out[i] = d.Values
		}
	}
	return out
}

// Dimensions returns the dimension of the first vector, or 0 when empty.
func (r *EmbeddingResult) Dimensions() int {
	if len(r.Data) == 0 {
		return 0
	}
	return len(r.Data[0].Values)
}
