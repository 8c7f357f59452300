package models

import (
	"errors"
	"fmt"
)

// DefaultTopK is the result count callers use when none is configured.
const DefaultTopK = 5

var (
	// ErrEmptyQuery is returned when a search has no query text.
	ErrEmptyQuery = errors.New("query cannot be empty")
	// ErrInvalidThreshold is returned when a similarity threshold is outside [-1, 1].
	ErrInvalidThreshold = errors.New("similarity threshold must be within [-1, 1]")
)

// SearchQuery is a semantic search request.
type SearchQuery struct {
	Query               string  `json:"query"`
	Model               string  `json:"model"`
	TopK                int     `json:"top_k,omitempty"`
	SimilarityThreshold float64 `json:"similarity_threshold,omitempty"`
}

// Validate checks the query. TopK is taken as given; a non-positive value matches nothing.
func (q *SearchQuery) Validate() error {
	if q.Query == "" {
		return ErrEmptyQuery
	}
	if q.SimilarityThreshold < -1 || q.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidThreshold, q.SimilarityThreshold)
	}
	return nil
}
