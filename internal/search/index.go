// Package search provides an in-memory semantic index with ranked nearest-neighbor search.
package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/hyperjump/embedkit/internal/embedding"
	"github.com/hyperjump/embedkit/internal/models"
	"github.com/hyperjump/embedkit/internal/vector"
	"go.uber.org/zap"
)

// SemanticIndex is an append-only corpus of (text, vector) pairs searched by cosine
// similarity with a linear scan. Insertion position is the document identity.
//
// A SemanticIndex is not safe for concurrent use. Callers that share one across
// goroutines must serialize AddDocuments, Search, and Clear themselves.
type SemanticIndex struct {
	docs       []models.Document
	dimensions int
	logger     *zap.Logger
}

// Option configures a SemanticIndex.
type Option func(*SemanticIndex)

// WithLogger sets a logger for debug output and model mismatch warnings.
func WithLogger(l *zap.Logger) Option {
	return func(s *SemanticIndex) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSemanticIndex creates an empty index.
func NewSemanticIndex(opts ...Option) *SemanticIndex {
	s := &SemanticIndex{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddDocuments generates vectors for texts with a single generator call and appends the
// pairs in order. The batch is appended entirely or not at all.
func (s *SemanticIndex) AddDocuments(ctx context.Context, gen embedding.Generator, texts []string, model string) error {
	if len(texts) == 0 {
		return nil
	}
	vecs, err := gen.Generate(ctx, texts, model)
	if err != nil {
		return fmt.Errorf("generate document vectors: %w", err)
	}
	if len(vecs) != len(texts) {
		return fmt.Errorf("%w: got %d, want %d", embedding.ErrVectorCountMismatch, len(vecs), len(texts))
	}

	dim := s.dimensions
	if len(s.docs) == 0 {
		dim = len(vecs[0])
	}
	for i, v := range vecs {
		if len(v) != dim {
			return fmt.Errorf("%w: document %d has %d dimensions, index has %d", vector.ErrDimensionMismatch, i, len(v), dim)
		}
	}

	for i, text := range texts {
		s.docs = append(s.docs, models.Document{Text: text, Vector: vecs[i].Clone(), Model: model})
	}
	s.dimensions = dim
	s.logger.Debug("documents added",
		zap.Int("count", len(texts)),
		zap.Int("size", len(s.docs)),
		zap.String("model", model),
	)
	return nil
}

// Search generates a vector for q.Query and returns at most q.TopK of the closest documents.
// An empty index returns an empty result without validating q or calling the generator.
func (s *SemanticIndex) Search(ctx context.Context, gen embedding.Generator, q *models.SearchQuery) ([]*models.SearchResult, error) {
	if len(s.docs) == 0 {
		return []*models.SearchResult{}, nil
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	s.checkModel(q.Model)

	queryVec, err := embedding.GenerateSingle(ctx, gen, q.Query, q.Model)
	if err != nil {
		return nil, fmt.Errorf("generate query vector: %w", err)
	}
	return s.SearchVector(queryVec, q.TopK, q.SimilarityThreshold)
}

// SearchVector ranks every document by cosine similarity to query, drops those below
// threshold, and returns at most topK results. Ties keep insertion order.
func (s *SemanticIndex) SearchVector(query vector.Vector, topK int, threshold float64) ([]*models.SearchResult, error) {
	results := make([]*models.SearchResult, 0, len(s.docs))
	if topK <= 0 {
		return results, nil
	}
	for i, doc := range s.docs {
		sim, err := vector.CosineSimilarity(query, doc.Vector)
		if err != nil {
			return nil, fmt.Errorf("compare with document %d: %w", i, err)
		}
		if sim < threshold {
			continue
		}
		results = append(results, &models.SearchResult{Document: doc.Text, Similarity: sim, Index: i})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Index < results[j].Index
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Clear removes every document.
func (s *SemanticIndex) Clear() {
	s.docs = nil
	s.dimensions = 0
}

// Len returns the number of indexed documents.
func (s *SemanticIndex) Len() int {
	return len(s.docs)
}

// Dimensions returns the vector dimension of the corpus, or 0 when empty.
func (s *SemanticIndex) Dimensions() int {
	return s.dimensions
}

// Documents returns a copy of the corpus in insertion order.
func (s *SemanticIndex) Documents() []models.Document {
	out := make([]models.Document, len(s.docs))
	for i, d := range s.docs {
		d.Vector = d.Vector.Clone()
		out[i] = d
	}
	return out
}

// Models returns the distinct generator models in the corpus, in first-seen order.
func (s *SemanticIndex) Models() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range s.docs {
		if !seen[d.Model] {
			seen[d.Model] = true
			out = append(out, d.Model)
		}
	}
	return out
}

// checkModel warns when the query model was not used for any indexed document.
// Mixed models are allowed; their similarities are just not meaningful.
func (s *SemanticIndex) checkModel(model string) {
	indexed := s.Models()
	for _, m := range indexed {
		if m == model {
			return
		}
	}
	s.logger.Warn("query model differs from indexed models",
		zap.String("query_model", model),
		zap.Strings("indexed_models", indexed),
	)
}
