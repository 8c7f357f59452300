// Package dataset loads text/vector files that feed the index and the clusterer from disk.
// Files are YAML; JSON is accepted as well since it is a YAML subset.
//
//	model: text-embedding-3-small
//	entries:
//	  - id: intro
//	    text: "getting started"
//	    vector: [0.12, -0.40, 0.88]
//	  - text: "no vector, generated on demand"
package dataset

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/hyperjump/embedkit/internal/embedding"
	"github.com/hyperjump/embedkit/internal/vector"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoEntries is returned for a dataset without entries.
	ErrNoEntries = errors.New("dataset has no entries")
	// ErrMissingText is returned for an entry without text.
	ErrMissingText = errors.New("dataset entry has no text")
)

// Entry is one text with an optional precomputed vector.
type Entry struct {
	ID     string        `yaml:"id" json:"id"`
	Text   string        `yaml:"text" json:"text"`
	Vector vector.Vector `yaml:"vector,omitempty" json:"vector,omitempty"`
}

// Dataset is an ordered list of entries and the model their vectors came from.
type Dataset struct {
	Model   string  `yaml:"model,omitempty" json:"model,omitempty"`
	Entries []Entry `yaml:"entries" json:"entries"`
}

// Load reads and parses the dataset file at path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes a dataset, assigns random IDs to entries without one, and checks that
// every precomputed vector has the same dimension.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if len(ds.Entries) == 0 {
		return nil, ErrNoEntries
	}
	var withVectors []vector.Vector
	for i := range ds.Entries {
		e := &ds.Entries[i]
		if e.Text == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrMissingText)
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if len(e.Vector) > 0 {
			withVectors = append(withVectors, e.Vector)
		}
	}
	if _, err := vector.CheckDimensions(withVectors); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Texts returns entry texts in order.
func (d *Dataset) Texts() []string {
	out := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.Text
	}
	return out
}

// IDs returns entry IDs in order.
func (d *Dataset) IDs() []string {
	out := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.ID
	}
	return out
}

// Dimensions returns the dimension of the precomputed vectors, or 0 when there are none.
func (d *Dataset) Dimensions() int {
	for _, e := range d.Entries {
		if len(e.Vector) > 0 {
			return len(e.Vector)
		}
	}
	return 0
}

// Generator serves the precomputed vectors and sends other texts to fallback.
func (d *Dataset) Generator(fallback embedding.Generator) *embedding.StaticGenerator {
	g := &embedding.StaticGenerator{Fallback: fallback}
	for _, e := range d.Entries {
		if len(e.Vector) > 0 {
			g.Set(e.Text, e.Vector)
		}
	}
	return g
}
