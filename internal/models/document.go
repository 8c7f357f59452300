// Package models defines the data structures shared by the index, the generators, and the CLI.
package models

import "github.com/hyperjump/embedkit/internal/vector"

// Document is one indexed text with the vector generated for it.
type Document struct {
	ID     string        `json:"id,omitempty" yaml:"id,omitempty"`
	Text   string        `json:"text" yaml:"text"`
	Vector vector.Vector `json:"-" yaml:"-"`
	// Model is the generator model the vector came from.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
}
