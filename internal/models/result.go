package models

// SearchResult is a single ranked hit. Index is the document's insertion position in the index.
type SearchResult struct {
	Document   string  `json:"document"`
	Similarity float64 `json:"similarity"`
	Index      int     `json:"index"`
}
