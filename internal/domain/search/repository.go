package search

import "context"

// Searcher answers a free-text query with unstructured text.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}
