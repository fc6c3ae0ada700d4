package search

import (
	"context"
	"errors"
)

var ErrNoSearcher = errors.New("no searcher configured")

// Chain asks each searcher in order and returns the first answer. An
// error for which stop returns true is returned at once.
type Chain struct {
	searchers []Searcher
	stop      func(error) bool
}

func NewChain(stop func(error) bool, searchers ...Searcher) *Chain {
	kept := make([]Searcher, 0, len(searchers))
	for _, s := range searchers {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Chain{searchers: kept, stop: stop}
}

func (c *Chain) Len() int {
	return len(c.searchers)
}

func (c *Chain) Search(ctx context.Context, query string) (string, error) {
	if len(c.searchers) == 0 {
		return "", ErrNoSearcher
	}

	var errs []error
	for _, s := range c.searchers {
		text, err := s.Search(ctx, query)
		if err == nil && text != "" {
			return text, nil
		}
		if err == nil {
			continue
		}
		if c.stop != nil && c.stop(err) {
			return "", err
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", nil
	}
	return "", errors.Join(errs...)
}
