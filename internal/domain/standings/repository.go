package standings

import "context"

// Source reads the current league table.
type Source interface {
	ListCurrent(ctx context.Context) ([]Row, error)
}
