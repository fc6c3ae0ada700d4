package fixture

import "context"

// Source reads the fixture list of one round. A round of zero or less asks
// for the current round; the returned Round carries the resolved number.
type Source interface {
	ListByRound(ctx context.Context, round int) (Round, error)
}
