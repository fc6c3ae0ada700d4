package snapshot

import "context"

// OutlookSource reports the state of an individual competitor and of a
// motorsport series.
type OutlookSource interface {
	Outlook(ctx context.Context, competitor, series string) (Individual, Series, error)
}
