package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/sports-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/sports-dashboard/internal/domain/standings"
	basecache "github.com/riskibarqy/sports-dashboard/internal/platform/cache"
)

// FixtureSource memoizes rounds so the carry-over lookup and the fresh
// selection never fetch the same round twice in one run.
type FixtureSource struct {
	next  fixture.Source
	cache *basecache.Store[fixture.Round]
}

func NewFixtureSource(next fixture.Source, cache *basecache.Store[fixture.Round]) *FixtureSource {
	return &FixtureSource{next: next, cache: cache}
}

func (s *FixtureSource) ListByRound(ctx context.Context, round int) (fixture.Round, error) {
	key := "fixture:round:current"
	if round > 0 {
		key = "fixture:round:" + strconv.Itoa(round)
	}

	loaded, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (fixture.Round, error) {
		item, err := s.next.ListByRound(ctx, round)
		if err != nil {
			return fixture.Round{}, err
		}
		return cloneRound(item), nil
	})
	if err != nil {
		return fixture.Round{}, err
	}

	// The current round doubles as its numbered entry.
	if round <= 0 && loaded.Number > 0 {
		s.cache.Set(ctx, "fixture:round:"+strconv.Itoa(loaded.Number), loaded)
	}
	return cloneRound(loaded), nil
}

func cloneRound(item fixture.Round) fixture.Round {
	item.Fixtures = append([]fixture.Fixture(nil), item.Fixtures...)
	return item
}

type StandingsSource struct {
	next  standings.Source
	cache *basecache.Store[[]standings.Row]
}

func NewStandingsSource(next standings.Source, cache *basecache.Store[[]standings.Row]) *StandingsSource {
	return &StandingsSource{next: next, cache: cache}
}

func (s *StandingsSource) ListCurrent(ctx context.Context) ([]standings.Row, error) {
	rows, err := s.cache.GetOrLoad(ctx, "standings:current", func(ctx context.Context) ([]standings.Row, error) {
		items, err := s.next.ListCurrent(ctx)
		if err != nil {
			return nil, err
		}
		return append([]standings.Row(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]standings.Row(nil), rows...), nil
}
