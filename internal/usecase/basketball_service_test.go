package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/sports-dashboard/internal/domain/basketball"
	basketballmock "github.com/riskibarqy/sports-dashboard/internal/mocks/domain/basketball"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/platform/metrics"
	"github.com/riskibarqy/sports-dashboard/internal/platform/timezone"
)

const lakersID = 14

var (
	lakers   = basketball.Team{ID: lakersID, Abbreviation: "LAL", FullName: "Los Angeles Lakers"}
	warriors = basketball.Team{ID: 10, Abbreviation: "GSW", FullName: "Golden State Warriors"}
	suns     = basketball.Team{ID: 24, Abbreviation: "PHX", FullName: "Phoenix Suns"}
	celtics  = basketball.Team{ID: 2, Abbreviation: "BOS", FullName: "Boston Celtics"}
)

func newBasketballService(t *testing.T, games basketball.Source, summaries basketball.SummarySource) *BasketballService {
	t.Helper()

	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("load display location: %v", err)
	}
	pacific, err := timezone.LoadSource("America/Los_Angeles", "PT")
	if err != nil {
		t.Fatalf("load venue: %v", err)
	}
	return NewBasketballService(
		games,
		summaries,
		timezone.NewConverter(seoul, timezone.WithClock(func() time.Time { return selectionNow })),
		BasketballConfig{TeamID: lakersID, TeamName: "Los Angeles Lakers", Venue: pacific},
		metrics.NewRecorder(),
		logging.NewNop(),
	)
}

func TestBasketballService_FromGames(t *testing.T) {
	t.Parallel()

	games := basketballmock.NewSource(t)
	games.On("RecentGames", mock.Anything, lakersID, mock.Anything, mock.Anything).Return([]basketball.Game{
		{ID: "1", Date: "2026-10-14", Home: lakers, Visitor: warriors, HomeScore: 110, VisitorScore: 100, Status: "Final", Finished: true},
		{ID: "2", Date: "2026-10-16", Home: suns, Visitor: lakers, HomeScore: 105, VisitorScore: 98, Status: "Final", Finished: true},
	}, nil).Once()
	games.On("UpcomingGames", mock.Anything, lakersID, mock.Anything, mock.Anything).Return([]basketball.Game{
		{ID: "3", Date: "2026-10-22", StartsAt: time.Date(2026, 10, 22, 23, 30, 0, 0, time.UTC), Home: celtics, Visitor: lakers},
	}, nil).Once()
	games.On("TeamStanding", mock.Anything, lakersID, 2026).Return(basketball.Standing{}, errors.New("not published")).Once()

	card, err := newBasketballService(t, games, nil).Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if card.Team != "Los Angeles Lakers" || card.Record != "1-1" || card.Rank != "-" {
		t.Fatalf("unexpected header: %+v", card)
	}
	if card.LastResult.Opponent != "Phoenix Suns" || card.LastResult.Result != "L" || card.LastResult.Score != "98-105" {
		t.Fatalf("unexpected last result: %+v", card.LastResult)
	}
	if len(card.Upcoming) != 1 {
		t.Fatalf("expected one upcoming game, got %d", len(card.Upcoming))
	}
	next := card.Upcoming[0]
	if next.Opponent != "Boston Celtics" || next.Location != "away" {
		t.Fatalf("unexpected opponent: %+v", next)
	}
	if next.DisplayTime != "10.23 08:30 (KST)" || next.VenueLocalTime != "10.22 16:30 (PT)" {
		t.Fatalf("unexpected times: %q / %q", next.DisplayTime, next.VenueLocalTime)
	}
	if next.NationalTV || next.Channel != "" {
		t.Fatalf("no channel expected: %+v", next)
	}
}

func TestBasketballService_StandingOverridesRecord(t *testing.T) {
	t.Parallel()

	games := basketballmock.NewSource(t)
	games.On("RecentGames", mock.Anything, lakersID, mock.Anything, mock.Anything).Return([]basketball.Game{}, nil).Once()
	games.On("UpcomingGames", mock.Anything, lakersID, mock.Anything, mock.Anything).Return([]basketball.Game{}, nil).Once()
	games.On("TeamStanding", mock.Anything, lakersID, 2026).Return(basketball.Standing{
		TeamID: lakersID, Wins: 4, Losses: 1, Conference: "West", ConferenceRank: 2,
	}, nil).Once()

	card, err := newBasketballService(t, games, nil).Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if card.Record != "4-1" || card.Rank != "2nd West" {
		t.Fatalf("unexpected standing: %q %q", card.Record, card.Rank)
	}
	if card.LastResult.Opponent != "-" || len(card.Upcoming) != 0 {
		t.Fatalf("unexpected card: %+v", card)
	}
}

func TestBasketballService_FromSummary(t *testing.T) {
	t.Parallel()

	summaries := basketballmock.NewSummarySource(t)
	summaries.On("Summary", mock.Anything, "Los Angeles Lakers").Return(basketball.Summary{
		Team:   "Los Angeles Lakers",
		Record: "3-1",
		Rank:   "2nd West",
		Last:   basketball.LastGame{Opponent: "Denver Nuggets", Result: "W", Score: "120-111", Date: "10.17"},
		Upcoming: []basketball.Scheduled{
			{Opponent: "Denver Nuggets", Away: true, Date: "10.25", Clock: "7:30 PM", Channel: "ESPN"},
			{Opponent: "Utah Jazz", Date: "10.27", Clock: "7:00 PM", Channel: "Prime Video"},
		},
	}, nil).Once()

	card, err := newBasketballService(t, nil, summaries).Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if card.Record != "3-1" || card.LastResult.Score != "120-111" {
		t.Fatalf("unexpected card: %+v", card)
	}
	if len(card.Upcoming) != 2 {
		t.Fatalf("expected two games, got %d", len(card.Upcoming))
	}

	nuggets := card.Upcoming[0]
	if nuggets.Location != "away" || nuggets.DisplayTime != "10.26 11:30 (KST)" || nuggets.VenueLocalTime != "10.25 19:30 (PT)" {
		t.Fatalf("unexpected first game: %+v", nuggets)
	}
	if !nuggets.NationalTV || nuggets.Channel != "ESPN" || nuggets.RawChannel != "ESPN" {
		t.Fatalf("ESPN must be national: %+v", nuggets)
	}

	jazz := card.Upcoming[1]
	if jazz.Location != "home" || jazz.NationalTV || jazz.Channel != "" || jazz.RawChannel != "Prime Video" {
		t.Fatalf("streaming must not be national: %+v", jazz)
	}
}

func TestBasketballService_Degrades(t *testing.T) {
	t.Parallel()

	t.Run("source failure", func(t *testing.T) {
		t.Parallel()

		summaries := basketballmock.NewSummarySource(t)
		summaries.On("Summary", mock.Anything, mock.Anything).Return(basketball.Summary{}, ErrDependencyUnavailable).Once()

		card, err := newBasketballService(t, nil, summaries).Summary(context.Background())
		if err != nil {
			t.Fatalf("failures must degrade: %v", err)
		}
		if card.Team != "Los Angeles Lakers" || len(card.Upcoming) != 0 {
			t.Fatalf("unexpected card: %+v", card)
		}
	})

	t.Run("no source", func(t *testing.T) {
		t.Parallel()

		card, err := newBasketballService(t, nil, nil).Summary(context.Background())
		if err != nil || card.Team != "Los Angeles Lakers" {
			t.Fatalf("unexpected result: %+v, %v", card, err)
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		t.Parallel()

		summaries := basketballmock.NewSummarySource(t)
		summaries.On("Summary", mock.Anything, mock.Anything).Return(basketball.Summary{}, ErrRateLimited).Once()

		if _, err := newBasketballService(t, nil, summaries).Summary(context.Background()); !errors.Is(err, ErrRateLimited) {
			t.Fatalf("expected rate limit, got %v", err)
		}
	})
}
