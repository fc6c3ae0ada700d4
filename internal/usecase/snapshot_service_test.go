package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/sports-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/sports-dashboard/internal/domain/snapshot"
	fixturemock "github.com/riskibarqy/sports-dashboard/internal/mocks/domain/fixture"
	searchmock "github.com/riskibarqy/sports-dashboard/internal/mocks/domain/search"
	snapshotmock "github.com/riskibarqy/sports-dashboard/internal/mocks/domain/snapshot"
	standingsmock "github.com/riskibarqy/sports-dashboard/internal/mocks/domain/standings"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/platform/metrics"
	"github.com/riskibarqy/sports-dashboard/internal/platform/timezone"
)

type snapshotFixture struct {
	repo      *snapshotmock.Repository
	standings *standingsmock.Source
	fixtures  *fixturemock.Source
	searcher  *searchmock.Searcher
	outlook   *snapshotmock.OutlookSource
	service   *SnapshotService
}

func newSnapshotFixture(t *testing.T) snapshotFixture {
	t.Helper()

	f := snapshotFixture{
		repo:      snapshotmock.NewRepository(t),
		standings: standingsmock.NewSource(t),
		fixtures:  fixturemock.NewSource(t),
		searcher:  searchmock.NewSearcher(t),
		outlook:   snapshotmock.NewOutlookSource(t),
	}
	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("load display location: %v", err)
	}
	converter := timezone.NewConverter(seoul, timezone.WithClock(func() time.Time { return selectionNow }))
	recorder := metrics.NewRecorder()
	logger := logging.NewNop()

	f.service = NewSnapshotService(
		f.repo,
		newSelectionService(t, f.standings, f.fixtures),
		NewBroadcastService(f.searcher, nil, recorder, logger),
		newBasketballService(t, nil, nil),
		NewOutlookService(f.outlook, outlookCfg, fixedClock(selectionNow), recorder, logger),
		snapshot.NewAssembler(snapshot.DefaultLimits(), snapshot.DefaultDefaults()),
		converter,
		recorder,
		logger,
	)
	return f
}

func (f snapshotFixture) expectSources() {
	f.standings.On("ListCurrent", mock.Anything).Return(liveTable(), nil).Once()
	f.fixtures.On("ListByRound", mock.Anything, 0).Return(fixture.Round{Number: 8, Fixtures: []fixture.Fixture{
		scheduled("a", 8, "Chelsea", "Man Utd", 48*time.Hour),
	}}, nil).Once()
}

func TestSnapshotService_WritesAssembledDocument(t *testing.T) {
	t.Parallel()

	f := newSnapshotFixture(t)
	f.repo.On("Load", mock.Anything).Return(snapshot.Document{}, false, nil).Once()
	f.expectSources()
	f.searcher.On("Search", mock.Anything, mock.Anything).Return("Chelsea v Man Utd is live on Sky Sports.", nil).Once()
	f.outlook.On("Outlook", mock.Anything, mock.Anything, mock.Anything).
		Return(snapshot.Individual{}, snapshot.Series{}, errors.New("no answer")).Once()

	var saved snapshot.Document
	f.repo.On("Save", mock.Anything, mock.AnythingOfType("snapshot.Document")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(snapshot.Document) }).
		Return(nil).Once()

	report, err := f.service.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Outcome != OutcomeOK || !report.Written || report.SelectedFixtures != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	if saved.Updated != "2026-10-19 21:00:00 KST" {
		t.Fatalf("unexpected stamp: %q", saved.Updated)
	}
	if saved.Football.RoundLabel != "R8" || saved.Football.Standings.Leader != "Arsenal" {
		t.Fatalf("unexpected football: %+v", saved.Football)
	}
	if got := saved.Football.SelectedFixtures[0].BroadcastChannel; got != "Sky Sports" {
		t.Fatalf("unexpected channel: %q", got)
	}
	if saved.Basketball.Team != "Los Angeles Lakers" {
		t.Fatalf("unexpected basketball: %+v", saved.Basketball)
	}
	if saved.Tennis.Next.Name != "Next Tournament TBD" || saved.Motorsport.Status != "Season 2026" {
		t.Fatalf("placeholders expected: %+v %+v", saved.Tennis, saved.Motorsport)
	}
}

func TestSnapshotService_UnreadablePreviousStartsFresh(t *testing.T) {
	t.Parallel()

	f := newSnapshotFixture(t)
	f.repo.On("Load", mock.Anything).Return(snapshot.Document{}, false, errors.New("unexpected end of JSON input")).Once()
	f.expectSources()
	f.searcher.On("Search", mock.Anything, mock.Anything).Return("", nil).Once()
	f.outlook.On("Outlook", mock.Anything, mock.Anything, mock.Anything).
		Return(snapshot.Individual{Competitor: "Carlos Alcaraz"}, snapshot.Series{Series: "Formula 1"}, nil).Once()
	f.repo.On("Save", mock.Anything, mock.MatchedBy(func(doc snapshot.Document) bool {
		return len(doc.Football.SelectedFixtures) == 1 &&
			doc.Football.SelectedFixtures[0].BroadcastChannel == snapshot.UnresolvedChannel
	})).Return(nil).Once()

	report, err := f.service.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !report.Written || report.Retained {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestSnapshotService_RateLimitKeepsPreviousFile(t *testing.T) {
	t.Parallel()

	f := newSnapshotFixture(t)
	f.repo.On("Load", mock.Anything).Return(snapshot.Document{}, false, nil).Once()
	f.expectSources()
	f.searcher.On("Search", mock.Anything, mock.Anything).Return("", ErrRateLimited).Once()

	report, err := f.service.Run(context.Background())
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected rate limit, got %v", err)
	}
	if report.Outcome != OutcomeRateLimited || report.Written {
		t.Fatalf("unexpected report: %+v", report)
	}
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSnapshotService_SaveFailure(t *testing.T) {
	t.Parallel()

	f := newSnapshotFixture(t)
	f.repo.On("Load", mock.Anything).Return(snapshot.Document{}, false, nil).Once()
	f.expectSources()
	f.searcher.On("Search", mock.Anything, mock.Anything).Return("", nil).Once()
	f.outlook.On("Outlook", mock.Anything, mock.Anything, mock.Anything).
		Return(snapshot.Individual{}, snapshot.Series{}, nil).Once()
	f.repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	report, err := f.service.Run(context.Background())
	if err == nil || report.Outcome != OutcomeFailed || report.Written {
		t.Fatalf("expected failed run, got %+v, %v", report, err)
	}
}
