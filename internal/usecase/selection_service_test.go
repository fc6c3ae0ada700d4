package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/sports-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/sports-dashboard/internal/domain/selection"
	"github.com/riskibarqy/sports-dashboard/internal/domain/snapshot"
	"github.com/riskibarqy/sports-dashboard/internal/domain/standings"
	"github.com/riskibarqy/sports-dashboard/internal/domain/teamname"
	fixturemock "github.com/riskibarqy/sports-dashboard/internal/mocks/domain/fixture"
	standingsmock "github.com/riskibarqy/sports-dashboard/internal/mocks/domain/standings"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/platform/metrics"
	"github.com/riskibarqy/sports-dashboard/internal/platform/timezone"
)

var selectionNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func liveTable() []standings.Row {
	return []standings.Row{
		{Position: 1, Team: "Arsenal FC", Points: 20},
		{Position: 2, Team: "Man City", Points: 19},
		{Position: 3, Team: "Aston Villa", Points: 17},
		{Position: 4, Team: "Newcastle United", Points: 16},
		{Position: 5, Team: "Brentford", Points: 12},
	}
}

func scheduled(id string, round int, home, away string, offset time.Duration) fixture.Fixture {
	return fixture.Fixture{
		SourceID:  id,
		Round:     round,
		HomeTeam:  home,
		AwayTeam:  away,
		KickoffAt: selectionNow.Add(offset),
		Status:    fixture.StatusScheduled,
	}
}

func newSelectionService(t *testing.T, standingsSrc *standingsmock.Source, fixtureSrc *fixturemock.Source) *SelectionService {
	t.Helper()

	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("load display location: %v", err)
	}
	venue, err := timezone.LoadSource("Europe/London", "UK")
	if err != nil {
		t.Fatalf("load venue: %v", err)
	}
	names := teamname.NewNormalizer(teamname.DefaultAliases)
	return NewSelectionService(
		standingsSrc,
		fixtureSrc,
		selection.NewClassifier(selection.DefaultRules(), names),
		names,
		timezone.NewConverter(seoul, timezone.WithClock(func() time.Time { return selectionNow })),
		SelectionConfig{Venue: venue},
		metrics.NewRecorder(),
		logging.NewNop(),
	)
}

func TestSelectionService_FreshBatchFromCurrentRound(t *testing.T) {
	t.Parallel()

	standingsSrc := standingsmock.NewSource(t)
	fixtureSrc := fixturemock.NewSource(t)
	standingsSrc.On("ListCurrent", mock.Anything).Return(liveTable(), nil).Once()
	fixtureSrc.On("ListByRound", mock.Anything, 0).Return(fixture.Round{Number: 8, Fixtures: []fixture.Fixture{
		scheduled("a", 8, "Chelsea", "Man Utd", 48*time.Hour),
		scheduled("b", 8, "Brentford", "Fulham", 24*time.Hour),
		scheduled("c", 8, "Aston Villa", "Newcastle", 72*time.Hour),
	}}, nil).Once()

	svc := newSelectionService(t, standingsSrc, fixtureSrc)
	sel, err := svc.Select(context.Background(), snapshot.Football{})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Retained || sel.Round != 8 {
		t.Fatalf("expected fresh round 8 batch, got %+v", sel)
	}
	if got := sel.Batch.IDs(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("unexpected ids: %v", got)
	}
	if sel.Table.Leader != "Arsenal" || sel.Table.Contenders[1] != "Manchester City" {
		t.Fatalf("expected normalized table, got %+v", sel.Table)
	}

	football := svc.Football(sel)
	if football.RoundLabel != "R8" {
		t.Fatalf("unexpected round label: %s", football.RoundLabel)
	}
	first := football.SelectedFixtures[0]
	if first.Home != "Chelsea" || first.Away != "Manchester United" {
		t.Fatalf("expected canonical names, got %s vs %s", first.Home, first.Away)
	}
	if first.DisplayTime != "10.21 21:00 (KST)" {
		t.Fatalf("unexpected display time: %s", first.DisplayTime)
	}
	if first.VenueLocalTime != "10.21 13:00 (UK)" {
		t.Fatalf("unexpected venue time: %s", first.VenueLocalTime)
	}
	if first.MatchedTiers[0] != int(selection.TierEliteClash) || first.TierNames[0] != "elite-clash" {
		t.Fatalf("unexpected tiers: %v %v", first.MatchedTiers, first.TierNames)
	}
	if first.KickoffAt != "2026-10-21T12:00:00Z" {
		t.Fatalf("unexpected kickoff: %s", first.KickoffAt)
	}
}

func TestSelectionService_CarryOverKeepsMembership(t *testing.T) {
	t.Parallel()

	prev := snapshot.Football{
		RoundLabel: "R7",
		SelectedFixtures: []snapshot.Fixture{
			{Home: "Arsenal", Away: "Chelsea", Round: 7, KickoffAt: "2026-10-18T15:30:00Z", Status: "Finished", Scoreline: "2-0", SourceIdentifier: "p1", MatchedTiers: []int{1}, BroadcastChannel: "Sky Sports"},
			{Home: "Liverpool", Away: "Tottenham", Round: 7, KickoffAt: "2026-10-19T15:30:00Z", Status: "Scheduled", SourceIdentifier: "p2", MatchedTiers: []int{1}, BroadcastChannel: snapshot.UnresolvedChannel},
		},
	}

	standingsSrc := standingsmock.NewSource(t)
	fixtureSrc := fixturemock.NewSource(t)
	standingsSrc.On("ListCurrent", mock.Anything).Return(liveTable(), nil).Once()
	fixtureSrc.On("ListByRound", mock.Anything, 0).Return(fixture.Round{Number: 8, Fixtures: []fixture.Fixture{
		scheduled("n1", 8, "Manchester City", "Arsenal", 72*time.Hour),
	}}, nil).Once()
	live := scheduled("p2", 7, "Liverpool", "Tottenham", 0)
	live.Status = fixture.StatusInProgress
	home, away := 1, 1
	live.HomeScore, live.AwayScore = &home, &away
	fixtureSrc.On("ListByRound", mock.Anything, 7).Return(fixture.Round{Number: 7, Fixtures: []fixture.Fixture{live}}, nil).Once()

	svc := newSelectionService(t, standingsSrc, fixtureSrc)
	sel, err := svc.Select(context.Background(), prev)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !sel.Retained || sel.Round != 7 {
		t.Fatalf("expected retained round 7, got retained=%v round=%d", sel.Retained, sel.Round)
	}
	if got := sel.Batch.IDs(); !reflect.DeepEqual(got, []string{"p1", "p2"}) {
		t.Fatalf("membership changed: %v", got)
	}

	football := svc.Football(sel)
	if football.SelectedFixtures[1].Status != "InProgress" || football.SelectedFixtures[1].Scoreline != "1-1" {
		t.Fatalf("expected refreshed live fixture, got %+v", football.SelectedFixtures[1])
	}
	if football.SelectedFixtures[0].BroadcastChannel != "Sky Sports" {
		t.Fatalf("expected stored channel kept, got %q", football.SelectedFixtures[0].BroadcastChannel)
	}
	if football.SelectedFixtures[1].BroadcastChannel != "" {
		t.Fatalf("expected placeholder channel cleared for another lookup, got %q", football.SelectedFixtures[1].BroadcastChannel)
	}
}

func TestSelectionService_AllFinishedWidensToNextRound(t *testing.T) {
	t.Parallel()

	prev := snapshot.Football{
		RoundLabel: "R7",
		SelectedFixtures: []snapshot.Fixture{
			{Home: "Arsenal", Away: "Chelsea", Round: 7, Status: "Finished", SourceIdentifier: "p1"},
			{Home: "Liverpool", Away: "Tottenham", Round: 7, Status: "Finished", SourceIdentifier: "p2"},
			{Home: "Everton", Away: "Manchester City", Round: 7, Status: "Finished", SourceIdentifier: "p3"},
		},
	}

	standingsSrc := standingsmock.NewSource(t)
	fixtureSrc := fixturemock.NewSource(t)
	standingsSrc.On("ListCurrent", mock.Anything).Return(liveTable(), nil).Once()
	fixtureSrc.On("ListByRound", mock.Anything, 0).Return(fixture.Round{Number: 8, Fixtures: []fixture.Fixture{
		scheduled("q1", 8, "Brentford", "Fulham", 24*time.Hour),
	}}, nil).Once()
	fixtureSrc.On("ListByRound", mock.Anything, 7).Return(fixture.Round{Number: 7}, nil).Once()
	fixtureSrc.On("ListByRound", mock.Anything, 9).Return(fixture.Round{Number: 9, Fixtures: []fixture.Fixture{
		scheduled("r1", 9, "Liverpool", "Arsenal", 8*24*time.Hour),
	}}, nil).Once()

	svc := newSelectionService(t, standingsSrc, fixtureSrc)
	sel, err := svc.Select(context.Background(), prev)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Retained {
		t.Fatalf("finished batch must not be retained")
	}
	if sel.Round != 9 || !reflect.DeepEqual(sel.Batch.IDs(), []string{"r1"}) {
		t.Fatalf("expected next-round batch, got round=%d ids=%v", sel.Round, sel.Batch.IDs())
	}
}

func TestSelectionService_DegradesOnSourceFailures(t *testing.T) {
	t.Parallel()

	standingsSrc := standingsmock.NewSource(t)
	fixtureSrc := fixturemock.NewSource(t)
	standingsSrc.On("ListCurrent", mock.Anything).Return(nil, errors.New("boom")).Once()
	fixtureSrc.On("ListByRound", mock.Anything, 0).Return(fixture.Round{}, ErrDependencyUnavailable).Once()

	svc := newSelectionService(t, standingsSrc, fixtureSrc)
	sel, err := svc.Select(context.Background(), snapshot.Football{})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !sel.Table.Fallback || sel.Table.Leader != "Arsenal" {
		t.Fatalf("expected seeded table, got %+v", sel.Table)
	}
	if !sel.Batch.Empty() {
		t.Fatalf("expected empty batch, got %v", sel.Batch.IDs())
	}
	if got := svc.Football(sel).RoundLabel; got != "R--" {
		t.Fatalf("expected unknown round label, got %s", got)
	}
}

func TestSelectionService_RateLimitAborts(t *testing.T) {
	t.Parallel()

	standingsSrc := standingsmock.NewSource(t)
	fixtureSrc := fixturemock.NewSource(t)
	standingsSrc.On("ListCurrent", mock.Anything).Return(nil, ErrRateLimited).Once()

	svc := newSelectionService(t, standingsSrc, fixtureSrc)
	if _, err := svc.Select(context.Background(), snapshot.Football{}); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected rate limit, got %v", err)
	}
}

func TestFixtureFromSnapshot_DegradedKickoff(t *testing.T) {
	t.Parallel()

	got := fixtureFromSnapshot(snapshot.Fixture{
		SourceIdentifier: "x",
		VenueLocalTime:   "01.04 16:30 (UK)",
		Status:           "Bogus",
		Scoreline:        "",
		BroadcastChannel: snapshot.TBD,
	})
	if got.KickoffText != "01.04 16:30" {
		t.Fatalf("unexpected kickoff text: %q", got.KickoffText)
	}
	if got.Status != fixture.StatusScheduled || got.Channel != "" || got.HomeScore != nil {
		t.Fatalf("unexpected fixture: %+v", got)
	}
}
