package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riskibarqy/sports-dashboard/internal/domain/snapshot"
)

func TestSnapshotRepository_LoadMissing(t *testing.T) {
	t.Parallel()

	repo := NewSnapshotRepository(filepath.Join(t.TempDir(), "sports.json"))
	_, found, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected no previous snapshot")
	}
}

func TestSnapshotRepository_SaveAndLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "sports.json")
	repo := NewSnapshotRepository(path)

	doc := snapshot.Document{
		Updated: "2026-10-19 21:00:00 KST",
		Football: snapshot.Football{
			RoundLabel: "R9",
			Standings:  snapshot.Standings{Leader: "Arsenal", Contenders: []string{"Arsenal"}},
			SelectedFixtures: []snapshot.Fixture{
				{Home: "Chelsea", Away: "Arsenal", SourceIdentifier: "19427", Status: "Scheduled", MatchedTiers: []int{1}, TierNames: []string{"elite-clash"}},
			},
		},
		Basketball: snapshot.Basketball{Upcoming: []snapshot.UpcomingGame{}},
	}
	if err := repo.Save(context.Background(), doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), "\n  \"football\": {") {
		t.Fatalf("expected pretty-printed output, got %s", raw)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp file to be cleaned up, found %d entries", len(entries))
	}

	loaded, found, err := repo.Load(context.Background())
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if got := loaded.Football.SelectedFixtures[0].SourceIdentifier; got != "19427" {
		t.Fatalf("unexpected source identifier %q", got)
	}
}

func TestSnapshotRepository_LoadCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sports.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, found, err := NewSnapshotRepository(path).Load(context.Background())
	if err == nil || found {
		t.Fatalf("expected decode error, got found=%v err=%v", found, err)
	}
}
