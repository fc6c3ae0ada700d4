package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_CountsSourceFailures(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.SourceFailed("sportmonks")
	r.SourceFailed("sportmonks")
	r.SourceFailed("gemini")

	if got := testutil.ToFloat64(r.sourceFailures.WithLabelValues("sportmonks")); got != 2 {
		t.Fatalf("expected 2 sportmonks failures, got %v", got)
	}
}

func TestRecorder_WriteTextfile(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.BatchDecision(true, 3)
	r.RunFinished("ok", 4*time.Second, time.Unix(1767225600, 0))

	path := filepath.Join(t.TempDir(), "updater.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	for _, want := range []string{
		`sports_dashboard_football_batch_decisions_total{decision="retained"} 1`,
		"sports_dashboard_football_selected_fixtures 3",
		"sports_dashboard_run_last_success_timestamp_seconds 1.7672256e+09",
	} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("expected %q in textfile:\n%s", want, raw)
		}
	}
}

func TestRecorder_NilIsSafe(t *testing.T) {
	t.Parallel()

	var r *Recorder
	r.SourceFailed("x")
	r.RunFinished("failed", time.Second, time.Now())
	if err := r.WriteTextfile("/nonexistent/x.prom"); err != nil {
		t.Fatalf("expected nil recorder to skip write, got %v", err)
	}
}
