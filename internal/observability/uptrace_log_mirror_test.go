package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"

	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	t.Parallel()

	if !shouldSkipUptraceLog(logging.LevelDebug, logging.LevelInfo, "fixture classified") {
		t.Fatalf("expected debug line below min level to be skipped")
	}
	if !shouldSkipUptraceLog(logging.LevelInfo, logging.LevelInfo, "broadcast not found") {
		t.Fatalf("expected per-fixture info line to be skipped")
	}
	if shouldSkipUptraceLog(logging.LevelWarn, logging.LevelInfo, "broadcast not found") {
		t.Fatalf("did not expect warn line to be skipped")
	}
	if shouldSkipUptraceLog(logging.LevelInfo, logging.LevelInfo, "snapshot written") {
		t.Fatalf("did not expect run summary to be skipped")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	t.Parallel()

	attrs := buildOTelLogAttributes([]any{"source", "sportmonks", "fixtures", 3, "error"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "source" || attrs[0].Value.AsString() != "sportmonks" {
		t.Fatalf("unexpected source attribute")
	}
	if attrs[1].Key != "fixtures" || attrs[1].Value.AsInt64() != 3 {
		t.Fatalf("unexpected fixtures attribute")
	}
	if attrs[2].Key != "error" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected error attribute")
	}
}

func TestToOTelLogValue(t *testing.T) {
	t.Parallel()

	v := toOTelLogValue(map[string]string{
		"football":  "sportmonks",
		"broadcast": "gemini",
	})
	if v.Kind() != otellog.KindMap || len(v.AsMap()) != 2 {
		t.Fatalf("expected map value with 2 items, got %s", v.Kind())
	}
	if first := v.AsMap()[0]; first.Key != "broadcast" {
		t.Fatalf("expected sorted keys, got %q first", first.Key)
	}
	if got := toOTelLogValue(errors.New("quota")).AsString(); got != "quota" {
		t.Fatalf("unexpected error value: %q", got)
	}
	if got := toOTelLogValue(1500 * time.Millisecond).AsString(); got != "1.5s" {
		t.Fatalf("unexpected duration value: %q", got)
	}
	if got := toOTelLogValue([]string{"Arsenal", "Chelsea"}); got.Kind() != otellog.KindSlice {
		t.Fatalf("expected slice value, got %s", got.Kind())
	}
	if got := toOTelLogValue(nil); got.Kind() != otellog.KindEmpty {
		t.Fatalf("expected empty value, got %s", got.Kind())
	}
}
