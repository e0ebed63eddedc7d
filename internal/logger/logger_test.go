package logger

import (
	"context"
	"strings"
	"testing"
)

func TestNewWithWriter(t *testing.T) {
	var buf strings.Builder
	log := NewWithWriter(&buf)

	log.Info().Str("component", "store").Msg("opened database")

	out := buf.String()
	if !strings.Contains(out, `"component":"store"`) {
		t.Errorf("structured field missing: %s", out)
	}
	if !strings.Contains(out, "opened database") {
		t.Errorf("message missing: %s", out)
	}
	if !strings.Contains(out, `"time"`) {
		t.Errorf("timestamp missing: %s", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf strings.Builder
	log := NewWithWriter(&buf)

	ctx := WithContext(context.Background(), log)
	got := FromContext(ctx)

	got.Info().Msg("from context")
	if !strings.Contains(buf.String(), "from context") {
		t.Error("logger from context must write to the original writer")
	}
}

func TestFromContextMissing(t *testing.T) {
	// A bare context falls back to a usable default logger.
	log := FromContext(context.Background())
	log.Debug().Msg("fallback")
}
