package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNopTracer(t *testing.T) {
	tracer := NopTracer()
	ctx := context.Background()
	ctx2, span := tracer.StartSpan(ctx, "test")
	if ctx2 != ctx {
		t.Fatalf("nop tracer should return same context")
	}
	span.SetTag("key", "value")
	span.SetError(nil)
	span.Finish()
}

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf)
	l.Info("processed capture",
		String("display", "oled"),
		Int("tokens", 4),
		Float64("confidence", 0.75),
	)
	line := buf.String()
	for _, want := range []string{"INFO", "processed capture", "display=oled", "tokens=4", "confidence=0.75"} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %q", line, want)
		}
	}
}

func TestWriterLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf).With(String("capture", "cap-1"))
	l.Error("recognition failed", Error("err", errors.New("engine down")))
	line := buf.String()
	if !strings.Contains(line, "capture=cap-1") || !strings.Contains(line, "engine down") {
		t.Fatalf("unexpected log line: %q", line)
	}
}
