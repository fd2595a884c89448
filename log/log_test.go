package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func jsonLogger(buf *bytes.Buffer, opts ...Option) Logger {
	return Make(buf, append([]Option{
		WithFormat(FormatJSON),
		WithTimeLayout("none"),
	}, opts...)...)
}

func decode(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var recs []map[string]any

	for line := range strings.Lines(buf.String()) {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}

		recs = append(recs, rec)
	}

	return recs
}

func TestLogger_Zero_Discards(t *testing.T) {
	var l Logger

	l.Trace("nothing")
	l.Error("nothing", slog.String("k", "v"))

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Errorf("zero logger reports level=%v format=%v", l.Level(), l.Format())
	}

	if l.With(slog.Int("n", 1)).Logger != nil {
		t.Error("With on zero logger allocated a handler")
	}
}

func TestLogger_Level_Filters(t *testing.T) {
	tests := []struct {
		level Level
		want  []string
	}{
		{LevelTrace, []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}},
		{LevelInfo, []string{"INFO", "WARN", "ERROR"}},
		{LevelError, []string{"ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer

			l := jsonLogger(&buf, WithLevel(tt.level))
			l.Trace("m")
			l.Debug("m")
			l.Info("m")
			l.Warn("m")
			l.Error("m")

			recs := decode(t, &buf)
			if len(recs) != len(tt.want) {
				t.Fatalf("got %d records, want %d", len(recs), len(tt.want))
			}

			for i, rec := range recs {
				if rec["level"] != tt.want[i] {
					t.Errorf("record %d level = %v, want %s", i, rec["level"], tt.want[i])
				}
			}
		})
	}
}

func TestLogger_JSON_Attrs(t *testing.T) {
	var buf bytes.Buffer

	l := jsonLogger(&buf).With(slog.String("component", "lazy"))
	l.InfoContext(t.Context(), "unpack", slog.Int("rows", 3))

	recs := decode(t, &buf)
	if len(recs) != 1 {
		t.Fatalf("got %d records", len(recs))
	}

	rec := recs[0]

	if _, ok := rec["time"]; ok {
		t.Error("time present with layout none")
	}

	if rec["msg"] != "unpack" || rec["component"] != "lazy" || rec["rows"] != float64(3) {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestLogger_Caller_PointsAtCallSite(t *testing.T) {
	var buf bytes.Buffer

	jsonLogger(&buf, WithCaller(true)).Info("here")

	recs := decode(t, &buf)

	src, ok := recs[0]["source"].(map[string]any)
	if !ok {
		t.Fatalf("no source in %v", recs[0])
	}

	if file, _ := src["file"].(string); !strings.HasSuffix(file, "log_test.go") {
		t.Errorf("source file = %v, want log_test.go", src["file"])
	}
}

func TestLogger_Wrap_KeepsOutput(t *testing.T) {
	var buf bytes.Buffer

	base := jsonLogger(&buf)
	wrapped := base.Wrap(WithLevel(LevelTrace))

	base.Trace("dropped")
	wrapped.Trace("kept")

	recs := decode(t, &buf)
	if len(recs) != 1 || recs[0]["msg"] != "kept" {
		t.Errorf("unexpected records %v", recs)
	}

	if wrapped.Writer() != &buf {
		t.Error("Wrap changed the writer")
	}
}

func TestLogger_PrettyText(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout("none"), WithLevel(LevelTrace)).
		WithGroup("op").
		With(slog.String("name", "x"))

	l.Trace("force", slog.Bool("forced", true), slog.Group("env", slog.String("id", "global")))

	out := buf.String()

	for _, want := range []string{
		"TRACE force",
		"op.name=x",
		"op.forced=true",
		"op.env.id=global",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLogger_PlainText(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithPretty(false), WithTimeLayout("none")).
		Warn("careful", slog.String("key", "value"))

	if got, want := buf.String(), "level=WARN msg=careful key=value\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
