package lazy

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError_IsSentinel(t *testing.T) {
	derived := ErrTypeMismatch.With(slog.Int("index", 3))
	wrapped := ErrLengthMismatch.Wrap(io.EOF).With(slog.String("sequence", "names"))

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"derived", derived, ErrTypeMismatch, true},
		{"derived other", derived, ErrLengthMismatch, false},
		{"wrapped", wrapped, ErrLengthMismatch, true},
		{"wrapped cause", wrapped, io.EOF, true},
		{"rederived", derived.With(slog.String("got", "nil")), ErrTypeMismatch, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{ErrAlreadyForced, "promise already forced"},
		{mismatch(2, "promise", 5), "type mismatch (index=2 want=promise got=int)"},
		{lengthMismatch("exprs", 3, 1), "length mismatch (sequence=exprs want=3 got=1)"},
		{ErrTypeMismatch.Wrap(io.EOF), "type mismatch: EOF"},
		{WrapError(io.EOF), "EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_WithDoesNotAlias(t *testing.T) {
	base := ErrTypeMismatch.With(slog.Int("index", 0))

	a := base.With(slog.String("got", "a"))
	b := base.With(slog.String("got", "b"))

	if len(base.Attrs()) != 1 || a.Error() == b.Error() {
		t.Errorf("base=%v a=%v b=%v", base, a, b)
	}
}

func TestError_LogValue(t *testing.T) {
	v := mismatch(1, "promise", nil).LogValue()

	if v.Kind() != slog.KindGroup {
		t.Fatalf("kind = %v", v.Kind())
	}

	got := map[string]string{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"error": "type mismatch",
		"index": "1",
		"want":  "promise",
		"got":   "nil",
	}

	for k, w := range want {
		if got[k] != w {
			t.Errorf("%s = %q, want %q", k, got[k], w)
		}
	}
}
