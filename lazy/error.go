package lazy

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrTypeMismatch   = NewError("type mismatch")
	ErrLengthMismatch = NewError("length mismatch")
	ErrAlreadyForced  = NewError("promise already forced")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Errors derived from a sentinel with [Error.With] or [Error.Wrap] still
// match that sentinel with [errors.Is].
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
	base  *Error      // Sentinel this error was derived from
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> (<k>=<v> ...): <err>"
	//   2. "<msg> (<k>=<v> ...)"
	//   3. "<err>"
	part := make([]string, 0, 2)

	if e.msg != "" {
		msg := e.msg
		if len(e.attrs) > 0 {
			kv := make([]string, len(e.attrs))
			for i, a := range e.attrs {
				kv[i] = a.String()
			}

			msg += " (" + strings.Join(kv, " ") + ")"
		}

		part = append(part, msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.root() == t.root()
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Attrs returns a copy of the structured attributes attached to e.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
		base:  e.root(),
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
		base:  e.root(),
	}
}

// mismatch reports a slot at index that does not hold the wanted kind.
func mismatch(index int, want string, got any) *Error {
	return ErrTypeMismatch.With(
		slog.Int("index", index),
		slog.String("want", want),
		slog.String("got", kindOf(got)),
	)
}

// checkDots reports a nil l or one not tagged [ClassDots].
func checkDots(l *List) error {
	if l == nil {
		return ErrTypeMismatch.With(
			slog.String("want", ClassDots),
			slog.String("got", "nil"),
		)
	}

	if c := l.Class(); c != ClassDots {
		return ErrTypeMismatch.With(
			slog.String("want", ClassDots),
			slog.String("got", c),
		)
	}

	return nil
}

// lengthMismatch reports two sequences that must correspond element-wise.
func lengthMismatch(what string, want, got int) *Error {
	return ErrLengthMismatch.With(
		slog.String("sequence", what),
		slog.Int("want", want),
		slog.Int("got", got),
	)
}
