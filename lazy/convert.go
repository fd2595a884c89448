package lazy

import (
	"log/slog"
)

// Generic is a plain ordered sequence of values with an optional parallel
// name sequence. It is the host's ordinary list representation.
type Generic struct {
	Values []any
	Names  []string // nil when no names are attached
}

// Len returns the number of values.
func (g *Generic) Len() int { return len(g.Values) }

// ToGeneric relabels l as a [Generic] holding the raw slots as-is, without
// chain resolution. Unnamed entries get a blank name. An empty list yields an
// empty Generic with no names attached.
func ToGeneric(l *List, opts ...Option) (*Generic, error) {
	o := makeOptions(opts...)

	if err := checkDots(l); err != nil {
		return nil, err
	}

	g := &Generic{Values: make([]any, l.Len())}

	if l.Len() > 0 {
		g.Names = make([]string, l.Len())
	}

	for i, e := range l.entries {
		g.Values[i] = e.Slot
		g.Names[i] = e.Name.String()
	}

	o.logger.Trace("to generic", slog.Int("entries", g.Len()))

	return g, nil
}

// FromGeneric builds a list from g. Every value must be a *Promise; blank
// names produce unnamed entries. The promises are shared, not copied.
func FromGeneric(g *Generic, opts ...Option) (*List, error) {
	o := makeOptions(opts...)

	if g == nil {
		return nil, ErrTypeMismatch.With(
			slog.String("want", "list"),
			slog.String("got", "nil"),
		)
	}

	if g.Names != nil && len(g.Names) != len(g.Values) {
		return nil, lengthMismatch("names", len(g.Values), len(g.Names))
	}

	for i, v := range g.Values {
		if p, ok := v.(*Promise); !ok || p == nil {
			return nil, mismatch(i, "promise", v)
		}
	}

	l := newListSize(len(g.Values))

	for i, v := range g.Values {
		name := Unnamed
		if g.Names != nil {
			name = nameOf(g.Names[i])
		}

		l.Append(name, v.(*Promise))
	}

	o.logger.Trace("from generic", slog.Int("entries", l.Len()))

	return l, nil
}
