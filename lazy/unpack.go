package lazy

import (
	"log/slog"
)

// Unpack projects l into a [Table] with one row per entry.
//
// Each entry's promise chain is resolved with [Promise.Resolve]; the row
// records the entry name (blank if unnamed), the resolved environment, the
// resolved code, and the cached value if the promise was forced.
func Unpack(l *List, opts ...Option) (*Table, error) {
	o := makeOptions(opts...)

	if err := checkDots(l); err != nil {
		return nil, err
	}

	resolved := make([]*Promise, l.Len())

	for i := range l.entries {
		p, ok := l.Promise(i)
		if !ok {
			return nil, mismatch(i, "promise", l.entries[i].Slot)
		}

		r := p.Resolve()
		if inner, ok := r.code.Promise(); ok && inner == nil {
			return nil, mismatch(i, "promise", nil).
				With(slog.String("slot", "code"))
		}

		resolved[i] = r
	}

	t := makeTable(len(resolved))

	for i, r := range resolved {
		var value Value
		if r.bound {
			value = r.value
		}

		var env any
		if !IsNone(r.env) {
			env = r.env
		}

		t.Name = append(t.Name, l.entries[i].Name.String())
		t.Envir = append(t.Envir, env)
		t.Expr = append(t.Expr, r.code.Expr())
		t.Value = append(t.Value, value)
	}

	o.logger.Trace("unpack",
		slog.Int("rows", t.Len()),
		slog.Bool("named", l.Named()),
	)

	return t, nil
}

// Names returns the entry names of l, blank where an entry is unnamed.
//
// If no entry has an explicit name the result is nil, which is distinct from
// a slice of blanks: nil means nobody named anything.
func Names(l *List, opts ...Option) ([]string, error) {
	o := makeOptions(opts...)

	if err := checkDots(l); err != nil {
		return nil, err
	}

	if !l.Named() {
		o.logger.Trace("names absent", slog.Int("entries", l.Len()))

		return nil, nil
	}

	names := make([]string, l.Len())
	for i, e := range l.entries {
		names[i] = e.Name.String()
	}

	return names, nil
}
