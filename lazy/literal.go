package lazy

import (
	"log/slog"
)

// Literal returns a new list whose promises are already forced to values.
//
// names may be nil. Otherwise it must have one element per value; blank
// names produce unnamed entries.
func Literal(names []string, values []Value, opts ...Option) (*List, error) {
	o := makeOptions(opts...)

	if names != nil && len(names) != len(values) {
		return nil, lengthMismatch("names", len(values), len(names))
	}

	l := newListSize(len(values))

	for i, v := range values {
		name := Unnamed
		if names != nil {
			name = nameOf(names[i])
		}

		l.Append(name, NewForced(v))
	}

	o.logger.Trace("literal", slog.Int("entries", l.Len()))

	return l, nil
}

// PackLiteral forces the promises of template to values in place and returns
// the template.
//
// Each of the first len(values) promises gets values[i] as both its code and
// its cached value, and loses its environment. A non-blank names[i]
// overwrites the entry's name. Entries beyond len(values) are dropped from
// the returned list. If values is empty the template is ignored and a new
// empty list is returned.
//
// The template must be a list tagged [ClassDots]. It is consumed: callers
// must not use it after this call.
//
// Deprecated: PackLiteral mutates caller-owned data. Use [Literal], which
// builds the same list from fresh promises.
func PackLiteral(
	names []string,
	values []Value,
	template *List,
	opts ...Option,
) (*List, error) {
	o := makeOptions(opts...)

	if len(values) == 0 {
		return newListSize(0), nil
	}

	if names != nil && len(names) != len(values) {
		return nil, lengthMismatch("names", len(values), len(names))
	}

	if err := checkDots(template); err != nil {
		return nil, err
	}

	if template.Len() < len(values) {
		return nil, lengthMismatch("template", len(values), template.Len())
	}

	// Check every slot before touching any of them.
	for i := range values {
		if _, ok := template.Promise(i); !ok {
			return nil, mismatch(i, "promise", template.entries[i].Slot)
		}
	}

	for i, v := range values {
		p, _ := template.Promise(i)

		p.code = LiteralCode(v)
		p.value = v
		p.bound = true
		p.env = nil
		p.seen = false

		if names != nil && names[i] != "" {
			template.entries[i].Name = Named(names[i])
		}
	}

	template.entries = template.entries[:len(values)]

	o.logger.Trace("pack literal",
		slog.Int("entries", len(values)),
		slog.Bool("named", names != nil),
	)

	return template, nil
}
