package lazy

import (
	"log/slog"
)

// MutateExprs returns a new list whose promises evaluate exprs[i] in place of
// the original code of dots[i].
//
// Each original promise is followed to its [Promise.Origin]. The new promise
// takes that origin's environment and its cached value, so a value forced
// under the old code survives the rewrite. An origin without an environment
// cannot take a new expression and fails with [ErrAlreadyForced].
//
// dots is never modified. The result carries a copy of its attributes.
func MutateExprs(dots *List, exprs []Expr, opts ...Option) (*List, error) {
	o := makeOptions(opts...)

	ps, err := origins(dots, len(exprs), "exprs")
	if err != nil {
		return nil, err
	}

	for i, p := range ps {
		if IsNone(p.env) {
			return nil, ErrAlreadyForced.With(
				slog.Int("index", i),
				slog.String("name", dots.entries[i].Name.String()),
			)
		}
	}

	out := &List{
		entries: make([]Entry, len(ps)),
		attrs:   dots.Attrs(),
	}

	for i, p := range ps {
		out.entries[i] = Entry{
			Name: dots.entries[i].Name,
			Slot: &Promise{
				code:  LiteralCode(exprs[i]),
				env:   p.env,
				value: p.value,
				bound: p.bound,
			},
		}
	}

	o.logger.Trace("mutate expressions", slog.Int("entries", out.Len()))

	return out, nil
}

// MutateEnvs returns a new list whose promises evaluate the original code of
// dots[i] in envs[i].
//
// Each original promise is followed to its [Promise.Origin], past forced
// links. The new promise keeps that origin's code, takes envs[i], and is
// unforced: a value computed in the old environment says nothing about the
// new one.
//
// dots is never modified. The result carries a copy of its attributes.
func MutateEnvs(dots *List, envs []Env, opts ...Option) (*List, error) {
	o := makeOptions(opts...)

	ps, err := origins(dots, len(envs), "envs")
	if err != nil {
		return nil, err
	}

	for i, env := range envs {
		if IsNone(env) {
			return nil, mismatch(i, "environment", env)
		}
	}

	out := &List{
		entries: make([]Entry, len(ps)),
		attrs:   dots.Attrs(),
	}

	for i, p := range ps {
		out.entries[i] = Entry{
			Name: dots.entries[i].Name,
			Slot: &Promise{
				code: p.code,
				env:  envs[i],
			},
		}
	}

	o.logger.Trace("mutate environments", slog.Int("entries", out.Len()))

	return out, nil
}

// origins validates dots against a replacement sequence of length n and
// returns the origin promise of every entry.
func origins(dots *List, n int, what string) ([]*Promise, error) {
	if err := checkDots(dots); err != nil {
		return nil, err
	}

	if n != dots.Len() {
		return nil, lengthMismatch(what, dots.Len(), n)
	}

	ps := make([]*Promise, dots.Len())

	for i := range dots.entries {
		p, ok := dots.Promise(i)
		if !ok {
			return nil, mismatch(i, "promise", dots.entries[i].Slot)
		}

		if p.broken() {
			return nil, mismatch(i, "promise", nil).
				With(slog.String("slot", "code"))
		}

		ps[i] = p.Origin()
	}

	return ps, nil
}
