package host

import (
	"context"
	"log/slog"

	"github.com/ardnew/dots/lazy"
)

// Force returns the value of p, evaluating it first if necessary.
//
// An unforced promise with literal code evaluates that code in its
// environment: an [*Expr] runs against the environment's scope, any other
// literal is its own value. Chained code forces the inner promise. The
// result is delivered to p, which releases its environment unless
// [WithKeepEnv] is set.
//
// Forcing a promise that is already under evaluation fails with
// [ErrRecursive].
func Force(ctx context.Context, p *lazy.Promise, opts ...Option) (lazy.Value, error) {
	o := makeOptions(opts...)

	return force(ctx, p, &o)
}

func force(ctx context.Context, p *lazy.Promise, o *options) (lazy.Value, error) {
	if v, ok := p.Value(); ok {
		return v, nil
	}

	if p.Seen() {
		return nil, ErrRecursive.With(
			slog.String("expr", lazy.DeparseValue(p.Code().Expr())),
		)
	}

	if err := context.Cause(ctx); err != nil {
		return nil, err
	}

	p.Enter()
	defer p.Leave()

	v, err := eval(ctx, p, o)
	if err != nil {
		return nil, err
	}

	if o.keepEnv {
		p.Cache(v)
	} else {
		p.Deliver(v)
	}

	o.logger.TraceContext(ctx, "force",
		slog.String("value", lazy.DeparseValue(v)),
		slog.Bool("released", lazy.IsNone(p.Env())),
	)

	return v, nil
}

func eval(ctx context.Context, p *lazy.Promise, o *options) (lazy.Value, error) {
	if inner, ok := p.Code().Promise(); ok {
		if inner == nil {
			return nil, lazy.ErrTypeMismatch.With(
				slog.String("want", "promise"),
				slog.String("got", "nil"),
			)
		}

		return force(ctx, inner, o)
	}

	x, ok := p.Code().Expr().(*Expr)
	if !ok {
		return p.Code().Expr(), nil
	}

	if lazy.IsNone(p.Env()) {
		return nil, ErrUnknownEnv.With(slog.String("expr", x.source))
	}

	env, ok := p.Env().(*Env)
	if !ok {
		return nil, ErrUnknownEnv.With(
			slog.String("expr", x.source),
			slog.String("env", p.Env().EnvName()),
		)
	}

	return x.Eval(env)
}

// ForceAll forces every promise of l in order and returns their values.
func ForceAll(ctx context.Context, l *lazy.List, opts ...Option) ([]lazy.Value, error) {
	o := makeOptions(opts...)

	values := make([]lazy.Value, l.Len())

	for i, e := range l.All() {
		p, ok := l.Promise(i)
		if !ok {
			return nil, lazy.ErrTypeMismatch.With(
				slog.Int("index", i),
				slog.String("want", "promise"),
			)
		}

		v, err := force(ctx, p, &o)
		if err != nil {
			return nil, lazy.WrapError(err).With(
				slog.Int("index", i),
				slog.String("name", e.Name.String()),
			)
		}

		values[i] = v
	}

	return values, nil
}
