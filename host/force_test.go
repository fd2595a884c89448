package host

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/dots/lazy"
)

func mustCompile(t *testing.T, source string) *Expr {
	t.Helper()

	x, err := Compile(source)
	require.NoError(t, err)

	return x
}

func TestForce_DeliversAndReleases(t *testing.T) {
	env := NewEnv("global", nil, map[string]any{"x": 40})
	p := lazy.NewPromise(mustCompile(t, "x + 2"), env)

	v, err := Force(t.Context(), p)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	cached, ok := p.Value()
	require.True(t, ok)
	assert.Equal(t, 42, cached)
	assert.Nil(t, p.Env())
	assert.False(t, p.Seen())
}

func TestForce_KeepEnv(t *testing.T) {
	env := NewEnv("global", nil, map[string]any{"x": 1})
	p := lazy.NewPromise(mustCompile(t, "x * 7"), env)

	v, err := Force(t.Context(), p, WithKeepEnv(true))
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Same(t, env, p.Env())
	assert.True(t, p.Forced())
}

func TestForce_CachedValueNotRecomputed(t *testing.T) {
	env := NewEnv("global", nil, map[string]any{"x": 1})
	p := lazy.NewPromise(mustCompile(t, "x"), env)

	_, err := Force(t.Context(), p, WithKeepEnv(true))
	require.NoError(t, err)

	env.Define("x", 100)

	v, err := Force(t.Context(), p)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestForce_Chained(t *testing.T) {
	env := NewEnv("global", nil, map[string]any{"y": 5})
	inner := lazy.NewPromise(mustCompile(t, "y"), env)
	outer := lazy.NewChained(inner, env)

	v, err := Force(t.Context(), outer)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.True(t, inner.Forced())
	assert.True(t, outer.Forced())
	assert.Nil(t, outer.Env())
}

func TestForce_LiteralCode(t *testing.T) {
	p := lazy.NewPromise("plain", NewEnv("global", nil, nil))

	v, err := Force(t.Context(), p)
	require.NoError(t, err)
	assert.Equal(t, "plain", v)
}

func TestForce_Errors(t *testing.T) {
	tests := []struct {
		name    string
		promise func() *lazy.Promise
		want    error
	}{
		{
			name: "evaluate",
			promise: func() *lazy.Promise {
				env := NewEnv("g", nil, map[string]any{"s": "abc"})

				return lazy.NewPromise(mustCompile(t, "int(s)"), env)
			},
			want: ErrEvaluate,
		},
		{
			name: "recursive",
			promise: func() *lazy.Promise {
				p := lazy.NewPromise(mustCompile(t, "1"), NewEnv("g", nil, nil))
				p.Enter()

				return p
			},
			want: ErrRecursive,
		},
		{
			name: "missing env",
			promise: func() *lazy.Promise {
				return lazy.NewPromise(mustCompile(t, "1"), nil)
			},
			want: ErrUnknownEnv,
		},
		{
			name: "broken chain",
			promise: func() *lazy.Promise {
				return lazy.NewChained(nil, NewEnv("g", nil, nil))
			},
			want: lazy.ErrTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.promise()

			_, err := Force(t.Context(), p)
			require.ErrorIs(t, err, tt.want)
			assert.False(t, p.Forced())
		})
	}
}

func TestForce_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancelCause(t.Context())
	cause := errors.New("stop")
	cancel(cause)

	p := lazy.NewPromise(mustCompile(t, "1"), NewEnv("g", nil, nil))

	_, err := Force(ctx, p)
	require.ErrorIs(t, err, cause)
	assert.False(t, p.Forced())
}

func TestForceAll(t *testing.T) {
	env := NewEnv("global", nil, map[string]any{"x": 3})

	l := lazy.NewList().
		Append(lazy.Named("a"), lazy.NewPromise(mustCompile(t, "x"), env)).
		Append(lazy.Unnamed, lazy.NewForced("ready")).
		Append(lazy.Named("c"), lazy.NewPromise(mustCompile(t, "x * x"), env))

	values, err := ForceAll(t.Context(), l)
	require.NoError(t, err)
	assert.Equal(t, []lazy.Value{3, "ready", 9}, values)
}

func TestForceAll_ReportsIndex(t *testing.T) {
	l := lazy.NewList(
		lazy.Entry{Name: lazy.Named("a"), Slot: lazy.NewForced(1)},
		lazy.Entry{Name: lazy.Named("b"), Slot: lazy.NewPromise(mustCompile(t, "1"), nil)},
	)

	_, err := ForceAll(t.Context(), l)
	require.ErrorIs(t, err, ErrUnknownEnv)

	var le *lazy.Error
	require.ErrorAs(t, err, &le)
	assert.Contains(t, err.Error(), "index=1")
	assert.Contains(t, err.Error(), "name=b")
}
