package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/dots/host"
	"github.com/ardnew/dots/lazy"
	"github.com/ardnew/dots/log"
)

// Rewrite replaces the expressions or environments of the argument list.
type Rewrite struct {
	Expr RewriteExpr `cmd:"" help:"Replace argument expressions."`
	Env  RewriteEnv  `cmd:"" help:"Replace argument environments."`
}

// rewritten writes l, forcing it first when requested.
type rewritten struct {
	Output   `embed:""`
	Recorder `embed:""`

	Force bool `help:"Force the rewritten arguments." short:"F"`
}

func (r *rewritten) finish(ctx context.Context, label string, l *lazy.List) error {
	if r.Force {
		_, err := host.ForceAll(ctx, l, host.WithLogger(log.Default()))
		if err != nil {
			return err
		}
	}

	t, err := r.unpack(ctx, l)
	if err != nil {
		return err
	}

	return r.save(ctx, label, t)
}

// RewriteExpr replaces the expression of every argument, keeping its
// environment.
type RewriteExpr struct {
	rewritten `embed:""`

	Exprs []string `arg:"" help:"One expression per argument." optional:""`
}

// Run executes the rewrite expr command.
func (c *RewriteExpr) Run(ctx context.Context) error {
	s, err := loadSession(ctx)
	if err != nil {
		return err
	}

	exprs, err := host.CompileAll(c.Exprs...)
	if err != nil {
		return err
	}

	l, err := lazy.MutateExprs(s.List, exprs, lazyOptions()...)
	if err != nil {
		return err
	}

	return c.finish(ctx, "rewrite expr", l)
}

// RewriteEnv replaces the environment of every argument, keeping its
// expression.
type RewriteEnv struct {
	rewritten `embed:""`

	Envs []string `arg:"" help:"One environment name per argument." optional:""`
}

// Run executes the rewrite env command.
func (c *RewriteEnv) Run(ctx context.Context) error {
	s, err := loadSession(ctx)
	if err != nil {
		return err
	}

	envs := make([]lazy.Env, len(c.Envs))

	for i, name := range c.Envs {
		env, err := s.Env(name)
		if err != nil {
			return lazy.WrapError(err).With(slog.Int("index", i))
		}

		envs[i] = env
	}

	l, err := lazy.MutateEnvs(s.List, envs, lazyOptions()...)
	if err != nil {
		return err
	}

	return c.finish(ctx, "rewrite env", l)
}
