package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/dots/host"
	"github.com/ardnew/dots/lazy"
	"github.com/ardnew/dots/log"
)

// Force forces the selected arguments and prints the argument list.
type Force struct {
	Output   `embed:""`
	Recorder `embed:""`

	Keep bool `help:"Keep environments of forced arguments."`

	Index []int `arg:"" help:"Argument positions, starting at 1 (default: all)." optional:""`
}

// Run executes the force command.
func (f *Force) Run(ctx context.Context) error {
	s, err := loadSession(ctx)
	if err != nil {
		return err
	}

	opts := []host.Option{
		host.WithLogger(log.Default()),
		host.WithKeepEnv(f.Keep),
	}

	if len(f.Index) == 0 {
		if _, err := host.ForceAll(ctx, s.List, opts...); err != nil {
			return err
		}
	}

	for _, n := range f.Index {
		if n < 1 || n > s.List.Len() {
			return ErrIndex.With(
				slog.Int("index", n),
				slog.Int("len", s.List.Len()),
			)
		}

		p, ok := s.List.Promise(n - 1)
		if !ok {
			return lazy.ErrTypeMismatch.With(
				slog.Int("index", n),
				slog.String("want", "promise"),
			)
		}

		if _, err := host.Force(ctx, p, opts...); err != nil {
			return lazy.WrapError(err).With(slog.Int("index", n))
		}
	}

	t, err := f.unpack(ctx, s.List)
	if err != nil {
		return err
	}

	return f.save(ctx, "force", t)
}
