package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dots/host"
	"github.com/ardnew/dots/lazy"
	"github.com/ardnew/dots/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	manifestKey struct{}
	outputKey   struct{}
)

// stdinSource is the manifest path that reads from stdin.
const stdinSource = "-"

// WithManifest returns a new context.Context naming the manifest file that
// commands load their argument list from. The path "-" reads stdin.
func WithManifest(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, manifestKey{}, path)
}

func manifestFrom(ctx context.Context) string {
	path, _ := ctx.Value(manifestKey{}).(string)

	return path
}

// WithOutput returns a new context.Context whose commands write to w instead
// of os.Stdout.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	w, ok := ctx.Value(outputKey{}).(io.Writer)
	if !ok || w == nil {
		return os.Stdout
	}

	return w
}

// loadSession builds the manifest named in ctx.
func loadSession(ctx context.Context, opts ...host.Option) (*host.Session, error) {
	path := manifestFrom(ctx)
	if path == "" {
		return nil, ErrNoManifest
	}

	var (
		m   *host.Manifest
		err error
	)

	if path == stdinSource {
		var data []byte

		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, host.ErrManifest.Wrap(err).With(slog.String("path", path))
		}

		m, err = host.ParseManifest(ctx, data)
	} else {
		m, err = host.LoadManifest(ctx, path)
	}

	if err != nil {
		return nil, err
	}

	s, err := m.Build(ctx, append([]host.Option{host.WithLogger(log.Default())}, opts...)...)
	if err != nil {
		return nil, lazy.WrapError(err).With(slog.String("path", path))
	}

	log.DebugContext(ctx, "loaded manifest",
		slog.String("path", path),
		slog.Int("envs", len(s.Envs())),
		slog.Int("args", s.List.Len()),
	)

	return s, nil
}

// lazyOptions returns the options passed to every lazy operation.
func lazyOptions() []lazy.Option {
	return []lazy.Option{lazy.WithLogger(log.Default())}
}
