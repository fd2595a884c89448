package cmd

import (
	"context"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/dots/lazy"
)

// Literal packs values into an argument list of forced promises.
type Literal struct {
	Output `embed:""`

	Names    []string `help:"Argument names, one per value; blank for none." sep:"," short:"n"`
	Template bool     `help:"Pack into the manifest's argument list in place."`

	Values []string `arg:"" help:"Values, each parsed as a YAML scalar or flow collection." optional:""`
}

// Run executes the literal command.
func (c *Literal) Run(ctx context.Context) error {
	values, err := parseValues(ctx, c.Values)
	if err != nil {
		return err
	}

	var names []string
	if len(c.Names) > 0 {
		names = c.Names
	}

	var l *lazy.List

	if c.Template {
		s, err := loadSession(ctx)
		if err != nil {
			return err
		}

		//nolint:staticcheck // the template is consumed on purpose
		l, err = lazy.PackLiteral(names, values, s.List, lazyOptions()...)
		if err != nil {
			return err
		}
	} else {
		l, err = lazy.Literal(names, values, lazyOptions()...)
		if err != nil {
			return err
		}
	}

	_, err = c.unpack(ctx, l)

	return err
}

// parseValues decodes each argument as YAML.
func parseValues(ctx context.Context, args []string) ([]lazy.Value, error) {
	values := make([]lazy.Value, len(args))

	for i, arg := range args {
		var v any

		if err := yaml.UnmarshalContext(ctx, []byte(arg), &v); err != nil {
			return nil, ErrParseValue.Wrap(err).With(
				slog.Int("index", i),
				slog.String("value", arg),
			)
		}

		values[i] = v
	}

	return values, nil
}
