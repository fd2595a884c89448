package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/dots/lazy"
)

// Output selects how a command writes its table.
type Output struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format."                                 short:"o"`
	Indent int    `default:"2"                          help:"Indent width for json and yaml; 0 for compact."`
	Filter string `help:"Only rows whose name fuzzy-matches PATTERN." placeholder:"PATTERN"                    short:"f"`
}

// write renders t to the command output in the selected format.
func (o Output) write(ctx context.Context, t *lazy.Table) error {
	w := outputFrom(ctx)
	t = t.Filter(o.Filter)

	var err error

	switch o.Format {
	case "json":
		err = t.FormatJSON(ctx, w, o.Indent)

	case "yaml":
		err = t.FormatYAML(ctx, w, o.Indent)

	default:
		err = t.Format(ctx, w)
	}

	if err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", o.Format))
	}

	return nil
}

// unpack projects l and writes the resulting table.
func (o Output) unpack(ctx context.Context, l *lazy.List) (*lazy.Table, error) {
	t, err := lazy.Unpack(l, lazyOptions()...)
	if err != nil {
		return nil, err
	}

	return t, o.write(ctx, t)
}
