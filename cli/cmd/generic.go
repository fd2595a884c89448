package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/dots/lazy"
	"github.com/ardnew/dots/log"
)

// Generic prints the argument list as a plain list of raw slots, then
// converts it back and prints the rebuilt argument list.
type Generic struct {
	Output `embed:""`

	Raw bool `help:"Print only the plain list."`
}

// Run executes the generic command.
func (g *Generic) Run(ctx context.Context) error {
	s, err := loadSession(ctx)
	if err != nil {
		return err
	}

	gen, err := lazy.ToGeneric(s.List, lazyOptions()...)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	for i, v := range gen.Values {
		name := ""
		if gen.Names != nil {
			name = gen.Names[i]
		}

		_, err := fmt.Fprintf(w, "[[%d]] %s %s\n",
			i+1, lazy.DeparseValue(name), lazy.DeparseValue(v))
		if err != nil {
			return err
		}
	}

	if g.Raw {
		return nil
	}

	l, err := lazy.FromGeneric(gen, lazyOptions()...)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "round trip",
		slog.Int("entries", l.Len()),
		slog.Bool("named", l.Named()),
	)

	_, err = g.unpack(ctx, l)

	return err
}
