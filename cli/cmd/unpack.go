package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/dots/host"
	"github.com/ardnew/dots/lazy"
	"github.com/ardnew/dots/log"
	"github.com/ardnew/dots/store"
)

// Recorder selects the database a command records its table in.
type Recorder struct {
	Record string `help:"Record the table in the database at DSN."   placeholder:"DSN"`
	Driver string `default:"sqlite3" enum:"sqlite3,mysql,postgres" help:"Database driver for --record."`
	Label  string `help:"Snapshot label (default: command name)."`
}

// save stores t when a DSN was given and reports the snapshot id.
func (r Recorder) save(ctx context.Context, label string, t *lazy.Table) error {
	if r.Record == "" {
		return nil
	}

	if r.Label != "" {
		label = r.Label
	}

	s, err := store.Open(ctx, r.Driver, r.Record, store.WithLogger(log.Default()))
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.Record(ctx, label, t)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "recorded snapshot",
		slog.Int64("id", id),
		slog.String("label", label),
		slog.Int("rows", t.Len()),
	)

	return nil
}

// Unpack prints the argument list as a table.
type Unpack struct {
	Output   `embed:""`
	Recorder `embed:""`

	Force bool `help:"Force every argument first." short:"F"`
	Keep  bool `help:"Keep environments of forced arguments."`
}

// Run executes the unpack command.
func (u *Unpack) Run(ctx context.Context) error {
	s, err := loadSession(ctx, host.WithKeepEnv(u.Keep))
	if err != nil {
		return err
	}

	if u.Force {
		_, err = host.ForceAll(ctx, s.List,
			host.WithLogger(log.Default()),
			host.WithKeepEnv(u.Keep),
		)
		if err != nil {
			return err
		}
	}

	t, err := u.unpack(ctx, s.List)
	if err != nil {
		return err
	}

	return u.save(ctx, "unpack", t)
}

// Names prints the argument names, one per line. It prints NULL when no
// argument is named.
type Names struct{}

// Run executes the names command.
func (*Names) Run(ctx context.Context) error {
	s, err := loadSession(ctx)
	if err != nil {
		return err
	}

	names, err := lazy.Names(s.List, lazyOptions()...)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	if names == nil {
		_, err = fmt.Fprintln(w, lazy.DeparseValue(nil))

		return err
	}

	for _, name := range names {
		if _, err := fmt.Fprintln(w, lazy.DeparseValue(name)); err != nil {
			return err
		}
	}

	return nil
}
