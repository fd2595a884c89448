package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ardnew/dots/lazy"
	"github.com/ardnew/dots/log"
	"github.com/ardnew/dots/store"
)

// History lists the snapshots recorded in a database, or prints one of them.
type History struct {
	Output `embed:""`

	Driver string `default:"sqlite3" enum:"sqlite3,mysql,postgres" help:"Database driver."`

	DSN string `arg:"" help:"Database to read."`
	ID  int64  `arg:"" help:"Snapshot to print (default: list all)." optional:""`
}

// Run executes the history command.
func (h *History) Run(ctx context.Context) error {
	s, err := store.Open(ctx, h.Driver, h.DSN, store.WithLogger(log.Default()))
	if err != nil {
		return err
	}
	defer s.Close()

	if h.ID != 0 {
		snap, err := s.Load(ctx, h.ID)
		if err != nil {
			return err
		}

		return h.write(ctx, lazy.TableOf(snap.Rows))
	}

	snaps, err := s.List(ctx)
	if err != nil {
		return err
	}

	return writeSnapshots(ctx, snaps)
}

func writeSnapshots(ctx context.Context, snaps []store.Snapshot) error {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("id", "label", "created").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}

			return cell
		})

	for _, snap := range snaps {
		tbl.Row(
			strconv.FormatInt(snap.ID, 10),
			snap.Label,
			snap.Created.Local().Format(time.DateTime),
		)
	}

	_, err := fmt.Fprintln(outputFrom(ctx), tbl.Render())

	return err
}
