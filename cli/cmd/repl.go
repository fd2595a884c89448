package cmd

import (
	"context"
	"os"

	"github.com/ardnew/dots/cli/cmd/repl"
	"github.com/ardnew/dots/log"
)

// Repl starts the interactive inspector over the manifest's argument list.
type Repl struct{}

// Run executes the repl command.
func (*Repl) Run(ctx context.Context) error {
	s, err := loadSession(ctx)
	if err != nil {
		return err
	}

	cacheDir := os.TempDir()
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok {
			cacheDir = dir
		}
	}

	return repl.Run(ctx, s, cacheDir, log.Default())
}
