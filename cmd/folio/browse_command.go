package main

import (
	"fmt"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"folio/internal/tui"
)

func newBrowseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse your library interactively",
		Long: "Open the full-screen library browser: navigate your collection, search " +
			"the catalog, and manage annotations without leaving the terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.browseLogger()
			if err != nil {
				return err
			}
			store, err := ctx.storeClient()
			if err != nil {
				return err
			}
			cat, err := ctx.catalogClient()
			if err != nil {
				return err
			}

			// One browser per state directory. A second instance would
			// fight over the terminal and hold a stale view of the
			// collection.
			lock := flock.New(cfg.LockPath())
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire browser lock: %w", err)
			}
			if !ok {
				return fmt.Errorf("another folio browser is already running (lock %s)", cfg.LockPath())
			}
			defer func() { _ = lock.Unlock() }()

			return tui.Run(cmd.Context(), logger, store, cat)
		},
	}
}
