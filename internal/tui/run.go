package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/library"
	"folio/internal/router"
)

// Run wires a coordinator to the interactive browser and blocks until the
// user quits. The initial collection load happens before the program
// starts; a load failure still opens the browser with the error notice
// showing so the user can retry with r.
func Run(ctx context.Context, log *slog.Logger, store library.Store, search library.Searcher) error {
	location := router.NewMemoryLocation(router.FragmentLibrary)
	rt := router.New(location)
	scr := &screen{}
	manager := library.NewManager(ctx, log, store, search, rt, scr)
	_ = manager.LoadAll(ctx)

	model := NewModel(ctx, manager, rt, scr)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}
