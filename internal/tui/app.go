package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avocadotools/avx/internal/container"
	"github.com/avocadotools/avx/internal/registry"
	"github.com/avocadotools/avx/internal/remote"
	"github.com/avocadotools/avx/internal/target"
)

// Run starts the explorer dashboard and blocks until the user quits.
// Explorer containers are torn down on exit; they exist only to serve this
// process and would leak otherwise.
func Run(reg *registry.Registry, mgr *container.Manager, explorer *remote.Explorer, store *target.Store) error {
	m := newModel(reg, mgr, explorer, store)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	mgr.CleanupAll(context.Background())
	return nil
}
