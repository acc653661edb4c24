package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/IsekaiAgile/chef-game-sub001/internal/store"
	"github.com/IsekaiAgile/chef-game-sub001/internal/util"
)

// Run boots the TUI program and blocks until it exits. db may be nil
// when no archive database is configured.
func Run(ctx context.Context, db *store.DB, cfg util.Config) error {
	m := initialModel(ctx, db, cfg)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
