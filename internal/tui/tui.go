package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/lists/internal/lists"
)

// Options tune the interactive session.
type Options struct {
	HideChecked bool
}

// Run starts the Bubble Tea program on the alternate screen and blocks until
// the user quits. Nothing needs saving on exit: every change was written
// through as it happened.
func Run(mgr *lists.Manager, opt Options) error {
	p := tea.NewProgram(newModel(mgr, opt.HideChecked), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
