package ssh

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	bts "github.com/charmbracelet/wish/bubbletea"

	"github.com/jisub/folio/internal/config"
	"github.com/jisub/folio/internal/store"
	"github.com/jisub/folio/internal/tui"
)

// NewProgramHandler builds a reader program per SSH session. The program
// handle is wired back into the reader so the scroll tracker's debounced
// commits can reach the session's update loop. Sessions share the store but
// not the watcher; remote readers see content updates on their next document
// open.
func NewProgramHandler(cfg config.Config, db *store.DB) bts.ProgramHandler {
	return func(sess ssh.Session) *tea.Program {
		r := tui.New(cfg, db, nil)

		opts := []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		}
		opts = append(opts, bts.MakeOptions(sess)...)

		p := tea.NewProgram(r, opts...)
		r.SetProgram(p)
		return p
	}
}
