// Package ssh serves the terminal reader over SSH.
package ssh

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bts "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/jisub/folio/internal/config"
	"github.com/jisub/folio/internal/store"
)

// Server wraps a Wish SSH server.
type Server struct {
	server *ssh.Server
	cfg    config.Config
}

// New creates an SSH server exposing the reader for each session.
func New(cfg config.Config, db *store.DB) (*Server, error) {
	hostKeyPath := filepath.Join(cfg.ContentPath, ".folio", "ssh_host_key")

	s, err := wish.NewServer(
		wish.WithAddress(cfg.SSHListen),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			logging.Middleware(),
			activeterm.Middleware(),
			bts.MiddlewareWithProgramHandler(NewProgramHandler(cfg, db), termenv.ANSI256),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}

	return &Server{server: s, cfg: cfg}, nil
}

// ListenAndServe starts the SSH server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Close stops the SSH server.
func (s *Server) Close() error {
	return s.server.Close()
}
