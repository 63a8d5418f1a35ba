package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jisub/folio/internal/config"
	"github.com/jisub/folio/internal/content"
	"github.com/jisub/folio/internal/mail"
	"github.com/jisub/folio/internal/site"
	"github.com/jisub/folio/internal/ssh"
	"github.com/jisub/folio/internal/store"
	"github.com/jisub/folio/internal/tui"
)

func main() {
	cfg := config.Default()
	if _, err := config.LoadFile(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error loading config:", err)
		os.Exit(1)
	}

	contentPath := flag.String("content", cfg.ContentPath, "path to content directory")
	dbPath := flag.String("db", cfg.DBPath, "path to index database (default: <content>/.folio/index.db)")
	serve := flag.Bool("serve", cfg.Serve, "run the HTTP site")
	listen := flag.String("listen", cfg.Listen, "listen address for -serve (e.g. :8080)")
	sshServe := flag.Bool("ssh", cfg.SSHServe, "serve the reader over SSH")
	sshListen := flag.String("ssh-listen", cfg.SSHListen, "listen address for -ssh (e.g. :2222)")
	messages := flag.Int("messages", 0, "print the N newest contact-form submissions and exit")

	flag.Parse()

	// Normalize the content path so the watcher and relative paths are stable.
	cfg.ContentPath = config.ExpandHome(*contentPath)
	if abs, err := filepath.Abs(cfg.ContentPath); err == nil {
		cfg.ContentPath = abs
	}
	cfg.DBPath = *dbPath
	cfg.Serve = *serve
	cfg.Listen = *listen
	cfg.SSHServe = *sshServe
	cfg.SSHListen = *sshListen

	if err := os.MkdirAll(cfg.ContentPath, 0755); err != nil {
		fmt.Fprintln(os.Stderr, "error creating content dir:", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath()), 0755); err != nil {
		fmt.Fprintln(os.Stderr, "error creating db dir:", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.DatabasePath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error opening index:", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	indexer := content.NewIndexer(db, cfg.ContentPath)
	if err := indexer.IndexAll(); err != nil {
		fmt.Fprintln(os.Stderr, "error indexing content:", err)
		os.Exit(1)
	}

	switch {
	case *messages > 0:
		if err := printMessages(db, *messages); err != nil {
			fmt.Fprintln(os.Stderr, "error listing messages:", err)
			os.Exit(1)
		}
	case cfg.Serve:
		runSite(cfg, db, indexer)
	case cfg.SSHServe:
		runSSH(cfg, db)
	default:
		runLocal(cfg, db, indexer)
	}
}

// printMessages dumps contact-form submissions for the site owner, newest
// first, without needing the database open in a second tool.
func printMessages(db *store.DB, limit int) error {
	msgs, err := db.ListContactMessages(limit)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		fmt.Println("no contact messages")
		return nil
	}
	for _, m := range msgs {
		fmt.Printf("%s  %s <%s>\n", m.CreatedAt.Format("2006-01-02 15:04"), m.Name, m.Email)
		if m.Subject != "" {
			fmt.Printf("  subject: %s\n", m.Subject)
		}
		fmt.Printf("  %s\n\n", m.Message)
	}
	return nil
}

func runLocal(cfg config.Config, db *store.DB, indexer *content.Indexer) {
	r := tui.New(cfg, db, indexer)
	p := tea.NewProgram(r, tea.WithAltScreen(), tea.WithMouseCellMotion())
	r.SetProgram(p)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error running reader:", err)
		os.Exit(1)
	}
}

func runSite(cfg config.Config, db *store.DB, indexer *content.Indexer) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "folio"})

	watcher, err := content.NewWatcher(indexer, nil)
	if err != nil {
		logger.Fatal("start watcher", "err", err)
	}
	go watcher.Start()
	defer func() { _ = watcher.Stop() }()

	mailer := mail.New(os.Getenv("BREVO_API_KEY"),
		mail.Address{Name: cfg.SenderName, Email: cfg.SenderEmail},
		mail.Address{Name: cfg.SiteAuthor, Email: cfg.AdminEmail})
	if !mailer.Enabled() {
		logger.Warn("BREVO_API_KEY not set; contact notifications disabled")
	}

	server, err := site.NewServer(db, cfg, mailer, logger)
	if err != nil {
		logger.Fatal("create server", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		logger.Fatal("serve", "err", err)
	}
}

func runSSH(cfg config.Config, db *store.DB) {
	s, err := ssh.New(cfg, db)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error creating ssh server:", err)
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		if err := s.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing server: %v\n", err)
		}
	}()

	log.Info("serving reader over ssh", "addr", cfg.SSHListen)
	if err := s.ListenAndServe(); err != nil {
		fmt.Fprintln(os.Stderr, "ssh server:", err)
	}
}
