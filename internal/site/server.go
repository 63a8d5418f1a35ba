// Package site serves the portfolio over HTTP with server-rendered pages.
package site

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jisub/folio/internal/config"
	"github.com/jisub/folio/internal/mail"
	"github.com/jisub/folio/internal/markdown"
	"github.com/jisub/folio/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Notifier sends contact-form notifications. Satisfied by *mail.Mailer.
type Notifier interface {
	Enabled() bool
	SendContactNotification(ctx context.Context, n mail.ContactNotification) error
}

// Server renders the portfolio pages from the content store.
type Server struct {
	db       *store.DB
	cfg      config.Config
	renderer *markdown.Renderer
	mailer   Notifier
	logger   *log.Logger
	pages    map[string]*template.Template
}

func NewServer(db *store.DB, cfg config.Config, mailer Notifier, logger *log.Logger) (*Server, error) {
	s := &Server{
		db:       db,
		cfg:      cfg,
		renderer: markdown.NewRenderer(),
		mailer:   mailer,
		logger:   logger,
	}
	if err := s.parseTemplates(); err != nil {
		return nil, err
	}
	return s, nil
}

// pageNames lists every page template; each is parsed together with the
// shared layout.
var pageNames = []string{
	"home", "blog", "blog_post", "projects", "project",
	"techstack", "about", "contact", "notfound",
}

func (s *Server) parseTemplates() error {
	s.pages = make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		s.pages[name] = t
	}
	return nil
}

// Handler returns the site's routed handler with logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /blog", s.handleBlog)
	mux.HandleFunc("GET /blog/{slug}", s.handleBlogPost)
	mux.HandleFunc("GET /projects", s.handleProjects)
	mux.HandleFunc("GET /projects/{slug}", s.handleProject)
	mux.HandleFunc("GET /tech-stack", s.handleTechStack)
	mux.HandleFunc("GET /about", s.handleAbout)
	mux.HandleFunc("GET /contact", s.handleContactForm)
	mux.HandleFunc("POST /contact", s.handleContactSubmit)
	mux.HandleFunc("/", s.handleNotFound)
	return s.logRequests(mux)
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Listen,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving site", "addr", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"dur", time.Since(start).Round(time.Millisecond))
	})
}

// siteMeta is the layout-level data every page carries.
type siteMeta struct {
	Title   string
	Tagline string
	Author  string
	BaseURL string
	Year    int
}

func (s *Server) meta() siteMeta {
	return siteMeta{
		Title:   s.cfg.SiteTitle,
		Tagline: s.cfg.SiteTagline,
		Author:  s.cfg.SiteAuthor,
		BaseURL: s.cfg.SiteURL,
		Year:    time.Now().Year(),
	}
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := s.pages[page]
	if !ok {
		s.logger.Error("unknown page template", "page", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		s.logger.Error("render page", "page", page, "err", err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, where string, err error) {
	s.logger.Error(where, "err", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// aboutContent loads and renders about.md from the content directory.
func (s *Server) aboutContent() (template.HTML, error) {
	raw, err := os.ReadFile(filepath.Join(s.cfg.ContentPath, "about.md"))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	fm := markdown.ExtractFrontmatter(string(raw))
	html, err := s.renderer.Render(fm.Body(string(raw)))
	if err != nil {
		return "", err
	}
	return template.HTML(html), nil
}
