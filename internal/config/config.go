package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	ContentPath  string
	DBPath       string
	Listen       string // HTTP listen address
	SSHListen    string
	Serve        bool
	SSHServe     bool
	SiteTitle    string
	SiteTagline  string
	SiteAuthor   string
	SiteURL      string
	PostsPerPage int
	SenderName   string
	SenderEmail  string
	AdminEmail   string
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		ContentPath:  filepath.Join(home, "portfolio"),
		Listen:       ":8080",
		SSHListen:    ":2222",
		SiteTitle:    "folio",
		SiteTagline:  "projects, posts, and experiments",
		PostsPerPage: 6,
		SenderName:   "folio",
	}
}

// DatabasePath returns the configured DB path, defaulting to an index file
// inside the content directory.
func (c Config) DatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.ContentPath, ".folio", "index.db")
}
