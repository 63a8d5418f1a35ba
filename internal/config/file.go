package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	ContentPath  *string `toml:"content_path"`
	DBPath       *string `toml:"db_path"`
	Listen       *string `toml:"listen"`
	SSHListen    *string `toml:"ssh_listen"`
	SiteTitle    *string `toml:"site_title"`
	SiteTagline  *string `toml:"site_tagline"`
	SiteAuthor   *string `toml:"site_author"`
	SiteURL      *string `toml:"site_url"`
	PostsPerPage *int    `toml:"posts_per_page"`
	SenderName   *string `toml:"sender_name"`
	SenderEmail  *string `toml:"sender_email"`
	AdminEmail   *string `toml:"admin_email"`
}

// ConfigDir returns the folio config directory, respecting XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "folio")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "folio")
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadFile reads config.toml and merges non-nil fields into cfg.
// Returns true if the file existed, false otherwise.
func LoadFile(cfg *Config) (bool, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return true, err
	}

	if fc.ContentPath != nil {
		cfg.ContentPath = ExpandHome(*fc.ContentPath)
	}
	if fc.DBPath != nil {
		cfg.DBPath = ExpandHome(*fc.DBPath)
	}
	if fc.Listen != nil {
		cfg.Listen = *fc.Listen
	}
	if fc.SSHListen != nil {
		cfg.SSHListen = *fc.SSHListen
	}
	if fc.SiteTitle != nil {
		cfg.SiteTitle = *fc.SiteTitle
	}
	if fc.SiteTagline != nil {
		cfg.SiteTagline = *fc.SiteTagline
	}
	if fc.SiteAuthor != nil {
		cfg.SiteAuthor = *fc.SiteAuthor
	}
	if fc.SiteURL != nil {
		cfg.SiteURL = *fc.SiteURL
	}
	if fc.PostsPerPage != nil {
		cfg.PostsPerPage = *fc.PostsPerPage
	}
	if fc.SenderName != nil {
		cfg.SenderName = *fc.SenderName
	}
	if fc.SenderEmail != nil {
		cfg.SenderEmail = *fc.SenderEmail
	}
	if fc.AdminEmail != nil {
		cfg.AdminEmail = *fc.AdminEmail
	}

	return true, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, _ := os.UserHomeDir()
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
