package store

import (
	"database/sql"
	"fmt"
)

// Project is one portfolio project row.
type Project struct {
	ID          int64
	Path        string
	Slug        string
	Title       string
	Summary     string
	Content     string
	RepoURL     string
	DemoURL     string
	Image       string
	Featured    bool
	Published   bool
	PublishedAt string // YYYY-MM-DD
	Tech        []string
	Hash        string
}

const projectColumns = "id, path, slug, title, summary, content, repo_url, demo_url, image, featured, published, published_at"

// UpsertProject inserts or updates a project keyed by its source path and
// returns its ID.
func (db *DB) UpsertProject(p Project) (int64, error) {
	featured, published := 0, 0
	if p.Featured {
		featured = 1
	}
	if p.Published {
		published = 1
	}
	_, err := db.conn.Exec(`
		INSERT INTO projects (path, slug, title, summary, content, repo_url, demo_url, image, featured, published, published_at, hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			slug = excluded.slug,
			title = excluded.title,
			summary = excluded.summary,
			content = excluded.content,
			repo_url = excluded.repo_url,
			demo_url = excluded.demo_url,
			image = excluded.image,
			featured = excluded.featured,
			published = excluded.published,
			published_at = excluded.published_at,
			hash = excluded.hash
	`, p.Path, p.Slug, p.Title, p.Summary, p.Content, p.RepoURL, p.DemoURL, p.Image, featured, published, p.PublishedAt, p.Hash)
	if err != nil {
		return 0, fmt.Errorf("upsert project %q: %w", p.Path, err)
	}

	var id int64
	if err := db.conn.QueryRow("SELECT id FROM projects WHERE path = ?", p.Path).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// SetProjectTech replaces a project's tech list.
func (db *DB) SetProjectTech(projectID int64, tech []string) error {
	if _, err := db.conn.Exec("DELETE FROM project_tech WHERE project_id = ?", projectID); err != nil {
		return fmt.Errorf("clear project tech: %w", err)
	}
	for _, name := range tech {
		if _, err := db.conn.Exec("INSERT OR IGNORE INTO project_tech (project_id, name) VALUES (?, ?)", projectID, name); err != nil {
			return fmt.Errorf("link tech %q: %w", name, err)
		}
	}
	return nil
}

// GetProjectHash returns the stored content hash for a project path.
func (db *DB) GetProjectHash(path string) (string, error) {
	var hash string
	err := db.conn.QueryRow("SELECT hash FROM projects WHERE path = ?", path).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return hash, err
}

// DeleteProjectByPath removes a project and its tech links.
func (db *DB) DeleteProjectByPath(path string) error {
	_, err := db.conn.Exec("DELETE FROM projects WHERE path = ?", path)
	return err
}

// ListProjects returns published projects, newest first.
func (db *DB) ListProjects() ([]Project, error) {
	return db.queryProjects("SELECT " + projectColumns + " FROM projects WHERE published = 1 ORDER BY published_at DESC, id DESC")
}

// FeaturedProjects returns up to limit featured published projects.
func (db *DB) FeaturedProjects(limit int) ([]Project, error) {
	if limit <= 0 {
		limit = 3
	}
	return db.queryProjects(
		"SELECT "+projectColumns+" FROM projects WHERE published = 1 AND featured = 1 ORDER BY published_at DESC, id DESC LIMIT ?",
		limit)
}

// GetProjectBySlug returns a published project, or nil when absent.
func (db *DB) GetProjectBySlug(slug string) (*Project, error) {
	row := db.conn.QueryRow("SELECT "+projectColumns+" FROM projects WHERE slug = ? AND published = 1", slug)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if p.Tech, err = db.projectTech(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (db *DB) queryProjects(query string, args ...any) ([]Project, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].Tech, err = db.projectTech(projects[i].ID); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (db *DB) projectTech(projectID int64) ([]string, error) {
	rows, err := db.conn.Query("SELECT name FROM project_tech WHERE project_id = ? ORDER BY name", projectID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tech []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tech = append(tech, name)
	}
	return tech, rows.Err()
}

func scanProject(row rowScanner) (*Project, error) {
	var p Project
	var featured, published int
	err := row.Scan(&p.ID, &p.Path, &p.Slug, &p.Title, &p.Summary, &p.Content,
		&p.RepoURL, &p.DemoURL, &p.Image, &featured, &published, &p.PublishedAt)
	if err != nil {
		return nil, err
	}
	p.Featured = featured == 1
	p.Published = published == 1
	return &p, nil
}
