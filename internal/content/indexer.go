// Package content loads the content directory (posts/, projects/, about.md,
// techstack.toml) into the store and keeps it fresh as files change.
package content

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jisub/folio/internal/markdown"
	"github.com/jisub/folio/internal/store"
)

// Words-per-minute basis for the reading-time estimate shown on post cards.
const readingWPM = 200

// Indexer mirrors content files into the store.
type Indexer struct {
	db   *store.DB
	root string
}

func NewIndexer(db *store.DB, root string) *Indexer {
	return &Indexer{db: db, root: root}
}

// Root returns the content directory being indexed.
func (idx *Indexer) Root() string {
	return idx.root
}

// IndexAll performs a full index of the content directory.
func (idx *Indexer) IndexAll() error {
	err := filepath.Walk(idx.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != idx.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !indexable(path) {
			return nil
		}
		return idx.IndexFile(path)
	})
	if err != nil {
		return fmt.Errorf("index %s: %w", idx.root, err)
	}
	return nil
}

// IndexFile indexes a single content file, dispatching on its location.
func (idx *Indexer) IndexFile(absPath string) error {
	rel := idx.relPath(absPath)
	switch {
	case rel == "techstack.toml":
		return idx.indexTechStacks(absPath)
	case strings.HasPrefix(rel, "posts/") && strings.HasSuffix(rel, ".md"):
		return idx.indexPost(absPath, rel)
	case strings.HasPrefix(rel, "projects/") && strings.HasSuffix(rel, ".md"):
		return idx.indexProject(absPath, rel)
	}
	return nil
}

// RemoveFile drops a deleted content file from the store.
func (idx *Indexer) RemoveFile(absPath string) error {
	rel := idx.relPath(absPath)
	switch {
	case strings.HasPrefix(rel, "posts/"):
		return idx.db.DeletePostByPath(rel)
	case strings.HasPrefix(rel, "projects/"):
		return idx.db.DeleteProjectByPath(rel)
	}
	return nil
}

func (idx *Indexer) indexPost(absPath, rel string) error {
	raw, hash, changed, err := idx.readChanged(absPath, idx.db.GetPostHash, rel)
	if err != nil || !changed {
		return err
	}

	fm := markdown.ExtractFrontmatter(raw)
	body := fm.Body(raw)

	title := titleFromPath(rel)
	post := store.Post{
		Path:        rel,
		Title:       title,
		Content:     body,
		ReadingTime: readingTime(body),
		Published:   true,
		Hash:        hash,
	}
	if fm != nil {
		if fm.Title != "" {
			post.Title = fm.Title
		}
		post.Summary = fm.Summary
		post.Category = fm.Category
		post.Image = fm.Image
		post.PublishedAt = fm.Date
		post.Published = !fm.Draft
		post.Tags = fm.Tags
		post.Slug = fm.Slug
	}
	if post.Slug == "" {
		post.Slug = markdown.Slugify(post.Title)
	}

	id, err := idx.db.UpsertPost(post)
	if err != nil {
		return err
	}
	if err := idx.db.SetPostTags(id, post.Tags); err != nil {
		return fmt.Errorf("set tags for %s: %w", rel, err)
	}
	if err := idx.db.UpdatePostFTS(id, post.Title, body, post.Tags); err != nil {
		return fmt.Errorf("update FTS for %s: %w", rel, err)
	}
	return nil
}

func (idx *Indexer) indexProject(absPath, rel string) error {
	raw, hash, changed, err := idx.readChanged(absPath, idx.db.GetProjectHash, rel)
	if err != nil || !changed {
		return err
	}

	fm := markdown.ExtractFrontmatter(raw)
	body := fm.Body(raw)

	project := store.Project{
		Path:      rel,
		Title:     titleFromPath(rel),
		Content:   body,
		Published: true,
		Hash:      hash,
	}
	if fm != nil {
		if fm.Title != "" {
			project.Title = fm.Title
		}
		project.Summary = fm.Summary
		project.RepoURL = fm.RepoURL
		project.DemoURL = fm.DemoURL
		project.Image = fm.Image
		project.Featured = fm.Featured
		project.PublishedAt = fm.Date
		project.Published = !fm.Draft
		project.Tech = fm.Tech
		project.Slug = fm.Slug
	}
	if project.Slug == "" {
		project.Slug = markdown.Slugify(project.Title)
	}

	id, err := idx.db.UpsertProject(project)
	if err != nil {
		return err
	}
	if err := idx.db.SetProjectTech(id, project.Tech); err != nil {
		return fmt.Errorf("set tech for %s: %w", rel, err)
	}
	return nil
}

// readChanged reads a file and short-circuits when its hash matches the
// stored one.
func (idx *Indexer) readChanged(absPath string, getHash func(string) (string, error), rel string) (raw, hash string, changed bool, err error) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", "", false, fmt.Errorf("read %s: %w", absPath, err)
	}
	hash = fmt.Sprintf("%x", sha256.Sum256(data))
	existing, err := getHash(rel)
	if err != nil {
		return "", "", false, err
	}
	if hash == existing {
		return "", hash, false, nil
	}
	return string(data), hash, true, nil
}

func (idx *Indexer) relPath(absPath string) string {
	rel, err := filepath.Rel(idx.root, absPath)
	if err != nil {
		rel = absPath
	}
	return filepath.ToSlash(rel)
}

func indexable(path string) bool {
	return strings.HasSuffix(path, ".md") || filepath.Base(path) == "techstack.toml"
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return name
}

func readingTime(body string) int {
	words := len(strings.Fields(body))
	return (words + readingWPM - 1) / readingWPM
}
