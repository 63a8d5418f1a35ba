package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jisub/folio/internal/store"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestIndexer(t *testing.T) (*Indexer, *store.DB, string) {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	root := t.TempDir()
	return NewIndexer(db, root), db, root
}

func TestIndexAll(t *testing.T) {
	idx, db, root := newTestIndexer(t)

	writeFile(t, root, "posts/first-post.md", `---
title: First Post
category: go
tags: [go, tui]
date: 2025-03-01
---

## Intro

Around two hundred words would be one minute of reading.
`)
	writeFile(t, root, "posts/draft.md", `---
title: Draft Post
draft: true
---
body`)
	writeFile(t, root, "projects/folio.md", `---
title: folio
repo_url: https://github.com/jisub/folio
featured: true
tech: [Go, SQLite]
date: 2025-05-01
---

## About

A portfolio engine.
`)
	writeFile(t, root, "techstack.toml", `
[[category]]
name = "Backend"

  [[category.item]]
  name = "Go"
  icon = "go"
`)
	writeFile(t, root, ".hidden/skip.md", "## Skipped")

	if err := idx.IndexAll(); err != nil {
		t.Fatal(err)
	}

	post, err := db.GetPostBySlug("first-post")
	if err != nil {
		t.Fatal(err)
	}
	if post == nil {
		t.Fatal("post not indexed")
	}
	if post.Category != "go" || post.PublishedAt != "2025-03-01" {
		t.Errorf("post metadata: %+v", post)
	}
	if post.ReadingTime < 1 {
		t.Errorf("reading time not computed: %d", post.ReadingTime)
	}
	if len(post.Tags) != 2 {
		t.Errorf("tags: %v", post.Tags)
	}

	if draft, _ := db.GetPostBySlug("draft-post"); draft != nil {
		t.Errorf("draft should not be published: %+v", draft)
	}

	project, err := db.GetProjectBySlug("folio")
	if err != nil {
		t.Fatal(err)
	}
	if project == nil || !project.Featured || len(project.Tech) != 2 {
		t.Errorf("project: %+v", project)
	}

	cats, err := db.ListTechCategories()
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 1 || cats[0].Name != "Backend" || len(cats[0].Items) != 1 {
		t.Errorf("tech stack: %+v", cats)
	}
}

func TestIndexFileUnchangedSkips(t *testing.T) {
	idx, db, root := newTestIndexer(t)

	path := writeFile(t, root, "posts/a.md", "---\ntitle: A\ndate: 2025-01-01\n---\nbody")
	if err := idx.IndexFile(path); err != nil {
		t.Fatal(err)
	}
	// Re-index without modification; must not error or duplicate.
	if err := idx.IndexFile(path); err != nil {
		t.Fatal(err)
	}

	n, err := db.CountPosts(store.PostFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("got %d posts, want 1", n)
	}
}

func TestSlugFallsBackToTitle(t *testing.T) {
	idx, db, root := newTestIndexer(t)

	path := writeFile(t, root, "posts/my-note.md", "---\ntitle: Hello World!\ndate: 2025-01-01\n---\nbody")
	if err := idx.IndexFile(path); err != nil {
		t.Fatal(err)
	}

	post, err := db.GetPostBySlug("hello-world")
	if err != nil {
		t.Fatal(err)
	}
	if post == nil {
		t.Fatal("slug should derive from title")
	}
}

func TestRemoveFile(t *testing.T) {
	idx, db, root := newTestIndexer(t)

	path := writeFile(t, root, "posts/bye.md", "---\ntitle: Bye\ndate: 2025-01-01\n---\nbody")
	if err := idx.IndexFile(path); err != nil {
		t.Fatal(err)
	}
	if err := idx.RemoveFile(path); err != nil {
		t.Fatal(err)
	}

	post, err := db.GetPostBySlug("bye")
	if err != nil {
		t.Fatal(err)
	}
	if post != nil {
		t.Errorf("post should be removed: %+v", post)
	}
}
