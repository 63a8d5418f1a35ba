package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// Post is one blog post row.
type Post struct {
	ID          int64
	Path        string
	Slug        string
	Title       string
	Summary     string
	Content     string
	Category    string
	Image       string
	ReadingTime int
	Published   bool
	PublishedAt string // YYYY-MM-DD
	Tags        []string
	Hash        string // content hash set by the indexer
}

// PostFilter narrows ListPosts/CountPosts. Query uses full-text search when
// non-empty. Page is 1-based; PerPage <= 0 disables pagination.
type PostFilter struct {
	Category string
	Query    string
	Page     int
	PerPage  int
}

const postColumns = "p.id, p.path, p.slug, p.title, p.summary, p.content, p.category, p.image, p.reading_time, p.published, p.published_at"

// UpsertPost inserts or updates a post keyed by its source path and returns
// its ID.
func (db *DB) UpsertPost(p Post) (int64, error) {
	published := 0
	if p.Published {
		published = 1
	}
	_, err := db.conn.Exec(`
		INSERT INTO posts (path, slug, title, summary, content, category, image, reading_time, published, published_at, hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			slug = excluded.slug,
			title = excluded.title,
			summary = excluded.summary,
			content = excluded.content,
			category = excluded.category,
			image = excluded.image,
			reading_time = excluded.reading_time,
			published = excluded.published,
			published_at = excluded.published_at,
			hash = excluded.hash
	`, p.Path, p.Slug, p.Title, p.Summary, p.Content, p.Category, p.Image, p.ReadingTime, published, p.PublishedAt, p.Hash)
	if err != nil {
		return 0, fmt.Errorf("upsert post %q: %w", p.Path, err)
	}

	var id int64
	if err := db.conn.QueryRow("SELECT id FROM posts WHERE path = ?", p.Path).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdatePostFTS refreshes the full-text index row for a post.
func (db *DB) UpdatePostFTS(postID int64, title, content string, tags []string) error {
	// Delete old FTS entry; for new rows the delete is a no-op.
	_, _ = db.conn.Exec("INSERT INTO posts_fts(posts_fts, rowid, title, content, tags) VALUES('delete', ?, '', '', '')", postID)

	_, err := db.conn.Exec("INSERT INTO posts_fts(rowid, title, content, tags) VALUES(?, ?, ?, ?)",
		postID, title, content, strings.Join(tags, " "))
	return err
}

// SetPostTags replaces a post's tag associations.
func (db *DB) SetPostTags(postID int64, tags []string) error {
	if _, err := db.conn.Exec("DELETE FROM post_tags WHERE post_id = ?", postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	for _, tag := range tags {
		if _, err := db.conn.Exec("INSERT OR IGNORE INTO tags (name) VALUES (?)", tag); err != nil {
			return fmt.Errorf("upsert tag %q: %w", tag, err)
		}
		var tagID int64
		if err := db.conn.QueryRow("SELECT id FROM tags WHERE name = ?", tag).Scan(&tagID); err != nil {
			return fmt.Errorf("lookup tag %q: %w", tag, err)
		}
		if _, err := db.conn.Exec("INSERT OR IGNORE INTO post_tags (post_id, tag_id) VALUES (?, ?)", postID, tagID); err != nil {
			return fmt.Errorf("link tag %q: %w", tag, err)
		}
	}
	return nil
}

// GetPostHash returns the stored content hash for a post path.
func (db *DB) GetPostHash(path string) (string, error) {
	var hash string
	err := db.conn.QueryRow("SELECT hash FROM posts WHERE path = ?", path).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return hash, err
}

// DeletePostByPath removes a post and its related rows.
func (db *DB) DeletePostByPath(path string) error {
	var id int64
	err := db.conn.QueryRow("SELECT id FROM posts WHERE path = ?", path).Scan(&id)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	_, _ = db.conn.Exec("INSERT INTO posts_fts(posts_fts, rowid, title, content, tags) VALUES('delete', ?, '', '', '')", id)
	_, err = db.conn.Exec("DELETE FROM posts WHERE id = ?", id)
	return err
}

// ListPosts returns published posts, newest first, honoring the filter.
func (db *DB) ListPosts(f PostFilter) ([]Post, error) {
	query, args := postListQuery(postColumns, f)
	query += " ORDER BY p.published_at DESC, p.id DESC"
	if f.PerPage > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.PerPage, (page-1)*f.PerPage)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Tags, err = db.postTags(posts[i].ID); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// CountPosts returns how many published posts match the filter.
func (db *DB) CountPosts(f PostFilter) (int, error) {
	query, args := postListQuery("COUNT(*)", f)
	var n int
	err := db.conn.QueryRow(query, args...).Scan(&n)
	return n, err
}

// postListQuery builds the shared FROM/WHERE clause for list and count.
func postListQuery(columns string, f PostFilter) (string, []any) {
	var (
		query string
		args  []any
	)
	if f.Query != "" {
		query = "SELECT " + columns + ` FROM posts_fts JOIN posts p ON p.id = posts_fts.rowid WHERE posts_fts MATCH ? AND p.published = 1`
		args = append(args, ftsQuery(f.Query))
	} else {
		query = "SELECT " + columns + " FROM posts p WHERE p.published = 1"
	}
	if f.Category != "" {
		query += " AND p.category = ?"
		args = append(args, f.Category)
	}
	return query, args
}

// ftsQuery quotes each term so user input cannot break FTS5 syntax.
func ftsQuery(input string) string {
	terms := strings.Fields(input)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

// GetPostBySlug returns a published post, or nil when absent.
func (db *DB) GetPostBySlug(slug string) (*Post, error) {
	row := db.conn.QueryRow("SELECT "+postColumns+" FROM posts p WHERE p.slug = ? AND p.published = 1", slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if p.Tags, err = db.postTags(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// AdjacentPosts returns the previous (older) and next (newer) published
// posts around the given post, for detail-page navigation.
func (db *DB) AdjacentPosts(p *Post) (prev, next *Post, err error) {
	prevRow := db.conn.QueryRow(`
		SELECT `+postColumns+` FROM posts p
		WHERE p.published = 1 AND (p.published_at < ? OR (p.published_at = ? AND p.id < ?))
		ORDER BY p.published_at DESC, p.id DESC LIMIT 1
	`, p.PublishedAt, p.PublishedAt, p.ID)
	prev, err = scanPost(prevRow)
	if err == sql.ErrNoRows {
		prev, err = nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	nextRow := db.conn.QueryRow(`
		SELECT `+postColumns+` FROM posts p
		WHERE p.published = 1 AND (p.published_at > ? OR (p.published_at = ? AND p.id > ?))
		ORDER BY p.published_at ASC, p.id ASC LIMIT 1
	`, p.PublishedAt, p.PublishedAt, p.ID)
	next, err = scanPost(nextRow)
	if err == sql.ErrNoRows {
		next, err = nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return prev, next, nil
}

// RecentPosts returns the newest published posts.
func (db *DB) RecentPosts(limit int) ([]Post, error) {
	if limit <= 0 {
		limit = 3
	}
	return db.ListPosts(PostFilter{Page: 1, PerPage: limit})
}

// CategoryCount is a category with its published post count.
type CategoryCount struct {
	Category string
	Count    int
}

// ListCategories returns the categories of published posts with counts.
func (db *DB) ListCategories() ([]CategoryCount, error) {
	rows, err := db.conn.Query(`
		SELECT category, COUNT(*) FROM posts
		WHERE published = 1 AND category != ''
		GROUP BY category ORDER BY category
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (db *DB) postTags(postID int64) ([]string, error) {
	rows, err := db.conn.Query(`
		SELECT t.name FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = ? ORDER BY t.name
	`, postID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*Post, error) {
	var p Post
	var published int
	err := row.Scan(&p.ID, &p.Path, &p.Slug, &p.Title, &p.Summary, &p.Content,
		&p.Category, &p.Image, &p.ReadingTime, &published, &p.PublishedAt)
	if err != nil {
		return nil, err
	}
	p.Published = published == 1
	return &p, nil
}

func scanPosts(rows *sql.Rows) ([]Post, error) {
	defer func() { _ = rows.Close() }()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}
