package markdown

import (
	"bufio"
	"strings"
)

// Frontmatter holds the --- delimited metadata block of a content file.
type Frontmatter struct {
	Title    string
	Slug     string
	Summary  string
	Category string
	Tags     []string
	Date     string // YYYY-MM-DD
	Draft    bool
	Featured bool
	Image    string
	RepoURL  string
	DemoURL  string
	Tech     []string
	Raw      map[string]string
	EndLine  int // line number where frontmatter ends (0-based)
}

// ExtractFrontmatter parses the leading frontmatter block, if any.
// Returns nil when the block is absent or unclosed.
func ExtractFrontmatter(content string) *Frontmatter {
	scanner := bufio.NewScanner(strings.NewReader(content))

	// First line must be ---
	if !scanner.Scan() {
		return nil
	}
	if strings.TrimSpace(scanner.Text()) != "---" {
		return nil
	}

	fm := &Frontmatter{
		Raw: make(map[string]string),
	}

	lineNum := 1
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if strings.TrimSpace(line) == "---" {
			fm.EndLine = lineNum
			break
		}

		// Simple key: value parsing
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		fm.Raw[key] = val

		switch key {
		case "title":
			fm.Title = unquote(val)
		case "slug":
			fm.Slug = unquote(val)
		case "summary", "description":
			fm.Summary = unquote(val)
		case "category":
			fm.Category = unquote(val)
		case "date", "published_at":
			fm.Date = unquote(val)
		case "draft":
			fm.Draft = val == "true"
		case "featured":
			fm.Featured = val == "true"
		case "image", "featured_image":
			fm.Image = unquote(val)
		case "repo", "repo_url":
			fm.RepoURL = unquote(val)
		case "demo", "demo_url":
			fm.DemoURL = unquote(val)
		case "tags":
			fm.Tags = splitList(val)
		case "tech":
			fm.Tech = splitList(val)
		}
	}

	if fm.EndLine == 0 {
		return nil // unclosed frontmatter
	}

	return fm
}

// Body returns content with the frontmatter block removed.
func (fm *Frontmatter) Body(content string) string {
	if fm == nil || fm.EndLine == 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	if fm.EndLine >= len(lines) {
		return ""
	}
	return strings.Join(lines[fm.EndLine:], "\n")
}

// splitList parses [a, b] or a, b into trimmed elements.
func splitList(val string) []string {
	val = strings.Trim(val, "[]")
	var out []string
	for _, item := range strings.Split(val, ",") {
		item = unquote(strings.TrimSpace(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func unquote(val string) string {
	if len(val) >= 2 && (val[0] == '"' && val[len(val)-1] == '"' || val[0] == '\'' && val[len(val)-1] == '\'') {
		return val[1 : len(val)-1]
	}
	return val
}
