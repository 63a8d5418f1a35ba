package markdown

import (
	"fmt"
	"strings"
	"testing"
)

func TestRendererAssignsAnchors(t *testing.T) {
	r := NewRenderer()
	html, err := r.Render("## 🚀 Getting Started\n\ntext\n\n### Prerequisites\n")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(html, `<h2 id="getting-started">`) {
		t.Errorf("missing h2 anchor, got:\n%s", html)
	}
	if !strings.Contains(html, `<h3 id="prerequisites">`) {
		t.Errorf("missing h3 anchor, got:\n%s", html)
	}
}

func TestRendererAnchorParity(t *testing.T) {
	content := `## 🚀 Getting Started

intro

### Prerequisites

## 🚀 Getting Started

# Top Level Skipped

##### Too Deep Skipped

## 한글 섹션
`
	r := NewRenderer()
	html, err := r.Render(content)
	if err != nil {
		t.Fatal(err)
	}

	// Every extracted heading ID must appear as a rendered anchor.
	for _, h := range ExtractHeadings(content) {
		anchor := fmt.Sprintf(` id="%s"`, h.ID)
		if !strings.Contains(html, anchor) {
			t.Errorf("extracted id %q has no rendered anchor", h.ID)
		}
	}

	// Out-of-bounds headings render without anchors.
	if !strings.Contains(html, "<h1>") {
		t.Errorf("h1 should render without an id, got:\n%s", html)
	}
	if !strings.Contains(html, "<h5>") {
		t.Errorf("h5 should render without an id, got:\n%s", html)
	}
}

func TestRendererAnchorParityInlineMarkup(t *testing.T) {
	content := "## **Bold** intro\n\ntext\n\n## Using `code` spans\n\n## [Link](https://x.dev) heading\n"

	r := NewRenderer()
	html, err := r.Render(content)
	if err != nil {
		t.Fatal(err)
	}

	headings := ExtractHeadings(content)
	if len(headings) != 3 {
		t.Fatalf("got %d headings, want 3: %+v", len(headings), headings)
	}
	for _, h := range headings {
		anchor := fmt.Sprintf(` id="%s"`, h.ID)
		if !strings.Contains(html, anchor) {
			t.Errorf("extracted id %q has no rendered anchor in:\n%s", h.ID, html)
		}
	}
	if headings[0].ID != "bold-intro" || headings[1].ID != "using-code-spans" || headings[2].ID != "link-heading" {
		t.Errorf("unexpected ids: %+v", headings)
	}
}

func TestRendererSymbolOnlyHeading(t *testing.T) {
	r := NewRenderer()
	html, err := r.Render("## 🚀🚀\n")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "id=") {
		t.Errorf("symbols-only heading should have no anchor, got:\n%s", html)
	}
}

func TestRendererGFMTable(t *testing.T) {
	r := NewRenderer()
	html, err := r.Render("| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("GFM tables should render, got:\n%s", html)
	}
}
