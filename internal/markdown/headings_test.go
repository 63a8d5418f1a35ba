package markdown

import (
	"reflect"
	"testing"
)

func TestExtractHeadings(t *testing.T) {
	input := `---
title: Test
---

# Title

## 🚀 Getting Started

Some text.

### Prerequisites

## 🚀 Getting Started
`
	got := ExtractHeadings(input)
	want := []Heading{
		{ID: "getting-started", Level: 2, Text: "Getting Started"},
		{ID: "prerequisites", Level: 3, Text: "Prerequisites"},
		{ID: "getting-started-1", Level: 2, Text: "Getting Started"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractHeadings:\n got %+v\nwant %+v", got, want)
	}
}

func TestExtractHeadingsLevelBounds(t *testing.T) {
	input := "# Title\n## Section One\n###### Too Deep"

	got := ExtractHeadings(input)
	want := []Heading{{ID: "section-one", Level: 2, Text: "Section One"}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestExtractHeadingsCustomBounds(t *testing.T) {
	input := "# Top\n## Two\n### Three\n#### Four\n##### Five"

	got := ExtractHeadingsBetween(input, 1, 3)
	if len(got) != 3 {
		t.Fatalf("got %d headings, want 3", len(got))
	}
	if got[0].Level != 1 || got[2].Level != 3 {
		t.Errorf("unexpected levels: %+v", got)
	}
}

func TestExtractHeadingsEmpty(t *testing.T) {
	for _, input := range []string{"", "no headings here\njust text", "#no-space", "##\n## \t "} {
		if got := ExtractHeadings(input); len(got) != 0 {
			t.Errorf("ExtractHeadings(%q) = %+v, want empty", input, got)
		}
	}
}

func TestExtractHeadingsInlineMarkup(t *testing.T) {
	input := "## **Bold** intro\n## Using `code` spans\n## [Link](https://x.dev) heading\n## _em_ and ![img](p.png) mix"

	got := ExtractHeadings(input)
	want := []Heading{
		{ID: "bold-intro", Level: 2, Text: "Bold intro"},
		{ID: "using-code-spans", Level: 2, Text: "Using code spans"},
		{ID: "link-heading", Level: 2, Text: "Link heading"},
		{ID: "em-and-img-mix", Level: 2, Text: "em and img mix"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractHeadings:\n got %+v\nwant %+v", got, want)
	}
}

func TestExtractHeadingsDropsSymbolOnly(t *testing.T) {
	input := "## 🚀🚀🚀\n## Real Section"

	got := ExtractHeadings(input)
	want := []Heading{{ID: "real-section", Level: 2, Text: "Real Section"}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestExtractHeadingsDeterministic(t *testing.T) {
	input := "## One\n### Two\n## One\n#### Three"
	first := ExtractHeadings(input)
	for i := 0; i < 5; i++ {
		if again := ExtractHeadings(input); !reflect.DeepEqual(first, again) {
			t.Fatalf("extraction not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestExtractHeadingsUniqueIDs(t *testing.T) {
	input := "## Dup\n## Dup\n## Dup\n### Dup\n## dup"
	got := ExtractHeadings(input)

	seen := make(map[string]bool)
	for _, h := range got {
		if seen[h.ID] {
			t.Errorf("duplicate id %q", h.ID)
		}
		seen[h.ID] = true
	}
	if len(got) != 5 {
		t.Fatalf("got %d headings, want 5", len(got))
	}
	if got[1].ID != "dup-1" || got[2].ID != "dup-2" {
		t.Errorf("suffix sequence wrong: %+v", got)
	}
}

func TestExtractHeadingsSkipsFrontmatter(t *testing.T) {
	input := "---\ntitle: Post\n## not a heading\n---\n## Actual"
	got := ExtractHeadings(input)
	if len(got) != 1 || got[0].ID != "actual" {
		t.Errorf("got %+v, want single 'actual' heading", got)
	}
}
