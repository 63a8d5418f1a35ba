package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jisub/folio/internal/store"
)

func testDocuments() ([]store.Post, []store.Project) {
	posts := []store.Post{
		{Slug: "first", Title: "First Post", PublishedAt: "2026-01-02"},
		{Slug: "second", Title: "Second Post", PublishedAt: "2026-01-01"},
	}
	projects := []store.Project{
		{Slug: "folio", Title: "Folio", PublishedAt: "2026-01-01"},
	}
	return posts, projects
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestListCursorSkipsHeaders(t *testing.T) {
	l := NewList()
	l.SetFocused(true)
	l.SetSize(30, 20)
	l.SetDocuments(testDocuments())

	// Cursor starts on the first selectable row, not the section header.
	kind, slug, ok := l.Selected()
	if !ok || kind != KindPost || slug != "first" {
		t.Fatalf("Selected() = %v %q %v", kind, slug, ok)
	}

	// Moving past the last post lands on the project, skipping its header.
	l, _ = l.Update(key("j"))
	l, _ = l.Update(key("j"))
	kind, slug, ok = l.Selected()
	if !ok || kind != KindProject || slug != "folio" {
		t.Errorf("after jj: Selected() = %v %q %v", kind, slug, ok)
	}

	// And back up again.
	l, _ = l.Update(key("k"))
	_, slug, _ = l.Selected()
	if slug != "second" {
		t.Errorf("after k: slug = %q", slug)
	}
}

func TestListEnterEmitsSelection(t *testing.T) {
	l := NewList()
	l.SetFocused(true)
	l.SetSize(30, 20)
	l.SetDocuments(testDocuments())

	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit a command")
	}
	msg, ok := cmd().(DocSelectedMsg)
	if !ok {
		t.Fatalf("msg = %T", cmd())
	}
	if msg.Kind != KindPost || msg.Slug != "first" {
		t.Errorf("msg = %+v", msg)
	}
}

func TestListSelect(t *testing.T) {
	l := NewList()
	l.SetSize(30, 20)
	l.SetDocuments(testDocuments())

	l.Select(KindProject, "folio")
	kind, slug, ok := l.Selected()
	if !ok || kind != KindProject || slug != "folio" {
		t.Errorf("Selected() = %v %q %v", kind, slug, ok)
	}
}

func TestTOCPanelActivate(t *testing.T) {
	p := NewTOCPanel()
	p.SetFocused(true)
	p.SetSize(30, 20)
	p.SetHeadings(docHeadings)

	p, _ = p.Update(key("j"))
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit a command")
	}
	msg, ok := cmd().(HeadingActivatedMsg)
	if !ok || msg.ID != "prerequisites" {
		t.Errorf("msg = %+v (%T)", msg, cmd())
	}
}

func TestTOCPanelSetActiveMovesCursor(t *testing.T) {
	p := NewTOCPanel()
	p.SetSize(30, 20)
	p.SetHeadings(docHeadings)

	p.SetActive("getting-started-1")
	if p.ActiveID() != "getting-started-1" {
		t.Errorf("ActiveID() = %q", p.ActiveID())
	}
	if p.cursor != 2 {
		t.Errorf("cursor = %d, want 2", p.cursor)
	}
}

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name               string
		width, height      int
		showList, showTOC  bool
		wantList, wantTOC  int
	}{
		{"both panels", 120, 40, true, true, 32, 28},
		{"no panels", 120, 40, false, false, 0, 0},
		{"narrow clamps to thirds", 60, 40, true, true, 20, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeLayout(tt.width, tt.height, tt.showList, tt.showTOC, 32, 28)
			if l.ListWidth != tt.wantList {
				t.Errorf("ListWidth = %d, want %d", l.ListWidth, tt.wantList)
			}
			if l.TOCWidth != tt.wantTOC {
				t.Errorf("TOCWidth = %d, want %d", l.TOCWidth, tt.wantTOC)
			}
			if l.Height != tt.height-1 {
				t.Errorf("Height = %d, want %d", l.Height, tt.height-1)
			}
			if l.DocWidth < 1 {
				t.Errorf("DocWidth = %d", l.DocWidth)
			}
		})
	}
}
