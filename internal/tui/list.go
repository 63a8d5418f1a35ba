package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jisub/folio/internal/store"
)

// DocKind distinguishes the two document sections in the list.
type DocKind int

const (
	KindPost DocKind = iota
	KindProject
)

// DocSelectedMsg is sent when a document is chosen in the list.
type DocSelectedMsg struct {
	Kind DocKind
	Slug string
}

// listItem is one row in the document list. Section header rows have no slug.
type listItem struct {
	kind   DocKind
	slug   string
	title  string
	date   string
	header bool
}

// List is the document list panel showing posts and projects.
type List struct {
	items   []listItem
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
}

func NewList() List {
	return List{}
}

// SetDocuments rebuilds the list from the store rows, keeping the cursor on
// a selectable item.
func (l *List) SetDocuments(posts []store.Post, projects []store.Project) {
	l.items = l.items[:0]
	if len(posts) > 0 {
		l.items = append(l.items, listItem{title: "Posts", header: true})
		for _, p := range posts {
			l.items = append(l.items, listItem{
				kind:  KindPost,
				slug:  p.Slug,
				title: p.Title,
				date:  p.PublishedAt,
			})
		}
	}
	if len(projects) > 0 {
		l.items = append(l.items, listItem{title: "Projects", header: true})
		for _, p := range projects {
			l.items = append(l.items, listItem{
				kind:  KindProject,
				slug:  p.Slug,
				title: p.Title,
				date:  p.PublishedAt,
			})
		}
	}
	if l.cursor >= len(l.items) {
		l.cursor = len(l.items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.skipHeader(1)
}

// Select moves the cursor to the document with the given kind and slug.
func (l *List) Select(kind DocKind, slug string) {
	for i, item := range l.items {
		if !item.header && item.kind == kind && item.slug == slug {
			l.cursor = i
			l.scrollIntoView()
			return
		}
	}
}

// Selected returns the document under the cursor, or ok=false on a header.
func (l *List) Selected() (DocKind, string, bool) {
	if l.cursor >= len(l.items) || l.items[l.cursor].header {
		return 0, "", false
	}
	item := l.items[l.cursor]
	return item.kind, item.slug, true
}

func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	if !l.focused {
		return l, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if l.cursor < len(l.items)-1 {
				l.cursor++
				l.skipHeader(1)
				l.scrollIntoView()
			}
		case "k", "up":
			if l.cursor > 0 {
				l.cursor--
				l.skipHeader(-1)
				l.scrollIntoView()
			}
		case "g":
			l.cursor = 0
			l.offset = 0
			l.skipHeader(1)
		case "G":
			if len(l.items) > 0 {
				l.cursor = len(l.items) - 1
				l.skipHeader(-1)
				l.scrollIntoView()
			}
		case "enter":
			if kind, slug, ok := l.Selected(); ok {
				return l, func() tea.Msg {
					return DocSelectedMsg{Kind: kind, Slug: slug}
				}
			}
		}
	}

	return l, nil
}

// skipHeader nudges the cursor off header rows in the given direction.
func (l *List) skipHeader(dir int) {
	for l.cursor >= 0 && l.cursor < len(l.items) && l.items[l.cursor].header {
		next := l.cursor + dir
		if next < 0 || next >= len(l.items) {
			return
		}
		l.cursor = next
	}
}

func (l *List) scrollIntoView() {
	viewHeight := l.height - 2
	if viewHeight < 1 {
		viewHeight = 1
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor-l.offset >= viewHeight {
		l.offset = l.cursor - viewHeight + 1
	}
}

func (l List) View() string {
	if l.width == 0 || l.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(panelTitle("Library", l.focused))
	b.WriteByte('\n')

	viewHeight := l.height - 2
	if viewHeight < 0 {
		viewHeight = 0
	}

	for i := l.offset; i < len(l.items) && i-l.offset < viewHeight; i++ {
		item := l.items[i]

		var line string
		if item.header {
			line = dimStyle.Render(" " + item.title)
		} else {
			line = "  " + item.title
			if item.date != "" {
				line += dimStyle.Render(" " + item.date)
			}
		}

		if lipgloss.Width(line) > l.width-2 {
			line = ansi.Truncate(line, max(0, l.width-5), "...")
		}

		if i == l.cursor && l.focused && !item.header {
			b.WriteString(cursorStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
}

func (l *List) SetFocused(focused bool) {
	l.focused = focused
}
