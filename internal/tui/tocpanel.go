package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jisub/folio/internal/markdown"
)

// HeadingActivatedMsg is sent when a heading is chosen in the contents panel.
type HeadingActivatedMsg struct {
	ID string
}

// TOCPanel lists a document's headings and highlights the active one as the
// reader scrolls.
type TOCPanel struct {
	headings []markdown.Heading
	activeID string
	cursor   int
	offset   int
	width    int
	height   int
	focused  bool
}

func NewTOCPanel() TOCPanel {
	return TOCPanel{}
}

// SetHeadings replaces the heading list when a new document opens.
func (p *TOCPanel) SetHeadings(headings []markdown.Heading) {
	p.headings = headings
	p.activeID = ""
	p.cursor = 0
	p.offset = 0
}

// SetActive highlights the given heading and keeps it visible.
func (p *TOCPanel) SetActive(id string) {
	p.activeID = id
	for i, h := range p.headings {
		if h.ID == id {
			p.cursor = i
			p.scrollIntoView()
			return
		}
	}
}

// ActiveID returns the currently highlighted heading id.
func (p *TOCPanel) ActiveID() string {
	return p.activeID
}

func (p TOCPanel) Update(msg tea.Msg) (TOCPanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if p.cursor < len(p.headings)-1 {
				p.cursor++
				p.scrollIntoView()
			}
		case "k", "up":
			if p.cursor > 0 {
				p.cursor--
				p.scrollIntoView()
			}
		case "g":
			p.cursor = 0
			p.offset = 0
		case "G":
			if len(p.headings) > 0 {
				p.cursor = len(p.headings) - 1
				p.scrollIntoView()
			}
		case "enter":
			if p.cursor < len(p.headings) {
				id := p.headings[p.cursor].ID
				return p, func() tea.Msg {
					return HeadingActivatedMsg{ID: id}
				}
			}
		}
	}

	return p, nil
}

func (p *TOCPanel) scrollIntoView() {
	viewHeight := p.height - 2
	if viewHeight < 1 {
		viewHeight = 1
	}
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor-p.offset >= viewHeight {
		p.offset = p.cursor - viewHeight + 1
	}
}

func (p TOCPanel) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(panelTitle("Contents", p.focused))
	b.WriteByte('\n')

	if len(p.headings) == 0 {
		b.WriteString(dimStyle.Render(" no sections"))
		b.WriteByte('\n')
		return b.String()
	}

	viewHeight := p.height - 2
	if viewHeight < 0 {
		viewHeight = 0
	}

	for i := p.offset; i < len(p.headings) && i-p.offset < viewHeight; i++ {
		h := p.headings[i]
		indent := strings.Repeat("  ", h.Level-markdown.MinHeadingLevel)
		marker := "  "
		if h.ID == p.activeID {
			marker = "▌ "
		}
		line := marker + indent + h.Text

		if lipgloss.Width(line) > p.width-2 {
			line = ansi.Truncate(line, max(0, p.width-5), "...")
		}

		switch {
		case i == p.cursor && p.focused:
			b.WriteString(cursorStyle.Render(line))
		case h.ID == p.activeID:
			b.WriteString(activeStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func (p *TOCPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *TOCPanel) SetFocused(focused bool) {
	p.focused = focused
}
