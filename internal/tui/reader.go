// Package tui is the terminal reader: a document list, a rendered document
// viewport, and a table-of-contents panel whose highlight follows the scroll
// position.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jisub/folio/internal/config"
	"github.com/jisub/folio/internal/content"
	"github.com/jisub/folio/internal/markdown"
	"github.com/jisub/folio/internal/session"
	"github.com/jisub/folio/internal/store"
	"github.com/jisub/folio/internal/toc"
)

type focusArea int

const (
	focusList focusArea = iota
	focusDoc
	focusTOC
)

// activeHeadingMsg arrives when the tracker commits a new active heading.
type activeHeadingMsg struct {
	id string
}

// contentChangedMsg arrives after the watcher re-indexes a changed file.
type contentChangedMsg struct{}

type fatalErrorMsg struct {
	err error
}

// document is the currently open post or project.
type document struct {
	kind     DocKind
	slug     string
	title    string
	content  string
	headings []markdown.Heading
}

// Reader is the terminal reader model.
type Reader struct {
	cfg      config.Config
	db       *store.DB
	indexer  *content.Indexer
	program  *tea.Program
	watcher  *content.Watcher

	list     List
	contents TOCPanel
	vp       viewport.Model
	observer *scrollObserver
	tracker  *toc.Tracker
	renderer *glamour.TermRenderer

	current   *document
	width     int
	height    int
	focused   focusArea
	showList  bool
	showTOC   bool
	listWidth int
	tocWidth  int
	errMsg    string
}

func New(cfg config.Config, db *store.DB, indexer *content.Indexer) *Reader {
	state, _ := session.Load(cfg.ContentPath)

	r := &Reader{
		cfg:       cfg,
		db:        db,
		indexer:   indexer,
		list:      NewList(),
		contents:  NewTOCPanel(),
		vp:        viewport.New(0, 0),
		focused:   focusList,
		showList:  state.ShowList,
		showTOC:   state.ShowTOC,
		listWidth: state.ListWidth,
		tocWidth:  state.TOCWidth,
	}
	r.observer = newScrollObserver(func(line int) {
		r.vp.SetYOffset(line)
	})
	r.setFocus(focusList)

	r.refreshDocuments()
	if state.ActiveSlug != "" {
		kind := KindPost
		if state.Section == "projects" {
			kind = KindProject
		}
		r.list.Select(kind, state.ActiveSlug)
	}

	return r
}

// SetProgram wires the running program so background goroutines (the
// tracker's debounce timer, the file watcher) can post messages.
func (r *Reader) SetProgram(p *tea.Program) {
	r.program = p
}

func (r *Reader) Init() tea.Cmd {
	if r.indexer == nil {
		return nil
	}
	w, err := content.NewWatcher(r.indexer, func() {
		if r.program != nil {
			r.program.Send(contentChangedMsg{})
		}
	})
	if err != nil {
		return func() tea.Msg { return fatalErrorMsg{err: err} }
	}
	r.watcher = w
	go w.Start()
	return nil
}

func (r *Reader) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			r.Close()
			return r, tea.Quit
		case "ctrl+h":
			r.focusLeft()
			return r, nil
		case "ctrl+l":
			r.focusRight()
			return r, nil
		case "tab":
			r.cycleFocus()
			return r, nil
		case "L":
			r.showList = !r.showList
			if !r.showList && r.focused == focusList {
				r.setFocus(focusDoc)
			}
			r.updateLayout()
			return r, nil
		case "T":
			r.showTOC = !r.showTOC
			if !r.showTOC && r.focused == focusTOC {
				r.setFocus(focusDoc)
			}
			r.updateLayout()
			return r, nil
		}

	case tea.WindowSizeMsg:
		if msg.Width <= 0 || msg.Height <= 0 {
			return r, nil
		}
		r.width = msg.Width
		r.height = msg.Height
		r.rebuildRenderer()
		r.updateLayout()
		r.rerenderCurrent()
		return r, tea.ClearScreen

	case DocSelectedMsg:
		r.openDocument(msg.Kind, msg.Slug)
		r.setFocus(focusDoc)
		return r, nil

	case HeadingActivatedMsg:
		if r.tracker != nil {
			r.tracker.Activate(msg.ID)
			r.contents.SetActive(r.tracker.ActiveID())
			r.observer.setWindow(r.vp.YOffset, r.vp.Height)
		}
		return r, nil

	case activeHeadingMsg:
		r.contents.SetActive(msg.id)
		return r, nil

	case contentChangedMsg:
		r.refreshDocuments()
		if r.current != nil {
			r.openDocument(r.current.kind, r.current.slug)
		}
		return r, nil

	case fatalErrorMsg:
		return r, tea.Batch(tea.Printf("fatal: %v\n", msg.err), tea.Quit)
	}

	var cmd tea.Cmd
	switch msg.(type) {
	case tea.KeyMsg:
		switch r.focused {
		case focusList:
			r.list, cmd = r.list.Update(msg)
		case focusTOC:
			r.contents, cmd = r.contents.Update(msg)
		default:
			r.vp, cmd = r.vp.Update(msg)
			r.observer.setWindow(r.vp.YOffset, r.vp.Height)
		}
	default:
		r.vp, cmd = r.vp.Update(msg)
		r.observer.setWindow(r.vp.YOffset, r.vp.Height)
	}

	return r, cmd
}

func (r *Reader) View() string {
	if r.width == 0 || r.height == 0 {
		return "Loading..."
	}

	layout := ComputeLayout(r.width, r.height, r.showList, r.showTOC, r.listWidth, r.tocWidth)

	docView := r.docTitle() + "\n" + r.vp.View()

	var columns []string

	if r.showList {
		lw := layout.ListWidth - 1
		if lw < 0 {
			lw = 0
		}
		border := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, true, false, false).
			BorderForeground(colorDim).
			Width(lw).
			Height(layout.Height)
		columns = append(columns, border.Render(r.list.View()))
	}

	columns = append(columns, lipgloss.NewStyle().
		Width(layout.DocWidth).
		Height(layout.Height).
		Render(docView))

	if r.showTOC {
		tw := layout.TOCWidth - 1
		if tw < 0 {
			tw = 0
		}
		border := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(colorDim).
			Width(tw).
			Height(layout.Height)
		columns = append(columns, border.Render(r.contents.View()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...) + "\n" + r.statusBar()
}

// Close persists reader state and releases the watcher and tracker.
func (r *Reader) Close() {
	state := session.State{
		ShowList:  r.showList,
		ShowTOC:   r.showTOC,
		ListWidth: r.listWidth,
		TOCWidth:  r.tocWidth,
	}
	if r.current != nil {
		state.ActiveSlug = r.current.slug
		state.Section = "posts"
		if r.current.kind == KindProject {
			state.Section = "projects"
		}
	}
	if err := session.Save(r.cfg.ContentPath, state); err != nil {
		fmt.Fprintln(os.Stderr, "save reader state:", err)
	}
	if r.tracker != nil {
		r.tracker.Stop()
	}
	if r.watcher != nil {
		if err := r.watcher.Stop(); err != nil {
			fmt.Fprintln(os.Stderr, "stop watcher:", err)
		}
	}
}

// refreshDocuments reloads the document list from the store.
func (r *Reader) refreshDocuments() {
	posts, err := r.db.ListPosts(store.PostFilter{})
	if err != nil {
		r.errMsg = err.Error()
		return
	}
	projects, err := r.db.ListProjects()
	if err != nil {
		r.errMsg = err.Error()
		return
	}
	r.errMsg = ""
	r.list.SetDocuments(posts, projects)
}

// openDocument loads a document, renders it, and restarts the tracker for
// the new heading list. The old tracker is torn down first; trackers are
// single-use per document view.
func (r *Reader) openDocument(kind DocKind, slug string) {
	doc, err := r.loadDocument(kind, slug)
	if err != nil {
		r.errMsg = err.Error()
		return
	}
	if doc == nil {
		r.errMsg = "document not found: " + slug
		return
	}
	r.errMsg = ""

	if r.tracker != nil {
		r.tracker.Stop()
	}

	r.current = doc
	r.contents.SetHeadings(doc.headings)
	r.renderCurrent()
	r.vp.GotoTop()

	r.tracker = toc.NewTracker(r.observer, toc.WithOnChange(func(id string) {
		if r.program != nil {
			r.program.Send(activeHeadingMsg{id: id})
		}
	}))
	r.tracker.Start(doc.headings)
	r.observer.setWindow(r.vp.YOffset, r.vp.Height)
}

func (r *Reader) loadDocument(kind DocKind, slug string) (*document, error) {
	if kind == KindProject {
		p, err := r.db.GetProjectBySlug(slug)
		if err != nil || p == nil {
			return nil, err
		}
		return &document{
			kind:     KindProject,
			slug:     p.Slug,
			title:    p.Title,
			content:  p.Content,
			headings: markdown.ExtractHeadings(p.Content),
		}, nil
	}
	p, err := r.db.GetPostBySlug(slug)
	if err != nil || p == nil {
		return nil, err
	}
	return &document{
		kind:     KindPost,
		slug:     p.Slug,
		title:    p.Title,
		content:  p.Content,
		headings: markdown.ExtractHeadings(p.Content),
	}, nil
}

// renderCurrent renders the open document into the viewport and re-locates
// its anchors in the rendered output.
func (r *Reader) renderCurrent() {
	if r.current == nil {
		r.vp.SetContent(dimStyle.Render("\n  Select a document from the library."))
		return
	}

	rendered := r.current.content
	if r.renderer != nil {
		if out, err := r.renderer.Render(r.current.content); err == nil {
			rendered = out
		}
	}
	r.vp.SetContent(rendered)
	r.observer.setContent(rendered, r.current.headings)
}

// rerenderCurrent re-renders after a resize. The heading list is unchanged,
// so the tracker stays attached; only the anchor lines move.
func (r *Reader) rerenderCurrent() {
	if r.current == nil {
		r.renderCurrent()
		return
	}
	r.renderCurrent()
	r.observer.setWindow(r.vp.YOffset, r.vp.Height)
}

func (r *Reader) rebuildRenderer() {
	layout := ComputeLayout(r.width, r.height, r.showList, r.showTOC, r.listWidth, r.tocWidth)
	wrap := layout.DocWidth - 2
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		r.renderer = nil
		return
	}
	r.renderer = renderer
}

func (r *Reader) updateLayout() {
	layout := ComputeLayout(r.width, r.height, r.showList, r.showTOC, r.listWidth, r.tocWidth)

	r.list.SetSize(layout.ListWidth, layout.Height)
	r.contents.SetSize(layout.TOCWidth, layout.Height)

	r.vp.Width = layout.DocWidth
	r.vp.Height = layout.Height - 1 // -1 for the document title row
	if r.vp.Height < 1 {
		r.vp.Height = 1
	}
}

func (r *Reader) docTitle() string {
	title := r.cfg.SiteTitle
	if r.current != nil {
		title = r.current.title
	}
	if r.focused == focusDoc {
		return titleFocusedStyle.Render(title)
	}
	return titleBlurredStyle.Render(title)
}

func (r *Reader) statusBar() string {
	bg := lipgloss.NewStyle().Background(colorBar)
	section := lipgloss.NewStyle().
		Background(colorBar).
		Foreground(colorText).
		Padding(0, 1)

	var left string
	if r.errMsg != "" {
		left = lipgloss.NewStyle().
			Background(colorBar).
			Foreground(lipgloss.Color("203")).
			Padding(0, 1).
			Render(r.errMsg)
	} else if r.current != nil {
		name := r.current.slug
		if frag := r.observer.Fragment(); frag != "" {
			name += "#" + frag
		}
		left = section.Render(name)
	} else {
		left = section.Render(r.cfg.ContentPath)
	}

	right := ""
	if r.current != nil {
		right = section.Render(fmt.Sprintf("%3.0f%%", r.vp.ScrollPercent()*100))
	}

	padLen := r.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padLen < 0 {
		padLen = 0
	}
	return left + bg.Render(strings.Repeat(" ", padLen)) + right
}

func (r *Reader) setFocus(target focusArea) {
	r.list.SetFocused(target == focusList)
	r.contents.SetFocused(target == focusTOC)
	r.focused = target
}

func (r *Reader) cycleFocus() {
	switch r.focused {
	case focusList:
		r.setFocus(focusDoc)
	case focusDoc:
		if r.showTOC {
			r.setFocus(focusTOC)
		} else if r.showList {
			r.setFocus(focusList)
		}
	case focusTOC:
		if r.showList {
			r.setFocus(focusList)
		} else {
			r.setFocus(focusDoc)
		}
	}
}

func (r *Reader) focusLeft() {
	switch r.focused {
	case focusDoc:
		if r.showList {
			r.setFocus(focusList)
		}
	case focusTOC:
		r.setFocus(focusDoc)
	}
}

func (r *Reader) focusRight() {
	switch r.focused {
	case focusDoc:
		if r.showTOC {
			r.setFocus(focusTOC)
		}
	case focusList:
		r.setFocus(focusDoc)
	}
}
