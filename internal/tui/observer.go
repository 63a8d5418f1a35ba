package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"

	"github.com/jisub/folio/internal/markdown"
	"github.com/jisub/folio/internal/toc"
)

// scrollObserver adapts the rendered document and its scroll position into
// toc.Viewport events. Anchors are located by finding each heading's text in
// the ANSI-stripped rendered output; visibility spans from the viewport's top
// edge down to readZoneFrac of its height, so the active heading is the one
// the reader is actually looking at rather than anything merely on screen.
type scrollObserver struct {
	mu       sync.Mutex
	anchors  map[string]int // anchor id -> rendered line
	ids      []string
	fn       func([]toc.Event)
	offset   int
	height   int
	onScroll func(line int)
	fragment string
}

// readZone returns how many rows below the top edge count as "being read".
func readZone(height int) int {
	zone := height * 2 / 5
	if zone < 1 {
		zone = 1
	}
	return zone
}

func newScrollObserver(onScroll func(line int)) *scrollObserver {
	return &scrollObserver{
		anchors:  make(map[string]int),
		onScroll: onScroll,
	}
}

// setContent maps each heading to its line in the rendered output. Headings
// are matched in document order, each search starting past the previous
// match, so repeated heading text resolves to distinct lines.
func (o *scrollObserver) setContent(rendered string, headings []markdown.Heading) {
	lines := strings.Split(rendered, "\n")
	stripped := make([]string, len(lines))
	for i, line := range lines {
		stripped[i] = ansi.Strip(line)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.anchors = make(map[string]int, len(headings))
	next := 0
	for _, h := range headings {
		for i := next; i < len(stripped); i++ {
			if lineMatches(stripped[i], h.Text) {
				o.anchors[h.ID] = i
				next = i + 1
				break
			}
		}
	}
}

// lineMatches reports whether a rendered line carries the heading label.
// Glamour can interleave decoration with the label (a link renders as its
// text plus the destination), so after an exact substring check the words of
// the label are matched in order, tolerating inserted runs between them.
func lineMatches(line, label string) bool {
	if strings.Contains(line, label) {
		return true
	}
	words := strings.Fields(label)
	if len(words) == 0 {
		return false
	}
	rest := line
	for _, w := range words {
		n := strings.Index(rest, w)
		if n < 0 {
			return false
		}
		rest = rest[n+len(w):]
	}
	return true
}

// setWindow records the viewport's scroll offset and height and reports the
// resulting visibility of every observed anchor.
func (o *scrollObserver) setWindow(offset, height int) {
	o.mu.Lock()
	o.offset = offset
	o.height = height
	events, fn := o.snapshotLocked()
	o.mu.Unlock()

	if fn != nil && len(events) > 0 {
		fn(events)
	}
}

// snapshotLocked builds the event batch for the current window.
func (o *scrollObserver) snapshotLocked() ([]toc.Event, func([]toc.Event)) {
	if o.fn == nil {
		return nil, nil
	}
	zone := readZone(o.height)
	events := make([]toc.Event, 0, len(o.ids))
	for _, id := range o.ids {
		line, ok := o.anchors[id]
		if !ok {
			continue
		}
		top := line - o.offset
		events = append(events, toc.Event{
			ID:           id,
			Intersecting: top >= 0 && top < zone,
			Top:          top,
		})
	}
	return events, o.fn
}

// Observe implements toc.Viewport. The initial batch fires immediately so
// the tracker sees the starting scroll position.
func (o *scrollObserver) Observe(ids []string, fn func([]toc.Event)) {
	o.mu.Lock()
	o.ids = ids
	o.fn = fn
	events, emit := o.snapshotLocked()
	o.mu.Unlock()

	if emit != nil && len(events) > 0 {
		emit(events)
	}
}

// Disconnect implements toc.Viewport.
func (o *scrollObserver) Disconnect() {
	o.mu.Lock()
	o.fn = nil
	o.ids = nil
	o.mu.Unlock()
}

// ScrollTo implements toc.Viewport: the anchor's line becomes the top edge.
func (o *scrollObserver) ScrollTo(id string) {
	o.mu.Lock()
	line, ok := o.anchors[id]
	scroll := o.onScroll
	o.mu.Unlock()

	if ok && scroll != nil {
		scroll(line)
	}
}

// SetFragment implements toc.Viewport.
func (o *scrollObserver) SetFragment(id string) {
	o.mu.Lock()
	o.fragment = id
	o.mu.Unlock()
}

// Fragment returns the last activated anchor, for the status bar.
func (o *scrollObserver) Fragment() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.fragment
}
