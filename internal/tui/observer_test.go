package tui

import (
	"sync"
	"testing"
	"time"

	"github.com/jisub/folio/internal/markdown"
	"github.com/jisub/folio/internal/toc"
)

const renderedDoc = `Title

Intro paragraph.

Getting Started

some text
more text

Prerequisites

details
details

Getting Started

second occurrence body
`

var docHeadings = []markdown.Heading{
	{ID: "getting-started", Level: 2, Text: "Getting Started"},
	{ID: "prerequisites", Level: 3, Text: "Prerequisites"},
	{ID: "getting-started-1", Level: 2, Text: "Getting Started"},
}

func newTestObserver() *scrollObserver {
	o := newScrollObserver(nil)
	o.setContent(renderedDoc, docHeadings)
	return o
}

func observe(o *scrollObserver) *[][]toc.Event {
	var batches [][]toc.Event
	o.Observe([]string{"getting-started", "prerequisites", "getting-started-1"}, func(events []toc.Event) {
		batches = append(batches, events)
	})
	return &batches
}

func TestAnchorsResolveInOrder(t *testing.T) {
	o := newTestObserver()

	// Duplicate heading text must map to distinct lines, in document order.
	first, ok1 := o.anchors["getting-started"]
	second, ok2 := o.anchors["getting-started-1"]
	mid, ok3 := o.anchors["prerequisites"]
	if !ok1 || !ok2 || !ok3 {
		t.Fatalf("anchors not resolved: %v", o.anchors)
	}
	if !(first < mid && mid < second) {
		t.Errorf("anchor lines out of order: %d, %d, %d", first, mid, second)
	}
}

func TestAnchorsResolveDecoratedLines(t *testing.T) {
	// Glamour keeps link destinations inline, so the rendered line carries
	// more than the heading label. The anchor must still resolve.
	rendered := "Title\n\nLink https://x.dev heading\n\nbody\n\nBold intro\n"
	headings := []markdown.Heading{
		{ID: "link-heading", Level: 2, Text: "Link heading"},
		{ID: "bold-intro", Level: 2, Text: "Bold intro"},
	}

	o := newScrollObserver(nil)
	o.setContent(rendered, headings)

	if line, ok := o.anchors["link-heading"]; !ok || line != 2 {
		t.Errorf("link-heading resolved to (%d, %v), want line 2", line, ok)
	}
	if line, ok := o.anchors["bold-intro"]; !ok || line != 6 {
		t.Errorf("bold-intro resolved to (%d, %v), want line 6", line, ok)
	}
}

func TestWindowEvents(t *testing.T) {
	o := newTestObserver()
	batches := observe(o)

	o.setWindow(0, 10)
	if len(*batches) == 0 {
		t.Fatal("no events emitted")
	}
	last := (*batches)[len(*batches)-1]

	byID := make(map[string]toc.Event)
	for _, ev := range last {
		byID[ev.ID] = ev
	}

	// With offset 0 and height 10 the read zone covers rows 0..3; the first
	// heading (line 4) is below it.
	if byID["getting-started"].Intersecting {
		t.Error("getting-started should be below the read zone at offset 0")
	}

	// Scroll the first heading to the top edge.
	o.setWindow(o.anchors["getting-started"], 10)
	last = (*batches)[len(*batches)-1]
	for _, ev := range last {
		if ev.ID == "getting-started" {
			if !ev.Intersecting || ev.Top != 0 {
				t.Errorf("getting-started at top: %+v", ev)
			}
		}
	}
}

func TestEventTopIsNegativeAboveWindow(t *testing.T) {
	o := newTestObserver()
	batches := observe(o)

	o.setWindow(o.anchors["prerequisites"], 10)
	last := (*batches)[len(*batches)-1]
	for _, ev := range last {
		if ev.ID == "getting-started" {
			if ev.Intersecting || ev.Top >= 0 {
				t.Errorf("heading above window should not intersect: %+v", ev)
			}
		}
	}
}

func TestDisconnectStopsEvents(t *testing.T) {
	o := newTestObserver()
	batches := observe(o)

	o.setWindow(0, 10)
	n := len(*batches)

	o.Disconnect()
	o.setWindow(5, 10)
	if len(*batches) != n {
		t.Error("events emitted after Disconnect")
	}
}

func TestScrollToAndFragment(t *testing.T) {
	var scrolled []int
	o := newScrollObserver(func(line int) { scrolled = append(scrolled, line) })
	o.setContent(renderedDoc, docHeadings)

	o.ScrollTo("prerequisites")
	if len(scrolled) != 1 || scrolled[0] != o.anchors["prerequisites"] {
		t.Errorf("scrolled = %v, want anchor line %d", scrolled, o.anchors["prerequisites"])
	}

	o.SetFragment("prerequisites")
	if o.Fragment() != "prerequisites" {
		t.Errorf("Fragment() = %q", o.Fragment())
	}

	// Unknown anchors must not scroll.
	o.ScrollTo("missing")
	if len(scrolled) != 1 {
		t.Error("ScrollTo on unknown anchor should be a no-op")
	}
}

func TestTrackerOverObserver(t *testing.T) {
	o := newTestObserver()

	var mu sync.Mutex
	var active string
	tracker := toc.NewTracker(o,
		toc.WithDebounce(0),
		toc.WithOnChange(func(id string) {
			mu.Lock()
			active = id
			mu.Unlock()
		}),
	)
	tracker.Start(docHeadings)
	defer tracker.Stop()

	// Nothing intersects at the very top: the first heading is the fallback.
	o.setWindow(0, 10)
	waitActive(t, tracker, "getting-started")

	o.setWindow(o.anchors["prerequisites"], 10)
	waitActive(t, tracker, "prerequisites")
	mu.Lock()
	got := active
	mu.Unlock()
	if got != "prerequisites" {
		t.Errorf("onChange saw %q", got)
	}
}

func waitActive(t *testing.T, tracker *toc.Tracker, want string) {
	t.Helper()
	for i := 0; i < 200; i++ {
		if tracker.ActiveID() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("active = %q, want %q", tracker.ActiveID(), want)
}
