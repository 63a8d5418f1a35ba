// Package toc drives table-of-contents highlighting: given a document's
// extracted headings and a viewport that reports anchor visibility, it
// maintains the single "currently active" heading for navigation.
package toc

import (
	"sync"
	"time"

	"github.com/jisub/folio/internal/markdown"
)

// DefaultDebounce is how long the tracker waits after the last visibility
// change before committing a new active heading.
const DefaultDebounce = 100 * time.Millisecond

// Event reports one anchor's visibility within the viewport at an instant.
// Top is the distance from the viewport's top edge to the anchor, in display
// units; negative once the anchor has scrolled above the top edge.
type Event struct {
	ID           string
	Intersecting bool
	Top          int
}

// Viewport abstracts the scrollable surface hosting the rendered document.
// The tracker does not own the viewport; it only observes it.
type Viewport interface {
	// Observe begins visibility reporting for the given anchor IDs. fn may
	// be invoked from any goroutine until Disconnect returns.
	Observe(ids []string, fn func([]Event))
	// Disconnect stops visibility reporting.
	Disconnect()
	// ScrollTo scrolls the viewport so the anchor sits at its top edge.
	ScrollTo(id string)
	// SetFragment records the anchor in the host's location, e.g. "#intro".
	SetFragment(id string)
}

// Timer is a cancellable pending call.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed calls. The default wraps time.AfterFunc; tests
// substitute a virtual clock.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

type trackerState int

const (
	stateUninitialized trackerState = iota
	stateObserving
	stateTornDown
)

// Tracker owns a single mutable "active heading id" per document view.
// Lifecycle: uninitialized -> observing (Start) -> torn down (Stop). A torn
// down tracker is done; when content changes, the host stops the old tracker
// and starts a fresh one with the new heading list.
type Tracker struct {
	viewport Viewport
	clock    Clock
	debounce time.Duration
	onChange func(id string)

	mu       sync.Mutex
	state    trackerState
	headings []markdown.Heading
	seen     map[string]Event
	pending  Timer
	active   string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(t *Tracker) { t.debounce = d }
}

// WithClock substitutes the timer source.
func WithClock(c Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithOnChange registers a callback invoked whenever the active heading
// changes. It runs outside the tracker's lock.
func WithOnChange(fn func(id string)) Option {
	return func(t *Tracker) { t.onChange = fn }
}

func NewTracker(vp Viewport, opts ...Option) *Tracker {
	t := &Tracker{
		viewport: vp,
		clock:    realClock{},
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start attaches the tracker to the viewport for the given headings. A nil
// or empty list keeps the tracker uninitialized: there is nothing to
// highlight, so no observation begins. Start is a no-op once the tracker has
// left the uninitialized state.
func (t *Tracker) Start(headings []markdown.Heading) {
	t.mu.Lock()
	if t.state != stateUninitialized || len(headings) == 0 {
		t.mu.Unlock()
		return
	}
	t.state = stateObserving
	t.headings = headings
	t.seen = make(map[string]Event, len(headings))
	ids := make([]string, len(headings))
	for i, h := range headings {
		ids[i] = h.ID
	}
	t.mu.Unlock()

	t.viewport.Observe(ids, t.handleEvents)
}

// Stop tears the tracker down: any pending debounce is cancelled before the
// viewport is disconnected, so no stale callback can commit afterwards.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if t.state != stateObserving {
		t.mu.Unlock()
		return
	}
	t.state = stateTornDown
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.mu.Unlock()

	t.viewport.Disconnect()
}

// Activate handles a navigation click: the active heading commits
// synchronously, bypassing the debounce, and the viewport scrolls to the
// anchor with the location fragment updated.
func (t *Tracker) Activate(id string) {
	t.mu.Lock()
	if t.state != stateObserving {
		t.mu.Unlock()
		return
	}
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	changed := id != t.active
	t.active = id
	fn := t.onChange
	t.mu.Unlock()

	t.viewport.ScrollTo(id)
	t.viewport.SetFragment(id)
	if changed && fn != nil {
		fn(id)
	}
}

// ActiveID returns the currently committed active heading id, or "" when
// nothing has been committed yet.
func (t *Tracker) ActiveID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Observing reports whether the tracker is attached and watching anchors.
func (t *Tracker) Observing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == stateObserving
}

// handleEvents folds a batch of visibility changes into the per-anchor state
// and schedules a debounced commit. Each batch replaces any pending commit,
// so only the last recomputation within the window takes effect.
func (t *Tracker) handleEvents(events []Event) {
	t.mu.Lock()
	if t.state != stateObserving {
		t.mu.Unlock()
		return
	}
	for _, ev := range events {
		t.seen[ev.ID] = ev
	}
	next := t.recomputeLocked()
	if t.pending != nil {
		t.pending.Stop()
	}
	t.pending = t.clock.AfterFunc(t.debounce, func() {
		t.commit(next)
	})
	t.mu.Unlock()
}

// recomputeLocked picks the intersecting anchor closest to the viewport top,
// falling back to the first heading when nothing intersects.
func (t *Tracker) recomputeLocked() string {
	best := ""
	bestTop := 0
	for _, h := range t.headings {
		ev, ok := t.seen[h.ID]
		if !ok || !ev.Intersecting {
			continue
		}
		if best == "" || ev.Top < bestTop {
			best = h.ID
			bestTop = ev.Top
		}
	}
	if best == "" {
		return t.headings[0].ID
	}
	return best
}

func (t *Tracker) commit(id string) {
	t.mu.Lock()
	if t.state != stateObserving {
		t.mu.Unlock()
		return
	}
	t.pending = nil
	changed := id != t.active
	t.active = id
	fn := t.onChange
	t.mu.Unlock()

	if changed && fn != nil {
		fn(id)
	}
}
