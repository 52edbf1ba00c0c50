package chrome

import (
	"sync"

	"github.com/goliatone/go-docsite/pkg/interfaces"
)

// Tracker is a ProgressIndicator that records the signals it receives. It
// backs the preview server's chrome state endpoint and test assertions.
type Tracker struct {
	mu       sync.Mutex
	opts     interfaces.ProgressOptions
	running  bool
	fraction float64
	starts   int
	dones    int
}

// NewTracker returns an unconfigured tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Configure stores the static indicator options.
func (t *Tracker) Configure(opts interfaces.ProgressOptions) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.opts = opts
}

// Start marks the indicator as running. The bar jumps to the configured
// minimum fraction so short loads are still visible.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.running = true
	t.fraction = t.opts.MinimumFraction
	t.starts++
}

// Done marks the indicator as idle and the bar as complete.
func (t *Tracker) Done() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.running = false
	t.fraction = 1
	t.dones++
}

// Set records an intermediate completion fraction, clamped to the
// [MinimumFraction, 1] range.
func (t *Tracker) Set(fraction float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if fraction < t.opts.MinimumFraction {
		fraction = t.opts.MinimumFraction
	}
	if fraction > 1 {
		fraction = 1
	}
	t.fraction = fraction
}

// Fraction returns the current completion fraction.
func (t *Tracker) Fraction() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.fraction
}

// Options returns the configured indicator options.
func (t *Tracker) Options() interfaces.ProgressOptions {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.opts
}

// Running reports whether the indicator is currently started.
func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.running
}

// Counts returns how many start and done signals were received.
func (t *Tracker) Counts() (starts, dones int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.starts, t.dones
}

// TitleState is a TitleApplier that keeps the last applied title, leaving it
// untouched when page metadata is absent.
type TitleState struct {
	mu    sync.Mutex
	title string
}

// NewTitleState returns a title state with an optional initial title.
func NewTitleState(initial string) *TitleState {
	return &TitleState{title: initial}
}

// ApplyTitle stores the derived title. Absent metadata keeps the previous one.
func (t *TitleState) ApplyTitle(title string, present bool) {
	if !present {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.title = title
}

// Title returns the current document title.
func (t *TitleState) Title() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.title
}
