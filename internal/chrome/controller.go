package chrome

import (
	"errors"
	"sync"

	"github.com/goliatone/go-docsite/internal/logging"
	"github.com/goliatone/go-docsite/pkg/interfaces"
)

var (
	ErrIndicatorRequired = errors.New("chrome: progress indicator is required")
	ErrApplierRequired   = errors.New("chrome: title applier is required")
)

// Config carries the static chrome settings applied at construction.
type Config struct {
	SiteName string
	Progress interfaces.ProgressOptions
}

// Snapshot is one observation of the page state the chrome reacts to.
type Snapshot struct {
	Meta       *interfaces.PageMeta
	Transition *interfaces.Transition
}

// Controller recomputes window chrome from page state observations: the
// document title and the route transition progress indicator.
type Controller struct {
	mu        sync.Mutex
	cfg       Config
	indicator interfaces.ProgressIndicator
	titles    interfaces.TitleApplier
	logger    interfaces.Logger

	last    *Snapshot
	started bool
}

// ControllerOption customizes controller construction.
type ControllerOption func(*Controller)

// WithLogger attaches a logger to the controller.
func WithLogger(logger interfaces.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewController wires the chrome controller and configures the progress
// indicator once with the static options.
func NewController(cfg Config, indicator interfaces.ProgressIndicator, titles interfaces.TitleApplier, opts ...ControllerOption) (*Controller, error) {
	if indicator == nil {
		return nil, ErrIndicatorRequired
	}
	if titles == nil {
		return nil, ErrApplierRequired
	}

	c := &Controller{
		cfg:       cfg,
		indicator: indicator,
		titles:    titles,
		logger:    logging.NoOp(),
	}

	for _, opt := range opts {
		opt(c)
	}

	indicator.Configure(cfg.Progress)

	return c, nil
}

// Observe records a new page state snapshot and recomputes the chrome.
func (c *Controller) Observe(snapshot Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recompute(snapshot)
}

// Recompute re-runs the chrome derivation against the last observed state.
// Repeating it without a state change reapplies the title but never signals
// the progress indicator again.
func (c *Controller) Recompute() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last == nil {
		return
	}
	c.recompute(*c.last)
}

func (c *Controller) recompute(snapshot Snapshot) {
	title, present := DeriveTitle(snapshot.Meta, c.cfg.SiteName)
	c.titles.ApplyTitle(title, present)

	c.signalProgress(snapshot.Transition)

	c.last = &snapshot
}

// signalProgress starts the indicator on real route changes and finishes it
// when no transition remains. Same-path transitions touch nothing, and an
// unchanged transition never re-signals.
func (c *Controller) signalProgress(transition *interfaces.Transition) {
	if transition == nil {
		if c.last != nil && c.last.Transition == nil {
			return
		}
		c.started = false
		c.indicator.Done()
		c.logger.Debug("progress.done")
		return
	}

	if transition.SamePath() {
		return
	}

	if c.started && c.last != nil && sameTransition(c.last.Transition, transition) {
		return
	}

	c.started = true
	c.indicator.Start()
	c.logger.Debug("progress.start", "from", transition.From, "to", transition.To)
}

// DeriveTitle builds the document title from page meta. The category prefixes
// the page title when present, and the site name always trails. The second
// result reports whether meta was present at all; absent meta must leave the
// previous title untouched.
func DeriveTitle(meta *interfaces.PageMeta, siteName string) (string, bool) {
	if meta == nil {
		return "", false
	}

	title := meta.Title
	if meta.Category != "" {
		title = meta.Category + ": " + title
	}
	if siteName != "" {
		title = title + " | " + siteName
	}

	return title, true
}

func sameTransition(a, b *interfaces.Transition) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.From == b.From && a.To == b.To
}
