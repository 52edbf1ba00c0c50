package interfaces

// PageMeta carries the descriptive metadata attached to the currently
// rendered documentation page. A nil PageMeta means no page is resolved and
// the chrome controller must not produce a title override.
type PageMeta struct {
	Title       string
	Description string
	Category    string
}

// Transition describes an in-flight client-side navigation between two
// routes. It is owned by the navigation layer; the chrome controller only
// reads it. A nil Transition means no navigation is underway.
type Transition struct {
	From string
	To   string
}

// SamePath reports whether the transition stays on its origin route, e.g.
// anchor scrolling. Same-path transitions must not trigger the progress
// indicator.
func (t *Transition) SamePath() bool {
	if t == nil {
		return false
	}
	return t.From == t.To
}

// ProgressOptions configures a progress indicator once at initialization.
type ProgressOptions struct {
	// MinimumFraction is the completion fraction the bar jumps to when
	// started, and the floor below which Set calls are clamped.
	MinimumFraction float64 `json:"minimum"`
	// Easing names the CSS-style easing applied to bar movement.
	Easing string `json:"easing"`
	// ShowSpinner toggles the spinner icon next to the bar.
	ShowSpinner bool `json:"show_spinner"`
}

// ProgressIndicator is the thin loading-bar widget driven by the chrome
// controller during page transitions.
type ProgressIndicator interface {
	Configure(opts ProgressOptions)
	Start()
	Done()
}

// TitleApplier receives derived document titles. Present is false when page
// metadata is absent and the previous title must be left untouched.
type TitleApplier interface {
	ApplyTitle(title string, present bool)
}
