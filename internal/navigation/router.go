package navigation

import (
	"log/slog"
)

// Screen is what the router keeps on its stack
type Screen interface {
	Route() Route
	// Close releases the screen's subscriptions. Called once, when the
	// screen leaves the router.
	Close()
}

// Router holds the navigation stack and at most one overlay.
//
// A Router is not safe for concurrent use. It is owned by the UI loop; every
// mutation happens there.
type Router[S Screen] struct {
	builder Builder[S]
	logger  *slog.Logger

	stack      []S
	overlay    S
	hasOverlay bool
}

// NewRouter creates an empty router that builds screens with builder
func NewRouter[S Screen](builder Builder[S], logger *slog.Logger) *Router[S] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router[S]{builder: builder, logger: logger}
}

// Start clears everything and shows Splash
func (r *Router[S]) Start() {
	r.Dismiss()
	r.truncate(0)
	r.stack = append(r.stack, Build[S](Splash{}, r.builder))
	r.logger.Debug("router started")
}

// Show builds route's screen and presents it according to its mode. Pushed
// screens go onto the stack, beneath any overlay. An overlay replaces the
// current one.
func (r *Router[S]) Show(route Route) S {
	screen := Build[S](route, r.builder)

	mode := route.Presentation()
	if mode.IsOverlay() {
		r.Dismiss()
		r.overlay = screen
		r.hasOverlay = true
	} else {
		r.stack = append(r.stack, screen)
	}

	r.logger.Debug("router show", "route", route.String(), "mode", mode.String(), "depth", len(r.stack))
	return screen
}

// Pop removes the top of the stack. No-op with one entry or fewer.
func (r *Router[S]) Pop() {
	if len(r.stack) <= 1 {
		return
	}
	r.truncate(len(r.stack) - 1)
}

// PopToRoot leaves only the first entry
func (r *Router[S]) PopToRoot() {
	r.truncate(1)
}

// PopToFirstViewAfterRoot leaves the first two entries. No-op with one
// entry or fewer.
func (r *Router[S]) PopToFirstViewAfterRoot() {
	if len(r.stack) <= 1 {
		return
	}
	r.truncate(2)
}

// Dismiss closes the overlay, if any
func (r *Router[S]) Dismiss() {
	if !r.hasOverlay {
		return
	}
	closing := r.overlay
	var zero S
	r.overlay = zero
	r.hasOverlay = false
	closing.Close()
}

// Top returns the top of the stack
func (r *Router[S]) Top() (S, bool) {
	if len(r.stack) == 0 {
		var zero S
		return zero, false
	}
	return r.stack[len(r.stack)-1], true
}

// Overlay returns the presented overlay
func (r *Router[S]) Overlay() (S, bool) {
	return r.overlay, r.hasOverlay
}

// Visible returns the screen receiving input: the overlay if one is shown,
// otherwise the top of the stack.
func (r *Router[S]) Visible() (S, bool) {
	if r.hasOverlay {
		return r.overlay, true
	}
	return r.Top()
}

// Depth returns the number of stacked screens
func (r *Router[S]) Depth() int {
	return len(r.stack)
}

// Stack returns a copy of the stack, bottom first
func (r *Router[S]) Stack() []S {
	out := make([]S, len(r.stack))
	copy(out, r.stack)
	return out
}

// Screens returns every live screen: the stack, then the overlay
func (r *Router[S]) Screens() []S {
	out := r.Stack()
	if r.hasOverlay {
		out = append(out, r.overlay)
	}
	return out
}

// truncate shrinks the stack to n entries, closing what it removes, top first
func (r *Router[S]) truncate(n int) {
	if n >= len(r.stack) {
		return
	}
	var zero S
	for i := len(r.stack) - 1; i >= n; i-- {
		r.stack[i].Close()
		r.stack[i] = zero
	}
	r.stack = r.stack[:n]
}
