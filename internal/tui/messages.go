package tui

import (
	"github.com/mmcdole/marquee/internal/navigation"
)

// Message types for the TUI. Navigation is requested by screens through
// messages; only the root model touches the router.

// NavigateMsg asks the router to show a route
type NavigateMsg struct {
	Route navigation.Route
}

// CloseMsg asks the router to remove a screen: dismissed when it is the
// overlay, popped when it is the top of the stack
type CloseMsg struct {
	Screen Screen
}

// PopToRootMsg unwinds the stack down to the splash and replays it
type PopToRootMsg struct{}

// PopToFirstViewAfterRootMsg unwinds the stack down to the tab bar
type PopToFirstViewAfterRootMsg struct{}

// SplashDoneMsg ends the splash screen
type SplashDoneMsg struct{}

// TickMsg advances spinners
type TickMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message, unless a newer one has
// replaced it since
type ClearStatusMsg struct {
	Seq int
}
