package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/navigation"
)

// Command factories

// NavigateCmd shows route
func NavigateCmd(route navigation.Route) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Route: route}
	}
}

// CloseCmd removes s from the router
func CloseCmd(s Screen) tea.Cmd {
	return func() tea.Msg {
		return CloseMsg{Screen: s}
	}
}

// PopToRootCmd unwinds to the splash, which then starts over
func PopToRootCmd() tea.Cmd {
	return func() tea.Msg {
		return PopToRootMsg{}
	}
}

// PopToFirstViewAfterRootCmd unwinds to the tab bar
func PopToFirstViewAfterRootCmd() tea.Cmd {
	return func() tea.Msg {
		return PopToFirstViewAfterRootMsg{}
	}
}

// SplashCmd ends the splash after delay
func SplashCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return SplashDoneMsg{}
	})
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// StatusCmd shows a status message
func StatusCmd(message string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: message, IsError: isError}
	}
}

// ClearStatusCmd clears status number seq after a delay
func ClearStatusCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

// ResumeCmd restores the persisted session off the UI loop. The outcome
// reaches screens through the session store.
func ResumeCmd(resume func(ctx context.Context) error, timeout time.Duration) tea.Cmd {
	if resume == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		_ = resume(ctx)
		return nil
	}
}
