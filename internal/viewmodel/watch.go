package viewmodel

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/session"
)

// sessionWatch pumps session transitions into the Bubble Tea loop, one
// SessionChangedMsg per transition, tagged with owner.
type sessionWatch struct {
	feed  *session.Feed
	owner any
}

func watchSession(src session.Source, owner any) sessionWatch {
	return sessionWatch{feed: session.Listen(src), owner: owner}
}

// next waits for the following transition. Re-issue it after each
// SessionChangedMsg. Returns a nil message once the feed is closed.
func (w sessionWatch) next() tea.Cmd {
	feed, owner := w.feed, w.owner
	return func() tea.Msg {
		state, err := feed.Next(context.Background())
		if err != nil {
			return nil
		}
		return SessionChangedMsg{Owner: owner, State: state}
	}
}

func (w sessionWatch) close() {
	w.feed.Close()
}
