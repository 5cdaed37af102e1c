package session

import (
	"context"
	"errors"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// ErrFeedClosed is returned by Feed.Next after Close
var ErrFeedClosed = errors.New("session feed closed")

// Feed adapts a subscription to a pull-style queue, so a Bubble Tea command
// can wait for the next transition off the UI goroutine.
//
// The queue is unbounded: transitions are never dropped or coalesced.
type Feed struct {
	mu     sync.Mutex
	items  []domain.SessionState
	signal chan struct{}
	done   chan struct{}
	once   sync.Once
	sub    *Subscription
}

// Listen subscribes a new Feed to src. The current state is the first item.
func Listen(src Source) *Feed {
	f := &Feed{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	f.sub = src.Subscribe(f)
	return f
}

// OnSessionChange queues state (implements Observer)
func (f *Feed) OnSessionChange(state domain.SessionState) {
	f.mu.Lock()
	f.items = append(f.items, state)
	f.mu.Unlock()

	select {
	case f.signal <- struct{}{}:
	default: // A wakeup is already pending
	}
}

// Next blocks until a transition is queued, the feed is closed, or ctx ends
func (f *Feed) Next(ctx context.Context) (domain.SessionState, error) {
	for {
		f.mu.Lock()
		if len(f.items) > 0 {
			state := f.items[0]
			f.items[0] = nil
			f.items = f.items[1:]
			f.mu.Unlock()
			return state, nil
		}
		f.mu.Unlock()

		select {
		case <-f.signal:
		case <-f.done:
			return nil, ErrFeedClosed
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Close cancels the subscription and wakes any pending Next
func (f *Feed) Close() {
	f.once.Do(func() {
		f.sub.Cancel()
		close(f.done)
	})
}
