package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

type recorder struct {
	mu     sync.Mutex
	states []domain.SessionState
}

func (r *recorder) OnSessionChange(state domain.SessionState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *recorder) seen() []domain.SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.SessionState, len(r.states))
	copy(out, r.states)
	return out
}

// stateFromCode maps a generated code to one of the four session states
func stateFromCode(code int, label string) domain.SessionState {
	switch code % 4 {
	case 0:
		return domain.LoggedOut{}
	case 1:
		return domain.Loading{}
	case 2:
		return domain.LoggedIn{User: domain.CurrentUser{ID: label}}
	default:
		return domain.SessionError{Message: label}
	}
}

func TestStoreDefaultsToLoggedOut(t *testing.T) {
	s := NewStore(nil, nil)
	assert.Equal(t, domain.LoggedOut{}, s.Current())
}

func TestSubscribeReplaysCurrent(t *testing.T) {
	s := NewStore(domain.Loading{}, nil)
	rec := &recorder{}

	sub := s.Subscribe(rec)
	defer sub.Cancel()

	assert.Equal(t, []domain.SessionState{domain.Loading{}}, rec.seen())
}

func TestSetDeliversInOrderWithoutCoalescing(t *testing.T) {
	s := NewStore(nil, nil)
	rec := &recorder{}
	s.Subscribe(rec)

	s.Set(domain.Loading{})
	s.Set(domain.Loading{})
	s.Set(domain.SessionError{Message: "boom"})

	assert.Equal(t, []domain.SessionState{
		domain.LoggedOut{},
		domain.Loading{},
		domain.Loading{},
		domain.SessionError{Message: "boom"},
	}, rec.seen())
	assert.Equal(t, domain.SessionError{Message: "boom"}, s.Current())
}

func TestCancelStopsDelivery(t *testing.T) {
	s := NewStore(nil, nil)
	rec := &recorder{}
	sub := s.Subscribe(rec)

	sub.Cancel()
	sub.Cancel()
	s.Set(domain.Loading{})

	assert.Len(t, rec.seen(), 1)
}

func TestCancelFromInsideObserver(t *testing.T) {
	s := NewStore(nil, nil)
	var sub *Subscription
	calls := 0
	sub = s.Subscribe(ObserverFunc(func(state domain.SessionState) {
		calls++
		if _, ok := state.(domain.Loading); ok {
			sub.Cancel()
		}
	}))

	s.Set(domain.Loading{})
	s.Set(domain.LoggedOut{})

	assert.Equal(t, 2, calls)
}

func TestObserverCanReadCurrent(t *testing.T) {
	s := NewStore(nil, nil)
	var seen []domain.SessionState
	s.Subscribe(ObserverFunc(func(domain.SessionState) {
		seen = append(seen, s.Current())
	}))

	s.Set(domain.Loading{})
	assert.Equal(t, []domain.SessionState{domain.LoggedOut{}, domain.Loading{}}, seen)
}

func TestSubscribersObserveExactSequence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("subscribers see every Set in order, after the replayed value", prop.ForAll(
		func(initialCode int, codes []int, label string) bool {
			initial := stateFromCode(initialCode, label)
			s := NewStore(initial, nil)
			first, second := &recorder{}, &recorder{}
			s.Subscribe(first)
			s.Subscribe(second)

			want := []domain.SessionState{initial}
			for i, code := range codes {
				state := stateFromCode(code+i, label)
				s.Set(state)
				want = append(want, state)
			}

			return assert.ObjectsAreEqual(want, first.seen()) &&
				assert.ObjectsAreEqual(want, second.seen())
		},
		gen.IntRange(0, 3),
		gen.SliceOf(gen.IntRange(0, 3)),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestConcurrentSetsAreSeenInTheSameOrderByAll(t *testing.T) {
	s := NewStore(nil, nil)
	first, second := &recorder{}, &recorder{}
	s.Subscribe(first)
	s.Subscribe(second)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Set(stateFromCode(i, "u"))
		}(i)
	}
	wg.Wait()

	assert.Len(t, first.seen(), 51)
	assert.Equal(t, first.seen(), second.seen())
	assert.Equal(t, first.seen()[50], s.Current())
}

func TestFeedQueuesEveryTransition(t *testing.T) {
	s := NewStore(nil, nil)
	feed := Listen(s)
	defer feed.Close()

	s.Set(domain.Loading{})
	s.Set(domain.LoggedIn{User: domain.CurrentUser{ID: "u1"}})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var got []domain.SessionState
	for i := 0; i < 3; i++ {
		state, err := feed.Next(ctx)
		require.NoError(t, err)
		got = append(got, state)
	}

	assert.Equal(t, []domain.SessionState{
		domain.LoggedOut{},
		domain.Loading{},
		domain.LoggedIn{User: domain.CurrentUser{ID: "u1"}},
	}, got)
}

func TestFeedCloseUnblocksNext(t *testing.T) {
	s := NewStore(nil, nil)
	feed := Listen(s)

	ctx := context.Background()
	_, err := feed.Next(ctx) // replayed value
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := feed.Next(ctx)
		done <- err
	}()

	feed.Close()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrFeedClosed)
	case <-time.After(time.Second):
		t.Fatal("Next did not return after Close")
	}

	// A closed feed no longer receives transitions
	s.Set(domain.Loading{})
	_, err = feed.Next(ctx)
	assert.ErrorIs(t, err, ErrFeedClosed)
}

func TestFeedNextHonorsContext(t *testing.T) {
	s := NewStore(nil, nil)
	feed := Listen(s)
	defer feed.Close()

	_, err := feed.Next(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = feed.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
