package viewmodel

import (
	"github.com/mmcdole/marquee/internal/domain"
)

// Message types for the adapters. Messages carrying an Owner are only
// applied by the adapter that issued the command; anything else (a stale
// or closed adapter) ignores them.

// Status is the load state of a screen
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// SessionChangedMsg delivers one session transition to its adapter
type SessionChangedMsg struct {
	Owner any
	State domain.SessionState
}

// MoviesLoadedMsg carries the result of a catalog fetch
type MoviesLoadedMsg struct {
	Owner  any
	Movies []domain.Movie
	Err    error
}

// MovieLoadedMsg carries the result of a detail fetch
type MovieLoadedMsg struct {
	Owner any
	Movie domain.Movie
	Err   error
}

// FavoriteChangedMsg reports a favorite toggle. It has no owner: every
// screen showing favorite state refreshes on it.
type FavoriteChangedMsg struct {
	MovieID  int
	Favorite bool // State after the change (unchanged when Err is set)
	Err      error
}

// AuthOp names the auth operation an AuthDoneMsg settles
type AuthOp int

const (
	OpLogin AuthOp = iota
	OpRegister
	OpUpdateProfile
	OpFetchUser
)

// AuthDoneMsg carries the result of an auth operation
type AuthDoneMsg struct {
	Owner any
	Op    AuthOp
	Err   error
}
