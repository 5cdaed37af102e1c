package favorites

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/session"
)

// Mode selects which favorite set is authoritative
type Mode int

const (
	// Anonymous uses the locally persisted list
	Anonymous Mode = iota
	// Authenticated uses the signed-in user's likedMovies
	Authenticated
)

func (m Mode) String() string {
	if m == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Remote issues like/unlike requests. It must fail with
// domain.ErrNoCredential, without a network call, when no token is stored.
type Remote interface {
	Like(ctx context.Context, movieID int) error
	Unlike(ctx context.Context, movieID int) error
}

// Refresher reloads the signed-in user after a server-side change
type Refresher interface {
	FetchCurrentUser(ctx context.Context) error
}

// Registry answers "is this movie a favorite" and changes that answer.
//
// The mode is read from the session on every call and never cached. The two
// favorite lists are never merged: the server list while LoggedIn, the local
// list otherwise.
type Registry struct {
	session   session.Source
	remote    Remote
	refresher Refresher
	local     domain.FavoriteStore
	logger    *slog.Logger

	mu sync.Mutex // Serializes read-modify-write of the local list

	changing sync.Mutex
	inFlight map[int]struct{} // Movies with a like or unlike on the wire
}

// NewRegistry creates a registry
func NewRegistry(src session.Source, remote Remote, refresher Refresher, local domain.FavoriteStore, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		session:   src,
		remote:    remote,
		refresher: refresher,
		local:     local,
		logger:    logger,
		inFlight:  make(map[int]struct{}),
	}
}

// Mode reports the mode implied by the current session state
func (r *Registry) Mode() Mode {
	if domain.IsLoggedIn(r.session.Current()) {
		return Authenticated
	}
	return Anonymous
}

// IsFavorite checks membership in the mode-appropriate set. No network call.
func (r *Registry) IsFavorite(movieID int) bool {
	if user, ok := domain.UserOf(r.session.Current()); ok {
		return user.Likes(movieID)
	}
	return slices.Contains(r.local.LocalFavorites(), movieID)
}

// Favorites returns the mode-appropriate favorite IDs
func (r *Registry) Favorites() []int {
	if user, ok := domain.UserOf(r.session.Current()); ok {
		return slices.Clone(user.LikedMovies)
	}
	return r.local.LocalFavorites()
}

// Like marks movieID as liked on the server, then refreshes the user
func (r *Registry) Like(ctx context.Context, movieID int) error {
	return r.remoteChange(ctx, "like", movieID, r.remote.Like)
}

// Unlike removes movieID from the server-side liked set, then refreshes the user
func (r *Registry) Unlike(ctx context.Context, movieID int) error {
	return r.remoteChange(ctx, "unlike", movieID, r.remote.Unlike)
}

func (r *Registry) remoteChange(ctx context.Context, op string, movieID int, call func(context.Context, int) error) error {
	if err := call(ctx, movieID); err != nil {
		r.logger.Error("favorite change failed", "op", op, "movie_id", movieID, "error", err)
		return &domain.OpError{Op: op, Err: err}
	}
	r.logger.Info("favorite changed", "op", op, "movie_id", movieID)

	if err := r.refresher.FetchCurrentUser(ctx); err != nil {
		r.logger.Warn("refresh after favorite change failed", "error", err)
	}
	return nil
}

// BeginChange claims movieID for a like or unlike. It reports false while an
// earlier change for the same movie has not finished; the caller then drops
// the request instead of deciding like or unlike from a stale snapshot.
func (r *Registry) BeginChange(movieID int) bool {
	r.changing.Lock()
	defer r.changing.Unlock()

	if _, busy := r.inFlight[movieID]; busy {
		return false
	}
	r.inFlight[movieID] = struct{}{}
	return true
}

// EndChange releases a claim taken by BeginChange
func (r *Registry) EndChange(movieID int) {
	r.changing.Lock()
	defer r.changing.Unlock()
	delete(r.inFlight, movieID)
}

// Toggle flips movieID in the local list and reports whether it is now a
// favorite. Only valid while not logged in.
func (r *Registry) Toggle(movieID int) (bool, error) {
	if r.Mode() == Authenticated {
		return false, domain.ErrAuthenticatedMode
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.local.LocalFavorites()
	nowFavorite := !slices.Contains(ids, movieID)
	if nowFavorite {
		ids = append(ids, movieID)
	} else {
		ids = slices.DeleteFunc(ids, func(id int) bool { return id == movieID })
	}

	if err := r.local.SaveLocalFavorites(ids); err != nil {
		return !nowFavorite, &domain.OpError{Op: "favorite", Err: err}
	}
	r.logger.Debug("local favorite toggled", "movie_id", movieID, "favorite", nowFavorite)
	return nowFavorite, nil
}
