package viewmodel

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/session"
)

const defaultTimeout = 30 * time.Second

// Catalog is the movie read side
type Catalog interface {
	FetchList(ctx context.Context) ([]domain.Movie, error)
	FetchDetail(ctx context.Context, id int) (domain.Movie, error)
}

// Auth is the set of auth operations screens trigger
type Auth interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, form domain.ProfileForm) error
	UpdateProfile(ctx context.Context, form domain.ProfileForm) error
	FetchCurrentUser(ctx context.Context) error
	Logout() error
}

// Favorites is the favorite registry
type Favorites interface {
	Mode() favorites.Mode
	IsFavorite(movieID int) bool
	Favorites() []int
	Like(ctx context.Context, movieID int) error
	Unlike(ctx context.Context, movieID int) error
	Toggle(movieID int) (bool, error)
	BeginChange(movieID int) bool
	EndChange(movieID int)
}

// Validator checks forms before anything is sent
type Validator interface {
	Login(email, password string) error
	Profile(form domain.ProfileForm) error
}

// Deps are the collaborators every adapter is built from
type Deps struct {
	Session   session.Source
	Auth      Auth
	Favorites Favorites
	Catalog   Catalog
	Validator Validator
	Timeout   time.Duration // Per request; zero means 30s
	Logger    *slog.Logger
}

func (d Deps) context() (context.Context, context.CancelFunc) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// toggleFavorite flips movieID using the entry point that matches the
// current mode: a local toggle when anonymous, like/unlike when signed in.
// While a like or unlike for movieID is in flight further presses are
// ignored.
func toggleFavorite(d Deps, movieID int) tea.Cmd {
	if d.Favorites.Mode() == favorites.Anonymous {
		now, err := d.Favorites.Toggle(movieID)
		return func() tea.Msg {
			return FavoriteChangedMsg{MovieID: movieID, Favorite: now, Err: err}
		}
	}

	if !d.Favorites.BeginChange(movieID) {
		d.logger().Debug("favorite change already in flight", "movie_id", movieID)
		return nil
	}
	liked := d.Favorites.IsFavorite(movieID)
	return func() tea.Msg {
		defer d.Favorites.EndChange(movieID)
		ctx, cancel := d.context()
		defer cancel()

		var err error
		if liked {
			err = d.Favorites.Unlike(ctx, movieID)
		} else {
			err = d.Favorites.Like(ctx, movieID)
		}
		if err != nil {
			return FavoriteChangedMsg{MovieID: movieID, Favorite: liked, Err: err}
		}
		return FavoriteChangedMsg{MovieID: movieID, Favorite: !liked}
	}
}
