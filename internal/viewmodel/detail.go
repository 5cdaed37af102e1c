package viewmodel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
)

// DetailVM backs the movie detail screen
type DetailVM struct {
	deps    Deps
	watch   sessionWatch
	movieID int

	status   Status
	errMsg   string
	movie    domain.Movie
	favorite bool
	notice   string
	closed   bool
}

// NewDetail creates the adapter for one movie
func NewDetail(deps Deps, movieID int) *DetailVM {
	vm := &DetailVM{deps: deps, movieID: movieID}
	vm.watch = watchSession(deps.Session, vm)
	vm.favorite = deps.Favorites.IsFavorite(movieID)
	return vm
}

// Init starts the first load and the session watch
func (vm *DetailVM) Init() tea.Cmd {
	return tea.Batch(vm.Load(), vm.watch.next())
}

// Load fetches the movie. Also the retry action.
func (vm *DetailVM) Load() tea.Cmd {
	vm.status = StatusLoading
	vm.errMsg = ""
	deps, id := vm.deps, vm.movieID
	return func() tea.Msg {
		ctx, cancel := deps.context()
		defer cancel()

		movie, err := deps.Catalog.FetchDetail(ctx, id)
		return MovieLoadedMsg{Owner: vm, Movie: movie, Err: err}
	}
}

// Update applies a message and returns any follow-up command
func (vm *DetailVM) Update(msg tea.Msg) tea.Cmd {
	if vm.closed {
		return nil
	}
	switch msg := msg.(type) {
	case MovieLoadedMsg:
		if msg.Owner != vm {
			return nil
		}
		if msg.Err != nil {
			vm.status = StatusFailed
			vm.errMsg = domain.Message(msg.Err)
			return nil
		}
		vm.status = StatusReady
		vm.movie = msg.Movie

	case SessionChangedMsg:
		if msg.Owner != vm {
			return nil
		}
		vm.favorite = vm.deps.Favorites.IsFavorite(vm.movieID)
		return vm.watch.next()

	case FavoriteChangedMsg:
		if msg.MovieID != vm.movieID {
			return nil
		}
		vm.favorite = vm.deps.Favorites.IsFavorite(vm.movieID)
		vm.notice = ""
		if msg.Err != nil {
			vm.notice = domain.Message(msg.Err)
		}
	}
	return nil
}

// ToggleFavorite flips this movie's favorite state
func (vm *DetailVM) ToggleFavorite() tea.Cmd {
	return toggleFavorite(vm.deps, vm.movieID)
}

func (vm *DetailVM) MovieID() int        { return vm.movieID }
func (vm *DetailVM) Status() Status      { return vm.status }
func (vm *DetailVM) Err() string         { return vm.errMsg }
func (vm *DetailVM) Movie() domain.Movie { return vm.movie }
func (vm *DetailVM) Favorite() bool      { return vm.favorite }

// Notice is the last favorite-change failure, if any
func (vm *DetailVM) Notice() string { return vm.notice }

// Close releases the session subscription; later completions are dropped
func (vm *DetailVM) Close() {
	vm.closed = true
	vm.watch.close()
}
