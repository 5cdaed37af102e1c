package viewmodel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
)

// FavoritesVM backs the Favorites tab: catalog movies in the
// mode-appropriate favorite set, re-derived on every session transition.
type FavoritesVM struct {
	deps  Deps
	watch sessionWatch

	status Status
	errMsg string
	movies []domain.Movie
	query  string
	items  []domain.Movie
	mode   favorites.Mode
	closed bool
}

// NewFavorites creates the Favorites tab adapter
func NewFavorites(deps Deps) *FavoritesVM {
	vm := &FavoritesVM{deps: deps}
	vm.watch = watchSession(deps.Session, vm)
	return vm
}

// Init starts the first load and the session watch
func (vm *FavoritesVM) Init() tea.Cmd {
	return tea.Batch(vm.Load(), vm.watch.next())
}

// Load fetches the catalog the favorites are picked from
func (vm *FavoritesVM) Load() tea.Cmd {
	vm.status = StatusLoading
	vm.errMsg = ""
	deps := vm.deps
	return func() tea.Msg {
		ctx, cancel := deps.context()
		defer cancel()

		movies, err := deps.Catalog.FetchList(ctx)
		return MoviesLoadedMsg{Owner: vm, Movies: movies, Err: err}
	}
}

// Update applies a message and returns any follow-up command
func (vm *FavoritesVM) Update(msg tea.Msg) tea.Cmd {
	if vm.closed {
		return nil
	}
	switch msg := msg.(type) {
	case MoviesLoadedMsg:
		if msg.Owner != vm {
			return nil
		}
		if msg.Err != nil {
			vm.status = StatusFailed
			vm.errMsg = domain.Message(msg.Err)
			return nil
		}
		vm.status = StatusReady
		vm.movies = msg.Movies
		vm.rebuild()

	case SessionChangedMsg:
		if msg.Owner != vm {
			return nil
		}
		vm.rebuild()
		return vm.watch.next()

	case FavoriteChangedMsg:
		vm.rebuild()
	}
	return nil
}

// SetQuery ranks the favorites by closeness to query
func (vm *FavoritesVM) SetQuery(query string) {
	vm.query = query
	vm.rebuild()
}

// Remove takes a movie out of the favorite set
func (vm *FavoritesVM) Remove(movieID int) tea.Cmd {
	if !vm.deps.Favorites.IsFavorite(movieID) {
		return nil
	}
	return toggleFavorite(vm.deps, movieID)
}

func (vm *FavoritesVM) rebuild() {
	vm.mode = vm.deps.Favorites.Mode()
	vm.items = catalog.Rank(domain.FilterByIDs(vm.movies, vm.deps.Favorites.Favorites()), vm.query)
}

func (vm *FavoritesVM) Status() Status        { return vm.status }
func (vm *FavoritesVM) Err() string           { return vm.errMsg }
func (vm *FavoritesVM) Items() []domain.Movie { return vm.items }
func (vm *FavoritesVM) Query() string         { return vm.query }
func (vm *FavoritesVM) Mode() favorites.Mode  { return vm.mode }

// Close releases the session subscription; later completions are dropped
func (vm *FavoritesVM) Close() {
	vm.closed = true
	vm.watch.close()
}
