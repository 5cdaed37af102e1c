package viewmodel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/domain"
)

// CatalogItem is one display-ready row of a movie list
type CatalogItem struct {
	Movie          domain.Movie
	Favorite       bool
	MatchedIndexes []int // Title positions matching the filter
}

// CatalogVM backs the Home tab: the whole catalog with favorite markers
type CatalogVM struct {
	deps  Deps
	watch sessionWatch

	status Status
	errMsg string
	movies []domain.Movie
	query  string
	items  []CatalogItem
	closed bool
}

// NewCatalog creates the Home tab adapter
func NewCatalog(deps Deps) *CatalogVM {
	vm := &CatalogVM{deps: deps}
	vm.watch = watchSession(deps.Session, vm)
	return vm
}

// Init starts the first load and the session watch
func (vm *CatalogVM) Init() tea.Cmd {
	return tea.Batch(vm.Load(), vm.watch.next())
}

// Load fetches the catalog. Also the retry action.
func (vm *CatalogVM) Load() tea.Cmd {
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
func (vm *CatalogVM) Update(msg tea.Msg) tea.Cmd {
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

// SetQuery filters the list by fuzzy title match
func (vm *CatalogVM) SetQuery(query string) {
	vm.query = query
	vm.rebuild()
}

// ToggleFavorite flips a movie's favorite state
func (vm *CatalogVM) ToggleFavorite(movieID int) tea.Cmd {
	return toggleFavorite(vm.deps, movieID)
}

func (vm *CatalogVM) rebuild() {
	matches := catalog.Filter(vm.movies, vm.query)
	vm.items = make([]CatalogItem, len(matches))
	for i, m := range matches {
		vm.items[i] = CatalogItem{
			Movie:          m.Movie,
			Favorite:       m.Movie.HasID && vm.deps.Favorites.IsFavorite(m.Movie.ID),
			MatchedIndexes: m.MatchedIndexes,
		}
	}
}

func (vm *CatalogVM) Status() Status       { return vm.status }
func (vm *CatalogVM) Err() string          { return vm.errMsg }
func (vm *CatalogVM) Items() []CatalogItem { return vm.items }
func (vm *CatalogVM) Query() string        { return vm.query }
func (vm *CatalogVM) Total() int           { return len(vm.movies) }

// Close releases the session subscription; later completions are dropped
func (vm *CatalogVM) Close() {
	vm.closed = true
	vm.watch.close()
}
