package viewmodel

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/session"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/validation"
)

type fakeCatalog struct {
	movies []domain.Movie
	err    error
}

func (f *fakeCatalog) FetchList(ctx context.Context) ([]domain.Movie, error) {
	return f.movies, f.err
}

func (f *fakeCatalog) FetchDetail(ctx context.Context, id int) (domain.Movie, error) {
	if f.err != nil {
		return domain.Movie{}, f.err
	}
	for _, m := range f.movies {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Movie{}, &domain.OpError{Op: "loading movie", Err: &domain.StatusError{Code: 404}}
}

type fakeAuth struct {
	calls   []string
	err     error
	session *session.Store
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) error {
	f.calls = append(f.calls, "login:"+email)
	return f.err
}

func (f *fakeAuth) Register(ctx context.Context, form domain.ProfileForm) error {
	f.calls = append(f.calls, "register:"+form.Email)
	return f.err
}

func (f *fakeAuth) UpdateProfile(ctx context.Context, form domain.ProfileForm) error {
	f.calls = append(f.calls, "update:"+form.Name)
	return f.err
}

func (f *fakeAuth) FetchCurrentUser(ctx context.Context) error {
	f.calls = append(f.calls, "fetch")
	return f.err
}

func (f *fakeAuth) Logout() error {
	f.calls = append(f.calls, "logout")
	f.session.Set(domain.LoggedOut{})
	return nil
}

type fakeRemote struct{ liked []int }

func (f *fakeRemote) Like(ctx context.Context, id int) error {
	f.liked = append(f.liked, id)
	return nil
}

func (f *fakeRemote) Unlike(ctx context.Context, id int) error { return nil }

type fixture struct {
	deps    Deps
	session *session.Store
	local   *store.Store
	catalog *fakeCatalog
	auth    *fakeAuth
	remote  *fakeRemote
}

func newFixture(t *testing.T, state domain.SessionState) *fixture {
	t.Helper()
	local, err := store.Open("")
	require.NoError(t, err)

	sess := session.NewStore(state, nil)
	cat := &fakeCatalog{movies: []domain.Movie{
		{ID: 1, HasID: true, Title: "Heat"},
		{ID: 2, HasID: true, Title: "Ronin"},
		{ID: 3, HasID: true, Title: "Thief"},
		{Title: domain.FallbackTitle},
	}}
	auth := &fakeAuth{session: sess}
	remote := &fakeRemote{}
	registry := favorites.NewRegistry(sess, remote, auth, local, nil)

	return &fixture{
		deps: Deps{
			Session:   sess,
			Auth:      auth,
			Favorites: registry,
			Catalog:   cat,
			Validator: validation.New(),
		},
		session: sess,
		local:   local,
		catalog: cat,
		auth:    auth,
		remote:  remote,
	}
}

// run executes cmd and feeds its message back through update
func run(cmd tea.Cmd, update func(tea.Msg) tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	update(msg)
	return msg
}

func TestCatalogLoadAndFavorites(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.local.SaveLocalFavorites([]int{2}))
	vm := NewCatalog(f.deps)
	defer vm.Close()

	run(vm.Load(), vm.Update)
	assert.Equal(t, StatusReady, vm.Status())
	require.Len(t, vm.Items(), 4)
	assert.False(t, vm.Items()[0].Favorite)
	assert.True(t, vm.Items()[1].Favorite)
	assert.False(t, vm.Items()[3].Favorite, "movies without an id are never favorites")

	vm.SetQuery("ron")
	require.Len(t, vm.Items(), 1)
	assert.Equal(t, "Ronin", vm.Items()[0].Movie.Title)
	assert.Equal(t, 4, vm.Total())
}

func TestCatalogFailureShowsMessage(t *testing.T) {
	f := newFixture(t, nil)
	f.catalog.err = &domain.OpError{Op: "loading movies", Err: &domain.TransportError{Err: errors.New("refused")}}
	vm := NewCatalog(f.deps)
	defer vm.Close()

	run(vm.Load(), vm.Update)
	assert.Equal(t, StatusFailed, vm.Status())
	assert.Equal(t, "loading movies failed: could not reach the server", vm.Err())

	f.catalog.err = nil
	cmd := vm.Load()
	assert.Equal(t, StatusLoading, vm.Status())
	run(cmd, vm.Update)
	assert.Equal(t, StatusReady, vm.Status())
}

func TestStaleAndClosedCompletionsAreIgnored(t *testing.T) {
	f := newFixture(t, nil)
	vm := NewCatalog(f.deps)
	other := NewCatalog(f.deps)
	defer other.Close()

	vm.Load()
	vm.Update(MoviesLoadedMsg{Owner: other, Movies: f.catalog.movies})
	assert.Equal(t, StatusLoading, vm.Status())

	msg := vm.Load()()
	vm.Close()
	vm.Update(msg)
	assert.Equal(t, StatusLoading, vm.Status())
}

func TestSessionWatchDeliversTransitions(t *testing.T) {
	f := newFixture(t, nil)
	vm := NewProfile(f.deps)
	defer vm.Close()

	replay := vm.Init()()
	require.IsType(t, SessionChangedMsg{}, replay)
	next := vm.Update(replay)
	require.NotNil(t, next)

	f.session.Set(domain.LoggedIn{User: domain.CurrentUser{ID: "u1", Name: "Ada"}})
	vm.Update(next())
	assert.Equal(t, ProfileLoggedIn, vm.View())
	assert.Equal(t, "Ada", vm.User().Name)
}

func TestWatchStopsAfterClose(t *testing.T) {
	f := newFixture(t, nil)
	vm := NewProfile(f.deps)
	vm.Init()() // replay
	cmd := vm.watch.next()

	vm.Close()
	assert.Nil(t, cmd())
}

func TestProfileDerivesFromSession(t *testing.T) {
	f := newFixture(t, domain.SessionError{Message: "user fetch failed: could not reach the server"})
	vm := NewProfile(f.deps)
	defer vm.Close()

	assert.Equal(t, ProfileError, vm.View())
	assert.Contains(t, vm.Err(), "could not reach")

	run(vm.Retry(), vm.Update)
	assert.Equal(t, []string{"fetch"}, f.auth.calls)

	vm.Update(SessionChangedMsg{Owner: vm, State: domain.Loading{}})
	assert.Equal(t, ProfileLoading, vm.View())
	assert.Empty(t, vm.Err())

	vm.Logout()
	vm.Update(SessionChangedMsg{Owner: vm, State: f.session.Current()})
	assert.Equal(t, ProfileLoggedOut, vm.View())
}

func TestAnonymousToggleThroughCatalog(t *testing.T) {
	f := newFixture(t, nil)
	home := NewCatalog(f.deps)
	favs := NewFavorites(f.deps)
	defer home.Close()
	defer favs.Close()
	run(home.Load(), home.Update)
	run(favs.Load(), favs.Update)
	assert.Empty(t, favs.Items())

	msg := home.ToggleFavorite(3)()
	changed, ok := msg.(FavoriteChangedMsg)
	require.True(t, ok)
	assert.True(t, changed.Favorite)
	require.NoError(t, changed.Err)

	home.Update(msg)
	favs.Update(msg)
	assert.True(t, home.Items()[2].Favorite)
	require.Len(t, favs.Items(), 1)
	assert.Equal(t, "Thief", favs.Items()[0].Title)
	assert.Equal(t, favorites.Anonymous, favs.Mode())

	msg = favs.Remove(3)()
	favs.Update(msg)
	assert.Empty(t, favs.Items())
	assert.Nil(t, favs.Remove(3), "removing a non-favorite is a no-op")
}

func TestAuthenticatedToggleLikesAndRefreshes(t *testing.T) {
	f := newFixture(t, domain.LoggedIn{User: domain.CurrentUser{ID: "u1", LikedMovies: []int{1}}})
	vm := NewDetail(f.deps, 2)
	defer vm.Close()
	assert.False(t, vm.Favorite())

	msg := vm.ToggleFavorite()().(FavoriteChangedMsg)
	require.NoError(t, msg.Err)
	assert.True(t, msg.Favorite)
	assert.Equal(t, []int{2}, f.remote.liked)
	assert.Equal(t, []string{"fetch"}, f.auth.calls)
	assert.Empty(t, f.local.LocalFavorites(), "authenticated likes never touch the local list")
}

func TestRepeatedTogglesWaitForTheFirst(t *testing.T) {
	f := newFixture(t, domain.LoggedIn{User: domain.CurrentUser{ID: "u1"}})
	detail := NewDetail(f.deps, 2)
	defer detail.Close()
	list := NewCatalog(f.deps)
	defer list.Close()

	first := detail.ToggleFavorite()
	require.NotNil(t, first)
	assert.Nil(t, detail.ToggleFavorite(), "ignored while the like is in flight")
	assert.Nil(t, list.ToggleFavorite(2), "the claim is shared across screens")

	msg := first().(FavoriteChangedMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, []int{2}, f.remote.liked, "only one like was sent")

	assert.NotNil(t, detail.ToggleFavorite(), "presses work again once the change finished")
}

func TestFavoritesFollowSessionMode(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.local.SaveLocalFavorites([]int{1}))
	vm := NewFavorites(f.deps)
	defer vm.Close()
	run(vm.Load(), vm.Update)
	require.Len(t, vm.Items(), 1)
	assert.Equal(t, "Heat", vm.Items()[0].Title)

	f.session.Set(domain.LoggedIn{User: domain.CurrentUser{ID: "u1", LikedMovies: []int{2, 3}}})
	vm.Update(SessionChangedMsg{Owner: vm, State: f.session.Current()})
	assert.Equal(t, favorites.Authenticated, vm.Mode())
	require.Len(t, vm.Items(), 2)

	vm.SetQuery("thf")
	require.Len(t, vm.Items(), 1)
	assert.Equal(t, "Thief", vm.Items()[0].Title)
}

func TestDetailLoadAndMissing(t *testing.T) {
	f := newFixture(t, nil)
	vm := NewDetail(f.deps, 1)
	defer vm.Close()
	run(vm.Load(), vm.Update)
	assert.Equal(t, "Heat", vm.Movie().Title)

	missing := NewDetail(f.deps, 42)
	defer missing.Close()
	run(missing.Load(), missing.Update)
	assert.Equal(t, StatusFailed, missing.Status())
	assert.Equal(t, "loading movie failed: request failed with code 404", missing.Err())
}

func TestFormValidationBlocksSubmit(t *testing.T) {
	f := newFixture(t, nil)
	vm := NewForm(f.deps, FormLogin, &domain.ProfileForm{Email: "nope"})

	assert.Nil(t, vm.Submit())
	assert.Contains(t, vm.FieldErrors(), "email")
	assert.Contains(t, vm.FieldErrors(), "password")
	assert.Empty(t, f.auth.calls)
}

func TestFormSubmitSuccessClearsSharedForm(t *testing.T) {
	f := newFixture(t, nil)
	shared := &domain.ProfileForm{Email: "a@b.com", Password: "Abcd123!"}
	login := NewForm(f.deps, FormLogin, shared)
	register := NewForm(f.deps, FormRegister, shared)
	assert.Same(t, login.Form(), register.Form())

	cmd := login.Submit()
	require.NotNil(t, cmd)
	assert.True(t, login.Submitting())
	assert.Nil(t, login.Submit(), "no double submit")

	run(cmd, login.Update)
	assert.True(t, login.Succeeded())
	assert.False(t, login.Submitting())
	assert.Equal(t, domain.ProfileForm{}, *shared)
	assert.Equal(t, []string{"login:a@b.com"}, f.auth.calls)
}

func TestFormFailureShowsMessage(t *testing.T) {
	f := newFixture(t, nil)
	f.auth.err = &domain.OpError{Op: "login", Err: &domain.StatusError{Code: 401}}
	vm := NewForm(f.deps, FormLogin, &domain.ProfileForm{Email: "a@b.com", Password: "x"})

	run(vm.Submit(), vm.Update)
	assert.False(t, vm.Succeeded())
	assert.Equal(t, "login failed: request failed with code 401", vm.Err())
	assert.Equal(t, "a@b.com", vm.Form().Email, "failed submits keep the input")
}

func TestFormSupersededIsSilent(t *testing.T) {
	f := newFixture(t, nil)
	f.auth.err = domain.ErrSuperseded
	vm := NewForm(f.deps, FormLogin, &domain.ProfileForm{Email: "a@b.com", Password: "x"})

	run(vm.Submit(), vm.Update)
	assert.Empty(t, vm.Err())
	assert.False(t, vm.Succeeded())
}

func TestUpdateFormPrefillsFromUser(t *testing.T) {
	f := newFixture(t, domain.LoggedIn{User: domain.CurrentUser{ID: "u1", Name: "Ada", Surname: "Lovelace", Email: "ada@x.com"}})
	vm := NewForm(f.deps, FormUpdateProfile, nil)

	assert.Equal(t, domain.ProfileForm{Name: "Ada", Surname: "Lovelace", Email: "ada@x.com"}, *vm.Form())

	assert.Nil(t, vm.Submit(), "password is still required")
	vm.Form().Password = "Abcd123!"
	run(vm.Submit(), vm.Update)
	assert.Equal(t, []string{"update:Ada"}, f.auth.calls)
}
