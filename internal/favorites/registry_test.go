package favorites

import (
	"context"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/session"
	"github.com/mmcdole/marquee/internal/store"
)

type fakeRemote struct {
	liked   []int
	unliked []int
	err     error
}

func (f *fakeRemote) Like(ctx context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	f.liked = append(f.liked, id)
	return nil
}

func (f *fakeRemote) Unlike(ctx context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	f.unliked = append(f.unliked, id)
	return nil
}

type fakeRefresher struct{ calls int }

func (f *fakeRefresher) FetchCurrentUser(ctx context.Context) error {
	f.calls++
	return nil
}

func newRegistry(t *testing.T, state domain.SessionState) (*Registry, *session.Store, *store.Store, *fakeRemote, *fakeRefresher) {
	t.Helper()
	local, err := store.Open("")
	require.NoError(t, err)
	sess := session.NewStore(state, nil)
	remote := &fakeRemote{}
	refresher := &fakeRefresher{}
	return NewRegistry(sess, remote, refresher, local, nil), sess, local, remote, refresher
}

func TestModeFollowsSession(t *testing.T) {
	r, sess, _, _, _ := newRegistry(t, nil)
	assert.Equal(t, Anonymous, r.Mode())

	sess.Set(domain.LoggedIn{User: domain.CurrentUser{ID: "u1"}})
	assert.Equal(t, Authenticated, r.Mode())

	for _, state := range []domain.SessionState{domain.Loading{}, domain.SessionError{Message: "x"}, domain.LoggedOut{}} {
		sess.Set(state)
		assert.Equal(t, Anonymous, r.Mode(), state.String())
	}
}

func TestAuthenticatedMembershipUsesLikedMovies(t *testing.T) {
	r, _, local, _, _ := newRegistry(t, domain.LoggedIn{User: domain.CurrentUser{ID: "u1", LikedMovies: []int{3, 7}}})
	require.NoError(t, local.SaveLocalFavorites([]int{9}))

	assert.True(t, r.IsFavorite(7))
	assert.False(t, r.IsFavorite(9), "local list is not merged in")
	assert.Equal(t, []int{3, 7}, r.Favorites())
}

func TestAnonymousMembershipUsesLocalList(t *testing.T) {
	r, _, local, _, _ := newRegistry(t, domain.SessionError{Message: "login failed"})
	require.NoError(t, local.SaveLocalFavorites([]int{9}))

	assert.True(t, r.IsFavorite(9))
	assert.False(t, r.IsFavorite(3))
	assert.Equal(t, []int{9}, r.Favorites())
}

func TestToggleAppendsAndRemoves(t *testing.T) {
	r, _, local, _, _ := newRegistry(t, nil)

	now, err := r.Toggle(4)
	require.NoError(t, err)
	assert.True(t, now)
	now, err = r.Toggle(2)
	require.NoError(t, err)
	assert.True(t, now)
	assert.Equal(t, []int{4, 2}, local.LocalFavorites())

	now, err = r.Toggle(4)
	require.NoError(t, err)
	assert.False(t, now)
	assert.Equal(t, []int{2}, local.LocalFavorites())
}

func TestToggleRefusedWhenLoggedIn(t *testing.T) {
	r, _, local, _, _ := newRegistry(t, domain.LoggedIn{User: domain.CurrentUser{ID: "u1"}})

	_, err := r.Toggle(1)
	assert.ErrorIs(t, err, domain.ErrAuthenticatedMode)
	assert.Empty(t, local.LocalFavorites())
}

func TestLikeRefreshesUser(t *testing.T) {
	r, _, _, remote, refresher := newRegistry(t, domain.LoggedIn{User: domain.CurrentUser{ID: "u1"}})

	require.NoError(t, r.Like(context.Background(), 5))
	require.NoError(t, r.Unlike(context.Background(), 6))

	assert.Equal(t, []int{5}, remote.liked)
	assert.Equal(t, []int{6}, remote.unliked)
	assert.Equal(t, 2, refresher.calls)
}

func TestLikeFailureSkipsRefresh(t *testing.T) {
	r, _, _, remote, refresher := newRegistry(t, nil)
	remote.err = domain.ErrNoCredential

	err := r.Like(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNoCredential)
	assert.Equal(t, "like failed: please log in first", domain.Message(err))
	assert.Zero(t, refresher.calls)
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("toggling twice restores membership and reports opposite answers", prop.ForAll(
		func(initial []int, id int) bool {
			local, err := store.Open("")
			if err != nil {
				return false
			}
			if err := local.SaveLocalFavorites(initial); err != nil {
				return false
			}
			r := NewRegistry(session.NewStore(nil, nil), &fakeRemote{}, &fakeRefresher{}, local, nil)

			before := r.IsFavorite(id)
			first, err1 := r.Toggle(id)
			second, err2 := r.Toggle(id)

			return err1 == nil && err2 == nil &&
				first != second &&
				first == !before &&
				r.IsFavorite(id) == before &&
				slices.Contains(local.LocalFavorites(), id) == before
		},
		gen.SliceOf(gen.IntRange(0, 20)),
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}

func TestChangeClaimIsPerMovie(t *testing.T) {
	r, _, _, _, _ := newRegistry(t, domain.LoggedIn{User: domain.CurrentUser{ID: "u1"}})

	require.True(t, r.BeginChange(4))
	assert.False(t, r.BeginChange(4), "second claim while the first is open")
	assert.True(t, r.BeginChange(5), "other movies are independent")

	r.EndChange(4)
	assert.True(t, r.BeginChange(4))
}
