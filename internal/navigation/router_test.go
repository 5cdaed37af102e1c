package navigation

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

type fakeScreen struct {
	route  Route
	closed int
}

func (s *fakeScreen) Route() Route { return s.route }
func (s *fakeScreen) Close()       { s.closed++ }

// fakeBuilder records the routes it was asked to build
type fakeBuilder struct {
	built []*fakeScreen
}

func (b *fakeBuilder) make(r Route) *fakeScreen {
	s := &fakeScreen{route: r}
	b.built = append(b.built, s)
	return s
}

func (b *fakeBuilder) Splash(r Splash) *fakeScreen               { return b.make(r) }
func (b *fakeBuilder) TabBar(r TabBar) *fakeScreen               { return b.make(r) }
func (b *fakeBuilder) MovieDetail(r MovieDetail) *fakeScreen     { return b.make(r) }
func (b *fakeBuilder) Login(r Login) *fakeScreen                 { return b.make(r) }
func (b *fakeBuilder) Register(r Register) *fakeScreen           { return b.make(r) }
func (b *fakeBuilder) Profile(r Profile) *fakeScreen             { return b.make(r) }
func (b *fakeBuilder) UpdateProfile(r UpdateProfile) *fakeScreen { return b.make(r) }

func routesOf(screens []*fakeScreen) []string {
	out := make([]string, len(screens))
	for i, s := range screens {
		out[i] = s.route.String()
	}
	return out
}

func newRouter() (*Router[*fakeScreen], *fakeBuilder) {
	b := &fakeBuilder{}
	return NewRouter[*fakeScreen](b, nil), b
}

func TestStartShowsSplash(t *testing.T) {
	r, _ := newRouter()
	r.Start()
	r.Show(TabBar{})

	r.Start()
	assert.Equal(t, []string{"splash"}, routesOf(r.Stack()))
}

func TestStartClosesPreviousScreens(t *testing.T) {
	r, b := newRouter()
	r.Start()
	r.Show(TabBar{})
	r.Show(WithPresentation(UpdateProfile{}, PresentModal))

	r.Start()
	for _, s := range b.built[:3] {
		assert.Equal(t, 1, s.closed, s.route.String())
	}
	_, hasOverlay := r.Overlay()
	assert.False(t, hasOverlay)
}

func TestBuildCoversEveryRoute(t *testing.T) {
	b := &fakeBuilder{}
	form := &domain.ProfileForm{Email: "a@b.com"}
	routes := []Route{Splash{}, TabBar{}, MovieDetail{MovieID: 3}, Login{Form: form}, Register{Form: form}, Profile{}, UpdateProfile{}}

	for _, route := range routes {
		s := Build[*fakeScreen](route, b)
		assert.Equal(t, route, s.route)
	}
	assert.Len(t, b.built, len(routes))
}

func TestPopNoopAtRoot(t *testing.T) {
	r, b := newRouter()
	r.Pop()
	assert.Zero(t, r.Depth())

	r.Start()
	r.Pop()
	assert.Equal(t, 1, r.Depth())
	assert.Zero(t, b.built[0].closed)
}

func TestPopClosesScreen(t *testing.T) {
	r, _ := newRouter()
	r.Start()
	detail := r.Show(MovieDetail{MovieID: 1})

	r.Pop()
	assert.Equal(t, 1, detail.closed)
	assert.Equal(t, []string{"splash"}, routesOf(r.Stack()))
}

func TestPopToFirstViewAfterRoot(t *testing.T) {
	r, _ := newRouter()
	r.Start()
	r.PopToFirstViewAfterRoot()
	assert.Equal(t, 1, r.Depth())

	r.Show(TabBar{})
	r.Show(Profile{})
	r.Show(Register{})
	r.PopToFirstViewAfterRoot()
	assert.Equal(t, []string{"splash", "tabbar"}, routesOf(r.Stack()))
}

func TestOverlayLifecycle(t *testing.T) {
	r, _ := newRouter()
	r.Start()
	r.Show(TabBar{})

	first := r.Show(WithPresentation(UpdateProfile{}, PresentModal))
	visible, ok := r.Visible()
	require.True(t, ok)
	assert.Same(t, first, visible)
	assert.Equal(t, 2, r.Depth(), "overlays do not touch the stack")

	second := r.Show(WithPresentation(Login{}, PresentFullScreen))
	assert.Equal(t, 1, first.closed, "a new overlay replaces the old one")
	overlay, _ := r.Overlay()
	assert.Same(t, second, overlay)

	r.Show(MovieDetail{MovieID: 5})
	visible, _ = r.Visible()
	assert.Same(t, second, visible, "pushes land beneath the overlay")
	assert.Len(t, r.Screens(), 4)

	r.Dismiss()
	assert.Equal(t, 1, second.closed)
	visible, _ = r.Visible()
	assert.Equal(t, "movie_detail(5)", visible.route.String())

	r.Dismiss()
	assert.Equal(t, 1, second.closed)
}

func TestWithPresentationDoesNotStack(t *testing.T) {
	route := WithPresentation(WithPresentation(Profile{}, PresentModal), PresentFullScreen)
	assert.Equal(t, PresentFullScreen, route.Presentation())
	assert.Equal(t, "profile@fullscreen", route.String())
	assert.Equal(t, Push, Profile{}.Presentation())
}

func TestPushPopIsInverseAndPopToRootLeavesOne(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("n pushes then n pops restores the stack", prop.ForAll(
		func(prefix []int, pushes []int) bool {
			r, _ := newRouter()
			r.Start()
			for _, id := range prefix {
				r.Show(MovieDetail{MovieID: id})
			}
			before := r.Stack()

			for _, id := range pushes {
				r.Show(MovieDetail{MovieID: id})
			}
			for range pushes {
				r.Pop()
			}

			after := r.Stack()
			if len(before) != len(after) {
				return false
			}
			for i := range before {
				if before[i] != after[i] || after[i].closed != 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(1, 100)),
		gen.SliceOf(gen.IntRange(1, 100)),
	))

	properties.Property("popToRoot always leaves exactly one entry", prop.ForAll(
		func(pushes []int) bool {
			r, _ := newRouter()
			r.Start()
			root, _ := r.Top()
			for _, id := range pushes {
				r.Show(MovieDetail{MovieID: id})
			}
			r.PopToRoot()
			top, _ := r.Top()
			return r.Depth() == 1 && top == root
		},
		gen.SliceOf(gen.IntRange(1, 100)),
	))

	properties.TestingRun(t)
}
