package navigation

import (
	"strconv"

	"github.com/mmcdole/marquee/internal/domain"
)

// PresentationMode is how a route's screen is shown
type PresentationMode int

const (
	// Push appends the screen to the stack
	Push PresentationMode = iota
	// PresentModal opens the screen as an overlay above the stack
	PresentModal
	// PresentFullScreen opens the screen as an overlay covering the stack
	PresentFullScreen
)

func (m PresentationMode) String() string {
	switch m {
	case PresentModal:
		return "modal"
	case PresentFullScreen:
		return "fullscreen"
	default:
		return "push"
	}
}

// IsOverlay reports whether the mode opens an overlay
func (m PresentationMode) IsOverlay() bool {
	return m == PresentModal || m == PresentFullScreen
}

// Route is a navigable destination: one of the route types below, possibly
// wrapped by WithPresentation.
type Route interface {
	Presentation() PresentationMode
	Accept(v Visitor)
	String() string
}

// Visitor has one method per route. Adding a route adds a method here, so
// any screen factory that misses it stops compiling.
type Visitor interface {
	VisitSplash(Splash)
	VisitTabBar(TabBar)
	VisitMovieDetail(MovieDetail)
	VisitLogin(Login)
	VisitRegister(Register)
	VisitProfile(Profile)
	VisitUpdateProfile(UpdateProfile)
}

// Splash is the launch screen
type Splash struct{}

// TabBar hosts the Home, Favorites and Profile tabs
type TabBar struct{}

// MovieDetail shows one movie
type MovieDetail struct {
	MovieID int
}

// Login is the sign-in form. Form may be shared with Register.
type Login struct {
	Form *domain.ProfileForm
}

// Register is the sign-up form. Form may be shared with Login.
type Register struct {
	Form *domain.ProfileForm
}

// Profile shows the signed-in user
type Profile struct{}

// UpdateProfile is the profile edit form
type UpdateProfile struct{}

func (Splash) Presentation() PresentationMode        { return Push }
func (TabBar) Presentation() PresentationMode        { return Push }
func (MovieDetail) Presentation() PresentationMode   { return Push }
func (Login) Presentation() PresentationMode         { return Push }
func (Register) Presentation() PresentationMode      { return Push }
func (Profile) Presentation() PresentationMode       { return Push }
func (UpdateProfile) Presentation() PresentationMode { return Push }

func (r Splash) Accept(v Visitor)        { v.VisitSplash(r) }
func (r TabBar) Accept(v Visitor)        { v.VisitTabBar(r) }
func (r MovieDetail) Accept(v Visitor)   { v.VisitMovieDetail(r) }
func (r Login) Accept(v Visitor)         { v.VisitLogin(r) }
func (r Register) Accept(v Visitor)      { v.VisitRegister(r) }
func (r Profile) Accept(v Visitor)       { v.VisitProfile(r) }
func (r UpdateProfile) Accept(v Visitor) { v.VisitUpdateProfile(r) }

func (Splash) String() string        { return "splash" }
func (TabBar) String() string        { return "tabbar" }
func (r MovieDetail) String() string { return "movie_detail(" + strconv.Itoa(r.MovieID) + ")" }
func (Login) String() string         { return "login" }
func (Register) String() string      { return "register" }
func (Profile) String() string       { return "profile" }
func (UpdateProfile) String() string { return "update_profile" }

// presented overrides a route's presentation mode
type presented struct {
	Route
	mode PresentationMode
}

func (p presented) Presentation() PresentationMode { return p.mode }

func (p presented) String() string { return p.Route.String() + "@" + p.mode.String() }

// WithPresentation returns r shown with mode instead of its default
func WithPresentation(r Route, mode PresentationMode) Route {
	if p, ok := r.(presented); ok {
		r = p.Route
	}
	return presented{Route: r, mode: mode}
}

// Builder turns every route into a screen of type S
type Builder[S any] interface {
	Splash(Splash) S
	TabBar(TabBar) S
	MovieDetail(MovieDetail) S
	Login(Login) S
	Register(Register) S
	Profile(Profile) S
	UpdateProfile(UpdateProfile) S
}

// Build resolves r with b. Total over every route.
func Build[S any](r Route, b Builder[S]) S {
	v := &buildVisitor[S]{b: b}
	r.Accept(v)
	return v.out
}

type buildVisitor[S any] struct {
	b   Builder[S]
	out S
}

func (v *buildVisitor[S]) VisitSplash(r Splash)               { v.out = v.b.Splash(r) }
func (v *buildVisitor[S]) VisitTabBar(r TabBar)               { v.out = v.b.TabBar(r) }
func (v *buildVisitor[S]) VisitMovieDetail(r MovieDetail)     { v.out = v.b.MovieDetail(r) }
func (v *buildVisitor[S]) VisitLogin(r Login)                 { v.out = v.b.Login(r) }
func (v *buildVisitor[S]) VisitRegister(r Register)           { v.out = v.b.Register(r) }
func (v *buildVisitor[S]) VisitProfile(r Profile)             { v.out = v.b.Profile(r) }
func (v *buildVisitor[S]) VisitUpdateProfile(r UpdateProfile) { v.out = v.b.UpdateProfile(r) }
