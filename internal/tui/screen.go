package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/navigation"
	"github.com/mmcdole/marquee/internal/viewmodel"
)

// RenderContext is what a screen needs to draw itself
type RenderContext struct {
	Width        int
	Height       int
	SpinnerFrame int
}

// Screen is a routable view. Key messages reach only the visible screen;
// every other message is broadcast to all live screens, which drop what
// is not theirs.
type Screen interface {
	navigation.Screen
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(ctx RenderContext) string

	// Capturing reports whether key presses are being typed as text, so
	// global shortcuts must not fire
	Capturing() bool

	// Hints are the bindings shown in the footer
	Hints() []key.Binding
}

// screenBuilder resolves every route to a screen
type screenBuilder struct {
	deps   viewmodel.Deps
	tabs   domain.TabStore
	splash time.Duration
}

var _ navigation.Builder[Screen] = (*screenBuilder)(nil)

func (b *screenBuilder) Splash(navigation.Splash) Screen {
	return newSplashScreen(b.splash)
}

func (b *screenBuilder) TabBar(navigation.TabBar) Screen {
	return newTabBarScreen(b.deps, b.tabs)
}

func (b *screenBuilder) MovieDetail(r navigation.MovieDetail) Screen {
	return newDetailScreen(b.deps, r)
}

func (b *screenBuilder) Login(r navigation.Login) Screen {
	return newFormScreen(b.deps, r, viewmodel.FormLogin, r.Form)
}

func (b *screenBuilder) Register(r navigation.Register) Screen {
	return newFormScreen(b.deps, r, viewmodel.FormRegister, r.Form)
}

func (b *screenBuilder) Profile(r navigation.Profile) Screen {
	return newProfileScreen(b.deps, true)
}

func (b *screenBuilder) UpdateProfile(r navigation.UpdateProfile) Screen {
	return newFormScreen(b.deps, r, viewmodel.FormUpdateProfile, nil)
}
