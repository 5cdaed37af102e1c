package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/navigation"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// SplashScreen is shown at launch until the delay elapses
type SplashScreen struct {
	delay time.Duration
}

func newSplashScreen(delay time.Duration) *SplashScreen {
	return &SplashScreen{delay: delay}
}

func (s *SplashScreen) Route() navigation.Route { return navigation.Splash{} }
func (s *SplashScreen) Close()                  {}
func (s *SplashScreen) Capturing() bool         { return false }
func (s *SplashScreen) Hints() []key.Binding    { return nil }

// Init schedules the end of the splash
func (s *SplashScreen) Init() tea.Cmd {
	return SplashCmd(s.delay)
}

func (s *SplashScreen) Update(tea.Msg) tea.Cmd { return nil }

func (s *SplashScreen) View(ctx RenderContext) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.LogoStyle.Render("M A R Q U E E"),
		"",
		RenderSpinner(ctx.SpinnerFrame),
	)
	return lipgloss.Place(ctx.Width, ctx.Height, lipgloss.Center, lipgloss.Center, body)
}
