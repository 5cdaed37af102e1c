package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/navigation"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/viewmodel"
)

// ProfileScreen shows the session: sign-in choices, the user, or the
// failure that needs a retry. Used as the Profile tab and the Profile route.
type ProfileScreen struct {
	vm         *viewmodel.ProfileVM
	standalone bool // Pushed as a route rather than hosted by the tab bar

	// Shared by the Login and Register routes opened from here
	form *domain.ProfileForm

	confirmingLogout bool
}

func newProfileScreen(deps viewmodel.Deps, standalone bool) *ProfileScreen {
	return &ProfileScreen{
		vm:         viewmodel.NewProfile(deps),
		standalone: standalone,
		form:       &domain.ProfileForm{},
	}
}

func (s *ProfileScreen) Route() navigation.Route { return navigation.Profile{} }
func (s *ProfileScreen) Init() tea.Cmd           { return s.vm.Init() }
func (s *ProfileScreen) Close()                  { s.vm.Close() }
func (s *ProfileScreen) Capturing() bool         { return s.confirmingLogout }

func (s *ProfileScreen) Hints() []key.Binding {
	if s.confirmingLogout {
		return []key.Binding{Keys.Confirm, Keys.Deny}
	}

	var hints []key.Binding
	if s.standalone {
		hints = append(hints, Keys.Back)
	}
	switch s.vm.View() {
	case viewmodel.ProfileLoggedOut:
		hints = append(hints, Keys.Login, Keys.Register)
	case viewmodel.ProfileError:
		hints = append(hints, Keys.Refresh, Keys.Login)
	case viewmodel.ProfileLoggedIn:
		hints = append(hints, Keys.Edit, Keys.Logout)
	}
	return hints
}

func (s *ProfileScreen) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		cmd := s.vm.Update(msg)
		if s.vm.View() != viewmodel.ProfileLoggedIn {
			s.confirmingLogout = false
		}
		return cmd
	}

	if s.confirmingLogout {
		switch {
		case key.Matches(keyMsg, Keys.Confirm):
			s.confirmingLogout = false
			s.vm.Logout()
			return tea.Batch(StatusCmd("Logged out", false), PopToRootCmd())
		case key.Matches(keyMsg, Keys.Deny):
			s.confirmingLogout = false
		}
		return nil
	}

	if s.standalone && key.Matches(keyMsg, Keys.Back) {
		return CloseCmd(s)
	}

	switch s.vm.View() {
	case viewmodel.ProfileLoggedOut:
		switch {
		case key.Matches(keyMsg, Keys.Login):
			return NavigateCmd(navigation.Login{Form: s.form})
		case key.Matches(keyMsg, Keys.Register):
			return NavigateCmd(navigation.Register{Form: s.form})
		}

	case viewmodel.ProfileError:
		switch {
		case key.Matches(keyMsg, Keys.Refresh):
			return s.vm.Retry()
		case key.Matches(keyMsg, Keys.Login):
			return NavigateCmd(navigation.Login{Form: s.form})
		}

	case viewmodel.ProfileLoggedIn:
		switch {
		case key.Matches(keyMsg, Keys.Edit):
			return NavigateCmd(navigation.WithPresentation(navigation.UpdateProfile{}, navigation.PresentModal))
		case key.Matches(keyMsg, Keys.Logout):
			s.confirmingLogout = true
		}
	}
	return nil
}

func (s *ProfileScreen) View(ctx RenderContext) string {
	var body string
	switch s.vm.View() {
	case viewmodel.ProfileLoading:
		return renderLoading(ctx, "Loading profile...")

	case viewmodel.ProfileError:
		return renderFailure(ctx, s.vm.Err())

	case viewmodel.ProfileLoggedIn:
		if s.confirmingLogout {
			return s.renderLogoutConfirmation(ctx)
		}
		u := s.vm.User()
		body = strings.Join([]string{
			styles.ModalTitleStyle.Render("Your profile"),
			renderField("Name", u.DisplayName()),
			renderField("Email", u.DisplayEmail()),
			renderField("Liked", strconv.Itoa(u.LikedCount())),
		}, "\n")

	default:
		body = strings.Join([]string{
			styles.ModalTitleStyle.Render("You are not logged in"),
			styles.SubtitleStyle.Render("Log in to keep your favorites in your account."),
			styles.SubtitleStyle.Render("Favorites picked now stay on this device."),
			"",
			renderHint(Keys.Login.Help().Key, "log in") + "   " + renderHint(Keys.Register.Help().Key, "create an account"),
		}, "\n")
	}

	return lipgloss.Place(ctx.Width, ctx.Height, lipgloss.Center, lipgloss.Center, body)
}

func (s *ProfileScreen) renderLogoutConfirmation(ctx RenderContext) string {
	modal := strings.Join([]string{
		styles.ModalTitleStyle.Render("Log out?"),
		"Favorites you liked stay in your account.",
		"",
		renderHint("[Y]", "Yes") + "      " + renderHint("[N]", "No"),
	}, "\n")

	return lipgloss.Place(ctx.Width, ctx.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(modal))
}
