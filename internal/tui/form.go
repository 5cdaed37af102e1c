package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/navigation"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/viewmodel"
)

var (
	loginFields = []components.Field{
		{Key: "email", Label: "Email", Placeholder: "you@example.com"},
		{Key: "password", Label: "Password", Placeholder: "password", Secret: true},
	}
	profileFields = []components.Field{
		{Key: "name", Label: "Name", Placeholder: "first name"},
		{Key: "surname", Label: "Surname", Placeholder: "last name"},
		{Key: "email", Label: "Email", Placeholder: "you@example.com"},
		{Key: "password", Label: "Password", Placeholder: "8+ chars, Aa1!", Secret: true},
	}
)

// FormScreen is the login, register or update-profile form
type FormScreen struct {
	route navigation.Route
	vm    *viewmodel.FormVM
	form  *components.Form
}

func newFormScreen(deps viewmodel.Deps, route navigation.Route, kind viewmodel.FormKind, shared *domain.ProfileForm) *FormScreen {
	fields := profileFields
	if kind == viewmodel.FormLogin {
		fields = loginFields
	}
	s := &FormScreen{
		route: route,
		vm:    viewmodel.NewForm(deps, kind, shared),
		form:  components.NewForm(fields),
	}
	s.load()
	return s
}

func (s *FormScreen) Route() navigation.Route { return s.route }
func (s *FormScreen) Init() tea.Cmd           { return s.form.Focus() }
func (s *FormScreen) Close()                  { s.vm.Close() }
func (s *FormScreen) Capturing() bool         { return true }

func (s *FormScreen) Hints() []key.Binding {
	hints := []key.Binding{components.FormKeys.Submit, components.FormKeys.Next, Keys.Cancel}
	if s.vm.Kind() == viewmodel.FormLogin {
		hints = append(hints, Keys.SwitchToRegister)
	}
	return hints
}

func (s *FormScreen) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if done, ok := msg.(viewmodel.AuthDoneMsg); ok && done.Owner == s.vm {
			s.vm.Update(msg)
			return s.afterSubmit()
		}
		return s.form.Forward(msg)
	}

	switch {
	case key.Matches(keyMsg, Keys.Cancel):
		return CloseCmd(s)
	case s.vm.Kind() == viewmodel.FormLogin && key.Matches(keyMsg, Keys.SwitchToRegister):
		s.store()
		return NavigateCmd(navigation.Register{Form: s.vm.Form()})
	}

	if s.vm.Submitting() {
		return nil
	}

	cmd, submit := s.form.Update(keyMsg)
	s.store()
	if submit {
		return s.vm.Submit()
	}
	return cmd
}

// afterSubmit leaves the form once the operation succeeded
func (s *FormScreen) afterSubmit() tea.Cmd {
	if !s.vm.Succeeded() {
		return nil
	}
	switch s.vm.Kind() {
	case viewmodel.FormRegister:
		return tea.Batch(PopToFirstViewAfterRootCmd(), StatusCmd("Welcome! Your account is ready", false))
	case viewmodel.FormUpdateProfile:
		return tea.Batch(CloseCmd(s), StatusCmd("Profile updated", false))
	default:
		return tea.Batch(CloseCmd(s), StatusCmd("Logged in", false))
	}
}

// load copies the form model into the inputs
func (s *FormScreen) load() {
	f := s.vm.Form()
	s.form.SetValue("name", f.Name)
	s.form.SetValue("surname", f.Surname)
	s.form.SetValue("email", f.Email)
	s.form.SetValue("password", f.Password)
}

// store copies the inputs into the form model, which may be shared
func (s *FormScreen) store() {
	f := s.vm.Form()
	if s.vm.Kind() != viewmodel.FormLogin {
		f.Name = s.form.Value("name")
		f.Surname = s.form.Value("surname")
	}
	f.Email = s.form.Value("email")
	f.Password = s.form.Value("password")
}

func (s *FormScreen) title() string {
	switch s.vm.Kind() {
	case viewmodel.FormRegister:
		return "Create an account"
	case viewmodel.FormUpdateProfile:
		return "Update your profile"
	default:
		return "Log in"
	}
}

func (s *FormScreen) View(ctx RenderContext) string {
	s.form.SetWidth(min(ctx.Width-16, 40))

	lines := []string{
		styles.ModalTitleStyle.Render(s.title()),
		s.form.View(s.vm.FieldErrors()),
		"",
	}
	switch {
	case s.vm.Submitting():
		lines = append(lines, RenderSpinner(ctx.SpinnerFrame)+styles.DimStyle.Render(" Sending..."))
	case s.vm.Err() != "":
		lines = append(lines, styles.ErrorStyle.Render(styles.WordWrap(s.vm.Err(), max(ctx.Width-8, 20))))
	}

	return lipgloss.Place(ctx.Width, ctx.Height,
		lipgloss.Center, lipgloss.Center,
		strings.Join(lines, "\n"))
}
