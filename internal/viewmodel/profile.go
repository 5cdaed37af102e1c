package viewmodel

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
)

// ProfileView is what the Profile tab shows, derived from the session
type ProfileView int

const (
	ProfileLoggedOut ProfileView = iota
	ProfileLoading
	ProfileLoggedIn
	ProfileError
)

// ProfileVM backs the Profile tab
type ProfileVM struct {
	deps  Deps
	watch sessionWatch

	view   ProfileView
	user   domain.CurrentUser
	errMsg string
	closed bool
}

// NewProfile creates the Profile tab adapter
func NewProfile(deps Deps) *ProfileVM {
	vm := &ProfileVM{deps: deps}
	vm.watch = watchSession(deps.Session, vm)
	vm.apply(deps.Session.Current())
	return vm
}

// Init starts the session watch
func (vm *ProfileVM) Init() tea.Cmd {
	return vm.watch.next()
}

// Update applies a message and returns any follow-up command
func (vm *ProfileVM) Update(msg tea.Msg) tea.Cmd {
	if vm.closed {
		return nil
	}
	switch msg := msg.(type) {
	case SessionChangedMsg:
		if msg.Owner != vm {
			return nil
		}
		vm.apply(msg.State)
		return vm.watch.next()

	case AuthDoneMsg:
		// The outcome reaches the screen through the session; only log here
		if msg.Owner == vm && msg.Err != nil && !errors.Is(msg.Err, domain.ErrSuperseded) {
			vm.deps.logger().Debug("profile retry failed", "error", msg.Err)
		}
	}
	return nil
}

func (vm *ProfileVM) apply(state domain.SessionState) {
	vm.errMsg = ""
	switch s := state.(type) {
	case domain.LoggedIn:
		vm.view = ProfileLoggedIn
		vm.user = s.User
	case domain.Loading:
		vm.view = ProfileLoading
	case domain.SessionError:
		vm.view = ProfileError
		vm.errMsg = s.Message
	default:
		vm.view = ProfileLoggedOut
		vm.user = domain.CurrentUser{}
	}
}

// Retry re-fetches the current user after an error
func (vm *ProfileVM) Retry() tea.Cmd {
	deps := vm.deps
	return func() tea.Msg {
		ctx, cancel := deps.context()
		defer cancel()

		err := deps.Auth.FetchCurrentUser(ctx)
		return AuthDoneMsg{Owner: vm, Op: OpFetchUser, Err: err}
	}
}

// Logout signs out immediately; the session change re-derives the view
func (vm *ProfileVM) Logout() {
	if err := vm.deps.Auth.Logout(); err != nil {
		vm.deps.logger().Error("logout failed to clear credential", "error", err)
	}
}

func (vm *ProfileVM) View() ProfileView        { return vm.view }
func (vm *ProfileVM) User() domain.CurrentUser { return vm.user }
func (vm *ProfileVM) Err() string              { return vm.errMsg }

// Close releases the session subscription
func (vm *ProfileVM) Close() {
	vm.closed = true
	vm.watch.close()
}
