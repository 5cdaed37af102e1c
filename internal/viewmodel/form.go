package viewmodel

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
)

// FormKind selects which auth operation a form submits
type FormKind int

const (
	FormLogin FormKind = iota
	FormRegister
	FormUpdateProfile
)

func (k FormKind) op() AuthOp {
	switch k {
	case FormRegister:
		return OpRegister
	case FormUpdateProfile:
		return OpUpdateProfile
	default:
		return OpLogin
	}
}

// FormVM backs the login, register and update-profile forms
type FormVM struct {
	deps Deps
	kind FormKind
	form *domain.ProfileForm

	submitting  bool
	fieldErrors map[string]string
	errMsg      string
	succeeded   bool
	closed      bool
}

// NewForm creates a form adapter. A nil form starts empty; login and
// register may share one. The update form is prefilled from the
// signed-in user.
func NewForm(deps Deps, kind FormKind, form *domain.ProfileForm) *FormVM {
	if form == nil {
		form = &domain.ProfileForm{}
	}
	if kind == FormUpdateProfile {
		if user, ok := domain.UserOf(deps.Session.Current()); ok && *form == (domain.ProfileForm{}) {
			form.Name = user.Name
			form.Surname = user.Surname
			form.Email = user.Email
		}
	}
	return &FormVM{deps: deps, kind: kind, form: form}
}

// Submit validates the form and, when valid, starts the auth operation.
// Invalid forms are never sent.
func (vm *FormVM) Submit() tea.Cmd {
	if vm.submitting || vm.closed {
		return nil
	}

	vm.errMsg = ""
	vm.fieldErrors = nil
	form := *vm.form

	var err error
	if vm.kind == FormLogin {
		err = vm.deps.Validator.Login(form.Email, form.Password)
	} else {
		err = vm.deps.Validator.Profile(form)
	}
	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		vm.fieldErrors = invalid.Fields
		return nil
	}
	if err != nil {
		vm.errMsg = domain.Message(err)
		return nil
	}

	vm.submitting = true
	deps, kind := vm.deps, vm.kind
	return func() tea.Msg {
		ctx, cancel := deps.context()
		defer cancel()

		var err error
		switch kind {
		case FormRegister:
			err = deps.Auth.Register(ctx, form)
		case FormUpdateProfile:
			err = deps.Auth.UpdateProfile(ctx, form)
		default:
			err = deps.Auth.Login(ctx, form.Email, form.Password)
		}
		return AuthDoneMsg{Owner: vm, Op: kind.op(), Err: err}
	}
}

// Update applies a message
func (vm *FormVM) Update(msg tea.Msg) tea.Cmd {
	done, ok := msg.(AuthDoneMsg)
	if !ok || done.Owner != vm || vm.closed {
		return nil
	}

	vm.submitting = false
	switch {
	case done.Err == nil:
		vm.succeeded = true
		vm.form.Clear()
	case errors.Is(done.Err, domain.ErrSuperseded):
		// A newer session operation took over; nothing to report
	default:
		vm.errMsg = domain.Message(done.Err)
	}
	return nil
}

func (vm *FormVM) Kind() FormKind                 { return vm.kind }
func (vm *FormVM) Form() *domain.ProfileForm      { return vm.form }
func (vm *FormVM) Submitting() bool               { return vm.submitting }
func (vm *FormVM) FieldErrors() map[string]string { return vm.fieldErrors }
func (vm *FormVM) Err() string                    { return vm.errMsg }
func (vm *FormVM) Succeeded() bool                { return vm.succeeded }

// Close marks the form gone; a completion arriving later is dropped
func (vm *FormVM) Close() {
	vm.closed = true
}
