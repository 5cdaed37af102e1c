package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/mmcdole/marquee/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// LoginInput is the login form as checked before any request is sent
type LoginInput struct {
	Email    string `json:"email" validate:"required,emailaddr" errorMsg:"Enter a valid email address"`
	Password string `json:"password" validate:"required" errorMsg:"Enter your password"`
}

// ProfileInput is the register and update-profile form
type ProfileInput struct {
	Name     string `json:"name" validate:"required,personname" errorMsg:"Name must be at least 3 characters"`
	Surname  string `json:"surname" validate:"required,personname" errorMsg:"Surname must be at least 3 characters"`
	Email    string `json:"email" validate:"required,emailaddr" errorMsg:"Enter a valid email address"`
	Password string `json:"password" validate:"required,strongpassword" errorMsg:"Use 8+ characters with upper and lower case, a digit and a symbol"`
}

// Validator checks form input on the client. Failures never reach the server.
type Validator struct {
	validate *govalidator.Validate
}

// New creates a validator with the custom rules registered
func New() *Validator {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	mustRegister(v, "emailaddr", func(fl govalidator.FieldLevel) bool { return ValidEmail(fl.Field().String()) })
	mustRegister(v, "personname", func(fl govalidator.FieldLevel) bool { return ValidName(fl.Field().String()) })
	mustRegister(v, "strongpassword", func(fl govalidator.FieldLevel) bool { return ValidPassword(fl.Field().String()) })
	return &Validator{validate: v}
}

func mustRegister(v *govalidator.Validate, tag string, fn govalidator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// Login validates login credentials
func (v *Validator) Login(email, password string) error {
	return v.check(LoginInput{Email: email, Password: password})
}

// Profile validates a register or update-profile form
func (v *Validator) Profile(form domain.ProfileForm) error {
	return v.check(ProfileInput{
		Name:     form.Name,
		Surname:  form.Surname,
		Email:    form.Email,
		Password: form.Password,
	})
}

func (v *Validator) check(obj any) error {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}
	var errs govalidator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make(map[string]string, len(errs))
	t := reflect.TypeOf(obj)
	for _, e := range errs {
		name, msg := describe(t, e)
		fields[name] = msg
	}
	return &domain.ValidationError{Fields: fields}
}

// describe returns the json name and display message for a failed field
func describe(t reflect.Type, e govalidator.FieldError) (string, string) {
	name := strings.ToLower(e.StructField())
	field, ok := t.FieldByName(e.StructField())
	if !ok {
		return name, "This field is invalid"
	}
	if tag := field.Tag.Get("json"); tag != "" && tag != "-" {
		name = strings.Split(tag, ",")[0]
	}
	if e.Tag() == "required" {
		return name, "This field is required"
	}
	if msg := field.Tag.Get("errorMsg"); msg != "" {
		return name, msg
	}
	return name, "This field is invalid"
}

// ValidEmail reports whether s looks like an email address
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPassword requires at least 8 characters including an upper case
// letter, a lower case letter, a digit and a character that is none of those.
func ValidPassword(s string) bool {
	if utf8.RuneCountInString(s) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}

// ValidName accepts 3+ characters, or exactly 2 that differ ignoring case
func ValidName(s string) bool {
	runes := []rune(s)
	switch {
	case len(runes) >= 3:
		return true
	case len(runes) == 2:
		return unicode.ToLower(runes[0]) != unicode.ToLower(runes[1])
	default:
		return false
	}
}
