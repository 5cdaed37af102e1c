package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"first.last+tag@sub.example.org", true},
		{"x.x@co", false},
		{"no-at-sign.com", false},
		{"a@b.c", false},
		{"a b@c.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.email))
		})
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Abcd123!", true},
		{"Abc123!", false},  // too short
		{"abcd123!", false}, // no upper
		{"ABCD123!", false}, // no lower
		{"Abcdefg!", false}, // no digit
		{"Abcd1234", false}, // no special
		{"Abcd 1234", true}, // space counts as special
		{"Äbcd123!X", true},
		{"Äbcd123!x", false}, // only A-Z counts as upper case
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPassword(tt.password))
		})
	}
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Ali"))
	assert.True(t, ValidName("Su"))
	assert.False(t, ValidName("Aa"))
	assert.False(t, ValidName("A"))
	assert.False(t, ValidName(""))
	assert.True(t, ValidName("Öz"))
}

func TestLogin(t *testing.T) {
	v := New()
	assert.NoError(t, v.Login("a@b.com", "x"))

	err := v.Login("bad", "")
	var invalid *domain.ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, map[string]string{
		"email":    "Enter a valid email address",
		"password": "This field is required",
	}, invalid.Fields)
}

func TestProfile(t *testing.T) {
	v := New()
	assert.NoError(t, v.Profile(domain.ProfileForm{Name: "Ada", Surname: "Lo", Email: "a@b.com", Password: "Abcd123!"}))

	err := v.Profile(domain.ProfileForm{Name: "Aa", Surname: "", Email: "a@b.com", Password: "weak"})
	var invalid *domain.ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Name must be at least 3 characters", invalid.Fields["name"])
	assert.Equal(t, "This field is required", invalid.Fields["surname"])
	assert.Contains(t, invalid.Fields["password"], "8+ characters")
	assert.NotContains(t, invalid.Fields, "email")
	assert.Contains(t, domain.Message(err), "invalid input: name:")
}
