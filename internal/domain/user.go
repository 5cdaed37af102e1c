package domain

import "slices"

// Display fallbacks for user records
const (
	FallbackName    = "Unknown"
	FallbackSurname = "User"
	FallbackEmail   = "Email not found"
)

// User is the identity returned inside auth responses
type User struct {
	ID      string
	Name    string
	Surname string
	Email   string
}

// CurrentUser is the record returned by the current-user endpoint.
// Instances are immutable snapshots replaced wholesale on each fetch.
type CurrentUser struct {
	ID          string
	Name        string
	Surname     string
	Email       string
	LikedMovies []int // Never nil-significant: absent is treated as empty

	// Server bookkeeping, not used for behavior
	CreatedAt string
	UpdatedAt string
	Version   int
}

// Likes reports whether movieID is in the user's liked set
func (u CurrentUser) Likes(movieID int) bool {
	return slices.Contains(u.LikedMovies, movieID)
}

// DisplayName returns "Name Surname" with fallbacks for missing parts
func (u CurrentUser) DisplayName() string {
	name, surname := u.Name, u.Surname
	if name == "" {
		name = FallbackName
	}
	if surname == "" {
		surname = FallbackSurname
	}
	return name + " " + surname
}

// DisplayEmail returns the email or its fallback
func (u CurrentUser) DisplayEmail() string {
	if u.Email == "" {
		return FallbackEmail
	}
	return u.Email
}

// LikedCount returns the number of liked movies
func (u CurrentUser) LikedCount() int {
	return len(u.LikedMovies)
}

// ProfileForm holds the values typed into the login, register and
// update-profile forms. Login and Register routes share one instance so
// switching between them keeps what the user already typed.
type ProfileForm struct {
	Name     string
	Surname  string
	Email    string
	Password string
}

// Clear resets every field
func (f *ProfileForm) Clear() {
	*f = ProfileForm{}
}
