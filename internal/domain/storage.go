package domain

// CredentialStore persists the bearer token presented on authenticated requests.
type CredentialStore interface {
	Token() (string, bool)
	SaveToken(token string) error
	ClearToken() error
}

// SessionFlagStore persists the "is logged in" mirror of the session state,
// for screens that need a synchronous answer before subscribing.
type SessionFlagStore interface {
	LoggedIn() bool
	SetLoggedIn(loggedIn bool) error
}

// TabStore persists the selected tab index
type TabStore interface {
	SelectedTab() int
	SetSelectedTab(index int) error
}

// FavoriteStore persists the ordered list of locally favorited movie IDs
// used while no user is authenticated.
type FavoriteStore interface {
	LocalFavorites() []int
	SaveLocalFavorites(ids []int) error
}

// Store is everything the app keeps on disk
type Store interface {
	CredentialStore
	SessionFlagStore
	TabStore
	FavoriteStore
	Close() error
}
