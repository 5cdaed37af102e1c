package domain

// SessionState is the authentication state of the app. Exactly one of
// LoggedOut, Loading, LoggedIn or SessionError is active at any time.
type SessionState interface {
	isSessionState()
	String() string
}

// LoggedOut means no user is authenticated
type LoggedOut struct{}

// Loading means an auth operation is in flight
type Loading struct{}

// LoggedIn carries the authenticated user's snapshot
type LoggedIn struct {
	User CurrentUser
}

// SessionError means the last auth operation failed
type SessionError struct {
	Message string
}

func (LoggedOut) isSessionState()    {}
func (Loading) isSessionState()      {}
func (LoggedIn) isSessionState()     {}
func (SessionError) isSessionState() {}

func (LoggedOut) String() string      { return "logged_out" }
func (Loading) String() string        { return "loading" }
func (s LoggedIn) String() string     { return "logged_in(" + s.User.ID + ")" }
func (s SessionError) String() string { return "error(" + s.Message + ")" }

// IsLoggedIn reports whether s is LoggedIn
func IsLoggedIn(s SessionState) bool {
	_, ok := s.(LoggedIn)
	return ok
}

// UserOf returns the user held by a LoggedIn state
func UserOf(s SessionState) (CurrentUser, bool) {
	if in, ok := s.(LoggedIn); ok {
		return in.User, true
	}
	return CurrentUser{}, false
}

// ErrorMessageOf returns the message held by a SessionError state
func ErrorMessageOf(s SessionState) (string, bool) {
	if e, ok := s.(SessionError); ok {
		return e.Message, true
	}
	return "", false
}
