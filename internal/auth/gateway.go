package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/api"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/session"
)

// Backend is the subset of the API client the gateway needs
type Backend interface {
	Login(ctx context.Context, email, password string) (api.AuthResult, error)
	Register(ctx context.Context, req api.ProfileRequest) (api.AuthResult, error)
	UpdateProfile(ctx context.Context, req api.ProfileRequest) (api.AuthResult, error)
	Me(ctx context.Context) (domain.CurrentUser, error)
}

// Gateway performs the auth operations and is the only writer of the
// session store.
//
// Login, registration, profile update, resume and logout each start a new
// epoch. A network completion whose epoch is no longer current is discarded
// without touching the credential or the session, and the operation returns
// domain.ErrSuperseded. Logout therefore always wins over any request still
// in flight.
//
// Session observers must not call back into the Gateway.
type Gateway struct {
	backend Backend
	store   *session.Store
	creds   domain.CredentialStore
	logger  *slog.Logger

	mu    sync.Mutex // Serializes epoch checks with the writes they guard
	epoch uint64

	flagSub *session.Subscription
}

// InitialState is the state the session store should start in: Loading when
// a credential survived the last run (Resume will settle it), LoggedOut
// otherwise.
func InitialState(creds domain.CredentialStore) domain.SessionState {
	if _, ok := creds.Token(); ok {
		return domain.Loading{}
	}
	return domain.LoggedOut{}
}

// NewGateway wires a gateway to its store. Every transition of store is
// mirrored into flags.
func NewGateway(backend Backend, store *session.Store, creds domain.CredentialStore, flags domain.SessionFlagStore, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gateway{
		backend: backend,
		store:   store,
		creds:   creds,
		logger:  logger,
	}
	g.flagSub = store.Subscribe(session.ObserverFunc(func(state domain.SessionState) {
		if err := flags.SetLoggedIn(domain.IsLoggedIn(state)); err != nil {
			g.logger.Warn("failed to persist login flag", "error", err)
		}
	}))
	return g
}

// Close stops mirroring the login flag
func (g *Gateway) Close() {
	g.flagSub.Cancel()
}

// Resume restores a session persisted by a previous run. With a stored
// credential it moves to Loading (unless already there) and fetches the
// current user; without one it settles on LoggedOut.
func (g *Gateway) Resume(ctx context.Context) error {
	g.mu.Lock()
	g.epoch++
	epoch := g.epoch
	_, hasToken := g.creds.Token()
	current := g.store.Current()
	if !hasToken {
		if _, ok := current.(domain.LoggedOut); !ok {
			g.store.Set(domain.LoggedOut{})
		}
		g.mu.Unlock()
		return nil
	}
	if _, ok := current.(domain.Loading); !ok {
		g.store.Set(domain.Loading{})
	}
	g.mu.Unlock()

	g.logger.Info("resuming stored session")
	return g.fetch(ctx, epoch)
}

// Login authenticates with email and password
func (g *Gateway) Login(ctx context.Context, email, password string) error {
	epoch := g.begin()
	g.logger.Info("login started", "email", email)
	res, err := g.backend.Login(ctx, email, password)
	return g.finish(ctx, epoch, "login", res, err, true)
}

// Register creates an account and signs in with it
func (g *Gateway) Register(ctx context.Context, form domain.ProfileForm) error {
	epoch := g.begin()
	g.logger.Info("registration started", "email", form.Email)
	res, err := g.backend.Register(ctx, profileRequest(form))
	return g.finish(ctx, epoch, "registration", res, err, true)
}

// UpdateProfile changes the signed-in user's details. When the response
// carries no new token the stored one is kept.
func (g *Gateway) UpdateProfile(ctx context.Context, form domain.ProfileForm) error {
	epoch := g.begin()
	g.logger.Info("profile update started")
	res, err := g.backend.UpdateProfile(ctx, profileRequest(form))
	return g.finish(ctx, epoch, "profile update", res, err, false)
}

// FetchCurrentUser refreshes the user snapshot held by the session store.
// It does not pass through Loading, so screens keep their content while the
// refresh is in flight. A refresh joins the current epoch rather than
// starting one: it never supersedes a pending login, registration or
// update, and is itself dropped when one of those or a logout starts.
func (g *Gateway) FetchCurrentUser(ctx context.Context) error {
	g.mu.Lock()
	epoch := g.epoch
	g.mu.Unlock()

	return g.fetch(ctx, epoch)
}

// Logout forgets the credential and moves to LoggedOut. No network call is
// made and any in-flight operation is superseded.
func (g *Gateway) Logout() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.epoch++
	err := g.creds.ClearToken()
	if err != nil {
		g.logger.Error("failed to clear credential", "error", err)
	}
	g.store.Set(domain.LoggedOut{})
	g.logger.Info("logged out")
	return err
}

// begin starts a new epoch and moves to Loading
func (g *Gateway) begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.epoch++
	g.store.Set(domain.Loading{})
	return g.epoch
}

// finish settles a login, registration or profile update
func (g *Gateway) finish(ctx context.Context, epoch uint64, op string, res api.AuthResult, err error, requireToken bool) error {
	if err == nil && res.Token == "" && requireToken {
		err = &domain.DecodeError{Err: errors.New("response carried no token")}
	}

	g.mu.Lock()
	if g.epoch != epoch {
		g.mu.Unlock()
		g.logger.Debug("discarding superseded result", "op", op)
		return domain.ErrSuperseded
	}

	if err != nil {
		opErr := &domain.OpError{Op: op, Err: err}
		if clearErr := g.creds.ClearToken(); clearErr != nil {
			g.logger.Error("failed to clear credential", "error", clearErr)
		}
		g.store.Set(domain.SessionError{Message: domain.Message(opErr)})
		g.mu.Unlock()
		g.logger.Error(op+" failed", "error", err)
		return opErr
	}

	if res.Token != "" {
		if saveErr := g.creds.SaveToken(res.Token); saveErr != nil {
			opErr := &domain.OpError{Op: op, Err: saveErr}
			g.store.Set(domain.SessionError{Message: domain.Message(opErr)})
			g.mu.Unlock()
			g.logger.Error("failed to persist credential", "error", saveErr)
			return opErr
		}
	}
	g.mu.Unlock()

	g.logger.Info(op+" succeeded", "token_len", len(res.Token))

	// The operation already succeeded; a failed follow-up surfaces only
	// through the session store.
	if fetchErr := g.fetch(ctx, epoch); fetchErr != nil {
		g.logger.Warn("follow-up user fetch failed", "op", op, "error", fetchErr)
	}
	return nil
}

// fetch loads the current user on behalf of epoch
func (g *Gateway) fetch(ctx context.Context, epoch uint64) error {
	if _, ok := g.creds.Token(); !ok {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.epoch != epoch {
			return domain.ErrSuperseded
		}
		g.store.Set(domain.LoggedOut{})
		return nil
	}

	user, err := g.backend.Me(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.epoch != epoch {
		g.logger.Debug("discarding superseded user fetch")
		return domain.ErrSuperseded
	}

	switch {
	case err == nil:
		g.store.Set(domain.LoggedIn{User: user})
		g.logger.Debug("current user loaded", "user_id", user.ID, "liked", len(user.LikedMovies))
		return nil
	case errors.Is(err, domain.ErrUnauthorized):
		if clearErr := g.creds.ClearToken(); clearErr != nil {
			g.logger.Error("failed to clear credential", "error", clearErr)
		}
		g.store.Set(domain.LoggedOut{})
		g.logger.Info("stored credential rejected")
		return &domain.OpError{Op: "user fetch", Err: err}
	default:
		opErr := &domain.OpError{Op: "user fetch", Err: err}
		g.store.Set(domain.SessionError{Message: domain.Message(opErr)})
		g.logger.Error("user fetch failed", "error", err)
		return opErr
	}
}

func profileRequest(form domain.ProfileForm) api.ProfileRequest {
	return api.ProfileRequest{
		Name:     form.Name,
		Surname:  form.Surname,
		Email:    form.Email,
		Password: form.Password,
	}
}
