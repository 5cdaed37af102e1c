package api

import (
	"context"
	"net/http"

	"github.com/mmcdole/marquee/internal/domain"
)

// AuthResult is a decoded auth response
type AuthResult struct {
	Message string
	Token   string // Empty when the response carried none
	User    domain.User
}

// Register creates an account
func (c *Client) Register(ctx context.Context, req ProfileRequest) (AuthResult, error) {
	return c.authCall(ctx, http.MethodPost, "/api/auth/register", req, false)
}

// Login exchanges credentials for a token
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	return c.authCall(ctx, http.MethodPost, "/api/auth/login", LoginRequest{Email: email, Password: password}, false)
}

// UpdateProfile changes the authenticated user's details
func (c *Client) UpdateProfile(ctx context.Context, req ProfileRequest) (AuthResult, error) {
	return c.authCall(ctx, http.MethodPut, "/api/users/profile", req, true)
}

// Me fetches the authenticated user's record
func (c *Client) Me(ctx context.Context) (domain.CurrentUser, error) {
	var dto CurrentUserDTO
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, true, &dto); err != nil {
		return domain.CurrentUser{}, err
	}
	return MapCurrentUser(dto), nil
}

func (c *Client) authCall(ctx context.Context, method, path string, body any, authed bool) (AuthResult, error) {
	var resp AuthResponse
	if err := c.do(ctx, method, path, body, authed, &resp); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		Message: orDefault(resp.Message, ""),
		Token:   orDefault(resp.Token, ""),
		User:    MapUser(resp.User),
	}, nil
}
