package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

type staticTokens string

func (s staticTokens) Token() (string, bool) {
	return string(s), s != ""
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", staticTokens(token), Options{}, nil), srv
}

func TestLoginSendsCredentialsWithoutAuthHeader(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, err := uuid.Parse(r.Header.Get(headerRequestID))
		assert.NoError(t, err)

		var body LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, LoginRequest{Email: "a@b.com", Password: "Abcd123!"}, body)

		w.Write([]byte(`{"message":"ok","token":"tok-1","user":{"id":"u1","name":"Ada"}}`))
	}, "stored")

	res, err := client.Login(context.Background(), "a@b.com", "Abcd123!")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)
	assert.Equal(t, "ok", res.Message)
	assert.Equal(t, domain.User{ID: "u1", Name: "Ada"}, res.User)
}

func TestRegisterPostsProfile(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"name": "Ada", "surname": "Lovelace", "email": "a@b.com", "password": "Abcd123!"}, body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"token":"tok-2"}`))
	}, "")

	res, err := client.Register(context.Background(), ProfileRequest{Name: "Ada", Surname: "Lovelace", Email: "a@b.com", Password: "Abcd123!"})
	require.NoError(t, err)
	assert.Equal(t, "tok-2", res.Token)
}

func TestMeUsesBearerAndMapsUser(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"_id":"u1","name":"Ada","likedMovies":[7,3,7],"__v":2}`))
	}, "tok")

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, []int{3, 7}, user.LikedMovies)
	assert.Equal(t, 2, user.Version)
}

func TestAuthedCallWithoutTokenSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}, "")

	_, err := client.Me(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoCredential)
	assert.ErrorIs(t, client.Like(context.Background(), 1), domain.ErrNoCredential)
	assert.ErrorIs(t, client.Unlike(context.Background(), 1), domain.ErrNoCredential)
	_, err = client.UpdateProfile(context.Background(), ProfileRequest{})
	assert.ErrorIs(t, err, domain.ErrNoCredential)
	assert.Zero(t, hits.Load())
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}, "")

	_, err := client.Login(context.Background(), "a@b.com", "x")
	var status *domain.StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusUnauthorized, status.Code)
	assert.Equal(t, "invalid credentials", status.Message)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestStatusErrorWithoutBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "")

	_, err := client.Movies(context.Background())
	var status *domain.StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, 500, status.Code)
	assert.Empty(t, status.Message)
	assert.False(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestMalformedBodyIsDecodeError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "not-a-number"}`))
	}, "")

	_, err := client.Movie(context.Background(), 1)
	var decode *domain.DecodeError
	assert.ErrorAs(t, err, &decode)
}

func TestEmptyBodyIsDecodeError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, "")

	_, err := client.Movies(context.Background())
	var decode *domain.DecodeError
	assert.ErrorAs(t, err, &decode)
}

func TestUnreachableServerIsTransportError(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, "")
	srv.Close()

	_, err := client.Movies(context.Background())
	var transport *domain.TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestLikeAndUnlikePaths(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
		paths = append(paths, r.URL.Path)
	}, "tok")

	require.NoError(t, client.Like(context.Background(), 7))
	require.NoError(t, client.Unlike(context.Background(), 7))
	assert.Equal(t, []string{"/api/movies/like/7", "/api/movies/unlike/7"}, paths)
}

func TestMoviesDecodesArray(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/movies", r.URL.Path)
		w.Write([]byte(`[{"id":1,"title":"Heat","poster_url":"http://x/p.jpg","rating":8.3},{"id":2}]`))
	}, "")

	movies, err := client.Movies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Heat", movies[0].Title)
	assert.Equal(t, "http://x/p.jpg", movies[0].PosterURL)
	assert.Equal(t, domain.FallbackTitle, movies[1].Title)
}

func TestCancelledContextIsTransportError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Movies(ctx)
	var transport *domain.TransportError
	assert.ErrorAs(t, err, &transport)
}
