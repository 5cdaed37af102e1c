package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmcdole/marquee/internal/domain"
)

// Movies fetches the full catalog
func (c *Client) Movies(ctx context.Context) ([]domain.Movie, error) {
	var dtos []MovieDTO
	if err := c.do(ctx, http.MethodGet, "/api/movies", nil, false, &dtos); err != nil {
		return nil, err
	}
	return MapMovies(dtos), nil
}

// Movie fetches one movie's detail record
func (c *Client) Movie(ctx context.Context, id int) (domain.Movie, error) {
	var dto MovieDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/movies/%d", id), nil, false, &dto); err != nil {
		return domain.Movie{}, err
	}
	return MapMovie(dto), nil
}

// Like adds a movie to the authenticated user's liked set
func (c *Client) Like(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/movies/like/%d", id), nil, true, nil)
}

// Unlike removes a movie from the authenticated user's liked set
func (c *Client) Unlike(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/movies/unlike/%d", id), nil, true, nil)
}
