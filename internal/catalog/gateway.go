package catalog

import (
	"context"
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
)

// Client is the read side of the movie backend
type Client interface {
	Movies(ctx context.Context) ([]domain.Movie, error)
	Movie(ctx context.Context, id int) (domain.Movie, error)
}

// Gateway is a read-through adapter over the movie endpoints. Every call
// returns a fresh snapshot; nothing is cached or retried.
type Gateway struct {
	client Client
	logger *slog.Logger
}

// NewGateway creates a catalog gateway
func NewGateway(client Client, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{client: client, logger: logger}
}

// FetchList returns the whole catalog
func (g *Gateway) FetchList(ctx context.Context) ([]domain.Movie, error) {
	movies, err := g.client.Movies(ctx)
	if err != nil {
		g.logger.Error("failed to fetch movies", "error", err)
		return nil, &domain.OpError{Op: "loading movies", Err: err}
	}
	g.logger.Debug("fetched movies", "count", len(movies))
	return movies, nil
}

// FetchDetail returns one movie
func (g *Gateway) FetchDetail(ctx context.Context, id int) (domain.Movie, error) {
	movie, err := g.client.Movie(ctx, id)
	if err != nil {
		g.logger.Error("failed to fetch movie", "movie_id", id, "error", err)
		return domain.Movie{}, &domain.OpError{Op: "loading movie", Err: err}
	}
	return movie, nil
}
