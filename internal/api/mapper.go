package api

import (
	"sort"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// MapMovies converts movie records to normalized domain movies
func MapMovies(dtos []MovieDTO) []domain.Movie {
	movies := make([]domain.Movie, 0, len(dtos))
	for _, d := range dtos {
		movies = append(movies, MapMovie(d))
	}
	return movies
}

// MapMovie is the single place where absent movie fields get their display
// fallbacks. Nothing downstream checks for missing values again.
func MapMovie(d MovieDTO) domain.Movie {
	m := domain.Movie{
		Title:       orDefault(d.Title, domain.FallbackTitle),
		Category:    orDefault(d.Category, domain.FallbackCategory),
		Description: orDefault(d.Description, domain.FallbackDescription),
		PosterURL:   orDefault(d.PosterURL, ""),
		Actors:      cleanActors(d.Actors),
	}

	if d.ID != nil {
		m.ID = *d.ID
		m.HasID = true
	}
	if d.Year != nil && *d.Year > 0 {
		m.Year = *d.Year
	}
	if d.Rating != nil {
		m.Rating = *d.Rating
		m.HasRating = m.Rating > 0 && m.Rating <= 10
	}

	return m
}

// MapUser converts the identity embedded in an auth response
func MapUser(d *UserDTO) domain.User {
	if d == nil {
		return domain.User{}
	}
	return domain.User{
		ID:      firstNonEmpty(d.ID, d.MongoID),
		Name:    orDefault(d.Name, ""),
		Surname: orDefault(d.Surname, ""),
		Email:   orDefault(d.Email, ""),
	}
}

// MapCurrentUser converts the current-user record. Absent likedMovies
// becomes an empty, duplicate-free, sorted set.
func MapCurrentUser(d CurrentUserDTO) domain.CurrentUser {
	u := domain.CurrentUser{
		ID:          firstNonEmpty(d.MongoID, d.ID),
		Name:        orDefault(d.Name, ""),
		Surname:     orDefault(d.Surname, ""),
		Email:       orDefault(d.Email, ""),
		LikedMovies: uniqueIDs(d.LikedMovies),
		CreatedAt:   orDefault(d.CreatedAt, ""),
		UpdatedAt:   orDefault(d.UpdatedAt, ""),
	}
	if d.Version != nil {
		u.Version = *d.Version
	}
	return u
}

func orDefault(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	if v := strings.TrimSpace(*s); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if s := orDefault(v, ""); s != "" {
			return s
		}
	}
	return ""
}

func cleanActors(actors []string) []string {
	var out []string
	for _, a := range actors {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func uniqueIDs(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
