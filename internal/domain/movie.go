package domain

import (
	"fmt"
	"strconv"
)

// Display fallbacks for movie records the backend returns partially filled.
const (
	FallbackTitle       = "Unknown Title"
	FallbackDescription = "No description available for this movie."
	FallbackCategory    = "Unknown"
	FallbackYear        = "Unknown"
	FallbackDuration    = "Unknown"
)

// Movie is a fully normalized movie record. Every field is display-ready;
// absent backend fields have already been replaced by their fallbacks.
type Movie struct {
	ID          int  // Zero when the backend omitted it
	HasID       bool // False for records without an id (not navigable)
	Title       string
	Year        int // 0 if unknown
	Rating      float64
	HasRating   bool // True only for ratings in (0, 10]
	Actors      []string
	Category    string
	PosterURL   string // Empty when the backend sent none
	Description string
}

// YearLabel returns the release year or the year fallback
func (m Movie) YearLabel() string {
	if m.Year <= 0 {
		return FallbackYear
	}
	return strconv.Itoa(m.Year)
}

// RatingLabel formats the rating with one decimal
func (m Movie) RatingLabel() string {
	return fmt.Sprintf("%.1f", m.Rating)
}

// DurationLabel returns the estimated runtime shown on the detail screen.
// The backend has no runtime field; the estimate is derived from the id.
func (m Movie) DurationLabel() string {
	if !m.HasID || m.ID <= 0 {
		return FallbackDuration
	}
	return fmt.Sprintf("%d Minutes", m.ID*8)
}

// HasActors reports whether any cast information is available
func (m Movie) HasActors() bool {
	return len(m.Actors) > 0
}

// FilterByIDs returns the movies whose id is in ids, preserving catalog order.
// Movies without an id never match.
func FilterByIDs(movies []Movie, ids []int) []Movie {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	var out []Movie
	for _, m := range movies {
		if !m.HasID {
			continue
		}
		if _, ok := set[m.ID]; ok {
			out = append(out, m)
		}
	}
	return out
}
