package catalog

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/mmcdole/marquee/internal/domain"
)

// Match is a filtered movie with the title positions that matched, for
// highlighting
type Match struct {
	Movie          domain.Movie
	MatchedIndexes []int
}

// titleIndex implements sahilm/fuzzy.Source over lowercase titles
type titleIndex struct {
	lowerTitles []string
}

func (idx titleIndex) String(i int) string { return idx.lowerTitles[i] }

func (idx titleIndex) Len() int { return len(idx.lowerTitles) }

// Filter fuzzy-matches query against movie titles, best match first. An
// empty query returns every movie in catalog order.
func Filter(movies []domain.Movie, query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Match, len(movies))
		for i, m := range movies {
			out[i] = Match{Movie: m}
		}
		return out
	}

	idx := titleIndex{lowerTitles: make([]string, len(movies))}
	for i, m := range movies {
		idx.lowerTitles[i] = strings.ToLower(m.Title)
	}

	matches := sahilm.FindFrom(strings.ToLower(query), idx)
	out := make([]Match, len(matches))
	for i, match := range matches {
		out[i] = Match{Movie: movies[match.Index], MatchedIndexes: match.MatchedIndexes}
	}
	return out
}

// Rank orders movies whose title contains query as a subsequence by edit
// distance, closest first. Ties keep catalog order. Used for short lists
// where highlighting is not shown.
func Rank(movies []domain.Movie, query string) []domain.Movie {
	query = strings.TrimSpace(query)
	if query == "" {
		return movies
	}

	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}

	ranks := fuzzy.RankFindFold(query, titles)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]domain.Movie, len(ranks))
	for i, r := range ranks {
		out[i] = movies[r.OriginalIndex]
	}
	return out
}
