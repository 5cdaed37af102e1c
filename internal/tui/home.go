package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/navigation"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/viewmodel"
)

// HomeScreen is the Home tab: the whole catalog
type HomeScreen struct {
	vm   *viewmodel.CatalogVM
	list *components.MovieList
}

func newHomeScreen(deps viewmodel.Deps) *HomeScreen {
	return &HomeScreen{
		vm:   viewmodel.NewCatalog(deps),
		list: components.NewMovieList("Movies"),
	}
}

func (s *HomeScreen) Init() tea.Cmd   { return s.vm.Init() }
func (s *HomeScreen) Close()          { s.vm.Close() }
func (s *HomeScreen) Capturing() bool { return s.list.IsFilterTyping() }

func (s *HomeScreen) Hints() []key.Binding {
	return []key.Binding{Keys.Enter, Keys.Favorite, components.ListKeys.Filter, Keys.Refresh}
}

func (s *HomeScreen) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		cmd := s.vm.Update(msg)
		s.syncRows()
		return tea.Batch(cmd, s.list.Forward(msg))
	}

	if !s.list.IsFilterTyping() {
		switch {
		case key.Matches(keyMsg, Keys.Enter):
			if row, ok := s.list.Selected(); ok && row.HasID {
				return NavigateCmd(navigation.MovieDetail{MovieID: row.MovieID})
			}
			return nil
		case key.Matches(keyMsg, Keys.Favorite):
			if row, ok := s.list.Selected(); ok && row.HasID {
				return s.vm.ToggleFavorite(row.MovieID)
			}
			return nil
		case key.Matches(keyMsg, Keys.Refresh):
			return s.vm.Load()
		}
	}

	cmd, changed := s.list.Update(keyMsg)
	if changed {
		s.vm.SetQuery(s.list.Query())
		s.syncRows()
	}
	return cmd
}

func (s *HomeScreen) syncRows() {
	items := s.vm.Items()
	rows := make([]components.Row, len(items))
	for i, it := range items {
		rows[i] = movieRow(it.Movie, it.Favorite, it.MatchedIndexes)
	}
	s.list.SetRows(rows)
}

func (s *HomeScreen) View(ctx RenderContext) string {
	switch s.vm.Status() {
	case viewmodel.StatusIdle, viewmodel.StatusLoading:
		if s.vm.Total() == 0 {
			return renderLoading(ctx, "Loading movies...")
		}
	case viewmodel.StatusFailed:
		return renderFailure(ctx, s.vm.Err())
	}

	s.list.SetSize(ctx.Width, ctx.Height)
	s.list.SetTitle("Movies · " + countLabel(s.vm.Total()))
	return s.list.View(s.vm.Total(), "No movies yet")
}

// movieRow converts a movie into a list row
func movieRow(m domain.Movie, favorite bool, matched []int) components.Row {
	row := components.Row{
		MovieID:  m.ID,
		HasID:    m.HasID,
		Title:    m.Title,
		Year:     m.YearLabel(),
		Favorite: favorite,
		Matched:  matched,
	}
	if m.HasRating {
		row.Rating = m.RatingLabel()
	}
	return row
}

// countLabel renders "n movies"
func countLabel(n int) string {
	if n == 1 {
		return "1 movie"
	}
	return fmt.Sprintf("%d movies", n)
}
