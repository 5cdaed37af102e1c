package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/navigation"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/viewmodel"
)

// FavoritesScreen is the Favorites tab
type FavoritesScreen struct {
	vm   *viewmodel.FavoritesVM
	list *components.MovieList
}

func newFavoritesScreen(deps viewmodel.Deps) *FavoritesScreen {
	return &FavoritesScreen{
		vm:   viewmodel.NewFavorites(deps),
		list: components.NewMovieList("Favorites"),
	}
}

func (s *FavoritesScreen) Init() tea.Cmd   { return s.vm.Init() }
func (s *FavoritesScreen) Close()          { s.vm.Close() }
func (s *FavoritesScreen) Capturing() bool { return s.list.IsFilterTyping() }

func (s *FavoritesScreen) Hints() []key.Binding {
	return []key.Binding{Keys.Enter, Keys.Remove, components.ListKeys.Filter}
}

func (s *FavoritesScreen) Update(msg tea.Msg) tea.Cmd {
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
		case key.Matches(keyMsg, Keys.Remove):
			if row, ok := s.list.Selected(); ok && row.HasID {
				return s.vm.Remove(row.MovieID)
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

func (s *FavoritesScreen) syncRows() {
	items := s.vm.Items()
	rows := make([]components.Row, len(items))
	for i, m := range items {
		rows[i] = movieRow(m, true, nil)
	}
	s.list.SetRows(rows)
}

func (s *FavoritesScreen) View(ctx RenderContext) string {
	switch s.vm.Status() {
	case viewmodel.StatusIdle, viewmodel.StatusLoading:
		return renderLoading(ctx, "Loading favorites...")
	case viewmodel.StatusFailed:
		return renderFailure(ctx, s.vm.Err())
	}

	where := "saved on this device"
	if s.vm.Mode() == favorites.Authenticated {
		where = "your account"
	}
	empty := "No favorites yet. Press f on a movie to add it."

	s.list.SetSize(ctx.Width, ctx.Height)
	s.list.SetTitle("Favorites · " + countLabel(len(s.vm.Items())) + " · " + where)
	return s.list.View(len(s.vm.Items()), empty)
}
