package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/navigation"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/viewmodel"
)

// DetailScreen shows one movie
type DetailScreen struct {
	route navigation.MovieDetail
	vm    *viewmodel.DetailVM
}

func newDetailScreen(deps viewmodel.Deps, route navigation.MovieDetail) *DetailScreen {
	return &DetailScreen{route: route, vm: viewmodel.NewDetail(deps, route.MovieID)}
}

func (s *DetailScreen) Route() navigation.Route { return s.route }
func (s *DetailScreen) Init() tea.Cmd           { return s.vm.Init() }
func (s *DetailScreen) Close()                  { s.vm.Close() }
func (s *DetailScreen) Capturing() bool         { return false }

func (s *DetailScreen) Hints() []key.Binding {
	return []key.Binding{Keys.Back, Keys.Favorite, Keys.Refresh, Keys.Account}
}

func (s *DetailScreen) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s.vm.Update(msg)
	}

	switch {
	case key.Matches(keyMsg, Keys.Back):
		return CloseCmd(s)
	case key.Matches(keyMsg, Keys.Favorite):
		if s.vm.Status() == viewmodel.StatusReady {
			return s.vm.ToggleFavorite()
		}
	case key.Matches(keyMsg, Keys.Refresh):
		return s.vm.Load()
	case key.Matches(keyMsg, Keys.Account):
		return NavigateCmd(navigation.Profile{})
	}
	return nil
}

func (s *DetailScreen) View(ctx RenderContext) string {
	switch s.vm.Status() {
	case viewmodel.StatusIdle, viewmodel.StatusLoading:
		return renderLoading(ctx, "Loading movie...")
	case viewmodel.StatusFailed:
		return renderFailure(ctx, s.vm.Err())
	}

	m := s.vm.Movie()
	width := max(min(ctx.Width-4, 100), 20)

	marker := styles.DimStyle.Render(styles.NotFavoriteChar + " not a favorite")
	if s.vm.Favorite() {
		marker = styles.FavoriteStyle.Render(styles.FavoriteChar + " favorite")
	}

	meta := []string{m.YearLabel(), m.Category, m.DurationLabel()}
	rating := styles.DimStyle.Render("not rated")
	if m.HasRating {
		rating = styles.RatingStyle.Render(styles.StarChar + " " + m.RatingLabel() + " / 10")
	}

	lines := []string{
		styles.TitleStyle.Render(styles.Truncate(m.Title, width)),
		styles.SubtitleStyle.Render(strings.Join(meta, " · ")),
		rating + "   " + marker,
		"",
	}
	if m.HasActors() {
		lines = append(lines,
			styles.AccentStyle.Render("Cast"),
			styles.WordWrap(strings.Join(m.Actors, ", "), width),
			"",
		)
	}
	lines = append(lines,
		styles.AccentStyle.Render("Overview"),
		styles.WordWrap(m.Description, width),
	)
	if m.PosterURL != "" {
		lines = append(lines, "", styles.DimStyle.Render("Poster: "+styles.Truncate(m.PosterURL, width-8)))
	}
	if notice := s.vm.Notice(); notice != "" {
		lines = append(lines, "", styles.ErrorStyle.Render(notice))
	}

	body := lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(ctx.Width, ctx.Height, lipgloss.Left, lipgloss.Top, body)
}
