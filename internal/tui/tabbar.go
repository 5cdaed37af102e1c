package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/navigation"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/viewmodel"
)

// Tab indexes, as persisted
const (
	TabHome = iota
	TabFavorites
	TabProfile
	tabCount
)

var tabNames = [tabCount]string{"Home", "Favorites", "Profile"}

// tab is a screen hosted by the tab bar
type tab interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(ctx RenderContext) string
	Close()
	Capturing() bool
	Hints() []key.Binding
}

// TabBarScreen hosts Home, Favorites and Profile. The selected tab is
// persisted on every change.
type TabBarScreen struct {
	tabs     [tabCount]tab
	selected int
	store    domain.TabStore
	logger   *slog.Logger
}

func newTabBarScreen(deps viewmodel.Deps, store domain.TabStore) *TabBarScreen {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &TabBarScreen{
		tabs: [tabCount]tab{
			newHomeScreen(deps),
			newFavoritesScreen(deps),
			newProfileScreen(deps, false),
		},
		store:  store,
		logger: logger,
	}
	if store != nil {
		s.selected = clampTab(store.SelectedTab())
	}
	return s
}

func clampTab(i int) int {
	if i < 0 || i >= tabCount {
		return TabHome
	}
	return i
}

func (s *TabBarScreen) Route() navigation.Route { return navigation.TabBar{} }

// Selected returns the index of the shown tab
func (s *TabBarScreen) Selected() int { return s.selected }

func (s *TabBarScreen) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, tabCount)
	for _, t := range s.tabs {
		cmds = append(cmds, t.Init())
	}
	return tea.Batch(cmds...)
}

func (s *TabBarScreen) Close() {
	for _, t := range s.tabs {
		t.Close()
	}
}

func (s *TabBarScreen) Capturing() bool {
	return s.tabs[s.selected].Capturing()
}

func (s *TabBarScreen) Hints() []key.Binding {
	hints := s.tabs[s.selected].Hints()
	if s.Capturing() {
		return hints
	}
	return append(hints, Keys.NextTab)
}

func (s *TabBarScreen) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		cmds := make([]tea.Cmd, 0, tabCount)
		for _, t := range s.tabs {
			cmds = append(cmds, t.Update(msg))
		}
		return tea.Batch(cmds...)
	}

	current := s.tabs[s.selected]
	if !current.Capturing() {
		switch {
		case key.Matches(keyMsg, Keys.NextTab):
			s.Select((s.selected + 1) % tabCount)
			return nil
		case key.Matches(keyMsg, Keys.PrevTab):
			s.Select((s.selected + tabCount - 1) % tabCount)
			return nil
		case key.Matches(keyMsg, Keys.Home):
			s.Select(TabHome)
			return nil
		case key.Matches(keyMsg, Keys.Faves):
			s.Select(TabFavorites)
			return nil
		case key.Matches(keyMsg, Keys.Profile):
			s.Select(TabProfile)
			return nil
		}
	}
	return current.Update(msg)
}

// Select shows tab i and persists the choice
func (s *TabBarScreen) Select(i int) {
	s.selected = clampTab(i)
	if s.store == nil {
		return
	}
	if err := s.store.SetSelectedTab(s.selected); err != nil {
		s.logger.Error("failed to persist selected tab", "tab", s.selected, "error", err)
	}
}

func (s *TabBarScreen) View(ctx RenderContext) string {
	header := s.renderTabs(ctx.Width)
	inner := ctx
	inner.Height = max(ctx.Height-lipgloss.Height(header), 1)
	return lipgloss.JoinVertical(lipgloss.Left, header, s.tabs[s.selected].View(inner))
}

func (s *TabBarScreen) renderTabs(width int) string {
	parts := make([]string, tabCount)
	for i, name := range tabNames {
		if i == s.selected {
			parts[i] = styles.ActiveTabStyle.Render(name)
		} else {
			parts[i] = styles.InactiveTabStyle.Render(name)
		}
	}
	row := strings.Join(parts, " ")
	return lipgloss.NewStyle().Width(width).Render(row)
}
