package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/navigation"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/viewmodel"
)

const (
	// Vertical layout: single footer line
	ChromeHeight = 1

	tickInterval  = 100 * time.Millisecond
	statusTimeout = 3 * time.Second

	modalMaxWidth  = 64
	modalMaxHeight = 18
)

// Options are the collaborators the root model is built from
type Options struct {
	Deps           viewmodel.Deps
	Tabs           domain.TabStore
	SplashDuration time.Duration
	// Resume restores a persisted session at startup; may be nil
	Resume func(ctx context.Context) error
	Logger *slog.Logger
}

// Model is the main Bubble Tea model. It owns the router; every navigation
// change happens in Update.
type Model struct {
	router *navigation.Router[Screen]
	opts   Options
	logger *slog.Logger

	// Dimensions
	Width  int
	Height int
	Ready  bool

	// UI state
	SpinnerFrame int
	StatusMsg    string
	StatusIsErr  bool
	statusSeq    int // Bumped per message; a clear for an older one is ignored
	ShowHelp     bool
	overlayMode  navigation.PresentationMode
}

// NewModel creates the application model with Splash on the stack
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Deps.Logger == nil {
		opts.Deps.Logger = logger
	}

	b := &screenBuilder{deps: opts.Deps, tabs: opts.Tabs, splash: opts.SplashDuration}
	router := navigation.NewRouter[Screen](b, logger)
	router.Start()

	return Model{router: router, opts: opts, logger: logger}
}

// Router exposes the navigation stack
func (m Model) Router() *navigation.Router[Screen] {
	return m.router
}

// Init starts the splash, the spinner tick and the session resume
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(tickInterval), ResumeCmd(m.opts.Resume, m.opts.Deps.Timeout)}
	if top, ok := m.router.Top(); ok {
		cmds = append(cmds, top.Init())
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case NavigateMsg:
		screen := m.router.Show(msg.Route)
		if mode := msg.Route.Presentation(); mode.IsOverlay() {
			m.overlayMode = mode
		}
		return m, screen.Init()

	case CloseMsg:
		m.close(msg.Screen)
		return m, nil

	case PopToRootMsg:
		m.router.Dismiss()
		m.router.PopToRoot()
		if top, ok := m.router.Top(); ok {
			return m, top.Init()
		}
		return m, nil

	case PopToFirstViewAfterRootMsg:
		m.router.Dismiss()
		m.router.PopToFirstViewAfterRoot()
		return m, nil

	case SplashDoneMsg:
		return m, m.finishSplash()

	case StatusMsg:
		cmd := m.setStatus(msg.Message, msg.IsError)
		return m, cmd

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil

	case viewmodel.FavoriteChangedMsg:
		if msg.Err != nil {
			clearCmd := m.setStatus(domain.Message(msg.Err), true)
			return m, tea.Batch(m.broadcast(msg), clearCmd)
		}
	}

	return m, m.broadcast(msg)
}

// setStatus shows a footer message and schedules its removal
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isError
	return ClearStatusCmd(statusTimeout, m.statusSeq)
}

// broadcast hands msg to every live screen
func (m Model) broadcast(msg tea.Msg) tea.Cmd {
	screens := m.router.Screens()
	cmds := make([]tea.Cmd, 0, len(screens))
	for _, s := range screens {
		cmds = append(cmds, s.Update(msg))
	}
	return tea.Batch(cmds...)
}

// close dismisses s when it is the overlay, or pops it when it is on top
func (m Model) close(s Screen) {
	if overlay, ok := m.router.Overlay(); ok && overlay == s {
		m.router.Dismiss()
		return
	}
	if top, ok := m.router.Top(); ok && top == s {
		m.router.Pop()
	}
}

// finishSplash resets the tab selection and shows the tab bar
func (m Model) finishSplash() tea.Cmd {
	top, ok := m.router.Top()
	if !ok || m.router.Depth() != 1 {
		return nil
	}
	if _, isSplash := top.Route().(navigation.Splash); !isSplash {
		return nil
	}
	if m.opts.Tabs != nil {
		if err := m.opts.Tabs.SetSelectedTab(TabHome); err != nil {
			m.logger.Error("failed to reset selected tab", "error", err)
		}
	}
	return m.router.Show(navigation.TabBar{}).Init()
}

// handleKeyMsg routes keys: global shortcuts first, then the visible screen
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Cancel, Keys.Help, Keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	screen, ok := m.router.Visible()
	if !ok {
		return m, nil
	}

	if !screen.Capturing() {
		switch {
		case key.Matches(msg, Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, Keys.Help):
			m.ShowHelp = true
			return m, nil
		}
	}

	return m, screen.Update(msg)
}

// View renders the visible screen, the overlay and the footer
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	ctx := RenderContext{
		Width:        m.Width,
		Height:       max(m.Height-ChromeHeight, 1),
		SpinnerFrame: m.SpinnerFrame,
	}

	var content string
	if top, ok := m.router.Top(); ok {
		content = top.View(ctx)
	}

	if overlay, ok := m.router.Overlay(); ok {
		if m.overlayMode == navigation.PresentFullScreen {
			content = overlay.View(ctx)
		} else {
			inner := RenderContext{
				Width:        min(ctx.Width-8, modalMaxWidth),
				Height:       min(ctx.Height-6, modalMaxHeight),
				SpinnerFrame: ctx.SpinnerFrame,
			}
			content = lipgloss.Place(ctx.Width, ctx.Height,
				lipgloss.Center, lipgloss.Center,
				styles.ModalStyle.Render(overlay.View(inner)))
		}
	}

	content = lipgloss.NewStyle().Width(ctx.Width).Height(ctx.Height).MaxHeight(ctx.Height).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter())
}

func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	} else if screen, ok := m.router.Visible(); ok {
		left = renderHints(screen.Hints())
	}

	right := renderHint(Keys.Help.Help().Key, "help")
	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.NewStyle().MaxWidth(m.Width).Render(left)
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	global := []key.Binding{Keys.Quit, Keys.Help, Keys.NextTab, Keys.PrevTab, Keys.Home, Keys.Faves, Keys.Profile}

	var lines []string
	lines = append(lines, styles.ModalTitleStyle.Render("Keys"))
	for _, b := range global {
		h := b.Help()
		lines = append(lines, styles.HelpKeyStyle.Render(styles.Pad(h.Key, 8))+styles.HelpDescStyle.Render(h.Desc))
	}
	if screen, ok := m.router.Visible(); ok {
		if hints := screen.Hints(); len(hints) > 0 {
			lines = append(lines, "", styles.ModalTitleStyle.Render("This screen"))
			for _, b := range hints {
				h := b.Help()
				lines = append(lines, styles.HelpKeyStyle.Render(styles.Pad(h.Key, 8))+styles.HelpDescStyle.Render(h.Desc))
			}
		}
	}

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(strings.Join(lines, "\n")))
}
