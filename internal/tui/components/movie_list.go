package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Spinner frames for loading animation
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Layout constants for the list panel
const (
	// Border adds 1 cell on each side
	BorderWidth  = 2
	BorderHeight = 2

	// "↑ more" and "↓ more" each take 1 line
	ScrollIndicatorLines = 2
)

// Row is one display-ready line of a MovieList
type Row struct {
	MovieID  int
	HasID    bool
	Title    string
	Year     string
	Rating   string // Empty hides the rating
	Favorite bool
	Matched  []int // Title byte offsets to highlight
}

// MovieList is a scrollable, filterable list of movies. Filtering itself is
// done by the owner: the list only reports the query.
type MovieList struct {
	rows []Row

	cursor     int
	offset     int
	maxVisible int

	width  int
	height int

	title string

	filterActive bool
	filterInput  textinput.Model
}

// NewMovieList creates an empty list with the given title
func NewMovieList(title string) *MovieList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &MovieList{title: title, filterInput: ti}
}

// SetRows replaces the rows, keeping the cursor in range
func (l *MovieList) SetRows(rows []Row) {
	l.rows = rows
	if l.cursor >= len(rows) {
		l.cursor = max(len(rows)-1, 0)
	}
	l.ensureVisible()
}

// Update handles navigation and filter typing. It returns true when the
// filter query changed.
func (l *MovieList) Update(msg tea.KeyMsg) (tea.Cmd, bool) {
	if l.filterActive && l.filterInput.Focused() {
		switch {
		case key.Matches(msg, ListKeys.Escape):
			return nil, l.clearFilter()
		case key.Matches(msg, ListKeys.Accept):
			l.filterInput.Blur()
			return nil, false
		case msg.String() == "backspace" && l.filterInput.Value() == "":
			return nil, l.clearFilter()
		}

		before := l.filterInput.Value()
		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		changed := l.filterInput.Value() != before
		if changed {
			l.cursor = 0
			l.offset = 0
		}
		return cmd, changed
	}

	switch {
	case key.Matches(msg, ListKeys.Filter):
		l.filterActive = true
		l.recalcMaxVisible()
		return l.filterInput.Focus(), false
	case l.filterActive && key.Matches(msg, ListKeys.Escape):
		return nil, l.clearFilter()
	}

	count := len(l.rows)
	if count == 0 {
		return nil, false
	}

	switch {
	case key.Matches(msg, ListKeys.Down):
		if l.cursor < count-1 {
			l.cursor++
		}
	case key.Matches(msg, ListKeys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, ListKeys.Home):
		l.cursor = 0
	case key.Matches(msg, ListKeys.End):
		l.cursor = count - 1
	case key.Matches(msg, ListKeys.HalfDown):
		l.cursor = min(l.cursor+l.maxVisible/2, count-1)
	case key.Matches(msg, ListKeys.HalfUp):
		l.cursor = max(l.cursor-l.maxVisible/2, 0)
	case key.Matches(msg, ListKeys.PageDown):
		l.cursor = min(l.cursor+l.maxVisible, count-1)
	case key.Matches(msg, ListKeys.PageUp):
		l.cursor = max(l.cursor-l.maxVisible, 0)
	}
	l.ensureVisible()
	return nil, false
}

// Forward passes a non-key message (cursor blink) to the filter input
func (l *MovieList) Forward(msg tea.Msg) tea.Cmd {
	if !l.IsFilterTyping() {
		return nil
	}
	var cmd tea.Cmd
	l.filterInput, cmd = l.filterInput.Update(msg)
	return cmd
}

// SetSize sets the outer size of the panel
func (l *MovieList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// Selected returns the row under the cursor
func (l *MovieList) Selected() (Row, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return Row{}, false
	}
	return l.rows[l.cursor], true
}

// Query returns the filter text
func (l *MovieList) Query() string {
	if !l.filterActive {
		return ""
	}
	return l.filterInput.Value()
}

// IsFilterTyping reports whether keystrokes go to the filter input
func (l *MovieList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// SetTitle sets the header line
func (l *MovieList) SetTitle(title string) {
	l.title = title
}

// Len returns the number of rows
func (l *MovieList) Len() int {
	return len(l.rows)
}

// clearFilter closes the filter and reports whether the query changed
func (l *MovieList) clearFilter() bool {
	had := l.filterInput.Value() != ""
	l.filterActive = false
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
	return had
}

func (l *MovieList) recalcMaxVisible() {
	// Interior height less the title line and the scroll indicators
	l.maxVisible = l.height - BorderHeight - ScrollIndicatorLines - 1
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *MovieList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

// View renders the list. total is the unfiltered count shown next to the
// filter; empty is shown when there are no rows.
func (l *MovieList) View(total int, empty string) string {
	style := styles.ActiveBorder
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(l.width-frameW, 0)).
		Height(max(l.height-frameH, 0)).
		Render(l.renderContent(total, empty))
}

func (l *MovieList) renderContent(total int, empty string) string {
	itemWidth := max(l.width-BorderWidth, 10)
	titleLine := styles.AccentStyle.Render(styles.Truncate(l.title, itemWidth))

	count := len(l.rows)
	if count == 0 {
		msg := empty
		if l.Query() != "" {
			msg = "No matches"
		}
		content := titleLine + "\n \n" + styles.DimStyle.Render(msg) + "\n "
		if l.filterActive {
			content += "\n" + l.renderFilterBar(total)
		}
		return content
	}

	end := min(l.offset+l.maxVisible, count)
	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, renderRow(l.rows[i], i == l.cursor, itemWidth))
	}

	// Header and footer lines are always reserved so the layout never shifts
	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if l.filterActive {
		content += "\n" + l.renderFilterBar(total)
	}
	return content
}

func renderRow(row Row, selected bool, width int) string {
	marker, markerFg := styles.NotFavoriteChar, styles.DimGray
	if row.Favorite {
		marker, markerFg = styles.FavoriteChar, styles.Pink
	}
	yearFg := styles.DimGray
	ratingFg := styles.MarqueeGold

	suffix := " (" + row.Year + ")"
	rating := ""
	if row.Rating != "" {
		rating = " " + styles.StarChar + " " + row.Rating
	}

	// marker(1) + space(1) + margins(2)
	available := max(width-4-lipgloss.Width(suffix)-lipgloss.Width(rating), 5)
	title := styles.Truncate(row.Title, available)

	parts := []styles.RowPart{
		{Text: marker, Foreground: &markerFg},
		{Text: " "},
	}
	parts = append(parts, titleParts(title, row.Matched)...)
	parts = append(parts, styles.RowPart{Text: suffix, Foreground: &yearFg})
	if rating != "" {
		parts = append(parts, styles.RowPart{Text: rating, Foreground: &ratingFg})
	}
	return styles.RenderListRow(parts, selected, width)
}

// titleParts splits title into runs so matched bytes render highlighted
func titleParts(title string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: title}}
	}
	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	gold := styles.MarqueeGold
	var parts []styles.RowPart
	var run []rune
	inMatch := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		part := styles.RowPart{Text: string(run)}
		if inMatch {
			part.Foreground = &gold
			part.Bold = true
		}
		parts = append(parts, part)
		run = run[:0]
	}

	for i, r := range title {
		if set[i] != inMatch {
			flush()
			inMatch = set[i]
		}
		run = append(run, r)
	}
	flush()
	return parts
}

func (l *MovieList) renderFilterBar(total int) string {
	countStr := ""
	if l.filterInput.Value() != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", len(l.rows), total))
	}
	return l.filterInput.View() + countStr
}
