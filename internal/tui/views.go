package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// RenderSpinner renders the loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(components.SpinnerFrames[frame%len(components.SpinnerFrames)])
}

// renderLoading centers a spinner with a label
func renderLoading(ctx RenderContext, label string) string {
	return lipgloss.Place(ctx.Width, ctx.Height,
		lipgloss.Center, lipgloss.Center,
		RenderSpinner(ctx.SpinnerFrame)+" "+styles.DimStyle.Render(label))
}

// renderFailure centers an error message with a retry hint
func renderFailure(ctx RenderContext, message string) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.ErrorStyle.Render(styles.WordWrap(message, max(ctx.Width-8, 20))),
		"",
		renderHint(Keys.Refresh.Help().Key, "retry"),
	)
	return lipgloss.Place(ctx.Width, ctx.Height, lipgloss.Center, lipgloss.Center, body)
}

func renderHint(k, desc string) string {
	return styles.HelpKeyStyle.Render(k) + styles.HelpDescStyle.Render(" "+desc)
}

// renderHints joins the help text of bindings into one footer line
func renderHints(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, renderHint(h.Key, h.Desc))
	}
	return strings.Join(parts, styles.DimStyle.Render("  "))
}

// renderField renders a "Label  value" line
func renderField(label, value string) string {
	return styles.LabelStyle.Render(label) + styles.TitleStyle.Render(value)
}
