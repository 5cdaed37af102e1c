package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Field describes one input of a Form
type Field struct {
	Key         string // Matches the validation field name
	Label       string
	Placeholder string
	Secret      bool
}

// Form is a vertical stack of text inputs with one focused at a time
type Form struct {
	fields []Field
	inputs []textinput.Model
	focus  int
	width  int
}

// NewForm creates a form with the first field focused
func NewForm(fields []Field) *Form {
	f := &Form{fields: fields, inputs: make([]textinput.Model, len(fields)), width: 30}
	for i, field := range fields {
		ti := textinput.New()
		ti.Placeholder = field.Placeholder
		ti.CharLimit = 120
		ti.Width = f.width
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		if field.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.inputs[i] = ti
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// Focus returns the blink command for the focused input
func (f *Form) Focus() tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	return f.inputs[f.focus].Focus()
}

// Update moves focus or edits the focused input. It returns true when the
// user asked to submit.
func (f *Form) Update(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, FormKeys.Submit):
		return nil, true
	case key.Matches(msg, FormKeys.Next):
		return f.move(1), false
	case key.Matches(msg, FormKeys.Prev):
		return f.move(-1), false
	}

	if len(f.inputs) == 0 {
		return nil, false
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false
}

// Forward passes a non-key message (cursor blink) to the focused input
func (f *Form) Forward(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *Form) move(delta int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

// Value returns the text of the field with the given key
func (f *Form) Value(key string) string {
	for i, field := range f.fields {
		if field.Key == key {
			return f.inputs[i].Value()
		}
	}
	return ""
}

// SetValue sets the text of the field with the given key
func (f *Form) SetValue(key, value string) {
	for i, field := range f.fields {
		if field.Key == key {
			f.inputs[i].SetValue(value)
			return
		}
	}
}

// FocusedKey returns the key of the focused field
func (f *Form) FocusedKey() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focus].Key
}

// SetWidth sets the input width
func (f *Form) SetWidth(width int) {
	f.width = max(width, 10)
	for i := range f.inputs {
		f.inputs[i].Width = f.width
	}
}

// View renders the fields with their errors underneath
func (f *Form) View(errs map[string]string) string {
	var b strings.Builder
	for i, field := range f.fields {
		label := styles.LabelStyle.Render(field.Label)
		if i == f.focus {
			label = styles.FocusedLabelStyle.Render(field.Label)
		}
		b.WriteString(label + f.inputs[i].View() + "\n")
		if msg, ok := errs[field.Key]; ok {
			b.WriteString(styles.FieldErrorStyle.Render(msg) + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
