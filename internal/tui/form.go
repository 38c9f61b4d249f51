package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formKind identifies what a submitted form should do.
type formKind int

const (
	formAddBook formKind = iota
	formEditBook
	formAddAnnotation
	formEditAnnotation
)

// form is the inline input overlay for adds and edits. Book forms carry
// labeled text inputs only; annotation forms lead with a textarea for the
// annotation text.
type form struct {
	kind     formKind
	targetID string
	heading  string

	text    textarea.Model // Annotation text. Only used when hasText.
	hasText bool
	fields  []textinput.Model
	labels  []string

	// focus is the active input: 0 is the textarea when hasText,
	// otherwise the first field.
	focus int
}

func newBookForm(kind formKind, targetID, title, author string) *form {
	f := &form{
		kind:     kind,
		targetID: targetID,
		heading:  "Add book",
		labels:   []string{"Title", "Author"},
	}
	if kind == formEditBook {
		f.heading = "Edit book"
	}
	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.SetValue(title)
	titleInput.Focus()
	authorInput := textinput.New()
	authorInput.Placeholder = "Author"
	authorInput.SetValue(author)
	f.fields = []textinput.Model{titleInput, authorInput}
	return f
}

func newAnnotationForm(kind formKind, targetID, text, page, typ string) *form {
	f := &form{
		kind:     kind,
		targetID: targetID,
		heading:  "Add annotation",
		hasText:  true,
	}
	f.text = textarea.New()
	f.text.Placeholder = "Annotation text"
	f.text.SetValue(text)
	f.text.SetHeight(4)
	f.text.Focus()

	pageInput := textinput.New()
	pageInput.Placeholder = "Page (optional)"
	pageInput.SetValue(page)

	if kind == formEditAnnotation {
		f.heading = "Edit annotation"
		f.fields = []textinput.Model{pageInput}
		f.labels = []string{"Page"}
		return f
	}

	typeInput := textinput.New()
	typeInput.Placeholder = "quote, note, or insight"
	typeInput.SetValue(typ)
	f.fields = []textinput.Model{pageInput, typeInput}
	f.labels = []string{"Page", "Type"}
	return f
}

// inputCount is the total number of focusable inputs.
func (f *form) inputCount() int {
	count := len(f.fields)
	if f.hasText {
		count++
	}
	return count
}

func (f *form) focusInput(index int) {
	count := f.inputCount()
	if count == 0 {
		return
	}
	f.focus = ((index % count) + count) % count
	if f.hasText {
		if f.focus == 0 {
			f.text.Focus()
		} else {
			f.text.Blur()
		}
	}
	for i := range f.fields {
		fieldIndex := i
		if f.hasText {
			fieldIndex++
		}
		if fieldIndex == f.focus {
			f.fields[i].Focus()
		} else {
			f.fields[i].Blur()
		}
	}
}

func (f *form) focusNext() { f.focusInput(f.focus + 1) }
func (f *form) focusPrev() { f.focusInput(f.focus - 1) }

// textFocused reports whether the textarea currently has focus.
func (f *form) textFocused() bool {
	return f.hasText && f.focus == 0
}

// handleInput routes a key message to the focused input.
func (f *form) handleInput(message tea.KeyMsg) tea.Cmd {
	if f.textFocused() {
		var cmd tea.Cmd
		f.text, cmd = f.text.Update(message)
		return cmd
	}
	index := f.focus
	if f.hasText {
		index--
	}
	if index < 0 || index >= len(f.fields) {
		return nil
	}
	var cmd tea.Cmd
	f.fields[index], cmd = f.fields[index].Update(message)
	return cmd
}

func (f *form) fieldValue(label string) string {
	for i, l := range f.labels {
		if l == label {
			return strings.TrimSpace(f.fields[i].Value())
		}
	}
	return ""
}

func (f *form) view(theme Theme, width int) string {
	heading := lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).
		Bold(true).
		Render(f.heading)
	label := lipgloss.NewStyle().Foreground(theme.FaintText)

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n\n")
	if f.hasText {
		f.text.SetWidth(min(width-4, 72))
		b.WriteString(f.text.View())
		b.WriteString("\n")
	}
	for i := range f.fields {
		b.WriteString(label.Render(f.labels[i] + ": "))
		b.WriteString(f.fields[i].View())
		b.WriteString("\n")
	}
	help := "Tab next field · Enter save · Esc cancel"
	if f.textFocused() {
		help = "Tab next field · Ctrl+D save · Esc cancel"
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.HelpText).Render(help))
	return b.String()
}
