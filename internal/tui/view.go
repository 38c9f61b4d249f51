package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading library..."
	}

	var b strings.Builder
	b.WriteString(model.headerView())
	b.WriteString("\n\n")

	switch {
	case model.confirm != nil:
		b.WriteString(model.bodyView())
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(model.theme.BorderColor).
			Padding(0, 1).
			Foreground(model.theme.ErrorText).
			Bold(true).
			Render(model.confirm.message + " (y/n)"))
	case model.activeForm != nil:
		b.WriteString(model.activeForm.view(model.theme, model.width))
	default:
		b.WriteString(model.bodyView())
	}

	b.WriteString("\n\n")
	b.WriteString(model.statusView())
	return b.String()
}

func (model Model) headerView() string {
	title := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true).
		Render("folio")
	fragment := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Render(model.router.Current())
	header := title + "  " + fragment
	if model.screen.mode == modeLibrary {
		count := lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render(fmt.Sprintf("%d books", len(model.screen.books)))
		header += "  " + count
	}
	if model.focus == FocusSearch {
		header += "\n" + model.searchInput.View()
	}
	return header
}

func (model Model) bodyView() string {
	switch model.screen.mode {
	case modeSearch:
		return model.searchResultsView()
	case modeDetail:
		return model.detailView()
	default:
		return model.libraryView()
	}
}

func (model Model) libraryView() string {
	books := model.screen.books
	if len(books) == 0 {
		return lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render("Your library is empty. Press / to search the catalog or a to add a book.")
	}
	var rows []string
	start, end := model.windowBounds(len(books))
	for i := start; i < end; i++ {
		book := books[i]
		line := book.Title
		if book.Author != "" {
			line += "  " + book.Author
		}
		if n := len(book.Annotations); n > 0 {
			line += fmt.Sprintf("  (%d annotations)", n)
		}
		rows = append(rows, model.renderRow(line, i == model.cursor))
	}
	return strings.Join(rows, "\n")
}

func (model Model) searchResultsView() string {
	results := model.screen.results
	heading := lipgloss.NewStyle().
		Foreground(model.theme.AccentText).
		Bold(true).
		Render("Search results")
	if len(results) == 0 {
		return heading + "\n\n" + lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render("No matches. Press Esc to return to your library.")
	}
	var rows []string
	start, end := model.windowBounds(len(results))
	for i := start; i < end; i++ {
		result := results[i]
		line := result.Title + "  " + result.Author
		if result.PublishedDate != "" {
			line += "  (" + result.PublishedDate + ")"
		}
		rows = append(rows, model.renderRow(line, i == model.cursor))
	}
	return heading + "\n\n" + strings.Join(rows, "\n")
}

func (model Model) detailView() string {
	book := model.screen.book
	if book == nil {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText).Bold(true)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var b strings.Builder
	b.WriteString(titleStyle.Render(book.Title))
	b.WriteString("\n")
	b.WriteString(faint.Render("by " + book.Author))
	b.WriteString("\n")

	var meta []string
	if book.PublishedDate != "" {
		meta = append(meta, "Published "+book.PublishedDate)
	}
	if book.PageCount > 0 {
		meta = append(meta, fmt.Sprintf("%d pages", book.PageCount))
	}
	if book.ISBN != "" {
		meta = append(meta, "ISBN "+book.ISBN)
	}
	if len(book.Categories) > 0 {
		meta = append(meta, strings.Join(book.Categories, ", "))
	}
	if len(meta) > 0 {
		b.WriteString(faint.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}
	if book.Description != "" {
		width := model.width - 2
		if width > 78 {
			width = 78
		}
		b.WriteString(lipgloss.NewStyle().
			Foreground(model.theme.NormalText).
			Width(width).
			Render(truncate(book.Description, 300)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(model.theme.AccentText).
		Bold(true).
		Render(fmt.Sprintf("Annotations (%d)", len(book.Annotations))))
	b.WriteString("\n")

	if len(book.Annotations) == 0 {
		b.WriteString(faint.Render("No annotations yet. Press n to add one."))
		return b.String()
	}
	start, end := model.windowBounds(len(book.Annotations))
	for i := start; i < end; i++ {
		ann := book.Annotations[i]
		line := "[" + string(ann.Type) + "]"
		if ann.Page != "" {
			line += " p." + ann.Page
		}
		line += " " + truncate(firstLine(ann.Text), 80)
		if !ann.Timestamp.IsZero() {
			line += "  " + ann.Timestamp.Format("2006-01-02")
		}
		b.WriteString(model.renderRow(line, i == model.cursor))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (model Model) renderRow(line string, selected bool) string {
	if selected {
		return lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground).
			Render("> " + line)
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.NormalText).
		Render("  " + line)
}

func (model Model) statusView() string {
	if model.screen.notice != "" {
		return lipgloss.NewStyle().
			Foreground(model.theme.ErrorText).
			Render(model.screen.notice)
	}
	var help string
	switch model.screen.mode {
	case modeSearch:
		help = "Enter add · Esc library · q quit"
	case modeDetail:
		help = "n annotate · e edit · d delete · Esc back · q quit"
	default:
		help = "Enter open · / search · a add · e edit · d delete · r reload · q quit"
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(help)
}

// windowBounds returns the half-open row range visible under the current
// scroll offset.
func (model Model) windowBounds(length int) (int, int) {
	start := model.scrollOffset
	if start > length {
		start = length
	}
	end := start + model.visibleRows()
	if end > length {
		end = length
	}
	return start, end
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
