package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"folio/internal/library"
)

// titleCaser renders annotation type labels ("quote" -> "Quote").
var titleCaser = cases.Title(language.English)

func renderBookList(books []library.Book) string {
	rows := make([][]string, 0, len(books))
	for _, book := range books {
		rows = append(rows, []string{
			book.ID,
			book.Title,
			book.Author,
			pageCountLabel(book.PageCount),
			strconv.Itoa(len(book.Annotations)),
		})
	}
	return renderTable([]string{"ID", "Title", "Author", "Pages", "Notes"}, rows, 3, 4)
}

func renderCandidateList(results []library.Candidate) string {
	rows := make([][]string, 0, len(results))
	for i, result := range results {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			result.Title,
			result.Author,
			result.PublishedDate,
			result.ISBN,
		})
	}
	return renderTable([]string{"#", "Title", "Author", "Published", "ISBN"}, rows, 0)
}

func writeBookDetail(w io.Writer, book library.Book) {
	fmt.Fprintln(w, book.Title)
	fmt.Fprintf(w, "by %s\n", book.Author)

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
		fmt.Fprintln(w, strings.Join(meta, " | "))
	}
	if book.Description != "" {
		fmt.Fprintf(w, "\n%s\n", book.Description)
	}

	fmt.Fprintf(w, "\nAnnotations (%d)\n", len(book.Annotations))
	if len(book.Annotations) > 0 {
		fmt.Fprintln(w, renderAnnotationList(book.Annotations))
	}
}

func renderAnnotationList(annotations []library.Annotation) string {
	rows := make([][]string, 0, len(annotations))
	for _, ann := range annotations {
		added := ""
		if !ann.Timestamp.IsZero() {
			added = ann.Timestamp.Format("2006-01-02")
		}
		rows = append(rows, []string{
			ann.ID,
			titleCaser.String(string(ann.Type)),
			ann.Page,
			added,
			collapseText(ann.Text, 60),
		})
	}
	return renderTable([]string{"ID", "Type", "Page", "Added", "Text"}, rows, 2)
}

func pageCountLabel(count int) string {
	if count <= 0 {
		return ""
	}
	return strconv.Itoa(count)
}

// collapseText flattens newlines and truncates for single-row display.
func collapseText(text string, limit int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= limit {
		return flat
	}
	return string(runes[:limit-1]) + "…"
}
