package tui

import "folio/internal/library"

// mode identifies which view the coordinator last rendered.
type mode int

const (
	modeLibrary mode = iota
	modeDetail
	modeSearch
)

// screen records the coordinator's most recent render. It implements
// library.View; the bubbletea model reads it on every frame. All access
// happens on the bubbletea goroutine because the coordinator runs
// synchronously inside Update.
type screen struct {
	mode mode

	books           []*library.Book
	libraryHandlers library.LibraryHandlers

	book           *library.Book
	detailHandlers library.DetailHandlers

	results        []library.Candidate
	searchHandlers library.SearchHandlers

	// notice is a transient error message for the status bar. Cleared by
	// the fade timer, not by renders, so it survives a redirect.
	// noticeSeq increments per notice so a fade scheduled for an earlier
	// notice cannot dismiss a later one.
	notice    string
	noticeSeq int
}

var _ library.View = (*screen)(nil)

func (s *screen) ShowLibrary(books []*library.Book, handlers library.LibraryHandlers) {
	s.mode = modeLibrary
	s.books = books
	s.libraryHandlers = handlers
	s.book = nil
	s.results = nil
}

func (s *screen) ShowBook(book *library.Book, handlers library.DetailHandlers) {
	s.mode = modeDetail
	s.book = book
	s.detailHandlers = handlers
	s.results = nil
}

func (s *screen) ShowSearchResults(results []library.Candidate, handlers library.SearchHandlers) {
	s.mode = modeSearch
	s.results = results
	s.searchHandlers = handlers
}

func (s *screen) ShowError(message string) {
	s.notice = message
	s.noticeSeq++
}

// listLength returns the number of selectable rows in the active view.
func (s *screen) listLength() int {
	switch s.mode {
	case modeLibrary:
		return len(s.books)
	case modeSearch:
		return len(s.results)
	case modeDetail:
		if s.book == nil {
			return 0
		}
		return len(s.book.Annotations)
	}
	return 0
}
