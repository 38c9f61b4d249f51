package library

// LibraryHandlers are the callbacks the library list view may invoke.
type LibraryHandlers struct {
	OnAddBook    func(candidate Candidate)
	OnDeleteBook func(id string)
	OnEditBook   func(id, newTitle, newAuthor string)
	OnNavigate   func(fragment string)
}

// SearchHandlers are the callbacks the search-results view may invoke.
type SearchHandlers struct {
	OnAddBook func(candidate Candidate)
}

// DetailHandlers are the callbacks the book detail view may invoke. The
// annotation callbacks are closures over the Book entity's mutation
// operations; the view never touches the persistence client itself.
type DetailHandlers struct {
	OnNavigate         func(fragment string)
	OnRenderBook       func(id string)
	OnAddAnnotation    func(text, page string, typ AnnotationType)
	OnEditAnnotation   func(id, newText, newPage string)
	OnDeleteAnnotation func(id string)
}

// View is the rendering surface the coordinator drives. Implementations
// render the supplied data and route user actions back through the handler
// callbacks; they hold no collection state of their own.
type View interface {
	ShowLibrary(books []*Book, handlers LibraryHandlers)
	ShowBook(book *Book, handlers DetailHandlers)
	ShowSearchResults(results []Candidate, handlers SearchHandlers)
	// ShowError surfaces a transient, user-visible failure message.
	ShowError(message string)
}
