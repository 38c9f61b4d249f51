package library

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"folio/internal/router"
)

// ErrNotFound marks a backend miss for a book or annotation identifier.
// The persistence client wraps 404 responses with it.
var ErrNotFound = errors.New("not found")

// Store is the persistence client surface the coordinator depends on.
type Store interface {
	AnnotationStore
	ListBooks(ctx context.Context) ([]Book, error)
	GetBook(ctx context.Context, id string) (Book, error)
	CreateBook(ctx context.Context, candidate Candidate) (Book, error)
	UpdateBook(ctx context.Context, id, title, author string) (Book, error)
	DeleteBook(ctx context.Context, id string) error
	ListAnnotations(ctx context.Context, bookID string) ([]Annotation, error)
}

// Searcher is the catalog client surface used for book search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
}

// Manager coordinates the in-memory collection, the persistence backend,
// the catalog, and the active view. It registers the two routes on
// construction and is the only component that issues mutating backend
// calls.
//
// Mutation methods return the underlying error for callers that need an
// exit status, but every failure has already been logged and surfaced
// through View.ShowError by the time they return; event-driven callers can
// discard it.
type Manager struct {
	log    *slog.Logger
	store  Store
	search Searcher
	router *router.Router
	view   View

	// ctx is the session context used for renders triggered by route
	// changes, which carry no context of their own.
	ctx context.Context

	books []*Book
}

// NewManager wires a coordinator to its collaborators and registers the
// library and book-detail routes.
func NewManager(ctx context.Context, log *slog.Logger, store Store, search Searcher, rt *router.Router, view View) *Manager {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &Manager{
		log:    log,
		store:  store,
		search: search,
		router: rt,
		view:   view,
		ctx:    ctx,
	}
	if rt != nil {
		rt.AddRoute(router.FragmentLibrary, func(string) { m.RenderLibraryView() })
		rt.AddRoute(router.RouteBook, func(id string) { m.RenderBookView(id) })
	}
	return m
}

// Books returns the collection in insertion order. The slice is a copy;
// the Book pointers are the live entities.
func (m *Manager) Books() []*Book {
	books := make([]*Book, len(m.books))
	copy(books, m.books)
	return books
}

// Book returns the collection entry with the given identifier, or nil.
func (m *Manager) Book(id string) *Book {
	return m.findBook(id)
}

// LoadAll fetches every book from the backend and replaces the collection
// wholesale. On failure the previously loaded collection is preserved.
func (m *Manager) LoadAll(ctx context.Context) error {
	records, err := m.store.ListBooks(ctx)
	if err != nil {
		m.log.Error("load library", "error", err)
		m.view.ShowError("Failed to load your library. Please try again.")
		return err
	}
	books := make([]*Book, 0, len(records))
	for i := range records {
		book := records[i]
		books = append(books, &book)
	}
	m.books = books
	m.RenderLibraryView()
	return nil
}

// AddBook persists a candidate and appends the confirmed record to the
// collection. Empty trimmed title or author is a validation no-op: no
// backend call, no collection change.
func (m *Manager) AddBook(ctx context.Context, candidate Candidate) error {
	candidate.Title = strings.TrimSpace(candidate.Title)
	candidate.Author = strings.TrimSpace(candidate.Author)
	if candidate.Title == "" || candidate.Author == "" {
		m.log.Debug("add book rejected", "title", candidate.Title, "author", candidate.Author)
		return nil
	}
	created, err := m.store.CreateBook(ctx, candidate)
	if err != nil {
		m.log.Error("add book", "title", candidate.Title, "error", err)
		m.view.ShowError("Failed to add book. Please try again.")
		return err
	}
	book := created
	m.books = append(m.books, &book)
	m.log.Info("book added", "id", book.ID, "title", book.Title)
	m.RenderLibraryView()
	return nil
}

// DeleteBook persists the delete, then removes the book and its
// annotations from the collection. An identifier that is no longer in the
// collection is a silent no-op, making the operation idempotent.
func (m *Manager) DeleteBook(ctx context.Context, id string) error {
	idx := m.bookIndex(id)
	if idx < 0 {
		return nil
	}
	if err := m.store.DeleteBook(ctx, id); err != nil {
		m.log.Error("delete book", "id", id, "error", err)
		m.view.ShowError("Failed to delete book. Please try again.")
		return err
	}
	m.books = append(m.books[:idx], m.books[idx+1:]...)
	m.log.Info("book deleted", "id", id)
	m.RenderLibraryView()
	return nil
}

// EditBook persists new title and author, then applies them to the local
// book. Empty trimmed values are a validation no-op without a backend
// call; so is an identifier missing from the collection.
func (m *Manager) EditBook(ctx context.Context, id, newTitle, newAuthor string) error {
	newTitle = strings.TrimSpace(newTitle)
	newAuthor = strings.TrimSpace(newAuthor)
	if newTitle == "" || newAuthor == "" {
		m.log.Debug("edit book rejected", "id", id)
		return nil
	}
	book := m.findBook(id)
	if book == nil {
		return nil
	}
	if _, err := m.store.UpdateBook(ctx, id, newTitle, newAuthor); err != nil {
		m.log.Error("edit book", "id", id, "error", err)
		m.view.ShowError("Failed to update book. Please try again.")
		return err
	}
	book.Title = newTitle
	book.Author = newAuthor
	m.RenderLibraryView()
	return nil
}

// OnSearchSubmit queries the catalog and hands the results to the
// search-results view. Blank queries are a no-op.
func (m *Manager) OnSearchSubmit(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	results, err := m.search.Search(ctx, query)
	if err != nil {
		m.log.Error("search books", "query", query, "error", err)
		m.view.ShowError("Search failed. Please try again.")
		return err
	}
	m.log.Debug("search results", "query", query, "count", len(results))
	m.view.ShowSearchResults(results, SearchHandlers{
		OnAddBook: func(candidate Candidate) { _ = m.AddBook(m.ctx, candidate) },
	})
	return nil
}

// RenderLibraryView shows the collection in the list view.
func (m *Manager) RenderLibraryView() {
	m.view.ShowLibrary(m.Books(), LibraryHandlers{
		OnAddBook:    func(candidate Candidate) { _ = m.AddBook(m.ctx, candidate) },
		OnDeleteBook: func(id string) { _ = m.DeleteBook(m.ctx, id) },
		OnEditBook:   func(id, title, author string) { _ = m.EditBook(m.ctx, id, title, author) },
		OnNavigate:   m.navigate,
	})
}

// RenderBookView fetches a single book (annotations included) and shows the
// detail view. A missing identifier redirects to the library route instead
// of rendering a broken view.
func (m *Manager) RenderBookView(id string) {
	fetched, err := m.store.GetBook(m.ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			m.log.Warn("book not found, redirecting", "id", id)
			m.navigate(router.FragmentLibrary)
			return
		}
		m.log.Error("load book", "id", id, "error", err)
		m.view.ShowError("Failed to load book details.")
		return
	}

	book := m.findBook(id)
	if book != nil {
		book.Annotations = fetched.Annotations
	} else {
		book = &fetched
	}

	m.view.ShowBook(book, m.detailHandlers(book))
}

func (m *Manager) detailHandlers(book *Book) DetailHandlers {
	return DetailHandlers{
		OnNavigate:   m.navigate,
		OnRenderBook: m.RenderBookView,
		OnAddAnnotation: func(text, page string, typ AnnotationType) {
			if _, err := book.AddAnnotation(m.ctx, m.store, text, page, typ); err != nil {
				m.log.Error("add annotation", "book", book.ID, "error", err)
				m.view.ShowError("Failed to save annotation. Please try again.")
				return
			}
			m.RenderBookView(book.ID)
		},
		OnEditAnnotation: func(id, text, page string) {
			if err := book.EditAnnotation(m.ctx, m.store, id, text, page); err != nil {
				m.log.Error("edit annotation", "book", book.ID, "annotation", id, "error", err)
				m.view.ShowError("Failed to update annotation. Please try again.")
				return
			}
			m.RenderBookView(book.ID)
		},
		OnDeleteAnnotation: func(id string) {
			if err := book.DeleteAnnotation(m.ctx, m.store, id); err != nil {
				m.log.Error("delete annotation", "book", book.ID, "annotation", id, "error", err)
				m.view.ShowError("Failed to delete annotation. Please try again.")
				return
			}
			m.RenderBookView(book.ID)
		},
	}
}

func (m *Manager) navigate(fragment string) {
	if m.router != nil {
		m.router.Navigate(fragment)
	}
}

func (m *Manager) findBook(id string) *Book {
	idx := m.bookIndex(id)
	if idx < 0 {
		return nil
	}
	return m.books[idx]
}

func (m *Manager) bookIndex(id string) int {
	for i := range m.books {
		if m.books[i].ID == id {
			return i
		}
	}
	return -1
}
