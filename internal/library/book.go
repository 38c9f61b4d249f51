package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AnnotationType classifies an annotation attached to a book.
type AnnotationType string

const (
	AnnotationQuote   AnnotationType = "quote"
	AnnotationNote    AnnotationType = "note"
	AnnotationInsight AnnotationType = "insight"
)

// ParseAnnotationType validates a user-supplied annotation type. The empty
// string maps to AnnotationNote.
func ParseAnnotationType(value string) (AnnotationType, error) {
	switch AnnotationType(strings.ToLower(strings.TrimSpace(value))) {
	case AnnotationQuote:
		return AnnotationQuote, nil
	case AnnotationNote, "":
		return AnnotationNote, nil
	case AnnotationInsight:
		return AnnotationInsight, nil
	default:
		return "", fmt.Errorf("annotation type %q (want quote, note, or insight)", value)
	}
}

// Annotation is a user-authored passage, note, or insight attached to a
// book, with an optional free-form page reference. The timestamp is set at
// creation and never changes; edits touch text and page only.
type Annotation struct {
	ID        string
	Text      string
	Page      string
	Type      AnnotationType
	Timestamp time.Time
}

// Candidate is book data that has not been persisted yet: a search result
// from the catalog or a manual entry. Optional fields hold explicit zero
// values rather than being omitted.
type Candidate struct {
	Title         string
	Author        string
	Thumbnail     string
	Description   string
	PublishedDate string
	PageCount     int
	Categories    []string
	ISBN          string
}

// Book is a tracked library entry plus its annotation sequence. The ID is a
// client-generated placeholder until the backend confirms the create, at
// which point the server-assigned identifier takes over.
type Book struct {
	ID            string
	Title         string
	Author        string
	Thumbnail     string
	Description   string
	PublishedDate string
	PageCount     int
	Categories    []string
	ISBN          string
	Annotations   []Annotation
}

// NewBook builds an in-memory Book from candidate data with a placeholder
// identifier.
func NewBook(candidate Candidate) *Book {
	return &Book{
		ID:            uuid.NewString(),
		Title:         candidate.Title,
		Author:        candidate.Author,
		Thumbnail:     candidate.Thumbnail,
		Description:   candidate.Description,
		PublishedDate: candidate.PublishedDate,
		PageCount:     candidate.PageCount,
		Categories:    append([]string{}, candidate.Categories...),
		ISBN:          candidate.ISBN,
	}
}

// AnnotationStore is the slice of the persistence client the Book entity
// needs for annotation mutations.
type AnnotationStore interface {
	CreateAnnotation(ctx context.Context, bookID string, candidate Annotation) (Annotation, error)
	UpdateAnnotation(ctx context.Context, id, text, page string) (Annotation, error)
	DeleteAnnotation(ctx context.Context, id string) error
}

// AddAnnotation persists a new annotation and appends it to the sequence on
// success. Empty trimmed text is a no-op. The returned annotation carries
// the server-assigned identifier.
func (b *Book) AddAnnotation(ctx context.Context, store AnnotationStore, text, page string, typ AnnotationType) (*Annotation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if typ == "" {
		typ = AnnotationNote
	}
	candidate := Annotation{
		ID:        uuid.NewString(),
		Text:      text,
		Page:      strings.TrimSpace(page),
		Type:      typ,
		Timestamp: time.Now(),
	}
	created, err := store.CreateAnnotation(ctx, b.ID, candidate)
	if err != nil {
		return nil, err
	}
	b.Annotations = append(b.Annotations, created)
	return &b.Annotations[len(b.Annotations)-1], nil
}

// EditAnnotation persists new text and page for an annotation, then applies
// them locally. Type and timestamp never change. A locally unknown
// identifier is a no-op.
func (b *Book) EditAnnotation(ctx context.Context, store AnnotationStore, id, newText, newPage string) error {
	idx := b.annotationIndex(id)
	if idx < 0 {
		return nil
	}
	if _, err := store.UpdateAnnotation(ctx, id, newText, newPage); err != nil {
		return err
	}
	b.Annotations[idx].Text = newText
	b.Annotations[idx].Page = newPage
	return nil
}

// DeleteAnnotation persists the delete and removes the annotation from the
// sequence. A locally unknown identifier is a no-op.
func (b *Book) DeleteAnnotation(ctx context.Context, store AnnotationStore, id string) error {
	idx := b.annotationIndex(id)
	if idx < 0 {
		return nil
	}
	if err := store.DeleteAnnotation(ctx, id); err != nil {
		return err
	}
	b.Annotations = append(b.Annotations[:idx], b.Annotations[idx+1:]...)
	return nil
}

// Annotation returns the annotation with the given identifier, or nil.
func (b *Book) Annotation(id string) *Annotation {
	idx := b.annotationIndex(id)
	if idx < 0 {
		return nil
	}
	return &b.Annotations[idx]
}

func (b *Book) annotationIndex(id string) int {
	for i := range b.Annotations {
		if b.Annotations[i].ID == id {
			return i
		}
	}
	return -1
}
