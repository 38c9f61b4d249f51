package library_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"folio/internal/library"
)

type fakeAnnotationStore struct {
	createCalls int
	updateCalls int
	deleteCalls int

	failCreate bool
	failUpdate bool
	failDelete bool

	lastBookID    string
	lastCandidate library.Annotation
}

var errStore = errors.New("backend unavailable")

func (s *fakeAnnotationStore) CreateAnnotation(_ context.Context, bookID string, candidate library.Annotation) (library.Annotation, error) {
	s.createCalls++
	if s.failCreate {
		return library.Annotation{}, errStore
	}
	s.lastBookID = bookID
	s.lastCandidate = candidate
	created := candidate
	created.ID = "srv-" + candidate.ID
	return created, nil
}

func (s *fakeAnnotationStore) UpdateAnnotation(_ context.Context, id, text, page string) (library.Annotation, error) {
	s.updateCalls++
	if s.failUpdate {
		return library.Annotation{}, errStore
	}
	return library.Annotation{ID: id, Text: text, Page: page}, nil
}

func (s *fakeAnnotationStore) DeleteAnnotation(_ context.Context, id string) error {
	s.deleteCalls++
	if s.failDelete {
		return errStore
	}
	return nil
}

func TestAddAnnotationAppendsConfirmedRecord(t *testing.T) {
	store := &fakeAnnotationStore{}
	book := library.NewBook(library.Candidate{Title: "Ulysses", Author: "James Joyce"})

	before := time.Now()
	created, err := book.AddAnnotation(context.Background(), store, "A great line", "42", library.AnnotationQuote)
	if err != nil {
		t.Fatalf("AddAnnotation returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected created annotation")
	}

	if len(book.Annotations) != 1 {
		t.Fatalf("expected one annotation, got %d", len(book.Annotations))
	}
	got := book.Annotations[0]
	if got.Type != library.AnnotationQuote {
		t.Fatalf("unexpected type: %q", got.Type)
	}
	if got.Page != "42" {
		t.Fatalf("unexpected page: %q", got.Page)
	}
	if got.Text != "A great line" {
		t.Fatalf("unexpected text: %q", got.Text)
	}
	if got.Timestamp.Before(before) || got.Timestamp.After(time.Now()) {
		t.Fatalf("timestamp not set at call time: %v", got.Timestamp)
	}
	if store.lastBookID != book.ID {
		t.Fatalf("annotation created against wrong book: %q", store.lastBookID)
	}
	if got.ID == store.lastCandidate.ID {
		t.Fatal("expected server-assigned identifier to replace the placeholder")
	}
}

func TestAddAnnotationEmptyTextIsNoOp(t *testing.T) {
	store := &fakeAnnotationStore{}
	book := library.NewBook(library.Candidate{Title: "T", Author: "A"})

	created, err := book.AddAnnotation(context.Background(), store, "   ", "1", library.AnnotationNote)
	if err != nil {
		t.Fatalf("AddAnnotation returned error: %v", err)
	}
	if created != nil {
		t.Fatal("expected no annotation for blank text")
	}
	if store.createCalls != 0 {
		t.Fatalf("expected no backend call, got %d", store.createCalls)
	}
	if len(book.Annotations) != 0 {
		t.Fatalf("collection changed: %v", book.Annotations)
	}
}

func TestAddAnnotationDefaultsToNote(t *testing.T) {
	store := &fakeAnnotationStore{}
	book := library.NewBook(library.Candidate{Title: "T", Author: "A"})

	created, err := book.AddAnnotation(context.Background(), store, "text", "", "")
	if err != nil {
		t.Fatalf("AddAnnotation returned error: %v", err)
	}
	if created.Type != library.AnnotationNote {
		t.Fatalf("unexpected default type: %q", created.Type)
	}
}

func TestAddAnnotationBackendFailureLeavesSequenceUnchanged(t *testing.T) {
	store := &fakeAnnotationStore{failCreate: true}
	book := library.NewBook(library.Candidate{Title: "T", Author: "A"})

	if _, err := book.AddAnnotation(context.Background(), store, "text", "", library.AnnotationNote); err == nil {
		t.Fatal("expected error")
	}
	if len(book.Annotations) != 0 {
		t.Fatalf("sequence mutated despite failure: %v", book.Annotations)
	}
}

func TestEditAnnotationKeepsTypeAndTimestamp(t *testing.T) {
	store := &fakeAnnotationStore{}
	book := library.NewBook(library.Candidate{Title: "T", Author: "A"})
	created, err := book.AddAnnotation(context.Background(), store, "original", "1", library.AnnotationInsight)
	if err != nil {
		t.Fatalf("AddAnnotation returned error: %v", err)
	}
	stamp := created.Timestamp

	if err := book.EditAnnotation(context.Background(), store, created.ID, "revised", "2"); err != nil {
		t.Fatalf("EditAnnotation returned error: %v", err)
	}

	got := book.Annotations[0]
	if got.Text != "revised" || got.Page != "2" {
		t.Fatalf("edit not applied: %+v", got)
	}
	if got.Type != library.AnnotationInsight {
		t.Fatalf("type changed: %q", got.Type)
	}
	if !got.Timestamp.Equal(stamp) {
		t.Fatalf("timestamp changed: %v -> %v", stamp, got.Timestamp)
	}
}

func TestEditAnnotationBackendFailureLeavesFieldsUnchanged(t *testing.T) {
	store := &fakeAnnotationStore{}
	book := library.NewBook(library.Candidate{Title: "T", Author: "A"})
	created, _ := book.AddAnnotation(context.Background(), store, "original", "1", library.AnnotationNote)

	store.failUpdate = true
	if err := book.EditAnnotation(context.Background(), store, created.ID, "revised", "2"); err == nil {
		t.Fatal("expected error")
	}
	if book.Annotations[0].Text != "original" || book.Annotations[0].Page != "1" {
		t.Fatalf("fields mutated despite failure: %+v", book.Annotations[0])
	}
}

func TestDeleteAnnotationRemovesEntry(t *testing.T) {
	store := &fakeAnnotationStore{}
	book := library.NewBook(library.Candidate{Title: "T", Author: "A"})
	first, _ := book.AddAnnotation(context.Background(), store, "one", "", library.AnnotationNote)
	second, _ := book.AddAnnotation(context.Background(), store, "two", "", library.AnnotationNote)

	if err := book.DeleteAnnotation(context.Background(), store, first.ID); err != nil {
		t.Fatalf("DeleteAnnotation returned error: %v", err)
	}
	if len(book.Annotations) != 1 || book.Annotations[0].ID != second.ID {
		t.Fatalf("unexpected sequence after delete: %v", book.Annotations)
	}
}

func TestDeleteAnnotationUnknownIDIsNoOp(t *testing.T) {
	store := &fakeAnnotationStore{}
	book := library.NewBook(library.Candidate{Title: "T", Author: "A"})
	if _, err := book.AddAnnotation(context.Background(), store, "one", "", library.AnnotationNote); err != nil {
		t.Fatalf("AddAnnotation returned error: %v", err)
	}
	deletesBefore := store.deleteCalls

	if err := book.DeleteAnnotation(context.Background(), store, "missing"); err != nil {
		t.Fatalf("DeleteAnnotation returned error: %v", err)
	}
	if len(book.Annotations) != 1 {
		t.Fatalf("sequence changed: %v", book.Annotations)
	}
	if store.deleteCalls != deletesBefore {
		t.Fatal("expected no backend call for unknown identifier")
	}
}

func TestParseAnnotationType(t *testing.T) {
	cases := []struct {
		input   string
		want    library.AnnotationType
		wantErr bool
	}{
		{input: "quote", want: library.AnnotationQuote},
		{input: "Note", want: library.AnnotationNote},
		{input: " INSIGHT ", want: library.AnnotationInsight},
		{input: "", want: library.AnnotationNote},
		{input: "highlight", wantErr: true},
	}
	for _, tc := range cases {
		got, err := library.ParseAnnotationType(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseAnnotationType(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAnnotationType(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseAnnotationType(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
