package main

import (
	"strings"
	"testing"
)

func TestListEmptyLibrary(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := runCLI(t, env, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "Your library is empty")
}

func TestAddListShowRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := runCLI(t, env, "add", "--title", "Ulysses", "--author", "James Joyce", "--pages", "732")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, `Added "Ulysses" by James Joyce`)

	if len(env.backend.books) != 1 {
		t.Fatalf("expected 1 book in backend, got %d", len(env.backend.books))
	}
	id := env.backend.books[0].ID

	out, _, err = runCLI(t, env, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "Ulysses")
	requireContains(t, out, "James Joyce")

	out, _, err = runCLI(t, env, "show", id)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "Ulysses")
	requireContains(t, out, "732 pages")
	requireContains(t, out, "Annotations (0)")
}

func TestAddRejectsBlankFields(t *testing.T) {
	env := setupCLITestEnv(t, "")

	_, _, err := runCLI(t, env, "add", "--title", "   ", "--author", "James Joyce")
	if err == nil {
		t.Fatal("expected error for blank title")
	}
	if len(env.backend.books) != 0 {
		t.Fatalf("blank title must not reach the backend, got %d books", len(env.backend.books))
	}
}

func TestShowUnknownBook(t *testing.T) {
	env := setupCLITestEnv(t, "")

	_, _, err := runCLI(t, env, "show", "missing")
	if err == nil || !strings.Contains(err.Error(), "no book with id") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestEditFillsMissingFieldFromCurrent(t *testing.T) {
	env := setupCLITestEnv(t, "")
	if _, _, err := runCLI(t, env, "add", "--title", "Ulises", "--author", "James Joyce"); err != nil {
		t.Fatalf("add: %v", err)
	}
	id := env.backend.books[0].ID

	out, _, err := runCLI(t, env, "edit", id, "--title", "Ulysses")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	requireContains(t, out, `Updated "Ulysses" by James Joyce`)

	book := env.backend.books[0]
	if book.Title != "Ulysses" || book.Author != "James Joyce" {
		t.Fatalf("unexpected backend record: %#v", book)
	}
}

func TestEditRequiresAField(t *testing.T) {
	env := setupCLITestEnv(t, "")
	if _, _, err := runCLI(t, env, "add", "--title", "Ulysses", "--author", "James Joyce"); err != nil {
		t.Fatalf("add: %v", err)
	}
	id := env.backend.books[0].ID

	if _, _, err := runCLI(t, env, "edit", id); err == nil {
		t.Fatal("expected error when no field flags are passed")
	}
}

func TestRemoveWithConfirmation(t *testing.T) {
	env := setupCLITestEnv(t, "")
	if _, _, err := runCLI(t, env, "add", "--title", "Ulysses", "--author", "James Joyce"); err != nil {
		t.Fatalf("add: %v", err)
	}
	id := env.backend.books[0].ID

	// Declining the prompt keeps the book.
	out, _, err := runCLIWithInput(t, env, "n\n", "rm", id)
	if err != nil {
		t.Fatalf("rm declined: %v", err)
	}
	requireContains(t, out, "Aborted.")
	if len(env.backend.books) != 1 {
		t.Fatalf("declined delete must keep the book, got %d", len(env.backend.books))
	}

	out, _, err = runCLIWithInput(t, env, "y\n", "rm", id)
	if err != nil {
		t.Fatalf("rm confirmed: %v", err)
	}
	requireContains(t, out, `Deleted "Ulysses"`)
	if len(env.backend.books) != 0 {
		t.Fatalf("expected empty backend, got %d books", len(env.backend.books))
	}
}

func TestRemoveWithYesFlagSkipsPrompt(t *testing.T) {
	env := setupCLITestEnv(t, "")
	if _, _, err := runCLI(t, env, "add", "--title", "Ulysses", "--author", "James Joyce"); err != nil {
		t.Fatalf("add: %v", err)
	}
	id := env.backend.books[0].ID

	out, _, err := runCLI(t, env, "rm", id, "--yes")
	if err != nil {
		t.Fatalf("rm --yes: %v", err)
	}
	requireContains(t, out, "Deleted")
	if len(env.backend.books) != 0 {
		t.Fatalf("expected empty backend, got %d books", len(env.backend.books))
	}
}
