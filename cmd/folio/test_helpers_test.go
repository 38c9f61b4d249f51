package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fakeBackend is an in-memory stand-in for the library persistence
// backend, serving the same routes and JSON shapes.
type fakeBackend struct {
	mu     sync.Mutex
	nextID int
	books  []backendBook
}

type backendBook struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Author        string           `json:"author"`
	Thumbnail     string           `json:"thumbnail"`
	Description   string           `json:"description"`
	PublishedDate string           `json:"publishedDate"`
	PageCount     int              `json:"pageCount"`
	Categories    []string         `json:"categories"`
	ISBN          string           `json:"isbn"`
	Comments      []backendComment `json:"comments"`
}

type backendComment struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Page      string `json:"page"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /books", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeBackendJSON(w, http.StatusOK, b.books)
	})
	mux.HandleFunc("POST /books", func(w http.ResponseWriter, r *http.Request) {
		var book backendBook
		if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
			writeBackendError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		b.nextID++
		book.ID = fmt.Sprintf("b-%d", b.nextID)
		book.Comments = nil
		b.books = append(b.books, book)
		writeBackendJSON(w, http.StatusCreated, book)
	})
	mux.HandleFunc("GET /books/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if book := b.find(r.PathValue("id")); book != nil {
			writeBackendJSON(w, http.StatusOK, book)
			return
		}
		writeBackendError(w, http.StatusNotFound, "book not found")
	})
	mux.HandleFunc("PUT /books/{id}", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Title  string `json:"title"`
			Author string `json:"author"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeBackendError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		book := b.find(r.PathValue("id"))
		if book == nil {
			writeBackendError(w, http.StatusNotFound, "book not found")
			return
		}
		book.Title = payload.Title
		book.Author = payload.Author
		writeBackendJSON(w, http.StatusOK, book)
	})
	mux.HandleFunc("DELETE /books/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.books {
			if b.books[i].ID == r.PathValue("id") {
				b.books = append(b.books[:i], b.books[i+1:]...)
				writeBackendJSON(w, http.StatusOK, map[string]bool{"deleted": true})
				return
			}
		}
		writeBackendError(w, http.StatusNotFound, "book not found")
	})
	mux.HandleFunc("GET /books/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		book := b.find(r.PathValue("id"))
		if book == nil {
			writeBackendError(w, http.StatusNotFound, "book not found")
			return
		}
		comments := book.Comments
		if comments == nil {
			comments = []backendComment{}
		}
		writeBackendJSON(w, http.StatusOK, comments)
	})
	mux.HandleFunc("POST /books/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		var comment backendComment
		if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
			writeBackendError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		book := b.find(r.PathValue("id"))
		if book == nil {
			writeBackendError(w, http.StatusNotFound, "book not found")
			return
		}
		b.nextID++
		comment.ID = fmt.Sprintf("c-%d", b.nextID)
		book.Comments = append(book.Comments, comment)
		writeBackendJSON(w, http.StatusCreated, comment)
	})
	mux.HandleFunc("PUT /comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Text string `json:"text"`
			Page string `json:"page"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeBackendError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if comment := b.findComment(r.PathValue("id")); comment != nil {
			comment.Text = payload.Text
			comment.Page = payload.Page
			writeBackendJSON(w, http.StatusOK, comment)
			return
		}
		writeBackendError(w, http.StatusNotFound, "annotation not found")
	})
	mux.HandleFunc("DELETE /comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.books {
			for j := range b.books[i].Comments {
				if b.books[i].Comments[j].ID == r.PathValue("id") {
					b.books[i].Comments = append(b.books[i].Comments[:j], b.books[i].Comments[j+1:]...)
					writeBackendJSON(w, http.StatusOK, map[string]bool{"deleted": true})
					return
				}
			}
		}
		writeBackendError(w, http.StatusNotFound, "annotation not found")
	})
	return mux
}

func (b *fakeBackend) find(id string) *backendBook {
	for i := range b.books {
		if b.books[i].ID == id {
			return &b.books[i]
		}
	}
	return nil
}

func (b *fakeBackend) findComment(id string) *backendComment {
	for i := range b.books {
		for j := range b.books[i].Comments {
			if b.books[i].Comments[j].ID == id {
				return &b.books[i].Comments[j]
			}
		}
	}
	return nil
}

func writeBackendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBackendError(w http.ResponseWriter, status int, message string) {
	writeBackendJSON(w, status, map[string]string{"error": message})
}

type cliTestEnv struct {
	backend    *fakeBackend
	configPath string
	baseDir    string
}

// setupCLITestEnv starts a fake backend and catalog and writes a config
// file pointing at them.
func setupCLITestEnv(t *testing.T, catalogResponse string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))

	backend := &fakeBackend{}
	backendServer := httptest.NewServer(backend.handler())
	t.Cleanup(backendServer.Close)

	if catalogResponse == "" {
		catalogResponse = `{"items":[]}`
	}
	catalogServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogResponse))
	}))
	t.Cleanup(catalogServer.Close)

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[backend]
base_url = %q

[catalog]
base_url = %q
max_results = 5
requests_per_second = 0

[logging]
format = "console"
level = "error"

[paths]
log_dir = %q
state_dir = %q
`,
		backendServer.URL,
		catalogServer.URL,
		filepath.Join(base, "logs"),
		filepath.Join(base, "state"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		backend:    backend,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// runCLIWithInput runs a command with the given stdin, for confirmation
// prompts.
func runCLIWithInput(t *testing.T, env *cliTestEnv, input string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
