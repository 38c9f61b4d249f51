package libraryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"folio/internal/library"
)

// APIError carries the backend's status code and error message for any
// non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// bookRecord mirrors the backend's book payload.
type bookRecord struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Author        string             `json:"author"`
	Thumbnail     string             `json:"thumbnail"`
	Description   string             `json:"description"`
	PublishedDate string             `json:"publishedDate"`
	PageCount     int                `json:"pageCount"`
	Categories    []string           `json:"categories"`
	ISBN          string             `json:"isbn"`
	Comments      []annotationRecord `json:"comments,omitempty"`
}

// annotationRecord mirrors the backend's comment payload. Older backends
// emit created_at instead of timestamp; both are accepted.
type annotationRecord struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Page      pageValue `json:"page"`
	Type      string    `json:"type"`
	Timestamp string    `json:"timestamp,omitempty"`
	CreatedAt string    `json:"created_at,omitempty"`
}

// pageValue tolerates both string and numeric page references on the wire.
type pageValue string

func (p *pageValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*p = ""
		return nil
	}
	if trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*p = pageValue(value)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return err
	}
	*p = pageValue(number.String())
	return nil
}

// Client provides access to the library persistence backend.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ library.Store = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithAPIToken attaches a bearer token to every request.
func WithAPIToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// New creates a backend client. Requests carry no client-side timeout;
// callers cancel via context.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("backend base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ListBooks fetches the full collection, annotations included.
func (c *Client) ListBooks(ctx context.Context) ([]library.Book, error) {
	var records []bookRecord
	if err := c.do(ctx, http.MethodGet, "/books", nil, &records); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	books := make([]library.Book, 0, len(records))
	for _, rec := range records {
		books = append(books, toBook(rec))
	}
	return books, nil
}

// GetBook fetches a single book by identifier.
func (c *Client) GetBook(ctx context.Context, id string) (library.Book, error) {
	var rec bookRecord
	if err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(id), nil, &rec); err != nil {
		return library.Book{}, fmt.Errorf("get book %s: %w", id, err)
	}
	return toBook(rec), nil
}

// CreateBook persists candidate data and returns the stored record with its
// server-assigned identifier.
func (c *Client) CreateBook(ctx context.Context, candidate library.Candidate) (library.Book, error) {
	body := bookRecord{
		Title:         candidate.Title,
		Author:        candidate.Author,
		Thumbnail:     candidate.Thumbnail,
		Description:   candidate.Description,
		PublishedDate: candidate.PublishedDate,
		PageCount:     candidate.PageCount,
		Categories:    candidate.Categories,
		ISBN:          candidate.ISBN,
	}
	if body.Categories == nil {
		body.Categories = []string{}
	}
	var rec bookRecord
	if err := c.do(ctx, http.MethodPost, "/books", body, &rec); err != nil {
		return library.Book{}, fmt.Errorf("create book: %w", err)
	}
	return toBook(rec), nil
}

// UpdateBook persists new title and author for an existing book.
func (c *Client) UpdateBook(ctx context.Context, id, title, author string) (library.Book, error) {
	body := struct {
		Title  string `json:"title"`
		Author string `json:"author"`
	}{Title: title, Author: author}
	var rec bookRecord
	if err := c.do(ctx, http.MethodPut, "/books/"+url.PathEscape(id), body, &rec); err != nil {
		return library.Book{}, fmt.Errorf("update book %s: %w", id, err)
	}
	return toBook(rec), nil
}

// DeleteBook removes a book and its annotations.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/books/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete book %s: %w", id, err)
	}
	return nil
}

// ListAnnotations fetches the annotation sequence for a book.
func (c *Client) ListAnnotations(ctx context.Context, bookID string) ([]library.Annotation, error) {
	var records []annotationRecord
	if err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(bookID)+"/comments", nil, &records); err != nil {
		return nil, fmt.Errorf("list annotations for %s: %w", bookID, err)
	}
	annotations := make([]library.Annotation, 0, len(records))
	for _, rec := range records {
		annotations = append(annotations, toAnnotation(rec))
	}
	return annotations, nil
}

// CreateAnnotation persists a new annotation and returns the stored record.
func (c *Client) CreateAnnotation(ctx context.Context, bookID string, candidate library.Annotation) (library.Annotation, error) {
	body := annotationRecord{
		ID:        candidate.ID,
		Text:      candidate.Text,
		Page:      pageValue(candidate.Page),
		Type:      string(candidate.Type),
		Timestamp: candidate.Timestamp.Format(time.RFC3339),
	}
	var rec annotationRecord
	if err := c.do(ctx, http.MethodPost, "/books/"+url.PathEscape(bookID)+"/comments", body, &rec); err != nil {
		return library.Annotation{}, fmt.Errorf("create annotation on %s: %w", bookID, err)
	}
	return toAnnotation(rec), nil
}

// UpdateAnnotation persists new text and page for an existing annotation.
func (c *Client) UpdateAnnotation(ctx context.Context, id, text, page string) (library.Annotation, error) {
	body := struct {
		Text string `json:"text"`
		Page string `json:"page"`
	}{Text: text, Page: page}
	var rec annotationRecord
	if err := c.do(ctx, http.MethodPut, "/comments/"+url.PathEscape(id), body, &rec); err != nil {
		return library.Annotation{}, fmt.Errorf("update annotation %s: %w", id, err)
	}
	return toAnnotation(rec), nil
}

// DeleteAnnotation removes an annotation.
func (c *Client) DeleteAnnotation(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/comments/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete annotation %s: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	message := strings.TrimSpace(payload.Error)
	if message == "" {
		message = "request failed"
	}
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: message}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", library.ErrNotFound, apiErr)
	}
	return apiErr
}

func toBook(rec bookRecord) library.Book {
	book := library.Book{
		ID:            rec.ID,
		Title:         rec.Title,
		Author:        rec.Author,
		Thumbnail:     rec.Thumbnail,
		Description:   rec.Description,
		PublishedDate: rec.PublishedDate,
		PageCount:     rec.PageCount,
		Categories:    rec.Categories,
		ISBN:          rec.ISBN,
	}
	if book.Categories == nil {
		book.Categories = []string{}
	}
	for _, comment := range rec.Comments {
		book.Annotations = append(book.Annotations, toAnnotation(comment))
	}
	return book
}

func toAnnotation(rec annotationRecord) library.Annotation {
	typ, err := library.ParseAnnotationType(rec.Type)
	if err != nil {
		typ = library.AnnotationNote
	}
	return library.Annotation{
		ID:        rec.ID,
		Text:      rec.Text,
		Page:      string(rec.Page),
		Type:      typ,
		Timestamp: parseTimestamp(rec),
	}
}

func parseTimestamp(rec annotationRecord) time.Time {
	raw := strings.TrimSpace(rec.Timestamp)
	if raw == "" {
		raw = strings.TrimSpace(rec.CreatedAt)
	}
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
