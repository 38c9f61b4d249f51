package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"folio/internal/library"
)

const isbn13 = "ISBN_13"

// volume models the slice of a Google Books item the client consumes.
type volume struct {
	VolumeInfo struct {
		Title         string   `json:"title"`
		Authors       []string `json:"authors"`
		Description   string   `json:"description"`
		PublishedDate string   `json:"publishedDate"`
		PageCount     int      `json:"pageCount"`
		Categories    []string `json:"categories"`
		ImageLinks    struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
		IndustryIdentifiers []struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		} `json:"industryIdentifiers"`
	} `json:"volumeInfo"`
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

// Client provides access to the book catalog for searches.
type Client struct {
	baseURL    string
	country    string
	maxResults int
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ library.Searcher = (*Client)(nil)

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

// WithCountry restricts results to a storefront country code.
func WithCountry(country string) Option {
	return func(c *Client) {
		c.country = strings.ToUpper(strings.TrimSpace(country))
	}
}

// WithMaxResults bounds how many results a single search returns.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithRateLimit caps outbound queries per second. Zero or negative disables
// limiting.
func WithRateLimit(rps int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1)
		} else {
			c.limiter = nil
		}
	}
}

// New creates a catalog client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxResults: 20,
		// No timeout: a catalog request runs until the provider answers
		// or the caller's context ends.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search queries the catalog and returns normalized candidates. A blank
// query returns an empty slice without touching the provider.
func (c *Client) Search(ctx context.Context, query string) ([]library.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []library.Candidate{}, nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	endpoint, err := url.Parse(c.baseURL + "/volumes")
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(c.maxResults))
	if c.country != "" {
		params.Set("country", c.country)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog search returned %d", resp.StatusCode)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	results := make([]library.Candidate, 0, len(payload.Items))
	for _, item := range payload.Items {
		results = append(results, normalize(item))
	}
	return results, nil
}

// normalize maps a provider volume into the canonical candidate shape.
func normalize(item volume) library.Candidate {
	info := item.VolumeInfo

	author := "Unknown Author"
	if len(info.Authors) > 0 {
		author = strings.Join(info.Authors, ", ")
	}

	var isbn string
	for _, ident := range info.IndustryIdentifiers {
		if ident.Type == isbn13 {
			isbn = ident.Identifier
			break
		}
	}

	categories := info.Categories
	if categories == nil {
		categories = []string{}
	}

	return library.Candidate{
		Title:         info.Title,
		Author:        author,
		Thumbnail:     info.ImageLinks.Thumbnail,
		Description:   info.Description,
		PublishedDate: info.PublishedDate,
		PageCount:     info.PageCount,
		Categories:    categories,
		ISBN:          isbn,
	}
}
