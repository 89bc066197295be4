// file: internal/metadata/openlibrary.go
// version: 2.0.0
// guid: 1a2b3c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d

package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultOpenLibraryBaseURL is the public Open Library endpoint
const DefaultOpenLibraryBaseURL = "https://openlibrary.org"

// OpenLibraryClient resolves ISBNs against the Open Library edition API.
type OpenLibraryClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewOpenLibraryClient creates a new Open Library API client
func NewOpenLibraryClient(opts ClientOptions) *OpenLibraryClient {
	opts = opts.withDefaults(DefaultOpenLibraryBaseURL)
	return &OpenLibraryClient{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
	}
}

// NewOpenLibraryClientWithBaseURL creates a client with a custom base URL.
func NewOpenLibraryClientWithBaseURL(baseURL string) *OpenLibraryClient {
	return NewOpenLibraryClient(ClientOptions{BaseURL: baseURL})
}

// Name returns the display name for this metadata source.
func (c *OpenLibraryClient) Name() string {
	return "Open Library"
}

// olEdition is the subset of /isbn/{isbn}.json we read
type olEdition struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Publishers  []string `json:"publishers"`
	PublishDate string   `json:"publish_date"`
	ISBN10      []string `json:"isbn_10"`
	ISBN13      []string `json:"isbn_13"`
	Covers      []int    `json:"covers"`
	Languages   []struct {
		Key string `json:"key"`
	} `json:"languages"`
}

// LookupISBN fetches edition details by ISBN. The API redirects to the
// edition record; the HTTP client follows it.
func (c *OpenLibraryClient) LookupISBN(ctx context.Context, isbn string) (*BookMetadata, error) {
	apiURL := fmt.Sprintf("%s/isbn/%s.json", c.baseURL, url.PathEscape(isbn))

	var ed olEdition
	if err := getJSON(ctx, c.httpClient, c.userAgent, "Open Library", apiURL, &ed); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s (Open Library)", ErrNotFound, isbn)
		}
		return nil, err
	}
	if ed.Title == "" {
		return nil, fmt.Errorf("%w: %s (Open Library returned an edition without title)", ErrNotFound, isbn)
	}

	meta := &BookMetadata{
		Title: ed.Title,
		ISBN:  isbn,
		Year:  extractYear(ed.PublishDate),
	}
	if len(ed.Publishers) > 0 {
		meta.Publisher = ed.Publishers[0]
	}
	if len(ed.Covers) > 0 && ed.Covers[0] > 0 {
		meta.CoverURL = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", ed.Covers[0])
	}
	if len(ed.Languages) > 0 {
		meta.Language = languageFromKey(ed.Languages[0].Key)
	}
	return meta, nil
}

// languageFromKey turns "/languages/eng" into "eng"
func languageFromKey(key string) string {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '/' {
			return key[i+1:]
		}
	}
	return key
}
