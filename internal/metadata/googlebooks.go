// file: internal/metadata/googlebooks.go
// version: 2.0.0
// guid: b2c3d4e5-f6a7-8b9c-0d1e-f2a3b4c5d6e7

package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultGoogleBooksBaseURL is the public Google Books endpoint
const DefaultGoogleBooksBaseURL = "https://www.googleapis.com/books/v1"

// GoogleBooksClient fetches metadata from the Google Books Volume API.
// No API key is required for basic searches (free tier, ~1000 req/day).
type GoogleBooksClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewGoogleBooksClient creates a new Google Books API client.
func NewGoogleBooksClient(opts ClientOptions) *GoogleBooksClient {
	opts = opts.withDefaults(DefaultGoogleBooksBaseURL)
	return &GoogleBooksClient{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    opts.BaseURL,
		userAgent:  opts.UserAgent,
	}
}

// NewGoogleBooksClientWithBaseURL creates a client with a custom base URL (for testing).
func NewGoogleBooksClientWithBaseURL(baseURL string) *GoogleBooksClient {
	return NewGoogleBooksClient(ClientOptions{BaseURL: baseURL})
}

// Name returns the display name for this metadata source.
func (c *GoogleBooksClient) Name() string {
	return "Google Books"
}

type googleBooksResponse struct {
	TotalItems int              `json:"totalItems"`
	Items      []googleBooksVol `json:"items"`
}

type googleBooksVol struct {
	VolumeInfo googleBooksVolumeInfo `json:"volumeInfo"`
}

type googleBooksVolumeInfo struct {
	Title               string                  `json:"title"`
	Authors             []string                `json:"authors"`
	Publisher           string                  `json:"publisher"`
	PublishedDate       string                  `json:"publishedDate"`
	IndustryIdentifiers []googleBooksIndustryID `json:"industryIdentifiers"`
	ImageLinks          *googleBooksImageLinks  `json:"imageLinks"`
	Language            string                  `json:"language"`
}

type googleBooksIndustryID struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type googleBooksImageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

// LookupISBN queries volumes with the isbn: keyword and returns the first hit.
func (c *GoogleBooksClient) LookupISBN(ctx context.Context, isbn string) (*BookMetadata, error) {
	q := url.QueryEscape("isbn:" + isbn)
	searchURL := fmt.Sprintf("%s/volumes?q=%s&maxResults=1", c.baseURL, q)

	var gbResp googleBooksResponse
	if err := getJSON(ctx, c.httpClient, c.userAgent, "Google Books", searchURL, &gbResp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s (Google Books)", ErrNotFound, isbn)
		}
		return nil, err
	}
	if len(gbResp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s (Google Books)", ErrNotFound, isbn)
	}

	vi := gbResp.Items[0].VolumeInfo
	meta := &BookMetadata{
		Title:     vi.Title,
		Publisher: vi.Publisher,
		Language:  vi.Language,
		ISBN:      isbn,
	}
	if len(vi.Authors) > 0 {
		meta.Author = strings.Join(vi.Authors, ", ")
	}
	if len(vi.PublishedDate) >= 4 {
		meta.Year = vi.PublishedDate[:4]
	}
	for _, id := range vi.IndustryIdentifiers {
		if id.Type == "ISBN_10" {
			meta.ISBN = id.Identifier
		}
	}
	if vi.ImageLinks != nil && vi.ImageLinks.Thumbnail != "" {
		meta.CoverURL = vi.ImageLinks.Thumbnail
	}
	return meta, nil
}
