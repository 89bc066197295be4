// file: internal/testutil/mock_services.go
// version: 2.0.0
// guid: c3d4e5f6-a7b8-9012-cdef-345678901abc

package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// MockServer is an httptest.Server that counts the requests it served
type MockServer struct {
	*httptest.Server
	hits atomic.Int64
}

// Hits returns the number of requests received so far
func (m *MockServer) Hits() int {
	return int(m.hits.Load())
}

// MockMetadataServer creates a server that mimics a bibliographic API.
// The responses map keys are matched against the request URL using Contains;
// unmatched requests get a 404. The server is closed on test cleanup.
func MockMetadataServer(t *testing.T, responses map[string]string) *MockServer {
	t.Helper()
	m := &MockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.hits.Add(1)
		for pattern, body := range responses {
			if strings.Contains(r.URL.String(), pattern) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
				return
			}
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// MockFailingServer answers every request with status
func MockFailingServer(t *testing.T, status int) *MockServer {
	t.Helper()
	m := &MockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.hits.Add(1)
		w.WriteHeader(status)
	}))
	t.Cleanup(m.Close)
	return m
}

// OpenLibraryDesignPatterns is the /isbn/0201633612.json edition record.
const OpenLibraryDesignPatterns = `{
	"title": "Design Patterns",
	"subtitle": "elements of reusable object-oriented software",
	"publishers": ["Addison-Wesley"],
	"publish_date": "1994",
	"isbn_10": ["0201633612"],
	"covers": [6645946],
	"languages": [{"key": "/languages/eng"}]
}`

// OpenLibraryKAndR is the /isbn/0131101630.json edition record.
const OpenLibraryKAndR = `{
	"title": "The C Programming Language",
	"publishers": ["Prentice Hall"],
	"publish_date": "March 22, 1988",
	"isbn_10": ["0131101630"]
}`

// GoogleBooksKAndR is a volumes search response for isbn:0131101630.
const GoogleBooksKAndR = `{
	"totalItems": 1,
	"items": [{
		"volumeInfo": {
			"title": "The C Programming Language",
			"authors": ["Brian W. Kernighan", "Dennis M. Ritchie"],
			"publisher": "Prentice Hall",
			"publishedDate": "1988-03-22",
			"language": "en",
			"industryIdentifiers": [
				{"type": "ISBN_13", "identifier": "9780131101630"},
				{"type": "ISBN_10", "identifier": "0131101630"}
			],
			"imageLinks": {"thumbnail": "http://example.com/kr.jpg"}
		}
	}]
}`

// GoogleBooksEmptyResponse returns no results.
const GoogleBooksEmptyResponse = `{"kind": "books#volumes", "totalItems": 0}`
