// file: internal/metadata/factory_test.go
// version: 1.0.0
// guid: ef5817df-2546-4369-b9bf-2097fa463a1f

package metadata

import (
	"context"
	"testing"
	"time"

	"github.com/jdfalk/isbn-renamer/internal/config"
	"github.com/jdfalk/isbn-renamer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSourceFromConfigSingle(t *testing.T) {
	cfg := &config.Config{Provider: "googlebooks", HTTPTimeout: 5 * time.Second}

	src, err := NewSourceFromConfig(cfg)
	require.NoError(t, err)
	gb, ok := src.(*GoogleBooksClient)
	require.True(t, ok, "unthrottled single source expected, got %T", src)
	assert.Equal(t, 5*time.Second, gb.httpClient.Timeout)
}

func TestNewSourceFromConfigChainThrottled(t *testing.T) {
	cfg := &config.Config{Provider: "openlibrary,googlebooks", HTTPTimeout: time.Second, RequestsPerMinute: 60}

	src, err := NewSourceFromConfig(cfg)
	require.NoError(t, err)
	require.IsType(t, &Throttled{}, src)
	assert.Equal(t, "Open Library > Google Books", src.Name())
}

func TestNewSourceFromConfigUnknownProvider(t *testing.T) {
	_, err := NewSourceFromConfig(&config.Config{Provider: "worldcat"})
	assert.Error(t, err)
}

func TestNewSourceFromConfigEndToEnd(t *testing.T) {
	ol := testutil.MockMetadataServer(t, nil)
	gb := testutil.MockMetadataServer(t, map[string]string{"isbn%3A0131101630": testutil.GoogleBooksKAndR})

	cfg := &config.Config{
		Provider:           "openlibrary,googlebooks",
		OpenLibraryBaseURL: ol.URL,
		GoogleBooksBaseURL: gb.URL,
		HTTPTimeout:        5 * time.Second,
	}
	src, err := NewSourceFromConfig(cfg)
	require.NoError(t, err)

	meta, err := src.LookupISBN(context.Background(), "0131101630")
	require.NoError(t, err)
	assert.Equal(t, "The C Programming Language", meta.Title)
	assert.Equal(t, 1, ol.Hits())
	assert.Equal(t, 1, gb.Hits())
}
