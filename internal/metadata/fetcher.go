// file: internal/metadata/fetcher.go
// version: 1.0.0
// guid: a09af4e7-62ec-451b-944e-70782d660860

package metadata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jdfalk/isbn-renamer/internal/metrics"
	"github.com/jdfalk/isbn-renamer/internal/models"
)

// Fetcher enriches records with title, publisher and year
type Fetcher struct {
	source MetadataSource
}

// NewFetcher creates a fetcher backed by source
func NewFetcher(source MetadataSource) *Fetcher {
	return &Fetcher{source: source}
}

// Source returns the backing source
func (f *Fetcher) Source() MetadataSource {
	return f.source
}

// Fetch returns rec unchanged when it has no ISBN. Otherwise it performs one
// lookup and returns a copy of rec carrying the looked-up fields. Lookup
// errors are returned as-is (wrapped); the caller decides to abort.
func (f *Fetcher) Fetch(ctx context.Context, rec models.Record) (models.Record, error) {
	if !rec.HasISBN() {
		return rec, nil
	}

	isbn := rec.ISBNValue()
	name := f.source.Name()

	start := time.Now()
	meta, err := f.source.LookupISBN(ctx, isbn)
	metrics.ObserveLookupDuration(name, time.Since(start))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.IncLookup(name, metrics.LookupNotFound)
		} else {
			metrics.IncLookup(name, metrics.LookupError)
		}
		return rec, fmt.Errorf("metadata lookup for isbn %s failed: %w", isbn, err)
	}
	if meta == nil {
		metrics.IncLookup(name, metrics.LookupError)
		return rec, fmt.Errorf("metadata lookup for isbn %s returned no result", isbn)
	}
	metrics.IncLookup(name, metrics.LookupOK)

	result := rec
	result.Title = models.StringPtr(meta.Title)
	result.Publisher = models.StringPtr(meta.Publisher)
	result.Year = models.StringPtr(meta.Year)
	return result, nil
}
