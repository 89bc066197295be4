// file: internal/metadata/chain.go
// version: 1.0.0
// guid: b683d14b-6431-4709-abb5-44b22893a13d

package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Chain asks each source in order and falls through to the next one only
// when the current source does not know the ISBN. Any other error stops the
// chain.
type Chain struct {
	sources []MetadataSource
}

// NewChain creates a chain over sources
func NewChain(sources ...MetadataSource) *Chain {
	return &Chain{sources: sources}
}

// Name joins the member names
func (c *Chain) Name() string {
	names := make([]string, 0, len(c.sources))
	for _, s := range c.sources {
		names = append(names, s.Name())
	}
	return strings.Join(names, " > ")
}

// LookupISBN returns the first source's answer
func (c *Chain) LookupISBN(ctx context.Context, isbn string) (*BookMetadata, error) {
	for _, s := range c.sources {
		meta, err := s.LookupISBN(ctx, isbn)
		if err == nil {
			return meta, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		slog.Debug("isbn not found, trying next source", "source", s.Name(), "isbn", isbn)
	}
	return nil, fmt.Errorf("%w: %s (no source had it)", ErrNotFound, isbn)
}
