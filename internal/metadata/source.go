// file: internal/metadata/source.go
// version: 2.0.0
// guid: a1b2c3d4-e5f6-7a8b-9c0d-e1f2a3b4c5d6

package metadata

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a source has no record for an ISBN
var ErrNotFound = errors.New("isbn not found")

// MetadataSource is a pluggable bibliographic lookup service.
type MetadataSource interface {
	Name() string
	LookupISBN(ctx context.Context, isbn string) (*BookMetadata, error)
}

// BookMetadata is what a source knows about one edition
type BookMetadata struct {
	Title     string
	Author    string
	Publisher string
	Year      string
	ISBN      string
	Language  string
	CoverURL  string
}
