// file: internal/isbn/extract.go
// version: 1.1.0
// guid: 3f2de626-455f-4d85-84b7-13b4c3aab733

package isbn

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/jdfalk/isbn-renamer/internal/models"
)

// DefaultPattern finds nine digits followed by a digit or X. The greedy
// prefix makes the last such run in the name win.
const DefaultPattern = `.*(\d{9}[\dX])`

// Extractor pulls an ISBN-10 out of a filename
type Extractor struct {
	re *regexp.Regexp
}

// NewExtractor compiles pattern. The pattern must expose the identifier as
// its only capture group.
func NewExtractor(pattern string) (*Extractor, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid isbn pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("isbn pattern %q must have exactly one capture group, has %d", pattern, re.NumSubexp())
	}
	return &Extractor{re: re}, nil
}

// MustExtractor is NewExtractor for known-good patterns
func MustExtractor(pattern string) *Extractor {
	e, err := NewExtractor(pattern)
	if err != nil {
		panic(err)
	}
	return e
}

// Extract returns a record for filename with ISBN set when the pattern matches
// the base name. Directory names are never searched. The checksum is not
// validated.
func (e *Extractor) Extract(filename string) models.Record {
	rec := models.Record{Filename: filename}
	if filename == "" {
		return rec
	}
	if m := e.re.FindStringSubmatch(filepath.Base(filename)); m != nil && m[1] != "" {
		rec.ISBN = models.StringPtr(m[1])
	}
	return rec
}

// Pattern returns the source of the compiled pattern
func (e *Extractor) Pattern() string {
	return e.re.String()
}
