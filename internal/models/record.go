// file: internal/models/record.go
// version: 1.1.0
// guid: a9bcca09-6930-4fcc-a79a-580246a7b4d1

package models

// Stage names the last pipeline step a record went through
type Stage string

const (
	StageExtracted Stage = "extracted"
	StageFetched   Stage = "fetched"
	StageRenamed   Stage = "renamed"
	// StagePlanned is a dry-run result: Rename holds the destination but
	// the file was not moved
	StagePlanned   Stage = "planned"
)

// Record is the per-file value threaded through extraction, metadata fetch
// and rename. Each step returns a new Record instead of mutating its input.
type Record struct {
	Filename  string  `json:"filename" yaml:"filename"`
	ISBN      *string `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	Title     *string `json:"title,omitempty" yaml:"title,omitempty"`
	Publisher *string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Year      *string `json:"year,omitempty" yaml:"year,omitempty"`
	Rename    string  `json:"rename,omitempty" yaml:"rename,omitempty"`
	Planned   bool    `json:"planned,omitempty" yaml:"planned,omitempty"`
}

// HasISBN reports whether the extractor found an identifier
func (r Record) HasISBN() bool {
	return r.ISBN != nil
}

// ISBNValue returns the identifier or an empty string
func (r Record) ISBNValue() string {
	return stringOrEmpty(r.ISBN)
}

// Stage reports how far the record has progressed
func (r Record) Stage() Stage {
	switch {
	case r.Rename != "" && r.Planned:
		return StagePlanned
	case r.Rename != "":
		return StageRenamed
	case r.Title != nil || r.Publisher != nil || r.Year != nil:
		return StageFetched
	default:
		return StageExtracted
	}
}

// StringPtr returns a pointer to a copy of s
func StringPtr(s string) *string {
	return &s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
