// file: internal/organizer/renamer.go
// version: 2.1.0
// guid: 5e6f7a8b-9c0d-1e2f-3a4b-5c6d7e8f9a0b

package organizer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jdfalk/isbn-renamer/internal/fileops"
	"github.com/jdfalk/isbn-renamer/internal/models"
	"golang.org/x/text/unicode/norm"
)

// DefaultTemplate is the destination filename layout
const DefaultTemplate = "{title}, {publisher}, {year}{ext}"

var (
	// ErrMissingField means the record lacks a value the template needs
	ErrMissingField = errors.New("missing metadata field")
	// ErrUnknownPlaceholder means the template names a field we do not have
	ErrUnknownPlaceholder = errors.New("unknown template placeholder")
	// ErrDestinationExists means renaming would replace another file
	ErrDestinationExists = errors.New("destination already exists")
)

var placeholderRegex = regexp.MustCompile(`\{(\w+)\}`)

// Options configures a Renamer
type Options struct {
	Template     string
	BackupSuffix string
	// Overwrite allows replacing an existing destination file
	Overwrite bool
	// DryRun computes destinations without touching the filesystem
	DryRun bool
	// KeepDirectory places the new name next to the source instead of in
	// the working directory
	KeepDirectory bool
	// Out receives one confirmation line per rename
	Out io.Writer
}

// Renamer moves a file to a name built from its metadata
type Renamer struct {
	opts   Options
	backup fileops.OperationConfig
}

// NewRenamer creates a renamer, filling unset options with defaults
func NewRenamer(opts Options) *Renamer {
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}
	if opts.BackupSuffix == "" {
		opts.BackupSuffix = fileops.DefaultBackupSuffix
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Renamer{
		opts:   opts,
		backup: fileops.DefaultConfig(),
	}
}

// DryRun reports whether the renamer only plans
func (r *Renamer) DryRun() bool {
	return r.opts.DryRun
}

// DestinationName expands the template for rec. It returns only the file
// name; see Destination for the full path.
func (r *Renamer) DestinationName(rec models.Record) (string, error) {
	return expandTemplate(r.opts.Template, rec)
}

// Destination returns the path rec would be renamed to. By default this is
// the bare file name, relative to the working directory.
func (r *Renamer) Destination(rec models.Record) (string, error) {
	name, err := r.DestinationName(rec)
	if err != nil {
		return "", err
	}
	if r.opts.KeepDirectory {
		return filepath.Join(filepath.Dir(rec.Filename), name), nil
	}
	return name, nil
}

// Rename optionally backs the source up, then renames it to the templated
// destination and prints a confirmation line. The returned record has
// Rename set. In dry-run mode nothing on disk changes.
func (r *Renamer) Rename(rec models.Record, backup bool) (models.Record, error) {
	src := rec.Filename
	dst, err := r.Destination(rec)
	if err != nil {
		return rec, fmt.Errorf("failed to format destination for %s: %w", src, err)
	}

	result := rec
	if r.opts.DryRun {
		result.Rename = dst
		result.Planned = true
		return result, nil
	}

	if err := r.checkDestination(src, dst); err != nil {
		return rec, err
	}

	if backup {
		if _, err := fileops.Backup(src, r.opts.BackupSuffix, r.backup); err != nil {
			return rec, err
		}
	}

	if err := os.Rename(src, dst); err != nil {
		return rec, fmt.Errorf("failed to rename %s: %w", src, err)
	}

	fmt.Fprintf(r.opts.Out, "%s renamed to %s\n", src, dst)
	result.Rename = dst
	return result, nil
}

// checkDestination refuses to replace an existing file unless Overwrite is
// set. A destination that is the source itself (including a case-only
// change on case-insensitive filesystems) is allowed.
func (r *Renamer) checkDestination(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	dstInfo, err := os.Lstat(dst)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat destination %s: %w", dst, err)
	}
	if os.SameFile(srcInfo, dstInfo) || r.opts.Overwrite {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
}

// expandTemplate replaces {title}, {publisher}, {year}, {isbn} and {ext}.
// Every metadata placeholder used must be present on the record.
func expandTemplate(template string, rec models.Record) (string, error) {
	values := map[string]*string{
		"title":     rec.Title,
		"publisher": rec.Publisher,
		"year":      rec.Year,
		"isbn":      rec.ISBN,
	}
	ext := splitExt(filepath.Base(rec.Filename))

	var firstErr error
	result := placeholderRegex.ReplaceAllStringFunc(template, func(match string) string {
		key := match[1 : len(match)-1]
		if key == "ext" {
			return ext
		}
		value, known := values[key]
		switch {
		case !known:
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: %s", ErrUnknownPlaceholder, match)
			}
			return ""
		case value == nil:
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: %s", ErrMissingField, key)
			}
			return ""
		}
		return sanitizeFilename(*value)
	})
	if firstErr != nil {
		return "", firstErr
	}

	result = norm.NFC.String(strings.TrimSpace(result))
	if result == "" || result == "." || result == ".." {
		return "", fmt.Errorf("template %q produced an empty file name", template)
	}
	return result, nil
}

// splitExt returns the last extension of base including the dot. Leading
// dots do not start an extension, so ".profile" has none.
func splitExt(base string) string {
	stem := strings.TrimLeft(base, ".")
	return filepath.Ext(stem)
}

// sanitizeFilename keeps a metadata value from escaping the target directory.
// Separators and NUL become '_', other control characters are dropped.
func sanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == 0:
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(name)
}
