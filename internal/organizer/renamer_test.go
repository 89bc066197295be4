// file: internal/organizer/renamer_test.go
// version: 2.1.0
// guid: 8b9c0d1e-2f3a-4b5c-6d7e-8f9a0b1c2d3e

package organizer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jdfalk/isbn-renamer/internal/fileops"
	"github.com/jdfalk/isbn-renamer/internal/models"
	"github.com/jdfalk/isbn-renamer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetched(filename, title, publisher, year string) models.Record {
	return models.Record{
		Filename:  filename,
		ISBN:      models.StringPtr("0201633610"),
		Title:     models.StringPtr(title),
		Publisher: models.StringPtr(publisher),
		Year:      models.StringPtr(year),
	}
}

func TestDestinationName(t *testing.T) {
	r := NewRenamer(Options{})

	name, err := r.DestinationName(fetched("book9780201633610.pdf", "Design Patterns", "Addison-Wesley", "1994"))
	require.NoError(t, err)
	assert.Equal(t, "Design Patterns, Addison-Wesley, 1994.pdf", name)
}

func TestDestinationNameExtensions(t *testing.T) {
	r := NewRenamer(Options{})

	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{"single extension", "x0201633610.epub", "T, P, 2000.epub"},
		{"only last segment kept", "x0201633610.tar.gz", "T, P, 2000.gz"},
		{"no extension", "x0201633610", "T, P, 2000"},
		{"dot in directory only", "some.dir/0201633610", "T, P, 2000"},
		{"leading dot is not an extension", ".0201633610", "T, P, 2000"},
		{"hidden with extension", ".0201633610.pdf", "T, P, 2000.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.DestinationName(fetched(tt.filename, "T", "P", "2000"))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDestinationNameMissingFields(t *testing.T) {
	r := NewRenamer(Options{})

	rec := models.Record{Filename: "notes0201633610.txt", ISBN: models.StringPtr("0201633610")}
	_, err := r.DestinationName(rec)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.ErrorContains(t, err, "title")

	rec.Title = models.StringPtr("T")
	rec.Publisher = models.StringPtr("P")
	_, err = r.DestinationName(rec)
	assert.ErrorContains(t, err, "year")
}

func TestDestinationNameEmptyValuesAllowed(t *testing.T) {
	r := NewRenamer(Options{})
	got, err := r.DestinationName(fetched("a0201633610.pdf", "Untitled", "", "1999"))
	require.NoError(t, err)
	assert.Equal(t, "Untitled, , 1999.pdf", got)
}

func TestDestinationNameCustomTemplate(t *testing.T) {
	r := NewRenamer(Options{Template: "{year} - {title} [{isbn}]{ext}"})
	got, err := r.DestinationName(fetched("a0201633610.pdf", "Design Patterns", "AW", "1994"))
	require.NoError(t, err)
	assert.Equal(t, "1994 - Design Patterns [0201633610].pdf", got)

	r = NewRenamer(Options{Template: "{author}{ext}"})
	_, err = r.DestinationName(fetched("a0201633610.pdf", "T", "P", "1"))
	assert.ErrorIs(t, err, ErrUnknownPlaceholder)

	r = NewRenamer(Options{Template: "{ext}"})
	_, err = r.DestinationName(fetched("a0201633610", "T", "P", "1"))
	assert.ErrorContains(t, err, "empty file name")
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"valid", "Design Patterns", "Design Patterns"},
		{"colon kept", "Refactoring: Improving the Design", "Refactoring: Improving the Design"},
		{"slash replaced", "TCP/IP Illustrated", "TCP_IP Illustrated"},
		{"backslash replaced", `C:\Windows`, "C:_Windows"},
		{"nul replaced, control chars stripped", "hello\x00world\x01\n", "hello_world"},
		{"trimmed", "  spaced  ", "spaced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeFilename(tt.input))
		})
	}
}

func TestDestinationNameNormalizesUnicode(t *testing.T) {
	r := NewRenamer(Options{})
	// "e" followed by a combining acute accent
	got, err := r.DestinationName(fetched("a0201633610.pdf", "Les Mise\u0301rables", "Gallimard", "1862"))
	require.NoError(t, err)
	assert.Equal(t, "Les Mis\u00e9rables, Gallimard, 1862.pdf", got)
}

func TestRename(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.AddFile("book9780201633610.pdf", "gof")
	ws.Chdir()

	var out bytes.Buffer
	r := NewRenamer(Options{Out: &out})

	result, err := r.Rename(fetched("book9780201633610.pdf", "Design Patterns", "Addison-Wesley", "1994"), false)
	require.NoError(t, err)

	assert.Equal(t, "Design Patterns, Addison-Wesley, 1994.pdf", result.Rename)
	assert.Equal(t, models.StageRenamed, result.Stage())
	assert.Equal(t, "gof", ws.Read("Design Patterns, Addison-Wesley, 1994.pdf"))
	assert.False(t, ws.Exists("book9780201633610.pdf"))
	assert.False(t, ws.Exists("book9780201633610.pdf.bak"))
	assert.Equal(t, "book9780201633610.pdf renamed to Design Patterns, Addison-Wesley, 1994.pdf\n", out.String())
}

func TestRenameMovesIntoWorkingDirectory(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.AddFile("sub/book9780201633610.pdf", "gof")
	ws.Chdir()

	var out bytes.Buffer
	r := NewRenamer(Options{Out: &out})
	result, err := r.Rename(fetched(filepath.Join("sub", "book9780201633610.pdf"), "Design Patterns", "Addison-Wesley", "1994"), false)
	require.NoError(t, err)

	assert.Equal(t, "Design Patterns, Addison-Wesley, 1994.pdf", result.Rename)
	assert.Equal(t, "gof", ws.Read("Design Patterns, Addison-Wesley, 1994.pdf"))
	assert.False(t, ws.Exists(filepath.Join("sub", "Design Patterns, Addison-Wesley, 1994.pdf")))
	assert.False(t, ws.Exists(filepath.Join("sub", "book9780201633610.pdf")))
}

func TestRenameKeepDirectory(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	src := ws.AddFile("sub/book9780201633610.pdf", "gof")

	var out bytes.Buffer
	r := NewRenamer(Options{KeepDirectory: true, Out: &out})
	result, err := r.Rename(fetched(src, "Design Patterns", "Addison-Wesley", "1994"), false)
	require.NoError(t, err)

	expected := ws.Path(filepath.Join("sub", "Design Patterns, Addison-Wesley, 1994.pdf"))
	assert.Equal(t, expected, result.Rename)
	assert.Equal(t, "gof", ws.Read(filepath.Join("sub", "Design Patterns, Addison-Wesley, 1994.pdf")))
	assert.Equal(t, src+" renamed to "+expected+"\n", out.String())
}

func TestRenameWithBackup(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.AddFile("kr0131101630.djvu", "k&r contents")
	ws.Chdir()
	src := "kr0131101630.djvu"

	r := NewRenamer(Options{Out: &bytes.Buffer{}})
	_, err := r.Rename(fetched(src, "The C Programming Language", "Prentice Hall", "1988"), true)
	require.NoError(t, err)

	assert.Equal(t, "k&r contents", ws.Read("kr0131101630.djvu.bak"))
	assert.Equal(t, "k&r contents", ws.Read("The C Programming Language, Prentice Hall, 1988.djvu"))

	backupHash, err := fileops.ComputeFileHash(ws.Path("kr0131101630.djvu.bak"))
	require.NoError(t, err)
	renamedHash, err := fileops.ComputeFileHash(ws.Path("The C Programming Language, Prentice Hall, 1988.djvu"))
	require.NoError(t, err)
	assert.Equal(t, backupHash, renamedHash)
}

func TestRenameCustomBackupSuffix(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.AddFile("a0201633610.pdf", "")
	ws.Chdir()
	src := "a0201633610.pdf"

	r := NewRenamer(Options{BackupSuffix: ".orig", Out: &bytes.Buffer{}})
	_, err := r.Rename(fetched(src, "T", "P", "2000"), true)
	require.NoError(t, err)
	assert.True(t, ws.Exists("a0201633610.pdf.orig"))
}

func TestRenameRefusesExistingDestination(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.AddFile("a0201633610.pdf", "new")
	ws.AddFile("T, P, 2000.pdf", "old")
	ws.Chdir()
	src := "a0201633610.pdf"

	var out bytes.Buffer
	r := NewRenamer(Options{Out: &out})
	_, err := r.Rename(fetched(src, "T", "P", "2000"), true)
	assert.ErrorIs(t, err, ErrDestinationExists)

	// nothing touched, not even the backup
	assert.Equal(t, "old", ws.Read("T, P, 2000.pdf"))
	assert.Equal(t, "new", ws.Read("a0201633610.pdf"))
	assert.False(t, ws.Exists("a0201633610.pdf.bak"))
	assert.Empty(t, out.String())
}

func TestRenameOverwrite(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.AddFile("a0201633610.pdf", "new")
	ws.AddFile("T, P, 2000.pdf", "old")
	ws.Chdir()
	src := "a0201633610.pdf"

	r := NewRenamer(Options{Overwrite: true, Out: &bytes.Buffer{}})
	_, err := r.Rename(fetched(src, "T", "P", "2000"), false)
	require.NoError(t, err)
	assert.Equal(t, "new", ws.Read("T, P, 2000.pdf"))
}

func TestRenameMissingSource(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.Chdir()
	r := NewRenamer(Options{Out: &bytes.Buffer{}})

	_, err := r.Rename(fetched("gone0201633610.pdf", "T", "P", "2000"), false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenameMissingFieldsLeavesFile(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.AddFile("a0201633610.pdf", "")
	ws.Chdir()
	src := "a0201633610.pdf"

	r := NewRenamer(Options{Out: &bytes.Buffer{}})
	_, err := r.Rename(models.Record{Filename: src, ISBN: models.StringPtr("0201633610")}, true)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.True(t, ws.Exists("a0201633610.pdf"))
	assert.False(t, ws.Exists("a0201633610.pdf.bak"))
}

func TestRenameDryRun(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.AddFile("a0201633610.pdf", "")
	ws.AddFile("T, P, 2000.pdf", "existing")
	ws.Chdir()
	src := "a0201633610.pdf"

	var out bytes.Buffer
	r := NewRenamer(Options{DryRun: true, Out: &out})
	assert.True(t, r.DryRun())

	result, err := r.Rename(fetched(src, "T", "P", "2000"), true)
	require.NoError(t, err)
	assert.Equal(t, "T, P, 2000.pdf", result.Rename)
	assert.True(t, result.Planned)
	assert.Equal(t, models.StagePlanned, result.Stage())
	assert.True(t, ws.Exists("a0201633610.pdf"))
	assert.False(t, ws.Exists("a0201633610.pdf.bak"))
	assert.Equal(t, "existing", ws.Read("T, P, 2000.pdf"))
	assert.Empty(t, out.String())
}

func TestRenameOntoItself(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.AddFile("0201633610.pdf", "same")
	ws.Chdir()
	src := "0201633610.pdf"

	r := NewRenamer(Options{Template: "{isbn}{ext}", Out: &bytes.Buffer{}})
	result, err := r.Rename(fetched(src, "T", "P", "2000"), false)
	require.NoError(t, err)
	assert.Equal(t, src, result.Rename)
	assert.Equal(t, "same", ws.Read("0201633610.pdf"))
}
