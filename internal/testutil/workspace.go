// file: internal/testutil/workspace.go
// version: 2.0.0
// guid: a1b2c3d4-e5f6-7890-abcd-ef1234567890

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Workspace is a temporary directory holding fake book files
type Workspace struct {
	Dir string
	T   *testing.T
}

// NewWorkspace creates an empty workspace under t.TempDir()
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return &Workspace{Dir: t.TempDir(), T: t}
}

// AddFile writes name with content (the name itself when content is empty)
// and returns its absolute path.
func (w *Workspace) AddFile(name, content string) string {
	w.T.Helper()
	if content == "" {
		content = "contents of " + name
	}
	path := filepath.Join(w.Dir, name)
	require.NoError(w.T, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(w.T, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Path returns the absolute path of name inside the workspace
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// Exists reports whether name exists inside the workspace
func (w *Workspace) Exists(name string) bool {
	_, err := os.Stat(w.Path(name))
	return err == nil
}

// Read returns the content of name, failing the test if it is missing
func (w *Workspace) Read(name string) string {
	w.T.Helper()
	data, err := os.ReadFile(w.Path(name))
	require.NoError(w.T, err)
	return string(data)
}

// Chdir switches the working directory to the workspace for the rest of
// the test.
func (w *Workspace) Chdir() {
	w.T.Helper()
	w.T.Chdir(w.Dir)
}
