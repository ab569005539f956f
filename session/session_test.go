package session

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerOpenAndRejoin(t *testing.T) {
	m := NewManager(t.TempDir())

	s, err := m.Open()
	require.NoError(t, err)
	assert.DirExists(t, s.Dir)
	assert.True(t, strings.HasPrefix(s.BaseName(), "ht_donation_receipt_"))

	// Rejoin by ID, as a later HTTP request would.
	assert.Same(t, s, m.Get(s.ID))
	assert.Nil(t, m.Get("unknown"))

	m.Close(s.ID)
	assert.Nil(t, m.Get(s.ID))
	// Closing only drops bookkeeping; generated PDFs stay on disk.
	assert.DirExists(t, s.Dir)
}

func TestArchiveRelativeNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "HT-ONL-1.pdf"), []byte("one"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "HT-ONL-2.pdf"), []byte("two"), 0o644))

	data, err := Archive(dir)
	require.NoError(t, err)
	require.NotNil(t, data)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"HT-ONL-1.pdf", "HT-ONL-2.pdf"}, names)
}

func TestArchiveEmptyOrMissingDir(t *testing.T) {
	data, err := Archive(t.TempDir())
	assert.NoError(t, err)
	assert.Nil(t, data)

	data, err = Archive(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestArchiveUnreadableDirIsAnError(t *testing.T) {
	// A broken session dir must not read as "no PDFs generated yet".
	// A regular file in the directory's place makes ReadDir fail with
	// something other than ErrNotExist.
	blocker := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	data, err := Archive(blocker)
	assert.Error(t, err)
	assert.Nil(t, data)
}
