package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"xsddemo/internal/fsutil"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.xsd")

	require.False(t, fsutil.FileExists(path))
	require.False(t, fsutil.FileExists(""))

	require.NoError(t, os.WriteFile(path, []byte("<xs:schema/>"), 0o644))
	require.True(t, fsutil.FileExists(path))
	require.True(t, fsutil.FileExists(dir))
}

func TestFirstExisting(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "simple_types.xsd")
	second := filepath.Join(dir, "person.xsd")

	_, ok := fsutil.FirstExisting([]string{first, second})
	require.False(t, ok)

	_, ok = fsutil.FirstExisting(nil)
	require.False(t, ok)

	require.NoError(t, os.WriteFile(second, nil, 0o644))
	got, ok := fsutil.FirstExisting([]string{first, second})
	require.True(t, ok)
	require.Equal(t, second, got)

	// Earlier candidates win once they exist.
	require.NoError(t, os.WriteFile(first, nil, 0o644))
	got, ok = fsutil.FirstExisting([]string{first, second})
	require.True(t, ok)
	require.Equal(t, first, got)
}

func TestDanglingSymlinkDoesNotExist(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "xsd2code")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), link))
	require.False(t, fsutil.FileExists(link))

	schema := filepath.Join(dir, "person.xsd")
	require.NoError(t, os.WriteFile(schema, nil, 0o644))
	got, ok := fsutil.FirstExisting([]string{link, schema})
	require.True(t, ok)
	require.Equal(t, schema, got)
}
