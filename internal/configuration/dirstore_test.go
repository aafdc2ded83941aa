package configuration

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirStore(t *testing.T) (*DirStore, string) {
	t.Helper()

	root := t.TempDir()

	return NewDirStore(root, NewHandler(&GodotenvProvider{}), &OS{}), root
}

// failingOS fails creating directories below its root.
type failingOS struct {
	OS
}

func (*failingOS) MkdirAll(string, os.FileMode) error {
	return errors.New("disk full")
}

func writeEntry(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestDirStore_Groups_Success verifies that groups and folders are read in
// lexical order.
func TestDirStore_Groups_Success(t *testing.T) {
	t.Parallel()

	store, root := newTestDirStore(t)

	writeEntry(t, filepath.Join(root, "Work", FoldersDir, "0001.cfg"), `Path="/srv/b"`)
	writeEntry(t, filepath.Join(root, "Work", FoldersDir, "0000.cfg"), `Path="/srv/a"`)
	writeEntry(t, filepath.Join(root, "Home", FoldersDir, "0000.cfg"), "Path=/home/me\n")

	defs, err := store.Groups()
	require.NoError(t, err)

	assert.Equal(t, []GroupDefinition{
		{Name: "Home", Paths: []string{"/home/me"}},
		{Name: "Work", Paths: []string{"/srv/a", "/srv/b"}},
	}, defs)
}

// TestDirStore_Groups_SkipsMalformed verifies that broken entries are skipped
// without affecting the others.
func TestDirStore_Groups_SkipsMalformed(t *testing.T) {
	t.Parallel()

	store, root := newTestDirStore(t)

	writeEntry(t, filepath.Join(root, "Work", FoldersDir, "0000.cfg"), `Path="/srv/a"`)
	writeEntry(t, filepath.Join(root, "Work", FoldersDir, "0001.cfg"), `Other="/srv/x"`)
	writeEntry(t, filepath.Join(root, "Work", FoldersDir, "0002.cfg"), `Path="unterminated`)
	writeEntry(t, filepath.Join(root, "Work", FoldersDir, "notes.txt"), `Path="/srv/ignored"`)
	writeEntry(t, filepath.Join(root, "Work", FoldersDir, "0003.cfg"), `Path="/srv/c"`)
	writeEntry(t, filepath.Join(root, "stray.cfg"), `Path="/srv/stray"`)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Empty"), 0o755))

	defs, err := store.Groups()
	require.NoError(t, err)

	assert.Equal(t, []GroupDefinition{
		{Name: "Empty", Paths: []string{}},
		{Name: "Work", Paths: []string{"/srv/a", "/srv/c"}},
	}, defs)
}

// TestDirStore_Groups_MissingRoot verifies that a missing store holds no
// groups.
func TestDirStore_Groups_MissingRoot(t *testing.T) {
	t.Parallel()

	store := NewDirStore(filepath.Join(t.TempDir(), "missing"), NewHandler(&GodotenvProvider{}), &OS{})

	defs, err := store.Groups()
	require.NoError(t, err)
	assert.Empty(t, defs)
}

// TestDirStore_Groups_Fail_RootIsFile verifies that an unreadable store is an
// error.
func TestDirStore_Groups_Fail_RootIsFile(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))

	store := NewDirStore(root, NewHandler(&GodotenvProvider{}), &OS{})

	_, err := store.Groups()
	require.Error(t, err)
}

// TestDirStore_SaveRemove_Success verifies that saved groups read back in
// order and can be removed again.
func TestDirStore_SaveRemove_Success(t *testing.T) {
	t.Parallel()

	store, _ := newTestDirStore(t)

	paths := []string{"/z", "/a", "/m/with space"}
	require.NoError(t, store.Save(GroupDefinition{Name: "Work", Paths: []string{"/old"}}))
	require.NoError(t, store.Save(GroupDefinition{Name: "Work", Paths: paths}))

	defs, err := store.Groups()
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, paths, defs[0].Paths)

	require.NoError(t, store.Remove("Work"))
	require.ErrorIs(t, store.Remove("Work"), ErrGroupNotFound)

	defs, err = store.Groups()
	require.NoError(t, err)
	assert.Empty(t, defs)
}

// TestDirStore_Save_Fail_InvalidName verifies the group name checks.
func TestDirStore_Save_Fail_InvalidName(t *testing.T) {
	t.Parallel()

	store, _ := newTestDirStore(t)

	for _, name := range []string{"", ".", "..", ".hidden", "a/b", `a\b`} {
		require.ErrorIs(t, store.Save(GroupDefinition{Name: name}), ErrInvalidGroupName, name)
		require.ErrorIs(t, store.Remove(name), ErrInvalidGroupName, name)
	}
}

// TestDirStore_Groups_NumericOrder verifies that entries past four digits
// keep their numeric order and that staging directories are not groups.
func TestDirStore_Groups_NumericOrder(t *testing.T) {
	t.Parallel()

	store, root := newTestDirStore(t)

	writeEntry(t, filepath.Join(root, "Work", FoldersDir, "10000.cfg"), `Path="/srv/c"`)
	writeEntry(t, filepath.Join(root, "Work", FoldersDir, "9999.cfg"), `Path="/srv/b"`)
	writeEntry(t, filepath.Join(root, "Work", FoldersDir, "0000.cfg"), `Path="/srv/a"`)
	writeEntry(t, filepath.Join(root, "Work", FoldersDir, "extra.cfg"), `Path="/srv/d"`)
	writeEntry(t, filepath.Join(root, ".Work"+stagingSuffix, FoldersDir, "00000.cfg"), `Path="/srv/x"`)

	defs, err := store.Groups()
	require.NoError(t, err)

	assert.Equal(t, []GroupDefinition{
		{Name: "Work", Paths: []string{"/srv/a", "/srv/b", "/srv/c", "/srv/d"}},
	}, defs)
}

// TestDirStore_Save_Fail_KeepsPrevious verifies that a failed save leaves the
// stored definition untouched.
func TestDirStore_Save_Fail_KeepsPrevious(t *testing.T) {
	t.Parallel()

	store, root := newTestDirStore(t)
	require.NoError(t, store.Save(GroupDefinition{Name: "Work", Paths: []string{"/old"}}))

	failing := NewDirStore(root, NewHandler(&GodotenvProvider{}), &failingOS{})
	require.Error(t, failing.Save(GroupDefinition{Name: "Work", Paths: []string{"/new"}}))

	defs, err := store.Groups()
	require.NoError(t, err)
	assert.Equal(t, []GroupDefinition{{Name: "Work", Paths: []string{"/old"}}}, defs)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Work", entries[0].Name())
}

// TestDirStore_Save_Fail_TooManyFolders verifies the folder limit of a group.
func TestDirStore_Save_Fail_TooManyFolders(t *testing.T) {
	t.Parallel()

	store, _ := newTestDirStore(t)

	paths := make([]string, MaxGroupFolders+1)
	require.ErrorIs(t, store.Save(GroupDefinition{Name: "Work", Paths: paths}), ErrTooManyFolders)
}
