package group

import (
	"errors"
	"testing"

	"github.com/alur/WinUnionFS/internal/configuration"
	"github.com/alur/WinUnionFS/internal/folder"
	"github.com/alur/WinUnionFS/internal/group/mocks"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBinder(t *testing.T) *folder.Binder {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/a/Docs/2024", 0o755))
	require.NoError(t, fs.MkdirAll("/b/Docs", 0o755))
	require.NoError(t, fs.MkdirAll("/c", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/b/notes.txt", []byte("notes"), 0o644))

	return folder.NewBinder(fs, folder.NewTable(), nil)
}

func testDefinitions() []configuration.GroupDefinition {
	return []configuration.GroupDefinition{
		{Name: "Work", Paths: []string{"/a", "/missing", "/b"}},
		{Name: "Home", Paths: []string{"/c"}},
		{Name: "Work", Paths: []string{"/c"}},
	}
}

// TestLoad_Success verifies that groups load in stored order and unbindable
// folders are skipped.
func TestLoad_Success(t *testing.T) {
	t.Parallel()

	storeMock := mocks.NewStoreProvider(t)
	storeMock.On("Groups").Return(testDefinitions(), nil).Once()

	binder := newTestBinder(t)
	registry := NewRegistry(storeMock, binder)

	require.NoError(t, registry.Load())

	require.Equal(t, 2, registry.Len())

	work, ok := registry.Find("Work")
	require.True(t, ok)
	assert.Equal(t, []string{"/a", "/b"}, work.Paths())

	home, ok := registry.FindIndex(1)
	require.True(t, ok)
	assert.Equal(t, "Home", home.Name)
	assert.Equal(t, 1, home.Len())

	_, ok = registry.Find("work")
	assert.False(t, ok, "names compare case-sensitively")

	_, ok = registry.FindIndex(2)
	assert.False(t, ok)

	_, ok = registry.FindIndex(-1)
	assert.False(t, ok)

	assert.Equal(t, 3, binder.Table().Live())
}

// TestLoad_Fail_Store verifies that an unreadable store leaves the registry
// empty.
func TestLoad_Fail_Store(t *testing.T) {
	t.Parallel()

	storeMock := mocks.NewStoreProvider(t)
	storeMock.On("Groups").Return(nil, errors.New("store offline")).Once()

	registry := NewRegistry(storeMock, newTestBinder(t))

	registry.AddUser()

	assert.Equal(t, 1, registry.Users())
	assert.Equal(t, 0, registry.Len())

	_, ok := registry.Find("Work")
	assert.False(t, ok)

	registry.RemoveUser()
}

// TestUsers_Lifecycle verifies that groups are loaded on the first user,
// kept while users remain and fully released after the last one.
func TestUsers_Lifecycle(t *testing.T) {
	t.Parallel()

	storeMock := mocks.NewStoreProvider(t)
	storeMock.On("Groups").Return(testDefinitions(), nil).Twice()

	binder := newTestBinder(t)
	registry := NewRegistry(storeMock, binder)

	for range 3 {
		registry.AddUser()
	}
	assert.Equal(t, 2, registry.Len())

	registry.RemoveUser()
	registry.AddUser()
	registry.RemoveUser()
	registry.RemoveUser()
	assert.Equal(t, 2, registry.Len(), "groups stay loaded while users remain")

	registry.RemoveUser()
	assert.Equal(t, 0, registry.Users())
	assert.Equal(t, 0, registry.Len())
	assert.Equal(t, 0, binder.Table().Live(), "no backing folder reference may remain")

	registry.AddUser()
	assert.Equal(t, 2, registry.Len(), "groups reload for a new first user")
	registry.RemoveUser()
	assert.Equal(t, 0, binder.Table().Live())
}

// TestRemoveUser_Panics verifies that unbalanced removal is caught.
func TestRemoveUser_Panics(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(mocks.NewStoreProvider(t), newTestBinder(t))

	assert.Panics(t, registry.RemoveUser)
}

// TestGetShellFoldersFor_Table verifies the delegation sets of a group.
func TestGetShellFoldersFor_Table(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		relPath  string
		expected []string
	}{
		{"Success_GroupLevel", "", []string{"/a", "/b"}},
		{"Success_InBoth", "Docs", []string{"/a/Docs", "/b/Docs"}},
		{"Success_InFirst", "Docs/2024", []string{"/a/Docs/2024"}},
		{"Success_FileIsNoFolder", "notes.txt", []string{}},
		{"Success_Nowhere", "Music", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			storeMock := mocks.NewStoreProvider(t)
			storeMock.On("Groups").Return(testDefinitions(), nil).Once()

			binder := newTestBinder(t)
			registry := NewRegistry(storeMock, binder)
			registry.AddUser()

			work, ok := registry.Find("Work")
			require.True(t, ok)

			folders := work.GetShellFoldersFor(tc.relPath)

			paths := []string{}
			for _, f := range folders {
				paths = append(paths, f.Path())
			}
			assert.Equal(t, tc.expected, paths)

			for _, f := range folders {
				f.Release()
			}

			registry.RemoveUser()
			assert.Equal(t, 0, binder.Table().Live())
		})
	}
}
