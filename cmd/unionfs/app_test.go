package main

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/alur/WinUnionFS/internal/configuration"
	"github.com/alur/WinUnionFS/internal/namespace"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	fs        afero.Fs
	storePath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/A/Docs", 0o755))
	require.NoError(t, fs.MkdirAll("/B/Docs", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/A/Docs/a.txt", []byte("from a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/B/Docs/inner.txt", []byte("from b"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/B/notes.txt", []byte("notes"), 0o644))

	env := &testEnv{
		fs:        fs,
		storePath: filepath.Join(t.TempDir(), "groups.yaml"),
	}

	_, err := env.run(t, "group", "add", "Work", "/A", "/missing", "/B")
	require.NoError(t, err)

	return env
}

func (env *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	app := NewApp(env.fs, &out, io.Discard)
	err := app.Execute(t.Context(), append([]string{"--store", "yaml", "--store-path", env.storePath}, args...))

	return out.String(), err
}

// TestGroups_Success verifies that stored groups list with their bound
// folders.
func TestGroups_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	out, err := env.run(t, "groups")
	require.NoError(t, err)
	assert.Equal(t, "Work\t/A, /B\n", out)
}

// TestGroupRemove_Success verifies removal of a stored group.
func TestGroupRemove_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.run(t, "group", "remove", "Work")
	require.NoError(t, err)

	out, err := env.run(t, "groups")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = env.run(t, "group", "remove", "Work")
	require.ErrorIs(t, err, configuration.ErrGroupNotFound)
}

// TestLs_Table verifies listings at the different namespace levels.
func TestLs_Table(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{"Success_Root", []string{"ls"}, "Work/\n"},
		{"Success_Group", []string{"ls", "Work"}, "Docs/\nnotes.txt\n"},
		{"Success_Path", []string{"ls", "/Work/Docs/"}, "a.txt\ninner.txt\n"},
		{"Success_Sorted", []string{"ls", "-s", "Work/Docs"}, "a.txt\ninner.txt\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)

			out, err := env.run(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

// TestLs_Long verifies that detailed listings carry the delegate index.
func TestLs_Long(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	out, err := env.run(t, "ls", "-l", "Work")
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
	require.Len(t, lines, 2)

	assert.Contains(t, string(lines[0]), "@0")
	assert.Contains(t, string(lines[0]), "Docs/")
	assert.Contains(t, string(lines[1]), "@1")
	assert.Contains(t, string(lines[1]), "5 B")
}

// TestLs_Fail_Table verifies that unresolvable paths are errors.
func TestLs_Fail_Table(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		path     string
		expected error
	}{
		{"Fail_UnknownGroup", "Home", namespace.ErrNotFound},
		{"Fail_Missing", "Work/Music", namespace.ErrNotFound},
		{"Fail_File", "Work/notes.txt", namespace.ErrNotFolder},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)

			_, err := env.run(t, "ls", tc.path)
			require.ErrorIs(t, err, tc.expected)
		})
	}
}

// TestTree_Success verifies the rendering of the merged tree.
func TestTree_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	out, err := env.run(t, "tree", "Work")
	require.NoError(t, err)
	assert.Equal(t, "/Work\n"+
		"├── Docs/\n"+
		"│   ├── a.txt\n"+
		"│   └── inner.txt\n"+
		"└── notes.txt\n", out)

	out, err = env.run(t, "tree", "--depth", "1")
	require.NoError(t, err)
	assert.Equal(t, "/\n└── Work/\n", out)
}

// TestCat_Success verifies that files are read from their backing folder.
func TestCat_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	out, err := env.run(t, "cat", "Work/Docs/inner.txt")
	require.NoError(t, err)
	assert.Equal(t, "from b", out)

	out, err = env.run(t, "cat", "/Work/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "notes", out)
}

// TestCat_Fail_Folder verifies that folders cannot be printed.
func TestCat_Fail_Folder(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.run(t, "cat", "Work/Docs")
	require.ErrorIs(t, err, namespace.ErrIsFolder)

	_, err = env.run(t, "cat", "Work")
	require.ErrorIs(t, err, namespace.ErrIsFolder)
}

// TestInspect_Success verifies the identifier dump of a folder.
func TestInspect_Success(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	out, err := env.run(t, "inspect", "Work/Docs")
	require.NoError(t, err)

	assert.Contains(t, out, "path:        /Work/Docs\n")
	assert.Contains(t, out, `0 "WinUnionFS" delegate=0`)
	assert.Contains(t, out, `2 "Docs" delegate=0`)
	assert.Contains(t, out, "level:       path\n")
	assert.Contains(t, out, "  @0 /A/Docs\n  @1 /B/Docs\n")
}

// TestSetup_Fail_Table verifies invalid settings.
func TestSetup_Fail_Table(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		args     []string
		expected error
	}{
		{"Fail_Store", []string{"--store", "sql", "--store-path", "x", "groups"}, configuration.ErrUnknownStore},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			app := NewApp(afero.NewMemMapFs(), io.Discard, io.Discard)
			require.ErrorIs(t, app.Execute(t.Context(), tc.args), tc.expected)
		})
	}

	app := NewApp(afero.NewMemMapFs(), io.Discard, io.Discard)
	require.Error(t, app.Execute(t.Context(), []string{"--log-level", "loud", "--store-path", "x", "groups"}))
}
