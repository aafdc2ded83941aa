package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestYAMLStore_Groups_Success verifies that document order is kept and
// malformed entries are skipped.
func TestYAMLStore_Groups_Success(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "groups.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
groups:
  - name: Work
    folders:
      - path: /srv/b
      - path: ""
      - path: /srv/a
  - name: ""
    folders:
      - path: /srv/nameless
  - name: Home
`), 0o644))

	store := NewYAMLStore(path, &OS{})

	defs, err := store.Groups()
	require.NoError(t, err)

	assert.Equal(t, []GroupDefinition{
		{Name: "Work", Paths: []string{"/srv/b", "/srv/a"}},
		{Name: "Home", Paths: []string{}},
	}, defs)
}

// TestYAMLStore_Groups_Fail_Parse verifies that an unparsable document is an
// error.
func TestYAMLStore_Groups_Fail_Parse(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "groups.yaml")
	require.NoError(t, os.WriteFile(path, []byte("groups: [\n"), 0o644))

	_, err := NewYAMLStore(path, &OS{}).Groups()
	require.Error(t, err)
}

// TestYAMLStore_SaveRemove_Success verifies replacing, appending and removing
// of groups.
func TestYAMLStore_SaveRemove_Success(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "groups.yaml")
	store := NewYAMLStore(path, &OS{})

	defs, err := store.Groups()
	require.NoError(t, err)
	assert.Empty(t, defs)

	require.NoError(t, store.Save(GroupDefinition{Name: "Work", Paths: []string{"/a"}}))
	require.NoError(t, store.Save(GroupDefinition{Name: "Home", Paths: []string{"/h"}}))
	require.NoError(t, store.Save(GroupDefinition{Name: "Work", Paths: []string{"/b", "/a"}}))

	defs, err = store.Groups()
	require.NoError(t, err)
	assert.Equal(t, []GroupDefinition{
		{Name: "Work", Paths: []string{"/b", "/a"}},
		{Name: "Home", Paths: []string{"/h"}},
	}, defs)

	require.NoError(t, store.Remove("Work"))
	require.ErrorIs(t, store.Remove("Work"), ErrGroupNotFound)

	defs, err = store.Groups()
	require.NoError(t, err)
	assert.Equal(t, []GroupDefinition{{Name: "Home", Paths: []string{"/h"}}}, defs)
}
