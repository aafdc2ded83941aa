package enumeration

import (
	"io"
	"testing"

	"github.com/alur/WinUnionFS/internal/pidl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(t *testing.T, name string, attrs pidl.Attributes, delegate uint16) pidl.ID {
	t.Helper()

	id, err := pidl.Create(nil, name, attrs, delegate)
	require.NoError(t, err)

	return id
}

func newFilledCursor(t *testing.T, names ...string) *Cursor {
	t.Helper()

	c := NewCursor()
	for _, name := range names {
		require.True(t, c.Add(item(t, name, pidl.AttrStream, 0)))
	}

	return c
}

func namesOf(items []pidl.ID) []string {
	out := make([]string, 0, len(items))
	for _, id := range items {
		out = append(out, pidl.Name(id))
	}

	return out
}

// TestAdd_DeduplicatesFolders verifies that only folders with an exactly
// equal name collapse and that the first one wins.
func TestAdd_DeduplicatesFolders(t *testing.T) {
	t.Parallel()

	c := NewCursor()

	assert.True(t, c.Add(item(t, "Docs", pidl.FolderAttributes, 0)))
	assert.False(t, c.Add(item(t, "Docs", pidl.FolderAttributes|pidl.AttrReadOnly, 1)))
	assert.True(t, c.Add(item(t, "docs", pidl.FolderAttributes, 1)), "comparison is case-sensitive")
	assert.True(t, c.Add(item(t, "notes.txt", pidl.AttrStream, 0)))
	assert.True(t, c.Add(item(t, "notes.txt", pidl.AttrStream, 1)), "files are never de-duplicated")
	assert.True(t, c.Add(item(t, "Docs", pidl.AttrStream, 1)), "a file does not collide with a folder")

	items, err := c.Next(10)
	require.ErrorIs(t, err, io.EOF)
	require.Len(t, items, 5)

	assert.Equal(t, []string{"Docs", "docs", "notes.txt", "notes.txt", "Docs"}, namesOf(items))
	assert.Equal(t, uint16(0), pidl.Delegate(items[0]))
	assert.Equal(t, pidl.FolderAttributes, pidl.GetAttributes(items[0]))
}

// TestNext_Batches verifies full, partial and exhausted fetches.
func TestNext_Batches(t *testing.T) {
	t.Parallel()

	c := newFilledCursor(t, "a", "b", "c")

	items, err := c.Next(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, namesOf(items))

	items, err = c.Next(2)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []string{"c"}, namesOf(items))
	assert.True(t, c.Exhausted())

	items, err = c.Next(1)
	require.ErrorIs(t, err, io.EOF)
	assert.Empty(t, items)

	items, err = c.Next(0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

// TestNext_ReturnsCopies verifies that fetched items do not alias the cursor.
func TestNext_ReturnsCopies(t *testing.T) {
	t.Parallel()

	c := newFilledCursor(t, "a")

	first, err := c.Next(1)
	require.NoError(t, err)
	first[0][len(first[0])-3] = 'z'

	c.Reset()
	second, err := c.Next(1)
	require.NoError(t, err)
	assert.Equal(t, "a", pidl.Name(second[0]))
}

// TestSkip_Table verifies skipping, including past the end.
func TestSkip_Table(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		skip      int
		expectEOF bool
		remaining int
	}{
		{"Success_Zero", 0, false, 3},
		{"Success_One", 1, false, 2},
		{"Success_ToEnd", 3, false, 0},
		{"Fail_PastEnd", 5, true, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newFilledCursor(t, "a", "b", "c")

			err := c.Skip(tc.skip)
			if tc.expectEOF {
				require.ErrorIs(t, err, io.EOF)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.remaining, c.Remaining())
		})
	}
}

// TestSkip_PastEndThenNext verifies that a cursor skipped past its end
// fetches nothing.
func TestSkip_PastEndThenNext(t *testing.T) {
	t.Parallel()

	c := newFilledCursor(t, "a", "b")
	_, err := c.Next(1)
	require.NoError(t, err)

	require.ErrorIs(t, c.Skip(5), io.EOF)
	assert.True(t, c.Exhausted())

	items, err := c.Next(1)
	require.ErrorIs(t, err, io.EOF)
	assert.Empty(t, items)
}

// TestReset_Success verifies that the cursor restarts at the first item.
func TestReset_Success(t *testing.T) {
	t.Parallel()

	c := newFilledCursor(t, "a", "b")
	require.ErrorIs(t, c.Skip(3), io.EOF)

	c.Reset()
	assert.Equal(t, 2, c.Remaining())

	items, err := c.Next(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, namesOf(items))
}

// TestClone_Independent verifies that clones keep the position and advance
// independently.
func TestClone_Independent(t *testing.T) {
	t.Parallel()

	c := newFilledCursor(t, "a", "b", "c")
	require.NoError(t, c.Skip(1))

	clone := c.Clone()
	assert.Equal(t, c.Len(), clone.Len())
	assert.Equal(t, 2, clone.Remaining())

	items, err := clone.Next(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, namesOf(items))

	assert.Equal(t, 2, c.Remaining(), "source keeps its position")

	items, err = c.Next(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, namesOf(items))
}
