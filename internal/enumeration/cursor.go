// Package enumeration provides the forward-only cursor over the children of a
// merged folder.
package enumeration

import (
	"io"

	"github.com/alur/WinUnionFS/internal/pidl"
)

// Cursor is a finite, forward-only sequence of child identifiers. Items are
// collected with [Cursor.Add] and fetched in batches; every fetched item is
// an independent copy.
type Cursor struct {
	items    []pidl.ID
	position int
}

func NewCursor() *Cursor {
	return &Cursor{}
}

// Add appends item, taking ownership of it. A folder is dropped when an
// earlier folder carries exactly the same name, so the first folder of a
// name keeps its delegate index. Non-folders are always appended. Add
// reports whether the item was kept.
func (c *Cursor) Add(item pidl.ID) bool {
	attrs := pidl.GetAttributes(item)

	if attrs.IsFolder() {
		name := pidl.Name(item)

		for _, existing := range c.items {
			if pidl.GetAttributes(existing).IsFolder() && pidl.Name(existing) == name {
				return false
			}
		}
	}

	c.items = append(c.items, item)

	return true
}

// Next fetches up to n items and advances past them. The error is nil when n
// items were fetched and [io.EOF] when the cursor ran out first; an empty
// result with [io.EOF] means the cursor was already exhausted.
func (c *Cursor) Next(n int) ([]pidl.ID, error) {
	if n <= 0 {
		return nil, nil
	}

	fetched := make([]pidl.ID, 0, min(n, c.Remaining()))
	for c.position < len(c.items) && len(fetched) < n {
		fetched = append(fetched, pidl.Copy(c.items[c.position]))
		c.position++
	}

	if len(fetched) < n {
		return fetched, io.EOF
	}

	return fetched, nil
}

// Skip advances by n items, stopping at the end. It returns [io.EOF] when
// fewer than n items remained.
func (c *Cursor) Skip(n int) error {
	if n <= 0 {
		return nil
	}

	if n > c.Remaining() {
		c.position = len(c.items)

		return io.EOF
	}
	c.position += n

	return nil
}

// Reset returns to the first item.
func (c *Cursor) Reset() {
	c.position = 0
}

// Clone returns an independent cursor with copies of all items and the same
// position.
func (c *Cursor) Clone() *Cursor {
	clone := &Cursor{
		items:    make([]pidl.ID, 0, len(c.items)),
		position: c.position,
	}
	for _, item := range c.items {
		clone.items = append(clone.items, pidl.Copy(item))
	}

	return clone
}

// Len returns the number of items.
func (c *Cursor) Len() int {
	return len(c.items)
}

// Remaining returns the number of items not fetched yet.
func (c *Cursor) Remaining() int {
	return len(c.items) - c.position
}

// Exhausted reports whether every item was fetched or skipped.
func (c *Cursor) Exhausted() bool {
	return c.position >= len(c.items)
}
