package folder

import (
	"fmt"
	"sort"
)

// Handle names one opened folder inside a [Table].
type Handle uint64

type tableEntry struct {
	path string
	refs int32
}

// Table is the arena holding the reference counts of opened folders. An entry
// exists from the moment a folder is opened until its last reference is
// released.
type Table struct {
	next    Handle
	entries map[Handle]*tableEntry
}

func NewTable() *Table {
	return &Table{
		entries: make(map[Handle]*tableEntry),
	}
}

func (t *Table) open(path string) Handle {
	t.next++
	t.entries[t.next] = &tableEntry{path: path, refs: 1}

	return t.next
}

func (t *Table) acquire(h Handle) int32 {
	entry, ok := t.entries[h]
	if !ok {
		panic(fmt.Sprintf("folder: acquire of released handle %d", h))
	}
	entry.refs++

	return entry.refs
}

// release panics when h was already released, like a negative
// [sync.WaitGroup] counter.
func (t *Table) release(h Handle) int32 {
	entry, ok := t.entries[h]
	if !ok {
		panic(fmt.Sprintf("folder: release of released handle %d", h))
	}

	entry.refs--
	if entry.refs == 0 {
		delete(t.entries, h)
	}

	return entry.refs
}

// Refs returns the current reference count of h, or 0 once released.
func (t *Table) Refs(h Handle) int32 {
	if entry, ok := t.entries[h]; ok {
		return entry.refs
	}

	return 0
}

// Live returns the number of folders holding at least one reference.
func (t *Table) Live() int {
	return len(t.entries)
}

// Outstanding returns the sum of all held references.
func (t *Table) Outstanding() int {
	total := 0
	for _, entry := range t.entries {
		total += int(entry.refs)
	}

	return total
}

// LivePaths returns the sorted paths of all live folders.
func (t *Table) LivePaths() []string {
	paths := make([]string, 0, len(t.entries))
	for _, entry := range t.entries {
		paths = append(paths, entry.path)
	}
	sort.Strings(paths)

	return paths
}
