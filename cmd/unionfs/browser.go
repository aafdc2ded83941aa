package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alur/WinUnionFS/internal/folder"
	"github.com/alur/WinUnionFS/internal/namespace"
	"github.com/alur/WinUnionFS/internal/pidl"
	"github.com/alur/WinUnionFS/internal/ui"
)

// browser walks the namespace for the interactive UI. It keeps the folders
// from the starting location down to the current one open so that moving up
// needs no resolution.
type browser struct {
	stack   []*namespace.Folder
	listing []pidl.ID
	flags   folder.EnumFlags
}

func newBrowser(start *namespace.Folder, flags folder.EnumFlags) *browser {
	return &browser{
		stack: []*namespace.Folder{start},
		flags: flags,
	}
}

func (b *browser) current() *namespace.Folder {
	return b.stack[len(b.stack)-1]
}

func (b *browser) Location() string {
	return displayPath(b.current())
}

func (b *browser) Targets() []string {
	return b.current().Targets()
}

func (b *browser) Entries() ([]ui.Entry, error) {
	f := b.current()

	items, err := listAll(f, b.flags)
	if err != nil {
		return nil, err
	}
	b.listing = items

	entries := make([]ui.Entry, 0, len(items))
	for _, item := range items {
		entry := ui.Entry{
			Name:     pidl.Name(item),
			Folder:   pidl.GetAttributes(item).IsFolder(),
			Delegate: int(pidl.Delegate(item)),
		}

		if f.Level() != namespace.LevelRoot {
			details, err := f.Details(item)
			if err != nil {
				slog.Warn("Failure reading details (was skipped)",
					"path", displayPath(f),
					"name", entry.Name,
					"err", err,
				)
			} else {
				entry.Size = details.Size
				entry.Modified = details.Modified
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func (b *browser) Enter(index int) error {
	if index < 0 || index >= len(b.listing) {
		return fmt.Errorf("(browser) no entry at %d", index)
	}

	child, err := b.current().BindToObject(b.listing[index])
	if err != nil {
		return fmt.Errorf("(browser) %w", err)
	}
	b.stack = append(b.stack, child)

	return nil
}

func (b *browser) Up() bool {
	if len(b.stack) == 1 {
		return false
	}

	b.current().Close()
	b.stack = b.stack[:len(b.stack)-1]

	return true
}

// Close closes every folder the browser holds, including the starting one.
func (b *browser) Close() {
	for len(b.stack) > 0 {
		b.current().Close()
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// listAll drains the enumeration of f.
func listAll(f *namespace.Folder, flags folder.EnumFlags) ([]pidl.ID, error) {
	cursor, err := f.EnumObjects(flags)
	if err != nil {
		return nil, fmt.Errorf("(list) %w", err)
	}

	const batch = 32

	var items []pidl.ID
	for {
		fetched, err := cursor.Next(batch)
		items = append(items, fetched...)

		if errors.Is(err, io.EOF) {
			return items, nil
		}
		if err != nil {
			return nil, fmt.Errorf("(list) %w", err)
		}
	}
}
