package namespace

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/alur/WinUnionFS/internal/enumeration"
	"github.com/alur/WinUnionFS/internal/folder"
	"github.com/alur/WinUnionFS/internal/pidl"
)

// EnumObjects lists the children of the folder. The root lists one folder
// per group; every other level merges the children of the backing folders in
// delegation order, tagging each child with the index of the folder it came
// from. Backing folders that fail to enumerate contribute nothing.
func (f *Folder) EnumObjects(flags folder.EnumFlags) (*enumeration.Cursor, error) {
	cursor := enumeration.NewCursor()

	if f.level == LevelRoot {
		if !flags.Has(folder.EnumFolders) && !flags.Has(folder.EnumCheckingForChildren) {
			return cursor, nil
		}

		for i := 0; ; i++ {
			g, ok := f.registry.FindIndex(i)
			if !ok {
				break
			}

			child, err := pidl.Create(nil, g.Name, pidl.FolderAttributes, 0)
			if err != nil {
				return nil, fmt.Errorf("(namespace-enum) %w", err)
			}
			cursor.Add(child)
		}

		return cursor, nil
	}

	for index, backing := range f.backing {
		if index > math.MaxUint16 {
			slog.Warn("Failure enumerating backing folder (was skipped)",
				"group", f.group,
				"folder", backing.Path(),
				"err", ErrDelegateOutOfRange,
			)

			continue
		}

		if err := f.mergeFrom(cursor, backing, uint16(index), flags); err != nil {
			return nil, err
		}
	}

	return cursor, nil
}

func (f *Folder) mergeFrom(cursor *enumeration.Cursor, backing folder.Folder, index uint16, flags folder.EnumFlags) error {
	children, err := backing.EnumObjects(flags)
	if err != nil {
		slog.Warn("Failure enumerating backing folder (was skipped)",
			"group", f.group,
			"folder", backing.Path(),
			"err", err,
		)

		return nil
	}

	for _, child := range children {
		name, err := backing.GetDisplayNameOf(child)
		if err != nil {
			slog.Warn("Failure naming child of backing folder (was skipped)",
				"group", f.group,
				"folder", backing.Path(),
				"err", err,
			)

			continue
		}

		attrs, err := backing.GetAttributesOf(child)
		if err != nil {
			attrs = pidl.GetAttributes(pidl.Last(child))
		}
		if attrs.IsFolder() {
			attrs |= pidl.FolderAttributes
		}

		item, err := pidl.Create(nil, name, attrs, index)
		if err != nil {
			return fmt.Errorf("(namespace-enum) %w", err)
		}

		if !cursor.Add(item) {
			slog.Debug("Folder shadowed by earlier backing folder",
				"group", f.group,
				"folder", backing.Path(),
				"name", name,
			)
		}
	}

	return nil
}
