package namespace

import (
	"fmt"
	"math"
	"strings"

	"github.com/alur/WinUnionFS/internal/pidl"
)

// NameFlags selects the form of a display name.
type NameFlags int

const (
	// NameNormal renders the path of the child below the namespace anchor.
	NameNormal NameFlags = 0

	// NameInFolder renders the name of the child within its folder.
	NameInFolder NameFlags = 1
)

// GetDisplayNameOf returns the display name of child.
func (f *Folder) GetDisplayNameOf(child pidl.ID, flags NameFlags) (string, error) {
	if pidl.IsEnd(child) {
		if flags&NameInFolder != 0 {
			return pidl.Name(pidl.Last(f.id)), nil
		}

		return pidl.GetFullPath(f.id, nil), nil
	}

	if flags&NameInFolder != 0 {
		return pidl.Name(pidl.Last(child)), nil
	}

	return pidl.GetFullPath(pidl.Concatenate(f.id, child), nil), nil
}

// ParseDisplayName turns a slash separated path below the folder into a
// relative identifier and returns the attributes of the addressed item. At
// the root the first segment names a group. Below that, the first backing
// folder in delegation order that resolves the whole path wins and its index
// is carried by every node.
func (f *Folder) ParseDisplayName(path string) (pidl.ID, pidl.Attributes, error) {
	path = strings.Trim(path, pidl.Separator)
	if path == "" {
		return pidl.Empty(), pidl.FolderAttributes, nil
	}

	if f.level == LevelRoot {
		return f.parseGroupPath(path)
	}

	for index, backing := range f.backing {
		if index > math.MaxUint16 {
			break
		}

		found, err := backing.ParseDisplayName(path)
		if err != nil {
			continue
		}

		id := pidl.Empty()
		for _, item := range pidl.Items(found) {
			attrs := item.Attributes
			if attrs.IsFolder() {
				attrs |= pidl.FolderAttributes
			}

			id, err = pidl.Create(id, item.Name, attrs, uint16(index))
			if err != nil {
				return nil, 0, fmt.Errorf("(namespace-parse) %w", err)
			}
		}

		return id, pidl.GetAttributes(pidl.Last(id)), nil
	}

	return nil, 0, fmt.Errorf("(namespace-parse) %w: %s", ErrNotFound, path)
}

func (f *Folder) parseGroupPath(path string) (pidl.ID, pidl.Attributes, error) {
	name, rest, _ := strings.Cut(path, pidl.Separator)

	if _, ok := f.registry.Find(name); !ok {
		return nil, 0, fmt.Errorf("(namespace-parse) %w: group %s", ErrNotFound, name)
	}

	groupID, err := pidl.Create(nil, name, pidl.FolderAttributes, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("(namespace-parse) %w", err)
	}

	if rest == "" {
		return groupID, pidl.FolderAttributes, nil
	}

	child, err := f.BindToObject(groupID)
	if err != nil {
		return nil, 0, err
	}
	defer child.Close()

	rel, attrs, err := child.ParseDisplayName(rest)
	if err != nil {
		return nil, 0, err
	}

	return pidl.Concatenate(groupID, rel), attrs, nil
}
