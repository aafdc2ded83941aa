// Package namespace resolves identifiers of the merged namespace into their
// backing folders and answers queries against them.
//
// The identifier of a resolved [Folder] starts with an anchor node naming the
// namespace itself. A lone anchor is the root, which lists the groups. The
// node after the anchor names a group, and the nodes after that form a path
// that is resolved within every backing folder of the group.
package namespace

import (
	"fmt"
	"log/slog"

	"github.com/alur/WinUnionFS/internal/folder"
	"github.com/alur/WinUnionFS/internal/group"
	"github.com/alur/WinUnionFS/internal/pidl"
)

// AnchorName is the name of the first node of every namespace identifier.
const AnchorName = "WinUnionFS"

type groupRegistry interface {
	AddUser()
	RemoveUser()
	Find(name string) (*group.Group, bool)
	FindIndex(index int) (*group.Group, bool)
}

// Level is the kind of node a [Folder] addresses.
type Level int

const (
	// LevelRoot lists groups and has no backing folders.
	LevelRoot Level = iota

	// LevelGroup merges the backing folders of a group.
	LevelGroup

	// LevelPath merges one path below the backing folders of a group.
	LevelPath
)

func (l Level) String() string {
	switch l {
	case LevelRoot:
		return "root"
	case LevelGroup:
		return "group"
	case LevelPath:
		return "path"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Anchor returns the identifier of the namespace root.
func Anchor() pidl.ID {
	id, err := pidl.Create(nil, AnchorName, pidl.FolderAttributes, 0)
	if err != nil {
		panic(err)
	}

	return id
}

// Folder is a resolved node of the merged namespace. It counts as one user of
// its registry from construction until [Folder.Close], and it owns one
// reference to each of its backing folders.
type Folder struct {
	registry groupRegistry

	id      pidl.ID
	level   Level
	group   string
	relPath string
	backing []folder.Folder

	closed bool
}

// New resolves id against registry.
func New(registry groupRegistry, id pidl.ID) (*Folder, error) {
	if err := pidl.Validate(id); err != nil {
		return nil, fmt.Errorf("(namespace-new) %w", err)
	}

	registry.AddUser()

	f := &Folder{registry: registry}
	f.resolve(id)

	return f, nil
}

// NewRoot returns the root folder of registry.
func NewRoot(registry groupRegistry) *Folder {
	f, _ := New(registry, Anchor())

	return f
}

// resolve computes the level and the backing folders from the identifier
// alone, so that equal identifiers always resolve alike. Unknown groups and
// missing paths resolve to no backing folders.
func (f *Folder) resolve(id pidl.ID) {
	f.id = pidl.Copy(id)
	f.level = LevelRoot
	f.group = ""
	f.relPath = ""
	f.backing = nil

	if pidl.ItemCount(f.id) <= 1 {
		return
	}

	groupNode := pidl.Next(f.id)
	f.group = pidl.Name(groupNode)
	f.relPath = pidl.GetFullPath(groupNode, nil)

	f.level = LevelGroup
	if f.relPath != "" {
		f.level = LevelPath
	}

	g, ok := f.registry.Find(f.group)
	if !ok {
		slog.Debug("Group not found (resolved empty)",
			"group", f.group,
		)

		return
	}

	f.backing = g.GetShellFoldersFor(f.relPath)
}

func (f *Folder) releaseBacking() {
	for _, backing := range f.backing {
		backing.Release()
	}
	f.backing = nil
}

// Initialize re-points the folder at id and resolves it from scratch.
func (f *Folder) Initialize(id pidl.ID) error {
	if f.closed {
		return fmt.Errorf("(namespace-init) %w", ErrClosed)
	}

	if err := pidl.Validate(id); err != nil {
		return fmt.Errorf("(namespace-init) %w", err)
	}

	f.releaseBacking()
	f.resolve(id)

	return nil
}

// Close releases the backing folders and the registry. Further calls are
// no-ops.
func (f *Folder) Close() {
	if f.closed {
		return
	}
	f.closed = true

	f.releaseBacking()
	f.registry.RemoveUser()
}

// GetCurFolder returns a copy of the identifier of the folder.
func (f *Folder) GetCurFolder() pidl.ID {
	return pidl.Copy(f.id)
}

// Level returns the kind of node the folder addresses.
func (f *Folder) Level() Level {
	return f.level
}

// GroupName returns the name of the addressed group, empty at the root.
func (f *Folder) GroupName() string {
	return f.group
}

// RelativePath returns the path below the group, empty at group level.
func (f *Folder) RelativePath() string {
	return f.relPath
}

// Targets returns the locations of the backing folders in delegate order.
func (f *Folder) Targets() []string {
	paths := make([]string, 0, len(f.backing))
	for _, backing := range f.backing {
		paths = append(paths, backing.Path())
	}

	return paths
}

// BindToObject returns the folder addressed by rel below this one. The new
// folder is resolved from the concatenated identifier and must be closed by
// the caller.
func (f *Folder) BindToObject(rel pidl.ID) (*Folder, error) {
	if err := pidl.Validate(rel); err != nil {
		return nil, fmt.Errorf("(namespace-bind) %w", err)
	}

	if !pidl.IsEnd(rel) && !pidl.GetAttributes(pidl.Last(rel)).IsFolder() {
		return nil, fmt.Errorf("(namespace-bind) %w: %s", ErrNotFolder, pidl.Name(pidl.Last(rel)))
	}

	return New(f.registry, pidl.Concatenate(f.id, rel))
}

// BindToStorage is not offered by the namespace.
func (f *Folder) BindToStorage(pidl.ID) error {
	return fmt.Errorf("(namespace-storage) %w", ErrNotImplemented)
}

// SetNameOf is not offered by the namespace.
func (f *Folder) SetNameOf(pidl.ID, string) (pidl.ID, error) {
	return nil, fmt.Errorf("(namespace-rename) %w", ErrNotImplemented)
}

// Delegate returns the backing folder that child was listed from. The
// folder is borrowed and stays valid until f is closed or re-initialized.
func (f *Folder) Delegate(child pidl.ID) (folder.Folder, error) {
	if f.level == LevelRoot {
		return nil, fmt.Errorf("(namespace-delegate) %w: %s", ErrNoDelegate, pidl.Name(child))
	}

	index := int(pidl.Delegate(child))
	if index >= len(f.backing) {
		return nil, fmt.Errorf("(namespace-delegate) %w: %d of %d", ErrDelegateOutOfRange, index, len(f.backing))
	}

	return f.backing[index], nil
}
