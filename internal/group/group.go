// Package group holds the registry of named groups. A group is an ordered
// list of backing folders presented as one merged folder; the position of a
// folder in that list is the delegate index encoded in identifiers.
package group

import (
	"fmt"
	"log/slog"

	"github.com/alur/WinUnionFS/internal/configuration"
	"github.com/alur/WinUnionFS/internal/folder"
)

type storeProvider interface {
	Groups() ([]configuration.GroupDefinition, error)
}

type folderBinder interface {
	Bind(path string) (folder.Folder, error)
}

// Group is a loaded group. It owns one reference to each of its folders.
type Group struct {
	Name    string
	folders []folder.Folder
}

// Len returns the number of bound backing folders.
func (g *Group) Len() int {
	return len(g.folders)
}

// Paths returns the locations of the bound backing folders in stored order.
func (g *Group) Paths() []string {
	paths := make([]string, 0, len(g.folders))
	for _, f := range g.folders {
		paths = append(paths, f.Path())
	}

	return paths
}

// GetShellFoldersFor returns the backing folders denoted by relPath, in
// stored order. An empty relPath yields every folder of the group; otherwise
// relPath is resolved within each folder and folders not containing it
// contribute nothing. Each returned folder carries one reference owned by
// the caller.
func (g *Group) GetShellFoldersFor(relPath string) []folder.Folder {
	out := make([]folder.Folder, 0, len(g.folders))

	for _, f := range g.folders {
		if relPath == "" {
			f.AddRef()
			out = append(out, f)

			continue
		}

		id, err := f.ParseDisplayName(relPath)
		if err != nil {
			slog.Debug("Path not present in backing folder (was skipped)",
				"group", g.Name,
				"folder", f.Path(),
				"path", relPath,
				"err", err,
			)

			continue
		}

		target, err := f.BindToFolder(id)
		if err != nil {
			slog.Debug("Path not bindable in backing folder (was skipped)",
				"group", g.Name,
				"folder", f.Path(),
				"path", relPath,
				"err", err,
			)

			continue
		}

		out = append(out, target)
	}

	return out
}

func (g *Group) release() {
	for _, f := range g.folders {
		f.Release()
	}
	g.folders = nil
}

// Registry is the table of loaded groups. Groups are loaded when the first
// user is added and released when the last user is removed; the set is
// always loaded and released as a whole. A Registry is not safe for
// concurrent use.
type Registry struct {
	storeHandler  storeProvider
	folderHandler folderBinder

	users  int
	groups []*Group
}

func NewRegistry(storeHandler storeProvider, folderHandler folderBinder) *Registry {
	return &Registry{
		storeHandler:  storeHandler,
		folderHandler: folderHandler,
	}
}

// AddUser registers a user of the registry and loads the groups when it is
// the first one. A failing load is logged and leaves the registry empty.
func (r *Registry) AddUser() {
	r.users++

	if r.users == 1 {
		if err := r.Load(); err != nil {
			slog.Error("Failed to load groups (continuing without groups)",
				"err", err,
			)
		}
	}
}

// RemoveUser unregisters a user of the registry and releases all groups
// when it was the last one. Removing more users than were added panics.
func (r *Registry) RemoveUser() {
	if r.users == 0 {
		panic("group: RemoveUser without matching AddUser")
	}

	r.users--

	if r.users == 0 {
		r.unload()
	}
}

// Users returns the number of registered users.
func (r *Registry) Users() int {
	return r.users
}

// Load replaces the loaded groups with the ones in the store. Folder paths
// that do not bind are skipped; when the store cannot be read the registry
// ends up empty and the error is returned.
func (r *Registry) Load() error {
	r.unload()

	defs, err := r.storeHandler.Groups()
	if err != nil {
		return fmt.Errorf("(group-load) failed to read store: %w", err)
	}

	seen := make(map[string]struct{}, len(defs))
	groups := make([]*Group, 0, len(defs))

	for _, def := range defs {
		if _, exists := seen[def.Name]; exists {
			slog.Warn("Failure loading group (was skipped)",
				"group", def.Name,
				"err", ErrDuplicateGroup,
			)

			continue
		}
		seen[def.Name] = struct{}{}

		group := &Group{Name: def.Name}

		for _, path := range def.Paths {
			f, err := r.folderHandler.Bind(path)
			if err != nil {
				slog.Warn("Failure binding folder of group (was skipped)",
					"group", def.Name,
					"path", path,
					"err", err,
				)

				continue
			}
			group.folders = append(group.folders, f)
		}

		groups = append(groups, group)
	}

	r.groups = groups

	slog.Debug("Loaded groups", "count", len(groups))

	return nil
}

func (r *Registry) unload() {
	for _, group := range r.groups {
		group.release()
	}
	r.groups = nil
}

// Len returns the number of loaded groups.
func (r *Registry) Len() int {
	return len(r.groups)
}

// Find returns the group with exactly the given name.
func (r *Registry) Find(name string) (*Group, bool) {
	for i := 0; ; i++ {
		group, ok := r.FindIndex(i)
		if !ok {
			return nil, false
		}
		if group.Name == name {
			return group, true
		}
	}
}

// FindIndex returns the group at position index.
func (r *Registry) FindIndex(index int) (*Group, bool) {
	if index < 0 || index >= len(r.groups) {
		return nil, false
	}

	return r.groups[index], true
}
