package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alur/WinUnionFS/internal/configuration"
	"github.com/alur/WinUnionFS/internal/folder"
	"github.com/alur/WinUnionFS/internal/group"
	"github.com/alur/WinUnionFS/internal/namespace"
	"github.com/alur/WinUnionFS/internal/pidl"
)

type storeProvider interface {
	Groups() ([]configuration.GroupDefinition, error)
}

// session is the host side of the namespace: it owns the registry and keeps
// the root folder open while commands navigate below it.
type session struct {
	binder   *folder.Binder
	registry *group.Registry
	root     *namespace.Folder
}

func newSession(store storeProvider, binder *folder.Binder) *session {
	registry := group.NewRegistry(store, binder)

	return &session{
		binder:   binder,
		registry: registry,
		root:     namespace.NewRoot(registry),
	}
}

// Close releases the root and reports references that were not released.
func (s *session) Close() {
	s.root.Close()

	if live := s.binder.Table().Live(); live > 0 {
		slog.Warn("Backing folders still referenced at exit",
			"count", live,
			"paths", s.binder.Table().LivePaths(),
		)
	}
}

// parse resolves a slash separated namespace path into an identifier
// relative to the root.
func (s *session) parse(path string) (pidl.ID, pidl.Attributes, error) {
	id, attrs, err := s.root.ParseDisplayName(path)
	if err != nil {
		return nil, 0, fmt.Errorf("(session) %w", err)
	}

	return id, attrs, nil
}

// Open returns the folder at path. The caller closes it.
func (s *session) Open(path string) (*namespace.Folder, error) {
	id, attrs, err := s.parse(path)
	if err != nil {
		return nil, err
	}

	if !attrs.IsFolder() {
		return nil, fmt.Errorf("(session) %w: %s", namespace.ErrNotFolder, path)
	}

	f, err := s.root.BindToObject(id)
	if err != nil {
		return nil, fmt.Errorf("(session) %w", err)
	}

	return f, nil
}

// OpenParent returns the folder containing the item at path together with
// the identifier of the item relative to it. The caller closes the folder.
func (s *session) OpenParent(path string) (*namespace.Folder, pidl.ID, error) {
	id, _, err := s.parse(path)
	if err != nil {
		return nil, nil, err
	}

	if pidl.IsEnd(id) {
		return nil, nil, fmt.Errorf("(session) %w: %q", namespace.ErrIsFolder, path)
	}

	parentID := pidl.Empty()
	for iter := id; !pidl.IsEnd(pidl.Next(iter)); iter = pidl.Next(iter) {
		item, _ := pidl.Decode(iter)

		parentID, err = pidl.Create(parentID, item.Name, item.Attributes, item.Delegate)
		if err != nil {
			return nil, nil, fmt.Errorf("(session) %w", err)
		}
	}

	parent, err := s.root.BindToObject(parentID)
	if err != nil {
		return nil, nil, fmt.Errorf("(session) %w", err)
	}

	// Delegate indexes are positions in the parent's own backing set.
	child, _, err := parent.ParseDisplayName(pidl.Name(pidl.Last(id)))
	if err != nil {
		parent.Close()

		return nil, nil, fmt.Errorf("(session) %w", err)
	}

	return parent, child, nil
}

// displayPath renders the location of f for output.
func displayPath(f *namespace.Folder) string {
	name, _ := f.GetDisplayNameOf(nil, namespace.NameNormal)

	return "/" + strings.TrimPrefix(name, pidl.Separator)
}
