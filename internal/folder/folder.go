// Package folder provides the backing folders merged by the namespace. A
// backing folder is a real directory exposed through a small capability
// surface. Names resolve into identifiers and identifiers bind into
// sub-folders whose children can be listed and opened for reading.
//
// Reference counts of all folders opened by a [Binder] are held in its
// [Table]. None of the types in this package are safe for concurrent use;
// callers serialize access.
package folder

import (
	"os"

	"github.com/alur/WinUnionFS/internal/pidl"
	"github.com/spf13/afero"
)

// EnumFlags select which children an enumeration returns.
type EnumFlags uint32

const (
	EnumFolders EnumFlags = 1 << iota
	EnumNonFolders
	EnumIncludeHidden
	EnumCheckingForChildren

	// EnumDefault lists every visible child.
	EnumDefault = EnumFolders | EnumNonFolders
)

// Has reports whether every bit of flags is set.
func (f EnumFlags) Has(flags EnumFlags) bool {
	return f&flags == flags
}

// Folder is the capability surface of a backing folder. Identifiers produced
// by a Folder are relative to it and carry delegate index 0.
type Folder interface {
	// Path returns the location of the folder on its filesystem.
	Path() string

	// ParseDisplayName resolves a relative, [pidl.Separator] separated path
	// into an identifier with one node per segment.
	ParseDisplayName(name string) (pidl.ID, error)

	// BindToFolder opens the sub-folder addressed by a relative identifier.
	// The returned folder holds one reference owned by the caller.
	BindToFolder(id pidl.ID) (Folder, error)

	// EnumObjects lists the direct children selected by flags.
	EnumObjects(flags EnumFlags) ([]pidl.ID, error)

	// GetAttributesOf returns the attributes common to all children.
	GetAttributesOf(children ...pidl.ID) (pidl.Attributes, error)

	// GetDisplayNameOf returns the in-folder name of a child.
	GetDisplayNameOf(child pidl.ID) (string, error)

	// Stat returns the file information of a child.
	Stat(child pidl.ID) (os.FileInfo, error)

	// Open opens a child for reading.
	Open(child pidl.ID) (afero.File, error)

	// AddRef acquires one more reference and returns the new count.
	AddRef() int32

	// Release gives up one reference and returns the remaining count.
	Release() int32
}
