package pidl

import (
	"fmt"
	"strings"
)

// Attributes is the capability bitmask carried by every node. Values combine.
type Attributes uint32

const (
	AttrReadOnly Attributes = 1 << iota
	AttrHidden
	AttrLink
	AttrStream
	AttrFileSystem
	AttrBrowsable
	AttrFolder
	AttrHasSubfolder

	// AttrAll is the identity of a bitwise AND over attributes.
	AttrAll = ^Attributes(0)

	// FolderAttributes are the attributes of every virtual and merged folder.
	FolderAttributes = AttrFolder | AttrBrowsable | AttrHasSubfolder
)

// Has reports whether every bit of flags is set.
func (a Attributes) Has(flags Attributes) bool {
	return a&flags == flags
}

// IsFolder reports whether [AttrFolder] is set.
func (a Attributes) IsFolder() bool {
	return a.Has(AttrFolder)
}

//nolint:gochecknoglobals
var attributeNames = []struct {
	flag Attributes
	name string
}{
	{AttrFolder, "folder"},
	{AttrBrowsable, "browsable"},
	{AttrHasSubfolder, "hassubfolder"},
	{AttrStream, "stream"},
	{AttrFileSystem, "filesystem"},
	{AttrLink, "link"},
	{AttrReadOnly, "readonly"},
	{AttrHidden, "hidden"},
}

// String renders the set flags joined by "|", or "none".
func (a Attributes) String() string {
	var names []string
	rest := a

	for _, attr := range attributeNames {
		if a.Has(attr.flag) {
			names = append(names, attr.name)
			rest &^= attr.flag
		}
	}

	if rest != 0 {
		names = append(names, fmt.Sprintf("%#x", uint32(rest)))
	}

	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, "|")
}
