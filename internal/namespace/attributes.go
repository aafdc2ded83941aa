package namespace

import (
	"slices"
	"strings"

	"github.com/alur/WinUnionFS/internal/pidl"
)

// GetAttributesOf returns the attributes all children have in common. An
// empty batch, or a child without nodes, stands for the folder itself.
func (f *Folder) GetAttributesOf(children ...pidl.ID) pidl.Attributes {
	attrs := pidl.FolderAttributes
	if len(children) > 0 {
		attrs = pidl.AttrAll
	}

	for _, child := range children {
		if pidl.IsEnd(child) {
			attrs &= pidl.FolderAttributes

			continue
		}
		attrs &= pidl.GetAttributes(pidl.Last(child))
	}

	return attrs
}

// CompareIDs orders two relative identifiers by the ordinal comparison of
// their node names, node by node. A chain sorts before any longer chain it
// is a prefix of.
func CompareIDs(a, b pidl.ID) int {
	for {
		endA, endB := pidl.IsEnd(a), pidl.IsEnd(b)

		switch {
		case endA && endB:
			return 0
		case endA:
			return -1
		case endB:
			return 1
		}

		if c := strings.Compare(pidl.Name(a), pidl.Name(b)); c != 0 {
			return c
		}

		a, b = pidl.Next(a), pidl.Next(b)
	}
}

// SortIDs sorts ids in place by [CompareIDs], keeping equal ids in order.
func SortIDs(ids []pidl.ID) {
	slices.SortStableFunc(ids, CompareIDs)
}
