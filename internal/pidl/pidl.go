// Package pidl implements the path identifiers used to address nodes in the
// merged namespace. An identifier is a flat, relocatable byte chain of nodes
// terminated by a zero-sized node; it never references live state and may be
// stored, compared byte-wise and handed back at a later time.
package pidl

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/zeebo/blake3"
)

const (
	// Separator joins the node names when rendering a chain as a path.
	Separator = "/"

	// MaxNodeSize is the largest encodable node, header included.
	MaxNodeSize = math.MaxUint16

	sizeLen       = 2
	delegateOff   = 2
	attributesOff = 4
	nameLenOff    = 8
	headerLen     = 10
	terminatorLen = sizeLen
)

// ID is an encoded chain of nodes. A nil (or zero-length) ID means "no path",
// a chain holding only the terminator is the empty path. Every function in
// this package treats an ID as an immutable value unless stated otherwise and
// returns freshly allocated chains.
type ID []byte

// Item is the decoded form of a single node.
type Item struct {
	Name       string
	Attributes Attributes
	Delegate   uint16
}

// Empty returns a chain consisting only of the terminator.
func Empty() ID {
	return make(ID, terminatorLen)
}

// nodeSize returns the size of the node at the start of id, or 0 when id
// starts with the terminator. Sizes overrunning the buffer read as the
// terminator so traversal never leaves the slice.
func nodeSize(id ID) int {
	if len(id) < sizeLen {
		return 0
	}

	n := int(binary.LittleEndian.Uint16(id))
	if n < headerLen || n > len(id) {
		return 0
	}

	return n
}

// Create appends one node to a copy of parent. A parent without nodes starts
// a new chain.
func Create(parent ID, name string, attrs Attributes, delegate uint16) (ID, error) {
	size := headerLen + len(name)
	if size > MaxNodeSize {
		return nil, fmt.Errorf("(pidl-create) %w: %d bytes", ErrSegmentTooLarge, size)
	}

	head := 0
	if parentSize := Size(parent); parentSize > 0 {
		head = parentSize - terminatorLen
	}

	out := make(ID, head+size+terminatorLen)
	copy(out, parent[:head])

	node := out[head:]
	binary.LittleEndian.PutUint16(node, uint16(size))
	binary.LittleEndian.PutUint16(node[delegateOff:], delegate)
	binary.LittleEndian.PutUint32(node[attributesOff:], uint32(attrs))
	binary.LittleEndian.PutUint16(node[nameLenOff:], uint16(len(name)))
	copy(node[headerLen:], name)

	return out, nil
}

// FromPath builds a chain below parent holding one node per non-empty segment
// of path. Every node carries attrs and delegate.
func FromPath(parent ID, path string, attrs Attributes, delegate uint16) (ID, error) {
	out := Copy(parent)

	for _, segment := range strings.Split(path, Separator) {
		if segment == "" {
			continue
		}

		next, err := Create(out, segment, attrs, delegate)
		if err != nil {
			return nil, err
		}
		out = next
	}

	if out == nil {
		out = Empty()
	}

	return out, nil
}

// Copy returns a byte-exact duplicate of the chain. Copying "no path" yields
// "no path".
func Copy(id ID) ID {
	size := Size(id)
	if size == 0 {
		return nil
	}

	out := make(ID, size)
	copy(out, id[:size-terminatorLen])

	return out
}

// Concatenate returns the nodes of a followed by the nodes of b followed by a
// single terminator. When either side is "no path" the result is a copy of
// the other side.
func Concatenate(a, b ID) ID {
	if len(a) == 0 {
		return Copy(b)
	}
	if len(b) == 0 {
		return Copy(a)
	}

	sizeA := Size(a) - terminatorLen
	sizeB := Size(b)

	out := make(ID, sizeA+sizeB)
	copy(out, a[:sizeA])
	copy(out[sizeA:], b[:sizeB-terminatorLen])

	return out
}

// Next returns the chain following the first node of id. At the terminator
// it returns id unchanged.
func Next(id ID) ID {
	return id[nodeSize(id):]
}

// IsEnd reports whether id starts with the terminator.
func IsEnd(id ID) bool {
	return nodeSize(id) == 0
}

// Size returns the byte length of the chain including its terminator, or 0
// for "no path".
func Size(id ID) int {
	if len(id) == 0 {
		return 0
	}

	size := terminatorLen
	for iter := id; !IsEnd(iter); iter = Next(iter) {
		size += nodeSize(iter)
	}

	return size
}

// ItemCount returns the number of nodes before the terminator.
func ItemCount(id ID) int {
	count := 0
	for iter := id; !IsEnd(iter); iter = Next(iter) {
		count++
	}

	return count
}

// Last returns the last node of the chain. A chain without nodes is returned
// as is.
func Last(id ID) ID {
	if IsEnd(id) {
		return id
	}

	for !IsEnd(Next(id)) {
		id = Next(id)
	}

	return id
}

// End returns the chain positioned at its terminator.
func End(id ID) ID {
	for !IsEnd(id) {
		id = Next(id)
	}

	return id
}

// Decode returns the first node of id. The boolean is false at the
// terminator.
func Decode(id ID) (Item, bool) {
	size := nodeSize(id)
	if size == 0 {
		return Item{}, false
	}

	nameLen := int(binary.LittleEndian.Uint16(id[nameLenOff:]))
	if headerLen+nameLen > size {
		nameLen = size - headerLen
	}

	return Item{
		Name:       string(id[headerLen : headerLen+nameLen]),
		Attributes: Attributes(binary.LittleEndian.Uint32(id[attributesOff:])),
		Delegate:   binary.LittleEndian.Uint16(id[delegateOff:]),
	}, true
}

// Items decodes every node of the chain.
func Items(id ID) []Item {
	items := make([]Item, 0, ItemCount(id))
	for iter := id; !IsEnd(iter); iter = Next(iter) {
		item, _ := Decode(iter)
		items = append(items, item)
	}

	return items
}

// Name returns the name of the first node.
func Name(id ID) string {
	item, _ := Decode(id)

	return item.Name
}

// GetAttributes returns the attributes of the first node.
func GetAttributes(id ID) Attributes {
	item, _ := Decode(id)

	return item.Attributes
}

// Delegate returns the delegate index of the first node.
func Delegate(id ID) uint16 {
	item, _ := Decode(id)

	return item.Delegate
}

// SetLastAttributes overwrites the attributes of the last node in place.
func SetLastAttributes(id ID, attrs Attributes) {
	last := Last(id)
	if IsEnd(last) {
		return
	}

	binary.LittleEndian.PutUint32(last[attributesOff:], uint32(attrs))
}

// GetFullPath renders the names of parent's nodes after its first one, joined
// by [Separator], followed by the name of leaf when leaf holds a node. The
// first node of parent is the delegation root and is not part of the path.
func GetFullPath(parent ID, leaf ID) string {
	var segments []string

	if !IsEnd(parent) {
		for iter := Next(parent); !IsEnd(iter); iter = Next(iter) {
			segments = append(segments, Name(iter))
		}
	}

	if !IsEnd(leaf) {
		segments = append(segments, Name(leaf))
	}

	return strings.Join(segments, Separator)
}

// Validate checks that a host-supplied chain is well formed: every node fits
// the buffer, its name fits the node and a terminator follows the last node.
func Validate(id ID) error {
	if len(id) == 0 {
		return nil
	}

	offset := 0
	for {
		rest := id[offset:]
		if len(rest) < sizeLen {
			return fmt.Errorf("%w: missing terminator at offset %d", ErrMalformed, offset)
		}

		size := int(binary.LittleEndian.Uint16(rest))
		if size == 0 {
			return nil
		}
		if size < headerLen || size > len(rest) {
			return fmt.Errorf("%w: node size %d at offset %d", ErrMalformed, size, offset)
		}
		if nameLen := int(binary.LittleEndian.Uint16(rest[nameLenOff:])); headerLen+nameLen > size {
			return fmt.Errorf("%w: name length %d at offset %d", ErrMalformed, nameLen, offset)
		}

		offset += size
	}
}

// chainBytes returns the bytes of the chain up to its terminator. An
// unterminated chain is cut at the end of the buffer.
func chainBytes(id ID) []byte {
	return id[:min(Size(id), len(id))]
}

// Equal reports whether both chains hold the same bytes.
func Equal(a, b ID) bool {
	return string(chainBytes(a)) == string(chainBytes(b))
}

// Fingerprint returns the hex encoded blake3 digest of the chain bytes.
func Fingerprint(id ID) string {
	sum := blake3.Sum256(chainBytes(id))

	return hex.EncodeToString(sum[:])
}

// String renders the node names for diagnostics.
func (id ID) String() string {
	if len(id) == 0 {
		return "<nil>"
	}

	names := make([]string, 0, ItemCount(id))
	for _, item := range Items(id) {
		names = append(names, fmt.Sprintf("%q@%d", item.Name, item.Delegate))
	}

	return "[" + strings.Join(names, " ") + "]"
}
