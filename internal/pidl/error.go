package pidl

import "errors"

var (
	// ErrSegmentTooLarge occurs when a node would not fit into [MaxNodeSize]
	// bytes. The identifier cannot be built and the call must fail.
	ErrSegmentTooLarge = errors.New("path segment exceeds the maximum node size")

	// ErrMalformed occurs when a chain received from outside does not decode
	// into a terminated sequence of nodes.
	ErrMalformed = errors.New("malformed path identifier")
)
