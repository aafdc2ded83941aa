package namespace

import "errors"

var (
	// ErrNotImplemented occurs for mutations the namespace does not offer,
	// such as renaming items or binding to storage.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNotFound occurs when a display name does not resolve.
	ErrNotFound = errors.New("no such item")

	// ErrNotFolder occurs when binding to an item that is not a folder.
	ErrNotFolder = errors.New("item is not a folder")

	// ErrIsFolder occurs when opening a folder for reading.
	ErrIsFolder = errors.New("item is a folder")

	// ErrNoDelegate occurs when an item has no backing folder, which is the
	// case for the groups listed at the root.
	ErrNoDelegate = errors.New("item has no backing folder")

	// ErrClosed occurs when re-pointing a folder that was already closed.
	ErrClosed = errors.New("folder is closed")

	// ErrDelegateOutOfRange occurs when the delegate index of an item does
	// not address a backing folder of the current folder.
	ErrDelegateOutOfRange = errors.New("delegate index out of range")
)
