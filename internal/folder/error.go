package folder

import "errors"

var (
	// ErrNotFound occurs when a name does not resolve inside a folder.
	ErrNotFound = errors.New("no such item")

	// ErrNotFolder occurs when binding to an item that is not a directory.
	ErrNotFolder = errors.New("item is not a folder")

	// ErrNoAccess occurs when a directory exists but cannot be browsed.
	ErrNoAccess = errors.New("folder is not accessible")

	// ErrInvalidName occurs when a name contains segments that would leave
	// the folder.
	ErrInvalidName = errors.New("invalid item name")
)
