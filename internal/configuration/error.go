package configuration

import "errors"

var (
	// ErrInvalidGroupName occurs when a group name cannot be stored, for
	// example because it is empty or contains a path separator.
	ErrInvalidGroupName = errors.New("invalid group name")

	// ErrGroupNotFound occurs when removing a group that is not stored.
	ErrGroupNotFound = errors.New("group does not exist")

	// ErrTooManyFolders occurs when a group holds more folders than
	// [MaxGroupFolders].
	ErrTooManyFolders = errors.New("too many folders in group")

	// ErrUnknownStore occurs when the configured store kind is not known.
	ErrUnknownStore = errors.New("unknown store kind")
)
