package group

import "errors"

// ErrDuplicateGroup occurs when the store holds more than one group with the
// same name. Only the first one is loaded.
var ErrDuplicateGroup = errors.New("duplicate group name")
