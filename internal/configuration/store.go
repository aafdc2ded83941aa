package configuration

import (
	"fmt"
	"strings"
)

// GroupDefinition is the persisted form of a group: its name and its folder
// paths in stored order.
type GroupDefinition struct {
	Name  string
	Paths []string
}

// Store is a persisted collection of group definitions.
type Store interface {
	Groups() ([]GroupDefinition, error)
	Save(def GroupDefinition) error
	Remove(name string) error
}

// NewStore returns the [Store] of the given kind located at path.
func NewStore(kind string, path string, configHandler *Handler) (Store, error) {
	switch strings.ToLower(kind) {
	case StoreKindDir, "":
		return NewDirStore(path, configHandler, &OS{}), nil
	case StoreKindYAML:
		return NewYAMLStore(path, &OS{}), nil
	default:
		return nil, fmt.Errorf("(config-store) %w: %q", ErrUnknownStore, kind)
	}
}

func validateGroupName(name string) error {
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidGroupName, name)
	}

	return nil
}
