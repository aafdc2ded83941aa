package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

type fileProvider interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

type yamlDocument struct {
	Groups []yamlGroup `yaml:"groups"`
}

type yamlGroup struct {
	Name    string       `yaml:"name"`
	Folders []yamlFolder `yaml:"folders"`
}

type yamlFolder struct {
	Path string `yaml:"path"`
}

// YAMLStore keeps all groups in a single YAML document:
//
//	groups:
//	  - name: Work
//	    folders:
//	      - path: /srv/a
//	      - path: /srv/b
type YAMLStore struct {
	path        string
	fileHandler fileProvider
}

func NewYAMLStore(path string, fileHandler fileProvider) *YAMLStore {
	return &YAMLStore{
		path:        path,
		fileHandler: fileHandler,
	}
}

func (s *YAMLStore) read() (*yamlDocument, error) {
	doc := &yamlDocument{}

	data, err := s.fileHandler.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}

		return nil, fmt.Errorf("(config-yamlstore) failed to read (%s): %w", s.path, err)
	}

	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("(config-yamlstore) failed to parse (%s): %w", s.path, err)
	}

	return doc, nil
}

func (s *YAMLStore) write(doc *yamlDocument) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("(config-yamlstore) failed to encode: %w", err)
	}

	if err := s.fileHandler.MkdirAll(filepath.Dir(s.path), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("(config-yamlstore) failed to create dir: %w", err)
	}

	if err := s.fileHandler.WriteFile(s.path, data, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("(config-yamlstore) failed to write (%s): %w", s.path, err)
	}

	return nil
}

// Groups returns the groups in document order. A missing file reads as no
// groups; groups without a name and folders without a path are skipped.
func (s *YAMLStore) Groups() ([]GroupDefinition, error) {
	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	defs := []GroupDefinition{}

	for i, group := range doc.Groups {
		if err := validateGroupName(group.Name); err != nil {
			slog.Warn("Group entry without a valid name (was skipped)",
				"index", i,
				"err", err,
			)

			continue
		}

		def := GroupDefinition{Name: group.Name, Paths: []string{}}

		for j, folder := range group.Folders {
			folderPath := strings.TrimSpace(folder.Path)
			if folderPath == "" {
				slog.Warn("Folder entry without a path (was skipped)",
					"group", group.Name,
					"index", j,
				)

				continue
			}
			def.Paths = append(def.Paths, folderPath)
		}

		defs = append(defs, def)
	}

	return defs, nil
}

// Save replaces the group named def.Name in place, or appends it.
func (s *YAMLStore) Save(def GroupDefinition) error {
	if err := validateGroupName(def.Name); err != nil {
		return fmt.Errorf("(config-yamlstore) %w", err)
	}

	doc, err := s.read()
	if err != nil {
		return err
	}

	group := yamlGroup{Name: def.Name, Folders: make([]yamlFolder, 0, len(def.Paths))}
	for _, path := range def.Paths {
		group.Folders = append(group.Folders, yamlFolder{Path: path})
	}

	replaced := false
	for i := range doc.Groups {
		if doc.Groups[i].Name == def.Name {
			doc.Groups[i] = group
			replaced = true

			break
		}
	}
	if !replaced {
		doc.Groups = append(doc.Groups, group)
	}

	return s.write(doc)
}

// Remove deletes the group named name.
func (s *YAMLStore) Remove(name string) error {
	doc, err := s.read()
	if err != nil {
		return err
	}

	kept := doc.Groups[:0]
	for _, group := range doc.Groups {
		if group.Name != name {
			kept = append(kept, group)
		}
	}

	if len(kept) == len(doc.Groups) {
		return fmt.Errorf("(config-yamlstore) %w: %s", ErrGroupNotFound, name)
	}
	doc.Groups = kept

	return s.write(doc)
}
