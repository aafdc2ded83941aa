package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

type osProvider interface {
	ReadDir(name string) ([]os.DirEntry, error)
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
	Rename(oldpath string, newpath string) error
	Stat(name string) (os.FileInfo, error)
}

// DirStore keeps one directory per group below its root. Each group holds a
// [FoldersDir] directory with one [EntrySuffix] file per folder, carrying the
// folder location under [SettingFolderPath]:
//
//	<root>/Work/folders/00000.cfg    Path="/srv/a"
//	<root>/Work/folders/00001.cfg    Path="/srv/b"
//
// Groups are read in lexical order, entries in the numeric order of their
// file names. Directories starting with a dot are not groups.
type DirStore struct {
	root          string
	configHandler *Handler
	osHandler     osProvider
}

func NewDirStore(root string, configHandler *Handler, osHandler osProvider) *DirStore {
	return &DirStore{
		root:          root,
		configHandler: configHandler,
		osHandler:     osHandler,
	}
}

// Groups returns all stored groups. A missing root reads as no groups; an
// unreadable root is an error. Unreadable group or folder entries are
// skipped.
func (s *DirStore) Groups() ([]GroupDefinition, error) {
	entries, err := s.osHandler.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("(config-dirstore) failed to readdir (%s): %w", s.root, err)
	}

	defs := []GroupDefinition{}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		def := GroupDefinition{Name: entry.Name()}

		paths, err := s.readFolders(filepath.Join(s.root, entry.Name(), FoldersDir))
		if err != nil {
			slog.Warn("Failure reading folders of group (was skipped)",
				"group", def.Name,
				"err", err,
			)

			continue
		}
		def.Paths = paths

		defs = append(defs, def)
	}

	return defs, nil
}

func (s *DirStore) readFolders(dir string) ([]string, error) {
	entries, err := s.osHandler.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}

		return nil, fmt.Errorf("(config-dirstore) failed to readdir (%s): %w", dir, err)
	}

	paths := []string{}

	slices.SortStableFunc(entries, func(a, b os.DirEntry) int {
		return compareEntryNames(a.Name(), b.Name())
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), EntrySuffix) {
			continue
		}

		entryPath := filepath.Join(dir, entry.Name())

		configMap, err := s.configHandler.ReadGeneric(entryPath)
		if err != nil {
			slog.Warn("Failure reading folder entry (was skipped)",
				"entry", entryPath,
				"err", err,
			)

			continue
		}

		folderPath := strings.TrimSpace(s.configHandler.MapKeyToString(configMap, SettingFolderPath))
		if folderPath == "" {
			slog.Warn("Folder entry without a path (was skipped)",
				"entry", entryPath,
			)

			continue
		}

		paths = append(paths, folderPath)
	}

	return paths, nil
}

// compareEntryNames orders entries by the number in their name. Names that
// are not numbers sort after all numbered ones.
func compareEntryNames(a, b string) int {
	na, errA := strconv.Atoi(strings.TrimSuffix(a, EntrySuffix))
	nb, errB := strconv.Atoi(strings.TrimSuffix(b, EntrySuffix))

	switch {
	case errA == nil && errB == nil:
		return na - nb
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// Save replaces the stored definition of def.Name. The entries are written
// into a staging directory first, so a failed write keeps the previous
// definition.
func (s *DirStore) Save(def GroupDefinition) error {
	if err := validateGroupName(def.Name); err != nil {
		return fmt.Errorf("(config-dirstore) %w", err)
	}

	if len(def.Paths) > MaxGroupFolders {
		return fmt.Errorf("(config-dirstore) %w: %d", ErrTooManyFolders, len(def.Paths))
	}

	groupDir := filepath.Join(s.root, def.Name)
	stagingDir := filepath.Join(s.root, "."+def.Name+stagingSuffix)
	backupDir := filepath.Join(s.root, "."+def.Name+backupSuffix)

	if err := s.stage(stagingDir, def.Paths); err != nil {
		_ = s.osHandler.RemoveAll(stagingDir)

		return err
	}

	hadGroup := false
	if _, err := s.osHandler.Stat(groupDir); err == nil {
		if err := s.osHandler.RemoveAll(backupDir); err != nil {
			_ = s.osHandler.RemoveAll(stagingDir)

			return fmt.Errorf("(config-dirstore) failed to clear backup (%s): %w", backupDir, err)
		}
		if err := s.osHandler.Rename(groupDir, backupDir); err != nil {
			_ = s.osHandler.RemoveAll(stagingDir)

			return fmt.Errorf("(config-dirstore) failed to move group aside (%s): %w", groupDir, err)
		}
		hadGroup = true
	}

	if err := s.osHandler.Rename(stagingDir, groupDir); err != nil {
		if hadGroup {
			_ = s.osHandler.Rename(backupDir, groupDir)
		}
		_ = s.osHandler.RemoveAll(stagingDir)

		return fmt.Errorf("(config-dirstore) failed to install group (%s): %w", groupDir, err)
	}

	if hadGroup {
		if err := s.osHandler.RemoveAll(backupDir); err != nil {
			slog.Warn("Failure removing previous group definition (was left behind)",
				"path", backupDir,
				"err", err,
			)
		}
	}

	return nil
}

func (s *DirStore) stage(dir string, paths []string) error {
	if err := s.osHandler.RemoveAll(dir); err != nil {
		return fmt.Errorf("(config-dirstore) failed to clear staging (%s): %w", dir, err)
	}

	foldersDir := filepath.Join(dir, FoldersDir)
	if err := s.osHandler.MkdirAll(foldersDir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("(config-dirstore) failed to create group (%s): %w", foldersDir, err)
	}

	for i, path := range paths {
		entryPath := filepath.Join(foldersDir, fmt.Sprintf("%05d%s", i, EntrySuffix))
		if err := s.configHandler.WriteGeneric(map[string]string{SettingFolderPath: path}, entryPath); err != nil {
			return fmt.Errorf("(config-dirstore) failed to write entry (%s): %w", entryPath, err)
		}
	}

	return nil
}

// Remove deletes the stored definition of name.
func (s *DirStore) Remove(name string) error {
	if err := validateGroupName(name); err != nil {
		return fmt.Errorf("(config-dirstore) %w", err)
	}

	groupDir := filepath.Join(s.root, name)
	if _, err := s.osHandler.Stat(groupDir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("(config-dirstore) %w: %s", ErrGroupNotFound, name)
		}

		return fmt.Errorf("(config-dirstore) failed to stat (%s): %w", groupDir, err)
	}

	if err := s.osHandler.RemoveAll(groupDir); err != nil {
		return fmt.Errorf("(config-dirstore) failed to remove group (%s): %w", groupDir, err)
	}

	return nil
}
