package folder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

type accessProvider interface {
	Access(path string, mode uint32) error
}

// Binder resolves absolute paths into backing folders. Every folder it opens,
// directly or through [Folder.BindToFolder], is accounted in its [Table].
type Binder struct {
	fs            afero.Fs
	table         *Table
	accessHandler accessProvider
}

// NewBinder returns a [Binder] on fs. The accessHandler may be nil when fs is
// not backed by the operating system.
func NewBinder(fs afero.Fs, table *Table, accessHandler accessProvider) *Binder {
	return &Binder{
		fs:            fs,
		table:         table,
		accessHandler: accessHandler,
	}
}

// NewOSBinder returns a [Binder] on the operating system filesystem.
func NewOSBinder(table *Table) *Binder {
	return NewBinder(afero.NewOsFs(), table, &Unix{})
}

// Table returns the reference table of the binder.
func (b *Binder) Table() *Table {
	return b.table
}

// Bind opens the directory at path. The returned folder holds one reference
// owned by the caller.
func (b *Binder) Bind(path string) (Folder, error) {
	if path == "" {
		return nil, fmt.Errorf("(folder-bind) %w: empty path", ErrInvalidName)
	}

	f, err := b.bind(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (b *Binder) bind(path string) (*aferoFolder, error) {
	info, err := b.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("(folder-bind) %w: %s: %w", ErrNotFound, path, err)
		}

		return nil, fmt.Errorf("(folder-bind) failed to stat (%s): %w", path, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("(folder-bind) %w: %s", ErrNotFolder, path)
	}

	if b.accessHandler != nil {
		if err := b.accessHandler.Access(path, unix.R_OK|unix.X_OK); err != nil {
			return nil, fmt.Errorf("(folder-bind) %w: %s: %w", ErrNoAccess, path, err)
		}
	}

	return &aferoFolder{
		binder: b,
		path:   path,
		handle: b.table.open(path),
	}, nil
}
