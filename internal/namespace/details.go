package namespace

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alur/WinUnionFS/internal/pidl"
	"github.com/spf13/afero"
)

// Columns names the fields of [Details] in display order.
var Columns = []string{"Name", "Size", "Type", "Modified"}

// Details describes a child for column views.
type Details struct {
	Name       string
	Size       int64
	Type       string
	Modified   time.Time
	Attributes pidl.Attributes
	Folder     bool
}

// Details returns the column data of child. Groups listed at the root have
// no backing item and only carry a name and type.
func (f *Folder) Details(child pidl.ID) (Details, error) {
	if pidl.IsEnd(child) {
		return Details{}, fmt.Errorf("(namespace-details) %w: empty identifier", ErrNotFound)
	}

	last := pidl.Last(child)
	d := Details{
		Name:       pidl.Name(last),
		Attributes: pidl.GetAttributes(last),
	}
	d.Folder = d.Attributes.IsFolder()

	if f.level == LevelRoot {
		d.Type = "Group"

		return d, nil
	}

	backing, err := f.Delegate(child)
	if err != nil {
		return Details{}, fmt.Errorf("(namespace-details) %w", err)
	}

	info, err := backing.Stat(child)
	if err != nil {
		return Details{}, fmt.Errorf("(namespace-details) %w", err)
	}

	d.Modified = info.ModTime()
	d.Type = typeName(d.Name, d.Folder)
	if !d.Folder {
		d.Size = info.Size()
	}

	return d, nil
}

// OpenItem opens the file addressed by child for reading. The caller closes
// the returned file.
func (f *Folder) OpenItem(child pidl.ID) (afero.File, error) {
	if pidl.IsEnd(child) || pidl.GetAttributes(pidl.Last(child)).IsFolder() {
		return nil, fmt.Errorf("(namespace-open) %w: %s", ErrIsFolder, pidl.GetFullPath(pidl.Concatenate(f.id, child), nil))
	}

	backing, err := f.Delegate(child)
	if err != nil {
		return nil, fmt.Errorf("(namespace-open) %w", err)
	}

	file, err := backing.Open(child)
	if err != nil {
		return nil, fmt.Errorf("(namespace-open) %w", err)
	}

	return file, nil
}

func typeName(name string, isFolder bool) string {
	if isFolder {
		return "Folder"
	}

	if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "" {
		return strings.ToUpper(ext) + " File"
	}

	return "File"
}
