package folder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alur/WinUnionFS/internal/pidl"
	"github.com/spf13/afero"
)

type aferoFolder struct {
	binder *Binder
	path   string
	handle Handle
}

func (f *aferoFolder) Path() string {
	return f.path
}

// Handle returns the table handle of the folder.
func (f *aferoFolder) Handle() Handle {
	return f.handle
}

func (f *aferoFolder) AddRef() int32 {
	return f.binder.table.acquire(f.handle)
}

func (f *aferoFolder) Release() int32 {
	return f.binder.table.release(f.handle)
}

func (f *aferoFolder) ParseDisplayName(name string) (pidl.ID, error) {
	rel, err := cleanRelative(name)
	if err != nil {
		return nil, err
	}

	id := pidl.Empty()
	walked := f.path

	for _, segment := range strings.Split(rel, pidl.Separator) {
		walked = filepath.Join(walked, segment)

		info, err := f.stat(walked)
		if err != nil {
			return nil, err
		}

		id, err = pidl.Create(id, segment, attributesOf(segment, info), 0)
		if err != nil {
			return nil, fmt.Errorf("(folder-parse) %w", err)
		}
	}

	return id, nil
}

func (f *aferoFolder) BindToFolder(id pidl.ID) (Folder, error) {
	target, err := f.childPath(id)
	if err != nil {
		return nil, err
	}

	child, err := f.binder.bind(target)
	if err != nil {
		return nil, err
	}

	return child, nil
}

func (f *aferoFolder) EnumObjects(flags EnumFlags) ([]pidl.ID, error) {
	infos, err := afero.ReadDir(f.binder.fs, f.path)
	if err != nil {
		return nil, fmt.Errorf("(folder-enum) failed to readdir (%s): %w", f.path, err)
	}

	wantFolders := flags.Has(EnumFolders) || flags.Has(EnumCheckingForChildren)
	wantFiles := flags.Has(EnumNonFolders)

	children := make([]pidl.ID, 0, len(infos))
	for _, info := range infos {
		attrs := attributesOf(info.Name(), f.resolveLink(info))

		if attrs.Has(pidl.AttrHidden) && !flags.Has(EnumIncludeHidden) {
			continue
		}
		if attrs.IsFolder() && !wantFolders || !attrs.IsFolder() && !wantFiles {
			continue
		}

		child, err := pidl.Create(nil, info.Name(), attrs, 0)
		if err != nil {
			return nil, fmt.Errorf("(folder-enum) %w", err)
		}
		children = append(children, child)
	}

	return children, nil
}

func (f *aferoFolder) GetAttributesOf(children ...pidl.ID) (pidl.Attributes, error) {
	attrs := pidl.AttrAll

	for _, child := range children {
		target, err := f.childPath(child)
		if err != nil {
			return 0, err
		}

		info, err := f.stat(target)
		if err != nil {
			return 0, err
		}

		attrs &= attributesOf(filepath.Base(target), info)
	}

	return attrs, nil
}

func (f *aferoFolder) GetDisplayNameOf(child pidl.ID) (string, error) {
	if pidl.IsEnd(child) {
		return "", fmt.Errorf("(folder-name) %w: empty identifier", ErrNotFound)
	}

	return pidl.Name(pidl.Last(child)), nil
}

func (f *aferoFolder) Stat(child pidl.ID) (os.FileInfo, error) {
	target, err := f.childPath(child)
	if err != nil {
		return nil, err
	}

	return f.stat(target)
}

func (f *aferoFolder) Open(child pidl.ID) (afero.File, error) {
	target, err := f.childPath(child)
	if err != nil {
		return nil, err
	}

	file, err := f.binder.fs.Open(target)
	if err != nil {
		return nil, fmt.Errorf("(folder-open) failed to open (%s): %w", target, err)
	}

	return file, nil
}

func (f *aferoFolder) stat(path string) (os.FileInfo, error) {
	info, err := f.binder.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("(folder-stat) %w: %s: %w", ErrNotFound, path, err)
		}

		return nil, fmt.Errorf("(folder-stat) failed to stat (%s): %w", path, err)
	}

	return info, nil
}

// resolveLink follows symbolic links so that linked directories list as
// folders. Broken links keep their own information.
func (f *aferoFolder) resolveLink(info os.FileInfo) os.FileInfo {
	if info.Mode()&os.ModeSymlink == 0 {
		return info
	}

	target, err := f.binder.fs.Stat(filepath.Join(f.path, info.Name()))
	if err != nil {
		return info
	}

	return linkInfo{target}
}

// childPath joins the names of a relative identifier below the folder.
func (f *aferoFolder) childPath(id pidl.ID) (string, error) {
	segments := make([]string, 0, pidl.ItemCount(id))
	for _, item := range pidl.Items(id) {
		segments = append(segments, item.Name)
	}

	if len(segments) == 0 {
		return f.path, nil
	}

	rel, err := cleanRelative(strings.Join(segments, pidl.Separator))
	if err != nil {
		return "", err
	}

	return filepath.Join(f.path, rel), nil
}

func cleanRelative(name string) (string, error) {
	rel := filepath.ToSlash(filepath.Clean(strings.TrimPrefix(name, pidl.Separator)))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("(folder-name) %w: %q", ErrInvalidName, name)
	}

	return rel, nil
}

// linkInfo reports the target of a symbolic link while keeping the link bit.
type linkInfo struct {
	os.FileInfo
}

func (l linkInfo) Mode() os.FileMode {
	return l.FileInfo.Mode() | os.ModeSymlink
}

func attributesOf(name string, info os.FileInfo) pidl.Attributes {
	attrs := pidl.AttrFileSystem

	if info.IsDir() {
		attrs |= pidl.FolderAttributes
	} else {
		attrs |= pidl.AttrStream
	}

	if info.Mode()&os.ModeSymlink != 0 {
		attrs |= pidl.AttrLink
	}
	if info.Mode().Perm()&0o222 == 0 {
		attrs |= pidl.AttrReadOnly
	}
	if strings.HasPrefix(name, ".") {
		attrs |= pidl.AttrHidden
	}

	return attrs
}
