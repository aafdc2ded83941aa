package configuration

import "os"

type OS struct{}

func (*OS) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

func (*OS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (*OS) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (*OS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (*OS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (*OS) Rename(oldpath string, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (*OS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}
