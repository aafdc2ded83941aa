package folder

import "golang.org/x/sys/unix"

// Unix checks directory permissions with the access(2) system call.
type Unix struct{}

func (*Unix) Access(path string, mode uint32) error {
	return unix.Access(path, mode)
}
