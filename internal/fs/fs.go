package fs

import (
	"io"
	"os"
)

// File represents an open backing file. The descriptor must stay valid
// until the caller has mapped the file; Fd is what the mapping syscalls
// consume.
type File interface {
	io.Closer
	Truncate(size int64) error
	Fd() uintptr
	Name() string
}

// FileSystem abstracts the file operations segment provisioning needs.
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	Remove(name string) error
	MkdirAll(path string, perm os.FileMode) error
}

// LocalFS implements FileSystem using the local os package.
type LocalFS struct{}

func (LocalFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(name, flag, perm)
}

func (LocalFS) Remove(name string) error { return os.Remove(name) }
func (LocalFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Default is the default local file system.
var Default FileSystem = LocalFS{}
