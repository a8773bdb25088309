package fs

import (
	"io"
	"os"
)

// FS bundles the file system operations needed to read input files. Stat
// is called before Open so that special files are never opened.
type FS interface {
	Open(name string) (File, error)
	Stat(name string) (os.FileInfo, error)
}

// File is an open file.
type File interface {
	io.Reader
	io.Closer
}
