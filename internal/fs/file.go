package fs

import "os"

// Local is the local file system.
type Local struct{}

var _ FS = Local{}

// Open opens a file for reading.
func (Local) Open(name string) (File, error) {
	f, err := os.Open(fixpath(name))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Stat returns a FileInfo structure describing the named file.
// If there is an error, it will be of type *PathError.
func (Local) Stat(name string) (os.FileInfo, error) {
	return os.Stat(fixpath(name))
}

// IsRegularFile returns true for plain files, false for directories,
// devices and other special files.
func IsRegularFile(fi os.FileInfo) bool {
	return fi.Mode()&(os.ModeType|os.ModeCharDevice) == 0
}
