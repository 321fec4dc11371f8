// Package walkertest provides filesystem wrappers for testing traversal
// failures in packages that walk a billy.Filesystem.
package walkertest

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

// unlistable fails ReadDir for one directory and delegates everything else.
type unlistable struct {
	billy.Filesystem
	dir string
}

// Unlistable wraps fs so that listing dir fails with a permission error,
// as a directory without read permission does on a real filesystem.
// The directory itself still exists and can be stat'ed.
func Unlistable(fs billy.Filesystem, dir string) billy.Filesystem {
	return &unlistable{Filesystem: fs, dir: filepath.Clean(dir)}
}

// ReadDir returns an *os.PathError wrapping os.ErrPermission for the
// blocked directory.
func (u *unlistable) ReadDir(path string) ([]os.FileInfo, error) {
	if filepath.Clean(path) == u.dir {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrPermission}
	}
	return u.Filesystem.ReadDir(path)
}
