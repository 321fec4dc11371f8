package walker

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// errStop ends a walk early when the consumer stops iterating.
var errStop = errors.New("walk stopped")

// Candidate is an image file found beneath the scan root.
type Candidate struct {
	// Dir is the containing directory as a path inside the filesystem.
	Dir string

	// Name is the file's base name.
	Name string

	// Subfolder is Dir relative to the scan root; "." for root-level files.
	Subfolder string
}

// Path returns the candidate's path inside the filesystem.
func (c Candidate) Path() string {
	return filepath.Join(c.Dir, c.Name)
}

// Walker enumerates candidate files beneath a root.
type Walker struct {
	fs     billy.Filesystem
	root   string
	filter *Filter
}

// Option configures a Walker.
type Option func(*Walker)

// WithFilter sets the extension filter. The default is NewFilter(nil, false).
func WithFilter(f *Filter) Option {
	return func(w *Walker) {
		if f != nil {
			w.filter = f
		}
	}
}

// New creates a Walker over fs starting at root.
func New(fs billy.Filesystem, root string, opts ...Option) *Walker {
	if root == "" {
		root = "."
	}

	w := &Walker{
		fs:   fs,
		root: filepath.Clean(root),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.filter == nil {
		w.filter = NewFilter(nil, false)
	}
	return w
}

// Root returns the cleaned scan root.
func (w *Walker) Root() string {
	return w.root
}

// Walk calls fn for every matching file beneath the root, descending into
// all subdirectories. A missing or unreadable root, or a directory that
// cannot be listed mid-walk, aborts the walk with that error. An error
// returned by fn also aborts the walk and is returned.
func (w *Walker) Walk(fn func(Candidate) error) error {
	return util.Walk(w.fs, w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk %q: %w", path, err)
		}
		if info.IsDir() {
			return nil
		}
		if !w.filter.Match(info.Name()) {
			return nil
		}

		c, err := w.candidate(path, info.Name())
		if err != nil {
			return err
		}
		return fn(c)
	})
}

// Candidates returns a lazy sequence of matching files. A traversal error
// is yielded once, with a zero Candidate, and ends the sequence.
func (w *Walker) Candidates() iter.Seq2[Candidate, error] {
	return func(yield func(Candidate, error) bool) {
		err := w.Walk(func(c Candidate) error {
			if !yield(c, nil) {
				return errStop
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStop) {
			yield(Candidate{}, err)
		}
	}
}

// candidate builds the Candidate for a file path found during the walk.
func (w *Walker) candidate(path, name string) (Candidate, error) {
	dir := filepath.Dir(path)
	sub, err := filepath.Rel(w.root, dir)
	if err != nil {
		return Candidate{}, fmt.Errorf("relative path of %q: %w", dir, err)
	}
	return Candidate{
		Dir:       dir,
		Name:      name,
		Subfolder: sub,
	}, nil
}
