package walker

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultExtensions are the extensions accepted when none are configured.
// They are matched case-sensitively.
var DefaultExtensions = []string{"jpg", "jpeg", "png", "JPG", "JPEG", "PNG"}

// Filter decides which file names are candidate images.
type Filter struct {
	extensions map[string]struct{}
	ignoreCase bool
}

// NewFilter creates a Filter for the given extensions (with or without the
// leading dot). An empty list uses DefaultExtensions. When ignoreCase is
// true both sides are Unicode case folded before comparison.
func NewFilter(extensions []string, ignoreCase bool) *Filter {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	f := &Filter{
		extensions: make(map[string]struct{}, len(extensions)),
		ignoreCase: ignoreCase,
	}
	for _, ext := range extensions {
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			continue
		}
		f.extensions[f.normalize(ext)] = struct{}{}
	}
	return f
}

// Match reports whether name ends in one of the filter's extensions.
func (f *Filter) Match(name string) bool {
	ext := filepath.Ext(name)
	if len(ext) < 2 {
		return false
	}
	_, ok := f.extensions[f.normalize(ext[1:])]
	return ok
}

// Extensions returns the number of distinct extensions accepted.
func (f *Filter) Extensions() int {
	return len(f.extensions)
}

// normalize folds ext when the filter ignores case.
// A Caser is stateful, so a fresh one is used per call.
func (f *Filter) normalize(ext string) string {
	if !f.ignoreCase {
		return ext
	}
	return cases.Fold().String(ext)
}
