// Package walker enumerates candidate image files beneath a scan root.
//
// The walker reads through a go-billy filesystem so the same code serves the
// operating system (osfs) and in-memory trees (memfs). Files are filtered by
// extension; the default list is the six spellings jpg, jpeg, png, JPG,
// JPEG and PNG, matched exactly. Other casings such as "Jpg" are only
// accepted when case folding is switched on.
package walker
