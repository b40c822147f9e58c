// Package fs is the filesystem oracle the resolver is built against. Every
// filesystem access the resolution algorithm needs goes through this narrow
// interface instead of calling "os" directly, so that tests can swap in an
// in-memory tree with MockFS.
package fs

// FS is the collaborator contract the resolution algorithm depends on:
// canonicalize, read-to-string, exists, is-file, and a lexical clean that
// never touches the filesystem.
type FS interface {
	// Canonicalize resolves symlinks and returns an absolute path. It is only
	// ever called once per Resolve call, on the "from" file.
	Canonicalize(path string) (string, error)

	// ReadFile returns the full contents of a file, or an error if it cannot
	// be read (missing, a directory, permissions, ...).
	ReadFile(path string) (string, error)

	// Exists reports whether anything (file or directory) exists at path.
	Exists(path string) bool

	// IsFile reports whether path exists and is a regular file.
	IsFile(path string) bool

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool

	// Clean lexically collapses "." and ".." components without consulting
	// the filesystem.
	Clean(path string) string

	// Join joins path components and cleans the result.
	Join(parts ...string) string

	// Dir returns all but the last element of path.
	Dir(path string) string

	// WithBase returns the sibling of path named base — i.e. path's
	// directory joined with base. This is how export/main-field targets and
	// extension rewrites are computed, mirroring PathBuf::with_file_name.
	WithBase(path string, base string) string

	// Ext returns the file name extension of path, without the leading dot.
	Ext(path string) string
}
