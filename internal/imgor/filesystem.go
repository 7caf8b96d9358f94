package imgor

// FilesystemManager provides the filesystem operations the organizer needs.
// It abstracts file access to enable testing without touching the real filesystem.
type FilesystemManager interface {
	// ResolveDir makes rawPath absolute and checks that it is a directory.
	ResolveDir(rawPath string) (string, error)

	// ListFiles returns the regular files directly inside dir, sorted.
	ListFiles(dir string) ([]string, error)

	// Exists reports whether anything exists at path.
	Exists(path string) (bool, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(path string) error

	// CopyFile copies the contents and mode of src to dst.
	// dst must not exist.
	CopyFile(src, dst string) error
}
