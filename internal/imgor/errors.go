package imgor

import (
	"errors"
	"fmt"
)

// ErrDirectoryExists is returned when a planned directory is already present
// on disk. Runs never merge into an existing date folder.
var ErrDirectoryExists = errors.New("directory already exists")

// NonUTF8PathError reports a path that cannot be represented as text.
type NonUTF8PathError struct {
	Path string
}

func (e *NonUTF8PathError) Error() string {
	return fmt.Sprintf("path %q is not valid utf-8", e.Path)
}

// NoBasenameError reports a source path without a file name component.
type NoBasenameError struct {
	Path string
}

func (e *NoBasenameError) Error() string {
	return fmt.Sprintf("file %q has no basename", e.Path)
}

// MissingSourceError reports a derived file whose back-reference names a
// file that was not classified as a source.
type MissingSourceError struct {
	File   string
	Source string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("referenced image %q of %q does not exist", e.Source, e.File)
}

// MetadataError wraps a failure of the metadata collaborator.
type MetadataError struct {
	Path string
	Op   string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("%s metadata of %s: %v", e.Op, e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }
