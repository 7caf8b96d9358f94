package imgor

import "time"

// MetadataReader reads the embedded metadata the planner needs. Unreadable
// metadata is reported as absent, never as an error: such a file becomes a
// standalone, undated photo.
type MetadataReader interface {
	// DerivedFrom returns the path of the source file path was derived from.
	DerivedFrom(path string) (string, bool)

	// CaptureTime returns the time the photo or video was taken.
	CaptureTime(path string) (time.Time, bool)
}

// MetadataWriter writes the back-reference of a derived file.
type MetadataWriter interface {
	// WriteDerivedFrom stores reference in the DerivedFrom tag of path.
	WriteDerivedFrom(path, reference string) error
}
