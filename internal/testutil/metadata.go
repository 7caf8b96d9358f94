package testutil

import (
	"time"

	"imgor/internal/imgor"
)

// StubMetadata serves metadata from maps and records written back-references.
type StubMetadata struct {
	// Sources maps a derived file to the source it references.
	Sources map[string]string

	// Times maps a file to its capture time.
	Times map[string]time.Time

	// Written maps a file to the last reference written to it.
	Written map[string]string

	// WriteErr, when set, is returned by every WriteDerivedFrom call.
	WriteErr error
}

// NewStubMetadata creates an empty StubMetadata.
func NewStubMetadata() *StubMetadata {
	return &StubMetadata{
		Sources: make(map[string]string),
		Times:   make(map[string]time.Time),
		Written: make(map[string]string),
	}
}

func (s *StubMetadata) DerivedFrom(path string) (string, bool) {
	source, ok := s.Sources[path]
	return source, ok
}

func (s *StubMetadata) CaptureTime(path string) (time.Time, bool) {
	t, ok := s.Times[path]
	return t, ok
}

func (s *StubMetadata) WriteDerivedFrom(path, reference string) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.Written[path] = reference
	return nil
}

var (
	_ imgor.MetadataReader = (*StubMetadata)(nil)
	_ imgor.MetadataWriter = (*StubMetadata)(nil)
)
