package imgor

import (
	"path/filepath"
	"strings"
)

// mediaExtensions are the lower-cased extensions imgor organizes.
var mediaExtensions = map[string]bool{
	"cr2":  true,
	"jpg":  true,
	"jpeg": true,
	"mov":  true,
	"xmp":  true,
}

// ClassifiedFile is a media file together with the source it was derived
// from. An empty DerivedFrom marks a source file.
type ClassifiedFile struct {
	Path        string
	DerivedFrom string
}

// IsSource reports whether the file does not reference another file.
func (f ClassifiedFile) IsSource() bool {
	return f.DerivedFrom == ""
}

// DerivedFromFunc resolves the source a file was derived from. ok is false
// when the file carries no back-reference.
type DerivedFromFunc func(path string) (source string, ok bool)

// IsMediaFile reports whether path has one of the recognized media
// extensions, compared case-insensitively. Files without an extension are
// not media files.
func IsMediaFile(path string) bool {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return false
	}
	return mediaExtensions[strings.ToLower(ext[1:])]
}

// Classify drops non-media paths and looks up the back-reference of every
// remaining path exactly once. Input order is preserved.
func Classify(paths []string, derivedFrom DerivedFromFunc) []ClassifiedFile {
	files := make([]ClassifiedFile, 0, len(paths))
	for _, p := range paths {
		if !IsMediaFile(p) {
			continue
		}
		f := ClassifiedFile{Path: p}
		if source, ok := derivedFrom(p); ok {
			f.DerivedFrom = source
		}
		files = append(files, f)
	}
	return files
}
