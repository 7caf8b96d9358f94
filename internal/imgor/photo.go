package imgor

import (
	"path/filepath"
	"slices"
)

// Photo is a source file together with the files derived from it, such as
// XMP sidecars and JPEG previews. Derived keeps discovery order.
type Photo struct {
	Source  string
	Derived []string
}

// GroupPhotos builds one Photo per source file and attaches every derived
// file to the Photo of the source it references. The result is sorted by
// source path. A derived file whose source is not among files yields a
// *MissingSourceError.
func GroupPhotos(files []ClassifiedFile) ([]Photo, error) {
	var photos []Photo
	index := make(map[string]int)

	for _, f := range files {
		if !f.IsSource() {
			continue
		}
		key := filepath.Clean(f.Path)
		if _, ok := index[key]; ok {
			continue
		}
		index[key] = len(photos)
		photos = append(photos, Photo{Source: f.Path})
	}

	for _, f := range files {
		if f.IsSource() {
			continue
		}
		i, ok := index[filepath.Clean(f.DerivedFrom)]
		if !ok {
			return nil, &MissingSourceError{File: f.Path, Source: f.DerivedFrom}
		}
		photos[i].Derived = append(photos[i].Derived, f.Path)
	}

	slices.SortFunc(photos, func(a, b Photo) int {
		return comparePaths(a.Source, b.Source)
	})
	return photos, nil
}
