package metadata

import (
	"path/filepath"
	"strings"
	"time"

	"imgor/internal/imgor"
)

// TagSource reads the tags of a file.
type TagSource interface {
	Tags(path string) (Tags, error)
}

// ExifTimeFunc reads the EXIF capture time of a file.
type ExifTimeFunc func(path string) (time.Time, error)

// Reader implements imgor.MetadataReader. Capture times are routed by
// extension: EXIF-capable formats are decoded with goexif, the rest through
// the tag source. Failures of either are reported as absent.
type Reader struct {
	tags         TagSource
	exifTime     ExifTimeFunc
	exifExts     map[string]bool
	exiftoolExts map[string]bool
	logger       imgor.Logger
}

// NewReader creates a Reader. exifExts and exiftoolExts are extensions
// without the leading dot, compared case-insensitively.
func NewReader(tags TagSource, exifTime ExifTimeFunc, exifExts, exiftoolExts []string, logger imgor.Logger) *Reader {
	return &Reader{
		tags:         tags,
		exifTime:     exifTime,
		exifExts:     extensionSet(exifExts),
		exiftoolExts: extensionSet(exiftoolExts),
		logger:       logger,
	}
}

func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}
	return set
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// DerivedFrom resolves the DerivedFrom tag of path relative to the directory
// containing path.
func (r *Reader) DerivedFrom(path string) (string, bool) {
	tags, err := r.tags.Tags(path)
	if err != nil {
		r.logger.Debug("reading tags failed", "path", path, "error", err)
		return "", false
	}
	ref, ok := tags.String(TagDerivedFrom)
	if !ok || ref == "" {
		return "", false
	}
	return filepath.Join(filepath.Dir(path), ref), true
}

// CaptureTime returns the capture time of path.
func (r *Reader) CaptureTime(path string) (time.Time, bool) {
	ext := extension(path)
	switch {
	case r.exifExts[ext]:
		t, err := r.exifTime(path)
		if err != nil {
			r.logger.Debug("reading exif time failed", "path", path, "error", err)
			return time.Time{}, false
		}
		return asUTC(t), !t.IsZero()
	case r.exiftoolExts[ext]:
		tags, err := r.tags.Tags(path)
		if err != nil {
			r.logger.Debug("reading tags failed", "path", path, "error", err)
			return time.Time{}, false
		}
		return tagTime(tags)
	default:
		return time.Time{}, false
	}
}

// tagTime returns DateTimeOriginal, or CreateDate for formats such as
// QuickTime that only carry the latter.
func tagTime(tags Tags) (time.Time, bool) {
	for _, key := range []string{TagDateTimeOriginal, TagCreateDate} {
		s, ok := tags.String(key)
		if !ok {
			continue
		}
		t, err := ParseExifTime(s)
		if err != nil || t.IsZero() {
			continue
		}
		return t, true
	}
	return time.Time{}, false
}

// Details is everything imgor can tell about one file's metadata.
type Details struct {
	Path        string
	DerivedFrom string
	CapturedAt  time.Time
	Rating      int
	HasRating   bool
	ColorLabels []ColorLabel
}

// Describe collects the metadata of path. Unlike DerivedFrom and
// CaptureTime it fails when the tags cannot be read or are malformed.
func (r *Reader) Describe(path string) (*Details, error) {
	tags, err := r.tags.Tags(path)
	if err != nil {
		return nil, &imgor.MetadataError{Path: path, Op: "reading", Err: err}
	}

	d := &Details{Path: path}
	if ref, ok := tags.String(TagDerivedFrom); ok {
		d.DerivedFrom = ref
	}
	if t, ok := r.CaptureTime(path); ok {
		d.CapturedAt = t
	}
	d.Rating, d.HasRating = tags.Int(TagRating)

	if raw, ok := tags.Strings(TagColorLabels); ok {
		labels, err := ParseColorLabels(raw)
		if err != nil {
			return nil, &imgor.MetadataError{Path: path, Op: "parsing", Err: err}
		}
		d.ColorLabels = labels
	}

	return d, nil
}

// Compile-time check that Reader implements imgor.MetadataReader.
var _ imgor.MetadataReader = (*Reader)(nil)

// Compile-time check that ExiftoolClient implements imgor.MetadataWriter.
var _ imgor.MetadataWriter = (*ExiftoolClient)(nil)
