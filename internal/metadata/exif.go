package metadata

import (
	"fmt"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// ExifLayout is the EXIF "YYYY:MM:DD HH:MM:SS" timestamp layout.
const ExifLayout = "2006:01:02 15:04:05"

// ReadExifTime extracts the capture date from the EXIF block of a JPEG or
// TIFF-based raw file. It returns DateTimeOriginal when present and falls
// back to DateTime. The wall-clock reading is returned in UTC.
func ReadExifTime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, fmt.Errorf("decoding exif: %w", err)
	}

	t, err := x.DateTime()
	if err != nil {
		return time.Time{}, err
	}
	return asUTC(t), nil
}

// asUTC reinterprets the wall-clock reading of t as UTC. goexif attaches
// time.Local or a maker-note zone to EXIF times; exiftool values are parsed
// as UTC. Both must agree for photos to sort and group by calendar day.
func asUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, m, d, h, mi, s, t.Nanosecond(), time.UTC)
}

// ParseExifTime parses an EXIF timestamp. Trailing sub-second or zone
// suffixes written by some tools are ignored.
func ParseExifTime(s string) (time.Time, error) {
	if len(s) > len(ExifLayout) {
		s = s[:len(ExifLayout)]
	}
	return time.Parse(ExifLayout, s)
}
