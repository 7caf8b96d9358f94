package imgor

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"
)

// NoDateGroup names the group of photos without a capture time.
const NoDateGroup = "no-date"

// CaptureTimeFunc resolves the capture time of a file. ok is false when the
// time is unknown.
type CaptureTimeFunc func(path string) (t time.Time, ok bool)

// AnnotatedPhoto is a Photo with the capture time of its source. A zero
// CapturedAt means the time is unknown.
type AnnotatedPhoto struct {
	Photo      Photo
	CapturedAt time.Time
}

// Dated reports whether the capture time is known.
func (a AnnotatedPhoto) Dated() bool {
	return !a.CapturedAt.IsZero()
}

// GroupName is the directory name of the photo's date group.
func (a AnnotatedPhoto) GroupName() string {
	if !a.Dated() {
		return NoDateGroup
	}
	return a.CapturedAt.Format("2006-01-02")
}

// wallClock keeps the wall-clock reading of t and drops its location.
// Capture times carry no zone, but readers may attach different ones, and
// photos are ordered and grouped by the reading alone.
func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, m, d, h, mi, s, t.Nanosecond(), time.UTC)
}

// AnnotatePhotos looks up the capture time of every photo's source.
// Times are compared by their wall-clock reading, whatever their location.
func AnnotatePhotos(photos []Photo, captureTime CaptureTimeFunc) []AnnotatedPhoto {
	annotated := make([]AnnotatedPhoto, len(photos))
	for i, p := range photos {
		annotated[i] = AnnotatedPhoto{Photo: p}
		if t, ok := captureTime(p.Source); ok {
			annotated[i].CapturedAt = wallClock(t)
		}
	}
	return annotated
}

// SortByCaptureTime sorts photos by capture time, undated photos first.
// The sort is stable.
func SortByCaptureTime(photos []AnnotatedPhoto) {
	slices.SortStableFunc(photos, compareCaptureTime)
}

func compareCaptureTime(a, b AnnotatedPhoto) int {
	switch {
	case a.Dated() && b.Dated():
		return a.CapturedAt.Compare(b.CapturedAt)
	case a.Dated():
		return 1
	case b.Dated():
		return -1
	default:
		return 0
	}
}

// sameCaptureDate reports whether a and b fall on the same calendar day.
// All undated photos share one group.
func sameCaptureDate(a, b AnnotatedPhoto) bool {
	if a.Dated() != b.Dated() {
		return false
	}
	if !a.Dated() {
		return true
	}
	ay, am, ad := a.CapturedAt.Date()
	by, bm, bd := b.CapturedAt.Date()
	return ay == by && am == bm && ad == bd
}

// PlanAll plans the organization of paths into date directories below
// outDir. Photos are ordered by capture time and renamed to
// "<nnnn>_<group>" within their group; the undated group, if any, comes
// first. Planning stops at the first error.
func PlanAll(paths []string, outDir string, derivedFrom DerivedFromFunc, captureTime CaptureTimeFunc) ([]Command, error) {
	photos, err := GroupPhotos(Classify(paths, derivedFrom))
	if err != nil {
		return nil, fmt.Errorf("grouping photo files: %w", err)
	}

	dated := AnnotatePhotos(photos, captureTime)
	SortByCaptureTime(dated)

	var cmds []Command
	for group := range GroupBy(dated, sameCaptureDate) {
		name := group[0].GroupName()
		groupDir := filepath.Join(outDir, name)
		cmds = append(cmds, CreateDirectory{Path: groupDir})

		for i, p := range group {
			stem := fmt.Sprintf("%04d_%s", i, name)
			c, err := PlanRename(p.Photo, stem, groupDir)
			if err != nil {
				return nil, fmt.Errorf("planning %s: %w", p.Photo.Source, err)
			}
			cmds = append(cmds, c...)
		}
	}

	return cmds, nil
}
