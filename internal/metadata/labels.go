package metadata

import (
	"fmt"
	"strconv"
)

// RatingRejected is the XMP rating of a rejected photo.
const RatingRejected = -1

// ColorLabel is a darktable colour label.
type ColorLabel int

const (
	ColorRed ColorLabel = iota
	ColorYellow
	ColorGreen
	ColorBlue
	ColorMagenta
)

var colorLabelNames = [...]string{"red", "yellow", "green", "blue", "magenta"}

func (c ColorLabel) String() string {
	if c < 0 || int(c) >= len(colorLabelNames) {
		return "color(" + strconv.Itoa(int(c)) + ")"
	}
	return colorLabelNames[c]
}

// ParseColorLabels converts darktable's numeric colour labels.
func ParseColorLabels(raw []string) ([]ColorLabel, error) {
	labels := make([]ColorLabel, 0, len(raw))
	for _, s := range raw {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid colour label %q: %w", s, err)
		}
		if n < int(ColorRed) || n > int(ColorMagenta) {
			return nil, fmt.Errorf("unknown colour label %d", n)
		}
		labels = append(labels, ColorLabel(n))
	}
	return labels, nil
}
