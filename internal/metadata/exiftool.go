package metadata

import (
	"fmt"

	"github.com/barasher/go-exiftool"
)

// Tag names as exposed by exiftool.
const (
	TagDerivedFrom      = "DerivedFrom"
	TagDateTimeOriginal = "DateTimeOriginal"
	TagCreateDate       = "CreateDate"
	TagRating           = "Rating"
	TagColorLabels      = "ColorLabels"

	// writeTagDerivedFrom pins the write to the XMP media management namespace.
	writeTagDerivedFrom = "XMP-xmpMM:DerivedFrom"
)

// ExiftoolClient reads and writes tags through a long-running exiftool
// process. It handles formats goexif cannot parse, such as XMP sidecars and
// QuickTime movies.
type ExiftoolClient struct {
	et *exiftool.Exiftool
}

// NewExiftoolClient starts exiftool. binaryPath may be empty to use the
// exiftool found on PATH. The caller must call Close.
func NewExiftoolClient(binaryPath string) (*ExiftoolClient, error) {
	var opts []func(*exiftool.Exiftool) error
	if binaryPath != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(binaryPath))
	}

	et, err := exiftool.NewExiftool(opts...)
	if err != nil {
		return nil, fmt.Errorf("starting exiftool: %w", err)
	}
	return &ExiftoolClient{et: et}, nil
}

// Tags returns all tags exiftool can read from path.
func (c *ExiftoolClient) Tags(path string) (Tags, error) {
	fms := c.et.ExtractMetadata(path)
	if len(fms) == 0 {
		return nil, fmt.Errorf("no metadata returned for %s", path)
	}
	if fms[0].Err != nil {
		return nil, fms[0].Err
	}
	return Tags(fms[0].Fields), nil
}

// WriteDerivedFrom stores reference in the DerivedFrom tag of path,
// overwriting the file in place.
func (c *ExiftoolClient) WriteDerivedFrom(path, reference string) error {
	fm := exiftool.EmptyFileMetadata()
	fm.File = path
	fm.SetString(writeTagDerivedFrom, reference)

	fms := []exiftool.FileMetadata{fm}
	c.et.WriteMetadata(fms)
	if fms[0].Err != nil {
		return fmt.Errorf("writing %s: %w", writeTagDerivedFrom, fms[0].Err)
	}
	return nil
}

// Close stops the exiftool process.
func (c *ExiftoolClient) Close() error {
	return c.et.Close()
}
