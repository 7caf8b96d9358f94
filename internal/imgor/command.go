package imgor

import "fmt"

// Command is one step of an organize plan. Commands are plain values; the
// Organizer applies them.
type Command interface {
	fmt.Stringer
	command()
}

// CreateDirectory creates a group directory. The directory must not exist.
type CreateDirectory struct {
	Path string
}

// Rename places From at To. The executor copies, leaving From in place.
type Rename struct {
	From string
	To   string
}

// AdjustReference points the DerivedFrom tag of File at ReferencedImage.
// Both are final, post-rename paths in the same directory.
type AdjustReference struct {
	File            string
	ReferencedImage string
}

func (CreateDirectory) command() {}
func (Rename) command()          {}
func (AdjustReference) command() {}

func (c CreateDirectory) String() string {
	return "create dir " + c.Path
}

func (c Rename) String() string {
	return "rename     " + FormatRename(c.From, c.To)
}

func (c AdjustReference) String() string {
	ref, err := ReferenceText(c.File, c.ReferencedImage)
	if err != nil {
		ref = c.ReferencedImage
	}
	return fmt.Sprintf("adjust ref %s --> %s", c.File, ref)
}
