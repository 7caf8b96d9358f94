package imgor

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"
)

const separator = string(filepath.Separator)

// CommonPrefix is the decomposition of two paths into their shared leading
// components and the remainder of each path.
type CommonPrefix struct {
	Prefix  string
	Suffix1 string
	Suffix2 string
}

// FindCommonPrefix walks a and b component by component from the root and
// splits them where they first differ. Components are compared literally;
// "." and ".." are not resolved.
func FindCommonPrefix(a, b string) CommonPrefix {
	ca, cb := components(a), components(b)

	n := 0
	for n < len(ca) && n < len(cb) && ca[n] == cb[n] {
		n++
	}

	return CommonPrefix{
		Prefix:  joinComponents(ca[:n]),
		Suffix1: joinComponents(ca[n:]),
		Suffix2: joinComponents(cb[n:]),
	}
}

// FormatRename renders a rename as "prefix/{old => new}".
func FormatRename(from, to string) string {
	c := FindCommonPrefix(from, to)
	return fmt.Sprintf("%s/{%s => %s}", strings.TrimSuffix(c.Prefix, separator), c.Suffix1, c.Suffix2)
}

// ReferenceText returns the value to store in file's DerivedFrom tag so that
// it points at referencedImage. Both files must live in the same directory;
// anything else is a planning bug and panics.
func ReferenceText(file, referencedImage string) (string, error) {
	c := FindCommonPrefix(file, referencedImage)
	if n := len(components(c.Suffix1)); n != 1 {
		panic(fmt.Sprintf("imgor: %s and %s are not siblings (file suffix has %d components)", file, referencedImage, n))
	}
	if n := len(components(c.Suffix2)); n != 1 {
		panic(fmt.Sprintf("imgor: %s and %s are not siblings (reference suffix has %d components)", file, referencedImage, n))
	}
	if !utf8.ValidString(c.Suffix2) {
		return "", &NonUTF8PathError{Path: referencedImage}
	}
	return c.Suffix2, nil
}

// components splits p into its root (if absolute) followed by its non-empty
// segments.
func components(p string) []string {
	var parts []string
	if strings.HasPrefix(p, separator) {
		parts = append(parts, separator)
	}
	for _, s := range strings.Split(p, separator) {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

func joinComponents(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	if parts[0] == separator {
		return separator + strings.Join(parts[1:], separator)
	}
	return strings.Join(parts, separator)
}

// comparePaths orders paths component-wise, so "/a/b/c" sorts before "/a/b.c".
func comparePaths(a, b string) int {
	return slices.Compare(components(a), components(b))
}
