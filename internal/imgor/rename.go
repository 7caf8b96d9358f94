package imgor

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DeriveNewName replaces oldStem with newStem in the part of name before its
// first dot and lower-cases everything from that dot on. Splitting at the
// first dot keeps multi-extension names such as "1.cr2.xmp" together.
func DeriveNewName(name, oldStem, newStem string) string {
	i := strings.IndexByte(name, '.')
	if i < 0 {
		return strings.ReplaceAll(name, oldStem, newStem)
	}
	return strings.ReplaceAll(name[:i], oldStem, newStem) + strings.ToLower(name[i:])
}

// PlanRename returns the commands that move photo into outDir under newStem:
// the source rename first, then for every derived file its rename followed by
// the adjustment of its back-reference to the renamed source.
func PlanRename(photo Photo, newStem, outDir string) ([]Command, error) {
	for _, p := range append([]string{photo.Source, outDir}, photo.Derived...) {
		if !utf8.ValidString(p) {
			return nil, &NonUTF8PathError{Path: p}
		}
	}

	sourceName, ok := baseName(photo.Source)
	if !ok {
		return nil, &NoBasenameError{Path: photo.Source}
	}
	sourceStem := fileStem(sourceName)

	newSource := filepath.Join(outDir, DeriveNewName(sourceName, sourceStem, newStem))
	cmds := make([]Command, 0, 1+2*len(photo.Derived))
	cmds = append(cmds, Rename{From: photo.Source, To: newSource})

	for _, derived := range photo.Derived {
		name, ok := baseName(derived)
		if !ok {
			return nil, &NoBasenameError{Path: derived}
		}
		newDerived := filepath.Join(outDir, DeriveNewName(name, sourceStem, newStem))
		cmds = append(cmds,
			Rename{From: derived, To: newDerived},
			AdjustReference{File: newDerived, ReferencedImage: newSource},
		)
	}

	return cmds, nil
}

// baseName returns the last element of p, or false if p names no file.
func baseName(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	name := filepath.Base(p)
	if name == "." || name == ".." || name == separator {
		return "", false
	}
	return name, true
}

// fileStem strips the last extension from name. Names whose only dot is the
// leading one, like ".xmp", are returned unchanged.
func fileStem(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}
