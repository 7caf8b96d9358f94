package imgor

import (
	"errors"
	"slices"
	"testing"
)

func TestDeriveNewName(t *testing.T) {
	tests := []struct {
		name, oldStem, newStem string
		want                   string
	}{
		{"my_file.JPG", "my_file", "0000", "0000.jpg"},
		{"my_file.CR2.JPG", "my_file", "0000", "0000.cr2.jpg"},
		{"my_file.cr2.JPG", "my_file", "0000", "0000.cr2.jpg"},
		{"my_file", "my_file", "0000", "0000"},
		{"IMG_1.CR2", "IMG_1", "x", "x.cr2"},
		{"other.JPG", "my_file", "0000", "other.jpg"},
		{"MixedCase", "Mixed", "m", "mCase"},
	}

	for _, tt := range tests {
		if got := DeriveNewName(tt.name, tt.oldStem, tt.newStem); got != tt.want {
			t.Errorf("DeriveNewName(%q, %q, %q) = %q, want %q", tt.name, tt.oldStem, tt.newStem, got, tt.want)
		}
	}
}

func TestPlanRename(t *testing.T) {
	t.Run("source and derived files", func(t *testing.T) {
		photo := Photo{Source: "/a/1.CR2", Derived: []string{"/a/1.cr2.xmp", "/a/1.jpg"}}

		got, err := PlanRename(photo, "x", "/tmp")
		if err != nil {
			t.Fatalf("PlanRename() error = %v", err)
		}

		want := []Command{
			Rename{From: "/a/1.CR2", To: "/tmp/x.cr2"},
			Rename{From: "/a/1.cr2.xmp", To: "/tmp/x.cr2.xmp"},
			AdjustReference{File: "/tmp/x.cr2.xmp", ReferencedImage: "/tmp/x.cr2"},
			Rename{From: "/a/1.jpg", To: "/tmp/x.jpg"},
			AdjustReference{File: "/tmp/x.jpg", ReferencedImage: "/tmp/x.cr2"},
		}
		if !slices.Equal(got, want) {
			t.Errorf("PlanRename() =\n%v\nwant\n%v", got, want)
		}
	})

	t.Run("versioned derived file", func(t *testing.T) {
		photo := Photo{Source: "/a/1.CR2", Derived: []string{"/a/1_v2.CR2.xmp"}}

		got, err := PlanRename(photo, "0003_2024-06-15", "/out/2024-06-15")
		if err != nil {
			t.Fatalf("PlanRename() error = %v", err)
		}

		want := Rename{From: "/a/1_v2.CR2.xmp", To: "/out/2024-06-15/0003_2024-06-15_v2.cr2.xmp"}
		if got[1] != want {
			t.Errorf("derived rename = %v, want %v", got[1], want)
		}
	})

	t.Run("source only", func(t *testing.T) {
		got, err := PlanRename(Photo{Source: "/a/4.CR2"}, "x", "/tmp")
		if err != nil {
			t.Fatalf("PlanRename() error = %v", err)
		}
		if len(got) != 1 {
			t.Errorf("PlanRename() returned %d commands, want 1", len(got))
		}
	})

	t.Run("no basename", func(t *testing.T) {
		for _, source := range []string{"", "/"} {
			_, err := PlanRename(Photo{Source: source}, "x", "/tmp")
			var nb *NoBasenameError
			if !errors.As(err, &nb) {
				t.Errorf("PlanRename(%q) error = %v, want *NoBasenameError", source, err)
			}
		}
	})

	t.Run("non utf-8 paths", func(t *testing.T) {
		photos := []struct {
			photo  Photo
			outDir string
		}{
			{Photo{Source: "/a/\xff.CR2"}, "/tmp"},
			{Photo{Source: "/a/1.CR2", Derived: []string{"/a/\xfe.xmp"}}, "/tmp"},
			{Photo{Source: "/a/1.CR2"}, "/tmp/\xff"},
		}
		for _, tt := range photos {
			_, err := PlanRename(tt.photo, "x", tt.outDir)
			var nu *NonUTF8PathError
			if !errors.As(err, &nu) {
				t.Errorf("PlanRename(%+v) error = %v, want *NonUTF8PathError", tt.photo, err)
			}
		}
	})
}
