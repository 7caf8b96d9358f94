package imgor_test

import (
	"errors"
	"testing"
	"time"

	"imgor/internal/imgor"
	"imgor/internal/testutil"
)

type fixture struct {
	fsmgr *testutil.MockFilesystemManager
	meta  *testutil.StubMetadata
	db    imgor.History
	org   *imgor.Organizer
}

// newFixture lays out /in with one dated photo plus sidecar, one photo taken
// the next day and one undated photo.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	fsmgr := testutil.NewMockFilesystemManager()
	fsmgr.AddFile("/in/1.CR2", []byte("raw one"))
	fsmgr.AddFile("/in/1.cr2.xmp", []byte("<xmp/>"))
	fsmgr.AddFile("/in/2.JPG", []byte("jpeg two"))
	fsmgr.AddFile("/in/3.CR2", []byte("raw three"))
	fsmgr.AddFile("/in/notes.txt", []byte("not a photo"))

	meta := testutil.NewStubMetadata()
	meta.Sources["/in/1.cr2.xmp"] = "/in/1.CR2"
	meta.Times["/in/1.CR2"] = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	meta.Times["/in/2.JPG"] = time.Date(2024, 6, 16, 9, 0, 0, 0, time.UTC)

	db := testutil.NewTestDatabase(t)
	org := imgor.NewOrganizer(fsmgr, meta, meta, db, imgor.NewNopLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator())

	return &fixture{fsmgr: fsmgr, meta: meta, db: db, org: org}
}

func TestOrganizer_Plan(t *testing.T) {
	f := newFixture(t)

	cmds, err := f.org.Plan("/in", "/in/grouped")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(cmds) != 8 {
		t.Errorf("Plan() returned %d commands, want 8: %v", len(cmds), cmds)
	}
	if len(f.fsmgr.Copies) != 0 {
		t.Errorf("Plan() copied files: %v", f.fsmgr.Copies)
	}
	if ok, _ := f.fsmgr.Exists("/in/grouped/no-date"); ok {
		t.Error("Plan() created a directory")
	}
}

func TestOrganizer_Organize(t *testing.T) {
	t.Run("applies every command and records the run", func(t *testing.T) {
		f := newFixture(t)

		run, err := f.org.Organize("/in", "/in/grouped")
		if err != nil {
			t.Fatalf("Organize() error = %v", err)
		}
		if run.ID != "run-1" || run.Status != imgor.RunStatusSuccess || run.CommandCount != 8 {
			t.Errorf("run = %+v", run)
		}

		for _, p := range []string{
			"/in/grouped/no-date/0000_no-date.cr2",
			"/in/grouped/2024-06-15/0000_2024-06-15.cr2",
			"/in/grouped/2024-06-15/0000_2024-06-15.cr2.xmp",
			"/in/grouped/2024-06-16/0000_2024-06-16.jpg",
		} {
			if f.fsmgr.File(p) == nil {
				t.Errorf("missing %s", p)
			}
		}
		if got := string(f.fsmgr.File("/in/grouped/2024-06-16/0000_2024-06-16.jpg").Content); got != "jpeg two" {
			t.Errorf("copied content = %q", got)
		}
		if f.fsmgr.File("/in/1.CR2") == nil {
			t.Error("source file was removed")
		}

		ref := f.meta.Written["/in/grouped/2024-06-15/0000_2024-06-15.cr2.xmp"]
		if ref != "0000_2024-06-15.cr2" {
			t.Errorf("written reference = %q, want %q", ref, "0000_2024-06-15.cr2")
		}

		stored, cmds, err := f.org.RunDetails("run-1")
		if err != nil {
			t.Fatalf("RunDetails() error = %v", err)
		}
		if stored.Status != imgor.RunStatusSuccess || !stored.FinishedAt.Valid {
			t.Errorf("stored run = %+v", stored)
		}
		if len(cmds) != 8 {
			t.Fatalf("stored %d commands, want 8", len(cmds))
		}
		if cmds[0].Kind != "create_dir" || cmds[0].Path != "/in/grouped/no-date" {
			t.Errorf("first command = %+v", cmds[0])
		}
	})

	t.Run("existing group directory stops the run", func(t *testing.T) {
		f := newFixture(t)
		f.fsmgr.AddDirectory("/in/grouped/2024-06-15")

		run, err := f.org.Organize("/in", "/in/grouped")
		if !errors.Is(err, imgor.ErrDirectoryExists) {
			t.Fatalf("Organize() error = %v, want ErrDirectoryExists", err)
		}
		if run == nil || run.Status != imgor.RunStatusError || run.CommandCount != 2 {
			t.Fatalf("run = %+v", run)
		}

		_, cmds, err := f.org.RunDetails(run.ID)
		if err != nil {
			t.Fatalf("RunDetails() error = %v", err)
		}
		if len(cmds) != 2 {
			t.Errorf("stored %d commands, want 2", len(cmds))
		}
		if f.fsmgr.File("/in/grouped/2024-06-16") != nil {
			t.Error("commands after the failure were applied")
		}
	})

	t.Run("copy failure stops the run", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("disk full")
		f.fsmgr.FailCopy["/in/grouped/2024-06-15/0000_2024-06-15.cr2"] = boom

		run, err := f.org.Organize("/in", "/in/grouped")
		if !errors.Is(err, boom) {
			t.Fatalf("Organize() error = %v, want %v", err, boom)
		}
		if run.Status != imgor.RunStatusError || run.CommandCount != 3 {
			t.Errorf("run = %+v", run)
		}
		if len(f.meta.Written) != 0 {
			t.Errorf("references written after failure: %v", f.meta.Written)
		}
	})

	t.Run("broken reference fails before any change", func(t *testing.T) {
		f := newFixture(t)
		f.meta.Sources["/in/2.JPG"] = "/in/gone.CR2"

		run, err := f.org.Organize("/in", "/in/grouped")
		var missing *imgor.MissingSourceError
		if !errors.As(err, &missing) {
			t.Fatalf("Organize() error = %v, want *MissingSourceError", err)
		}
		if run != nil {
			t.Errorf("run = %+v, want nil", run)
		}
		runs, err := f.org.ListRuns(10)
		if err != nil {
			t.Fatalf("ListRuns() error = %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("ListRuns() = %d runs, want 0", len(runs))
		}
	})
}

func TestOrganizer_Apply(t *testing.T) {
	f := newFixture(t)
	f.meta.WriteErr = errors.New("exiftool exited")

	cmds := []imgor.Command{
		imgor.CreateDirectory{Path: "/out"},
		imgor.Rename{From: "/in/1.CR2", To: "/out/x.cr2"},
		imgor.Rename{From: "/in/1.cr2.xmp", To: "/out/x.cr2.xmp"},
		imgor.AdjustReference{File: "/out/x.cr2.xmp", ReferencedImage: "/out/x.cr2"},
	}

	var seen []int
	err := f.org.Apply(cmds, func(seq int, cmd imgor.Command) error {
		seen = append(seen, seq)
		return nil
	})
	if !errors.Is(err, f.meta.WriteErr) {
		t.Fatalf("Apply() error = %v, want %v", err, f.meta.WriteErr)
	}
	if len(seen) != 3 {
		t.Errorf("applied callback ran for %v, want 3 commands", seen)
	}
}

func TestOrganizer_RunDetails_Unknown(t *testing.T) {
	f := newFixture(t)

	if _, _, err := f.org.RunDetails("missing"); err == nil {
		t.Error("RunDetails() expected error for unknown run")
	}
}
