package database

import (
	"testing"
	"time"

	"imgor/internal/imgor"
)

// newTestDB creates a new in-memory database with schema applied.
func newTestDB(t *testing.T) *SQLiteDatabase {
	t.Helper()

	db, err := NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func newRun(id string, startedAt time.Time) *imgor.Run {
	return &imgor.Run{
		ID:        id,
		StartedAt: startedAt,
		InputDir:  "/photos/incoming",
		OutputDir: "/photos/incoming/grouped",
		Status:    imgor.RunStatusRunning,
	}
}

func TestSQLiteDatabase_Runs(t *testing.T) {
	t0 := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

	t.Run("create and finish a run", func(t *testing.T) {
		db := newTestDB(t)

		if err := db.CreateRun(newRun("run-1", t0)); err != nil {
			t.Fatalf("CreateRun() error = %v", err)
		}
		if err := db.FinishRun("run-1", imgor.RunStatusSuccess, t0.Add(time.Minute), 7); err != nil {
			t.Fatalf("FinishRun() error = %v", err)
		}

		got, err := db.FindRun("run-1")
		if err != nil {
			t.Fatalf("FindRun() error = %v", err)
		}
		if got == nil {
			t.Fatal("FindRun() = nil, want run")
		}
		if got.Status != imgor.RunStatusSuccess {
			t.Errorf("Status = %q, want %q", got.Status, imgor.RunStatusSuccess)
		}
		if got.CommandCount != 7 {
			t.Errorf("CommandCount = %d, want 7", got.CommandCount)
		}
		if !got.StartedAt.Equal(t0) {
			t.Errorf("StartedAt = %v, want %v", got.StartedAt, t0)
		}
		if !got.FinishedAt.Valid || !got.FinishedAt.Time.Equal(t0.Add(time.Minute)) {
			t.Errorf("FinishedAt = %v, want %v", got.FinishedAt, t0.Add(time.Minute))
		}
	})

	t.Run("find missing run returns nil", func(t *testing.T) {
		db := newTestDB(t)

		got, err := db.FindRun("nope")
		if err != nil {
			t.Fatalf("FindRun() error = %v", err)
		}
		if got != nil {
			t.Errorf("FindRun() = %v, want nil", got)
		}
	})

	t.Run("finish missing run fails", func(t *testing.T) {
		db := newTestDB(t)

		if err := db.FinishRun("nope", imgor.RunStatusError, t0, 0); err == nil {
			t.Error("FinishRun() expected error for unknown run")
		}
	})

	t.Run("list runs newest first with limit", func(t *testing.T) {
		db := newTestDB(t)

		for i, id := range []string{"run-a", "run-b", "run-c"} {
			if err := db.CreateRun(newRun(id, t0.Add(time.Duration(i)*time.Hour))); err != nil {
				t.Fatalf("CreateRun(%s) error = %v", id, err)
			}
		}

		runs, err := db.ListRuns(2)
		if err != nil {
			t.Fatalf("ListRuns() error = %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("len(runs) = %d, want 2", len(runs))
		}
		if runs[0].ID != "run-c" || runs[1].ID != "run-b" {
			t.Errorf("runs = [%s %s], want [run-c run-b]", runs[0].ID, runs[1].ID)
		}
		if runs[0].FinishedAt.Valid {
			t.Error("unfinished run should have no FinishedAt")
		}
	})
}

func TestSQLiteDatabase_RecordCommand(t *testing.T) {
	db := newTestDB(t)
	t0 := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

	if err := db.CreateRun(newRun("run-1", t0)); err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}

	cmds := []imgor.Command{
		imgor.CreateDirectory{Path: "/out/2024-06-15"},
		imgor.Rename{From: "/in/1.CR2", To: "/out/2024-06-15/0000_2024-06-15.cr2"},
		imgor.AdjustReference{File: "/out/2024-06-15/0000_2024-06-15.cr2.xmp", ReferencedImage: "/out/2024-06-15/0000_2024-06-15.cr2"},
	}
	for i, c := range cmds {
		if err := db.RecordCommand("run-1", i, c); err != nil {
			t.Fatalf("RecordCommand(%d) error = %v", i, err)
		}
	}

	got, err := db.ListRunCommands("run-1")
	if err != nil {
		t.Fatalf("ListRunCommands() error = %v", err)
	}
	want := []imgor.RunCommand{
		{Seq: 0, Kind: "create_dir", Path: "/out/2024-06-15"},
		{Seq: 1, Kind: "rename", Path: "/in/1.CR2", Target: "/out/2024-06-15/0000_2024-06-15.cr2"},
		{Seq: 2, Kind: "adjust_ref", Path: "/out/2024-06-15/0000_2024-06-15.cr2.xmp", Target: "/out/2024-06-15/0000_2024-06-15.cr2"},
	}
	if len(got) != len(want) {
		t.Fatalf("len(commands) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if *got[i] != want[i] {
			t.Errorf("commands[%d] = %+v, want %+v", i, *got[i], want[i])
		}
	}

	if err := db.RecordCommand("run-unknown", 0, cmds[0]); err == nil {
		t.Error("RecordCommand() expected foreign key error for unknown run")
	}
}
