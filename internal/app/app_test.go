package app

import (
	"os"
	"path/filepath"
	"testing"

	"imgor/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := config.NewConfig(t.TempDir())
	cfg.Database.Type = "memory"
	cfg.LogLevel = "error"

	a, err := NewApp(cfg, "test")
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestApp_ResolveDirs(t *testing.T) {
	a := newTestApp(t)
	in := t.TempDir()

	t.Run("default output directory", func(t *testing.T) {
		inDir, outDir, err := a.ResolveDirs(in, "")
		if err != nil {
			t.Fatalf("ResolveDirs() error = %v", err)
		}
		if inDir != in {
			t.Errorf("inDir = %q, want %q", inDir, in)
		}
		if want := filepath.Join(in, config.DefaultOutputDirName); outDir != want {
			t.Errorf("outDir = %q, want %q", outDir, want)
		}
	})

	t.Run("explicit output directory", func(t *testing.T) {
		_, outDir, err := a.ResolveDirs(in, "/srv/photos")
		if err != nil {
			t.Fatalf("ResolveDirs() error = %v", err)
		}
		if outDir != "/srv/photos" {
			t.Errorf("outDir = %q, want /srv/photos", outDir)
		}
	})

	t.Run("input must be a directory", func(t *testing.T) {
		file := filepath.Join(in, "1.CR2")
		if err := os.WriteFile(file, []byte("raw"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, _, err := a.ResolveDirs(file, ""); err == nil {
			t.Error("ResolveDirs() expected error for a file")
		}
	})
}

func TestApp_History(t *testing.T) {
	a := newTestApp(t)

	runs, err := a.History(10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("History() = %d runs, want 0", len(runs))
	}

	if _, _, err := a.RunDetails("missing"); err == nil {
		t.Error("RunDetails() expected error for unknown run")
	}
}

func TestNewApp_WritesLogFile(t *testing.T) {
	cfg := config.NewConfig(t.TempDir())
	cfg.Database.Type = "memory"

	a, err := NewApp(cfg, "test")
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.LogDir, "imgor.log")); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}
