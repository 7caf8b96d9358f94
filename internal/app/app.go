package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"imgor/internal/config"
	"imgor/internal/database"
	"imgor/internal/fs"
	"imgor/internal/imgor"
	"imgor/internal/metadata"
)

// App is the application layer between the CLI and the Organizer.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw string paths, and releases exiftool and the DB on Close.
type App struct {
	cfg       *config.Config
	db        *database.SQLiteDatabase
	exiftool  *lazyExiftool
	reader    *metadata.Reader
	fsmgr     imgor.FilesystemManager
	organizer *imgor.Organizer
	logFile   *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "group", "history").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	fsmgr := fs.NewOSFilesystemManager(cfg.Filesystem.Ignore)

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	if err := db.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID, cfg.LogLevel)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	log := &slogAdapter{l: logger.With("op", operation)}

	et := &lazyExiftool{binaryPath: cfg.Metadata.ExiftoolPath}
	reader := metadata.NewReader(et, metadata.ReadExifTime, cfg.Metadata.ExifExtensions, cfg.Metadata.ExiftoolExtensions, log)
	org := imgor.NewOrganizer(fsmgr, reader, et, db, log, imgor.RealClock{}, imgor.UUIDGenerator{})

	return &App{
		cfg:       cfg,
		db:        db,
		exiftool:  et,
		reader:    reader,
		fsmgr:     fsmgr,
		organizer: org,
		logFile:   logFile,
	}, nil
}

// ResolveDirs resolves the input directory and the output directory for it.
// An empty rawOut selects the configured directory name inside the input
// directory.
func (a *App) ResolveDirs(rawIn, rawOut string) (inDir, outDir string, err error) {
	inDir, err = a.fsmgr.ResolveDir(rawIn)
	if err != nil {
		return "", "", fmt.Errorf("resolving path: %w", err)
	}
	if rawOut == "" {
		return inDir, filepath.Join(inDir, a.cfg.OutputDirName), nil
	}
	outDir, err = filepath.Abs(rawOut)
	if err != nil {
		return "", "", fmt.Errorf("resolving output path: %w", err)
	}
	return inDir, outDir, nil
}

// Plan returns the commands that would organize inDir below outDir.
// Nothing is modified.
func (a *App) Plan(inDir, outDir string) ([]imgor.Command, error) {
	if err := a.exiftool.start(); err != nil {
		return nil, err
	}
	return a.organizer.Plan(inDir, outDir)
}

// Execute applies a plan returned by Plan and records it as a run.
func (a *App) Execute(inDir, outDir string, cmds []imgor.Command) (*imgor.Run, error) {
	if err := a.exiftool.start(); err != nil {
		return nil, err
	}
	return a.organizer.Execute(inDir, outDir, cmds)
}

// Info returns the metadata imgor reads from a single file.
func (a *App) Info(rawPath string) (*metadata.Details, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if err := a.exiftool.start(); err != nil {
		return nil, err
	}
	return a.reader.Describe(absPath)
}

// History returns the most recent runs.
func (a *App) History(limit int) ([]*imgor.Run, error) {
	return a.organizer.ListRuns(limit)
}

// RunDetails returns a run and the commands it applied.
func (a *App) RunDetails(runID string) (*imgor.Run, []*imgor.RunCommand, error) {
	return a.organizer.RunDetails(runID)
}

// Close stops exiftool and closes the database and log file.
func (a *App) Close() error {
	var firstErr error

	if err := a.exiftool.Close(); err != nil {
		firstErr = fmt.Errorf("stopping exiftool: %w", err)
	}

	if err := a.db.Close(); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("closing database: %w", err)
		}
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
