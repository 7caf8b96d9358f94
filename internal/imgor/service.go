package imgor

import (
	"fmt"
	"time"
)

// Organizer coordinates the filesystem, the metadata collaborators and the
// run history to plan and apply organize runs.
type Organizer struct {
	fsmgr   FilesystemManager
	meta    MetadataReader
	writer  MetadataWriter
	history History
	logger  Logger
	clock   Clock
	idgen   IDGenerator
}

// NewOrganizer creates an Organizer with the provided dependencies.
func NewOrganizer(fsmgr FilesystemManager, meta MetadataReader, writer MetadataWriter, history History, logger Logger, clock Clock, idgen IDGenerator) *Organizer {
	return &Organizer{
		fsmgr:   fsmgr,
		meta:    meta,
		writer:  writer,
		history: history,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
	}
}

// Plan lists the files in inDir and plans their organization below outDir.
// Nothing is modified.
func (o *Organizer) Plan(inDir, outDir string) ([]Command, error) {
	paths, err := o.fsmgr.ListFiles(inDir)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}

	cmds, err := PlanAll(paths, outDir, o.derivedFrom, o.captureTime)
	if err != nil {
		return nil, err
	}

	o.logger.Info("plan ready", "input_dir", inDir, "output_dir", outDir, "files", len(paths), "commands", len(cmds))
	return cmds, nil
}

func (o *Organizer) derivedFrom(path string) (string, bool) {
	source, ok := o.meta.DerivedFrom(path)
	if ok {
		o.logger.Debug("derived file", "path", path, "source", source)
	}
	return source, ok
}

func (o *Organizer) captureTime(path string) (time.Time, bool) {
	t, ok := o.meta.CaptureTime(path)
	if !ok {
		o.logger.Debug("no capture time", "path", path)
	}
	return t, ok
}

// Apply executes cmds in order. It stops at the first failing command and
// returns its error; commands already applied stay applied. If applied is
// non-nil it is called after every successful command and may abort the run
// by returning an error.
func (o *Organizer) Apply(cmds []Command, applied func(seq int, cmd Command) error) error {
	for i, cmd := range cmds {
		o.logger.Debug("applying command", "seq", i, "command", cmd.String())
		if err := o.apply(cmd); err != nil {
			o.logger.Error("command failed", "seq", i, "command", cmd.String(), "error", err)
			return fmt.Errorf("command %d (%s): %w", i, cmd, err)
		}
		if applied != nil {
			if err := applied(i, cmd); err != nil {
				return fmt.Errorf("recording command %d: %w", i, err)
			}
		}
	}
	return nil
}

func (o *Organizer) apply(cmd Command) error {
	switch c := cmd.(type) {
	case CreateDirectory:
		exists, err := o.fsmgr.Exists(c.Path)
		if err != nil {
			return fmt.Errorf("checking %s: %w", c.Path, err)
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrDirectoryExists, c.Path)
		}
		return o.fsmgr.MkdirAll(c.Path)
	case Rename:
		return o.fsmgr.CopyFile(c.From, c.To)
	case AdjustReference:
		ref, err := ReferenceText(c.File, c.ReferencedImage)
		if err != nil {
			return err
		}
		return o.writer.WriteDerivedFrom(c.File, ref)
	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
}

// Organize plans the organization of inDir below outDir and executes it.
func (o *Organizer) Organize(inDir, outDir string) (*Run, error) {
	cmds, err := o.Plan(inDir, outDir)
	if err != nil {
		return nil, err
	}
	return o.Execute(inDir, outDir, cmds)
}

// Execute applies a plan made for inDir and outDir, recording the run and
// every applied command in the history. The returned run is non-nil whenever
// a run record was created, even on failure.
func (o *Organizer) Execute(inDir, outDir string, cmds []Command) (*Run, error) {
	run := &Run{
		ID:        o.idgen.New(),
		StartedAt: o.clock.Now(),
		InputDir:  inDir,
		OutputDir: outDir,
		Status:    RunStatusRunning,
	}
	if err := o.history.CreateRun(run); err != nil {
		return nil, fmt.Errorf("creating run: %w", err)
	}

	count := 0
	applyErr := o.Apply(cmds, func(seq int, cmd Command) error {
		count++
		return o.history.RecordCommand(run.ID, seq, cmd)
	})

	run.Status = RunStatusSuccess
	if applyErr != nil {
		run.Status = RunStatusError
	}
	run.CommandCount = count
	finishedAt := o.clock.Now()
	run.FinishedAt.Time, run.FinishedAt.Valid = finishedAt, true

	if err := o.history.FinishRun(run.ID, run.Status, finishedAt, count); err != nil {
		if applyErr != nil {
			return run, applyErr
		}
		return run, fmt.Errorf("finishing run: %w", err)
	}

	if applyErr != nil {
		return run, applyErr
	}
	o.logger.Info("run finished", "run_id", run.ID, "commands", count)
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (o *Organizer) ListRuns(limit int) ([]*Run, error) {
	return o.history.ListRuns(limit)
}

// RunDetails returns a run and the commands it applied.
func (o *Organizer) RunDetails(runID string) (*Run, []*RunCommand, error) {
	run, err := o.history.FindRun(runID)
	if err != nil {
		return nil, nil, fmt.Errorf("finding run: %w", err)
	}
	if run == nil {
		return nil, nil, fmt.Errorf("no run with id %s", runID)
	}
	cmds, err := o.history.ListRunCommands(runID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing run commands: %w", err)
	}
	return run, cmds, nil
}
