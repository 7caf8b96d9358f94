package imgor

import (
	"database/sql"
	"time"
)

// Run statuses.
const (
	RunStatusRunning = "running"
	RunStatusSuccess = "success"
	RunStatusError   = "error"
)

// Run is the record of one executed organize plan.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   sql.NullTime
	InputDir     string
	OutputDir    string
	Status       string
	CommandCount int
}

// RunCommand is a command applied by a run, as stored in the history.
type RunCommand struct {
	Seq    int
	Kind   string
	Path   string
	Target string
}

// History stores an audit trail of executed runs and the commands they
// applied. It is never used to undo a run.
type History interface {
	// CreateRun inserts a new run record.
	CreateRun(run *Run) error

	// RecordCommand stores the seq-th command applied by a run.
	RecordCommand(runID string, seq int, cmd Command) error

	// FinishRun marks a run as finished with the given status.
	FinishRun(runID string, status string, finishedAt time.Time, commandCount int) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]*Run, error)

	// FindRun returns the run with the given ID, or nil if there is none.
	FindRun(runID string) (*Run, error)

	// ListRunCommands returns the commands a run applied, in order.
	ListRunCommands(runID string) ([]*RunCommand, error)

	// Close closes the underlying store.
	Close() error
}

// CommandRow flattens a command into the kind/path/target triple stored in
// the history.
func CommandRow(cmd Command) (kind, path, target string) {
	switch c := cmd.(type) {
	case CreateDirectory:
		return "create_dir", c.Path, ""
	case Rename:
		return "rename", c.From, c.To
	case AdjustReference:
		return "adjust_ref", c.File, c.ReferencedImage
	default:
		return "unknown", "", ""
	}
}
