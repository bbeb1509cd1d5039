package cleaner

import (
	"errors"
	"time"

	"github.com/lakshaymaurya-felt/quickclean/internal/paths"
)

var (
	// ErrBusy is returned by Run when another run is already in flight on
	// the same engine.
	ErrBusy = errors.New("a cleaning run is already in progress")

	// ErrNoTasks is returned by New when the configuration enables nothing.
	ErrNoTasks = errors.New("no cleanup tasks enabled")
)

// PathResolver supplies the filesystem roots for a cleanup category.
type PathResolver interface {
	Resolve(cat paths.Category) ([]string, error)
}

// BinEmptier abstracts the Recycle Bin, which is emptied through a dedicated
// system operation rather than path deletion.
type BinEmptier interface {
	// Size returns the aggregate byte size of the bin's contents.
	Size() (int64, error)
	// Empty empties the bin on all drives.
	Empty() error
}

// EntryError records one entry that could not be deleted.
type EntryError struct {
	Path   string
	Reason string
}

// TaskResult is the outcome of one task execution. It is never mutated after
// the task finishes.
type TaskResult struct {
	Task         string
	BytesFreed   uint64
	ItemsDeleted uint32
	ItemsFailed  uint32

	// Estimated marks byte counts that come from an aggregate query (the
	// Recycle Bin) instead of per-file measurement.
	Estimated bool

	Errors []EntryError
}

// RunSummary is the final accounting of a run. TotalBytesFreed always equals
// the sum of the per-task BytesFreed.
type RunSummary struct {
	TotalBytesFreed uint64
	Results         []TaskResult
	StartedAt       time.Time
	FinishedAt      time.Time
	Cancelled       bool
}

// ProgressEvent is a transient notification pushed once per completed task,
// plus a final event carrying the run's aggregate state. Events arrive in
// strictly increasing TaskIndex order; the final event has
// TaskIndex == TaskCount and Final set.
type ProgressEvent struct {
	TaskName        string
	TaskIndex       int
	TaskCount       int
	BytesFreedSoFar uint64
	Final           bool
}
