// Package cleaner executes an ordered list of cleanup tasks, accounting for
// every byte freed and every entry that could not be deleted. A run never
// fails as a whole: errors are folded into the returned summary.
package cleaner

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/lakshaymaurya-felt/quickclean/internal/config"
	"github.com/lakshaymaurya-felt/quickclean/internal/paths"
)

// Options carries the engine's collaborators. Zero values select defaults.
type Options struct {
	// Resolver maps categories to filesystem roots. Nil uses the standard
	// environment-based resolver.
	Resolver PathResolver

	// Bin empties the Recycle Bin. Nil makes recycle-bin tasks record an
	// error instead of cleaning.
	Bin BinEmptier

	// Logger receives per-entry failure details. Nil discards them.
	Logger *log.Logger
}

// Engine runs cleanup tasks in declaration order. At most one run may be in
// flight per instance; the busy mutex is the only cross-run mutable state.
type Engine struct {
	tasks    []config.TaskConfig // enabled tasks, execution order
	resolver PathResolver
	bin      BinEmptier
	logger   *log.Logger

	runMu    sync.Mutex // held for the duration of a run
	cancelMu sync.Mutex
	cancel   context.CancelFunc
}

// New validates the task configuration and builds an engine. Disabled tasks
// are dropped here; an unknown category is a fatal configuration error.
func New(tasks []config.TaskConfig, opts Options) (*Engine, error) {
	var enabled []config.TaskConfig
	for _, t := range tasks {
		if !paths.KnownCategory(t.Category) {
			return nil, fmt.Errorf("task %q: unknown category %q", t.Name, t.Category)
		}
		if t.Enabled {
			enabled = append(enabled, t)
		}
	}
	if len(enabled) == 0 {
		return nil, ErrNoTasks
	}

	e := &Engine{
		tasks:    enabled,
		resolver: opts.Resolver,
		bin:      opts.Bin,
		logger:   opts.Logger,
	}
	if e.resolver == nil {
		r, err := paths.NewResolver()
		if err != nil {
			return nil, err
		}
		e.resolver = r
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard, "", 0)
	}
	return e, nil
}

// TaskNames returns the enabled task names in execution order.
func (e *Engine) TaskNames() []string {
	names := make([]string, len(e.tasks))
	for i, t := range e.tasks {
		names[i] = t.Name
	}
	return names
}

// Cancel requests a cooperative stop of the in-flight run. The engine stops
// starting new tasks and the deleter stops between entries; the run still
// returns a summary of the work actually done. Calling Cancel with no run in
// flight is a no-op.
func (e *Engine) Cancel() {
	e.cancelMu.Lock()
	defer e.cancelMu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
}

// Run executes every enabled task in order and returns the summary. One event
// per completed task plus a final aggregate event are delivered to onProgress
// (which may be nil) from a forwarder goroutine, so the caller never blocks
// filesystem work. The final event is always last. A second Run while one is
// active fails immediately with ErrBusy.
func (e *Engine) Run(onProgress func(ProgressEvent)) (*RunSummary, error) {
	if !e.runMu.TryLock() {
		return nil, ErrBusy
	}
	defer e.runMu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	e.cancelMu.Lock()
	e.cancel = cancel
	e.cancelMu.Unlock()
	defer func() {
		e.cancelMu.Lock()
		e.cancel = nil
		e.cancelMu.Unlock()
		cancel()
	}()

	// The buffer holds every event a run can produce, so sends below never
	// block unless the consumer falls behind by a full run's worth.
	events := make(chan ProgressEvent, len(e.tasks)+1)
	var forwarder sync.WaitGroup
	if onProgress != nil {
		forwarder.Add(1)
		go func() {
			defer forwarder.Done()
			for ev := range events {
				onProgress(ev)
			}
		}()
	}
	emit := func(ev ProgressEvent) {
		if onProgress != nil {
			events <- ev
		}
	}

	summary := &RunSummary{StartedAt: time.Now()}
	for i, t := range e.tasks {
		if ctx.Err() != nil {
			summary.Cancelled = true
			break
		}

		res := e.runTask(ctx, t)
		summary.TotalBytesFreed += res.BytesFreed
		summary.Results = append(summary.Results, res)

		emit(ProgressEvent{
			TaskName:        t.Name,
			TaskIndex:       i,
			TaskCount:       len(e.tasks),
			BytesFreedSoFar: summary.TotalBytesFreed,
		})

		if ctx.Err() != nil {
			summary.Cancelled = true
			break
		}
	}
	summary.FinishedAt = time.Now()

	emit(ProgressEvent{
		TaskIndex:       len(e.tasks),
		TaskCount:       len(e.tasks),
		BytesFreedSoFar: summary.TotalBytesFreed,
		Final:           true,
	})
	close(events)
	forwarder.Wait()

	return summary, nil
}

// runTask resolves a task's roots and applies the deleter to each. Nothing
// below the task boundary escapes as an error.
func (e *Engine) runTask(ctx context.Context, t config.TaskConfig) TaskResult {
	res := TaskResult{Task: t.Name}

	if t.Category == paths.CategoryRecycleBin {
		e.emptyBin(&res)
		return res
	}

	roots, err := e.resolver.Resolve(t.Category)
	if err != nil {
		res.ItemsFailed++
		res.Errors = append(res.Errors, EntryError{Path: string(t.Category), Reason: err.Error()})
		e.logger.Printf("[ERROR] %s: resolve %s: %v", t.Name, t.Category, err)
		return res
	}

	for _, root := range roots {
		if ctx.Err() != nil {
			return res
		}
		dr := deleteContents(ctx, root, t.Recursive)
		res.BytesFreed += dr.bytesFreed
		res.ItemsDeleted += dr.deleted
		res.ItemsFailed += dr.failed
		res.Errors = append(res.Errors, dr.errors...)
		for _, ee := range dr.errors {
			e.logger.Printf("[WARN] %s: %s: %s", t.Name, ee.Path, ee.Reason)
		}
	}
	return res
}

// emptyBin runs the dedicated Recycle Bin operation. The byte count comes
// from querying the bin size beforehand, so it is always flagged as an
// estimate.
func (e *Engine) emptyBin(res *TaskResult) {
	res.Estimated = true

	if e.bin == nil {
		res.ItemsFailed++
		res.Errors = append(res.Errors, EntryError{Path: "RecycleBin", Reason: "recycle bin operations unavailable"})
		return
	}

	size, err := e.bin.Size()
	if err != nil {
		// Emptying still proceeds; only the byte count is lost.
		e.logger.Printf("[WARN] Recycle Bin: query size: %v", err)
		size = 0
	}

	if err := e.bin.Empty(); err != nil {
		res.ItemsFailed++
		res.Errors = append(res.Errors, EntryError{Path: "RecycleBin", Reason: err.Error()})
		e.logger.Printf("[ERROR] Recycle Bin: %v", err)
		return
	}

	res.ItemsDeleted++
	if size > 0 {
		res.BytesFreed += uint64(size)
	}
}
