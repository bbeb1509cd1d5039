package cleaner

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/lakshaymaurya-felt/quickclean/internal/config"
	"github.com/lakshaymaurya-felt/quickclean/internal/paths"
)

// stubResolver maps categories to fixed roots. An optional hook runs on every
// Resolve call, which lets tests inject cancellation or blocking mid-run.
type stubResolver struct {
	roots map[paths.Category][]string
	err   error
	hook  func(cat paths.Category)
}

func (s *stubResolver) Resolve(cat paths.Category) ([]string, error) {
	if s.hook != nil {
		s.hook(cat)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.roots[cat], nil
}

// fakeBin is a BinEmptier double.
type fakeBin struct {
	size     int64
	sizeErr  error
	emptyErr error
	emptied  bool
}

func (b *fakeBin) Size() (int64, error) { return b.size, b.sizeErr }
func (b *fakeBin) Empty() error {
	if b.emptyErr != nil {
		return b.emptyErr
	}
	b.emptied = true
	return nil
}

func twoDirTasks() []config.TaskConfig {
	return []config.TaskConfig{
		{Name: "User Temp", Category: paths.CategoryUserTemp, Enabled: true, Recursive: true},
		{Name: "Recent Items", Category: paths.CategoryRecentItems, Enabled: true, Recursive: true},
	}
}

func TestRunTotalsMatchTaskResults(t *testing.T) {
	tempRoot := t.TempDir()
	recentRoot := t.TempDir()
	writeTestFile(t, filepath.Join(tempRoot, "a.tmp"), 100)
	writeTestFile(t, filepath.Join(tempRoot, "b.tmp"), 200)
	writeTestFile(t, filepath.Join(recentRoot, "c.lnk"), 50)

	resolver := &stubResolver{roots: map[paths.Category][]string{
		paths.CategoryUserTemp:    {tempRoot},
		paths.CategoryRecentItems: {recentRoot},
	}}

	e, err := New(twoDirTasks(), Options{Resolver: resolver})
	if err != nil {
		t.Fatal(err)
	}

	summary, err := e.Run(nil)
	if err != nil {
		t.Fatal(err)
	}

	if summary.TotalBytesFreed != 350 {
		t.Errorf("TotalBytesFreed = %d, want 350", summary.TotalBytesFreed)
	}
	var sum uint64
	for _, r := range summary.Results {
		sum += r.BytesFreed
	}
	if sum != summary.TotalBytesFreed {
		t.Errorf("sum of task results %d != total %d", sum, summary.TotalBytesFreed)
	}
	if len(summary.Results) != 2 {
		t.Errorf("results = %d, want 2", len(summary.Results))
	}
	if summary.Cancelled {
		t.Error("run unexpectedly cancelled")
	}
	if summary.FinishedAt.Before(summary.StartedAt) {
		t.Error("FinishedAt precedes StartedAt")
	}
}

func TestRunProgressOrdering(t *testing.T) {
	roots := map[paths.Category][]string{}
	tasks := twoDirTasks()
	for _, task := range tasks {
		dir := t.TempDir()
		writeTestFile(t, filepath.Join(dir, "f.tmp"), 10)
		roots[task.Category] = []string{dir}
	}

	e, err := New(tasks, Options{Resolver: &stubResolver{roots: roots}})
	if err != nil {
		t.Fatal(err)
	}

	var events []ProgressEvent
	summary, err := e.Run(func(ev ProgressEvent) { events = append(events, ev) })
	if err != nil {
		t.Fatal(err)
	}

	// One event per task plus the final aggregate event.
	if len(events) != len(tasks)+1 {
		t.Fatalf("events = %d, want %d", len(events), len(tasks)+1)
	}
	for i := 1; i < len(events); i++ {
		if events[i].TaskIndex <= events[i-1].TaskIndex {
			t.Errorf("TaskIndex not strictly increasing: %d then %d",
				events[i-1].TaskIndex, events[i].TaskIndex)
		}
	}
	last := events[len(events)-1]
	if !last.Final {
		t.Error("last event is not the final event")
	}
	if last.BytesFreedSoFar != summary.TotalBytesFreed {
		t.Errorf("final event carries %d bytes, summary says %d",
			last.BytesFreedSoFar, summary.TotalBytesFreed)
	}
}

func TestRunRejectsConcurrentRun(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	resolver := &stubResolver{
		roots: map[paths.Category][]string{},
		hook: func(paths.Category) {
			// Block only the first run; the reuse check below resolves freely.
			once.Do(func() {
				close(entered)
				<-release
			})
		},
	}

	e, err := New(twoDirTasks()[:1], Options{Resolver: resolver})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := e.Run(nil); err != nil {
			t.Errorf("first run failed: %v", err)
		}
	}()

	<-entered
	if _, err := e.Run(nil); !errors.Is(err, ErrBusy) {
		t.Errorf("second run error = %v, want ErrBusy", err)
	}
	close(release)
	wg.Wait()

	// The engine is reusable once the first run finishes.
	if _, err := e.Run(nil); err != nil {
		t.Errorf("run after completion failed: %v", err)
	}
}

func TestRunCancelBetweenTasks(t *testing.T) {
	tempRoot := t.TempDir()
	writeTestFile(t, filepath.Join(tempRoot, "a.tmp"), 100)

	var e *Engine
	resolver := &stubResolver{
		roots: map[paths.Category][]string{paths.CategoryUserTemp: {tempRoot}},
	}
	// Cancel while the first task is resolving; the second task must not start.
	resolver.hook = func(cat paths.Category) {
		if cat == paths.CategoryUserTemp {
			e.Cancel()
		}
	}

	var err error
	e, err = New(twoDirTasks(), Options{Resolver: resolver})
	if err != nil {
		t.Fatal(err)
	}

	summary, err := e.Run(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !summary.Cancelled {
		t.Error("summary.Cancelled = false, want true")
	}
	if len(summary.Results) != 1 {
		t.Errorf("results = %d, want 1 (only the started task)", len(summary.Results))
	}
}

func TestRunEmptyCategoryIsNotAFailure(t *testing.T) {
	// No browser installed: resolver returns nothing for the category.
	resolver := &stubResolver{roots: map[paths.Category][]string{}}
	tasks := []config.TaskConfig{
		{Name: "Google Chrome Cache", Category: paths.CategoryChrome, Enabled: true, Recursive: true},
	}

	e, err := New(tasks, Options{Resolver: resolver})
	if err != nil {
		t.Fatal(err)
	}
	summary, err := e.Run(nil)
	if err != nil {
		t.Fatal(err)
	}

	r := summary.Results[0]
	if r.BytesFreed != 0 || r.ItemsFailed != 0 || len(r.Errors) != 0 {
		t.Errorf("empty category should be a zero result, got %+v", r)
	}
}

func TestRunResolutionErrorIsContained(t *testing.T) {
	resolver := &stubResolver{err: errors.New("profile unavailable")}
	e, err := New(twoDirTasks(), Options{Resolver: resolver})
	if err != nil {
		t.Fatal(err)
	}

	summary, err := e.Run(nil)
	if err != nil {
		t.Fatal(err)
	}

	// Both tasks still ran and recorded their failure.
	if len(summary.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(summary.Results))
	}
	for _, r := range summary.Results {
		if r.ItemsFailed != 1 || len(r.Errors) != 1 {
			t.Errorf("task %s: failed=%d errors=%d, want 1/1", r.Task, r.ItemsFailed, len(r.Errors))
		}
	}
}

func TestRunDisabledTaskSkipped(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "sys.tmp"), 77)

	tasks := []config.TaskConfig{
		{Name: "User Temp", Category: paths.CategoryUserTemp, Enabled: true, Recursive: true},
		{Name: "System Temp", Category: paths.CategorySystemTemp, Enabled: false, Recursive: true},
	}
	resolver := &stubResolver{roots: map[paths.Category][]string{
		paths.CategorySystemTemp: {dir},
	}}

	e, err := New(tasks, Options{Resolver: resolver})
	if err != nil {
		t.Fatal(err)
	}
	summary, err := e.Run(nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(summary.Results) != 1 || summary.Results[0].Task != "User Temp" {
		t.Errorf("disabled task appeared in results: %+v", summary.Results)
	}
	if summary.TotalBytesFreed != 0 {
		t.Errorf("disabled task contributed bytes: %d", summary.TotalBytesFreed)
	}
}

func TestRecycleBinResultIsEstimated(t *testing.T) {
	bin := &fakeBin{size: 1234}
	tasks := []config.TaskConfig{
		{Name: "Recycle Bin", Category: paths.CategoryRecycleBin, Enabled: true},
	}

	e, err := New(tasks, Options{Resolver: &stubResolver{}, Bin: bin})
	if err != nil {
		t.Fatal(err)
	}
	summary, err := e.Run(nil)
	if err != nil {
		t.Fatal(err)
	}

	r := summary.Results[0]
	if !r.Estimated {
		t.Error("recycle bin result not flagged as estimated")
	}
	if r.BytesFreed != 1234 || r.ItemsDeleted != 1 {
		t.Errorf("bytes/deleted = %d/%d, want 1234/1", r.BytesFreed, r.ItemsDeleted)
	}
	if !bin.emptied {
		t.Error("bin was never emptied")
	}
}

func TestRecycleBinEmptyFailure(t *testing.T) {
	bin := &fakeBin{size: 99, emptyErr: errors.New("access denied")}
	tasks := []config.TaskConfig{
		{Name: "Recycle Bin", Category: paths.CategoryRecycleBin, Enabled: true},
	}

	e, err := New(tasks, Options{Resolver: &stubResolver{}, Bin: bin})
	if err != nil {
		t.Fatal(err)
	}
	summary, err := e.Run(nil)
	if err != nil {
		t.Fatal(err)
	}

	r := summary.Results[0]
	if r.ItemsFailed != 1 || r.BytesFreed != 0 {
		t.Errorf("failed/bytes = %d/%d, want 1/0", r.ItemsFailed, r.BytesFreed)
	}
}

func TestNewRejectsUnknownCategory(t *testing.T) {
	tasks := []config.TaskConfig{
		{Name: "Bogus", Category: paths.Category("registry-hive"), Enabled: true},
	}
	if _, err := New(tasks, Options{Resolver: &stubResolver{}}); err == nil {
		t.Error("unknown category accepted at construction")
	}
}

func TestNewRejectsEmptyPlan(t *testing.T) {
	tasks := []config.TaskConfig{
		{Name: "User Temp", Category: paths.CategoryUserTemp, Enabled: false},
	}
	if _, err := New(tasks, Options{Resolver: &stubResolver{}}); !errors.Is(err, ErrNoTasks) {
		t.Errorf("error = %v, want ErrNoTasks", err)
	}
}
