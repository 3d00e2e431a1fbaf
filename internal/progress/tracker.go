package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

// Tracker interface defines methods for tracking batch progress
type Tracker interface {
	Start(operation string, total int)
	Step(name string)
	Warn(name string, message string)
	Fail(name string, err error)
	Done(name string)
	Complete()
}

// BatchTracker reports per-repository progress of a clone batch to the
// console, one status line per item plus a final summary.
type BatchTracker struct {
	out       io.Writer
	operation string
	startTime time.Time
	total     int
	current   int
	failed    int
}

// NewBatchTracker creates a console-based batch tracker
func NewBatchTracker() *BatchTracker {
	return &BatchTracker{out: os.Stdout}
}

// NewBatchTrackerTo creates a batch tracker writing to w. Used by tests.
func NewBatchTrackerTo(w io.Writer) *BatchTracker {
	return &BatchTracker{out: w}
}

// Start begins tracking a new batch
func (t *BatchTracker) Start(operation string, total int) {
	t.operation = operation
	t.startTime = time.Now()
	t.total = total
	t.current = 0
	t.failed = 0
	fmt.Fprintf(t.out, "Starting: %s (%d repositories)\n", operation, total)
}

// Step announces the item currently being processed
func (t *BatchTracker) Step(name string) {
	t.current++
	fmt.Fprintf(t.out, "[%d/%d] %s\n", t.current, t.total, name)
}

// Warn reports a non-fatal condition for the current item
func (t *BatchTracker) Warn(name string, message string) {
	color.New(color.FgYellow).Fprintf(t.out, "  warning: %s: %s\n", name, message)
}

// Fail reports a failed item
func (t *BatchTracker) Fail(name string, err error) {
	t.failed++
	color.New(color.FgRed).Fprintf(t.out, "  failed: %s: %v\n", name, err)
}

// Done reports a successfully processed item
func (t *BatchTracker) Done(name string) {
	color.New(color.FgGreen).Fprintf(t.out, "  done: %s\n", name)
}

// Complete emits the single aggregate completion line for the batch
func (t *BatchTracker) Complete() {
	duration := time.Since(t.startTime).Round(time.Millisecond)
	if t.failed > 0 {
		fmt.Fprintf(t.out, "Completed: %s (%d/%d succeeded, took %v)\n",
			t.operation, t.total-t.failed, t.total, duration)
		return
	}
	fmt.Fprintf(t.out, "Completed: %s (took %v)\n", t.operation, duration)
}

// NopTracker discards all progress events. Used where no console is attached.
type NopTracker struct{}

func (NopTracker) Start(string, int)   {}
func (NopTracker) Step(string)         {}
func (NopTracker) Warn(string, string) {}
func (NopTracker) Fail(string, error)  {}
func (NopTracker) Done(string)         {}
func (NopTracker) Complete()           {}
