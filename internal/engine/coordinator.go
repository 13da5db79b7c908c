// Package engine coordinates scan and copy operations against a shared
// result set. The coordinator owns the authoritative record list, keeps the
// duplicate index synchronized with every insertion, removal and reset, and
// guarantees that a scan and a copy are never concurrent: starting one
// cancels the other and waits for it to fully stop first.
package engine

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/copier"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/dupindex"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/fsutil"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/logbuffer"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/scan"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/models"
)

// Outcome is how the last run of an operation class ended
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCompleted
	OutcomeCancelled
	OutcomeFailed
)

// String returns the display name of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return "none"
	}
}

// operation tracks one operation class (scan or copy)
type operation struct {
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	outcome Outcome
}

// Coordinator sequences scans and copies over the shared result set
type Coordinator struct {
	mu      sync.Mutex
	logger  *zap.Logger
	ring    *logbuffer.Buffer
	scanner *scan.Scanner
	copier  *copier.Copier
	index   *dupindex.Index
	records []*models.ResultRecord
	scanOp  operation
	copyOp  operation
}

// NewCoordinator creates a coordinator with an empty result set
func NewCoordinator(logger *zap.Logger, logCapacity int) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Coordinator{
		logger:  logger,
		ring:    logbuffer.New(logCapacity),
		scanner: scan.NewScanner(logger),
		copier:  copier.NewCopier(logger),
	}
	c.index = dupindex.New(c.appendEntry)
	return c
}

// StartScan starts a scan in the background. Any in-flight copy is cancelled
// and fully drained first; a scan already running is an error. The result
// set and log are cleared before the first event arrives. The returned
// channel yields the operation's final error (nil, context.Canceled, or a
// setup failure) exactly once.
func (c *Coordinator) StartScan(req models.ScanRequest) (<-chan error, error) {
	roots := fsutil.NormalizeRoots(req.Roots)
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}
	if len(req.Extensions) == 0 {
		return nil, ErrNoExtensions
	}
	req.Roots = roots

	ctx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	for {
		if c.scanOp.running {
			c.mu.Unlock()
			cancel()
			return nil, ErrScanInProgress
		}
		other := c.takeRunningLocked(&c.copyOp)
		if other.cancel == nil {
			break
		}
		// Another starter may slip in while the lock is released, so the
		// check repeats until both classes are idle under the lock.
		c.mu.Unlock()
		c.stopOther(other)
		c.mu.Lock()
	}
	c.scanOp = operation{running: true, cancel: cancel, done: make(chan struct{})}
	c.records = nil
	c.index.Reset()
	c.ring.Clear()
	c.mu.Unlock()

	return c.launch(ctx, &c.scanOp, func(ctx context.Context, emit func(models.Event)) error {
		return c.scanner.Run(ctx, req, emit)
	}), nil
}

// StartCopy starts copying the given records in the background. Any
// in-flight scan is cancelled and fully drained first.
func (c *Coordinator) StartCopy(req models.CopyRequest) (<-chan error, error) {
	if req.DestRoot == "" {
		return nil, ErrNoDestination
	}
	if len(req.Records) == 0 {
		return nil, ErrNoRecords
	}

	ctx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	for {
		if c.copyOp.running {
			c.mu.Unlock()
			cancel()
			return nil, ErrCopyInProgress
		}
		other := c.takeRunningLocked(&c.scanOp)
		if other.cancel == nil {
			break
		}
		c.mu.Unlock()
		c.stopOther(other)
		c.mu.Lock()
	}
	c.copyOp = operation{running: true, cancel: cancel, done: make(chan struct{})}
	c.mu.Unlock()

	return c.launch(ctx, &c.copyOp, func(ctx context.Context, emit func(models.Event)) error {
		return c.copier.Run(ctx, req, emit)
	}), nil
}

// CopyAll builds a copy request over the whole result set and starts it
func (c *Coordinator) CopyAll(destRoot string, overwrite, dryRun bool) (<-chan error, error) {
	return c.StartCopy(models.CopyRequest{
		Records:   c.Records(),
		DestRoot:  destRoot,
		Overwrite: overwrite,
		DryRun:    dryRun,
	})
}

// CopySelected builds a copy request over the selected records and starts it
func (c *Coordinator) CopySelected(destRoot string, overwrite, dryRun bool) (<-chan error, error) {
	var selected []*models.ResultRecord
	for _, rec := range c.Records() {
		if rec.Selected {
			selected = append(selected, rec)
		}
	}
	if len(selected) == 0 {
		return nil, ErrNoSelection
	}
	return c.StartCopy(models.CopyRequest{
		Records:   selected,
		DestRoot:  destRoot,
		Overwrite: overwrite,
		DryRun:    dryRun,
	})
}

// launch runs one operation: a producer goroutine executes the body, a drain
// goroutine consumes its events in FIFO order and is the only writer of the
// shared state. The done channel of op closes once the drain has finished.
func (c *Coordinator) launch(ctx context.Context, op *operation, body func(context.Context, func(models.Event)) error) <-chan error {
	events := make(chan models.Event, 64)
	errCh := make(chan error, 1)
	var runErr error

	go func() {
		runErr = body(ctx, func(ev models.Event) { events <- ev })
		close(events)
	}()

	go func() {
		for ev := range events {
			c.apply(ev)
		}
		c.finish(op, runErr)
		errCh <- runErr
		close(errCh)
	}()

	return errCh
}

// apply mutates the shared state for one event
func (c *Coordinator) apply(ev models.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ev.Record != nil {
		c.records = append(c.records, ev.Record)
		c.index.Register(ev.Record)
	}
	if ev.Entry != nil {
		c.appendEntry(*ev.Entry)
	}
}

// appendEntry tees a log entry into the ring and the structured logger.
// Callers must hold no lock that the ring needs; c.mu is fine.
func (c *Coordinator) appendEntry(entry models.LogEntry) {
	c.ring.Add(entry)
	switch entry.Level {
	case models.SeverityError:
		c.logger.Error(entry.Message)
	case models.SeverityWarning:
		c.logger.Warn(entry.Message)
	default:
		c.logger.Info(entry.Message)
	}
}

// finish records the outcome and releases the operation slot
func (c *Coordinator) finish(op *operation, err error) {
	c.mu.Lock()
	switch {
	case err == nil:
		op.outcome = OutcomeCompleted
	case errors.Is(err, context.Canceled):
		op.outcome = OutcomeCancelled
	default:
		op.outcome = OutcomeFailed
	}
	op.running = false
	op.cancel()
	done := op.done
	c.mu.Unlock()
	close(done)
}

// takeRunningLocked returns the cancel/done pair of a running operation, or
// a zero operation when idle. Caller holds c.mu.
func (c *Coordinator) takeRunningLocked(op *operation) operation {
	if !op.running {
		return operation{}
	}
	return *op
}

// stopOther cancels a running operation and waits for its drain to finish
func (c *Coordinator) stopOther(op operation) {
	if op.cancel == nil {
		return
	}
	op.cancel()
	<-op.done
}

// Cancel requests cooperative cancellation of any running operation. The
// operation transitions to idle once its drain loop observes the
// cancellation and finishes.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	scanCancel := c.scanOp.cancel
	scanRunning := c.scanOp.running
	copyCancel := c.copyOp.cancel
	copyRunning := c.copyOp.running
	c.mu.Unlock()

	if scanRunning && scanCancel != nil {
		scanCancel()
	}
	if copyRunning && copyCancel != nil {
		copyCancel()
	}
}

// Busy reports whether a scan or copy is currently running
func (c *Coordinator) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scanOp.running || c.copyOp.running
}

// CanScan reports whether a scan could be started with the given request
func (c *Coordinator) CanScan(req models.ScanRequest) bool {
	c.mu.Lock()
	busy := c.scanOp.running
	c.mu.Unlock()
	if busy {
		return false
	}
	return len(fsutil.NormalizeRoots(req.Roots)) > 0 && len(req.Extensions) > 0
}

// CanCopy reports whether a copy over the whole result set could be started
func (c *Coordinator) CanCopy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.copyOp.running && len(c.records) > 0
}

// CanCopySelected reports whether a copy over the selection could be started
func (c *Coordinator) CanCopySelected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.copyOp.running {
		return false
	}
	for _, rec := range c.records {
		if rec.Selected {
			return true
		}
	}
	return false
}

// ScanOutcome returns how the last scan ended
func (c *Coordinator) ScanOutcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scanOp.outcome
}

// CopyOutcome returns how the last copy ended
func (c *Coordinator) CopyOutcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyOp.outcome
}

// Records returns a snapshot of the current result set in insertion order
func (c *Coordinator) Records() []*models.ResultRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*models.ResultRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Groups returns the current duplicate groups
func (c *Coordinator) Groups() []models.DuplicateGroup {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index.Groups()
}

// LogEntries returns the buffered log in chronological order
func (c *Coordinator) LogEntries() []models.LogEntry {
	return c.ring.Entries()
}

// CheckDuplicates recomputes every duplicate flag from scratch over the
// whole result set
func (c *Coordinator) CheckDuplicates() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index.RecomputeAll(c.records)
}

// RemoveRecord removes one record from the result set by absolute path and
// unregisters it from the duplicate index. No-op while an operation runs.
func (c *Coordinator) RemoveRecord(absPath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scanOp.running || c.copyOp.running {
		return ErrBusy
	}
	for i, rec := range c.records {
		if rec.AbsPath == absPath {
			c.records = append(c.records[:i], c.records[i+1:]...)
			c.index.Unregister(rec)
			return nil
		}
	}
	return nil
}

// ClearResults discards the result set and resets the duplicate index
func (c *Coordinator) ClearResults() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scanOp.running || c.copyOp.running {
		return ErrBusy
	}
	c.records = nil
	c.index.Reset()
	return nil
}

// SetSelected flips the selection flag of the record with the given
// absolute path. Returns false when no such record exists.
func (c *Coordinator) SetSelected(absPath string, selected bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range c.records {
		if rec.AbsPath == absPath {
			rec.Selected = selected
			return true
		}
	}
	return false
}

// SelectAll marks every record as selected
func (c *Coordinator) SelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range c.records {
		rec.Selected = true
	}
}

// ClearSelection unmarks every record
func (c *Coordinator) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range c.records {
		rec.Selected = false
	}
}

// InvertSelection flips every record's selection flag
func (c *Coordinator) InvertSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range c.records {
		rec.Selected = !rec.Selected
	}
}

// SelectedCount returns the number of selected records
func (c *Coordinator) SelectedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, rec := range c.records {
		if rec.Selected {
			n++
		}
	}
	return n
}
