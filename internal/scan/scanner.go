// Package scan implements the directory walker that locates files matching a
// set of extensions under one or more source roots. The walk is sequential,
// cancellable between files and between roots, and tolerates inaccessible
// entries instead of aborting.
package scan

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/fsutil"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/models"
)

// EmitFunc receives scan events in emission order
type EmitFunc func(models.Event)

// Scanner walks source roots and emits result records and log lines
type Scanner struct {
	logger *zap.Logger
}

// NewScanner creates a scanner
func NewScanner(logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{logger: logger}
}

// Scan runs the walk in a background goroutine and returns its events as a
// channel, closed on termination. The final error is delivered through errFn
// just before the close.
func (s *Scanner) Scan(ctx context.Context, req models.ScanRequest, errFn func(error)) <-chan models.Event {
	events := make(chan models.Event, 64)
	go func() {
		err := s.Run(ctx, req, func(ev models.Event) { events <- ev })
		if errFn != nil {
			errFn(err)
		}
		close(events)
	}()
	return events
}

// scanRun carries the state of one scan invocation
type scanRun struct {
	req   models.ScanRequest
	exts  map[string]bool
	emit  EmitFunc
	found int
}

// Run performs one scan invocation, blocking until completion, cancellation
// or a setup failure. Records and log lines are delivered through emit in
// emission order. On cancellation the returned error is ctx.Err(); per-file
// and per-root failures are logged and never returned.
func (s *Scanner) Run(ctx context.Context, req models.ScanRequest, emit EmitFunc) error {
	roots := fsutil.NormalizeRoots(req.Roots)
	if len(roots) == 0 || len(req.Extensions) == 0 {
		return nil
	}

	run := &scanRun{
		req:  req,
		exts: make(map[string]bool, len(req.Extensions)),
		emit: emit,
	}
	for _, e := range req.Extensions {
		run.exts[strings.ToLower(e)] = true
	}

	s.logger.Info("Starting scan",
		zap.Strings("roots", roots),
		zap.Strings("extensions", req.Extensions),
		zap.Bool("follow_symlinks", req.FollowSymlinks))

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			run.emit(models.LogEvent(models.Warnf("Scan cancelled by user")))
			return err
		}
		run.emit(models.LogEvent(models.Infof("Searching in: %s", root)))
		if err := s.walkDir(ctx, run, root, root); err != nil {
			run.emit(models.LogEvent(models.Warnf("Scan cancelled by user")))
			return err
		}
	}

	run.emit(models.LogEvent(models.Infof("Search finished. Found: %d", run.found)))
	s.logger.Info("Scan completed", zap.Int("found", run.found))
	return nil
}

// walkDir enumerates one directory depth-first: matching files first, then
// subdirectories. Only cancellation is returned as an error; everything else
// is logged and skipped.
func (s *Scanner) walkDir(ctx context.Context, run *scanRun, root, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		run.emit(models.LogEvent(models.Errorf("[ERROR - access] %s: %v", dir, err)))
		return nil
	}

	var subdirs []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, entry.Name())

		if entry.Type()&os.ModeSymlink != 0 {
			// Resolve the link target; broken links are skipped quietly.
			info, statErr := os.Stat(path)
			if statErr != nil {
				continue
			}
			if info.IsDir() {
				if run.req.FollowSymlinks {
					subdirs = append(subdirs, path)
				}
				continue
			}
			s.matchFile(run, root, path, info.Size(), info.ModTime())
			continue
		}

		if entry.IsDir() {
			subdirs = append(subdirs, path)
			continue
		}

		if !run.exts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			run.emit(models.LogEvent(models.Warnf("[ERROR - stat] %s: %v", path, infoErr)))
			continue
		}
		s.matchFile(run, root, path, info.Size(), info.ModTime())
	}

	for _, sub := range subdirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.walkDir(ctx, run, root, sub); err != nil {
			return err
		}
	}
	return nil
}

// matchFile applies the extension and size filters and emits a record
func (s *Scanner) matchFile(run *scanRun, root, path string, size int64, modTime time.Time) {
	if !run.exts[strings.ToLower(filepath.Ext(path))] {
		return
	}
	if run.req.MaxFileSize > 0 && size > run.req.MaxFileSize {
		return
	}
	run.found++
	run.emit(models.RecordEvent(models.NewResultRecord(path, root, size, modTime)))
}
