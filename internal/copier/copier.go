// Package copier copies result records into a destination tree, preserving
// each record's path relative to its source root. Conflicts, dry runs and
// per-record failures are reported as log events; a failing record never
// aborts the batch.
package copier

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/fsutil"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/models"
)

// EmitFunc receives copy events in emission order
type EmitFunc func(models.Event)

// Copier copies records into a destination tree
type Copier struct {
	logger *zap.Logger
}

// NewCopier creates a copier
func NewCopier(logger *zap.Logger) *Copier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Copier{logger: logger}
}

// Run copies the requested records in caller order, blocking until
// completion or cancellation. Cancellation is checked before each record;
// records already copied stay on disk. Per-record failures are logged
// through emit and processing continues.
func (c *Copier) Run(ctx context.Context, req models.CopyRequest, emit EmitFunc) error {
	copied := 0
	for _, rec := range req.Records {
		if err := ctx.Err(); err != nil {
			emit(models.LogEvent(models.Warnf("Copy cancelled by user")))
			c.summary(emit, len(req.Records), copied)
			return err
		}

		target := filepath.Join(req.DestRoot, rec.RelPath())

		if req.DryRun {
			emit(models.LogEvent(models.Infof("[DRY-RUN] %s -> %s", rec.AbsPath, target)))
			copied++
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			emit(models.LogEvent(models.Errorf("[ERROR] %s: %v", target, err)))
			continue
		}

		if !req.Overwrite && fsutil.Exists(target) {
			emit(models.LogEvent(models.Infof("[SKIPPED - exists] %s", target)))
			continue
		}

		if err := fsutil.CopyFile(rec.AbsPath, target, rec.ModTime); err != nil {
			emit(models.LogEvent(models.Errorf("[ERROR] %s: %v", rec.AbsPath, err)))
			continue
		}

		copied++
		emit(models.LogEvent(models.Infof("[OK] %s -> %s", rec.AbsPath, target)))
		c.logger.Debug("Copied file",
			zap.String("source", rec.AbsPath),
			zap.String("target", target))
	}

	c.summary(emit, len(req.Records), copied)
	return nil
}

func (c *Copier) summary(emit EmitFunc, selected, copied int) {
	emit(models.LogEvent(models.Infof("Copy finished. Selected: %d; Copied/Simulated: %d", selected, copied)))
}
