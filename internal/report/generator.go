// Package report writes scan results to a file in one of several formats.
package report

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/models"
)

// Summary is the material of one report: the result set, the duplicate
// groups over it and the buffered operation log.
type Summary struct {
	Roots      []string
	Extensions []string
	Generated  time.Time
	Records    []*models.ResultRecord
	Groups     []models.DuplicateGroup
	Log        []models.LogEntry
}

// TotalSize returns the combined byte size of the result set
func (s *Summary) TotalSize() int64 {
	var total int64
	for _, rec := range s.Records {
		total += rec.Size
	}
	return total
}

// Generator writes reports in various formats
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a report generator
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// Generate writes the summary in the given format. When outputFile is empty
// a timestamped name is chosen in the working directory. Returns the
// absolute path of the written file.
func (g *Generator) Generate(s *Summary, format, outputFile string) (string, error) {
	if s.Generated.IsZero() {
		s.Generated = time.Now()
	}

	if outputFile == "" {
		timestamp := s.Generated.Format("20060102-150405")
		switch format {
		case "json":
			outputFile = fmt.Sprintf("COLETOR-REPORT-%s.json", timestamp)
		case "txt", "text":
			outputFile = fmt.Sprintf("COLETOR-REPORT-%s.txt", timestamp)
		case "csv":
			outputFile = fmt.Sprintf("COLETOR-REPORT-%s.csv", timestamp)
		case "md", "markdown":
			outputFile = fmt.Sprintf("COLETOR-REPORT-%s.md", timestamp)
		default:
			return "", fmt.Errorf("unknown report format: %s", format)
		}
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	var err error
	switch format {
	case "json":
		err = g.generateJSON(s, outputFile)
	case "txt", "text":
		err = g.generateText(s, outputFile)
	case "csv":
		err = g.generateCSV(s, outputFile)
	case "md", "markdown":
		err = g.generateMarkdown(s, outputFile)
	default:
		return "", fmt.Errorf("unknown report format: %s", format)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}
