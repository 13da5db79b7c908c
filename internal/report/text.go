package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/fsutil"
)

// generateText writes the summary as a plain text report
func (g *Generator) generateText(s *Summary, outputFile string) error {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("  COLETOR DE ARQUIVOS - SCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n\n")

	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("Generated:        %s\n", s.Generated.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Roots:            %s\n", strings.Join(s.Roots, ", ")))
	sb.WriteString(fmt.Sprintf("Extensions:       %s\n", strings.Join(s.Extensions, ", ")))
	sb.WriteString(fmt.Sprintf("Files Found:      %d\n", len(s.Records)))
	sb.WriteString(fmt.Sprintf("Total Size:       %s\n", fsutil.FormatSize(s.TotalSize())))
	sb.WriteString(fmt.Sprintf("Duplicate Groups: %d\n", len(s.Groups)))
	sb.WriteString("\n")

	if len(s.Records) > 0 {
		sb.WriteString("FILES\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for i, rec := range s.Records {
			marker := " "
			if rec.Duplicate {
				marker = "*"
			}
			sb.WriteString(fmt.Sprintf("[%d]%s %s\n", i+1, marker, rec.AbsPath))
			sb.WriteString(fmt.Sprintf("     Size: %-12s Modified: %s\n",
				fsutil.FormatSize(rec.Size), rec.ModTime.Format("2006-01-02 15:04:05")))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("No files found.\n\n")
	}

	if len(s.Groups) > 0 {
		sb.WriteString("DUPLICATES (same name and size)\n")
		sb.WriteString(strings.Repeat("=", 79) + "\n\n")
		for i, grp := range s.Groups {
			sb.WriteString(fmt.Sprintf("[%d] %s (%s) x%d\n", i+1, grp.Name, grp.SizeDisplay, grp.Count))
			sb.WriteString(strings.Repeat("-", 79) + "\n")
			for _, rec := range grp.Records {
				sb.WriteString(fmt.Sprintf("    %s\n", rec.AbsPath))
			}
			sb.WriteString("\n")
		}
	}

	if len(s.Log) > 0 {
		sb.WriteString("LOG\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for _, entry := range s.Log {
			sb.WriteString(fmt.Sprintf("%s [%s] %s\n",
				entry.Time.Format("15:04:05"), entry.Level, entry.Message))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("End of Report\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n")

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}
