package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/fsutil"
)

// generateMarkdown writes the summary as a Markdown report
func (g *Generator) generateMarkdown(s *Summary, outputFile string) error {
	var sb strings.Builder

	sb.WriteString("# Coletor de Arquivos - Scan Report\n\n")

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Generated | %s |\n", s.Generated.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("| Roots | `%s` |\n", strings.Join(s.Roots, "`, `")))
	sb.WriteString(fmt.Sprintf("| Extensions | %s |\n", strings.Join(s.Extensions, ", ")))
	sb.WriteString(fmt.Sprintf("| Files Found | %d |\n", len(s.Records)))
	sb.WriteString(fmt.Sprintf("| Total Size | %s |\n", fsutil.FormatSize(s.TotalSize())))
	sb.WriteString(fmt.Sprintf("| **Duplicate Groups** | **%d** |\n", len(s.Groups)))
	sb.WriteString("\n")

	if len(s.Records) == 0 {
		sb.WriteString("> No files found.\n")
		return os.WriteFile(outputFile, []byte(sb.String()), 0644)
	}

	sb.WriteString("## Files\n\n")
	sb.WriteString("| # | Path | Size | Modified | Duplicate |\n")
	sb.WriteString("|---|------|------|----------|-----------|\n")
	for i, rec := range s.Records {
		dup := ""
		if rec.Duplicate {
			dup = "yes"
		}
		sb.WriteString(fmt.Sprintf("| %d | `%s` | %s | %s | %s |\n",
			i+1, rec.AbsPath, fsutil.FormatSize(rec.Size),
			rec.ModTime.Format("2006-01-02 15:04:05"), dup))
	}
	sb.WriteString("\n")

	if len(s.Groups) > 0 {
		sb.WriteString("## Duplicates\n\n")
		for _, grp := range s.Groups {
			sb.WriteString(fmt.Sprintf("### %s (%s) x%d\n\n", grp.Name, grp.SizeDisplay, grp.Count))
			for _, rec := range grp.Records {
				sb.WriteString(fmt.Sprintf("- `%s`\n", rec.AbsPath))
			}
			sb.WriteString("\n")
		}
	}

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}
