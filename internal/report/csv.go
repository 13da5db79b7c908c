package report

import (
	"encoding/csv"
	"os"
	"strconv"
)

// generateCSV writes one row per record, spreadsheet friendly
func (g *Generator) generateCSV(s *Summary, outputFile string) error {
	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"path", "root", "name", "size", "modified", "duplicate"}); err != nil {
		return err
	}

	for _, rec := range s.Records {
		row := []string{
			rec.AbsPath,
			rec.Root,
			rec.Name,
			strconv.FormatInt(rec.Size, 10),
			rec.ModTime.Format("2006-01-02 15:04:05"),
			strconv.FormatBool(rec.Duplicate),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
