package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/fsutil"
)

// jsonReport is the serialized shape of a summary
type jsonReport struct {
	Generated  time.Time       `json:"generated"`
	Roots      []string        `json:"roots"`
	Extensions []string        `json:"extensions"`
	FileCount  int             `json:"file_count"`
	TotalSize  int64           `json:"total_size"`
	Files      []jsonRecord    `json:"files"`
	Duplicates []jsonDupeGroup `json:"duplicates,omitempty"`
	Log        []jsonLogEntry  `json:"log,omitempty"`
}

type jsonRecord struct {
	Path      string    `json:"path"`
	Root      string    `json:"root"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	SizeHuman string    `json:"size_human"`
	Modified  time.Time `json:"modified"`
	Duplicate bool      `json:"duplicate"`
}

type jsonDupeGroup struct {
	Name  string   `json:"name"`
	Size  int64    `json:"size"`
	Count int      `json:"count"`
	Paths []string `json:"paths"`
}

type jsonLogEntry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
}

// generateJSON writes the summary as indented JSON
func (g *Generator) generateJSON(s *Summary, outputFile string) error {
	report := jsonReport{
		Generated:  s.Generated,
		Roots:      s.Roots,
		Extensions: s.Extensions,
		FileCount:  len(s.Records),
		TotalSize:  s.TotalSize(),
	}

	for _, rec := range s.Records {
		report.Files = append(report.Files, jsonRecord{
			Path:      rec.AbsPath,
			Root:      rec.Root,
			Name:      rec.Name,
			Size:      rec.Size,
			SizeHuman: fsutil.FormatSize(rec.Size),
			Modified:  rec.ModTime,
			Duplicate: rec.Duplicate,
		})
	}

	for _, grp := range s.Groups {
		jg := jsonDupeGroup{Name: grp.Name, Size: grp.Size, Count: grp.Count}
		for _, rec := range grp.Records {
			jg.Paths = append(jg.Paths, rec.AbsPath)
		}
		report.Duplicates = append(report.Duplicates, jg)
	}

	for _, entry := range s.Log {
		report.Log = append(report.Log, jsonLogEntry{
			Time:    entry.Time,
			Level:   entry.Level.String(),
			Message: entry.Message,
		})
	}

	data, err := json.MarshalIndent(&report, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, data, 0644)
}
