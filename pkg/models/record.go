package models

import (
	"path/filepath"
	"strings"
	"time"
)

// ResultRecord represents one matched file found by a scan
type ResultRecord struct {
	AbsPath   string    // Absolute file path
	Root      string    // Source root the file was found under
	Size      int64     // File size in bytes
	ModTime   time.Time // Modification time
	Name      string    // File name (basename of AbsPath)
	Selected  bool      // Marked for copying
	Duplicate bool      // Shares a signature with at least one other record
}

// NewResultRecord creates a record for a matched file
func NewResultRecord(absPath, root string, size int64, modTime time.Time) *ResultRecord {
	return &ResultRecord{
		AbsPath: absPath,
		Root:    root,
		Size:    size,
		ModTime: modTime,
		Name:    filepath.Base(absPath),
	}
}

// Signature is the duplicate-detection key: lowercased file name plus byte size.
// Two records are considered duplicates of each other iff their signatures are
// equal. Content is deliberately not inspected.
type Signature struct {
	Name string
	Size int64
}

// Signature derives the record's duplicate-detection key
func (r *ResultRecord) Signature() Signature {
	return Signature{Name: strings.ToLower(r.Name), Size: r.Size}
}

// RelPath returns the record's path relative to its source root. If the path
// turns out not to be under the root, it falls back to the path relative to
// the volume root so the copy target is still well-defined.
func (r *ResultRecord) RelPath() string {
	rel, err := filepath.Rel(r.Root, r.AbsPath)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return rel
	}
	trimmed := strings.TrimPrefix(r.AbsPath, filepath.VolumeName(r.AbsPath))
	return strings.TrimPrefix(trimmed, string(filepath.Separator))
}

// DuplicateGroup is a set of two or more records sharing a signature, plus
// cached display fields. Groups are rebuilt wholesale on every index change
// and never mutated in place.
type DuplicateGroup struct {
	Name        string
	Size        int64
	SizeDisplay string
	Count       int
	Records     []*ResultRecord
}
