// Package dupindex maintains the mapping from duplicate signatures
// (lowercased file name plus byte size) to the result records sharing them.
// The index is updated incrementally as records enter and leave the result
// set and is the single owner of every record's Duplicate flag.
package dupindex

import (
	"sort"
	"strings"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/fsutil"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/models"
)

// WarnFunc receives the one-time warning emitted when a signature first
// collides
type WarnFunc func(models.LogEntry)

// Index maps signatures to the ordered records currently holding them
type Index struct {
	bySig map[models.Signature][]*models.ResultRecord
	warn  WarnFunc
}

// New creates an empty index. warn may be nil.
func New(warn WarnFunc) *Index {
	return &Index{
		bySig: make(map[models.Signature][]*models.ResultRecord),
		warn:  warn,
	}
}

// Register adds a record to its signature's list. The first collision for a
// signature emits a one-time warning naming the file and the two roots
// involved.
func (ix *Index) Register(rec *models.ResultRecord) {
	sig := rec.Signature()
	list := append(ix.bySig[sig], rec)
	ix.bySig[sig] = list

	if len(list) == 2 && ix.warn != nil {
		ix.warn(models.Warnf("Duplicate detected: %s (%s) in %s and %s",
			rec.Name, fsutil.FormatSize(rec.Size), list[0].Root, list[1].Root))
	}

	for _, r := range list {
		r.Duplicate = len(list) > 1
	}
}

// Unregister removes a record from its signature's list and clears its
// duplicate flag. Remaining records in the list have their flags recomputed.
func (ix *Index) Unregister(rec *models.ResultRecord) {
	sig := rec.Signature()
	list := ix.bySig[sig]
	for i, r := range list {
		if r == rec {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	rec.Duplicate = false

	if len(list) == 0 {
		delete(ix.bySig, sig)
		return
	}
	ix.bySig[sig] = list
	for _, r := range list {
		r.Duplicate = len(list) > 1
	}
}

// Reset drops all signature entries
func (ix *Index) Reset() {
	ix.bySig = make(map[models.Signature][]*models.ResultRecord)
}

// RecomputeAll rebuilds the index from scratch over the given records.
// Idempotent and independent of any prior Register/Unregister history.
func (ix *Index) RecomputeAll(records []*models.ResultRecord) {
	ix.bySig = make(map[models.Signature][]*models.ResultRecord, len(records))
	for _, rec := range records {
		sig := rec.Signature()
		ix.bySig[sig] = append(ix.bySig[sig], rec)
	}
	for _, list := range ix.bySig {
		for _, r := range list {
			r.Duplicate = len(list) > 1
		}
	}
}

// Groups rebuilds the presented duplicate group list: one group per
// signature held by more than one record, sorted by file name
// (case-insensitive) ascending, then by group size descending. The returned
// slice is rebuilt wholesale on every call and safe for the caller to keep.
func (ix *Index) Groups() []models.DuplicateGroup {
	groups := make([]models.DuplicateGroup, 0)
	for sig, list := range ix.bySig {
		if len(list) < 2 {
			continue
		}
		records := make([]*models.ResultRecord, len(list))
		copy(records, list)
		groups = append(groups, models.DuplicateGroup{
			Name:        list[0].Name,
			Size:        sig.Size,
			SizeDisplay: fsutil.FormatSize(sig.Size),
			Count:       len(list),
			Records:     records,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		ni, nj := strings.ToLower(groups[i].Name), strings.ToLower(groups[j].Name)
		if ni != nj {
			return ni < nj
		}
		return groups[i].Count > groups[j].Count
	})
	return groups
}
