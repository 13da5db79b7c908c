package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/models"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

// seedTree creates a source tree with one duplicate pair and one unique file
func seedTree(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.pdf"), 100)
	writeFile(t, filepath.Join(src, "b.txt"), 50)
	writeFile(t, filepath.Join(src, "sub", "a.pdf"), 100)
	return src
}

func scanRequest(src string, exts ...string) models.ScanRequest {
	if len(exts) == 0 {
		exts = []string{".pdf"}
	}
	return models.ScanRequest{Roots: []string{src}, Extensions: exts}
}

func mustScan(t *testing.T, c *Coordinator, req models.ScanRequest) {
	t.Helper()
	done, err := c.StartScan(req)
	if err != nil {
		t.Fatalf("StartScan() error = %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("scan finished with error = %v", err)
	}
}

func TestScanPopulatesRecordsAndDuplicates(t *testing.T) {
	src := seedTree(t)
	c := NewCoordinator(nil, 0)

	mustScan(t, c, scanRequest(src))

	records := c.Records()
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	for _, rec := range records {
		if rec.Name != "a.pdf" {
			t.Errorf("unexpected record %s", rec.AbsPath)
		}
		if !rec.Duplicate {
			t.Errorf("%s duplicate = false, want true", rec.AbsPath)
		}
	}

	groups := c.Groups()
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	if groups[0].Count != 2 || groups[0].Size != 100 {
		t.Errorf("group = %+v, want count 2 size 100", groups[0])
	}

	if got := c.ScanOutcome(); got != OutcomeCompleted {
		t.Errorf("ScanOutcome() = %v, want completed", got)
	}

	var dupLine, doneLine bool
	for _, e := range c.LogEntries() {
		if strings.HasPrefix(e.Message, "Duplicate detected:") {
			dupLine = true
		}
		if strings.Contains(e.Message, "Search finished. Found: 2") {
			doneLine = true
		}
	}
	if !dupLine {
		t.Error("missing duplicate warning in log")
	}
	if !doneLine {
		t.Error("missing scan summary in log")
	}
}

func TestScanValidation(t *testing.T) {
	c := NewCoordinator(nil, 0)

	if _, err := c.StartScan(models.ScanRequest{Extensions: []string{".pdf"}}); err != ErrNoRoots {
		t.Errorf("no roots: err = %v, want ErrNoRoots", err)
	}
	if _, err := c.StartScan(models.ScanRequest{Roots: []string{t.TempDir()}}); err != ErrNoExtensions {
		t.Errorf("no extensions: err = %v, want ErrNoExtensions", err)
	}
	if _, err := c.StartScan(scanRequest(filepath.Join(t.TempDir(), "missing"))); err != ErrNoRoots {
		t.Errorf("nonexistent root: err = %v, want ErrNoRoots", err)
	}
}

func TestRescanReplacesResults(t *testing.T) {
	src := seedTree(t)
	c := NewCoordinator(nil, 0)

	mustScan(t, c, scanRequest(src))
	mustScan(t, c, scanRequest(src, ".txt"))

	records := c.Records()
	if len(records) != 1 || records[0].Name != "b.txt" {
		t.Fatalf("records after rescan = %v", records)
	}
	if len(c.Groups()) != 0 {
		t.Errorf("duplicate groups survived rescan")
	}
	for _, e := range c.LogEntries() {
		if strings.Contains(e.Message, "Found: 2") {
			t.Errorf("log not cleared before rescan: %q", e.Message)
		}
	}
}

func TestCopyAllPreservesStructure(t *testing.T) {
	src := seedTree(t)
	dst := t.TempDir()
	c := NewCoordinator(nil, 0)
	mustScan(t, c, scanRequest(src))

	done, err := c.CopyAll(dst, false, false)
	if err != nil {
		t.Fatalf("CopyAll() error = %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("copy finished with error = %v", err)
	}

	for _, rel := range []string{"a.pdf", filepath.Join("sub", "a.pdf")} {
		if _, err := os.Stat(filepath.Join(dst, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
	if got := c.CopyOutcome(); got != OutcomeCompleted {
		t.Errorf("CopyOutcome() = %v, want completed", got)
	}
}

func TestCopySelected(t *testing.T) {
	src := seedTree(t)
	dst := t.TempDir()
	c := NewCoordinator(nil, 0)
	mustScan(t, c, scanRequest(src))

	if _, err := c.CopySelected(dst, false, false); err != ErrNoSelection {
		t.Fatalf("empty selection: err = %v, want ErrNoSelection", err)
	}

	top := filepath.Join(src, "a.pdf")
	if !c.SetSelected(top, true) {
		t.Fatalf("SetSelected(%q) = false", top)
	}
	if got := c.SelectedCount(); got != 1 {
		t.Fatalf("SelectedCount() = %d, want 1", got)
	}

	done, err := c.CopySelected(dst, false, false)
	if err != nil {
		t.Fatalf("CopySelected() error = %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("copy finished with error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "a.pdf")); err != nil {
		t.Errorf("selected record not copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "sub", "a.pdf")); !os.IsNotExist(err) {
		t.Error("unselected record copied")
	}
}

func TestSelectionOperations(t *testing.T) {
	src := seedTree(t)
	c := NewCoordinator(nil, 0)
	mustScan(t, c, scanRequest(src))

	c.SelectAll()
	if got := c.SelectedCount(); got != 2 {
		t.Errorf("after SelectAll: %d, want 2", got)
	}
	c.InvertSelection()
	if got := c.SelectedCount(); got != 0 {
		t.Errorf("after InvertSelection: %d, want 0", got)
	}
	c.SetSelected(filepath.Join(src, "a.pdf"), true)
	c.InvertSelection()
	if got := c.SelectedCount(); got != 1 {
		t.Errorf("after mixed invert: %d, want 1", got)
	}
	c.ClearSelection()
	if got := c.SelectedCount(); got != 0 {
		t.Errorf("after ClearSelection: %d, want 0", got)
	}
	if c.SetSelected("/no/such/path", true) {
		t.Error("SetSelected on unknown path = true, want false")
	}
}

func TestCopyValidation(t *testing.T) {
	c := NewCoordinator(nil, 0)

	if _, err := c.StartCopy(models.CopyRequest{Records: nil, DestRoot: t.TempDir()}); err != ErrNoRecords {
		t.Errorf("no records: err = %v, want ErrNoRecords", err)
	}
	if _, err := c.CopyAll("", false, false); err != ErrNoDestination {
		t.Errorf("no destination: err = %v, want ErrNoDestination", err)
	}
}

func TestCancelScan(t *testing.T) {
	src := t.TempDir()
	for i := 0; i < 200; i++ {
		writeFile(t, filepath.Join(src, "f"+string(rune('a'+i%26))+string(rune('a'+i/26))+".pdf"), 10)
	}
	c := NewCoordinator(nil, 0)

	done, err := c.StartScan(scanRequest(src))
	if err != nil {
		t.Fatalf("StartScan() error = %v", err)
	}
	c.Cancel()
	runErr := <-done

	if runErr != nil && runErr != context.Canceled {
		t.Fatalf("scan error = %v, want nil or context.Canceled", runErr)
	}
	if runErr == context.Canceled {
		if got := c.ScanOutcome(); got != OutcomeCancelled {
			t.Errorf("ScanOutcome() = %v, want cancelled", got)
		}
		// records found before the cancellation stay available
		if len(c.Records()) > 200 {
			t.Errorf("len(records) = %d after cancel", len(c.Records()))
		}
	}
	if c.Busy() {
		t.Error("Busy() = true after drain finished")
	}
}

func TestStartScanWhileScanRunning(t *testing.T) {
	src := t.TempDir()
	for i := 0; i < 500; i++ {
		writeFile(t, filepath.Join(src, "sub", "f"+string(rune('a'+i%26))+string(rune('0'+i%10))+string(rune('a'+i/26%26))+".pdf"), 10)
	}
	c := NewCoordinator(nil, 0)

	done, err := c.StartScan(scanRequest(src))
	if err != nil {
		t.Fatalf("StartScan() error = %v", err)
	}

	// a second scan while one runs is rejected; losing the race to a fast
	// first scan is fine too
	_, err = c.StartScan(scanRequest(src))
	if err != nil && err != ErrScanInProgress {
		t.Errorf("second StartScan() error = %v, want ErrScanInProgress or nil", err)
	}

	c.Cancel()
	<-done
}

func TestScanCancelsRunningCopy(t *testing.T) {
	src := seedTree(t)
	dst := t.TempDir()
	c := NewCoordinator(nil, 0)
	mustScan(t, c, scanRequest(src))

	copyDone, err := c.CopyAll(dst, false, false)
	if err != nil {
		t.Fatalf("CopyAll() error = %v", err)
	}

	// starting a scan must stop the copy and wait for it before scanning
	mustScan(t, c, scanRequest(src))

	select {
	case <-copyDone:
	case <-time.After(5 * time.Second):
		t.Fatal("copy never finished after scan start")
	}
	if c.Busy() {
		t.Error("Busy() = true after both operations settled")
	}
}

// TestConcurrentCrossClassStarts races StartScan against StartCopy from
// separate goroutines. Whichever wins, the other must either be rejected or
// cancel-and-drain the winner first; the drain loops sharing state would
// trip the race detector if both ever ran at once.
func TestConcurrentCrossClassStarts(t *testing.T) {
	src := seedTree(t)
	dst := t.TempDir()
	c := NewCoordinator(nil, 0)
	mustScan(t, c, scanRequest(src))
	records := c.Records()

	for i := 0; i < 50; i++ {
		var wg sync.WaitGroup
		var scanCh, copyCh <-chan error
		wg.Add(2)
		go func() {
			defer wg.Done()
			if ch, err := c.StartScan(scanRequest(src)); err == nil {
				scanCh = ch
			}
		}()
		go func() {
			defer wg.Done()
			req := models.CopyRequest{Records: records, DestRoot: dst, Overwrite: true}
			if ch, err := c.StartCopy(req); err == nil {
				copyCh = ch
			}
		}()
		wg.Wait()

		if scanCh != nil {
			<-scanCh
		}
		if copyCh != nil {
			<-copyCh
		}
		if c.Busy() {
			t.Fatalf("iteration %d: Busy() = true after both operations settled", i)
		}
	}
}

func TestRemoveRecordUpdatesDuplicates(t *testing.T) {
	src := seedTree(t)
	c := NewCoordinator(nil, 0)
	mustScan(t, c, scanRequest(src))

	if err := c.RemoveRecord(filepath.Join(src, "a.pdf")); err != nil {
		t.Fatalf("RemoveRecord() error = %v", err)
	}

	records := c.Records()
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Duplicate {
		t.Error("survivor still flagged duplicate after partner removed")
	}
	if len(c.Groups()) != 0 {
		t.Error("duplicate group survived removal")
	}
}

func TestClearResults(t *testing.T) {
	src := seedTree(t)
	c := NewCoordinator(nil, 0)
	mustScan(t, c, scanRequest(src))

	if err := c.ClearResults(); err != nil {
		t.Fatalf("ClearResults() error = %v", err)
	}
	if len(c.Records()) != 0 || len(c.Groups()) != 0 {
		t.Error("results survived ClearResults")
	}
	if c.CanCopy() {
		t.Error("CanCopy() = true with empty result set")
	}
}

func TestCheckDuplicatesRecomputes(t *testing.T) {
	src := seedTree(t)
	c := NewCoordinator(nil, 0)
	mustScan(t, c, scanRequest(src))

	c.CheckDuplicates()
	for _, rec := range c.Records() {
		if !rec.Duplicate {
			t.Errorf("%s lost duplicate flag after recompute", rec.AbsPath)
		}
	}
	if len(c.Groups()) != 1 {
		t.Errorf("len(groups) = %d after recompute, want 1", len(c.Groups()))
	}
}

func TestReadiness(t *testing.T) {
	src := seedTree(t)
	c := NewCoordinator(nil, 0)

	if c.CanCopy() || c.CanCopySelected() {
		t.Error("copy reported ready before any scan")
	}
	if c.CanScan(models.ScanRequest{}) {
		t.Error("CanScan() = true with empty request")
	}
	if !c.CanScan(scanRequest(src)) {
		t.Error("CanScan() = false with valid request")
	}

	mustScan(t, c, scanRequest(src))

	if !c.CanCopy() {
		t.Error("CanCopy() = false with records present")
	}
	if c.CanCopySelected() {
		t.Error("CanCopySelected() = true with nothing selected")
	}
	c.SelectAll()
	if !c.CanCopySelected() {
		t.Error("CanCopySelected() = false with selection present")
	}
}

func TestOutcomeStrings(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeNone, "none"},
		{OutcomeCompleted, "completed"},
		{OutcomeCancelled, "cancelled"},
		{OutcomeFailed, "failed"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
