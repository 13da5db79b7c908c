package logbuffer

import (
	"fmt"
	"testing"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/models"
)

func TestAddAndEntries(t *testing.T) {
	b := New(10)
	b.Add(models.Infof("first"))
	b.Add(models.Warnf("second"))
	b.Add(models.Errorf("third"))

	entries := b.Entries()
	if len(entries) != 3 {
		t.Fatalf("Len = %d, want 3", len(entries))
	}
	if entries[0].Message != "first" || entries[2].Message != "third" {
		t.Errorf("entries out of order: %v", entries)
	}
	if entries[1].Level != models.SeverityWarning {
		t.Errorf("level = %v, want warning", entries[1].Level)
	}
}

func TestEvictionKeepsNewest(t *testing.T) {
	b := New(5)
	for i := 0; i < 8; i++ {
		b.Add(models.Infof("entry %d", i))
	}

	entries := b.Entries()
	if len(entries) != 5 {
		t.Fatalf("Len = %d, want 5", len(entries))
	}
	for i, e := range entries {
		want := fmt.Sprintf("entry %d", i+3)
		if e.Message != want {
			t.Errorf("entries[%d] = %q, want %q", i, e.Message, want)
		}
	}
}

func TestClear(t *testing.T) {
	b := New(4)
	b.Add(models.Infof("x"))
	b.Clear()
	if b.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", b.Len())
	}
	if len(b.Entries()) != 0 {
		t.Errorf("Entries after Clear not empty")
	}
}

func TestDefaultCapacity(t *testing.T) {
	b := New(0)
	if b.Capacity() != DefaultCapacity {
		t.Errorf("Capacity = %d, want %d", b.Capacity(), DefaultCapacity)
	}
}

func TestLevelCount(t *testing.T) {
	b := New(10)
	b.Add(models.Infof("a"))
	b.Add(models.Infof("b"))
	b.Add(models.Errorf("c"))

	counts := b.LevelCount()
	if counts[models.SeverityInfo] != 2 {
		t.Errorf("info count = %d, want 2", counts[models.SeverityInfo])
	}
	if counts[models.SeverityError] != 1 {
		t.Errorf("error count = %d, want 1", counts[models.SeverityError])
	}
}
