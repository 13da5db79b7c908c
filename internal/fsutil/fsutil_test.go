package fsutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5242880, "5.0 MB"},
		{1073741824, "1.0 GB"},
		{1099511627776, "1.0 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatSize(tt.size); got != tt.expected {
				t.Errorf("FormatSize(%d) = %q, want %q", tt.size, got, tt.expected)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		sizeStr  string
		expected int64
	}{
		{"650K", 650 * 1024},
		{"1M", 1024 * 1024},
		{"2G", 2 * 1024 * 1024 * 1024},
		{"100", 100},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.sizeStr, func(t *testing.T) {
			if got := ParseSize(tt.sizeStr); got != tt.expected {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.sizeStr, got, tt.expected)
			}
		})
	}
}

func TestNormalizeRoots(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := NormalizeRoots([]string{dir, file, filepath.Join(dir, "missing"), ""})
	if len(got) != 1 {
		t.Fatalf("NormalizeRoots() kept %d roots, want 1: %v", len(got), got)
	}
	if got[0] != dir {
		t.Errorf("NormalizeRoots() = %q, want %q", got[0], dir)
	}
	if !filepath.IsAbs(got[0]) {
		t.Errorf("NormalizeRoots() returned relative path %q", got[0])
	}
}

func TestCopyFilePreservesModTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	modTime := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

	if err := CopyFile(src, dst, modTime); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Errorf("copied content = %q, want %q", data, "payload")
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(modTime) {
		t.Errorf("copied mtime = %v, want %v", info.ModTime(), modTime)
	}
}
