package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// point the preference store at an empty throwaway directory so saved user
// preferences cannot leak into the command under test
func isolateConfigDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	switch runtime.GOOS {
	case "windows":
		t.Setenv("AppData", dir)
	case "darwin":
		t.Setenv("HOME", dir)
	default:
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCollectDryRunCreatesNothing(t *testing.T) {
	isolateConfigDir(t)
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.rar"), 10)
	writeFile(t, filepath.Join(src, "sub", "b.rar"), 20)
	dest := filepath.Join(t.TempDir(), "collected")

	cmd := collectCmd()
	cmd.SetArgs([]string{src, "-e", "rar", "--dest", dest, "--dry-run"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("collect --dry-run error = %v", err)
	}

	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("dry run created the destination root")
	}
}

func TestCollectCopiesIntoDestination(t *testing.T) {
	isolateConfigDir(t)
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.rar"), 10)
	writeFile(t, filepath.Join(src, "sub", "b.rar"), 20)
	dest := filepath.Join(t.TempDir(), "collected")

	cmd := collectCmd()
	cmd.SetArgs([]string{src, "-e", "rar", "--dest", dest})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("collect error = %v", err)
	}

	for _, rel := range []string{"a.rar", filepath.Join("sub", "b.rar")} {
		if _, err := os.Stat(filepath.Join(dest, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
}
