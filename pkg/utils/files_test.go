package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGetPathInfo(t *testing.T) {
	full, dir, err := GetPathInfo(filepath.Join("a", "..", "b", "c.swift"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(full) || filepath.Base(full) != "c.swift" {
		t.Errorf("expected an absolute path to c.swift, got %q", full)
	}
	if filepath.Base(dir) != "b" {
		t.Errorf("expected parent dir b, got %q", dir)
	}
}

func TestSourceFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.swift", "a.swift", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(root, "sub.swift"), 0o755); err != nil {
		t.Fatal(err)
	}
	single := filepath.Join(root, "notes.txt")

	got, err := SourceFiles([]string{root, single})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{filepath.Join(root, "a.swift"), filepath.Join(root, "b.swift"), single}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	if _, err := SourceFiles([]string{filepath.Join(root, "missing")}); err == nil {
		t.Errorf("expected an error for a missing path")
	}
}
