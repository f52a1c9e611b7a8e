package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteManifestDuplicatesFinalFileLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.txt")
	entries := []ManifestEntry{
		{Path: "a.bmp", Repeat: 3},
		{Path: "b.bmp", Repeat: 1},
	}
	if err := WriteManifest(path, entries, 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read manifest: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")

	want := []string{
		"file 'a.bmp'",
		"duration 0.100000",
		"file 'b.bmp'",
		"duration 0.033333",
		"file 'b.bmp'",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if i == 3 {
			continue // Float formatting; checked loosely below.
		}
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
	if !strings.HasPrefix(lines[3], "duration 0.0333") {
		t.Fatalf("unexpected duration line: %q", lines[3])
	}
}

func TestWriteManifestRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.txt")
	if err := WriteManifest(path, nil, 30); err == nil {
		t.Fatalf("expected error for empty entries")
	}
}

func TestWriteManifestRejectsZeroFPS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.txt")
	entries := []ManifestEntry{{Path: "a.bmp", Repeat: 1}}
	if err := WriteManifest(path, entries, 0); err == nil {
		t.Fatalf("expected error for zero fps")
	}
}
