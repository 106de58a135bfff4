package runfinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
)

func TestFindRootFromNestedDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, MarkerDir), 0o755); err != nil {
		t.Fatalf("mkdir marker: %v", err)
	}
	nested := filepath.Join(root, "summaries", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	got, err := NewFinder().FindRoot(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != root {
		t.Fatalf("expected %q, got %q", root, got)
	}
}

func TestFindRootNotFound(t *testing.T) {
	_, err := NewFinder().FindRoot(t.TempDir())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFindRootIgnoresMarkerFile(t *testing.T) {
	// A plain file named like the marker is not a run root.
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, MarkerDir), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := NewFinder().FindRoot(dir)
	if err == nil {
		t.Fatalf("expected error")
	}
}
