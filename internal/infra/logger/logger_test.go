package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupAndPath(t *testing.T) {
	root := t.TempDir()

	cleanup, err := Setup(Config{Root: root, Debug: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := Path()
	if path != filepath.Join(root, ".tm2kit", "logs", "tm2kit.log") {
		t.Fatalf("unexpected log path %q", path)
	}

	L().Info("test.entry", "k", "v")

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "logger.initialized") || !strings.Contains(string(b), "test.entry") {
		t.Fatalf("unexpected log contents: %s", b)
	}

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if Path() != "" {
		t.Fatalf("expected path reset after cleanup, got %q", Path())
	}
}

func TestSetupBadRoot(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "not_a_dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Setup(Config{Root: file}); err == nil {
		t.Fatalf("expected error")
	}
}
