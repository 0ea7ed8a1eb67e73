package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	m "modepack.dev/pkg/modepack/internal/model"
)

func TestLocalSourceFSAdapter_ListDirs(t *testing.T) {
	t.Run("returns only immediate subdirectories sorted", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		mustMkdir(t, filepath.Join(root, "zeta"))
		mustMkdir(t, filepath.Join(root, "alpha"))
		mustMkdir(t, filepath.Join(root, "alpha", "nested"))
		writeTestFile(t, filepath.Join(root, "readme.txt"), "not a source")

		dirs, err := adapter.ListDirs(context.Background(), m.Path(root))
		if err != nil {
			t.Fatalf("ListDirs() error = %v", err)
		}

		want := []m.Path{
			m.Path(filepath.Join(root, "alpha")),
			m.Path(filepath.Join(root, "zeta")),
		}
		if len(dirs) != len(want) {
			t.Fatalf("ListDirs() = %v, want %v", dirs, want)
		}

		for i := range want {
			if dirs[i] != want[i] {
				t.Fatalf("ListDirs()[%d] = %s, want %s", i, dirs[i], want[i])
			}
		}
	})

	t.Run("missing root returns error", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		_, err := adapter.ListDirs(context.Background(), m.Path(filepath.Join(t.TempDir(), "missing")))
		if err == nil {
			t.Fatalf("ListDirs() expected error for missing root")
		}
	})

	t.Run("cancelled context returns error", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := adapter.ListDirs(ctx, m.Path(t.TempDir())); err == nil {
			t.Fatalf("ListDirs() expected context error")
		}
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "config.json")
	writeTestFile(t, path, `{"gamemodeName":"x"}`)

	data, err := adapter.ReadFile(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(data) != `{"gamemodeName":"x"}` {
		t.Fatalf("ReadFile() = %q", data)
	}
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	root := t.TempDir()

	info, err := adapter.FileInfo(context.Background(), m.Path(root))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if !info.IsDir() {
		t.Fatalf("FileInfo() expected directory")
	}

	if _, err := adapter.FileInfo(context.Background(), m.Path(filepath.Join(root, "nope"))); !os.IsNotExist(err) {
		t.Fatalf("FileInfo() error = %v, want not-exist", err)
	}
}

func TestLocalSourceFSAdapter_MkdirAll(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	target := filepath.Join(t.TempDir(), "Gamemodes", "inner")

	if err := adapter.MkdirAll(context.Background(), m.Path(target)); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	if info, err := os.Stat(target); err != nil || !info.IsDir() {
		t.Fatalf("MkdirAll() did not create %s", target)
	}
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	ctx := context.Background()

	joined := adapter.JoinPath(ctx, "root", "pack", "config.json")
	if joined != m.Path(filepath.Join("root", "pack", "config.json")) {
		t.Fatalf("JoinPath() = %s", joined)
	}

	rel, err := adapter.RelPath(ctx, m.Path(filepath.Join("root")), m.Path(filepath.Join("root", "pack")))
	if err != nil {
		t.Fatalf("RelPath() error = %v", err)
	}

	if rel != "pack" {
		t.Fatalf("RelPath() = %s, want pack", rel)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}
