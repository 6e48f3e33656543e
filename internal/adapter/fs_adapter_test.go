package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "compaug.dev/pkg/compaug/internal/model"
)

func TestLocalFSAdapter_ReadDir(t *testing.T) {
	adapter := NewLocalFSAdapter()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "b.png"), "b")
	writeTestFile(t, filepath.Join(root, "a.png"), "a")
	mustMkdir(t, filepath.Join(root, "c"))

	names, err := adapter.ReadDir(m.Path(root))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	want := []string{"a.png", "b.png", "c"}
	if len(names) != len(want) {
		t.Fatalf("ReadDir() = %v, want %v", names, want)
	}

	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ReadDir()[%d] = %s, want %s", i, names[i], want[i])
		}
	}

	t.Run("missing directory", func(t *testing.T) {
		if _, err := adapter.ReadDir(m.Path(filepath.Join(root, "missing"))); err == nil {
			t.Fatalf("ReadDir() expected error for missing directory")
		}
	})
}

func TestLocalFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "part.png")
	writeTestFile(t, path, "png")

	info, err := adapter.FileInfo(m.Path(path))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if info.IsDir() {
		t.Fatalf("FileInfo() reported file as directory")
	}

	dirInfo, err := adapter.FileInfo(m.Path(root))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if !dirInfo.IsDir() {
		t.Fatalf("FileInfo() reported directory as file")
	}
}

func TestLocalFSAdapter_RealPath(t *testing.T) {
	adapter := NewLocalFSAdapter()

	root := t.TempDir()
	target := filepath.Join(root, "target")
	mustMkdir(t, target)

	link := filepath.Join(root, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	viaLink, err := adapter.RealPath(m.Path(link))
	if err != nil {
		t.Fatalf("RealPath() error = %v", err)
	}

	direct, err := adapter.RealPath(m.Path(target))
	if err != nil {
		t.Fatalf("RealPath() error = %v", err)
	}

	if viaLink != direct {
		t.Fatalf("RealPath() = %s via link, %s direct", viaLink, direct)
	}
}

func TestLocalFSAdapter_MkdirAll(t *testing.T) {
	adapter := NewLocalFSAdapter()

	nested := filepath.Join(t.TempDir(), "out", "deep", "er")
	if err := adapter.MkdirAll(m.Path(nested)); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	if fi, err := os.Stat(nested); err != nil || !fi.IsDir() {
		t.Fatalf("MkdirAll() did not create directory, stat err=%v", err)
	}
}

func TestLocalFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalFSAdapter()

	joined := adapter.JoinPath("/tmp", "parts", "r1.png")
	if string(joined) != filepath.Join("/tmp", "parts", "r1.png") {
		t.Fatalf("JoinPath() = %s, want %s", joined, filepath.Join("/tmp", "parts", "r1.png"))
	}

	wd, err := adapter.WorkingDir()
	if err != nil {
		t.Fatalf("WorkingDir() error = %v", err)
	}

	if !filepath.IsAbs(string(wd)) {
		t.Fatalf("WorkingDir() = %s, want absolute path", wd)
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}
