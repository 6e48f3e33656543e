package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"compaug.dev/pkg/compaug/internal/adapter"
	adaptermocks "compaug.dev/pkg/compaug/internal/adapter/mocks"
	"compaug.dev/pkg/compaug/internal/controller/mocks"
	m "compaug.dev/pkg/compaug/internal/model"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func collectWalk(t *testing.T, root string, ignore ...string) ([]string, WalkStats, *mocks.MockUI) {
	t.Helper()

	ui := mocks.NewQuietMockUI()
	registry := NewExclusionRegistry(m.Path(root), DefaultExclusions...)
	registry.Append(ignore...)

	var visited []string

	stats, err := NewWalker(adapter.NewLocalFSAdapter(), registry, ui).Walk(context.Background(), m.Path(root),
		func(_ context.Context, ref m.FileRef) error {
			rel, err := filepath.Rel(root, string(ref.Path))
			require.NoError(t, err)
			visited = append(visited, filepath.ToSlash(rel))

			return nil
		})
	require.NoError(t, err)

	return visited, stats, ui
}

func TestWalker_VisitsEveryFileOnce(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.png"), "a")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "b")
	writeFile(t, filepath.Join(root, "sub", "deeper", "c.jpg"), "c")

	visited, stats, _ := collectWalk(t, root)

	assert.Equal(t, []string{"a.png", "sub/b.txt", "sub/deeper/c.jpg"}, visited)
	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, 2, stats.Directories)
	assert.Zero(t, stats.Excluded)
}

func TestWalker_Exclusions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep", "a.png"), "a")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref")
	writeFile(t, filepath.Join(root, "node_modules", "x", "y.png"), "y")
	writeFile(t, filepath.Join(root, "build", "z.png"), "z")
	writeFile(t, filepath.Join(root, "keep", "build", "w.png"), "w")
	writeFile(t, filepath.Join(root, "docs", "skip", "v.png"), "v")
	writeFile(t, filepath.Join(root, "docs", "skipped", "u.png"), "u")

	visited, stats, ui := collectWalk(t, root, "build", "docs/skip")

	sort.Strings(visited)
	assert.Equal(t, []string{"docs/skipped/u.png", "keep/a.png"}, visited)
	assert.Equal(t, 5, stats.Excluded)
	ui.AssertCalled(t, "DisplayExcluded", mock.Anything, m.Path(filepath.Join(root, ".git")), true)
	ui.AssertCalled(t, "DisplayExcluded", mock.Anything, m.Path(filepath.Join(root, "docs", "skip")), true)
}

func TestWalker_ExcludedFileByName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.png"), "k")
	writeFile(t, filepath.Join(root, "skip.png"), "s")

	visited, stats, ui := collectWalk(t, root, "skip.png")

	assert.Equal(t, []string{"keep.png"}, visited)
	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, 1, stats.Excluded)
	ui.AssertCalled(t, "DisplayExcluded", mock.Anything, m.Path(filepath.Join(root, "skip.png")), false)
}

func TestWalker_ExcludedFileByPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "docs", "x.png"), "x")
	writeFile(t, filepath.Join(root, "docs", "y.png"), "y")
	writeFile(t, filepath.Join(root, "x.png"), "x")

	visited, stats, _ := collectWalk(t, root, "docs/x.png")

	sort.Strings(visited)
	assert.Equal(t, []string{"docs/y.png", "x.png"}, visited)
	assert.Equal(t, 1, stats.Excluded)
}

func TestWalker_CallbackFailureContinues(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "b.png"), "b")

	ui := mocks.NewQuietMockUI()
	boom := errors.New("not an image")

	var calls int

	stats, err := NewWalker(adapter.NewLocalFSAdapter(), NewExclusionRegistry(m.Path(root)), ui).Walk(
		context.Background(), m.Path(root),
		func(_ context.Context, ref m.FileRef) error {
			calls++
			if ref.Name == "a.txt" {
				return boom
			}

			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, stats.Failed)
	ui.AssertCalled(t, "DisplayFileSkipped", mock.Anything, m.Path(filepath.Join(root, "a.txt")), boom)
	ui.AssertCalled(t, "DisplayFileGenerated", mock.Anything, m.Path(filepath.Join(root, "b.png")))
}

func TestWalker_SymlinkCycle(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", "a.png"), "a")

	if err := os.Symlink(root, filepath.Join(root, "sub", "loop")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	visited, _, _ := collectWalk(t, root)

	assert.Equal(t, []string{"sub/a.png"}, visited)
}

func TestWalker_UnreadableRootIsEmpty(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	visited, stats, _ := collectWalk(t, root)

	assert.Empty(t, visited)
	assert.Zero(t, stats.Files)
}

func TestWalker_StopsWhenCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.png"), "a")
	writeFile(t, filepath.Join(root, "b.png"), "b")

	ctx, cancel := context.WithCancel(context.Background())

	var calls int

	_, err := NewWalker(adapter.NewLocalFSAdapter(), NewExclusionRegistry(m.Path(root)), mocks.NewQuietMockUI()).Walk(
		ctx, m.Path(root),
		func(context.Context, m.FileRef) error {
			calls++
			cancel()

			return nil
		})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestWalker_SkipsEntriesThatCannotBeStated(t *testing.T) {
	file := filepath.Join(t.TempDir(), "b.png")
	writeFile(t, file, "b")

	info, err := os.Stat(file)
	require.NoError(t, err)

	fs := new(adaptermocks.MockFSAdapter)
	fs.On("RealPath", m.Path("/root")).Return(m.Path("/root"), nil)
	fs.On("ReadDir", m.Path("/root")).Return([]string{"a.png", "b.png"}, nil)
	fs.On("JoinPath", "/root", "a.png").Return(m.Path("/root/a.png"))
	fs.On("JoinPath", "/root", "b.png").Return(m.Path("/root/b.png"))
	fs.On("FileInfo", m.Path("/root/a.png")).Return(nil, errors.New("dangling symlink"))
	fs.On("FileInfo", m.Path("/root/b.png")).Return(info, nil)

	var visited []m.Path

	stats, err := NewWalker(fs, NewExclusionRegistry("/root"), mocks.NewQuietMockUI()).Walk(
		context.Background(), "/root",
		func(_ context.Context, ref m.FileRef) error {
			visited = append(visited, ref.Path)
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, []m.Path{"/root/b.png"}, visited)
	assert.Equal(t, 1, stats.Files)
	fs.AssertExpectations(t)
}
