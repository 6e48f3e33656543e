package domain

import (
	"context"
	"log/slog"

	"compaug.dev/pkg/compaug/internal/adapter"
	m "compaug.dev/pkg/compaug/internal/model"
)

// FileFunc is invoked for every non-excluded file found by the Walker.
type FileFunc func(ctx context.Context, ref m.FileRef) error

// WalkReporter receives the per-entry outcomes of a walk.
type WalkReporter interface {
	DisplayExcluded(ctx context.Context, path m.Path, isDir bool)
	DisplayFileGenerated(ctx context.Context, path m.Path)
	DisplayFileSkipped(ctx context.Context, path m.Path, err error)
}

// WalkStats counts what a walk encountered.
type WalkStats struct {
	Directories int
	Files       int
	Failed      int
	Excluded    int
}

// Walker enumerates a directory tree depth-first and strictly sequentially.
type Walker struct {
	fs         adapter.FSAdapter
	exclusions *ExclusionRegistry
	reporter   WalkReporter
}

// NewWalker creates a Walker filtering entries through exclusions.
func NewWalker(fs adapter.FSAdapter, exclusions *ExclusionRegistry, reporter WalkReporter) *Walker {
	return &Walker{
		fs:         fs,
		exclusions: exclusions,
		reporter:   reporter,
	}
}

// Walk visits every file below root. A failing callback is reported and the
// walk continues; unreadable directories count as empty. The only error
// returned is ctx's, checked between entries.
func (w *Walker) Walk(ctx context.Context, root m.Path, onFile FileFunc) (WalkStats, error) {
	var stats WalkStats

	visited := make(map[m.Path]struct{})
	err := w.walkDir(ctx, root, onFile, visited, &stats)

	return stats, err
}

func (w *Walker) walkDir(ctx context.Context, dir m.Path, onFile FileFunc, visited map[m.Path]struct{}, stats *WalkStats) error {
	if real, err := w.fs.RealPath(dir); err == nil {
		if _, seen := visited[real]; seen {
			slog.Debug("skipping already visited directory", "path", dir, "real", real)
			return nil
		}

		visited[real] = struct{}{}
	}

	names, err := w.fs.ReadDir(dir)
	if err != nil {
		slog.Debug("skipping unreadable directory", "path", dir, "error", err)
		return nil
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		ref := m.FileRef{Path: w.fs.JoinPath(string(dir), name), Name: name}

		info, err := w.fs.FileInfo(ref.Path)
		if err != nil {
			slog.Debug("skipping entry that cannot be stat'ed", "path", ref.Path, "error", err)
			continue
		}

		if w.exclusions.IsExcluded(ref) {
			stats.Excluded++
			slog.Info("excluded", "path", ref.Path, "dir", info.IsDir())
			w.reporter.DisplayExcluded(ctx, ref.Path, info.IsDir())

			continue
		}

		if info.IsDir() {
			stats.Directories++

			if err := w.walkDir(ctx, ref.Path, onFile, visited, stats); err != nil {
				return err
			}

			continue
		}

		if !info.Mode().IsRegular() {
			slog.Debug("skipping non-regular file", "path", ref.Path, "mode", info.Mode())
			continue
		}

		stats.Files++

		if err := onFile(ctx, ref); err != nil {
			stats.Failed++
			slog.Warn("file skipped", "path", ref.Path, "error", err)
			w.reporter.DisplayFileSkipped(ctx, ref.Path, err)

			continue
		}

		slog.Info("file processed", "path", ref.Path)
		w.reporter.DisplayFileGenerated(ctx, ref.Path)
	}

	return nil
}
