package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"compaug.dev/pkg/compaug/internal/adapter"
	m "compaug.dev/pkg/compaug/internal/model"
)

// ErrNoBackground is returned when the background directory holds no
// decodable image.
var ErrNoBackground = errors.New("no usable background image")

// BackgroundPool hands out a background image for every composite.
type BackgroundPool interface {
	Pick(ctx context.Context) (m.Path, error)
}

type dirBackgroundPool struct {
	dir    m.Path
	fs     adapter.FSAdapter
	images adapter.ImageAdapter
	rand   *Rand
}

// NewBackgroundPool creates a pool over the decodable images directly inside
// dir. The directory is listed again on every pick.
func NewBackgroundPool(dir m.Path, fs adapter.FSAdapter, images adapter.ImageAdapter, rng *Rand) BackgroundPool {
	return &dirBackgroundPool{
		dir:    dir,
		fs:     fs,
		images: images,
		rand:   rng,
	}
}

// Pick returns a uniformly random background.
func (p *dirBackgroundPool) Pick(ctx context.Context) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	candidates, err := p.candidates()
	if err != nil {
		return "", err
	}

	return candidates[p.rand.IntN(len(candidates))], nil
}

func (p *dirBackgroundPool) candidates() ([]m.Path, error) {
	names, err := p.fs.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrNoBackground, p.dir, err)
	}

	var candidates []m.Path

	for _, name := range names {
		path := p.fs.JoinPath(string(p.dir), name)

		info, err := p.fs.FileInfo(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		if _, err := p.images.Probe(path); err != nil {
			slog.Debug("ignoring background", "path", path, "error", err)
			continue
		}

		candidates = append(candidates, path)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoBackground, p.dir)
	}

	return candidates, nil
}
