package domain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"compaug.dev/pkg/compaug/internal/adapter"
	m "compaug.dev/pkg/compaug/internal/model"
)

// ErrUnsupportedImage marks files no decoder recognizes.
var ErrUnsupportedImage = errors.New("unsupported image")

// ImageProcessor produces every variant of an accepted image.
type ImageProcessor interface {
	ProcessImage(ctx context.Context, img m.ImageRef) m.ImageReport
}

// Processor gates walked files through the image probe before sweeping them.
type Processor struct {
	images  adapter.ImageAdapter
	sweeper ImageProcessor
}

// NewProcessor creates a Processor.
func NewProcessor(images adapter.ImageAdapter, sweeper ImageProcessor) *Processor {
	return &Processor{images: images, sweeper: sweeper}
}

// ProcessFile probes ref and, when it is a supported image, waits for all
// of its variants. Variant failures are in the report, not the error.
func (p *Processor) ProcessFile(ctx context.Context, ref m.FileRef) (m.ImageReport, error) {
	img, err := InspectImage(p.images, ref)
	if err != nil {
		return m.ImageReport{}, err
	}

	return p.sweeper.ProcessImage(ctx, img), nil
}

// InspectImage resolves ref into an ImageRef or fails with ErrUnsupportedImage.
func InspectImage(images adapter.ImageAdapter, ref m.FileRef) (m.ImageRef, error) {
	format, err := images.Probe(ref.Path)
	if err != nil {
		return m.ImageRef{}, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}

	return ResolveImage(ref, format), nil
}

// ResolveImage attaches the probed format and the lowercased extension,
// falling back to the format for names without one.
func ResolveImage(ref m.FileRef, format string) m.ImageRef {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(ref.Name), "."))
	if ext == "" {
		ext = strings.ToLower(format)
	}

	return m.ImageRef{
		FileRef: ref,
		Ext:     ext,
		Format:  format,
	}
}
