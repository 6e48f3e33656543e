package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"compaug.dev/pkg/compaug/internal/adapter"
	"compaug.dev/pkg/compaug/internal/controller"
	m "compaug.dev/pkg/compaug/internal/model"
)

// DefaultOutputExt is used when a component's extension cannot be encoded.
const DefaultOutputExt = "png"

// Sweep ranges applied to every component.
var (
	BrightnessRange = m.SweepRange{Axis: m.AxisBrightness, Min: 60, Max: 140, Step: 20, Baseline: 100}
	SaturationRange = m.SweepRange{Axis: m.AxisSaturation, Min: 0, Max: 140, Step: 20, Baseline: 100}
	HueRange        = m.SweepRange{Axis: m.AxisHue, Min: 0, Max: 190, Step: 10, Baseline: 100}
	ContrastRange   = m.SweepRange{Axis: m.AxisContrast, Min: -5, Max: 2, Step: 1, Baseline: 0}
)

// DefaultSweeps lists the axes in the order they are launched.
var DefaultSweeps = []m.SweepRange{BrightnessRange, SaturationRange, HueRange, ContrastRange}

// VariantCount returns how many outputs one component produces.
func VariantCount(geometric bool) int {
	count := 0
	for _, r := range DefaultSweeps {
		count += len(r.Values())
	}

	if geometric {
		count += len(DefaultTransforms)
	}

	return count
}

// SweepConfig is the per-run configuration threaded through the Sweeper.
type SweepConfig struct {
	OutputDir m.Path
	Label     string
	Geometric bool
	// Parallel bounds the variants being produced at once across all images.
	Parallel int
}

// Sweeper produces every variant of a component image. Variant failures are
// reported and counted, never returned.
type Sweeper struct {
	images      adapter.ImageAdapter
	compositor  Compositor
	annotations adapter.AnnotationStore
	ui          controller.UI
	cfg         SweepConfig
	sem         *semaphore.Weighted
}

// NewSweeper creates a Sweeper writing into cfg.OutputDir.
func NewSweeper(images adapter.ImageAdapter, compositor Compositor, annotations adapter.AnnotationStore, ui controller.UI, cfg SweepConfig) *Sweeper {
	if cfg.Parallel <= 0 {
		cfg.Parallel = runtime.NumCPU()
	}

	return &Sweeper{
		images:      images,
		compositor:  compositor,
		annotations: annotations,
		ui:          ui,
		cfg:         cfg,
		sem:         semaphore.NewWeighted(int64(cfg.Parallel)),
	}
}

// ProcessImage launches all sweeps concurrently and waits for every one of
// them. Once started the fan-out is not cancelled by ctx.
func (s *Sweeper) ProcessImage(ctx context.Context, img m.ImageRef) m.ImageReport {
	ctx = context.WithoutCancel(ctx)

	report := m.ImageReport{
		Image: img.Path,
		Axes:  make([]m.AxisReport, len(DefaultSweeps)),
	}

	var g errgroup.Group

	for i, r := range DefaultSweeps {
		g.Go(func() error {
			report.Axes[i] = s.Sweep(ctx, img, r)
			return nil
		})
	}

	if s.cfg.Geometric {
		g.Go(func() error {
			report.Geometric = s.SweepGeometric(ctx, img)
			return nil
		})
	}

	_ = g.Wait()

	return report
}

// SweepBrightness produces the brightness variants of img.
func (s *Sweeper) SweepBrightness(ctx context.Context, img m.ImageRef) m.AxisReport {
	return s.Sweep(ctx, img, BrightnessRange)
}

// SweepSaturation produces the saturation variants of img.
func (s *Sweeper) SweepSaturation(ctx context.Context, img m.ImageRef) m.AxisReport {
	return s.Sweep(ctx, img, SaturationRange)
}

// SweepHue produces the hue variants of img.
func (s *Sweeper) SweepHue(ctx context.Context, img m.ImageRef) m.AxisReport {
	return s.Sweep(ctx, img, HueRange)
}

// SweepContrast produces the contrast variants of img.
func (s *Sweeper) SweepContrast(ctx context.Context, img m.ImageRef) m.AxisReport {
	return s.Sweep(ctx, img, ContrastRange)
}

// Sweep produces one variant per value of r concurrently.
func (s *Sweeper) Sweep(ctx context.Context, img m.ImageRef, r m.SweepRange) m.AxisReport {
	values := r.Values()
	results := make([]m.VariantResult, len(values))

	var g errgroup.Group

	for i, value := range values {
		g.Go(func() error {
			results[i] = s.Adjust(ctx, img, m.Variant{Axis: r.Axis, Value: value, Baseline: r.Baseline})
			return nil
		})
	}

	_ = g.Wait()

	report := m.AxisReport{Axis: r.Axis, Total: len(results)}

	for _, res := range results {
		if !res.OK() {
			report.Failed++
		}
	}

	if report.Failed > 0 {
		slog.Warn("variants failed", "image", img.Path, "axis", r.Axis, "failed", report.Failed, "total", report.Total)
		s.ui.DisplayAxisFailures(ctx, img.Path, r.Axis, report.Failed, report.Total)
	}

	return report
}

// Adjust composites img onto a background, applies the variant and writes
// its annotation. Failures are logged and returned in the result.
func (s *Sweeper) Adjust(ctx context.Context, img m.ImageRef, variant m.Variant) m.VariantResult {
	output := s.OutputPath(img, variant.Modifier())
	result := m.VariantResult{Variant: variant, Output: output}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		result.Err = err
		return result
	}
	defer s.sem.Release(1)

	result.Err = s.adjust(ctx, img, variant, output)
	if result.Err != nil {
		slog.Error("variant failed", "image", img.Path, "variant", variant.Modifier(), "error", result.Err)
		s.ui.DisplayError(ctx, fmt.Sprintf("Variant %s of %s failed", variant.Modifier(), img.Path), result.Err)

		return result
	}

	slog.Debug("variant written", "image", img.Path, "output", output)

	return result
}

func (s *Sweeper) adjust(ctx context.Context, img m.ImageRef, variant m.Variant, output m.Path) error {
	placement, err := s.compositor.Composite(ctx, img.Path, output)
	if err != nil {
		return err
	}

	if err := s.apply(output, variant); err != nil {
		return err
	}

	if _, err := s.annotations.Write(ctx, output, s.cfg.Label, placement); err != nil {
		return fmt.Errorf("write annotation for %s: %w", output, err)
	}

	return nil
}

func (s *Sweeper) apply(path m.Path, variant m.Variant) error {
	const unchanged = 100

	value := float64(variant.Value)

	switch variant.Axis {
	case m.AxisBrightness:
		return s.images.Modulate(path, value, unchanged, unchanged)
	case m.AxisSaturation:
		return s.images.Modulate(path, unchanged, value, unchanged)
	case m.AxisHue:
		return s.images.Modulate(path, unchanged, unchanged, value)
	case m.AxisContrast:
		return s.images.Contrast(path, variant.Value)
	default:
		return fmt.Errorf("unknown axis %q", variant.Axis)
	}
}

// OutputPath returns the output file for img with the given modifier,
// falling back to DefaultOutputExt for extensions that cannot be encoded.
func (s *Sweeper) OutputPath(img m.ImageRef, modifier string) m.Path {
	ext := img.Ext
	if ext == "" || !s.images.CanEncode(ext) {
		ext = DefaultOutputExt
	}

	return OutputPath(s.cfg.OutputDir, img, modifier, ext)
}

// OutputPath builds {outputDir}/{base}-{modifier}.{ext}.
func OutputPath(outputDir m.Path, img m.ImageRef, modifier, ext string) m.Path {
	name := fmt.Sprintf("%s-%s.%s", img.BaseName(), modifier, ext)
	return m.Path(filepath.Join(string(outputDir), name))
}
