package domain

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"compaug.dev/pkg/compaug/internal/adapter"
	"compaug.dev/pkg/compaug/internal/controller"
	m "compaug.dev/pkg/compaug/internal/model"
)

// FitThreshold is the largest share of a background dimension a component
// may cover before it is scaled down.
const FitThreshold = 0.8

// Compositor places a component on a random background and writes the result.
type Compositor interface {
	Composite(ctx context.Context, component, output m.Path) (m.Placement, error)
}

type compositor struct {
	images adapter.ImageAdapter
	pool   BackgroundPool
	rand   *Rand
	ui     controller.UI
}

// NewCompositor creates a Compositor drawing backgrounds from pool.
func NewCompositor(images adapter.ImageAdapter, pool BackgroundPool, rng *Rand, ui controller.UI) Compositor {
	return &compositor{
		images: images,
		pool:   pool,
		rand:   rng,
		ui:     ui,
	}
}

// Composite writes component over a random background to output and returns
// the component's box and final size. Dimension reads that fail are reported
// and treated as 0x0.
func (c *compositor) Composite(ctx context.Context, component, output m.Path) (m.Placement, error) {
	background, err := c.pool.Pick(ctx)
	if err != nil {
		return m.Placement{}, err
	}

	bgSize := c.size(ctx, background)
	size := c.size(ctx, component)
	source := component

	if scale, ok := FitScale(size, bgSize); ok {
		size = ScaleSize(size, scale)

		if err := c.images.Resize(component, output, size.Width, size.Height); err != nil {
			return m.Placement{}, fmt.Errorf("resize %s: %w", component, err)
		}

		source = output
	}

	x := c.offset(bgSize.Width - size.Width)
	y := c.offset(bgSize.Height - size.Height)

	if err := c.images.Composite(background, source, output, x, y); err != nil {
		return m.Placement{}, fmt.Errorf("composite %s over %s: %w", component, background, err)
	}

	return m.Placement{
		Box: m.Box{
			XMin: x,
			YMin: y,
			XMax: x + size.Width,
			YMax: y + size.Height,
		},
		Size: size,
	}, nil
}

// offset picks floor(r * limit) without guarding limit's sign, so a
// component larger than its background yields a negative offset.
func (c *compositor) offset(limit int) int {
	return int(math.Floor(c.rand.Float64() * float64(limit)))
}

func (c *compositor) size(ctx context.Context, path m.Path) m.Size {
	size, err := c.images.Size(path)
	if err != nil {
		slog.Error("failed to read image size", "path", path, "error", err)
		c.ui.DisplayError(ctx, fmt.Sprintf("Cannot read size of %s", path), err)

		return m.Size{}
	}

	return size
}

// FitScale returns the factor bringing component within FitThreshold of
// background along its tighter dimension. ok is false when no scaling is due.
func FitScale(component, background m.Size) (scale float64, ok bool) {
	rateW := float64(component.Width) / float64(background.Width)
	rateH := float64(component.Height) / float64(background.Height)
	rate := math.Max(rateW, rateH)

	if !(rate > FitThreshold) {
		return 0, false
	}

	return FitThreshold / rate, true
}

// ScaleSize multiplies both dimensions by scale, rounding to the nearest
// pixel. A positive scale never rounds a dimension below one pixel.
func ScaleSize(size m.Size, scale float64) m.Size {
	scaled := m.Size{
		Width:  int(math.Round(float64(size.Width) * scale)),
		Height: int(math.Round(float64(size.Height) * scale)),
	}

	if scale > 0 {
		scaled.Width = max(scaled.Width, 1)
		scaled.Height = max(scaled.Height, 1)
	}

	return scaled
}
