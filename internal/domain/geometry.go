package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	m "compaug.dev/pkg/compaug/internal/model"
)

// AxisGeometric labels the report of the geometric transforms.
const AxisGeometric m.Axis = "geometric"

// DefaultTransforms are applied when geometric variants are enabled.
var DefaultTransforms = []m.Transform{
	m.TransformRotate,
	m.TransformFlip,
	m.TransformFlop,
	m.TransformFlipFlop,
}

// SweepGeometric writes every DefaultTransforms output of img. These outputs
// are neither composited nor annotated.
func (s *Sweeper) SweepGeometric(ctx context.Context, img m.ImageRef) m.AxisReport {
	errs := make([]error, len(DefaultTransforms))

	var g errgroup.Group

	for i, op := range DefaultTransforms {
		g.Go(func() error {
			errs[i] = s.transform(ctx, img, op)
			return nil
		})
	}

	_ = g.Wait()

	report := m.AxisReport{Axis: AxisGeometric, Total: len(errs)}

	for _, err := range errs {
		if err != nil {
			report.Failed++
		}
	}

	if report.Failed > 0 {
		s.ui.DisplayAxisFailures(ctx, img.Path, AxisGeometric, report.Failed, report.Total)
	}

	return report
}

func (s *Sweeper) transform(ctx context.Context, img m.ImageRef, op m.Transform) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	output := s.OutputPath(img, string(op))

	if err := s.images.Transform(img.Path, output, op); err != nil {
		slog.Error("transform failed", "image", img.Path, "transform", op, "error", err)
		s.ui.DisplayError(ctx, fmt.Sprintf("Transform %s of %s failed", op, img.Path), err)

		return err
	}

	return nil
}
