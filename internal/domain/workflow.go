package domain

import (
	"context"
	"fmt"
	"log/slog"

	"compaug.dev/pkg/compaug/internal/adapter"
	"compaug.dev/pkg/compaug/internal/controller"
	m "compaug.dev/pkg/compaug/internal/model"
)

// RunArgs configures a generation run. Relative paths resolve against the
// working directory.
type RunArgs struct {
	Input            m.Path
	Output           m.Path
	Backgrounds      m.Path
	Ignore           []string
	Parallel         int
	Seed             int64
	Geometric        bool
	Label            string
	AnnotationFormat string
}

// PlanArgs configures a dry run that only lists what would be generated.
type PlanArgs struct {
	Input       m.Path
	Output      m.Path
	Backgrounds m.Path
	Ignore      []string
	Geometric   bool
}

// Workflow drives a whole run over an input tree.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	Plan(ctx context.Context, args PlanArgs) error
}

type workflow struct {
	adapter.FSAdapter
	adapter.ImageAdapter
	controller.UI
}

// NewWorkflow creates a Workflow.
func NewWorkflow(fs adapter.FSAdapter, images adapter.ImageAdapter, ui controller.UI) Workflow {
	return &workflow{
		FSAdapter:    fs,
		ImageAdapter: images,
		UI:           ui,
	}
}

// Run walks args.Input and writes every variant of every image into
// args.Output. Per-file and per-variant failures are reported, not returned.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	wd, err := w.WorkingDir()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	input := resolvePath(wd, args.Input)
	output := resolvePath(wd, args.Output)
	backgrounds := resolvePath(wd, args.Backgrounds)

	if err := w.MkdirAll(output); err != nil {
		return fmt.Errorf("create output directory %s: %w", output, err)
	}

	store, err := adapter.NewAnnotationStore(args.AnnotationFormat)
	if err != nil {
		return err
	}

	registry := newRegistry(wd, input, args.Ignore, output, backgrounds)

	rng := NewRand(args.Seed)
	pool := NewBackgroundPool(backgrounds, w.FSAdapter, w.ImageAdapter, rng)
	sweeper := NewSweeper(w.ImageAdapter, NewCompositor(w.ImageAdapter, pool, rng, w.UI), store, w.UI, SweepConfig{
		OutputDir: output,
		Label:     args.Label,
		Geometric: args.Geometric,
		Parallel:  args.Parallel,
	})
	processor := NewProcessor(w.ImageAdapter, sweeper)

	slog.Info("starting run",
		"input", input,
		"output", output,
		"backgrounds", backgrounds,
		"parallel", args.Parallel,
		"excluded_names", registry.Names(),
		"excluded_paths", registry.Paths(),
	)
	w.DisplayRunInfo(ctx, input, output, args.Parallel)

	summary := m.RunSummary{Input: input, Output: output}

	onFile := func(ctx context.Context, ref m.FileRef) error {
		report, err := processor.ProcessFile(ctx, ref)
		if err != nil {
			return err
		}

		summary.Add(report)

		return nil
	}

	stats, err := w.traverse(ctx, registry, input, onFile, w.UI)
	if err != nil {
		return err
	}

	summary.Skipped = stats.Failed
	summary.Excluded = stats.Excluded

	slog.Info("task succeeded",
		"images", summary.Images,
		"variants", summary.Variants,
		"failed_variants", summary.FailedVariants,
		"skipped", summary.Skipped,
		"excluded", summary.Excluded,
	)
	w.DisplaySummary(ctx, summary)

	return nil
}

// Plan lists the images under args.Input with their variant counts.
func (w *workflow) Plan(ctx context.Context, args PlanArgs) error {
	if err := w.Start(ctx, controller.WithPlanMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	wd, err := w.WorkingDir()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	input := resolvePath(wd, args.Input)
	var reserved []m.Path
	for _, dir := range []m.Path{args.Output, args.Backgrounds} {
		if dir != "" {
			reserved = append(reserved, resolvePath(wd, dir))
		}
	}

	registry := newRegistry(wd, input, args.Ignore, reserved...)
	variants := VariantCount(args.Geometric)

	var entries []m.PlanEntry

	onFile := func(_ context.Context, ref m.FileRef) error {
		img, err := InspectImage(w.ImageAdapter, ref)
		if err != nil {
			return err
		}

		entries = append(entries, m.PlanEntry{Path: img.Path, Format: img.Format, Variants: variants})

		return nil
	}

	if _, err := w.traverse(ctx, registry, input, onFile, planReporter{w.UI}); err != nil {
		return err
	}

	return w.DisplayPlan(ctx, entries)
}

// newRegistry builds the exclusions shared by Run and Plan. Generated files
// and backgrounds below the input must never be treated as components.
func newRegistry(wd, input m.Path, ignore []string, reserved ...m.Path) *ExclusionRegistry {
	registry := NewExclusionRegistry(wd, DefaultExclusions...)
	registry.Append(ignore...)

	for _, dir := range reserved {
		if isDescendant(input, dir) {
			registry.Append(string(dir))
		}
	}

	return registry
}

// traverse walks input when it is a directory and hands it to onFile
// directly when it is a single file.
func (w *workflow) traverse(ctx context.Context, registry *ExclusionRegistry, input m.Path, onFile FileFunc, reporter WalkReporter) (WalkStats, error) {
	info, err := w.FileInfo(input)
	if err != nil {
		return WalkStats{}, fmt.Errorf("input %s: %w", input, err)
	}

	if info.IsDir() {
		return NewWalker(w.FSAdapter, registry, reporter).Walk(ctx, input, onFile)
	}

	var stats WalkStats

	ref := m.NewFileRef(input)

	if registry.IsExcluded(ref) {
		stats.Excluded++
		reporter.DisplayExcluded(ctx, input, false)

		return stats, nil
	}

	stats.Files++

	if err := onFile(ctx, ref); err != nil {
		stats.Failed++
		slog.Warn("file skipped", "path", input, "error", err)
		reporter.DisplayFileSkipped(ctx, input, err)

		return stats, nil
	}

	reporter.DisplayFileGenerated(ctx, input)

	return stats, nil
}

// planReporter forwards walk events except per-file success, which the plan
// table already covers.
type planReporter struct {
	ui controller.UI
}

func (r planReporter) DisplayExcluded(ctx context.Context, path m.Path, isDir bool) {
	r.ui.DisplayExcluded(ctx, path, isDir)
}

func (r planReporter) DisplayFileGenerated(context.Context, m.Path) {}

func (r planReporter) DisplayFileSkipped(ctx context.Context, path m.Path, err error) {
	r.ui.DisplayFileSkipped(ctx, path, err)
}
