package model

// VariantResult is the outcome of one adjustment. A failed variant carries
// its error instead of propagating it.
type VariantResult struct {
	Variant Variant
	Output  Path
	Err     error
}

// OK reports whether the variant was written together with its annotation.
func (r VariantResult) OK() bool {
	return r.Err == nil
}

// AxisReport aggregates the variants of one sweep.
type AxisReport struct {
	Axis   Axis
	Total  int
	Failed int
}

// ImageReport aggregates everything generated for one component image.
type ImageReport struct {
	Image Path
	Axes  []AxisReport
	// Geometric counts the optional rotate/flip/flop outputs.
	Geometric AxisReport
}

// Variants returns the number of attempted and failed outputs.
func (r ImageReport) Variants() (total int, failed int) {
	for _, axis := range r.Axes {
		total += axis.Total
		failed += axis.Failed
	}

	total += r.Geometric.Total
	failed += r.Geometric.Failed

	return total, failed
}

// RunSummary is the tally displayed once the walk finishes.
type RunSummary struct {
	Input          Path
	Output         Path
	Images         int
	Skipped        int
	Excluded       int
	Variants       int
	FailedVariants int
}

// Add folds an image report into the summary.
func (s *RunSummary) Add(report ImageReport) {
	total, failed := report.Variants()
	s.Images++
	s.Variants += total
	s.FailedVariants += failed
}

// PlanEntry is one row of a dry-run listing.
type PlanEntry struct {
	Path     Path
	Format   string
	Variants int
}
