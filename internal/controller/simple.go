package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "compaug.dev/pkg/compaug/internal/model"
)

// SimpleUI prints one colored line per event to the command output.
type SimpleUI struct {
	cmd *cobra.Command

	mu     sync.Mutex
	styles styles
}

type styles struct {
	info    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	error   lipgloss.Style
}

func newStyles(out io.Writer) styles {
	renderer := lipgloss.NewRenderer(out)

	return styles{
		info:    renderer.NewStyle(),
		success: renderer.NewStyle().Foreground(lipgloss.Color("2")),
		warning: renderer.NewStyle().Foreground(lipgloss.Color("3")),
		error:   renderer.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.styles = newStyles(s.cmd.OutOrStdout())
	s.mu.Unlock()

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// DisplayRunInfo prints the resolved input and output locations.
func (s *SimpleUI) DisplayRunInfo(_ context.Context, input, output m.Path, parallel int) {
	s.line(s.styles.info, "Generating from %s into %s with %d worker(s)", input, output, parallel)
}

// DisplayExcluded reports a file or directory skipped by the exclusion list.
func (s *SimpleUI) DisplayExcluded(_ context.Context, path m.Path, isDir bool) {
	kind := "file"
	if isDir {
		kind = "directory"
	}

	s.line(s.styles.info, "Ignoring %s %s", kind, path)
}

// DisplayFileGenerated reports a finished component image.
func (s *SimpleUI) DisplayFileGenerated(_ context.Context, path m.Path) {
	s.line(s.styles.success, "Training set for image %s generated", path)
}

// DisplayFileSkipped reports a file that could not be processed.
func (s *SimpleUI) DisplayFileSkipped(_ context.Context, path m.Path, err error) {
	s.line(s.styles.warning, "File %s is not supported, skipping (%v)", path, err)
}

// DisplayAxisFailures reports the failed variants of one sweep.
func (s *SimpleUI) DisplayAxisFailures(_ context.Context, path m.Path, axis m.Axis, failed, total int) {
	s.line(s.styles.warning, "Image %s: %d of %d %s variant(s) failed", path, failed, total, axis)
}

// DisplayError reports a recovered error.
func (s *SimpleUI) DisplayError(_ context.Context, message string, err error) {
	s.line(s.styles.error, "%s: %v", message, err)
}

// DisplayPlan prints the files a run would process.
func (s *SimpleUI) DisplayPlan(ctx context.Context, entries []m.PlanEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderPlanTable(entries))

	return nil
}

// DisplaySummary prints the totals and the terminal success line.
func (s *SimpleUI) DisplaySummary(_ context.Context, summary m.RunSummary) {
	s.printf("\n%s\n", renderSummaryTable(summary))
	s.line(s.styles.success, "Task succeeded")
}

func (s *SimpleUI) line(style lipgloss.Style, format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintln(s.cmd.OutOrStdout(), style.Render(fmt.Sprintf(format, args...)))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderPlanTable(entries []m.PlanEntry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Format", "Variants"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	total := 0

	for _, entry := range entries {
		table.Append([]string{string(entry.Path), entry.Format, fmt.Sprintf("%d", entry.Variants)})
		total += entry.Variants
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Images %d", len(entries)),
		"",
		fmt.Sprintf("%d", total),
	})

	table.Render()

	return tableBuffer.String()
}

func renderSummaryTable(summary m.RunSummary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Images", "Skipped", "Excluded", "Variants", "Failed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.Append([]string{
		fmt.Sprintf("%d", summary.Images),
		fmt.Sprintf("%d", summary.Skipped),
		fmt.Sprintf("%d", summary.Excluded),
		fmt.Sprintf("%d", summary.Variants),
		fmt.Sprintf("%d", summary.FailedVariants),
	})
	table.Render()

	return tableBuffer.String()
}
