// Package controller provides the console output of the augmentation runs.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "compaug.dev/pkg/compaug/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeRun StartMode = iota
	ModePlan
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithRunMode sets the UI to generation mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithPlanMode sets the UI to dry-run listing mode.
func WithPlanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModePlan
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: ModeRun}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI receives progress events from the workflow. Implementations must be
// safe for concurrent use because variants report from worker goroutines.
//
//nolint:interfacebloat // One method per event kind keeps the workflow free of formatting.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayRunInfo(ctx context.Context, input, output m.Path, parallel int)
	DisplayExcluded(ctx context.Context, path m.Path, isDir bool)
	DisplayFileGenerated(ctx context.Context, path m.Path)
	DisplayFileSkipped(ctx context.Context, path m.Path, err error)
	DisplayAxisFailures(ctx context.Context, path m.Path, axis m.Axis, failed, total int)
	DisplayError(ctx context.Context, message string, err error)
	DisplayPlan(ctx context.Context, entries []m.PlanEntry) error
	DisplaySummary(ctx context.Context, summary m.RunSummary)
}

// NewUI returns a TUI when attached to a terminal and a SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
