package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "compaug.dev/pkg/compaug/internal/model"
)

const recentEventsLimit = 6

// TUI renders a live progress view with Bubble Tea while a run is in
// progress. Tables and the final summary are printed through a SimpleUI once
// the program has exited.
type TUI struct {
	simple *SimpleUI
	cmd    *cobra.Command

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{
		simple: NewSimpleUI(cmd),
		cmd:    cmd,
	}
}

// Start launches the progress program in run mode. Plan mode only prints.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := t.simple.Start(ctx, options...); err != nil {
		return err
	}

	if newStartConfig(options...).mode != ModeRun {
		return nil
	}

	program := tea.NewProgram(
		newProgressModel(),
		tea.WithOutput(t.cmd.OutOrStdout()),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	done := make(chan struct{})

	t.mu.Lock()
	t.program = program
	t.done = done
	t.mu.Unlock()

	go func() {
		defer close(done)

		_, _ = program.Run()
	}()

	return nil
}

// Close stops the progress program and waits for it to restore the terminal.
func (t *TUI) Close(_ context.Context) {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program = nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Send(finishedMsg{})
	<-done
}

// DisplayRunInfo implements UI.
func (t *TUI) DisplayRunInfo(ctx context.Context, input, output m.Path, parallel int) {
	if !t.send(runInfoMsg{input: input, output: output, parallel: parallel}) {
		t.simple.DisplayRunInfo(ctx, input, output, parallel)
	}
}

// DisplayExcluded implements UI.
func (t *TUI) DisplayExcluded(ctx context.Context, path m.Path, isDir bool) {
	if !t.send(excludedMsg{path: path, isDir: isDir}) {
		t.simple.DisplayExcluded(ctx, path, isDir)
	}
}

// DisplayFileGenerated implements UI.
func (t *TUI) DisplayFileGenerated(ctx context.Context, path m.Path) {
	if !t.send(generatedMsg{path: path}) {
		t.simple.DisplayFileGenerated(ctx, path)
	}
}

// DisplayFileSkipped implements UI.
func (t *TUI) DisplayFileSkipped(ctx context.Context, path m.Path, err error) {
	if !t.send(skippedMsg{path: path, err: err}) {
		t.simple.DisplayFileSkipped(ctx, path, err)
	}
}

// DisplayAxisFailures implements UI.
func (t *TUI) DisplayAxisFailures(ctx context.Context, path m.Path, axis m.Axis, failed, total int) {
	msg := eventMsg{text: fmt.Sprintf("%s: %d of %d %s variant(s) failed", path, failed, total, axis), warn: true}
	if !t.send(msg) {
		t.simple.DisplayAxisFailures(ctx, path, axis, failed, total)
	}
}

// DisplayError implements UI.
func (t *TUI) DisplayError(ctx context.Context, message string, err error) {
	if !t.send(eventMsg{text: fmt.Sprintf("%s: %v", message, err), warn: true}) {
		t.simple.DisplayError(ctx, message, err)
	}
}

// DisplayPlan implements UI.
func (t *TUI) DisplayPlan(ctx context.Context, entries []m.PlanEntry) error {
	return t.simple.DisplayPlan(ctx, entries)
}

// DisplaySummary stops the progress view and prints the summary table.
func (t *TUI) DisplaySummary(ctx context.Context, summary m.RunSummary) {
	t.Close(ctx)
	t.simple.DisplaySummary(ctx, summary)
}

func (t *TUI) send(msg tea.Msg) bool {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil {
		return false
	}

	program.Send(msg)

	return true
}

type runInfoMsg struct {
	input, output m.Path
	parallel      int
}

type excludedMsg struct {
	path  m.Path
	isDir bool
}

type generatedMsg struct {
	path m.Path
}

type skippedMsg struct {
	path m.Path
	err  error
}

type eventMsg struct {
	text string
	warn bool
}

type finishedMsg struct{}

// progressModel is the Bubble Tea model behind the live view.
type progressModel struct {
	spinner   spinner.Model
	header    string
	current   m.Path
	generated int
	skipped   int
	excluded  int
	recent    []eventMsg
	quitting  bool

	okStyle   lipgloss.Style
	warnStyle lipgloss.Style
	dimStyle  lipgloss.Style
}

func newProgressModel() progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return progressModel{
		spinner:   s,
		okStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warnStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		dimStyle:  lipgloss.NewStyle().Faint(true),
	}
}

func (pm progressModel) Init() tea.Cmd {
	return pm.spinner.Tick
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runInfoMsg:
		pm.header = fmt.Sprintf("Generating from %s into %s with %d worker(s)", msg.input, msg.output, msg.parallel)
	case excludedMsg:
		pm.excluded++
	case generatedMsg:
		pm.generated++
		pm.current = msg.path
		pm = pm.push(eventMsg{text: "generated " + string(msg.path)})
	case skippedMsg:
		pm.skipped++
		pm = pm.push(eventMsg{text: fmt.Sprintf("skipped %s (%v)", msg.path, msg.err), warn: true})
	case eventMsg:
		pm = pm.push(msg)
	case finishedMsg:
		pm.quitting = true
		return pm, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		pm.spinner, cmd = pm.spinner.Update(msg)

		return pm, cmd
	}

	return pm, nil
}

func (pm progressModel) push(event eventMsg) progressModel {
	recent := append(append([]eventMsg(nil), pm.recent...), event)
	if len(recent) > recentEventsLimit {
		recent = recent[len(recent)-recentEventsLimit:]
	}

	pm.recent = recent

	return pm
}

func (pm progressModel) View() string {
	if pm.quitting {
		return ""
	}

	var b strings.Builder

	if pm.header != "" {
		b.WriteString(pm.header + "\n\n")
	}

	fmt.Fprintf(&b, "%s %s  %s  %s\n",
		pm.spinner.View(),
		pm.okStyle.Render(fmt.Sprintf("%d generated", pm.generated)),
		pm.warnStyle.Render(fmt.Sprintf("%d skipped", pm.skipped)),
		pm.dimStyle.Render(fmt.Sprintf("%d excluded", pm.excluded)),
	)

	if pm.current != "" {
		b.WriteString(pm.dimStyle.Render("last: "+string(pm.current)) + "\n")
	}

	for _, event := range pm.recent {
		style := pm.dimStyle
		if event.warn {
			style = pm.warnStyle
		}

		b.WriteString("  " + style.Render(event.text) + "\n")
	}

	return b.String()
}
