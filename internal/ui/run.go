package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"lintel/internal/driver"
)

type lintOutcome struct {
	results []driver.FileResult
	err     error
}

// RunLint lints paths while rendering progress to out. The UI goes to out
// (normally stderr) so formatted results on stdout stay machine-readable.
func RunLint(ctx context.Context, title string, paths []string, opts driver.Options, out io.Writer) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		o := opts
		o.Sink = driver.ChannelSink(events)
		res, err := driver.LintPaths(ctx, paths, o)
		outcomeCh <- lintOutcome{results: res, err: err}
		close(events)
	}()

	model := NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	// UI мог завершиться раньше воркеров: дочитываем события, чтобы они не заблокировались
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
