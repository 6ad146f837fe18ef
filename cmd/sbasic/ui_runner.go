package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"sbasic/internal/driver"
	"sbasic/internal/ui"
)

type diagnoseOutcome struct {
	results []driver.FileResult
	err     error
}

// runDiagnoseWithUI runs diagnose in the background and renders its progress
// events until it returns.
func runDiagnoseWithUI(ctx context.Context, out io.Writer, title string, files []string, diagnose func(driver.ProgressSink) ([]driver.FileResult, error)) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan diagnoseOutcome, 1)

	go func() {
		res, err := diagnose(driver.ChannelSink{Ch: events})
		outcomeCh <- diagnoseOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог завершиться раньше: дочитываем события, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
