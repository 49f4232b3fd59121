package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"aether/internal/driver"
	"aether/internal/ui"
)

type checkOutcome struct {
	result *driver.DirResult
	err    error
}

func runCheckDirWithUI(ctx context.Context, dir string, jobs int, opts *driver.CheckOptions) (*driver.DirResult, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := *opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.CheckDir(ctx, dir, jobs, &optsCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
