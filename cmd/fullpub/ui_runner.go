package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"fullpub/internal/driver"
	"fullpub/internal/source"
	"fullpub/internal/ui"
)

type expandOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runExpandWithUI runs the directory expansion behind a Bubble Tea
// progress display. Events stream from the driver's observer into the
// model; the pipeline result is collected once the channel drains.
func runExpandWithUI(ctx context.Context, dir string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	files, err := listDisplayFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan expandOutcome, 1)

	optsCopy := opts
	optsCopy.Observer = func(ev driver.Event) { events <- ev }

	go func() {
		fileSet, results, runErr := driver.ExpandDir(ctx, dir, optsCopy)
		outcomeCh <- expandOutcome{fileSet: fileSet, results: results, err: runErr}
		close(events)
	}()

	model := ui.NewProgressModel("expanding "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}

// listDisplayFiles mirrors the driver's file discovery so the progress
// rows match the events it will emit.
func listDisplayFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".decl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
