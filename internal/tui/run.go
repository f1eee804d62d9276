package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RunWithWork creates a bubbletea program, runs workFn in a goroutine and
// blocks until both have finished. Quitting the program cancels the context
// passed to workFn; an interrupted run reports ErrInterrupted.
func RunWithWork(ctx context.Context, out io.Writer, model ProgressModel, workFn func(ctx context.Context, send func(tea.Msg)) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))

	workErr := make(chan error, 1)
	go func() {
		// Let bubbletea start its event loop and render the initial frame.
		time.Sleep(50 * time.Millisecond)

		err := workFn(ctx, func(msg tea.Msg) {
			p.Send(msg)
			// Yield so the renderer can show each stage transition.
			time.Sleep(5 * time.Millisecond)
		})
		if err != nil {
			p.Send(ErrorMsg{Err: err})
		} else {
			p.Send(WorkDoneMsg{})
		}
		workErr <- err
	}()

	finalModel, runErr := p.Run()
	parentDone := ctx.Err() != nil
	cancel()
	err := <-workErr
	if m, ok := finalModel.(ProgressModel); ok && m.Interrupted() {
		return ErrInterrupted
	}
	if err != nil {
		return err
	}
	if runErr != nil && !parentDone {
		return runErr
	}
	return nil
}
