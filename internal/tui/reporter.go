package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"zigup/internal/toolchain"
)

// StageReporter forwards install stage transitions to a running program as
// row updates keyed by stage name.
type StageReporter struct {
	send func(tea.Msg)
}

// NewStageReporter returns a toolchain.Reporter that calls send for each
// transition.
func NewStageReporter(send func(tea.Msg)) *StageReporter {
	return &StageReporter{send: send}
}

// Report implements toolchain.Reporter.
func (r *StageReporter) Report(stage toolchain.Stage, status, detail string) {
	r.send(RowUpdateMsg{
		Key: string(stage),
		Fields: map[string]string{
			"STATUS": status,
			"DETAIL": detail,
		},
	})
}
