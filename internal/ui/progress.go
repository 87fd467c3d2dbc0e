package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressController manages the bubbletea program for progress display
type ProgressController struct {
	ui      *UI
	program *tea.Program
	done    chan struct{}
}

// StartProgress starts the progress display if in interactive mode
// Returns nil if not in interactive mode; every method is safe on nil.
func (ui *UI) StartProgress() *ProgressController {
	if ui.Mode != OutputModeInteractive || !IsTerminal(ui.ErrWriter) {
		return nil
	}

	m := NewModel()
	p := tea.NewProgram(m, tea.WithOutput(ui.ErrWriter), tea.WithInput(nil))

	ctrl := &ProgressController{
		ui:      ui,
		program: p,
		done:    make(chan struct{}),
	}

	// Run the program in a goroutine
	go func() {
		defer close(ctrl.done)
		if _, err := p.Run(); err != nil {
			// the display is best effort; the run goes on without it
			_ = err
		}
	}()

	return ctrl
}

// SetStage updates the current stage
func (pc *ProgressController) SetStage(stage Stage) {
	if pc != nil && pc.program != nil {
		pc.program.Send(StageMsg(stage))
	}
}

// SetOperation updates the current operation description
func (pc *ProgressController) SetOperation(op string) {
	if pc != nil && pc.program != nil {
		pc.program.Send(OperationMsg(op))
	}
}

// SetSentenceCount sets the number of sentences to analyse
func (pc *ProgressController) SetSentenceCount(count int) {
	if pc != nil && pc.program != nil {
		pc.program.Send(SentenceCountMsg(count))
	}
}

// SentencesDone reports how many sentences have been analysed.
// Its signature matches density.WithProgress.
func (pc *ProgressController) SentencesDone(done, _ int) {
	if pc != nil && pc.program != nil {
		pc.program.Send(SentenceDoneMsg(done))
	}
}

// Done signals that all work is complete
func (pc *ProgressController) Done(err error) {
	if pc != nil && pc.program != nil {
		pc.program.Send(DoneMsg{Err: err})
		<-pc.done
	}
}
