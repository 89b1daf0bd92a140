package display

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress on stderr while the assistant is waiting on
// the model or the tool service.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a stopped spinner with the given message.
func NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	return &Spinner{s: s}
}

// Start begins the animation.
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop halts the animation and clears the line.
func (sp *Spinner) Stop() {
	sp.s.Stop()
}

// UpdateMessage replaces the message shown next to the spinner.
func (sp *Spinner) UpdateMessage(message string) {
	sp.s.Suffix = " " + message
}
