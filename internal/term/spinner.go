package term

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress on a terminal and is silent otherwise.
type Spinner struct {
	s *spinner.Spinner
}

// StartSpinner starts a spinner on w with msg as its prefix. When w is not a
// terminal nothing is drawn.
func StartSpinner(w io.Writer, msg string) *Spinner {
	if !IsTerminal(w) {
		return &Spinner{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Prefix = msg + " "
	s.Start()
	return &Spinner{s: s}
}

// Stop stops the spinner and clears its line.
func (s *Spinner) Stop() {
	if s == nil || s.s == nil {
		return
	}
	s.s.Stop()
}
