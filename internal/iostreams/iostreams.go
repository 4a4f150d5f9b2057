// Package iostreams provides testable access to standard input/output
// streams, following the GitHub CLI pattern.
package iostreams

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// IOStreams provides access to standard input/output/error streams.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// -1 = unchecked, 0 = false, 1 = true
	isInputTTY  int
	isOutputTTY int
	isStderrTTY int

	progressIndicatorEnabled bool
	progressIndicator        *spinner.Spinner
	progressIndicatorMu      sync.Mutex

	// neverPrompt disables all interactive prompts (e.g. for CI).
	neverPrompt bool
}

// NewIOStreams creates an IOStreams connected to the standard streams.
func NewIOStreams() *IOStreams {
	ios := &IOStreams{
		In:          os.Stdin,
		Out:         os.Stdout,
		ErrOut:      os.Stderr,
		isInputTTY:  -1,
		isOutputTTY: -1,
		isStderrTTY: -1,
	}

	// Progress enabled when both stdout and stderr are TTYs
	if ios.IsOutputTTY() && ios.IsStderrTTY() {
		ios.progressIndicatorEnabled = true
	}

	if os.Getenv("NVMD_SPINNER_DISABLED") != "" {
		ios.progressIndicatorEnabled = false
	}

	return ios
}

// Test creates an IOStreams with buffer-backed streams for testing.
// Returns the streams plus the out and error buffers for assertions.
func Test() (*IOStreams, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	ios := &IOStreams{
		In:          &bytes.Buffer{},
		Out:         out,
		ErrOut:      errOut,
		isInputTTY:  0,
		isOutputTTY: 0,
		isStderrTTY: 0,
		neverPrompt: true,
	}
	return ios, out, errOut
}

// IsInputTTY returns true if stdin is a terminal.
func (s *IOStreams) IsInputTTY() bool {
	if s.isInputTTY == -1 {
		s.isInputTTY = boolToInt(isTerminal(s.In))
	}
	return s.isInputTTY == 1
}

// IsOutputTTY returns true if stdout is a terminal.
func (s *IOStreams) IsOutputTTY() bool {
	if s.isOutputTTY == -1 {
		s.isOutputTTY = boolToInt(isTerminal(s.Out))
	}
	return s.isOutputTTY == 1
}

// IsStderrTTY returns true if stderr is a terminal.
func (s *IOStreams) IsStderrTTY() bool {
	if s.isStderrTTY == -1 {
		s.isStderrTTY = boolToInt(isTerminal(s.ErrOut))
	}
	return s.isStderrTTY == 1
}

// IsInteractive returns true if both stdin and stdout are terminals.
func (s *IOStreams) IsInteractive() bool {
	return s.IsInputTTY() && s.IsOutputTTY() && !s.neverPrompt
}

// SetNeverPrompt disables interactive prompts.
func (s *IOStreams) SetNeverPrompt(v bool) {
	s.neverPrompt = v
}

// StartProgressIndicator starts a spinner on stderr with the given label.
// No-op when progress indication is disabled (non-TTY or env override).
func (s *IOStreams) StartProgressIndicator(label string) {
	s.progressIndicatorMu.Lock()
	defer s.progressIndicatorMu.Unlock()

	if !s.progressIndicatorEnabled || s.progressIndicator != nil {
		return
	}

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(s.ErrOut))
	if label != "" {
		sp.Suffix = " " + label
	}
	sp.Start()
	s.progressIndicator = sp
}

// UpdateProgressIndicator updates the spinner label if one is running.
func (s *IOStreams) UpdateProgressIndicator(label string) {
	s.progressIndicatorMu.Lock()
	defer s.progressIndicatorMu.Unlock()

	if s.progressIndicator != nil {
		s.progressIndicator.Suffix = " " + label
	}
}

// StopProgressIndicator stops the spinner if one is running.
func (s *IOStreams) StopProgressIndicator() {
	s.progressIndicatorMu.Lock()
	defer s.progressIndicatorMu.Unlock()

	if s.progressIndicator != nil {
		s.progressIndicator.Stop()
		s.progressIndicator = nil
	}
}

// Printf writes formatted output to Out.
func (s *IOStreams) Printf(format string, args ...any) {
	fmt.Fprintf(s.Out, format, args...)
}

// Errf writes formatted output to ErrOut.
func (s *IOStreams) Errf(format string, args ...any) {
	fmt.Fprintf(s.ErrOut, format, args...)
}

func isTerminal(stream any) bool {
	if f, ok := stream.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
