// Package progress shows a spinner on stderr while a status refresh runs.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
)

// stopTimeout bounds how long Stop waits for the program to exit.
const stopTimeout = 500 * time.Millisecond

// Spinner wraps a Bubbletea spinner for simple non-interactive use
type Spinner struct {
	out     io.Writer
	profile colorprofile.Profile
	message string

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// spinnerModel is the internal Bubbletea model
type spinnerModel struct {
	spinner spinner.Model
	message string
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() tea.View {
	return tea.NewView(fmt.Sprintf("%s %s", m.spinner.View(), m.message))
}

// NewSpinner creates a spinner that draws message on out. Pass the
// profile of out so colors are downgraded the same way as other output.
func NewSpinner(out io.Writer, profile colorprofile.Profile, message string) *Spinner {
	return &Spinner{out: out, profile: profile, message: message}
}

// Start begins the spinner animation. Calling Start twice is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		return
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	// Input stays with the shell
	s.program = tea.NewProgram(spinnerModel{spinner: sp, message: s.message},
		tea.WithOutput(s.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
		tea.WithColorProfile(s.profile),
	)
	s.done = make(chan struct{})

	go func(p *tea.Program, done chan struct{}) {
		_, _ = p.Run()
		close(done)
	}(s.program, s.done)
}

// Stop stops the spinner and clears its line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	p, done := s.program, s.done
	s.program = nil
	s.mu.Unlock()

	if p == nil {
		return
	}
	p.Quit()

	select {
	case <-done:
	case <-time.After(stopTimeout):
	}
	fmt.Fprint(s.out, "\r\033[K")
}
