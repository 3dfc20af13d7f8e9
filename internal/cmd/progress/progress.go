// Package progress shows a spinner on the terminal while a slow operation,
// such as the first catalog build, runs.
package progress

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/agentstation/litmap/pkg/logging"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
)

// Enabled reports whether out is a terminal a spinner can draw on.
func Enabled(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run calls fn, drawing a spinner with title on out until it returns. When
// out is not a terminal fn runs without any output.
func Run(ctx context.Context, out io.Writer, title string, fn func(context.Context) error) error {
	if !Enabled(out) {
		return fn(ctx)
	}

	p := tea.NewProgram(newModel(title),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithContext(ctx),
	)

	done := make(chan error, 1)
	go func() {
		err := fn(ctx)
		done <- err
		p.Send(doneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logging.Debug().Err(err).Msg("Progress display failed")
	}
	return <-done
}

type doneMsg struct {
	err error
}

type model struct {
	spinner spinner.Model
	title   string
	done    bool
	err     error
}

func newModel(title string) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return model{spinner: sp, title: title}
}

// Init starts the spinner.
func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update advances the spinner until the operation reports back.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the spinner line, or nothing once finished.
func (m model) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + titleStyle.Render(m.title)
}
