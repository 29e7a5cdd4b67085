package terminal

import (
	"fmt"
	"strings"

	"UCLA-Rocket-Project/NSRT/internal/commander"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type UIState int

const (
	VIEW_SELECT_CHECKS UIState = iota
	VIEW_CHECK_RUNNER
)

type CheckStatus int

const (
	StatusPending CheckStatus = iota
	StatusRunning
	StatusPass
	StatusFail
)

type CheckResult struct {
	Name   string
	Status CheckStatus
	Logs   []string
}

type LogMsg string

type CheckStartMsg struct {
	Index int
}

type CheckResultMsg struct {
	Index   int
	Success bool
}

type checksDoneMsg struct{}

// chanWriter hands every log line written by a check to the TUI
type chanWriter struct {
	ch chan any
}

func (w *chanWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		w.ch <- LogMsg(line)
	}
	return len(p), nil
}

func waitForLog(ch chan any) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return checksDoneMsg{}
		}
		return msg
	}
}

// defines the internal state of the TUI
type model struct {
	// global internal state
	uiState UIState
	cursor  int
	err     error

	// instrument
	portName   string
	instrument *commander.Channel

	// select checks internal state
	selectedChecks map[int]struct{}

	// check runner internal state
	results []CheckResult
	logChan chan any
	running bool
	spinner spinner.Model
}

func StartApplication(instrument *commander.Channel, portName string, logger *zap.Logger) error {
	if _, err := tea.NewProgram(initialModel(instrument, portName)).Run(); err != nil {
		logger.Error("Error running TUI program", zap.Error(err))
		return err
	}
	return nil
}

// TUI tries to use functional programming paradigms, so you return a new model everytime, rather
// then modify a pointer
func initialModel(instrument *commander.Channel, portName string) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = runningStyle

	return model{
		uiState:        VIEW_SELECT_CHECKS,
		portName:       portName,
		instrument:     instrument,
		selectedChecks: make(map[int]struct{}),
		spinner:        s,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("NSRT mk3 Dev"))
	b.WriteString(mutedStyle.Render(" on " + m.portName))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error %v", m.err)))
		b.WriteString("\n\n")
	}

	switch m.uiState {
	case VIEW_SELECT_CHECKS:
		for i, c := range availableChecks {
			_, checked := m.selectedChecks[i]
			name := normalItemStyle.Render(c.name)
			if i == m.cursor {
				name = selectedItemStyle.Render(c.name)
			}
			fmt.Fprintf(&b, "%s %s %s\n", renderCursor(i == m.cursor), renderCheckbox(checked), name)
		}
		b.WriteString("\n")
		b.WriteString(renderHint("space: toggle • enter: run • q: quit"))
	case VIEW_CHECK_RUNNER:
		for _, r := range m.results {
			fmt.Fprintf(&b, "%s %s\n", renderStatusIcon(r.Status, m.spinner.View()), renderCheckName(r.Name, r.Status))
			for _, line := range r.Logs {
				b.WriteString(logIndent + logContentStyle.Render(line) + "\n")
			}
		}
		b.WriteString("\n")
		if m.running {
			b.WriteString(renderHint("running checks • q: quit"))
		} else {
			b.WriteString(renderHint("esc: back to checks • q: quit"))
		}
	}

	return containerStyle.Render(b.String())
}
