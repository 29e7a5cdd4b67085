package terminal

import (
	"UCLA-Rocket-Project/NSRT/internal/commander"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case LogMsg:
		// Find currently running check and append log
		for i := range m.results {
			if m.results[i].Status == StatusRunning {
				m.results[i].Logs = append(m.results[i].Logs, string(msg))
				break
			}
		}
		return m, waitForLog(m.logChan)
	case CheckStartMsg:
		if msg.Index >= 0 && msg.Index < len(m.results) {
			m.results[msg.Index].Status = StatusRunning
		}
		return m, waitForLog(m.logChan)
	case CheckResultMsg:
		if msg.Index >= 0 && msg.Index < len(m.results) {
			if msg.Success {
				m.results[msg.Index].Status = StatusPass
			} else {
				m.results[msg.Index].Status = StatusFail
			}
		}
		return m, waitForLog(m.logChan)
	case checksDoneMsg:
		m.running = false
		return m, nil
	}

	switch m.uiState {
	case VIEW_SELECT_CHECKS:
		return m.updateSelectChecks(msg)
	case VIEW_CHECK_RUNNER:
		return m.updateCheckRunner(msg)
	}

	return m, nil
}

func (m model) updateSelectChecks(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(availableChecks)-1 {
				m.cursor++
			}
		case " ":
			m.toggleCheck(m.cursor)
		case "enter":
			if len(m.selectedChecks) == 0 {
				return m, nil
			}
			return m.startChecks()
		}
	}

	return m, nil
}

func (m model) updateCheckRunner(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "b":
			if m.running {
				return m, nil
			}
			m.uiState = VIEW_SELECT_CHECKS
			m.cursor = 0
			m.results = nil
		}
	}

	return m, nil
}

// index 0 is "Select All"
func (m *model) toggleCheck(idx int) {
	if idx == 0 {
		if _, ok := m.selectedChecks[0]; !ok {
			for i := 0; i < len(availableChecks); i++ {
				m.selectedChecks[i] = struct{}{}
			}
		} else {
			for i := 0; i < len(availableChecks); i++ {
				delete(m.selectedChecks, i)
			}
		}
		return
	}

	if _, ok := m.selectedChecks[idx]; !ok {
		m.selectedChecks[idx] = struct{}{}
	} else {
		delete(m.selectedChecks, idx)
	}
}

func (m model) startChecks() (tea.Model, tea.Cmd) {
	m.uiState = VIEW_CHECK_RUNNER
	m.cursor = 0
	m.running = true
	m.logChan = make(chan any)

	var selected []check
	m.results = []CheckResult{}
	for idx, c := range availableChecks {
		if idx == 0 {
			continue
		}
		if _, ok := m.selectedChecks[idx]; ok {
			selected = append(selected, c)
			m.results = append(m.results, CheckResult{
				Name:   c.name,
				Status: StatusPending,
				Logs:   []string{},
			})
		}
	}

	// every check runs from this one goroutine so only one command is ever
	// on the wire
	go runChecks(m.instrument, selected, m.logChan)

	return m, tea.Batch(waitForLog(m.logChan), m.spinner.Tick)
}

func runChecks(instrument *commander.Channel, checks []check, logChan chan any) {
	defer close(logChan)
	w := &chanWriter{ch: logChan}

	for idx, c := range checks {
		logChan <- CheckStartMsg{Index: idx}
		success := c.run(instrument, w)
		logChan <- CheckResultMsg{Index: idx, Success: success}
	}
}
