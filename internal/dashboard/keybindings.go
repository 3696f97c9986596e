package dashboard

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyRefresh    = "r"
	KeyBenchmark  = "b"
	KeyCollapse   = "esc"
	KeyToggleHelp = "?"
)

// HandleKeyMsg processes keyboard input. Returns true if the key was
// handled.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyRefresh:
		return true, m.refreshCmd()

	case KeyBenchmark:
		if m.viewMode == ViewDashboard {
			m.viewMode = ViewBenchmark
			if m.viewportReady {
				m.benchViewport.SetContent(m.renderBenchmarkContent())
				m.benchViewport.GotoTop()
			}
		} else {
			m.viewMode = ViewDashboard
		}
		return true, nil

	case KeyCollapse:
		m.viewMode = ViewDashboard
		return true, nil
	}

	// Benchmark view scrolls with the remaining keys (up/down/pgup/pgdn)
	if m.viewMode == ViewBenchmark && m.viewportReady {
		var cmd tea.Cmd
		m.benchViewport, cmd = m.benchViewport.Update(msg)
		return true, cmd
	}

	return false, nil
}
