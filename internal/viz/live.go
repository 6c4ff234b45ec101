package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/floq/internal/optim"
)

// ProgressMsg carries one accepted optimizer step into the live view.
type ProgressMsg optim.Progress

// DoneMsg signals the end of the run; Err is nil on success.
type DoneMsg struct {
	Err error
}

const liveHistoryCap = 2000

// Model is the live optimization view: current iteration, current distance,
// and a scrolling convergence graph. Feed it with Program.Send from the
// goroutine driving the optimizer.
type Model struct {
	history []float64
	iter    int
	f       float64
	done    bool
	err     error
	width   int
}

func NewModel() Model {
	return Model{history: make([]float64, 0, liveHistoryCap), width: 80}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.iter = msg.Iter
		m.f = msg.F
		if len(m.history) < liveHistoryCap {
			m.history = append(m.history, msg.F)
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.done {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("floq optimize"))
	b.WriteString("\n")

	b.WriteString(LabelStyle.Render("iteration"))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%d", m.iter)))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("distance"))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%.3e", m.f)))
	b.WriteString("\n")

	if len(m.history) > 1 {
		b.WriteString(GraphStyle.Render(Convergence(m.history, 10)))
		b.WriteString("\n")
	}

	switch {
	case m.done && m.err != nil:
		b.WriteString(BadStyle.Render("failed: " + m.err.Error()))
		b.WriteString("\n")
	case m.done:
		b.WriteString(GoodStyle.Render("done"))
		b.WriteString("\n")
	}

	if m.done {
		b.WriteString(HelpStyle.Render("enter/q: quit"))
	} else {
		b.WriteString(HelpStyle.Render("q: abort"))
	}
	b.WriteString("\n")

	return b.String()
}
