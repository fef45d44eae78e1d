package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lucidpipe/lucidc/ir"
)

var (
	inspectTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedLineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4"))

	inspectHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))
)

// inspectModel is a bubbletea tree browser over a single Lower call's
// before/after trees, letting a user step through the Fork/Acquire nodes a
// stage's async lowering introduced the same way the teacher's TUI lets a
// user step through a component's exported functions.
type inspectModel struct {
	example    string
	beforeRows []string
	afterRows  []string
	showAfter  bool
	cursor     int
	filtering  bool
	filter     textinput.Model
}

func newInspectModel(example string, before, after ir.Stmt) *inspectModel {
	ti := textinput.New()
	ti.Placeholder = "filter rows, e.g. acquire"
	ti.Prompt = "/"
	ti.Width = 40

	return &inspectModel{
		example:    example,
		beforeRows: strings.Split(strings.TrimRight(ir.Sprint(before), "\n"), "\n"),
		afterRows:  strings.Split(strings.TrimRight(ir.Sprint(after), "\n"), "\n"),
		showAfter:  true,
		filter:     ti,
	}
}

func (m *inspectModel) Init() tea.Cmd { return nil }

func (m *inspectModel) rows() []string {
	all := m.beforeRows
	if m.showAfter {
		all = m.afterRows
	}
	needle := strings.TrimSpace(m.filter.Value())
	if needle == "" {
		return all
	}
	var kept []string
	for _, row := range all {
		if strings.Contains(row, needle) {
			kept = append(kept, row)
		}
	}
	return kept
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filtering {
		switch keyMsg.String() {
		case "esc", "enter":
			m.filtering = false
			m.filter.Blur()
			m.cursor = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.cursor = 0
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}

	case "tab", "left", "right", "h", "l":
		m.showAfter = !m.showAfter
		m.cursor = 0

	case "/":
		m.filtering = true
		m.filter.Focus()
	}
	return m, nil
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(inspectTitleStyle.Render("lucidc inspector"))
	b.WriteString(" ")
	b.WriteString(m.example)
	b.WriteString("\n\n")

	pane := "before"
	if m.showAfter {
		pane = "after"
	}
	b.WriteString(paneStyle.Render(fmt.Sprintf("[%s] (tab to switch)", pane)))
	b.WriteString("\n\n")

	rows := m.rows()
	for i, row := range rows {
		if i == m.cursor {
			b.WriteString(selectedLineStyle.Render(row))
		} else {
			b.WriteString(row)
		}
		b.WriteString("\n")
	}
	if len(rows) == 0 {
		b.WriteString(inspectHelpStyle.Render("(no rows match the filter)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.filtering {
		b.WriteString(m.filter.View())
	} else {
		b.WriteString(inspectHelpStyle.Render("↑/↓ move • tab switch before/after • / filter • q quit"))
	}
	return b.String()
}

func runInspector(example string, before, after ir.Stmt) error {
	p := tea.NewProgram(newInspectModel(example, before, after), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
