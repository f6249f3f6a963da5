package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/depgraph/pkg/dag"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RootPickerModel - Interactive traversal root selection
// =============================================================================

// rootCandidate is one package offered by the root picker.
type rootCandidate struct {
	Name       string
	Deps       int
	Dependents int
}

// RootPickerModel is the bubbletea model for choosing a traversal root.
// Typing filters the list by substring.
type RootPickerModel struct {
	all      []rootCandidate
	visible  []rootCandidate
	Filter   string
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewRootPickerModel lists the packages of g, packages nothing depends on
// first, each group in node order.
func NewRootPickerModel(g *dag.Graph) RootPickerModel {
	dependents := make(map[string]int, g.NodeCount())
	for _, e := range g.Edges() {
		dependents[e.To]++
	}

	var tops, rest []rootCandidate
	for _, name := range g.Nodes() {
		c := rootCandidate{Name: name, Deps: len(g.Neighbors(name)), Dependents: dependents[name]}
		if c.Dependents == 0 {
			tops = append(tops, c)
		} else {
			rest = append(rest, c)
		}
	}

	m := RootPickerModel{all: append(tops, rest...), Height: 15}
	m.applyFilter()
	return m
}

func (m *RootPickerModel) applyFilter() {
	m.visible = nil
	needle := strings.ToLower(m.Filter)
	for _, c := range m.all {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			m.visible = append(m.visible, c)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

func (m RootPickerModel) Init() tea.Cmd {
	return nil
}

func (m RootPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case tea.KeyDown:
			if m.Cursor < len(m.visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case tea.KeyEnter:
			if len(m.visible) == 0 {
				return m, nil
			}
			m.Selected = m.visible[m.Cursor].Name
			return m, tea.Quit
		case tea.KeyBackspace:
			if m.Filter != "" {
				m.Filter = m.Filter[:len(m.Filter)-1]
				m.applyFilter()
			}
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.applyFilter()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m RootPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Root Package"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  type to filter  esc quit"))
	b.WriteString("\n")
	b.WriteString(listNormalStyle.Render("filter: ") + listSelectedStyle.Render(m.Filter))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.visible))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		c := m.visible[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, c.Name, fmt.Sprint(c.Deps), fmt.Sprint(c.Dependents)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Package", "Deps", "Used by").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col >= 2 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.visible)), len(m.visible))))
	return b.String()
}

// pickRoot runs the root picker. It returns "" when the user quits without
// choosing.
func pickRoot(g *dag.Graph) (string, error) {
	final, err := tea.NewProgram(NewRootPickerModel(g)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(RootPickerModel)
	if !ok {
		return "", nil
	}
	return m.Selected, nil
}
