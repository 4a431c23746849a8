package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/progresstwin/pkg/matrix"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StructureListModel - Interactive structure selection
// =============================================================================

// StructureListModel is the bubbletea model for interactive structure selection.
type StructureListModel struct {
	Dataset  *matrix.Dataset
	Language string
	Cursor   int
	Selected *matrix.Structure
	Height   int
	Offset   int
}

// NewStructureListModel creates a new structure list model.
func NewStructureListModel(d *matrix.Dataset, lang string) StructureListModel {
	return StructureListModel{
		Dataset:  d,
		Language: lang,
		Height:   15,
	}
}

func (m StructureListModel) Init() tea.Cmd {
	return nil
}

func (m StructureListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Dataset.Structures)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if n == 0 {
				return m, nil
			}
			st := m.Dataset.Structures[m.Cursor]
			m.Selected = &st
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m StructureListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Structure"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	structures := m.Dataset.Structures
	end := min(m.Offset+m.Height, len(structures))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		st := structures[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		counts := m.Dataset.StatusCounts(st.ID)
		rows = append(rows, []string{
			cursor,
			st.ID,
			st.Name.Get(m.Language),
			string(st.Family),
			fmt.Sprintf("%d", len(m.Dataset.RowsOf(st.ID))),
			progressBar(counts, 20),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Structure", "Name", "Family", "Rows", "Progress").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor && col != 5 {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(structures))))

	return b.String()
}
