package crisis

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"mindful/internal/ui/theme"
)

type Port interface {
	Markdown() string
}

type Model struct {
	port     Port
	viewport viewport.Model
	width    int
	height   int
}

func New(port Port) Model {
	m := Model{port: port, viewport: viewport.New(0, 0)}
	m.render()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.viewport.Width = size.Width
		m.viewport.Height = max(size.Height-1, 1)
		m.render()
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) render() {
	source := m.port.Markdown()
	r, err := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(max(m.width-4, 40)))
	if err != nil {
		m.viewport.SetContent(source)
		return
	}
	out, err := r.Render(source)
	if err != nil {
		m.viewport.SetContent(theme.Danger.Render(err.Error()) + "\n\n" + source)
		return
	}
	m.viewport.SetContent(out)
}
