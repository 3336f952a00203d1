package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	resourcesdto "mindful/internal/modules/resources/dto"
	"mindful/internal/ui/theme"
)

type Port interface {
	Categories() []resourcesdto.CategoryOutput
	Filter(ctx context.Context, input resourcesdto.FilterInput) ([]resourcesdto.ResourceOutput, error)
	Open(ctx context.Context, resourceID string) (resourcesdto.DocumentOutput, error)
	Browse(ctx context.Context, resourceID string) error
}

type FilteredMsg struct {
	Resources []resourcesdto.ResourceOutput
	Err       error
}

type OpenedMsg struct {
	Document resourcesdto.DocumentOutput
	Err      error
}

type BrowsedMsg struct {
	Title string
	Err   error
}

// CatalogReloadedMsg is delivered after the catalog file changed on disk.
type CatalogReloadedMsg struct{ Err error }

type resourceItem struct {
	r resourcesdto.ResourceOutput
}

func (i resourceItem) Title() string { return i.r.Title }
func (i resourceItem) Description() string {
	desc := fmt.Sprintf("%s · %s", i.r.Type, i.r.Category)
	if i.r.ReadTime != "" {
		desc += " · " + i.r.ReadTime
	}
	if i.r.HasDocument {
		desc += " · local"
	}
	return desc + "  " + i.r.Description
}
func (i resourceItem) FilterValue() string { return i.r.Title }

type Model struct {
	port       Port
	reloads    <-chan error
	categories []resourcesdto.CategoryOutput
	category   int
	search     textinput.Model
	list       list.Model
	doc        viewport.Model
	reading    bool
	docTitle   string
	status     string
	width      int
	height     int
}

// New builds the view. reloads may be nil when the catalog is not watched.
func New(port Port, reloads <-chan error) Model {
	ti := textinput.New()
	ti.Placeholder = "search title, description or tags"
	ti.Prompt = "/ "

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)
	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)

	return Model{
		port:       port,
		reloads:    reloads,
		categories: port.Categories(),
		search:     ti,
		list:       l,
		doc:        viewport.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.filterCmd(), m.waitReloadCmd())
}

func (m Model) Capturing() bool { return m.search.Focused() }

// Search applies a query from outside the view.
func (m *Model) Search(query string) tea.Cmd {
	m.reading = false
	m.search.SetValue(query)
	return m.filterCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(m.width-6, 10)
		m.list.SetSize(m.width, max(m.height-4, 3))
		m.doc.Width = m.width
		m.doc.Height = max(m.height-2, 1)

	case FilteredMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Resources))
		for i, r := range msg.Resources {
			items[i] = resourceItem{r: r}
		}
		return m, m.list.SetItems(items)

	case CatalogReloadedMsg:
		if msg.Err != nil {
			m.status = "catalog not reloaded: " + msg.Err.Error()
			return m, m.waitReloadCmd()
		}
		m.status = "catalog reloaded"
		return m, tea.Batch(m.filterCmd(), m.waitReloadCmd())

	case OpenedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.reading = true
		m.docTitle = msg.Document.Title
		m.doc.SetContent(m.renderDocument(msg.Document))
		m.doc.GotoTop()
		return m, nil

	case BrowsedMsg:
		if msg.Err != nil {
			m.status = "open failed: " + msg.Err.Error()
		} else {
			m.status = "opened " + msg.Title
		}
		return m, nil

	case tea.KeyMsg:
		if m.reading {
			if msg.String() == "esc" || msg.String() == "backspace" {
				m.reading = false
				return m, nil
			}
			var cmd tea.Cmd
			m.doc, cmd = m.doc.Update(msg)
			return m, cmd
		}
		if m.search.Focused() {
			switch msg.String() {
			case "esc", "enter":
				m.search.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, tea.Batch(cmd, m.filterCmd())
		}
		switch msg.String() {
		case "/":
			return m, m.search.Focus()
		case "]", "right":
			m.category = (m.category + 1) % len(m.categories)
			return m, m.filterCmd()
		case "[", "left":
			m.category = (m.category + len(m.categories) - 1) % len(m.categories)
			return m, m.filterCmd()
		case "enter":
			if r, ok := m.selected(); ok {
				if r.HasDocument {
					return m, m.openCmd(r.ID)
				}
				return m, m.browseCmd(r)
			}
			return m, nil
		case "o":
			if r, ok := m.selected(); ok {
				return m, m.browseCmd(r)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.reading {
		header := theme.Title.Render(m.docTitle) + theme.Muted.Render("  esc back")
		return lipgloss.JoinVertical(lipgloss.Left, header, m.doc.View())
	}
	tabs := make([]string, 0, len(m.categories))
	for i, c := range m.categories {
		if i == m.category {
			tabs = append(tabs, theme.Hot.Render(c.Name))
		} else {
			tabs = append(tabs, theme.Muted.Render(c.Name))
		}
	}
	header := m.search.View() + "\n" + strings.Join(tabs, theme.Muted.Render(" · ")) +
		theme.Muted.Render("   [/] category  enter open  o browser")
	if m.status != "" {
		header += "\n" + theme.Hot.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View())
}

func (m Model) selected() (resourcesdto.ResourceOutput, bool) {
	item, ok := m.list.SelectedItem().(resourceItem)
	if !ok {
		return resourcesdto.ResourceOutput{}, false
	}
	return item.r, true
}

func (m Model) renderDocument(doc resourcesdto.DocumentOutput) string {
	if doc.Kind != "markdown" {
		return fmt.Sprintf("%s\n\n%s", theme.Muted.Render(fmt.Sprintf("%d pages", doc.Pages)), doc.Body)
	}
	r, err := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(max(m.width-4, 40)))
	if err != nil {
		return doc.Body
	}
	out, err := r.Render(doc.Body)
	if err != nil {
		return doc.Body
	}
	return out
}

func (m Model) filterCmd() tea.Cmd {
	input := resourcesdto.FilterInput{Search: m.search.Value()}
	if len(m.categories) > 0 {
		input.Category = m.categories[m.category].ID
	}
	return func() tea.Msg {
		items, err := m.port.Filter(context.Background(), input)
		return FilteredMsg{Resources: items, Err: err}
	}
}

func (m Model) openCmd(id string) tea.Cmd {
	return func() tea.Msg {
		doc, err := m.port.Open(context.Background(), id)
		return OpenedMsg{Document: doc, Err: err}
	}
}

func (m Model) browseCmd(r resourcesdto.ResourceOutput) tea.Cmd {
	return func() tea.Msg {
		return BrowsedMsg{Title: r.Title, Err: m.port.Browse(context.Background(), r.ID)}
	}
}

func (m Model) waitReloadCmd() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	reloads := m.reloads
	return func() tea.Msg {
		err, ok := <-reloads
		if !ok {
			return nil
		}
		return CatalogReloadedMsg{Err: err}
	}
}
