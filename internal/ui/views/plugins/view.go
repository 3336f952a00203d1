package plugins

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plugindto "mindful/internal/modules/plugin/dto"
	"mindful/internal/ui/theme"
)

// Port is the slice of the plugin use-case this view needs.
type Port interface {
	List(ctx context.Context) ([]plugindto.PluginInfo, error)
	Doctor(ctx context.Context) ([]plugindto.DoctorResult, error)
}

// ListedMsg carries the configured responder plugins.
type ListedMsg struct {
	Plugins []plugindto.PluginInfo
	Err     error
}

// DoctorMsg carries the result of a doctor run.
type DoctorMsg struct {
	Results []plugindto.DoctorResult
	Err     error
}

type pluginItem struct{ info plugindto.PluginInfo }

func (i pluginItem) Title() string       { return i.info.Name + " " + i.info.Version }
func (i pluginItem) Description() string { return describe(i.info) }
func (i pluginItem) FilterValue() string { return i.info.Name }

func describe(info plugindto.PluginInfo) string {
	state := "disabled"
	if info.Enabled {
		state = "enabled"
	}
	if len(info.Capabilities) == 0 {
		return state
	}
	return state + " · " + strings.Join(info.Capabilities, ", ")
}

// Model is the Plugins tab: configured responders on the left, doctor
// findings on the right.
type Model struct {
	port     Port
	list     list.Model
	report   viewport.Model
	results  map[string]plugindto.DoctorResult
	checking bool
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Responder plugins"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("plugin", "plugins")

	return Model{
		port:    port,
		list:    l,
		report:  viewport.New(0, 0),
		results: map[string]plugindto.DoctorResult{},
	}
}

func (m Model) Init() tea.Cmd { return m.listCmd() }

// Checking reports whether a doctor run is in flight.
func (m Model) Checking() bool { return m.checking }

// Doctor starts a doctor run over every configured plugin.
func (m *Model) Doctor() tea.Cmd {
	if m.checking {
		return nil
	}
	m.checking = true
	m.renderReport()
	return m.doctorCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.renderReport()
		return m, nil

	case ListedMsg:
		m.err = msg.Err
		items := make([]list.Item, len(msg.Plugins))
		for i, p := range msg.Plugins {
			items[i] = pluginItem{info: p}
		}
		cmd := m.list.SetItems(items)
		m.renderReport()
		return m, cmd

	case DoctorMsg:
		m.checking = false
		m.err = msg.Err
		for _, r := range msg.Results {
			m.results[r.Name] = r
		}
		m.renderReport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "d":
			return m, m.Doctor()
		case "R":
			return m, m.listCmd()
		}
	}

	var cmd tea.Cmd
	before := m.list.Index()
	m.list, cmd = m.list.Update(msg)
	if m.list.Index() != before {
		m.renderReport()
	}
	return m, cmd
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	left := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	right := theme.Pane.Width(max(m.width-listW-4, 10)).Height(max(m.height-2, 1)).Render(m.report.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	m.list.SetSize(listW, m.height)
	m.report.Width = max(m.width-listW-6, 10)
	m.report.Height = max(m.height-2, 1)
}

func (m *Model) renderReport() {
	var sb strings.Builder
	switch {
	case m.err != nil:
		sb.WriteString(theme.Danger.Render(m.err.Error()) + "\n\n")
	case len(m.list.Items()) == 0:
		sb.WriteString(theme.Muted.Render("No plugins configured. Chat replies come from the built-in keyword responder.") + "\n")
	}

	if item, ok := m.list.SelectedItem().(pluginItem); ok {
		info := item.info
		sb.WriteString(theme.Title.Render(info.Name) + "\n")
		sb.WriteString(fmt.Sprintf("version  %s\nbinary   %s\nstatus   %s\n\n", info.Version, info.Binary, describe(info)))
		if r, ok := m.results[info.Name]; ok {
			sb.WriteString(check("binary reachable", r.BinaryReachable))
			sb.WriteString(check("checksum valid", r.ChecksumValid))
			sb.WriteString(check("handshake", r.LifecycleOK))
			if r.Error != "" {
				sb.WriteString("\n" + theme.Danger.Render(r.Error) + "\n")
			}
		} else if !m.checking {
			sb.WriteString(theme.Muted.Render("not checked yet") + "\n")
		}
	}

	if m.checking {
		sb.WriteString("\n" + theme.Calm.Render("checking plugins…") + "\n")
	} else {
		sb.WriteString("\n" + theme.Muted.Render("d: doctor  R: reload  ↑/↓: select") + "\n")
	}
	m.report.SetContent(sb.String())
}

func check(label string, ok bool) string {
	if ok {
		return theme.Calm.Render("✓ ") + label + "\n"
	}
	return theme.Danger.Render("✗ ") + label + "\n"
}

func (m Model) listCmd() tea.Cmd {
	if m.port == nil {
		return nil
	}
	return func() tea.Msg {
		plugins, err := m.port.List(context.Background())
		return ListedMsg{Plugins: plugins, Err: err}
	}
}

func (m Model) doctorCmd() tea.Cmd {
	if m.port == nil {
		return func() tea.Msg { return DoctorMsg{} }
	}
	return func() tea.Msg {
		results, err := m.port.Doctor(context.Background())
		return DoctorMsg{Results: results, Err: err}
	}
}
