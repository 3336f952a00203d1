package mood

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	mooddto "mindful/internal/modules/mood/dto"
	"mindful/internal/ui/theme"
)

const recentLimit = 5

type Port interface {
	Log(ctx context.Context, input mooddto.LogInput) (mooddto.EntryOutput, error)
	Recent(ctx context.Context, userID string, limit int) ([]mooddto.EntryOutput, error)
	Stats(ctx context.Context, userID string) (mooddto.StatsOutput, error)
}

type LoadedMsg struct {
	Recent []mooddto.EntryOutput
	Stats  mooddto.StatsOutput
	Err    error
}

type LoggedMsg struct {
	Entry mooddto.EntryOutput
	Err   error
}

var levels = []struct {
	value int
	label string
	face  string
}{
	{1, "Very Low", "😢"},
	{2, "Low", "😕"},
	{3, "Okay", "😐"},
	{4, "Good", "🙂"},
	{5, "Excellent", "😄"},
}

type Model struct {
	port     Port
	userID   string
	selected int
	note     textinput.Model
	recent   []mooddto.EntryOutput
	stats    mooddto.StatsOutput
	status   string
	width    int
	height   int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "How are you feeling? (optional)"
	ti.CharLimit = 1000
	return Model{port: port, selected: 3, note: ti}
}

func (m Model) Init() tea.Cmd { return m.loadCmd() }

func (m *Model) SetUser(userID string) tea.Cmd {
	m.userID = userID
	m.recent = nil
	m.stats = mooddto.StatsOutput{}
	m.status = ""
	return m.loadCmd()
}

func (m Model) Capturing() bool { return m.note.Focused() }

// LogCmd records a check-in without going through the form.
func (m Model) LogCmd(level int, note string) tea.Cmd {
	userID := m.userID
	return func() tea.Msg {
		entry, err := m.port.Log(context.Background(), mooddto.LogInput{UserID: userID, Level: level, Note: note})
		return LoggedMsg{Entry: entry, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.note.Width = max(m.width-8, 10)

	case LoadedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.recent = msg.Recent
		m.stats = msg.Stats

	case LoggedMsg:
		if msg.Err != nil {
			m.status = "not saved: " + msg.Err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("logged %s", msg.Entry.LevelLabel)
		m.note.Reset()
		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.note.Focused() {
			switch msg.String() {
			case "esc":
				m.note.Blur()
				return m, nil
			case "enter":
				m.note.Blur()
				return m, m.LogCmd(m.selected, m.note.Value())
			}
			var cmd tea.Cmd
			m.note, cmd = m.note.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "1", "2", "3", "4", "5":
			m.selected = int(msg.String()[0] - '0')
		case "left", "h":
			m.selected = max(m.selected-1, 1)
		case "right", "l":
			m.selected = min(m.selected+1, 5)
		case "n":
			return m, m.note.Focus()
		case "enter":
			return m, m.LogCmd(m.selected, m.note.Value())
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("How are you feeling today?") + "\n\n")

	cells := make([]string, 0, len(levels))
	for _, l := range levels {
		cell := fmt.Sprintf(" %s %d %s ", l.face, l.value, l.label)
		if l.value == m.selected {
			cells = append(cells, lipgloss.NewStyle().Foreground(theme.Base).Background(theme.Teal).Bold(true).Render(cell))
		} else {
			cells = append(cells, theme.Muted.Render(cell))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n\n")
	b.WriteString(m.note.View() + "\n")
	b.WriteString(theme.Muted.Render("1-5/←→ level  n note  enter log") + "\n")
	if m.status != "" {
		b.WriteString(theme.Hot.Render(m.status) + "\n")
	}

	b.WriteString("\n" + theme.Title.Render("Recent check-ins") + "\n")
	if m.userID == "" {
		b.WriteString(theme.Muted.Render("Sign in (: signin <email> <password>) to track your mood.") + "\n")
		return b.String()
	}
	if len(m.recent) == 0 {
		b.WriteString(theme.Muted.Render("No entries yet.") + "\n")
	}
	for _, e := range m.recent {
		line := fmt.Sprintf("%s  %-9s", e.CreatedAt.Local().Format("Jan 2 15:04"), e.LevelLabel)
		if e.Note != "" {
			line += "  " + e.Note
		}
		b.WriteString(line + "\n")
	}
	if m.stats.Count > 0 {
		b.WriteString("\n" + theme.Calm.Render(fmt.Sprintf("Average mood %.1f over %d check-ins", m.stats.Average, m.stats.Count)) + "\n")
	}
	return b.String()
}

func (m Model) loadCmd() tea.Cmd {
	userID := m.userID
	if userID == "" {
		return nil
	}
	return func() tea.Msg {
		var out LoadedMsg
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			recent, err := m.port.Recent(ctx, userID, recentLimit)
			out.Recent = recent
			return err
		})
		g.Go(func() error {
			stats, err := m.port.Stats(ctx, userID)
			out.Stats = stats
			return err
		})
		out.Err = g.Wait()
		return out
	}
}
