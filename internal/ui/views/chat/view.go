package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	chatdto "mindful/internal/modules/chat/dto"
	"mindful/internal/ui/theme"
)

type Port interface {
	Send(ctx context.Context, input chatdto.SendInput) (chatdto.SendOutput, error)
	History(ctx context.Context, userID string) ([]chatdto.MessageOutput, error)
}

type HistoryLoadedMsg struct {
	Messages []chatdto.MessageOutput
	Err      error
}

// ReplyMsg arrives once the reply is ready and the typing delay has passed.
type ReplyMsg struct {
	Out chatdto.SendOutput
	Err error
}

type Model struct {
	port     Port
	userID   string
	delay    time.Duration
	messages []chatdto.MessageOutput
	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	typing   bool
	notice   string
	width    int
	height   int
}

func New(port Port, delay time.Duration) Model {
	ta := textarea.New()
	ta.Placeholder = "Share what's on your mind…"
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Ellipsis
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:     port,
		delay:    delay,
		input:    ta,
		viewport: viewport.New(0, 0),
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadHistoryCmd())
}

// SetUser switches the conversation to another identity and reloads it.
func (m *Model) SetUser(userID string) tea.Cmd {
	m.userID = userID
	m.messages = nil
	m.notice = ""
	return m.loadHistoryCmd()
}

// Capturing reports whether keystrokes belong to the message box.
func (m Model) Capturing() bool { return m.input.Focused() }

// Focus gives the message box the keyboard again.
func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refresh()

	case HistoryLoadedMsg:
		if msg.Err != nil {
			m.notice = "history: " + msg.Err.Error()
			return m, nil
		}
		m.messages = msg.Messages
		m.refresh()

	case ReplyMsg:
		m.typing = false
		if msg.Err != nil {
			m.notice = msg.Err.Error()
			m.refresh()
			return m, nil
		}
		m.messages = append(m.messages, msg.Out.Reply)
		m.notice = ""
		if m.userID != "" && !msg.Out.Stored {
			m.notice = "this conversation could not be saved"
		}
		m.refresh()

	case spinner.TickMsg:
		if m.typing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.refresh()
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.input.Blur()
			return m, nil
		case "enter":
			if !m.input.Focused() {
				return m, m.input.Focus()
			}
			return m.send()
		case "i":
			if !m.input.Focused() {
				return m, m.input.Focus()
			}
		}
	}

	var cmd tea.Cmd
	if m.input.Focused() {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewport.View() + "\n")
	if m.notice != "" {
		b.WriteString(theme.Hot.Render(m.notice) + "\n")
	}
	b.WriteString(theme.Pane.Width(max(m.width-2, 10)).Render(m.input.View()))
	return b.String()
}

func (m Model) send() (Model, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" || m.typing {
		return m, nil
	}
	m.input.Reset()
	m.typing = true
	m.notice = ""
	m.messages = append(m.messages, chatdto.MessageOutput{Content: content, FromUser: true, CreatedAt: time.Now()})
	m.refresh()
	return m, tea.Batch(m.sendCmd(content), m.spinner.Tick)
}

func (m *Model) resize() {
	m.input.SetWidth(max(m.width-6, 10))
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-6, 1)
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

func (m Model) renderMessages() string {
	width := max(m.width*3/4, 20)
	lines := make([]string, 0, len(m.messages)+1)
	for _, msg := range m.messages {
		stamp := theme.Muted.Render(msg.CreatedAt.Format("15:04"))
		if msg.FromUser {
			bubble := theme.UserBubble.MaxWidth(width).Render(msg.Content)
			lines = append(lines, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, bubble+"\n"+stamp))
			continue
		}
		lines = append(lines, theme.BotBubble.MaxWidth(width).Render(msg.Content)+"\n"+stamp)
	}
	if m.typing {
		lines = append(lines, theme.BotBubble.Render("typing"+m.spinner.View()))
	}
	return strings.Join(lines, "\n\n")
}

func (m Model) loadHistoryCmd() tea.Cmd {
	userID := m.userID
	return func() tea.Msg {
		msgs, err := m.port.History(context.Background(), userID)
		return HistoryLoadedMsg{Messages: msgs, Err: err}
	}
}

func (m Model) sendCmd(content string) tea.Cmd {
	userID, delay := m.userID, m.delay
	return func() tea.Msg {
		started := time.Now()
		out, err := m.port.Send(context.Background(), chatdto.SendInput{UserID: userID, Content: content})
		if wait := delay - time.Since(started); err == nil && wait > 0 {
			time.Sleep(wait)
		}
		return ReplyMsg{Out: out, Err: err}
	}
}
