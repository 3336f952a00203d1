package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	identitydto "mindful/internal/modules/identity/dto"
	apperrors "mindful/internal/platform/errors"
	"mindful/internal/ui/components"
	"mindful/internal/ui/theme"
	breatheview "mindful/internal/ui/views/breathe"
	chatview "mindful/internal/ui/views/chat"
	crisisview "mindful/internal/ui/views/crisis"
	moodview "mindful/internal/ui/views/mood"
	pluginsview "mindful/internal/ui/views/plugins"
	resourcesview "mindful/internal/ui/views/resources"
)

const disclaimer = "Disclaimer: mindful is not a replacement for professional mental health care. " +
	"In a crisis, contact a healthcare provider or call 988."

type identityPort interface {
	SignIn(ctx context.Context, input identitydto.SignInInput) (identitydto.IdentityOutput, error)
	SignOut(ctx context.Context) error
	Current(ctx context.Context) (identitydto.IdentityOutput, error)
}

// Deps are the ports the shell and its tabs talk to.
type Deps struct {
	Identity   identityPort
	Chat       chatview.Port
	ReplyDelay time.Duration
	Mood       moodview.Port
	Coach      breatheview.Coach
	Breathing  breatheview.StatsPort
	Crisis     crisisview.Port
	Resources  resourcesview.Port
	// CatalogReloads may be nil when the resource catalog is not watched.
	CatalogReloads <-chan error
	Plugins        pluginsview.Port
}

type tabID int

const (
	tabChat tabID = iota
	tabMood
	tabBreathe
	tabCrisis
	tabResources
	tabPlugins
	tabCount
)

var tabLabels = [tabCount]string{
	"Chat", "Mood", "Breathe", "Crisis", "Resources", "Plugins",
}

type identityMsg struct {
	identity identitydto.IdentityOutput
	err      error
	action   string
}

type keyMap struct {
	Tab     key.Binding
	BackTab key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Breathe key.Binding
	Reset   key.Binding
	Search  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		BackTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Breathe: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause breathing")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset breathing")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search resources")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.BackTab},
		{k.Breathe, k.Reset, k.Search},
		{k.Help, k.Palette, k.Quit},
	}
}

// Model is the root Bubble Tea model. It owns tab routing, the signed-in
// identity, the help overlay and the command palette. Rendering and
// behaviour of each tab live in the view packages.
type Model struct {
	identity identityPort
	user     identitydto.IdentityOutput

	chatView      chatview.Model
	moodView      moodview.Model
	breatheView   breatheview.Model
	crisisView    crisisview.Model
	resourcesView resourcesview.Model
	pluginsView   pluginsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(deps Deps) Model {
	return Model{
		identity:      deps.Identity,
		chatView:      chatview.New(deps.Chat, deps.ReplyDelay),
		moodView:      moodview.New(deps.Mood),
		breatheView:   breatheview.New(deps.Coach, deps.Breathing),
		crisisView:    crisisview.New(deps.Crisis),
		resourcesView: resourcesview.New(deps.Resources, deps.CatalogReloads),
		pluginsView:   pluginsview.New(deps.Plugins),
		activeTab:     tabChat,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadIdentityCmd(),
		m.chatView.Init(),
		m.resourcesView.Init(),
		m.pluginsView.Init(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		return m.quit()
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		return m, m.propagateSize()

	case identityMsg:
		return m.applyIdentity(msg)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	// Async results go to the tab that asked for them, whichever is showing.
	case chatview.HistoryLoadedMsg, chatview.ReplyMsg, spinner.TickMsg:
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd
	case moodview.LoadedMsg, moodview.LoggedMsg:
		m.moodView, cmd = m.moodView.Update(msg)
		return m, cmd
	case breatheview.TickMsg, breatheview.RecordedMsg, breatheview.StatsLoadedMsg:
		m.breatheView, cmd = m.breatheView.Update(msg)
		return m, cmd
	case resourcesview.FilteredMsg, resourcesview.OpenedMsg, resourcesview.BrowsedMsg, resourcesview.CatalogReloadedMsg:
		m.resourcesView, cmd = m.resourcesView.Update(msg)
		return m, cmd
	case pluginsview.ListedMsg, pluginsview.DoctorMsg:
		m.pluginsView, cmd = m.pluginsView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		}
		// Yield to the tab while it is taking text input.
		if m.capturing() {
			break
		}
		switch msg.String() {
		case "q":
			return m.quit()
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	switch m.activeTab {
	case tabChat:
		m.chatView, cmd = m.chatView.Update(msg)
	case tabMood:
		m.moodView, cmd = m.moodView.Update(msg)
	case tabBreathe:
		m.breatheView, cmd = m.breatheView.Update(msg)
	case tabCrisis:
		m.crisisView, cmd = m.crisisView.Update(msg)
	case tabResources:
		m.resourcesView, cmd = m.resourcesView.Update(msg)
	case tabPlugins:
		m.pluginsView, cmd = m.pluginsView.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	footer := theme.Muted.Width(m.width).Render(disclaimer)

	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar) - lipgloss.Height(footer)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).MaxHeight(contentH).Render(m.activeView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar, footer)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabChat:
		return m.chatView.View()
	case tabMood:
		return m.moodView.View()
	case tabBreathe:
		return m.breatheView.View()
	case tabCrisis:
		return m.crisisView.View()
	case tabResources:
		return m.resourcesView.View()
	case tabPlugins:
		return m.pluginsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		switch {
		case i == m.activeTab:
			parts[i] = theme.Hot.Render(" " + label + " ")
		case i == tabCrisis:
			parts[i] = theme.Danger.Render(" " + label + " ")
		default:
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := "mindful  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	who := theme.Muted.Render("○ not signed in")
	if m.user.UserID != "" {
		who = theme.Calm.Render("● " + m.user.DisplayName)
	}
	left := who + "  " + m.status
	right := theme.Muted.Render("?:help  tab:switch  ::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "signin":
		if len(parts) < 3 {
			m.status = "usage: signin <email> <password>"
			return m, nil
		}
		password := strings.Join(parts[2:], " ")
		return m, m.signInCmd(parts[1], password)

	case "signout":
		return m, m.signOutCmd()

	case "mood":
		if len(parts) < 2 {
			m.status = "usage: mood <1-5> [note]"
			return m, nil
		}
		level, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "mood level must be a number from 1 to 5"
			return m, nil
		}
		m.activeTab = tabMood
		return m, m.moodView.LogCmd(level, strings.Join(parts[2:], " "))

	case "breathe:start":
		m.activeTab = tabBreathe
		return m, m.breatheView.Start()
	case "breathe:pause":
		m.activeTab = tabBreathe
		return m, m.breatheView.Pause()
	case "breathe:reset":
		m.activeTab = tabBreathe
		return m, m.breatheView.Reset()

	case "resources":
		m.activeTab = tabResources
		return m, m.resourcesView.Search(strings.Join(parts[1:], " "))

	case "crisis":
		m.activeTab = tabCrisis
		return m, nil

	case "plugins:doctor":
		m.activeTab = tabPlugins
		return m, m.pluginsView.Doctor()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m Model) applyIdentity(msg identityMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if msg.action == "load" && errors.Is(msg.err, apperrors.ErrNotSignedIn) {
			return m, m.switchUser(identitydto.IdentityOutput{})
		}
		m.status = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
		return m, nil
	}
	switch msg.action {
	case "signin":
		m.status = "welcome, " + msg.identity.DisplayName
	case "signout":
		m.status = "signed out"
	}
	return m, m.switchUser(msg.identity)
}

func (m *Model) switchUser(ident identitydto.IdentityOutput) tea.Cmd {
	m.user = ident
	return tea.Batch(
		m.chatView.SetUser(ident.UserID),
		m.moodView.SetUser(ident.UserID),
		m.breatheView.SetUser(ident.UserID),
	)
}

func (m Model) capturing() bool {
	switch m.activeTab {
	case tabChat:
		return m.chatView.Capturing()
	case tabMood:
		return m.moodView.Capturing()
	case tabResources:
		return m.resourcesView.Capturing()
	}
	return false
}

// quit resets the breathing timer so an active run is reported, and waits
// for in-flight session hand-offs before the program exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.breatheView.Shutdown()
	return m, tea.Quit
}

func (m *Model) propagateSize() tea.Cmd {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 5}
	var cmds [6]tea.Cmd
	m.chatView, cmds[0] = m.chatView.Update(sz)
	m.moodView, cmds[1] = m.moodView.Update(sz)
	m.breatheView, cmds[2] = m.breatheView.Update(sz)
	m.crisisView, cmds[3] = m.crisisView.Update(sz)
	m.resourcesView, cmds[4] = m.resourcesView.Update(sz)
	m.pluginsView, cmds[5] = m.pluginsView.Update(sz)
	return tea.Batch(cmds[:]...)
}

func (m Model) loadIdentityCmd() tea.Cmd {
	return func() tea.Msg {
		ident, err := m.identity.Current(context.Background())
		return identityMsg{identity: ident, err: err, action: "load"}
	}
}

func (m Model) signInCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		ident, err := m.identity.SignIn(context.Background(), identitydto.SignInInput{Email: email, Password: password})
		return identityMsg{identity: ident, err: err, action: "signin"}
	}
}

func (m Model) signOutCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.identity.SignOut(context.Background())
		return identityMsg{err: err, action: "signout"}
	}
}
