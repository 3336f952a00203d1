package breathe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	breathingdto "mindful/internal/modules/breathing/dto"
	"mindful/internal/ui/theme"
)

// Coach is the timer surface this view drives.
type Coach interface {
	SetIdentity(userID string) breathingdto.Handoff
	Start()
	Tick()
	Pause() breathingdto.Handoff
	Reset() breathingdto.Handoff
	Snapshot() breathingdto.TimerSnapshot
	Wait()
}

type StatsPort interface {
	Stats(ctx context.Context, userID string) (breathingdto.StatsOutput, error)
}

// TickMsg carries the generation of the run that scheduled it. Ticks from an
// earlier generation are dropped so a pause followed by a quick resume never
// doubles the cadence.
type TickMsg struct{ Gen int }

type RecordedMsg struct {
	Summary breathingdto.SummaryOutput
	Err     error
}

type StatsLoadedMsg struct {
	Stats breathingdto.StatsOutput
	Err   error
}

type Model struct {
	coach    Coach
	stats    StatsPort
	interval time.Duration
	userID   string
	gen      int
	bar      progress.Model
	lifetime breathingdto.StatsOutput
	status   string
	width    int
}

func New(coach Coach, stats StatsPort) Model {
	bar := progress.New(progress.WithScaledGradient(string(theme.Sapphire), string(theme.Green)), progress.WithoutPercentage())
	return Model{coach: coach, stats: stats, interval: time.Second, bar: bar}
}

func (m Model) Init() tea.Cmd { return m.loadStatsCmd() }

// SetUser switches the signed-in user. A run in progress is closed under the
// previous user before the switch.
func (m *Model) SetUser(userID string) tea.Cmd {
	if userID == m.userID {
		return nil
	}
	m.gen++
	h := m.coach.SetIdentity(userID)
	m.userID = userID
	m.lifetime = breathingdto.StatsOutput{}
	return tea.Batch(m.handoffCmd(h), m.loadStatsCmd())
}

func (m *Model) Start() tea.Cmd {
	if m.coach.Snapshot().Running {
		return nil
	}
	m.coach.Start()
	m.gen++
	m.status = ""
	return m.tickCmd()
}

func (m *Model) Pause() tea.Cmd {
	m.gen++
	return m.handoffCmd(m.coach.Pause())
}

func (m *Model) Reset() tea.Cmd {
	m.gen++
	return m.handoffCmd(m.coach.Reset())
}

// Shutdown reports any active run and waits for outstanding hand-offs.
func (m *Model) Shutdown() {
	m.gen++
	m.coach.Reset()
	m.coach.Wait()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(max(m.width-8, 10), 60)

	case TickMsg:
		if msg.Gen != m.gen || !m.coach.Snapshot().Running {
			return m, nil
		}
		m.coach.Tick()
		return m, m.tickCmd()

	case RecordedMsg:
		if msg.Err != nil {
			m.status = "session not saved: " + msg.Err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("saved %d cycles, %d min", msg.Summary.CyclesCompleted, msg.Summary.DurationMinutes)
		return m, m.loadStatsCmd()

	case StatsLoadedMsg:
		if msg.Err != nil {
			m.status = "stats: " + msg.Err.Error()
			return m, nil
		}
		m.lifetime = msg.Stats

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "enter":
			if m.coach.Snapshot().Running {
				return m, m.Pause()
			}
			return m, m.Start()
		case "r":
			return m, m.Reset()
		}
	}
	return m, nil
}

func (m Model) View() string {
	snap := m.coach.Snapshot()
	accent := lipgloss.NewStyle().Foreground(theme.PhaseColor(snap.Phase)).Bold(true)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Breathing exercise") + theme.Muted.Render("  4-4-6 pattern") + "\n\n")
	b.WriteString(accent.Render(snap.Label) + "  " + accent.Render(fmt.Sprintf("%ds", snap.SecondsLeft)) + "\n")
	b.WriteString(theme.Muted.Render(snap.Guidance) + "\n\n")
	b.WriteString(m.bar.ViewAs(snap.Progress) + "\n\n")

	state := "paused"
	if snap.Running {
		state = "running"
	}
	fmt.Fprintf(&b, "%s  cycles this session %d  elapsed %s\n", state, snap.CyclesThisRun, snap.Elapsed.Truncate(time.Second))
	if m.userID != "" {
		b.WriteString(theme.Calm.Render(fmt.Sprintf("Lifetime: %d cycles across %d sessions (%d min)", m.lifetime.TotalCycles, m.lifetime.Sessions, m.lifetime.TotalMinutes)) + "\n")
	} else {
		b.WriteString(theme.Muted.Render("Not signed in: sessions are not recorded.") + "\n")
	}
	b.WriteString(theme.Muted.Render("space start/pause  r reset") + "\n")
	if m.status != "" {
		b.WriteString(theme.Hot.Render(m.status) + "\n")
	}
	return b.String()
}

func (m Model) tickCmd() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return TickMsg{Gen: gen} })
}

func (m Model) handoffCmd(h breathingdto.Handoff) tea.Cmd {
	if h.Done == nil {
		return nil
	}
	return func() tea.Msg {
		return RecordedMsg{Summary: h.Summary, Err: <-h.Done}
	}
}

func (m Model) loadStatsCmd() tea.Cmd {
	userID := m.userID
	if userID == "" || m.stats == nil {
		return nil
	}
	return func() tea.Msg {
		stats, err := m.stats.Stats(context.Background(), userID)
		return StatsLoadedMsg{Stats: stats, Err: err}
	}
}
