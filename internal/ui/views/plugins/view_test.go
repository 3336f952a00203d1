package plugins

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	plugindto "mindful/internal/modules/plugin/dto"
)

type stubPort struct {
	plugins []plugindto.PluginInfo
	results []plugindto.DoctorResult
	err     error
	doctors int
}

func (s *stubPort) List(context.Context) ([]plugindto.PluginInfo, error) {
	return s.plugins, nil
}

func (s *stubPort) Doctor(context.Context) ([]plugindto.DoctorResult, error) {
	s.doctors++
	return s.results, s.err
}

func TestListThenDoctorRendersChecks(t *testing.T) {
	port := &stubPort{
		plugins: []plugindto.PluginInfo{{Name: "echo", Version: "0.1.0", Enabled: true, Binary: "/bin/echo-plugin", Capabilities: []string{"respond"}}},
		results: []plugindto.DoctorResult{{Name: "echo", BinaryReachable: true, ChecksumValid: true, LifecycleOK: false, Error: "handshake timed out"}},
	}
	m := New(port)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})

	msg := m.Init()()
	m, _ = m.Update(msg)
	if len(m.list.Items()) != 1 {
		t.Fatalf("expected one plugin, got %d", len(m.list.Items()))
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if cmd == nil || !m.Checking() {
		t.Fatalf("d should start a doctor run")
	}
	if again := m.Doctor(); again != nil {
		t.Fatalf("a second doctor run must not start while one is in flight")
	}
	m, _ = m.Update(cmd())
	if m.Checking() || port.doctors != 1 {
		t.Fatalf("doctor should finish once, checking=%v runs=%d", m.Checking(), port.doctors)
	}

	view := m.report.View()
	for _, want := range []string{"echo", "binary reachable", "handshake timed out"} {
		if !strings.Contains(view, want) {
			t.Fatalf("report missing %q:\n%s", want, view)
		}
	}
}

func TestEmptyAndFailingDoctor(t *testing.T) {
	port := &stubPort{err: errors.New("manifest unreadable")}
	m := New(port)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	m, _ = m.Update(m.Init()())
	if !strings.Contains(m.report.View(), "No plugins configured") {
		t.Fatalf("expected empty-state hint, got:\n%s", m.report.View())
	}

	cmd := m.Doctor()
	m, _ = m.Update(cmd())
	if !strings.Contains(m.report.View(), "manifest unreadable") {
		t.Fatalf("expected doctor error in report, got:\n%s", m.report.View())
	}
}

func TestNilPortIsInert(t *testing.T) {
	m := New(nil)
	if m.Init() != nil {
		t.Fatalf("nil port should not schedule a list")
	}
	cmd := m.Doctor()
	m, _ = m.Update(cmd())
	if m.Checking() {
		t.Fatalf("doctor should settle without a port")
	}
}
