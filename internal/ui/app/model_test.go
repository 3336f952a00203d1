package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	breathingdto "mindful/internal/modules/breathing/dto"
	chatdto "mindful/internal/modules/chat/dto"
	identitydto "mindful/internal/modules/identity/dto"
	mooddto "mindful/internal/modules/mood/dto"
	resourcesdto "mindful/internal/modules/resources/dto"
	apperrors "mindful/internal/platform/errors"
	"mindful/internal/ui/components"
)

type stubIdentity struct{ signedIn bool }

func (s *stubIdentity) SignIn(_ context.Context, in identitydto.SignInInput) (identitydto.IdentityOutput, error) {
	if in.Password != "secret-pass" {
		return identitydto.IdentityOutput{}, apperrors.ErrInvalidCredentials
	}
	s.signedIn = true
	return identitydto.IdentityOutput{UserID: "u1", Email: in.Email, DisplayName: "Sam"}, nil
}

func (s *stubIdentity) SignOut(context.Context) error {
	s.signedIn = false
	return nil
}

func (s *stubIdentity) Current(context.Context) (identitydto.IdentityOutput, error) {
	return identitydto.IdentityOutput{}, apperrors.ErrNotSignedIn
}

type stubChat struct{}

func (stubChat) Send(context.Context, chatdto.SendInput) (chatdto.SendOutput, error) {
	return chatdto.SendOutput{}, nil
}
func (stubChat) History(context.Context, string) ([]chatdto.MessageOutput, error) { return nil, nil }

type stubMood struct{ logged []mooddto.LogInput }

func (s *stubMood) Log(_ context.Context, in mooddto.LogInput) (mooddto.EntryOutput, error) {
	s.logged = append(s.logged, in)
	return mooddto.EntryOutput{Level: in.Level}, nil
}
func (s *stubMood) Recent(context.Context, string, int) ([]mooddto.EntryOutput, error) {
	return nil, nil
}
func (s *stubMood) Stats(context.Context, string) (mooddto.StatsOutput, error) {
	return mooddto.StatsOutput{}, nil
}

type stubCoach struct {
	userID string
	resets int
	waited bool
}

func (c *stubCoach) SetIdentity(userID string) breathingdto.Handoff {
	c.userID = userID
	return breathingdto.Handoff{}
}

func (c *stubCoach) Start()                               {}
func (c *stubCoach) Tick()                                {}
func (c *stubCoach) Pause() breathingdto.Handoff          { return breathingdto.Handoff{} }
func (c *stubCoach) Reset() breathingdto.Handoff          { c.resets++; return breathingdto.Handoff{} }
func (c *stubCoach) Snapshot() breathingdto.TimerSnapshot { return breathingdto.TimerSnapshot{} }
func (c *stubCoach) Wait()                                { c.waited = true }

type stubCrisis struct{}

func (stubCrisis) Markdown() string { return "# Crisis Support\n" }

type stubResources struct{}

func (stubResources) Categories() []resourcesdto.CategoryOutput {
	return []resourcesdto.CategoryOutput{{ID: "all", Name: "All"}}
}
func (stubResources) Filter(context.Context, resourcesdto.FilterInput) ([]resourcesdto.ResourceOutput, error) {
	return nil, nil
}
func (stubResources) Open(context.Context, string) (resourcesdto.DocumentOutput, error) {
	return resourcesdto.DocumentOutput{}, nil
}
func (stubResources) Browse(context.Context, string) error { return nil }

func newTestModel() (Model, *stubIdentity, *stubMood, *stubCoach) {
	ident, mood, coach := &stubIdentity{}, &stubMood{}, &stubCoach{}
	m := NewModel(Deps{
		Identity:  ident,
		Chat:      stubChat{},
		Mood:      mood,
		Coach:     coach,
		Crisis:    stubCrisis{},
		Resources: stubResources{},
	})
	return m, ident, mood, coach
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestSignInThroughPaletteUpdatesTabs(t *testing.T) {
	m, ident, _, coach := newTestModel()

	m, cmd := update(t, m, components.PaletteSubmitMsg{Input: "signin sam@example.com secret-pass"})
	if cmd == nil {
		t.Fatalf("expected sign-in command")
	}
	m, _ = update(t, m, cmd())
	if !ident.signedIn || m.user.UserID != "u1" {
		t.Fatalf("identity not applied: %#v", m.user)
	}
	if coach.userID != "u1" {
		t.Fatalf("breathing coach still tracking %q", coach.userID)
	}

	m, cmd = update(t, m, components.PaletteSubmitMsg{Input: "signout"})
	m, _ = update(t, m, cmd())
	if m.user.UserID != "" || coach.userID != "" {
		t.Fatalf("sign-out did not clear identity")
	}
}

func TestFailedSignInKeepsAnonymousSession(t *testing.T) {
	m, _, _, _ := newTestModel()
	m, cmd := update(t, m, components.PaletteSubmitMsg{Input: "signin sam@example.com nope"})
	m, _ = update(t, m, cmd())
	if m.user.UserID != "" {
		t.Fatalf("failed sign-in set a user")
	}
	if m.status == "ready" {
		t.Fatalf("expected failure in status bar")
	}
}

func TestMoodPaletteCommand(t *testing.T) {
	m, _, mood, _ := newTestModel()
	m, cmd := update(t, m, components.PaletteSubmitMsg{Input: "mood 4 slept well"})
	if m.activeTab != tabMood || cmd == nil {
		t.Fatalf("mood command did not switch tab")
	}
	cmd()
	if len(mood.logged) != 1 || mood.logged[0].Level != 4 || mood.logged[0].Note != "slept well" {
		t.Fatalf("unexpected log: %#v", mood.logged)
	}

	m, _ = update(t, m, components.PaletteSubmitMsg{Input: "mood great"})
	if m.status == "ready" {
		t.Fatalf("expected usage error for non-numeric level")
	}
}

func TestTabCyclingAndQuit(t *testing.T) {
	m, _, _, coach := newTestModel()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.activeTab != tabPlugins {
		t.Fatalf("shift+tab should wrap to the last tab, got %d", m.activeTab)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != tabChat {
		t.Fatalf("tab should wrap to chat, got %d", m.activeTab)
	}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if coach.resets != 1 || !coach.waited {
		t.Fatalf("quit must reset the timer and wait for hand-offs")
	}
}
