package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"mindful/internal/modules/breathing/service"
	"mindful/internal/platform/clock"
)

func newManualClock() *clock.Manual {
	return clock.NewManual(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
}

type recordedSession struct {
	userID  string
	cycles  int
	minutes int
}

type fakeRecorder struct {
	mu      sync.Mutex
	calls   []recordedSession
	runs    []string
	err     error
	release chan struct{}
}

func (f *fakeRecorder) RecordBreathingRun(_ context.Context, runID, userID string, cycles, minutes int) error {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedSession{userID: userID, cycles: cycles, minutes: minutes})
	f.runs = append(f.runs, runID)
	return f.err
}

func (f *fakeRecorder) runIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.runs...)
}

func (f *fakeRecorder) recorded() []recordedSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedSession(nil), f.calls...)
}

func runSeconds(clk *clock.Manual, coach *service.Coach, n int) {
	for i := 0; i < n; i++ {
		clk.Advance(time.Second)
		coach.Tick()
	}
}

func TestCoachPauseHandsOffSummary(t *testing.T) {
	clk := newManualClock()
	rec := &fakeRecorder{}
	coach := service.NewCoach(clk, rec, zap.NewNop(), "user-1")

	coach.Start()
	runSeconds(clk, coach, 3*14)
	clk.Advance(48 * time.Second)
	handoff := coach.Pause()
	require.True(t, handoff.Emitted)
	require.Equal(t, 3, handoff.Summary.CyclesCompleted)
	require.Equal(t, 2, handoff.Summary.DurationMinutes)
	require.NoError(t, <-handoff.Done)
	coach.Wait()

	require.Equal(t, []recordedSession{{userID: "user-1", cycles: 3, minutes: 2}}, rec.recorded())
	snap := coach.Snapshot()
	require.False(t, snap.Running)
	require.Equal(t, 3, snap.CyclesThisRun)
}

func TestCoachDoesNotWaitForRecorder(t *testing.T) {
	clk := newManualClock()
	rec := &fakeRecorder{release: make(chan struct{})}
	coach := service.NewCoach(clk, rec, zap.NewNop(), "user-1")

	coach.Start()
	runSeconds(clk, coach, 10)
	handoff := coach.Pause()
	require.True(t, handoff.Emitted)

	// The recorder is still blocked, yet the timer accepts the next start.
	coach.Start()
	runSeconds(clk, coach, 1)
	require.True(t, coach.Snapshot().Running)
	require.Empty(t, rec.recorded())

	close(rec.release)
	require.NoError(t, <-handoff.Done)
	coach.Reset()
	coach.Wait()
	require.Len(t, rec.recorded(), 2)
}

func TestCoachLogsRecorderFailureWithoutRollback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	clk := newManualClock()
	rec := &fakeRecorder{err: errors.New("table unavailable")}
	coach := service.NewCoach(clk, rec, zap.New(core), "user-1")

	coach.Start()
	runSeconds(clk, coach, 20)
	handoff := coach.Pause()
	require.EqualError(t, <-handoff.Done, "table unavailable")
	coach.Wait()

	snap := coach.Snapshot()
	require.Equal(t, 1, snap.CyclesThisRun)
	require.Equal(t, "hold", snap.Phase)
	require.Equal(t, 2, snap.SecondsLeft)

	entries := logs.FilterMessage("breathing session not recorded").All()
	require.Len(t, entries, 1)
	require.Equal(t, "user-1", entries[0].ContextMap()["user_id"])
}

func TestCoachWithoutIdentityKeepsTimingButSkipsAccounting(t *testing.T) {
	clk := newManualClock()
	rec := &fakeRecorder{}
	coach := service.NewCoach(clk, rec, nil, "")

	coach.Start()
	runSeconds(clk, coach, 14)
	snap := coach.Snapshot()
	require.False(t, snap.Tracking)
	require.Equal(t, 1, snap.CyclesThisRun)

	handoff := coach.Reset()
	require.False(t, handoff.Emitted)
	require.Nil(t, handoff.Done)
	coach.Wait()
	require.Empty(t, rec.recorded())

	coach.SetIdentity("user-2")
	require.True(t, coach.Snapshot().Tracking)
	coach.Start()
	runSeconds(clk, coach, 5)
	handoff = coach.Reset()
	require.True(t, handoff.Emitted)
	require.Equal(t, "user-2", handoff.Summary.UserID)
	coach.Wait()
	require.Equal(t, []recordedSession{{userID: "user-2", cycles: 0, minutes: 1}}, rec.recorded())
}

func TestCoachResetRestoresInitialSnapshot(t *testing.T) {
	clk := newManualClock()
	coach := service.NewCoach(clk, &fakeRecorder{}, nil, "user-1")
	initial := coach.Snapshot()

	coach.Start()
	runSeconds(clk, coach, 17)
	coach.Reset()
	coach.Wait()
	require.Equal(t, initial, coach.Snapshot())
}

func TestCoachSummariesOfOneRunShareRunID(t *testing.T) {
	clk := newManualClock()
	rec := &fakeRecorder{}
	coach := service.NewCoach(clk, rec, nil, "user-1")

	coach.Start()
	runSeconds(clk, coach, 14)
	coach.Pause()
	coach.Start()
	runSeconds(clk, coach, 14)
	coach.Reset()
	coach.Start()
	runSeconds(clk, coach, 3)
	coach.Reset()
	coach.Wait()

	runs := rec.runIDs()
	require.Len(t, runs, 3)
	require.Equal(t, runs[0], runs[1])
	require.NotEqual(t, runs[1], runs[2])
}

func TestCoachIdentitySwitchClosesRunUnderPreviousUser(t *testing.T) {
	clk := newManualClock()
	rec := &fakeRecorder{}
	coach := service.NewCoach(clk, rec, nil, "user-a")

	coach.Start()
	runSeconds(clk, coach, 28)
	clk.Advance(5 * time.Minute)

	handoff := coach.SetIdentity("user-b")
	require.True(t, handoff.Emitted)
	require.Equal(t, "user-a", handoff.Summary.UserID)
	require.NoError(t, <-handoff.Done)

	snap := coach.Snapshot()
	require.False(t, snap.Running)
	require.Zero(t, snap.CyclesThisRun)
	require.True(t, snap.Tracking)

	require.False(t, coach.Reset().Emitted, "the closed run must not be reported again")
	coach.Wait()
	require.Equal(t, []recordedSession{{userID: "user-a", cycles: 2, minutes: 5}}, rec.recorded())
}

func TestCoachSignOutRecordsRunForSignedOutUser(t *testing.T) {
	clk := newManualClock()
	rec := &fakeRecorder{}
	coach := service.NewCoach(clk, rec, nil, "user-a")

	coach.Start()
	runSeconds(clk, coach, 14)
	handoff := coach.SetIdentity("")
	require.True(t, handoff.Emitted)
	coach.Wait()
	require.Equal(t, []recordedSession{{userID: "user-a", cycles: 1, minutes: 1}}, rec.recorded())
	require.False(t, coach.Snapshot().Tracking)
}

func TestCoachAnonymousRunIsNotAttributedOnSignIn(t *testing.T) {
	clk := newManualClock()
	rec := &fakeRecorder{}
	coach := service.NewCoach(clk, rec, nil, "")

	coach.Start()
	runSeconds(clk, coach, 30)
	handoff := coach.SetIdentity("user-b")
	require.False(t, handoff.Emitted)
	require.False(t, coach.Snapshot().Running)

	coach.Start()
	runSeconds(clk, coach, 14)
	coach.Reset()
	coach.Wait()
	require.Equal(t, []recordedSession{{userID: "user-b", cycles: 1, minutes: 1}}, rec.recorded())
}

func TestCoachSameIdentityKeepsRunGoing(t *testing.T) {
	clk := newManualClock()
	rec := &fakeRecorder{}
	coach := service.NewCoach(clk, rec, nil, "user-a")

	coach.Start()
	runSeconds(clk, coach, 5)
	require.False(t, coach.SetIdentity("user-a").Emitted)
	require.True(t, coach.Snapshot().Running)
	require.Equal(t, 3, coach.Snapshot().SecondsLeft)
	coach.Reset()
	coach.Wait()
}
