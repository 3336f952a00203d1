package service_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mindful/internal/modules/breathing/service"
)

func TestCadenceTicksUntilDisarmed(t *testing.T) {
	var ticks atomic.Int32
	reached := make(chan struct{})
	cadence := service.NewCadence(time.Millisecond, func() {
		if ticks.Add(1) == 3 {
			close(reached)
		}
	})

	require.False(t, cadence.Armed())
	cadence.Arm()
	cadence.Arm()
	require.True(t, cadence.Armed())

	select {
	case <-reached:
	case <-time.After(5 * time.Second):
		t.Fatalf("cadence never ticked three times")
	}
	cadence.Disarm()
	require.False(t, cadence.Armed())

	after := ticks.Load()
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, after, ticks.Load(), "no tick may run after Disarm returns")
	cadence.Disarm()
}

func TestCadenceCanBeRearmed(t *testing.T) {
	var ticks atomic.Int32
	cadence := service.NewCadence(time.Millisecond, func() { ticks.Add(1) })
	for i := 0; i < 3; i++ {
		cadence.Arm()
		require.Eventually(t, func() bool { return ticks.Load() > int32(i) }, 5*time.Second, time.Millisecond)
		cadence.Disarm()
	}
}
