package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var d Debouncer
	var count atomic.Int32

	for i := 0; i < 5; i++ {
		d.Schedule(50*time.Millisecond, func() { count.Add(1) })
	}

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load(), "exactly one action per burst")
}

func TestDebouncer_LastActionWins(t *testing.T) {
	var d Debouncer
	var gotA, gotB atomic.Bool

	d.Schedule(50*time.Millisecond, func() { gotA.Store(true) })
	d.Schedule(50*time.Millisecond, func() { gotB.Store(true) })

	time.Sleep(200 * time.Millisecond)
	assert.False(t, gotA.Load(), "superseded action must not fire")
	assert.True(t, gotB.Load())
}

func TestDebouncer_ZeroDelayFires(t *testing.T) {
	var d Debouncer
	fired := make(chan struct{})

	d.Schedule(0, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("zero-delay action never fired")
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	var d Debouncer
	var count atomic.Int32

	d.Schedule(50*time.Millisecond, func() { count.Add(1) })
	d.Cancel()

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), count.Load())

	// Reusable after Cancel.
	d.Schedule(10*time.Millisecond, func() { count.Add(1) })
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load())
}
