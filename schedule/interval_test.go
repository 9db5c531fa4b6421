package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInterval_ImmediateThenPeriodic(t *testing.T) {
	var count atomic.Int32
	iv := NewInterval(func() { count.Add(1) })

	iv.Start(60*time.Millisecond, true)
	defer iv.Stop()

	time.Sleep(160 * time.Millisecond)
	got := count.Load()
	assert.GreaterOrEqual(t, got, int32(2), "immediate run plus at least one tick")
	assert.Equal(t, 60*time.Millisecond, iv.Period())
}

func TestInterval_SuppressedFirstRun(t *testing.T) {
	var count atomic.Int32
	iv := NewInterval(func() { count.Add(1) })

	iv.Start(80*time.Millisecond, false)
	defer iv.Stop()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), count.Load(), "first run waits one period")

	time.Sleep(120 * time.Millisecond)
	assert.GreaterOrEqual(t, count.Load(), int32(1))
}

func TestInterval_Stop(t *testing.T) {
	var count atomic.Int32
	iv := NewInterval(func() { count.Add(1) })

	iv.Start(40*time.Millisecond, true)
	time.Sleep(60 * time.Millisecond)
	iv.Stop()
	assert.Equal(t, time.Duration(0), iv.Period())

	settled := count.Load()
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, settled, count.Load(), "no runs after Stop")

	// Safe when already inactive.
	iv.Stop()
}

func TestInterval_RestartOverrides(t *testing.T) {
	var count atomic.Int32
	iv := NewInterval(func() { count.Add(1) })

	iv.Start(time.Hour, false)
	iv.Start(50*time.Millisecond, true)
	defer iv.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.GreaterOrEqual(t, count.Load(), int32(1))
	assert.Equal(t, 50*time.Millisecond, iv.Period())
}
