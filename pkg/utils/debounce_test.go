package utils

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var fired atomic.Int32

	for i := 0; i < 10; i++ {
		d.Call(func() { fired.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncer_LastCallWins(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var got atomic.Value

	d.Call(func() { got.Store("first") })
	d.Call(func() { got.Store("second") })

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, "second", got.Load())
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var fired atomic.Int32

	d.Call(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, fired.Load())
}

func TestNewDebouncer_DefaultsDelay(t *testing.T) {
	d := NewDebouncer(0)
	assert.Equal(t, DefaultDebounceDelay, d.delay)
}
