package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeFiresInDueOrder(t *testing.T) {
	f := NewFake()
	var got []string

	f.AfterFunc(2*time.Second, func() { got = append(got, "b") })
	f.AfterFunc(time.Second, func() { got = append(got, "a") })
	f.AfterFunc(2*time.Second, func() { got = append(got, "c") })

	f.Advance(1500 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, 2, f.Pending())

	f.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, f.Pending())
	assert.Equal(t, 2500*time.Millisecond, f.Elapsed())
}

func TestFakeStop(t *testing.T) {
	f := NewFake()
	fired := false
	tm := f.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())

	f.Advance(time.Minute)
	assert.False(t, fired)
}

func TestFakeCallbackSchedulesChain(t *testing.T) {
	f := NewFake()
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		if ticks < 5 {
			f.AfterFunc(time.Second, tick)
		}
	}
	f.AfterFunc(time.Second, tick)

	f.Advance(3 * time.Second)
	assert.Equal(t, 3, ticks)

	f.Advance(10 * time.Second)
	assert.Equal(t, 5, ticks)
}

func TestRealScheduler(t *testing.T) {
	done := make(chan struct{})
	Real().AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real timer did not fire")
	}
}
