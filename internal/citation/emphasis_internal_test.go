// SPDX-License-Identifier: Apache-2.0

package citation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimer is scheduled by fakeClock and fires only when the test says so.
type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) afterFunc(d time.Duration, f func()) stopper {
	t := &fakeTimer{delay: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func newFakeEmphasizer(delay time.Duration) (*Emphasizer, *fakeClock) {
	clock := &fakeClock{}
	e := NewEmphasizer(delay)
	e.afterFunc = clock.afterFunc
	return e, clock
}

func TestEmphasizer_StaleTimerKeepsNewerEmphasis(t *testing.T) {
	e, clock := newFakeEmphasizer(time.Second)

	e.Emphasize("c1")
	e.Emphasize("c2")
	require.Len(t, clock.timers, 2)
	assert.True(t, clock.timers[0].stopped)

	// The first timer fires anyway, as a timer already running when Stop is
	// called does.
	clock.timers[0].fn()
	assert.Equal(t, "c2", e.Active())

	clock.timers[1].fn()
	assert.Empty(t, e.Active())
}

func TestEmphasizer_SameIDRestartsDelay(t *testing.T) {
	e, clock := newFakeEmphasizer(time.Second)

	e.Emphasize("c1")
	e.Emphasize("c1")
	require.Len(t, clock.timers, 2)

	clock.timers[0].fn()
	assert.Equal(t, "c1", e.Active())
	clock.timers[1].fn()
	assert.Empty(t, e.Active())
}

func TestEmphasizer_StopInvalidatesPendingTimer(t *testing.T) {
	e, clock := newFakeEmphasizer(time.Second)

	e.Emphasize("c1")
	e.Stop()
	assert.True(t, clock.timers[0].stopped)

	e.Emphasize("c2")
	clock.timers[0].fn()
	assert.Equal(t, "c2", e.Active())
}

func TestNewEmphasizer_Delay(t *testing.T) {
	tests := []struct {
		name  string
		delay time.Duration
		want  time.Duration
	}{
		{name: "zero uses default", delay: 0, want: DefaultEmphasis},
		{name: "negative uses default", delay: -time.Second, want: DefaultEmphasis},
		{name: "explicit", delay: 250 * time.Millisecond, want: 250 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock := newFakeEmphasizer(tt.delay)
			e.Emphasize("c1")
			require.Len(t, clock.timers, 1)
			assert.Equal(t, tt.want, clock.timers[0].delay)
		})
	}
}
