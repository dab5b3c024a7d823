// SPDX-License-Identifier: Apache-2.0

package citation

import (
	"sync"
	"time"
)

// DefaultEmphasis is how long an emphasized citation stays active.
const DefaultEmphasis = 3 * time.Second

// Emphasizer holds the transient "currently emphasized" citation id. Each call
// to Emphasize replaces the previous emphasis and schedules its own clear; a
// clear scheduled for an older emphasis never touches a newer one.
type Emphasizer struct {
	delay     time.Duration
	afterFunc func(time.Duration, func()) stopper

	mu         sync.Mutex
	active     string
	generation uint64
	timer      stopper
}

// stopper is the part of *time.Timer an Emphasizer uses.
type stopper interface {
	Stop() bool
}

func afterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// NewEmphasizer returns an Emphasizer that clears after delay, or after
// DefaultEmphasis when delay is not positive.
func NewEmphasizer(delay time.Duration) *Emphasizer {
	if delay <= 0 {
		delay = DefaultEmphasis
	}
	return &Emphasizer{delay: delay, afterFunc: afterFunc}
}

// Emphasize makes id the active citation until the delay elapses. Emphasizing
// the id that is already active restarts the delay.
func (e *Emphasizer) Emphasize(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.generation++
	gen := e.generation
	e.active = id
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = e.afterFunc(e.delay, func() { e.expire(gen) })
}

func (e *Emphasizer) expire(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.generation != gen {
		return
	}
	e.active = ""
	e.timer = nil
}

// Active returns the emphasized citation id, or "" when none is.
func (e *Emphasizer) Active() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Stop clears the emphasis and cancels the pending timer.
func (e *Emphasizer) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	e.active = ""
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}
