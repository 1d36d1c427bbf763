package application

import (
	"sync"
	"time"
)

// scriptedRandom replays floats and ints in order, then repeats the last value.
type scriptedRandom struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
}

func fixedRandom(float float64, intn int) *scriptedRandom {
	return &scriptedRandom{floats: []float64{float}, ints: []int{intn}}
}

func (r *scriptedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	if len(r.floats) > 1 {
		r.floats = r.floats[1:]
	}
	return v
}

func (r *scriptedRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 || n <= 0 {
		return 0
	}
	v := r.ints[0]
	if len(r.ints) > 1 {
		r.ints = r.ints[1:]
	}
	return v % n
}

// stepClock moves forward by step on every Now call.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newStepClock(start time.Time, step time.Duration) *stepClock {
	return &stepClock{now: start, step: step}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

var testEpoch = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
