package video

import (
	"math"
	"time"
)

// SpeedOptions are the speed multipliers offered by the UI. Clock accepts any
// positive value.
var SpeedOptions = []float64{0.5, 1.0, 1.5, 2.0, 3.0}

// TickHandle identifies one armed tick schedule. Re-arming the clock issues
// a new ID; ticks carrying an old ID are stale and ignored.
type TickHandle struct {
	ID       uint64
	Interval time.Duration
}

func (h TickHandle) IsZero() bool { return h.ID == 0 }

// Clock drives Navigator.Advance while playing. It does not own a timer: the
// caller schedules a tick after Interval and hands the handle back to Tick.
type Clock struct {
	nav     *Navigator
	source  *FrameSource
	playing bool
	speed   float64
	armed   TickHandle
	seq     uint64
}

func NewClock(nav *Navigator, source *FrameSource) *Clock {
	return &Clock{nav: nav, source: source, speed: 1.0}
}

func (c *Clock) IsPlaying() bool { return c.playing }

func (c *Clock) Speed() float64 { return c.speed }

// Armed returns the current handle, zero while stopped.
func (c *Clock) Armed() TickHandle { return c.armed }

// TickInterval returns floor(1000 / (fps * speed)) milliseconds, at least one.
func TickInterval(fps, speed float64) (time.Duration, error) {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 0, ErrInvalidRate
	}
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return 0, ErrInvalidRate
	}
	ms := math.Floor(1000 / (fps * speed))
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// Interval is the tick interval for the open video at the current speed.
func (c *Clock) Interval() (time.Duration, error) {
	fps, err := c.source.FrameRate()
	if err != nil {
		return 0, err
	}
	return TickInterval(fps, c.speed)
}

// Play moves stopped -> playing and returns the handle to schedule. Calling
// it while playing returns the handle already armed.
func (c *Clock) Play() (TickHandle, error) {
	if c.playing {
		return c.armed, nil
	}
	interval, err := c.Interval()
	if err != nil {
		return TickHandle{}, err
	}
	c.playing = true
	c.arm(interval)
	return c.armed, nil
}

// Pause moves playing -> stopped and disarms the pending tick.
func (c *Clock) Pause() {
	c.playing = false
	c.armed = TickHandle{}
}

// SetSpeed changes the multiplier. While playing the clock re-arms at once
// with a fresh handle, so the next tick is a full new interval away; phase
// relative to the previous tick is not kept.
func (c *Clock) SetSpeed(speed float64) (TickHandle, error) {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return TickHandle{}, ErrInvalidRate
	}
	if !c.playing {
		c.speed = speed
		return TickHandle{}, nil
	}
	fps, err := c.source.FrameRate()
	if err != nil {
		return TickHandle{}, err
	}
	interval, err := TickInterval(fps, speed)
	if err != nil {
		return TickHandle{}, err
	}
	c.speed = speed
	c.arm(interval)
	return c.armed, nil
}

// Tick handles a fired tick. Stale handles are dropped. It returns the
// handle to schedule next, or false when nothing should be scheduled.
func (c *Clock) Tick(h TickHandle) (TickHandle, bool) {
	if !c.playing || h.IsZero() || h.ID != c.armed.ID {
		return TickHandle{}, false
	}
	if !c.nav.Advance() {
		c.Pause()
		return TickHandle{}, false
	}
	return c.armed, true
}

func (c *Clock) arm(interval time.Duration) {
	c.seq++
	c.armed = TickHandle{ID: c.seq, Interval: interval}
}

// NextSpeed returns the next entry of SpeedOptions after current, wrapping.
func NextSpeed(current float64, dir int) float64 {
	idx := -1
	for i, s := range SpeedOptions {
		if s == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Off-list speeds snap to the nearest option in the direction asked.
		for i, s := range SpeedOptions {
			if s > current {
				if dir > 0 {
					return s
				}
				if i == 0 {
					return SpeedOptions[len(SpeedOptions)-1]
				}
				return SpeedOptions[i-1]
			}
		}
		if dir > 0 {
			return SpeedOptions[0]
		}
		return SpeedOptions[len(SpeedOptions)-1]
	}
	n := len(SpeedOptions)
	return SpeedOptions[((idx+dir)%n+n)%n]
}
