package video_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"framegrab/video"
	"framegrab/video/videotest"
)

func TestTickInterval(t *testing.T) {
	cases := []struct {
		fps, speed float64
		want       time.Duration
	}{
		{30, 1.0, 33 * time.Millisecond},
		{30, 2.0, 16 * time.Millisecond},
		{30, 0.5, 66 * time.Millisecond},
		{24, 3.0, 13 * time.Millisecond},
		{25, 1.5, 26 * time.Millisecond},
		{5000, 1.0, time.Millisecond},
	}
	for _, tc := range cases {
		got, err := video.TickInterval(tc.fps, tc.speed)
		if err != nil {
			t.Fatalf("TickInterval(%v, %v) error: %v", tc.fps, tc.speed, err)
		}
		if got != tc.want {
			t.Fatalf("TickInterval(%v, %v) = %v, want %v", tc.fps, tc.speed, got, tc.want)
		}
	}
}

func TestTickInterval_InvalidRate(t *testing.T) {
	for _, tc := range []struct{ fps, speed float64 }{
		{0, 1}, {-30, 1}, {math.NaN(), 1}, {30, 0}, {30, -2}, {30, math.Inf(1)},
	} {
		if _, err := video.TickInterval(tc.fps, tc.speed); !errors.Is(err, video.ErrInvalidRate) {
			t.Fatalf("TickInterval(%v, %v) error = %v, want ErrInvalidRate", tc.fps, tc.speed, err)
		}
	}
}

func TestClock_PlayZeroFrameRateFailsOnlyThatAction(t *testing.T) {
	p, _, _ := openPlayer(t, 0, 10)
	if _, err := p.Dispatch(video.Play{}); !errors.Is(err, video.ErrInvalidRate) {
		t.Fatalf("Play error = %v, want ErrInvalidRate", err)
	}
	if p.Clock().IsPlaying() {
		t.Fatalf("IsPlaying = true after failed Play")
	}
	if _, err := p.Dispatch(video.Seek{Index: 3}); err != nil {
		t.Fatalf("Seek after failed Play: %v", err)
	}
}

func TestClock_PlayWithoutVideo(t *testing.T) {
	p := video.NewPlayer(videotest.New(30, 10), nil)
	if _, err := p.Dispatch(video.Play{}); !errors.Is(err, video.ErrNoSession) {
		t.Fatalf("Play error = %v, want ErrNoSession", err)
	}
}

func TestClock_SetSpeedWhilePlayingRearms(t *testing.T) {
	p, _, _ := openPlayer(t, 30, 900)

	out, err := p.Dispatch(video.Play{})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	first := out.Tick
	if first.IsZero() || first.Interval != 33*time.Millisecond {
		t.Fatalf("Play tick = %+v, want 33ms handle", first)
	}

	out, err = p.Dispatch(video.SetSpeed{Speed: 2.0})
	if err != nil {
		t.Fatalf("SetSpeed: %v", err)
	}
	if !p.Clock().IsPlaying() {
		t.Fatalf("IsPlaying = false after SetSpeed")
	}
	if out.Tick.Interval != 16*time.Millisecond {
		t.Fatalf("re-armed interval = %v, want 16ms", out.Tick.Interval)
	}
	if out.Tick.ID == first.ID {
		t.Fatalf("SetSpeed kept handle %d, want a new one", first.ID)
	}

	// The tick scheduled before the speed change must not advance.
	before := p.Navigator().Index()
	if next, _ := p.Dispatch(video.Tick{Handle: first}); !next.Tick.IsZero() {
		t.Fatalf("stale tick rescheduled %+v", next.Tick)
	}
	if p.Navigator().Index() != before {
		t.Fatalf("stale tick moved index %d -> %d", before, p.Navigator().Index())
	}

	next, _ := p.Dispatch(video.Tick{Handle: out.Tick})
	if next.Tick != out.Tick {
		t.Fatalf("live tick rescheduled %+v, want %+v", next.Tick, out.Tick)
	}
	if p.Navigator().Index() != before+1 {
		t.Fatalf("live tick index = %d, want %d", p.Navigator().Index(), before+1)
	}
}

func TestClock_SetSpeedWhileStopped(t *testing.T) {
	p, _, _ := openPlayer(t, 30, 900)
	out, err := p.Dispatch(video.SetSpeed{Speed: 1.5})
	if err != nil {
		t.Fatalf("SetSpeed: %v", err)
	}
	if !out.Tick.IsZero() || p.Clock().IsPlaying() {
		t.Fatalf("SetSpeed while stopped armed %+v", out.Tick)
	}
	if p.Clock().Speed() != 1.5 {
		t.Fatalf("Speed = %v, want 1.5", p.Clock().Speed())
	}
	if _, err := p.Dispatch(video.SetSpeed{Speed: 0}); !errors.Is(err, video.ErrInvalidRate) {
		t.Fatalf("SetSpeed(0) error = %v, want ErrInvalidRate", err)
	}
	if p.Clock().Speed() != 1.5 {
		t.Fatalf("Speed after rejected change = %v, want 1.5", p.Clock().Speed())
	}
}

func TestClock_PauseDisarms(t *testing.T) {
	p, _, _ := openPlayer(t, 30, 900)
	out, _ := p.Dispatch(video.Play{})
	if _, err := p.Dispatch(video.Pause{}); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	before := p.Navigator().Index()
	if next, _ := p.Dispatch(video.Tick{Handle: out.Tick}); !next.Tick.IsZero() {
		t.Fatalf("tick after pause rescheduled")
	}
	if p.Navigator().Index() != before {
		t.Fatalf("tick after pause moved index")
	}
}

func TestClock_EndOfStreamStopsAndRewindsOnce(t *testing.T) {
	p, _, rendered := openPlayer(t, 30, 5)
	if _, err := p.Dispatch(video.Seek{Index: 3}); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	out, err := p.Dispatch(video.Play{})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	h := out.Tick

	next, _ := p.Dispatch(video.Tick{Handle: h})
	if next.Tick.IsZero() || p.Navigator().Index() != 4 {
		t.Fatalf("tick to last frame: index %d, next %+v", p.Navigator().Index(), next.Tick)
	}

	next, _ = p.Dispatch(video.Tick{Handle: h})
	if !next.Tick.IsZero() {
		t.Fatalf("tick past end rescheduled %+v", next.Tick)
	}
	if p.Clock().IsPlaying() {
		t.Fatalf("IsPlaying = true after end of stream")
	}
	if p.Navigator().Index() != 0 || p.Navigator().Timestamp() != "0.00" {
		t.Fatalf("after end: index %d timestamp %q, want 0 and 0.00", p.Navigator().Index(), p.Navigator().Timestamp())
	}

	renders := len(*rendered)
	for i := 0; i < 3; i++ {
		p.Dispatch(video.Tick{Handle: h})
	}
	if p.Navigator().Index() != 0 || len(*rendered) != renders {
		t.Fatalf("ticks after stop changed state: index %d, renders +%d", p.Navigator().Index(), len(*rendered)-renders)
	}

	// Playing again starts from the top.
	out, _ = p.Dispatch(video.Play{})
	p.Dispatch(video.Tick{Handle: out.Tick})
	if p.Navigator().Index() != 1 {
		t.Fatalf("first tick after replay index = %d, want 1", p.Navigator().Index())
	}
}

func TestClock_DecodeFailureStopsPlayback(t *testing.T) {
	p, dec, _ := openPlayer(t, 30, 10)
	dec.FailAt = map[int]bool{2: true}
	out, _ := p.Dispatch(video.Play{})

	p.Dispatch(video.Tick{Handle: out.Tick}) // frame 1
	next, _ := p.Dispatch(video.Tick{Handle: out.Tick})
	if !next.Tick.IsZero() || p.Clock().IsPlaying() {
		t.Fatalf("playback continued past decode failure")
	}
	if p.Navigator().Index() != 0 {
		t.Fatalf("index after decode failure = %d, want 0", p.Navigator().Index())
	}
}

func TestNextSpeed(t *testing.T) {
	cases := []struct {
		cur  float64
		dir  int
		want float64
	}{
		{1.0, 1, 1.5},
		{3.0, 1, 0.5},
		{0.5, -1, 3.0},
		{1.5, -1, 1.0},
		{1.25, 1, 1.5},
		{1.25, -1, 1.0},
	}
	for _, tc := range cases {
		if got := video.NextSpeed(tc.cur, tc.dir); got != tc.want {
			t.Fatalf("NextSpeed(%v, %d) = %v, want %v", tc.cur, tc.dir, got, tc.want)
		}
	}
}
