package video

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"framegrab/applog"
)

// RenderFunc receives every frame the Navigator publishes.
type RenderFunc func(*Frame)

// Navigator holds the one authoritative frame index. Scrubbing, typed
// timestamps and playback ticks all go through it; none of its entry points
// calls another, so redrawing the scrubber can never seek again.
type Navigator struct {
	source    *FrameSource
	index     int
	timestamp string
	current   *Frame
	onFrame   RenderFunc
}

func NewNavigator(source *FrameSource) *Navigator {
	return &Navigator{source: source, timestamp: FormatTimestamp(0, 0)}
}

// SetRenderFunc installs the single render callback.
func (n *Navigator) SetRenderFunc(fn RenderFunc) {
	n.onFrame = fn
}

func (n *Navigator) Index() int { return n.index }

// Timestamp is the displayed timestamp text. It always equals Index()/fps.
func (n *Navigator) Timestamp() string { return n.timestamp }

// Current is the last published frame, or nil before the first one.
func (n *Navigator) Current() *Frame { return n.current }

// Reset returns to frame 0 without decoding. Used after a new video opens.
func (n *Navigator) Reset() {
	n.index = 0
	n.timestamp = FormatTimestamp(0, 0)
	n.current = nil
}

// SeekToFrame is the scrubber entry point. Indexes outside the video are
// rejected, not clamped.
func (n *Navigator) SeekToFrame(index int) error {
	total, err := n.source.FrameCount()
	if err != nil {
		return &SeekError{Index: index, Err: err}
	}
	if index < 0 || index >= total {
		return &SeekError{Index: index, Err: ErrOutOfRange}
	}
	frame, err := n.source.ReadFrame(index)
	if err != nil {
		return err
	}
	n.publish(frame)
	return nil
}

// SeekToTimestamp is the typed-timestamp entry point. text is decimal
// seconds; the target frame is floor(seconds * fps).
func (n *Navigator) SeekToTimestamp(text string) error {
	fps, err := n.source.FrameRate()
	if err != nil {
		return err
	}
	if fps <= 0 {
		return ErrInvalidRate
	}
	seconds, err := ParseTimestamp(text)
	if err != nil {
		return err
	}
	return n.SeekToFrame(TimestampToFrame(seconds, fps))
}

// Step moves by delta frames, stopping at the first or last frame.
func (n *Navigator) Step(delta int) error {
	total, err := n.source.FrameCount()
	if err != nil {
		return err
	}
	if total == 0 {
		return &SeekError{Index: n.index + delta, Err: ErrOutOfRange}
	}
	target := min(max(n.index+delta, 0), total-1)
	if target == n.index && n.current != nil {
		return nil
	}
	return n.SeekToFrame(target)
}

// StepSeconds moves by a signed number of seconds, rounded to whole frames.
func (n *Navigator) StepSeconds(seconds float64) error {
	fps, err := n.source.FrameRate()
	if err != nil {
		return err
	}
	if fps <= 0 {
		return ErrInvalidRate
	}
	return n.Step(int(math.Round(seconds * fps)))
}

// Advance is the playback entry point. It returns false when the stream is
// exhausted or unreadable; the index and timestamp are then back at 0 and
// the caller must stop playback.
func (n *Navigator) Advance() bool {
	frame, err := n.source.ReadNext()
	if err == nil {
		n.publish(frame)
		return true
	}
	if !errors.Is(err, ErrEndOfStream) {
		applog.LogWarn("playback stopped: %v", err)
	}

	n.index = 0
	n.timestamp = FormatTimestamp(0, 0)
	first, ferr := n.source.ReadFrame(0)
	if ferr != nil {
		applog.LogWarn("rewind: %v", ferr)
		n.current = nil
		return false
	}
	n.publish(first)
	return false
}

func (n *Navigator) publish(frame *Frame) {
	fps, _ := n.source.FrameRate()
	n.index = frame.Index
	n.timestamp = FormatTimestamp(frame.Index, fps)
	n.current = frame
	if n.onFrame != nil {
		n.onFrame(frame)
	}
}

// ParseTimestamp parses decimal seconds. NaN and infinities are rejected.
func ParseTimestamp(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	seconds, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &ParseError{Input: text, Err: err}
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, &ParseError{Input: text, Err: fmt.Errorf("not a finite number")}
	}
	return seconds, nil
}

// TimestampToFrame returns floor(seconds * fps). The small bias absorbs
// float error such as 0.7*30 evaluating just under 21.
func TimestampToFrame(seconds, fps float64) int {
	return int(math.Floor(seconds*fps + 1e-9))
}

// FormatTimestamp renders index/fps with two decimals.
func FormatTimestamp(index int, fps float64) string {
	if fps <= 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(index)/fps)
}
