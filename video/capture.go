package video

import (
	"image"

	"framegrab/applog"
)

// CapturedFrame is the captured still. Its pixels are owned by the buffer.
type CapturedFrame struct {
	SourceIndex int
	Timestamp   float64
	Image       *image.RGBA
	LutPreview  *image.RGBA
}

// CaptureBuffer holds at most one captured still and its LUT preview.
type CaptureBuffer struct {
	frame *CapturedFrame
}

func NewCaptureBuffer() *CaptureBuffer {
	return &CaptureBuffer{}
}

// Capture stores a deep copy of frame, replacing any previous capture and
// dropping its LUT preview. A nil frame is ignored.
func (b *CaptureBuffer) Capture(frame *Frame, fps float64) {
	if frame == nil || frame.Image == nil {
		return
	}
	ts := 0.0
	if fps > 0 {
		ts = float64(frame.Index) / fps
	}
	b.frame = &CapturedFrame{
		SourceIndex: frame.Index,
		Timestamp:   ts,
		Image:       cloneRGBA(frame.Image),
	}
}

// Clear drops the capture. Safe to call repeatedly.
func (b *CaptureBuffer) Clear() {
	b.frame = nil
}

func (b *CaptureBuffer) HasCapture() bool {
	return b.frame != nil
}

func (b *CaptureBuffer) HasLutPreview() bool {
	return b.frame != nil && b.frame.LutPreview != nil
}

// Captured returns the current capture or nil. Callers must not modify it.
func (b *CaptureBuffer) Captured() *CapturedFrame {
	return b.frame
}

// ApplyLutPreview derives the LUT preview for the capture. It does nothing
// without a capture or a LUT path.
//
// LUT sampling is not implemented: the preview is an unmodified copy of the
// captured frame and the .cube file is never read.
// TODO(lut): parse the .cube grid and sample it here once an interpolation
// method is chosen.
func (b *CaptureBuffer) ApplyLutPreview(lutPath string) bool {
	if b.frame == nil || lutPath == "" {
		return false
	}
	b.frame.LutPreview = cloneRGBA(b.frame.Image)
	applog.LogDebug("lut preview for frame %d uses %s (passthrough)", b.frame.SourceIndex, lutPath)
	return true
}

// ExportOriginal writes the capture to dir/frame_<ts>.png and returns the
// path. Without a capture it writes nothing and returns "".
func (b *CaptureBuffer) ExportOriginal(dir string) (string, error) {
	if b.frame == nil {
		return "", nil
	}
	return exportStill(dir, ExportFileName(b.frame.Timestamp, false), b.frame.Image)
}

// ExportWithLut writes the LUT preview to dir/frame_<ts>_with_lut.png. It
// writes nothing when there is no capture or no preview yet.
func (b *CaptureBuffer) ExportWithLut(dir string) (string, error) {
	if b.frame == nil || b.frame.LutPreview == nil {
		return "", nil
	}
	return exportStill(dir, ExportFileName(b.frame.Timestamp, true), b.frame.LutPreview)
}
