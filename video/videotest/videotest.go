// Package videotest provides an in-memory video.Decoder for tests. Frame i
// is a solid image whose red and green channels encode i, so a decoded frame
// can be checked against the index it claims to be.
package videotest

import (
	"errors"
	"image"
	"image/color"
	"io"
	"sync"

	"framegrab/video"
)

// Decoder serves synthetic frames for any path it is asked to open.
type Decoder struct {
	FPS        float64
	FrameCount int
	Width      int
	Height     int

	// ProbeErr, when set, is returned by every Probe.
	ProbeErr error
	// FailAt makes reading that frame index fail with ErrDecode.
	FailAt map[int]bool

	mu     sync.Mutex
	opens  int
	closes int
}

// ErrDecode is returned for indexes listed in FailAt.
var ErrDecode = errors.New("videotest: decode failed")

// New returns a Decoder for a video of n frames at fps.
func New(fps float64, n int) *Decoder {
	return &Decoder{FPS: fps, FrameCount: n, Width: 8, Height: 4}
}

func (d *Decoder) Probe(path string) (*video.VideoProperties, error) {
	if d.ProbeErr != nil {
		return nil, d.ProbeErr
	}
	return &video.VideoProperties{
		Width:      d.Width,
		Height:     d.Height,
		Codec:      "test",
		FPS:        d.FPS,
		FrameCount: d.FrameCount,
	}, nil
}

func (d *Decoder) Open(path string, start int, fps float64) (video.FrameReader, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opens++
	return &reader{d: d, next: start, img: image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))}, nil
}

// Opens counts decoder restarts, i.e. seeks that could not reuse a stream.
func (d *Decoder) Opens() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opens
}

// OpenReaders counts readers opened but not yet closed.
func (d *Decoder) OpenReaders() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opens - d.closes
}

type reader struct {
	d      *Decoder
	next   int
	img    *image.RGBA
	closed bool
}

// NextFrame reuses one image buffer for every frame, like real decoders do.
func (r *reader) NextFrame() (image.Image, error) {
	if r.closed {
		return nil, io.EOF
	}
	if r.next >= r.d.FrameCount {
		return nil, io.EOF
	}
	if r.d.FailAt[r.next] {
		return nil, ErrDecode
	}
	fill(r.img, r.next)
	r.next++
	return r.img, nil
}

func (r *reader) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.d.mu.Lock()
	r.d.closes++
	r.d.mu.Unlock()
}

func fill(img *image.RGBA, index int) {
	c := color.RGBA{R: uint8(index % 256), G: uint8(index / 256), B: 0x7f, A: 0xff}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// IndexOf recovers the frame index encoded in an image made by this package.
func IndexOf(img image.Image) int {
	r, g, _, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	return int(g>>8)*256 + int(r>>8)
}
