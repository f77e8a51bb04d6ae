package video

import (
	"image"

	"golang.org/x/image/draw"
)

// Frame is one decoded picture and the zero-based index it was read from.
type Frame struct {
	Index int
	Image *image.RGBA
}

// Clone returns a deep copy that shares no pixel memory with f.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	return &Frame{Index: f.Index, Image: cloneRGBA(f.Image)}
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	if src == nil {
		return nil
	}
	dst := &image.RGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}

// toRGBA converts any decoded image into an RGBA image it owns.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return cloneRGBA(rgba)
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
