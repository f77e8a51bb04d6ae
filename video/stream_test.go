package video

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"testing"
	"time"

	"golang.org/x/image/bmp"
)

func TestReadBMP_SplitsConcatenatedFrames(t *testing.T) {
	var pipe bytes.Buffer
	for _, c := range []color.RGBA{{R: 10, A: 255}, {G: 20, A: 255}} {
		img := image.NewRGBA(image.Rect(0, 0, 4, 3))
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
		}
		if err := bmp.Encode(&pipe, img); err != nil {
			t.Fatalf("bmp.Encode: %v", err)
		}
	}

	for want := 0; want < 2; want++ {
		raw, err := readBMP(&pipe)
		if err != nil {
			t.Fatalf("readBMP frame %d: %v", want, err)
		}
		img, err := bmp.Decode(bytes.NewReader(raw))
		if err != nil {
			t.Fatalf("bmp.Decode frame %d: %v", want, err)
		}
		r, g, _, _ := img.At(1, 1).RGBA()
		if want == 0 && r>>8 != 10 {
			t.Fatalf("frame 0 red = %d, want 10", r>>8)
		}
		if want == 1 && g>>8 != 20 {
			t.Fatalf("frame 1 green = %d, want 20", g>>8)
		}
	}

	if _, err := readBMP(&pipe); !errors.Is(err, io.EOF) {
		t.Fatalf("readBMP after last frame = %v, want io.EOF", err)
	}
}

func TestReadBMP_RejectsGarbage(t *testing.T) {
	if _, err := readBMP(bytes.NewReader([]byte("NOTABITMAPHEADER"))); err == nil {
		t.Fatalf("readBMP returned nil error for invalid header")
	}
}

func TestSeekOffset_LandsBetweenNeighbours(t *testing.T) {
	fps := 30.0
	frameTime := func(i int) time.Duration {
		return time.Duration(float64(i) / fps * float64(time.Second))
	}
	for _, index := range []int{1, 2, 299, 300, 899} {
		got := SeekOffset(index, fps)
		if got <= frameTime(index-1) || got >= frameTime(index) {
			t.Fatalf("SeekOffset(%d) = %v, want between %v and %v", index, got, frameTime(index-1), frameTime(index))
		}
	}
	if got := SeekOffset(0, fps); got != 0 {
		t.Fatalf("SeekOffset(0) = %v, want 0", got)
	}
	if got := SeekOffset(10, 0); got != 0 {
		t.Fatalf("SeekOffset with zero fps = %v, want 0", got)
	}
}

func TestStreamArgs_HWAccelBeforeInput(t *testing.T) {
	args := streamArgs("clip.mp4", 2*time.Second, HWAccelConfig{Type: HWAccelCUDA, Available: true})
	if args[0] != "-hwaccel" || args[1] != "cuda" {
		t.Fatalf("args = %v, want -hwaccel cuda first", args)
	}
	if args[2] != "-ss" || args[3] != "2.000000" {
		t.Fatalf("args = %v, want -ss 2.000000 before -i", args)
	}
	if args[4] != "-i" || args[5] != "clip.mp4" {
		t.Fatalf("args = %v, want -i clip.mp4", args)
	}
}
