package video

import (
	"fmt"
	"image"
	"os/exec"
	"time"
)

// Decoder opens videos. FrameSource is its only caller.
type Decoder interface {
	// Probe reads container and stream metadata without decoding frames.
	Probe(path string) (*VideoProperties, error)
	// Open starts decoding so that the first NextFrame returns frame start.
	Open(path string, start int, fps float64) (FrameReader, error)
}

// FrameReader yields consecutive frames. Returned images may be reused by
// the reader on the next call.
type FrameReader interface {
	NextFrame() (image.Image, error)
	Close()
}

// FFmpegDecoder decodes with ffprobe and a piped ffmpeg process.
type FFmpegDecoder struct {
	HWAccel HWAccelConfig
}

func NewFFmpegDecoder(useHWAccel bool) *FFmpegDecoder {
	d := &FFmpegDecoder{}
	if useHWAccel {
		d.HWAccel = DetectHWAccel()
	}
	return d
}

func (d *FFmpegDecoder) Probe(path string) (*VideoProperties, error) {
	return GetVideoProperties(path)
}

func (d *FFmpegDecoder) Open(path string, start int, fps float64) (FrameReader, error) {
	if start > 0 && fps <= 0 {
		return nil, ErrInvalidRate
	}
	return NewFrameStream(path, SeekOffset(start, fps), d.HWAccel)
}

// SeekOffset returns the input seek time for frame index. It lands half a
// frame early so the first frame at or after the seek point is index itself,
// not its neighbour when the exact timestamp rounds up.
func SeekOffset(index int, fps float64) time.Duration {
	if index <= 0 || fps <= 0 {
		return 0
	}
	seconds := (float64(index) - 0.5) / fps
	return time.Duration(seconds * float64(time.Second))
}

func CheckDependencies() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found. Install: brew install ffmpeg")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return fmt.Errorf("ffprobe not found. Install: brew install ffmpeg")
	}
	if _, err := exec.LookPath("chafa"); err != nil {
		return fmt.Errorf("chafa not found. Install: brew install chafa")
	}
	return nil
}
