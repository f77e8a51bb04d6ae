package video

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"os/exec"
	"sync"
	"time"

	"golang.org/x/image/bmp"
)

// FrameStream keeps a long-lived ffmpeg process that writes every frame from
// a start position as BMP images on stdout.
type FrameStream struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	cancel context.CancelFunc
	mu     sync.Mutex
}

func NewFrameStream(path string, start time.Duration, hw HWAccelConfig) (*FrameStream, error) {
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, "ffmpeg", streamArgs(path, start, hw)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, err
	}

	return &FrameStream{
		cmd:    cmd,
		stdout: stdout,
		cancel: cancel,
	}, nil
}

func streamArgs(path string, start time.Duration, hw HWAccelConfig) []string {
	args := hw.Args()
	args = append(args,
		"-ss", fmt.Sprintf("%.6f", start.Seconds()),
		"-i", path,
		"-map", "0:v:0",
		"-fps_mode", "passthrough",
		"-f", "image2pipe",
		"-vcodec", "bmp",
		"-loglevel", "error",
		"-",
	)
	return args
}

// Close stops the ffmpeg process. It is safe to call more than once.
func (s *FrameStream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	if s.cmd != nil {
		_ = s.cmd.Wait()
	}
	s.cancel = nil
	s.cmd = nil
	if s.stdout != nil {
		_ = s.stdout.Close()
		s.stdout = nil
	}
}

// NextFrame reads and decodes the next BMP frame from the stream. It returns
// io.EOF once ffmpeg has written the last frame.
func (s *FrameStream) NextFrame() (image.Image, error) {
	s.mu.Lock()
	stdout := s.stdout
	s.mu.Unlock()
	if stdout == nil {
		return nil, io.EOF
	}

	raw, err := readBMP(stdout)
	if err != nil {
		return nil, err
	}
	img, err := bmp.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return img, nil
}

// readBMP reads one BMP file from r using the size in its 14 byte header.
func readBMP(r io.Reader) ([]byte, error) {
	header := make([]byte, 14)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if header[0] != 'B' || header[1] != 'M' {
		return nil, fmt.Errorf("invalid frame header")
	}
	frameSize := binary.LittleEndian.Uint32(header[2:6])
	if frameSize < 14 {
		return nil, fmt.Errorf("invalid frame size")
	}

	frame := make([]byte, frameSize)
	copy(frame, header)
	if _, err := io.ReadFull(r, frame[14:frameSize]); err != nil {
		return nil, err
	}
	return frame, nil
}
