package video

import (
	"errors"
	"fmt"
	"io"
	"os"

	"framegrab/applog"
)

// VideoSession describes the open video. It does not change until another
// video replaces it.
type VideoSession struct {
	Path        string
	TotalFrames int
	FPS         float64
	Properties  *VideoProperties
}

// FrameSource owns the decoder handle for the open video and is the only
// component that reads from it.
type FrameSource struct {
	decoder Decoder
	session *VideoSession
	reader  FrameReader
	next    int // index the reader yields on its next read
	pos     int // index of the last frame returned
}

func NewFrameSource(decoder Decoder) *FrameSource {
	return &FrameSource{decoder: decoder}
}

// Open probes path and makes it the current session. Any previous handle is
// released first, so a failed Open leaves no session behind.
func (s *FrameSource) Open(path string) (*VideoSession, error) {
	s.Close()

	info, err := os.Stat(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("is a directory")}
	}

	props, err := s.decoder.Probe(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	s.session = &VideoSession{
		Path:        path,
		TotalFrames: max(0, props.FrameCount),
		FPS:         props.FPS,
		Properties:  props,
	}
	s.pos = 0
	applog.LogInfo("opened %s: %d frames at %.3f fps", path, s.session.TotalFrames, s.session.FPS)
	return s.session, nil
}

// Close releases the decoder handle and forgets the session.
func (s *FrameSource) Close() {
	s.closeReader()
	s.session = nil
	s.pos = 0
}

func (s *FrameSource) closeReader() {
	if s.reader != nil {
		s.reader.Close()
		s.reader = nil
	}
}

// Session returns the open session or nil.
func (s *FrameSource) Session() *VideoSession {
	return s.session
}

func (s *FrameSource) FrameRate() (float64, error) {
	if s.session == nil {
		return 0, ErrNoSession
	}
	return s.session.FPS, nil
}

func (s *FrameSource) FrameCount() (int, error) {
	if s.session == nil {
		return 0, ErrNoSession
	}
	return s.session.TotalFrames, nil
}

// Position is the index of the frame most recently returned.
func (s *FrameSource) Position() int {
	return s.pos
}

// ReadFrame seeks to index and decodes it. Seek and read are one step: on
// success Position() == index. Reading the frame right after the previous
// one reuses the running decoder instead of seeking.
func (s *FrameSource) ReadFrame(index int) (*Frame, error) {
	if s.session == nil {
		return nil, &SeekError{Index: index, Err: ErrNoSession}
	}
	if index < 0 || index >= s.session.TotalFrames {
		return nil, &SeekError{Index: index, Err: ErrOutOfRange}
	}

	if s.reader == nil || s.next != index {
		s.closeReader()
		reader, err := s.decoder.Open(s.session.Path, index, s.session.FPS)
		if err != nil {
			return nil, &SeekError{Index: index, Err: err}
		}
		s.reader = reader
		s.next = index
		applog.LogDebug("decoder restarted at frame %d", index)
	}

	img, err := s.reader.NextFrame()
	if err != nil {
		s.closeReader()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrEndOfStream
		}
		return nil, &SeekError{Index: index, Err: err}
	}

	s.next = index + 1
	s.pos = index
	return &Frame{Index: index, Image: toRGBA(img)}, nil
}

// ReadNext decodes the frame after Position().
func (s *FrameSource) ReadNext() (*Frame, error) {
	index := s.pos + 1
	if s.session == nil {
		return nil, &SeekError{Index: index, Err: ErrNoSession}
	}
	if index >= s.session.TotalFrames {
		return nil, &SeekError{Index: index, Err: ErrEndOfStream}
	}
	return s.ReadFrame(index)
}
