package video

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession is returned by queries and commands that need an open video.
	ErrNoSession = errors.New("no video open")
	// ErrOutOfRange is wrapped by SeekError when a frame index is outside
	// [0, total frames).
	ErrOutOfRange = errors.New("frame index out of range")
	// ErrInvalidRate is returned when a tick interval cannot be computed
	// because the frame rate or speed is not positive.
	ErrInvalidRate = errors.New("invalid frame rate")
	// ErrEndOfStream is wrapped by SeekError when playback reads past the
	// last frame.
	ErrEndOfStream = errors.New("end of stream")
)

// OpenError reports a video that could not be opened or demuxed.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// SeekError reports a failed seek or decode. Current state is unchanged.
type SeekError struct {
	Index int
	Err   error
}

func (e *SeekError) Error() string {
	return fmt.Sprintf("seek to frame %d: %v", e.Index, e.Err)
}

func (e *SeekError) Unwrap() error { return e.Err }

// ParseError reports timestamp text that is not a finite number of seconds.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid timestamp %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExportError reports a failed still export. The capture is kept.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
