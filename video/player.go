package video

import (
	"fmt"

	"framegrab/applog"
	"framegrab/session"
)

// SessionStore persists the selected paths. session.Store satisfies it.
type SessionStore interface {
	Save(session.Session) error
}

// Player wires the frame source, navigator, playback clock and capture
// buffer together. All mutation goes through Dispatch from one goroutine.
type Player struct {
	source  *FrameSource
	nav     *Navigator
	clock   *Clock
	capture *CaptureBuffer
	store   SessionStore
	paths   session.Session
}

func NewPlayer(decoder Decoder, store SessionStore) *Player {
	source := NewFrameSource(decoder)
	nav := NewNavigator(source)
	return &Player{
		source:  source,
		nav:     nav,
		clock:   NewClock(nav, source),
		capture: NewCaptureBuffer(),
		store:   store,
	}
}

// SetRenderFunc installs the callback that receives every published frame.
func (p *Player) SetRenderFunc(fn RenderFunc) {
	p.nav.SetRenderFunc(fn)
}

func (p *Player) Source() *FrameSource { return p.source }
func (p *Player) Navigator() *Navigator { return p.nav }
func (p *Player) Clock() *Clock { return p.clock }
func (p *Player) Capture() *CaptureBuffer { return p.capture }
func (p *Player) Paths() session.Session { return p.paths }
func (p *Player) HasVideo() bool { return p.source.Session() != nil }
func (p *Player) Session() *VideoSession { return p.source.Session() }

func (p *Player) Properties() *VideoProperties {
	if s := p.source.Session(); s != nil {
		return s.Properties
	}
	return nil
}

// Restore applies a remembered session at startup. The LUT path is taken as
// is; the video is reopened only if it is still there. Nothing is saved.
func (p *Player) Restore(s session.Session) error {
	p.paths.LutPath = s.LutPath
	if s.VideoPath == "" {
		return nil
	}
	return p.openVideo(s.VideoPath, false)
}

// Dispatch runs one command against the player.
func (p *Player) Dispatch(cmd Command) (Outcome, error) {
	return cmd.apply(p)
}

// Close stops playback and releases the decoder.
func (p *Player) Close() {
	p.clock.Pause()
	p.source.Close()
}

func (p *Player) openVideo(path string, persist bool) error {
	p.clock.Pause()
	p.nav.Reset()
	if _, err := p.source.Open(path); err != nil {
		return err
	}
	p.paths.VideoPath = path
	if persist {
		p.persist()
	}
	total, _ := p.source.FrameCount()
	if total == 0 {
		return nil
	}
	if err := p.nav.SeekToFrame(0); err != nil {
		return fmt.Errorf("read first frame: %w", err)
	}
	return nil
}

func (p *Player) persist() {
	if p.store == nil {
		return
	}
	if err := p.store.Save(p.paths); err != nil {
		applog.LogWarn("save session: %v", err)
	}
}
