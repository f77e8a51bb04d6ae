package video

// Command is one operator action. The set is closed; see the types below.
type Command interface {
	apply(p *Player) (Outcome, error)
}

// Outcome carries what the caller must act on after a command.
type Outcome struct {
	// Tick is the handle to schedule; zero means schedule nothing.
	Tick TickHandle
	// Exported is the file written by an export, empty when none was.
	Exported string
}

type (
	Open           struct{ Path string }
	SelectLut      struct{ Path string }
	Seek           struct{ Index int }
	SeekTimestamp  struct{ Text string }
	Step           struct{ Frames int }
	StepSeconds    struct{ Seconds float64 }
	SeekEnd        struct{}
	Play           struct{}
	Pause          struct{}
	TogglePlay     struct{}
	SetSpeed       struct{ Speed float64 }
	Tick           struct{ Handle TickHandle }
	CaptureFrame   struct{}
	DeleteCapture  struct{}
	ApplyLut       struct{}
	ExportOriginal struct{ Dir string }
	ExportLut      struct{ Dir string }
)

func (c Open) apply(p *Player) (Outcome, error) {
	return Outcome{}, p.openVideo(c.Path, true)
}

func (c SelectLut) apply(p *Player) (Outcome, error) {
	if c.Path == "" {
		return Outcome{}, nil
	}
	p.paths.LutPath = c.Path
	p.persist()
	return Outcome{}, nil
}

func (c Seek) apply(p *Player) (Outcome, error) {
	return Outcome{}, p.nav.SeekToFrame(c.Index)
}

func (c SeekTimestamp) apply(p *Player) (Outcome, error) {
	return Outcome{}, p.nav.SeekToTimestamp(c.Text)
}

func (c Step) apply(p *Player) (Outcome, error) {
	return Outcome{}, p.nav.Step(c.Frames)
}

func (c StepSeconds) apply(p *Player) (Outcome, error) {
	return Outcome{}, p.nav.StepSeconds(c.Seconds)
}

func (SeekEnd) apply(p *Player) (Outcome, error) {
	total, err := p.source.FrameCount()
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{}, p.nav.SeekToFrame(total - 1)
}

func (Play) apply(p *Player) (Outcome, error) {
	if p.clock.IsPlaying() {
		return Outcome{}, nil
	}
	h, err := p.clock.Play()
	return Outcome{Tick: h}, err
}

func (Pause) apply(p *Player) (Outcome, error) {
	p.clock.Pause()
	return Outcome{}, nil
}

func (TogglePlay) apply(p *Player) (Outcome, error) {
	if p.clock.IsPlaying() {
		return Pause{}.apply(p)
	}
	return Play{}.apply(p)
}

func (c SetSpeed) apply(p *Player) (Outcome, error) {
	h, err := p.clock.SetSpeed(c.Speed)
	return Outcome{Tick: h}, err
}

func (c Tick) apply(p *Player) (Outcome, error) {
	next, ok := p.clock.Tick(c.Handle)
	if !ok {
		return Outcome{}, nil
	}
	return Outcome{Tick: next}, nil
}

func (CaptureFrame) apply(p *Player) (Outcome, error) {
	fps, err := p.source.FrameRate()
	if err != nil {
		return Outcome{}, err
	}
	p.capture.Capture(p.nav.Current(), fps)
	return Outcome{}, nil
}

func (DeleteCapture) apply(p *Player) (Outcome, error) {
	p.capture.Clear()
	return Outcome{}, nil
}

func (ApplyLut) apply(p *Player) (Outcome, error) {
	p.capture.ApplyLutPreview(p.paths.LutPath)
	return Outcome{}, nil
}

func (c ExportOriginal) apply(p *Player) (Outcome, error) {
	path, err := p.capture.ExportOriginal(c.Dir)
	return Outcome{Exported: path}, err
}

func (c ExportLut) apply(p *Player) (Outcome, error) {
	path, err := p.capture.ExportWithLut(c.Dir)
	return Outcome{Exported: path}, err
}
