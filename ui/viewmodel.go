package ui

import (
	"time"

	"framegrab/video"
)

// ViewModel is what the panels show. It is derived from the player on every
// frame and never written back.
type ViewModel struct {
	HasVideo    bool
	CanNavigate bool

	Index     int
	Total     int
	Timestamp string
	FPS       float64

	Playing      bool
	Speed        float64
	TickInterval time.Duration

	HasCapture       bool
	CaptureIndex     int
	CaptureTimestamp float64

	ShowDelete         bool
	ShowApplyLut       bool
	ShowExportOriginal bool
	ShowExportLut      bool

	VideoPath string
	LutPath   string
}

// Project derives the view model from p.
func Project(p *video.Player) ViewModel {
	paths := p.Paths()
	clock := p.Clock()
	nav := p.Navigator()

	vm := ViewModel{
		Index:     nav.Index(),
		Timestamp: nav.Timestamp(),
		Playing:   clock.IsPlaying(),
		Speed:     clock.Speed(),
		VideoPath: paths.VideoPath,
		LutPath:   paths.LutPath,
	}

	if s := p.Session(); s != nil {
		vm.HasVideo = true
		vm.Total = s.TotalFrames
		vm.FPS = s.FPS
		vm.CanNavigate = s.TotalFrames > 0
		if d, err := clock.Interval(); err == nil {
			vm.TickInterval = d
		}
	}

	buf := p.Capture()
	if c := buf.Captured(); c != nil {
		vm.HasCapture = true
		vm.CaptureIndex = c.SourceIndex
		vm.CaptureTimestamp = c.Timestamp
	}
	vm.ShowDelete = vm.HasCapture
	vm.ShowApplyLut = vm.HasCapture && vm.LutPath != ""
	vm.ShowExportOriginal = vm.HasCapture
	vm.ShowExportLut = buf.HasLutPreview()
	return vm
}
