package panels

import (
	"image"

	"framegrab/applog"
	"framegrab/video"

	"github.com/charmbracelet/lipgloss"
)

// FrameRenderer draws an image into a box of terminal cells.
type FrameRenderer interface {
	Render(variant string, index int, img image.Image, width, height int) (string, error)
}

// Preview represents the video preview panel. It keeps the last rendered
// frame so View never has to shell out.
type Preview struct {
	renderer FrameRenderer
	width    int
	height   int
	last     *video.Frame
	frame    string
	err      error
}

// NewPreview creates a new Preview panel
func NewPreview(renderer FrameRenderer) *Preview {
	return &Preview{renderer: renderer}
}

// SetSize changes the frame box and redraws the last frame for it.
func (p *Preview) SetSize(width, height int) {
	if width == p.width && height == p.height {
		return
	}
	p.width, p.height = width, height
	if p.last != nil {
		p.Show(p.last)
	}
}

// Show renders frame. It is the navigator's render callback.
func (p *Preview) Show(frame *video.Frame) {
	p.last = frame
	if frame == nil {
		p.frame, p.err = "", nil
		return
	}
	out, err := p.renderer.Render("frame", frame.Index, frame.Image, p.width, p.height)
	if err != nil {
		applog.LogError("render frame %d: %v", frame.Index, err)
	}
	p.frame, p.err = out, err
}

// Clear drops the shown frame, e.g. when a new video replaces the old one.
func (p *Preview) Clear() {
	p.last, p.frame, p.err = nil, "", nil
}

// Render renders the preview panel
func (p *Preview) Render(width, height int, hasVideo bool) string {
	box := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	switch {
	case !hasVideo:
		return box.Render("Press o to open a video")
	case p.err != nil:
		return box.Render("Cannot draw frame: " + p.err.Error())
	case p.frame == "":
		return box.Render("No frame")
	}
	return box.Render(p.frame)
}
