package panels

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"framegrab/applog"
	"framegrab/video"

	"github.com/charmbracelet/lipgloss"
)

// thumbHeight is the cell height of each capture thumbnail.
const thumbHeight = 6

// PropertiesInfo is what the properties panel displays.
type PropertiesInfo struct {
	Props     *video.VideoProperties
	Quality   video.QualityPreset
	Speed     float64
	LutPath   string
	ExportDir string
}

// Properties represents the video properties panel, with thumbnails of the
// captured still and its LUT preview underneath.
type Properties struct {
	renderer FrameRenderer
	capture  *video.CapturedFrame
	still    string
	graded   string
}

// NewProperties creates a new Properties panel
func NewProperties(renderer FrameRenderer) *Properties {
	return &Properties{renderer: renderer}
}

// SetCapture redraws the thumbnails for c, which may be nil, at width cells.
func (p *Properties) SetCapture(c *video.CapturedFrame, width int) {
	p.capture = c
	p.still, p.graded = "", ""
	if c == nil {
		return
	}
	p.still = p.thumbnail("capture", c.SourceIndex, c.Image, width)
	if c.LutPreview != nil {
		p.graded = p.thumbnail("lut", c.SourceIndex, c.LutPreview, width)
	}
}

func (p *Properties) thumbnail(variant string, index int, img image.Image, width int) string {
	out, err := p.renderer.Render(variant, index, img, width, thumbHeight)
	if err != nil {
		applog.LogWarn("render %s thumbnail: %v", variant, err)
		return ""
	}
	return out
}

// Render renders the properties panel
func (p *Properties) Render(width, height int, info PropertiesInfo) string {
	box := lipgloss.NewStyle().Width(width).Height(height)
	props := info.Props
	if props == nil {
		return box.Render("No video")
	}

	var lines []string

	labelStyle := lipgloss.NewStyle().Width(12)
	valueStyle := lipgloss.NewStyle()
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	addLine := func(label, value string) {
		line := labelStyle.Render(label) + valueStyle.Render(value)
		lines = append(lines, line)
	}

	addLine("Resolution", props.Resolution())
	addLine("Codec", props.Codec)
	addLine("FPS", props.FormattedFPS())
	addLine("Frames", fmt.Sprintf("%d", props.FrameCount))
	addLine("Bitrate", props.FormattedBitrate())
	addLine("Size", props.FormattedFileSize())
	addLine("Duration", props.FormattedDuration())
	addLine("Speed", fmt.Sprintf("%gx", info.Speed))

	qualityColor := "243" // gray for LOW
	if info.Quality == video.QualityMedium {
		qualityColor = "214" // orange
	} else if info.Quality == video.QualityHigh {
		qualityColor = "46" // green
	}
	qualityStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(qualityColor))
	addLine("Quality", qualityStyle.Render(info.Quality.String()))

	lut := dimStyle.Render("none")
	if info.LutPath != "" {
		lut = truncate(filepath.Base(info.LutPath), width-12)
	}
	addLine("LUT", lut)
	addLine("Export to", truncate(info.ExportDir, width-12))

	if c := p.capture; c != nil {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("Captured  frame %d @ %.2fs", c.SourceIndex, c.Timestamp))
		if p.still != "" {
			lines = append(lines, p.still)
		}
		if c.LutPreview != nil {
			lines = append(lines, "With LUT")
			if p.graded != "" {
				lines = append(lines, p.graded)
			}
		}
	}

	return box.Render(strings.Join(lines, "\n"))
}

// truncate keeps the tail of s, which is the informative end of a path.
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return "…" + string(r[len(r)-width+1:])
}
