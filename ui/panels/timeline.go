package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TimelineState is what the timeline panel displays.
type TimelineState struct {
	Index        int
	Total        int
	Timestamp    string
	Duration     float64
	Playing      bool
	Speed        float64
	CaptureIndex int // -1 when nothing is captured
	Status       string
	Footer       string
}

type Timeline struct{}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// BarWidth is the number of scrub bar cells for a content width.
func BarWidth(contentWidth int) int {
	return max(10, contentWidth-3)
}

// CellOf maps a frame index to its scrub bar cell. When the bar has at least
// as many cells as frames, ScrubIndex(CellOf(i)) == i.
func CellOf(index, total, barWidth int) int {
	if total <= 0 || barWidth <= 0 {
		return 0
	}
	cell := (index*barWidth + total - 1) / total
	return min(max(cell, 0), barWidth-1)
}

// ScrubIndex maps a scrub bar cell back to a frame index, clamped to the
// video.
func ScrubIndex(cell, barWidth, total int) int {
	if total <= 0 || barWidth <= 0 {
		return 0
	}
	cell = min(max(cell, 0), barWidth-1)
	return min(cell*total/barWidth, total-1)
}

func (t *Timeline) Render(width, height int, st TimelineState) string {
	playIcon := "▶ "
	if st.Playing {
		playIcon = "❚❚"
	}

	barWidth := BarWidth(width)

	frame := "-"
	if st.Total > 0 {
		frame = fmt.Sprintf("%d / %d", st.Index, st.Total-1)
	}
	line1 := fmt.Sprintf(" %s %ss / %.2fs  frame %s  %gx", playIcon, st.Timestamp, st.Duration, frame, st.Speed)
	line2 := " " + buildMarkerLine(barWidth, st)
	line3 := " " + buildProgressBar(barWidth, st)
	line4 := " " + buildCursorLine(barWidth, st)

	line5 := " " + st.Footer
	if st.Status != "" {
		line5 = " " + st.Status
	}

	content := strings.Join([]string{line1, line2, line3, line4, line5}, "\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Render(content)
}

func buildProgressBar(barWidth int, st TimelineState) string {
	if st.Total <= 0 {
		return "[" + strings.Repeat("-", barWidth) + "]"
	}

	posIdx := CellOf(st.Index, st.Total, barWidth)

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < barWidth; i++ {
		if i <= posIdx {
			bar.WriteString("=")
		} else {
			bar.WriteString("-")
		}
	}
	bar.WriteString("]")

	return bar.String()
}

func buildMarkerLine(barWidth int, st TimelineState) string {
	if st.Total <= 0 || st.CaptureIndex < 0 {
		return strings.Repeat(" ", barWidth+2)
	}

	captureStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)

	line := make([]string, barWidth+2)
	for i := range line {
		line[i] = " "
	}
	line[CellOf(st.CaptureIndex, st.Total, barWidth)+1] = captureStyle.Render("▼")

	return strings.Join(line, "")
}

func buildCursorLine(barWidth int, st TimelineState) string {
	if st.Total <= 0 {
		return strings.Repeat(" ", barWidth+2)
	}

	line := make([]rune, barWidth+2)
	for i := range line {
		line[i] = ' '
	}
	line[CellOf(st.Index, st.Total, barWidth)+1] = '▲'

	return string(line)
}
