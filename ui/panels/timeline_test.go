package panels

import (
	"strings"
	"testing"
)

func TestScrubIndex_RoundTripsWhenBarIsWide(t *testing.T) {
	cases := []struct {
		total, barWidth int
	}{
		{1, 10},
		{3, 10},
		{9, 10},
		{10, 10},
		{57, 120},
	}
	for _, tc := range cases {
		for i := 0; i < tc.total; i++ {
			cell := CellOf(i, tc.total, tc.barWidth)
			if got := ScrubIndex(cell, tc.barWidth, tc.total); got != i {
				t.Fatalf("total %d width %d: ScrubIndex(CellOf(%d) = %d) = %d", tc.total, tc.barWidth, i, cell, got)
			}
		}
	}
}

func TestScrubIndex_Clamps(t *testing.T) {
	if got := ScrubIndex(-5, 100, 900); got != 0 {
		t.Fatalf("ScrubIndex(-5) = %d, want 0", got)
	}
	if got := ScrubIndex(250, 100, 900); got != 891 {
		t.Fatalf("ScrubIndex(250) = %d, want 891 (last cell)", got)
	}
	if got := ScrubIndex(50, 100, 900); got != 450 {
		t.Fatalf("ScrubIndex(50) = %d, want 450", got)
	}
	if got := ScrubIndex(3, 100, 0); got != 0 {
		t.Fatalf("ScrubIndex on empty video = %d, want 0", got)
	}
}

func TestCellOf_StaysOnBar(t *testing.T) {
	for _, i := range []int{0, 1, 450, 899} {
		if c := CellOf(i, 900, 100); c < 0 || c >= 100 {
			t.Fatalf("CellOf(%d) = %d, outside the bar", i, c)
		}
	}
}

func TestTimelineRender_ShowsCursorAndStatus(t *testing.T) {
	out := NewTimeline().Render(40, 5, TimelineState{
		Index:        5,
		Total:        10,
		Timestamp:    "0.17",
		Duration:     0.33,
		Speed:        1,
		CaptureIndex: -1,
		Status:       "Exported: frame_0.17.png",
		Footer:       "space play",
	})
	if !strings.Contains(out, "▲") {
		t.Fatalf("timeline has no cursor:\n%s", out)
	}
	if strings.Contains(out, "▼") {
		t.Fatalf("timeline shows a capture marker without a capture:\n%s", out)
	}
	if !strings.Contains(out, "Exported: frame_0.17.png") || strings.Contains(out, "space play") {
		t.Fatalf("status should replace the footer:\n%s", out)
	}
	if !strings.Contains(out, "frame 5 / 9") {
		t.Fatalf("timeline missing frame counter:\n%s", out)
	}
}
