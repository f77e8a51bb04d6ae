package video_test

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"framegrab/video"
	"framegrab/video/videotest"
)

func TestCapture_IsDeepCopy(t *testing.T) {
	p, _, _ := openPlayer(t, 30, 900)
	if _, err := p.Dispatch(video.Seek{Index: 300}); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if _, err := p.Dispatch(video.CaptureFrame{}); err != nil {
		t.Fatalf("CaptureFrame: %v", err)
	}

	current := p.Navigator().Current()
	captured := p.Capture().Captured()
	if &captured.Image.Pix[0] == &current.Image.Pix[0] {
		t.Fatalf("captured pixels alias the current frame")
	}

	// Moving on must not disturb the still.
	if _, err := p.Dispatch(video.Step{Frames: 1}); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := videotest.IndexOf(captured.Image); got != 300 {
		t.Fatalf("captured pixels now show frame %d, want 300", got)
	}
	if captured.SourceIndex != 300 || captured.Timestamp != 10.0 {
		t.Fatalf("captured = index %d ts %v, want 300 and 10", captured.SourceIndex, captured.Timestamp)
	}
}

func TestCapture_ReplacesAndClearResets(t *testing.T) {
	p, _, _ := openPlayer(t, 30, 900)
	buf := p.Capture()

	p.Dispatch(video.CaptureFrame{})
	p.Dispatch(video.SelectLut{Path: "/luts/warm.cube"})
	p.Dispatch(video.ApplyLut{})
	if !buf.HasLutPreview() {
		t.Fatalf("HasLutPreview = false after ApplyLut")
	}

	p.Dispatch(video.Seek{Index: 60})
	p.Dispatch(video.CaptureFrame{})
	if buf.Captured().SourceIndex != 60 {
		t.Fatalf("SourceIndex = %d, want 60", buf.Captured().SourceIndex)
	}
	if buf.HasLutPreview() {
		t.Fatalf("new capture kept the old LUT preview")
	}

	for i := 0; i < 2; i++ {
		p.Dispatch(video.DeleteCapture{})
		if buf.HasCapture() || buf.HasLutPreview() || buf.Captured() != nil {
			t.Fatalf("Clear #%d left state behind", i+1)
		}
	}
	dir := t.TempDir()
	out, err := p.Dispatch(video.ExportOriginal{Dir: dir})
	if err != nil || out.Exported != "" {
		t.Fatalf("export after clear = %q, %v; want no-op", out.Exported, err)
	}
}

func TestApplyLutPreview_NoOps(t *testing.T) {
	buf := video.NewCaptureBuffer()
	if buf.ApplyLutPreview("/luts/warm.cube") {
		t.Fatalf("ApplyLutPreview without capture returned true")
	}

	p, _, _ := openPlayer(t, 30, 10)
	p.Dispatch(video.CaptureFrame{})
	if p.Capture().ApplyLutPreview("") {
		t.Fatalf("ApplyLutPreview with empty path returned true")
	}
	if p.Capture().HasLutPreview() {
		t.Fatalf("HasLutPreview = true after no-op")
	}
}

func TestApplyLutPreview_IsUnmodifiedCopy(t *testing.T) {
	p, _, _ := openPlayer(t, 30, 10)
	p.Dispatch(video.Seek{Index: 7})
	p.Dispatch(video.CaptureFrame{})
	p.Capture().ApplyLutPreview("grade.cube")

	c := p.Capture().Captured()
	if &c.LutPreview.Pix[0] == &c.Image.Pix[0] {
		t.Fatalf("LUT preview aliases the captured pixels")
	}
	if string(c.LutPreview.Pix) != string(c.Image.Pix) {
		t.Fatalf("LUT preview differs from the captured frame")
	}
}

func TestExportOriginal_NamesFileByTimestamp(t *testing.T) {
	p, _, _ := openPlayer(t, 30, 900)
	p.Dispatch(video.Seek{Index: 300})
	p.Dispatch(video.CaptureFrame{})

	dir := t.TempDir()
	out, err := p.Dispatch(video.ExportOriginal{Dir: dir})
	if err != nil {
		t.Fatalf("ExportOriginal: %v", err)
	}
	want := filepath.Join(dir, "frame_10.00.png")
	if out.Exported != want {
		t.Fatalf("Exported = %q, want %q", out.Exported, want)
	}

	f, err := os.Open(want)
	if err != nil {
		t.Fatalf("Open export: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if videotest.IndexOf(img) != 300 {
		t.Fatalf("exported pixels show frame %d, want 300", videotest.IndexOf(img))
	}
}

func TestExportWithLut(t *testing.T) {
	p, _, _ := openPlayer(t, 30, 900)
	p.Dispatch(video.Seek{Index: 45})
	p.Dispatch(video.CaptureFrame{})
	dir := t.TempDir()

	out, err := p.Dispatch(video.ExportLut{Dir: dir})
	if err != nil || out.Exported != "" {
		t.Fatalf("ExportLut before preview = %q, %v; want no-op", out.Exported, err)
	}

	p.Dispatch(video.SelectLut{Path: "look.cube"})
	p.Dispatch(video.ApplyLut{})
	out, err = p.Dispatch(video.ExportLut{Dir: dir})
	if err != nil {
		t.Fatalf("ExportLut: %v", err)
	}
	if want := filepath.Join(dir, "frame_1.50_with_lut.png"); out.Exported != want {
		t.Fatalf("Exported = %q, want %q", out.Exported, want)
	}
}

func TestExport_UnwritableDirectory(t *testing.T) {
	p, _, _ := openPlayer(t, 30, 10)
	p.Dispatch(video.CaptureFrame{})

	missing := filepath.Join(t.TempDir(), "nope")
	_, err := p.Dispatch(video.ExportOriginal{Dir: missing})
	var exportErr *video.ExportError
	if !errors.As(err, &exportErr) {
		t.Fatalf("ExportOriginal error = %v, want *ExportError", err)
	}
	if !p.Capture().HasCapture() {
		t.Fatalf("failed export dropped the capture")
	}
}

func TestExportFileName(t *testing.T) {
	cases := []struct {
		ts      float64
		withLut bool
		want    string
	}{
		{10, false, "frame_10.00.png"},
		{0, true, "frame_0.00_with_lut.png"},
		{3.14159, false, "frame_3.14.png"},
	}
	for _, tc := range cases {
		if got := video.ExportFileName(tc.ts, tc.withLut); got != tc.want {
			t.Fatalf("ExportFileName(%v, %v) = %q, want %q", tc.ts, tc.withLut, got, tc.want)
		}
	}
}

func TestFileFilters(t *testing.T) {
	for _, path := range []string{"a.mp4", "B.MKV", "/x/y.avi"} {
		if !video.IsVideoFile(path) {
			t.Fatalf("IsVideoFile(%q) = false", path)
		}
	}
	if video.IsVideoFile("notes.txt") || !video.IsLutFile("look.CUBE") || video.IsLutFile("look.3dl") {
		t.Fatalf("extension filters misclassified")
	}
}
