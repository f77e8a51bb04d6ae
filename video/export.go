package video

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

var (
	// VideoExtensions are offered by the video file picker. FrameSource still
	// probes the file, the extension is only a filter.
	VideoExtensions = []string{".mp4", ".avi", ".mkv"}
	// LutExtensions are offered by the LUT file picker.
	LutExtensions = []string{".cube"}
)

func IsVideoFile(path string) bool {
	return hasExtension(path, VideoExtensions)
}

func IsLutFile(path string) bool {
	return hasExtension(path, LutExtensions)
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// ExportFileName is frame_<seconds>.png or frame_<seconds>_with_lut.png with
// seconds printed to two decimals.
func ExportFileName(timestamp float64, withLut bool) string {
	if withLut {
		return fmt.Sprintf("frame_%.2f_with_lut.png", timestamp)
	}
	return fmt.Sprintf("frame_%.2f.png", timestamp)
}

func exportStill(dir, name string, img image.Image) (string, error) {
	output := filepath.Join(dir, name)

	info, err := os.Stat(dir)
	if err != nil {
		return "", &ExportError{Path: output, Err: err}
	}
	if !info.IsDir() {
		return "", &ExportError{Path: output, Err: fmt.Errorf("%s is not a directory", dir)}
	}

	file, err := os.Create(output)
	if err != nil {
		return "", &ExportError{Path: output, Err: err}
	}
	if err := png.Encode(file, img); err != nil {
		_ = file.Close()
		_ = os.Remove(output)
		return "", &ExportError{Path: output, Err: err}
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(output)
		return "", &ExportError{Path: output, Err: err}
	}
	return output, nil
}
