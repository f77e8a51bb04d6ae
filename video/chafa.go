package video

import (
	"bytes"
	"fmt"
	"image"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

type QualityPreset int

const (
	QualityLow QualityPreset = iota
	QualityMedium
	QualityHigh
)

func (q QualityPreset) String() string {
	switch q {
	case QualityLow:
		return "LOW"
	case QualityMedium:
		return "MEDIUM"
	case QualityHigh:
		return "HIGH"
	}
	return "UNKNOWN"
}

func (q QualityPreset) Next() QualityPreset {
	return (q + 1) % 3
}

// ParseQuality maps a config value (low, medium, high) to a preset.
func ParseQuality(s string) (QualityPreset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return QualityLow, nil
	case "medium":
		return QualityMedium, nil
	case "high", "":
		return QualityHigh, nil
	}
	return QualityHigh, fmt.Errorf("unknown quality %q", s)
}

type ChafaConfig struct {
	Colors         string
	Optimize       int
	Work           int
	ColorSpace     string
	Dither         string
	ColorExtractor string
}

var ChafaPresets = map[QualityPreset]ChafaConfig{
	QualityLow: {
		Colors: "256", Optimize: 9, Work: 1,
		ColorSpace: "rgb", Dither: "none", ColorExtractor: "average",
	},
	QualityMedium: {
		Colors: "256", Optimize: 5, Work: 5,
		ColorSpace: "rgb", Dither: "ordered", ColorExtractor: "average",
	},
	QualityHigh: {
		Colors: "full", Optimize: 3, Work: 9,
		ColorSpace: "din99d", Dither: "diffusion", ColorExtractor: "median",
	},
}

func (c ChafaConfig) BuildArgs(width, height int) []string {
	return []string{
		"--format=symbols",
		"--size", fmt.Sprintf("%dx%d", width, height),
		"--colors", c.Colors,
		"-O", strconv.Itoa(c.Optimize),
		"--work", strconv.Itoa(c.Work),
		"--color-space", c.ColorSpace,
		"--dither", c.Dither,
		"--color-extractor", c.ColorExtractor,
		"-",
	}
}

// pixelsPerCell bounds how much detail is piped to chafa per terminal column.
const pixelsPerCell = 8

// Renderer turns frames into terminal graphics with chafa and caches the
// result per frame, size and quality.
type Renderer struct {
	quality QualityPreset
	cache   *FrameCache
}

func NewRenderer(quality QualityPreset) *Renderer {
	return &Renderer{
		quality: quality,
		cache:   NewFrameCache(DefaultCacheCapacity),
	}
}

func (r *Renderer) Quality() QualityPreset { return r.quality }

func (r *Renderer) CycleQuality() QualityPreset {
	r.quality = r.quality.Next()
	return r.quality
}

// Reset forgets cached renders. Frame indexes are only unique per video.
func (r *Renderer) Reset() {
	r.cache.Clear()
}

// Render returns img drawn into a width x height cell box. variant separates
// the live frame from the captured still and its LUT preview.
func (r *Renderer) Render(variant string, index int, img image.Image, width, height int) (string, error) {
	if img == nil || width <= 0 || height <= 0 {
		return "", nil
	}
	key := CacheKey{Variant: variant, Index: index, Width: width, Height: height, Quality: r.quality}
	if out, ok := r.cache.Get(key); ok {
		return out, nil
	}

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, Thumbnail(img, width*pixelsPerCell)); err != nil {
		return "", fmt.Errorf("encode frame: %w", err)
	}

	chafaCmd := exec.Command("chafa", ChafaPresets[r.quality].BuildArgs(width, height)...)
	chafaCmd.Stdin = &buf
	var chafaOut bytes.Buffer
	chafaCmd.Stdout = &chafaOut
	if err := chafaCmd.Run(); err != nil {
		return "", fmt.Errorf("chafa: %w", err)
	}

	out := chafaOut.String()
	r.cache.Put(key, out)
	return out, nil
}

// Thumbnail scales img down so it is at most maxWidth pixels wide, keeping
// the aspect ratio. Smaller images are returned as is.
func Thumbnail(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := max(1, b.Dy()*maxWidth/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
