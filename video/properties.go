package video

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

type VideoProperties struct {
	Width      int
	Height     int
	Codec      string
	FPS        float64
	FrameCount int
	Bitrate    int64
	FileSize   int64
	Duration   time.Duration
}

type ffprobeOutput struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		CodecName  string `json:"codec_name"`
		RFrameRate string `json:"r_frame_rate"`
		NbFrames   string `json:"nb_frames"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
		Size     string `json:"size"`
		BitRate  string `json:"bit_rate"`
	} `json:"format"`
}

func GetVideoProperties(path string) (*VideoProperties, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "format=duration,size,bit_rate",
		"-show_entries", "stream=codec_type,width,height,codec_name,r_frame_rate,nb_frames",
		"-of", "json",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseProbeOutput(output, path)
}

func parseProbeOutput(output []byte, path string) (*VideoProperties, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	props := &VideoProperties{}
	found := false
	nbFrames := ""

	for _, stream := range probe.Streams {
		if stream.CodecType != "" && stream.CodecType != "video" {
			continue
		}
		if stream.Width > 0 && stream.Height > 0 {
			props.Width = stream.Width
			props.Height = stream.Height
			props.Codec = stream.CodecName
			props.FPS = parseFrameRate(stream.RFrameRate)
			nbFrames = stream.NbFrames
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("no video stream")
	}

	if probe.Format.Duration != "" {
		seconds, _ := strconv.ParseFloat(probe.Format.Duration, 64)
		props.Duration = time.Duration(seconds * float64(time.Second))
	}

	if probe.Format.Size != "" {
		props.FileSize, _ = strconv.ParseInt(probe.Format.Size, 10, 64)
	}

	if probe.Format.BitRate != "" {
		props.Bitrate, _ = strconv.ParseInt(probe.Format.BitRate, 10, 64)
	}

	// Containers like mkv do not store a frame count; derive it from the
	// duration instead.
	if n, err := strconv.Atoi(nbFrames); err == nil && n > 0 {
		props.FrameCount = n
	} else if props.FPS > 0 {
		props.FrameCount = int(math.Round(props.Duration.Seconds() * props.FPS))
	}

	if props.FileSize == 0 && path != "" {
		if info, err := os.Stat(path); err == nil {
			props.FileSize = info.Size()
		}
	}

	return props, nil
}

func parseFrameRate(s string) float64 {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0
	}
	num, _ := strconv.ParseFloat(parts[0], 64)
	den, _ := strconv.ParseFloat(parts[1], 64)
	if den == 0 {
		return 0
	}
	return num / den
}

func (p *VideoProperties) Resolution() string {
	return fmt.Sprintf("%dx%d", p.Width, p.Height)
}

func (p *VideoProperties) FormattedFPS() string {
	return fmt.Sprintf("%.2f fps", p.FPS)
}

func (p *VideoProperties) FormattedBitrate() string {
	if p.Bitrate == 0 {
		return "N/A"
	}
	return humanize.SIWithDigits(float64(p.Bitrate), 1, "bps")
}

func (p *VideoProperties) FormattedFileSize() string {
	if p.FileSize == 0 {
		return "N/A"
	}
	return humanize.IBytes(uint64(p.FileSize))
}

func (p *VideoProperties) FormattedDuration() string {
	total := int(p.Duration.Seconds())
	mins := total / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d", mins, secs)
}
