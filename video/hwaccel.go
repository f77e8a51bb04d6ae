package video

import (
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

type HWAccelType string

const (
	HWAccelNone         HWAccelType = ""
	HWAccelVideoToolbox HWAccelType = "videotoolbox" // macOS
	HWAccelVAAPI        HWAccelType = "vaapi"        // Linux
	HWAccelCUDA         HWAccelType = "cuda"         // NVIDIA
	HWAccelDXVA2        HWAccelType = "dxva2"        // Windows
)

type HWAccelConfig struct {
	Type      HWAccelType
	Available bool
}

var (
	hwAccelOnce   sync.Once
	hwAccelConfig HWAccelConfig
)

// DetectHWAccel asks ffmpeg once per process which decoders it can offload to.
func DetectHWAccel() HWAccelConfig {
	hwAccelOnce.Do(func() {
		hwAccelConfig = selectHWAccel(runtime.GOOS, getAvailableHWAccels())
	})
	return hwAccelConfig
}

func selectHWAccel(goos string, availableAccels []string) HWAccelConfig {
	switch goos {
	case "darwin":
		if contains(availableAccels, "videotoolbox") {
			return HWAccelConfig{Type: HWAccelVideoToolbox, Available: true}
		}
	case "linux":
		// Prefer CUDA if available (usually faster)
		if contains(availableAccels, "cuda") {
			return HWAccelConfig{Type: HWAccelCUDA, Available: true}
		}
		if contains(availableAccels, "vaapi") {
			return HWAccelConfig{Type: HWAccelVAAPI, Available: true}
		}
	case "windows":
		if contains(availableAccels, "dxva2") {
			return HWAccelConfig{Type: HWAccelDXVA2, Available: true}
		}
		if contains(availableAccels, "cuda") {
			return HWAccelConfig{Type: HWAccelCUDA, Available: true}
		}
	}

	return HWAccelConfig{Type: HWAccelNone, Available: false}
}

func getAvailableHWAccels() []string {
	cmd := exec.Command("ffmpeg", "-hide_banner", "-hwaccels")
	output, err := cmd.Output()
	if err != nil {
		return nil
	}
	return parseHWAccels(string(output))
}

func parseHWAccels(output string) []string {
	var accels []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && line != "Hardware acceleration methods:" {
			accels = append(accels, line)
		}
	}
	return accels
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// Args returns the ffmpeg input flags for this config. They must come before -i.
func (c HWAccelConfig) Args() []string {
	if !c.Available || c.Type == HWAccelNone {
		return nil
	}
	return []string{"-hwaccel", string(c.Type)}
}

// Status returns a human-readable status of hardware acceleration
func (c HWAccelConfig) Status() string {
	if !c.Available {
		return "Software"
	}
	switch c.Type {
	case HWAccelVideoToolbox:
		return "VideoToolbox"
	case HWAccelVAAPI:
		return "VAAPI"
	case HWAccelCUDA:
		return "CUDA"
	case HWAccelDXVA2:
		return "DXVA2"
	default:
		return "Software"
	}
}
