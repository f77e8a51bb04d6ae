// Package config loads framegrab's TOML configuration from
// ~/.config/framegrab/config.toml, falling back to defaults when the file
// is missing or a field is left empty.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds resolved settings. Paths are absolute.
type Config struct {
	StateFile string
	ExportDir string
	LogFile   string
	Speed     float64
	Quality   string
	HWAccel   bool
	Debug     bool
}

const (
	defaultConfigPath = "~/.config/framegrab/config.toml"
	defaultStateFile  = "~/.config/framegrab/app_state.txt"
	defaultLogFile    = "~/.local/state/framegrab/framegrab.log"
	defaultExportDir  = "."
	defaultSpeed      = 1.0
	defaultQuality    = "high"
)

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		StateFile: mustExpand(defaultStateFile),
		ExportDir: mustExpand(defaultExportDir),
		LogFile:   mustExpand(defaultLogFile),
		Speed:     defaultSpeed,
		Quality:   defaultQuality,
	}
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config. A missing file is not an error; an
// unreadable or malformed one is.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		StateFile string  `toml:"state_file"`
		ExportDir string  `toml:"export_dir"`
		LogFile   string  `toml:"log_file"`
		Speed     float64 `toml:"speed"`
		Quality   string  `toml:"quality"`
		HWAccel   bool    `toml:"hwaccel"`
		Debug     bool    `toml:"debug"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.StateFile); v != "" {
		cfg.StateFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.ExportDir); v != "" {
		cfg.ExportDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if raw.Speed != 0 {
		if raw.Speed < 0 || math.IsNaN(raw.Speed) || math.IsInf(raw.Speed, 0) {
			return Config{}, fmt.Errorf("parse config: speed must be positive, got %v", raw.Speed)
		}
		cfg.Speed = raw.Speed
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Quality)); v != "" {
		switch v {
		case "low", "medium", "high":
			cfg.Quality = v
		default:
			return Config{}, fmt.Errorf("parse config: unknown quality %q", raw.Quality)
		}
	}
	cfg.HWAccel = raw.HWAccel
	cfg.Debug = raw.Debug

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
