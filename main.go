package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"framegrab/applog"
	"framegrab/config"
	"framegrab/session"
	"framegrab/ui"
	"framegrab/video"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.config/framegrab/config.toml)")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: framegrab [-config path] [video]")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, flag.Arg(0)); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, videoPath string) error {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Debug {
		applog.SetDebugMode(true)
	}

	// The terminal belongs to bubbletea, so logs go to a file.
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	logFile, err := tea.LogToFile(cfg.LogFile, "framegrab")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	applog.SetOutput(logFile)

	if err := video.CheckDependencies(); err != nil {
		return err
	}

	quality, err := video.ParseQuality(cfg.Quality)
	if err != nil {
		return err
	}

	store := session.NewStore(cfg.StateFile)
	player := video.NewPlayer(video.NewFFmpegDecoder(cfg.HWAccel), store)
	defer player.Close()

	if _, err := player.Dispatch(video.SetSpeed{Speed: cfg.Speed}); err != nil {
		return fmt.Errorf("speed %v: %w", cfg.Speed, err)
	}

	// The model installs the preview as the render callback, so it must exist
	// before the first frame is decoded.
	model := ui.NewModel(player, video.NewRenderer(quality), ui.Options{ExportDir: cfg.ExportDir})
	model.SetStatus(startVideo(player, store, videoPath))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// startVideo opens the video named on the command line, or restores the
// previous session. It returns the first status line to show.
func startVideo(player *video.Player, store *session.Store, videoPath string) string {
	last := store.Load()

	if videoPath != "" {
		if err := player.Restore(session.Session{LutPath: last.LutPath}); err != nil {
			applog.LogWarn("restore LUT: %v", err)
		}
		if _, err := player.Dispatch(video.Open{Path: videoPath}); err != nil {
			applog.LogError("open %s: %v", videoPath, err)
			return "Failed to open video: " + err.Error()
		}
		return "Opened " + filepath.Base(videoPath)
	}

	if last.IsEmpty() {
		return ""
	}
	if err := player.Restore(last); err != nil {
		var openErr *video.OpenError
		if errors.As(err, &openErr) && errors.Is(openErr.Err, os.ErrNotExist) {
			return "Last video is gone: " + last.VideoPath
		}
		applog.LogWarn("restore %s: %v", last.VideoPath, err)
		return "Could not reopen last video: " + err.Error()
	}
	if last.VideoPath != "" {
		return "Resumed " + filepath.Base(last.VideoPath)
	}
	return ""
}
