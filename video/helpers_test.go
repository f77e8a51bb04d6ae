package video_test

import (
	"os"
	"path/filepath"
	"testing"

	"framegrab/session"
	"framegrab/video"
	"framegrab/video/videotest"
)

// touchVideo creates an empty file so FrameSource.Open's existence check
// passes; the videotest decoder never reads it.
func touchVideo(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

type memoryStore struct {
	saved []session.Session
	err   error
}

func (m *memoryStore) Save(s session.Session) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, s)
	return nil
}

// openPlayer returns a player with a video of n frames at fps open, and a
// pointer to the indexes its render callback has received.
func openPlayer(t *testing.T, fps float64, n int) (*video.Player, *videotest.Decoder, *[]int) {
	t.Helper()
	dec := videotest.New(fps, n)
	p := video.NewPlayer(dec, &memoryStore{})
	var rendered []int
	p.SetRenderFunc(func(f *video.Frame) {
		rendered = append(rendered, f.Index)
	})
	if _, err := p.Dispatch(video.Open{Path: touchVideo(t, "clip.mp4")}); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return p, dec, &rendered
}
