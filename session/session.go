// Package session remembers the last opened video and LUT paths between
// runs. The record is two newline-terminated lines: video path, LUT path.
package session

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"framegrab/applog"
)

// Session is the persisted pair of paths. Either may be empty.
type Session struct {
	VideoPath string
	LutPath   string
}

// IsEmpty reports whether neither path is set.
func (s Session) IsEmpty() bool {
	return s.VideoPath == "" && s.LutPath == ""
}

// ErrNewlineInPath is returned by Save when a path would corrupt the
// line-oriented record.
var ErrNewlineInPath = errors.New("path contains a newline")

// Store reads and writes the session record at Path.
type Store struct {
	Path string
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load returns the remembered session. A missing file, a record with fewer
// than two lines, or a read failure all yield an empty Session; the problem
// is logged, never returned.
func (s *Store) Load() Session {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applog.LogDebug("no session record at %s", s.Path)
		} else {
			applog.LogWarn("load session: %v", err)
		}
		return Session{}
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		applog.LogWarn("load session: %v", err)
		return Session{}
	}
	if len(lines) < 2 {
		applog.LogWarn("load session: malformed record in %s (%d lines)", s.Path, len(lines))
		return Session{}
	}

	return Session{
		VideoPath: strings.TrimSpace(lines[0]),
		LutPath:   strings.TrimSpace(lines[1]),
	}
}

// Save overwrites the record. The write goes to a sibling temp file that is
// renamed into place, so readers see either the old or the new record.
func (s *Store) Save(sess Session) error {
	if strings.ContainsAny(sess.VideoPath, "\r\n") || strings.ContainsAny(sess.LutPath, "\r\n") {
		return ErrNewlineInPath
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := fmt.Fprintf(tmp, "%s\n%s\n", sess.VideoPath, sess.LutPath); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}
