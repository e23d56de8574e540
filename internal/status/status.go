// Package status publishes coarse worker lifecycle notifications to a
// shared JSON file for external visibility. The core engine does not
// depend on it; only the worker loop writes it and the dashboard reads
// it.
package status

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Well-known status values.
const (
	Idle       = "Idle"
	Processing = "Processing"
)

// Snapshot is what the dashboard sees.
type Snapshot struct {
	Status     string `json:"status"`
	Filename   string `json:"filename,omitempty"`
	LastUpdate string `json:"last_update"`
}

// Sink receives lifecycle notifications.
type Sink interface {
	Update(status, filename string) error
}

// FileSink writes snapshots to a JSON file. Writes go through a temp
// file and rename so the dashboard never reads a half-written snapshot.
type FileSink struct {
	path string
}

// NewFileSink creates a sink writing to the given path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Update implements Sink.
func (s *FileSink) Update(status, filename string) error {
	snap := Snapshot{
		Status:     status,
		Filename:   filename,
		LastUpdate: time.Now().Format("2006-01-02 15:04:05"),
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("status: marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("status: create status dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("status: write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("status: replace snapshot: %w", err)
	}
	return nil
}

// Read loads the current snapshot. A missing file reports an idle
// worker rather than an error; the worker may simply not have started.
func Read(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Snapshot{Status: Idle}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("status: read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("status: decode snapshot: %w", err)
	}
	return snap, nil
}
