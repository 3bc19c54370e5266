package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type TimingEntry struct {
	Step     string    `json:"step"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end,omitempty"`
	Duration string    `json:"duration,omitempty"`
}

// Timing records per-step durations of one build.
type Timing struct {
	mu      sync.Mutex
	BuildID string        `json:"build_id"`
	Entries []TimingEntry `json:"entries"`
}

func timingPath(stateDir string) string {
	return filepath.Join(stateDir, "timing.json")
}

// NewTiming starts an empty timing record for a build.
func NewTiming(buildID string) *Timing {
	return &Timing{BuildID: buildID}
}

// LoadTiming reads timing data from the state directory.
func LoadTiming(stateDir string) (*Timing, error) {
	data, err := os.ReadFile(timingPath(stateDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Timing{}, nil
		}
		return nil, err
	}
	var t Timing
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// AddStart appends a new timing entry for the given step.
func (t *Timing) AddStart(step string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Entries = append(t.Entries, TimingEntry{
		Step:  step,
		Start: time.Now(),
	})
}

// AddEnd records the end time for the most recent open entry of step.
func (t *Timing) AddEnd(step string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.Entries) - 1; i >= 0; i-- {
		if t.Entries[i].Step == step && t.Entries[i].End.IsZero() {
			t.Entries[i].End = time.Now()
			t.Entries[i].Duration = FormatDuration(t.Entries[i].End.Sub(t.Entries[i].Start))
			break
		}
	}
}

// Duration returns the recorded duration of step, or "" if it never ended.
func (t *Timing) Duration(step string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.Entries) - 1; i >= 0; i-- {
		if t.Entries[i].Step == step && t.Entries[i].Duration != "" {
			return t.Entries[i].Duration
		}
	}
	return ""
}

// Flush writes the in-memory timing data to disk.
func (t *Timing) Flush(stateDir string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return WriteFileAtomic(timingPath(stateDir), data, 0644)
}

// FormatDuration renders short durations in milliseconds, longer ones in
// seconds with millisecond precision.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}
