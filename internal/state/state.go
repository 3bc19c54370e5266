package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	StatusRunning     = "running"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
	StatusInterrupted = "interrupted"
)

// State is the manifest of the most recent build.
type State struct {
	BuildID    string    `json:"build_id"`
	Status     string    `json:"status"` // running, completed, failed, interrupted
	Step       string    `json:"step,omitempty"`
	Format     string    `json:"format"`
	Output     string    `json:"output"`
	TopicCount int       `json:"topic_count"`
	SHA256     string    `json:"sha256,omitempty"`
	Error      string    `json:"error,omitempty"`
	Started    time.Time `json:"started"`
	Finished   time.Time `json:"finished,omitempty"`
}

// New starts a manifest for a fresh build.
func New(format, output string) *State {
	return &State{
		BuildID: uuid.NewString(),
		Status:  StatusRunning,
		Format:  format,
		Output:  output,
		Started: time.Now().UTC(),
	}
}

func statePath(stateDir string) string {
	return filepath.Join(stateDir, "build.json")
}

// EnsureDir creates the state directory structure.
func EnsureDir(stateDir string) error {
	for _, d := range []string{stateDir, filepath.Join(stateDir, "logs")} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("creating state dir %s: %w", d, err)
		}
	}
	return nil
}

// LogPath returns the log file for a hook.
func LogPath(stateDir, hook string) string {
	return filepath.Join(stateDir, "logs", hook+".log")
}

// Load reads the last build manifest. Returns nil, nil if there is none.
func Load(stateDir string) (*State, error) {
	data, err := os.ReadFile(statePath(stateDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the manifest to the state directory.
func (s *State) Save(stateDir string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return WriteFileAtomic(statePath(stateDir), data, 0644)
}

// Finish records the terminal status. A non-nil err is kept as the message.
func (s *State) Finish(status string, err error) {
	s.Status = status
	s.Finished = time.Now().UTC()
	if err != nil {
		s.Error = err.Error()
	}
}

// Checksum records the digest of the rendered output.
func (s *State) Checksum(data []byte) {
	sum := sha256.Sum256(data)
	s.SHA256 = hex.EncodeToString(sum[:])
}
