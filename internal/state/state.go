package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the state file kept in the user's home directory.
const FileName = ".pomodoro_state.json"

// Config keys, always written as a complete set by the start command.
const (
	KeyWorkDuration   = "work_duration"    // seconds
	KeyShortBreak     = "short_break"      // seconds
	KeyLongBreak      = "long_break"       // seconds
	KeyLongBreakEvery = "long_break_every" // count
)

// Config holds the last-used settings keyed by the Key* constants.
type Config map[string]int

// State is the persisted record backing the status command. Counters only
// ever grow; reset removes the file instead of zeroing them.
type State struct {
	TotalPomodoros   int     `json:"total_pomodoros"`
	TotalShortBreaks int     `json:"total_short_breaks"`
	TotalLongBreaks  int     `json:"total_long_breaks"`
	LastSession      *string `json:"last_session"`
	Config           Config  `json:"config"`
}

// Origin reports where a loaded state came from.
type Origin int

const (
	// OriginFile means the state was read from a valid file.
	OriginFile Origin = iota
	// OriginMissing means no file existed and a zero state was returned.
	OriginMissing
	// OriginCorrupt means the file existed but did not parse; a zero
	// state was returned and the file is left untouched on disk.
	OriginCorrupt
)

func (o Origin) String() string {
	switch o {
	case OriginFile:
		return "file"
	case OriginMissing:
		return "missing"
	case OriginCorrupt:
		return "corrupt"
	}
	return "unknown"
}

// New returns a zero-valued state with an empty (but non-nil) config so it
// serializes as an empty object rather than null.
func New() *State {
	return &State{Config: Config{}}
}

// DefaultPath returns the state file path under the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, FileName), nil
}

// Load reads the state file at path. A missing or unparseable file yields a
// zero state and a nil error; the Origin tells the two cases apart. Only
// real I/O failures (e.g. permissions) surface as errors.
func Load(path string) (*State, Origin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), OriginMissing, nil
		}
		return nil, OriginMissing, fmt.Errorf("read state file: %w", err)
	}

	st := New()
	if err := json.Unmarshal(data, st); err != nil {
		return New(), OriginCorrupt, nil
	}
	if st.Config == nil {
		st.Config = Config{}
	}
	return st, OriginFile, nil
}

// Save writes the full record as indented JSON, overwriting path.
func Save(path string, st *State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// Delete removes the state file. It reports whether a file existed.
func Delete(path string) (bool, error) {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove state file: %w", err)
	}
	return true, nil
}
