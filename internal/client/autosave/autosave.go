// Package autosave persists the most recent edit to a single local slot,
// independent of remote snapshotting. The slot is one JSON file with a fixed
// name; every save overwrites it, last write wins.
package autosave

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cynit/hub/internal/filex"
	"github.com/cynit/hub/internal/modes"
)

// SlotFilename is the fixed name of the autosave slot inside the store dir.
const SlotFilename = "autosave.json"

// Record is the unit held by the slot: the mode being edited, its content,
// and when it was written.
type Record struct {
	Mode      modes.Mode `json:"mode"`
	Content   string     `json:"content"`
	Timestamp time.Time  `json:"timestamp"`
}

type Store struct {
	path string
}

// NewStore returns a store writing its slot under dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, SlotFilename)}
}

// Save overwrites the slot with rec. Callers are expected to treat a failure
// as a degraded no-op: editing must not be affected by autosave problems.
func (s *Store) Save(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding autosave record: %w", err)
	}
	if err := filex.WriteFileAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing autosave slot: %w", err)
	}
	return nil
}

// Load reads the slot back. A missing slot is not an error: (nil, nil).
func (s *Store) Load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading autosave slot: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding autosave record: %w", err)
	}
	return &rec, nil
}
