package learning

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore persists the cache state as a single JSON file, rewritten
// wholesale on every save. No schema versioning and no partial-write
// protection; the cache treats the file as disposable.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot. A missing or unparseable file yields an empty
// state with no error: the cache starts fresh.
func (s *FileStore) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		// Corrupt snapshot, likely a crash mid-write. Start empty.
		return nil, nil
	}
	return &state, nil
}

// Save rewrites the snapshot file.
func (s *FileStore) Save(state *State) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
