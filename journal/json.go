package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rustyeddy/flipper/ledger"
)

// JSONStore keeps the whole ledger as one structured-text blob, the same
// shape the legacy per-account config key held. Field names are stable for
// backward compatibility; unknown fields in an old or foreign blob are
// ignored and missing optional fields take their zero value.
type JSONStore struct {
	path string
	log  *zap.Logger
}

func NewJSON(path string, log *zap.Logger) *JSONStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &JSONStore{path: path, log: log}
}

func (s *JSONStore) Save(items []ledger.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	// Write-then-rename so a crash mid-save never leaves a torn blob.
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	s.log.Debug("saved ledger snapshot",
		zap.String("path", s.path), zap.Int("items", len(items)))
	return nil
}

func (s *JSONStore) Load() ([]ledger.Item, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var items []ledger.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return items, nil
}

func (s *JSONStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *JSONStore) Close() error { return nil }
