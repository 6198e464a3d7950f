package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// FileMetadata is a MetadataSource backed by a JSON file mapping item id to
// metadata. Good enough offline; a live deployment would put the exchange's
// item service behind the same interface.
type FileMetadata struct {
	items map[int]ItemInfo
}

func LoadFileMetadata(path string) (*FileMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata file: %w", err)
	}

	raw := map[string]ItemInfo{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse metadata file: %w", err)
	}

	items := make(map[int]ItemInfo, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("metadata key %q: %w", k, err)
		}
		items[id] = v
	}
	return &FileMetadata{items: items}, nil
}

func (m *FileMetadata) Lookup(itemID int) (ItemInfo, error) {
	info, ok := m.items[itemID]
	if !ok {
		return ItemInfo{}, fmt.Errorf("item %d not in metadata", itemID)
	}
	return info, nil
}
