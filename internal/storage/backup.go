package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BackupFile is the JSON document written by Export.
type BackupFile struct {
	Version string                    `json:"version"`
	SavedAt time.Time                 `json:"saved_at"`
	Chats   map[int64]json.RawMessage `json:"chats"`
}

// Export writes every saved chat to a JSON file. The file is written to a
// temporary path first and renamed into place.
func (s *Storage) Export(ctx context.Context, path string) error {
	s.mu.RLock()
	rows, err := s.db.QueryContext(ctx, "SELECT chat_id, state FROM chats")
	if err != nil {
		s.mu.RUnlock()
		return fmt.Errorf("failed to read chats: %w", err)
	}
	data := BackupFile{
		Version: Version,
		SavedAt: time.Now(),
		Chats:   make(map[int64]json.RawMessage),
	}
	for rows.Next() {
		var id int64
		var state []byte
		if err := rows.Scan(&id, &state); err != nil {
			_ = rows.Close()
			s.mu.RUnlock()
			return fmt.Errorf("failed to scan chat: %w", err)
		}
		data.Chats[id] = state
	}
	err = rows.Err()
	_ = rows.Close()
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to read chats: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, jsonData, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// Import loads a file written by Export and saves every chat in it,
// replacing existing state. It returns the number of chats imported.
func (s *Storage) Import(ctx context.Context, path string) (int, error) {
	jsonData, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}
	var data BackupFile
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return 0, fmt.Errorf("failed to unmarshal backup: %w", err)
	}

	n := 0
	for id, state := range data.Chats {
		reg, err := decode(state, data.Version)
		if err != nil {
			return n, fmt.Errorf("chat %d: %w", id, err)
		}
		if err := s.SaveChat(ctx, id, reg); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
