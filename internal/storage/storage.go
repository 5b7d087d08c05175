// Package storage keeps each chat's plot registry in memory and persists
// it to SQLite.
//
// A registry is stored as one JSON document per chat. Documents written by
// older versions are migrated when they are decoded, so rows are never
// rewritten in place until the chat is next saved.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/rewired-gh/plotbot/internal/logger"
	"github.com/rewired-gh/plotbot/internal/registry"
)

// Version is written with every saved registry.
const Version = "2.0"

// Storage provides thread-safe access to per-chat registries backed by a
// SQLite database.
type Storage struct {
	db    *sql.DB
	chats map[int64]*registry.Registry
	mu    sync.RWMutex

	filePath    string
	busyTimeout time.Duration
}

// Option configures Storage.
type Option func(*Storage)

// WithBusyTimeout sets how long a write waits for a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(s *Storage) {
		s.busyTimeout = d
	}
}

// New opens (or creates) the database at filePath and migrates its schema.
// ":memory:" keeps everything in memory.
func New(filePath string, opts ...Option) (*Storage, error) {
	s := &Storage{
		chats:       make(map[int64]*registry.Registry),
		filePath:    filePath,
		busyTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("sqlite", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// An in-memory database lives on a single connection.
	db.SetMaxOpenConns(1)
	s.db = db

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Debug("Opened database %s", filePath)
	return s, nil
}

// Path returns the database location passed to New.
func (s *Storage) Path() string {
	return s.filePath
}

func (s *Storage) migrate() error {
	schema := fmt.Sprintf(`
		PRAGMA busy_timeout = %d;
		CREATE TABLE IF NOT EXISTS chats (
			chat_id INTEGER PRIMARY KEY,
			state BLOB NOT NULL,
			version TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`, s.busyTimeout.Milliseconds())
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Chat returns the registry of a chat, loading it on first use. A chat
// with no saved state gets an empty registry.
func (s *Storage) Chat(ctx context.Context, chatID int64) (*registry.Registry, error) {
	s.mu.RLock()
	reg, ok := s.chats[chatID]
	s.mu.RUnlock()
	if ok {
		return reg, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if reg, ok := s.chats[chatID]; ok {
		return reg, nil
	}
	reg, err := s.load(ctx, chatID)
	if err != nil {
		return nil, err
	}
	s.chats[chatID] = reg
	return reg, nil
}

// LoadChat reads a chat's registry from the database, bypassing the
// in-memory copy.
func (s *Storage) LoadChat(ctx context.Context, chatID int64) (*registry.Registry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(ctx, chatID)
}

func (s *Storage) load(ctx context.Context, chatID int64) (*registry.Registry, error) {
	var state []byte
	var version string
	err := s.db.QueryRowContext(ctx,
		"SELECT state, version FROM chats WHERE chat_id = ?",
		chatID,
	).Scan(&state, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return registry.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load chat %d: %w", chatID, err)
	}
	return decode(state, version)
}

// decode restores a registry. Version 1.0 documents carry creators as
// bare names; chart decoding turns those into legacy creators.
func decode(state []byte, version string) (*registry.Registry, error) {
	switch version {
	case "", "1.0", Version:
	default:
		return nil, fmt.Errorf("unsupported state version %q", version)
	}
	reg := registry.New()
	if err := json.Unmarshal(state, reg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registry: %w", err)
	}
	return reg, nil
}

// SaveChat writes a chat's registry and makes it the in-memory copy.
func (s *Storage) SaveChat(ctx context.Context, chatID int64, reg *registry.Registry) error {
	state, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("failed to marshal chat %d: %w", chatID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chats (chat_id, state, version, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			state = excluded.state,
			version = excluded.version,
			updated_at = excluded.updated_at
	`, chatID, state, Version, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save chat %d: %w", chatID, err)
	}
	s.chats[chatID] = reg
	return nil
}

// DeleteChat removes a chat's saved state.
func (s *Storage) DeleteChat(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM chats WHERE chat_id = ?", chatID); err != nil {
		return fmt.Errorf("failed to delete chat %d: %w", chatID, err)
	}
	delete(s.chats, chatID)
	return nil
}

// ChatIDs returns every chat with saved state, ascending.
func (s *Storage) ChatIDs(ctx context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT chat_id FROM chats")
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan chat id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
