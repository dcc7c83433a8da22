package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/KushalZanzari/Echo-AI/internal/domain"
)

// KVRepository is a scoped key-value store backed by sqlite. It is the
// server-side stand-in for the browser's persistent key-value storage:
// one scope per user, holding the chat history snapshot and preferences.
type KVRepository struct {
	db *DB
}

// NewKVRepository creates a new key-value repository
func NewKVRepository(db *DB) *KVRepository {
	return &KVRepository{db: db}
}

// Get retrieves a value. The second return is false when the key is absent.
func (r *KVRepository) Get(scope, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`
		SELECT value FROM kv_store WHERE scope = ? AND key = ?
	`, scope, key).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// Set upserts a value under (scope, key)
func (r *KVRepository) Set(scope, key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO kv_store (scope, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (scope, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, scope, key, value, time.Now())
	return err
}

// historyKey is the key the per-user chat history snapshot lives under.
const historyKey = "chatHistory"

// HistoryBackend persists the whole per-user session array as one JSON
// snapshot, read-modify-written as a unit so the last writer wins.
type HistoryBackend struct {
	kv *KVRepository
}

// NewHistoryBackend creates a history backend over the key-value store
func NewHistoryBackend(kv *KVRepository) *HistoryBackend {
	return &HistoryBackend{kv: kv}
}

// Load returns the stored session array for a user, nil when none exists
func (b *HistoryBackend) Load(user string) ([]domain.ChatSession, error) {
	raw, ok, err := b.kv.Get(user, historyKey)
	if err != nil || !ok {
		return nil, err
	}

	var sessions []domain.ChatSession
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Save replaces the stored session array for a user
func (b *HistoryBackend) Save(user string, sessions []domain.ChatSession) error {
	raw, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	return b.kv.Set(user, historyKey, string(raw))
}
