package securestorage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryBackend is the session-scoped backend. Its contents live as long as
// the value itself.
type MemoryBackend struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: make(map[string]string)}
}

func (m *MemoryBackend) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemoryBackend) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *MemoryBackend) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// SQLiteBackend is the persistent backend, stored in the storage_items table.
type SQLiteBackend struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSQLiteBackend creates a backend over a migrated database.
func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db, timeout: 5 * time.Second}
}

func (b *SQLiteBackend) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), b.timeout)
}

func (b *SQLiteBackend) Get(key string) (string, bool, error) {
	ctx, cancel := b.ctx()
	defer cancel()

	var value string
	err := b.db.QueryRowContext(ctx, "SELECT value FROM storage_items WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read storage item: %w", err)
	}
	return value, true, nil
}

func (b *SQLiteBackend) Set(key, value string) error {
	ctx, cancel := b.ctx()
	defer cancel()

	_, err := b.db.ExecContext(ctx,
		"INSERT INTO storage_items (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at",
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("write storage item: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Remove(key string) error {
	ctx, cancel := b.ctx()
	defer cancel()

	if _, err := b.db.ExecContext(ctx, "DELETE FROM storage_items WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete storage item: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Keys() ([]string, error) {
	ctx, cancel := b.ctx()
	defer cancel()

	rows, err := b.db.QueryContext(ctx, "SELECT key FROM storage_items ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list storage items: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
