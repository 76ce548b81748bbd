package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage keeps ShortLink records in a mutex-guarded map. It is the
// default backend when neither a database DSN nor a Redis address nor a file
// path is configured.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[string]ShortLink
}

func CreateMemoryStorage() (*MemoryStorage, error) {
	return &MemoryStorage{
		records: make(map[string]ShortLink),
	}, nil
}

func (m *MemoryStorage) Insert(_ context.Context, shortID, originalURL string) (*ShortLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[shortID]; exists {
		return nil, ErrDuplicateKey
	}

	record := ShortLink{
		ID:          uuid.NewString(),
		ShortID:     shortID,
		OriginalURL: originalURL,
		Clicks:      0,
		CreatedAt:   time.Now().UTC(),
	}
	m.records[shortID] = record

	return &record, nil
}

func (m *MemoryStorage) FindByShortID(_ context.Context, shortID string) (*ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, exists := m.records[shortID]
	if !exists {
		return nil, ErrNotFound
	}

	return &record, nil
}

// IncrementAndFetch bumps the click counter and returns the updated record.
// The increment happens under the write lock, so concurrent redirects on the
// same short ID never lose updates.
func (m *MemoryStorage) IncrementAndFetch(_ context.Context, shortID string) (*ShortLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, exists := m.records[shortID]
	if !exists {
		return nil, ErrNotFound
	}

	record.Clicks++
	m.records[shortID] = record

	return &record, nil
}

func (m *MemoryStorage) PingContext(_ context.Context) error {
	return nil
}
