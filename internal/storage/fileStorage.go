package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileStorage persists ShortLink records to an append-only JSON-lines file.
// The full set of records is kept in memory for serving; every mutation
// appends the current state of the record, so on load the last line for a
// short ID wins.
type FileStorage struct {
	mu      sync.Mutex
	file    *os.File
	records map[string]ShortLink
	logger  *zap.Logger
}

func NewFileStorage(p string, logger *zap.Logger) (*FileStorage, error) {
	if err := os.MkdirAll(filepath.Dir(p), 0770); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(p, os.O_RDWR|os.O_CREATE, 0660)
	if err != nil {
		return nil, err
	}

	fs := &FileStorage{
		file:    file,
		records: make(map[string]ShortLink),
		logger:  logger,
	}

	if err := fs.load(); err != nil {
		file.Close()
		return nil, err
	}

	logger.Info("file storage loaded", zap.String("path", p), zap.Int("records", len(fs.records)))
	return fs, nil
}

func (fs *FileStorage) load() error {
	if _, err := fs.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	scanner := bufio.NewScanner(fs.file)
	for scanner.Scan() {
		var record ShortLink
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return fmt.Errorf("failed to parse JSON line: %w", err)
		}
		fs.records[record.ShortID] = record
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	return nil
}

func (fs *FileStorage) append(record ShortLink) error {
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}

	_, err = fs.file.Write(append(b, '\n'))
	return err
}

func (fs *FileStorage) Insert(_ context.Context, shortID, originalURL string) (*ShortLink, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, exists := fs.records[shortID]; exists {
		return nil, ErrDuplicateKey
	}

	record := ShortLink{
		ID:          uuid.NewString(),
		ShortID:     shortID,
		OriginalURL: originalURL,
		Clicks:      0,
		CreatedAt:   time.Now().UTC(),
	}

	if err := fs.append(record); err != nil {
		return nil, err
	}
	fs.records[shortID] = record

	return &record, nil
}

func (fs *FileStorage) FindByShortID(_ context.Context, shortID string) (*ShortLink, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	record, exists := fs.records[shortID]
	if !exists {
		return nil, ErrNotFound
	}

	return &record, nil
}

// IncrementAndFetch appends the updated record before publishing it to the
// in-memory map, so a crash never loses an increment that a client saw.
func (fs *FileStorage) IncrementAndFetch(_ context.Context, shortID string) (*ShortLink, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	record, exists := fs.records[shortID]
	if !exists {
		return nil, ErrNotFound
	}

	record.Clicks++
	if err := fs.append(record); err != nil {
		return nil, err
	}
	fs.records[shortID] = record

	return &record, nil
}

func (fs *FileStorage) PingContext(_ context.Context) error {
	return nil
}

func (fs *FileStorage) Close() error {
	return fs.file.Close()
}
