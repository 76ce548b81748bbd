package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFileStorage(t *testing.T, path string) *FileStorage {
	fs, err := NewFileStorage(path, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { fs.Close() })
	return fs
}

func TestFileStorageInsertAndFind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.jsonl")
	fs := newTestFileStorage(t, path)
	ctx := context.Background()

	record, err := fs.Insert(ctx, "abc12345", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "abc12345", record.ShortID)
	assert.Zero(t, record.Clicks)

	_, err = fs.Insert(ctx, "abc12345", "https://other.com")
	assert.ErrorIs(t, err, ErrDuplicateKey)

	found, err := fs.FindByShortID(ctx, "abc12345")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", found.OriginalURL)

	_, err = fs.FindByShortID(ctx, "nonexist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoragePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.jsonl")
	ctx := context.Background()

	fs := newTestFileStorage(t, path)
	inserted, err := fs.Insert(ctx, "abc12345", "https://example.com")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = fs.IncrementAndFetch(ctx, "abc12345")
		require.NoError(t, err)
	}
	require.NoError(t, fs.Close())

	reopened := newTestFileStorage(t, path)
	record, err := reopened.FindByShortID(ctx, "abc12345")
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, record.ID)
	assert.Equal(t, "https://example.com", record.OriginalURL)
	assert.Equal(t, int64(3), record.Clicks)
	assert.True(t, record.CreatedAt.Equal(inserted.CreatedAt))
}

func TestFileStorageIncrementNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.jsonl")
	fs := newTestFileStorage(t, path)

	_, err := fs.IncrementAndFetch(context.Background(), "nonexist")
	assert.ErrorIs(t, err, ErrNotFound)
}
