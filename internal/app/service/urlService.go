package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/atarasenko/shortlink/internal/storage"
)

// maxInsertAttempts bounds how many times CreateShortLink regenerates the
// short ID after a duplicate-key violation before giving up.
const maxInsertAttempts = 3

type URLService struct {
	repository Storage
	generator  IDGenerator
	logger     *zap.Logger
}

func NewURL(repo Storage, generator IDGenerator, logger *zap.Logger) *URLService {
	return &URLService{
		repository: repo,
		generator:  generator,
		logger:     logger,
	}
}

// CreateShortLink generates a short ID for the original URL and persists the
// mapping. A collision with an existing ID surfaces as a duplicate-key error
// from the store, in which case a fresh ID is generated and the insert
// retried a bounded number of times.
func (s *URLService) CreateShortLink(ctx context.Context, originalURL string) (*storage.ShortLink, error) {
	var lastErr error

	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		shortID, err := s.generator.Generate()
		if err != nil {
			return nil, err
		}

		record, err := s.repository.Insert(ctx, shortID, originalURL)
		if err == nil {
			return record, nil
		}

		if !errors.Is(err, storage.ErrDuplicateKey) {
			return nil, err
		}

		s.logger.Info("short id collision, retrying", zap.String("shortID", shortID))
		lastErr = err
	}

	return nil, lastErr
}

func (s *URLService) GetByShortID(ctx context.Context, shortID string) (*storage.ShortLink, error) {
	return s.repository.FindByShortID(ctx, shortID)
}

// Visit atomically increments the click counter for the short ID and returns
// the updated record.
func (s *URLService) Visit(ctx context.Context, shortID string) (*storage.ShortLink, error) {
	return s.repository.IncrementAndFetch(ctx, shortID)
}

func (s *URLService) PingContext(ctx context.Context) error {
	return s.repository.PingContext(ctx)
}
