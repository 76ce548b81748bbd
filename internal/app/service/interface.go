package service

import (
	"context"

	"github.com/atarasenko/shortlink/internal/storage"
)

// Storage is the persistence contract shared by all backends. Insert must
// enforce short ID uniqueness via a backing constraint and IncrementAndFetch
// must be a single atomic operation, not a read-modify-write pair.
type Storage interface {
	Insert(ctx context.Context, shortID, originalURL string) (*storage.ShortLink, error)
	FindByShortID(ctx context.Context, shortID string) (*storage.ShortLink, error)
	IncrementAndFetch(ctx context.Context, shortID string) (*storage.ShortLink, error)
	PingContext(ctx context.Context) error
}

// IDGenerator produces short, URL-safe random identifiers.
type IDGenerator interface {
	Generate() (string, error)
}

// URLServiceIface is what the HTTP handlers depend on.
type URLServiceIface interface {
	CreateShortLink(ctx context.Context, originalURL string) (*storage.ShortLink, error)
	GetByShortID(ctx context.Context, shortID string) (*storage.ShortLink, error)
	Visit(ctx context.Context, shortID string) (*storage.ShortLink, error)
	PingContext(ctx context.Context) error
}
