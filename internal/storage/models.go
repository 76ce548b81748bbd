// Package storage defines the ShortLink record persisted by the service and
// the in-process storage backends (memory and file based).
package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned by lookups when no record matches the short ID.
var ErrNotFound = errors.New("short link not found")

// ErrDuplicateKey is returned by Insert when the short ID is already taken.
var ErrDuplicateKey = errors.New("short id already exists")

// ShortLink maps a short identifier to an original URL plus usage metadata.
// Once created a record is immutable except for Clicks.
type ShortLink struct {
	ID          string    `json:"uuid"`
	ShortID     string    `json:"short_id"`
	OriginalURL string    `json:"original_url"`
	Clicks      int64     `json:"clicks"`
	CreatedAt   time.Time `json:"created_at"`
}
