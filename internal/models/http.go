// Package models defines the request and response data structures used
// for communication between the client and the short link service.
package models

import "time"

// ShortenRequest represents a request to shorten a URL.
type ShortenRequest struct {
	// URL is the original URL to be shortened.
	URL string `json:"url"`
}

// ShortenResponse represents the response to a successful shorten request.
type ShortenResponse struct {
	// ShortURL is the public base URL joined with the short ID.
	ShortURL string `json:"shortUrl"`

	// OriginalURL echoes the URL that was shortened.
	OriginalURL string `json:"originalUrl"`

	// ShortID is the generated identifier for the mapping.
	ShortID string `json:"shortId"`
}

// StatsResponse represents the usage statistics for a short link.
type StatsResponse struct {
	ShortID     string    `json:"shortId"`
	OriginalURL string    `json:"originalUrl"`
	Clicks      int64     `json:"clicks"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
