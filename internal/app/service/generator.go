// Package service provides short link creation, resolution and visit counting.
package service

import (
	"crypto/rand"
	"fmt"
)

// shortIDLength is the fixed length of every generated short ID.
const shortIDLength = 8

// alphabet holds the 64 URL-safe characters a short ID is drawn from.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// RandomIDGenerator draws short IDs from crypto/rand. It does not guarantee
// uniqueness; the store's unique constraint does, and the URL service retries
// on collision.
type RandomIDGenerator struct{}

func NewRandomIDGenerator() *RandomIDGenerator {
	return &RandomIDGenerator{}
}

func (g *RandomIDGenerator) Generate() (string, error) {
	b := make([]byte, shortIDLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("random source unavailable: %w", err)
	}

	// The alphabet has exactly 64 characters, so masking the low six bits of
	// each random byte gives an unbiased index.
	for i := range b {
		b[i] = alphabet[b[i]&63]
	}

	return string(b), nil
}
