package domain

import (
	"crypto/rand"

	dErrors "classtrack/pkg/domain-errors"
)

// Entity IDs are opaque 10-character alphanumeric strings, generated at
// creation time. Typed IDs prevent cross-entity assignment at compile time.
type (
	ParentID       string
	StudentID      string
	ClassID        string
	SubscriptionID string
)

const (
	idLength   = 10
	idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewID generates a random entity identifier.
func NewID() string {
	buf := make([]byte, idLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure means the platform RNG is broken; nothing
		// sensible to return.
		panic("domain: rng unavailable: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf)
}

// ValidateID checks that an externally supplied identifier is plausible
// before it reaches a store. Empty and oversized values are rejected.
func ValidateID(s string) error {
	if s == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	if len(s) > 64 {
		return dErrors.New(dErrors.CodeInvalidInput, "id too long")
	}
	return nil
}
