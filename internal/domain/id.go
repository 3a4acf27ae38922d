package domain

import "github.com/google/uuid"

// NewID returns a time-ordered identifier.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// canonicalIDLen is the hyphenated 8-4-4-4-12 form. uuid.Parse also takes
// urn and braced forms that the store rejects.
const canonicalIDLen = 36

// ValidateID fails with ErrInvalidID unless id is a canonical identifier.
func ValidateID(id string) error {
	if len(id) != canonicalIDLen {
		return ErrInvalidID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
