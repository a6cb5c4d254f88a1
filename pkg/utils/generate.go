package utils

import (
	"github.com/google/uuid"
)

// GenerateSessionToken mints an opaque bearer token for a new session.
func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}
