package pkg

import "github.com/google/uuid"

// GenerateSessionID returns a new unique session identifier.
func GenerateSessionID() string {
	return uuid.NewString()
}
