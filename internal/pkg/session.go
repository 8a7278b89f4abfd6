package pkg

import "github.com/google/uuid"

// GenerateNewSessionID returns a random id for a browser session.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// IsSessionID reports whether id looks like something GenerateNewSessionID produced.
func IsSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
