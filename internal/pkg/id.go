package pkg

import "github.com/google/uuid"

// GenerateRoomID - returns a fresh random room identifier.
func GenerateRoomID() string {
	return uuid.NewString()
}
