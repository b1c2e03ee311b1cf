package database

import (
	"fmt"

	"github.com/gofrs/uuid/v5"
)

// generateID returns a UUIDv7: unique and ordered by creation time
func generateID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}
