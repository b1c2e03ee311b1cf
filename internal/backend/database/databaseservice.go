package database

import (
	"context"
	"errors"
)

// ErrImageNotFound is returned when no record exists for an ID
var ErrImageNotFound = errors.New("defect image not found")

type DatabaseService interface {
	CreateDatabase() error
	DoesDatabaseExist() bool
	Close() error

	// CreateDefectImage stores all four variants and the name in one atomic write and
	// returns the newly assigned ID. The ID field of image is ignored.
	CreateDefectImage(ctx context.Context, image *DefectImage) (string, error)
	GetDefectImageByID(ctx context.Context, id string) (*DefectImage, error)
}
