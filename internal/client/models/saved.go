package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedPage is a book page downloaded to local disk.
type SavedPage struct {
	BookID     uuid.UUID
	PageNumber int
	Title      string
	TotalPages int
	Path       string
	Format     string
	Size       int
	SavedAt    time.Time
}
