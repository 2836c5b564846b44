package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ReadingStatus is the shelf a user keeps a book on.
type ReadingStatus string

const (
	StatusRead    ReadingStatus = "READ"
	StatusReading ReadingStatus = "READING"
	StatusDrop    ReadingStatus = "DROP"
	StatusLiked   ReadingStatus = "LIKED"
)

var readingStatuses = []ReadingStatus{StatusLiked, StatusReading, StatusRead, StatusDrop}

// ReadingStatuses lists every status in display order.
func ReadingStatuses() []ReadingStatus {
	out := make([]ReadingStatus, len(readingStatuses))
	copy(out, readingStatuses)
	return out
}

// ParseReadingStatus accepts a status name in any case.
func ParseReadingStatus(s string) (ReadingStatus, error) {
	candidate := ReadingStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range readingStatuses {
		if st == candidate {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown reading status %q", s)
}

type UserBookStatus struct {
	BookID     uuid.UUID     `json:"book_id"`
	Status     ReadingStatus `json:"status"`
	AuthorID   uuid.UUID     `json:"author_id"`
	AuthorName string        `json:"author_name"`
	Title      string        `json:"title"`
	EndPage    int           `json:"end_page"`
}

type UserBookStatusList struct {
	Books []UserBookStatus `json:"books"`
	Page
}
