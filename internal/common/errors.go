package common

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrNotLoggedIn = errors.New("not logged in")

	ErrInvalidID     = errors.New("invalid id")
	ErrInvalidStatus = errors.New("invalid reading status")
	ErrInvalidRating = errors.New("rating must be between 0 and 5")
)
