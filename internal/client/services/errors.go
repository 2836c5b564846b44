package services

import "errors"

var (
	ErrOffline        = errors.New("server is unreachable")
	ErrNoSearch       = errors.New("no search to continue")
	ErrNoMorePages    = errors.New("no more pages")
	ErrEmptyPatch     = errors.New("nothing to update")
	ErrPageOutOfRange = errors.New("page out of range")
)
