package client

import "errors"

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnexpectedPayload = errors.New("unexpected response payload")
)
