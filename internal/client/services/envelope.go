package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/envelope"
	"github.com/dmitrijs2005/bookshelf/internal/client/transport"
)

// unwrap turns a resource client result into a value or an error. A string
// payload on failure becomes the error message.
func unwrap[T any](env *envelope.Envelope[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if env.Local() {
		return zero, fmt.Errorf("%w: %w", ErrOffline, env.Err())
	}
	if !env.Succeeded() {
		return zero, env.Err()
	}
	v, err := env.Value()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", client.ErrUnexpectedPayload, err)
	}
	return v, nil
}

// Unreachable reports whether err means the server could not be reached or
// answered with nothing usable.
func Unreachable(err error) bool {
	if errors.Is(err, ErrOffline) || transport.IsNetworkFailure(nil, err) {
		return true
	}
	return transport.KindOf(err) == transport.KindUnavailable
}
