package transport

import (
	"errors"
	"fmt"
)

// Kind classifies why Send produced no envelope.
type Kind int

const (
	// KindUnauthorized: the server answered 401 and no refresh was possible.
	KindUnauthorized Kind = iota + 1
	// KindNetworkFailure: the request failed before a response arrived.
	KindNetworkFailure
	// KindMalformed: the response claimed to be JSON but could not be decoded.
	KindMalformed
	// KindUnavailable: the response carried nothing usable (not JSON), or
	// local credential storage failed.
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNetworkFailure:
		return "network failure"
	case KindMalformed:
		return "malformed"
	case KindUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	ErrNoRefreshToken = errors.New("no refresh token stored")
	ErrRefreshFailed  = errors.New("token refresh rejected")
	ErrNotJSON        = errors.New("response is not JSON")
	ErrMalformed      = errors.New("malformed response")

	// ErrRefreshMalformed marks a refresh call that succeeded but carried no
	// readable token envelope.
	ErrRefreshMalformed = errors.New("refresh response unreadable")
)

// Error is returned by Transport methods. Match causes with errors.Is against
// the sentinels above, or inspect Kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return 0
}
