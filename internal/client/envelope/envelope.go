// Package envelope models the {status, data_type, data} wrapper every catalog
// API endpoint returns.
//
// data is either the domain payload or, on failure, a human-readable string.
// Envelope keeps it raw and decodes it on demand, so callers branch with Text
// before calling Value, the same way a dynamically typed caller would check
// the runtime type of data.
package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/common"
)

// NetworkFailureMessage is the text of the envelope synthesized when a
// request fails before any response arrives.
const NetworkFailureMessage = "Oops, this is error on ours side"

// ErrStringPayload is returned by Value when data holds a string but the
// envelope's payload type is not a string.
var ErrStringPayload = errors.New("envelope data is a string")

// Raw is an envelope whose payload has not been decoded yet.
type Raw = Envelope[json.RawMessage]

// Envelope is the response wrapper with payload type T.
type Envelope[T any] struct {
	Status   string          `json:"status"`
	DataType string          `json:"data_type"`
	Data     json.RawMessage `json:"data"`

	local bool
}

// Decode parses body into a raw envelope.
func Decode(body []byte) (*Raw, error) {
	var e Raw
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &e, nil
}

// NetworkFailure returns the envelope used when the request itself failed.
// It is the only envelope produced on the client side.
func NetworkFailure() *Raw {
	data, _ := json.Marshal(NetworkFailureMessage)
	return &Raw{
		Status:   common.StatusException,
		DataType: "str",
		Data:     data,
		local:    true,
	}
}

// Convert rewraps e with payload type U. The local flag is kept.
func Convert[U, T any](e *Envelope[T]) *Envelope[U] {
	if e == nil {
		return nil
	}
	return &Envelope[U]{Status: e.Status, DataType: e.DataType, Data: e.Data, local: e.local}
}

// Of builds a successful envelope around v.
func Of[T any](dataType string, v T) (*Envelope[T], error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode envelope data: %w", err)
	}
	return &Envelope[T]{Status: common.StatusSuccess, DataType: dataType, Data: data}, nil
}

// Succeeded reports whether the server declared success.
func (e *Envelope[T]) Succeeded() bool {
	return e.Status == common.StatusSuccess
}

// Local reports whether the envelope was synthesized by the client after a
// network failure rather than sent by the server.
func (e *Envelope[T]) Local() bool {
	return e.local
}

// Text returns data as a string when it is a JSON string.
func (e *Envelope[T]) Text() (string, bool) {
	trimmed := bytes.TrimSpace(e.Data)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

// Empty reports whether data is missing or JSON null.
func (e *Envelope[T]) Empty() bool {
	trimmed := bytes.TrimSpace(e.Data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Value decodes data as T. A string payload decodes only when T is a string
// type; otherwise ErrStringPayload is returned.
func (e *Envelope[T]) Value() (T, error) {
	var v T
	if len(bytes.TrimSpace(e.Data)) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(e.Data, &v); err != nil {
		if _, isText := e.Text(); isText {
			return v, ErrStringPayload
		}
		return v, fmt.Errorf("decode %s payload: %w", e.DataType, err)
	}
	return v, nil
}

// Err returns nil for a successful envelope and a *ServerError otherwise.
func (e *Envelope[T]) Err() error {
	if e.Succeeded() {
		return nil
	}
	msg, _ := e.Text()
	return &ServerError{Status: e.Status, Message: msg, Local: e.local}
}

// ServerError is a failure the server (or the network fallback) reported
// inside an envelope.
type ServerError struct {
	Status  string
	Message string
	Local   bool
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %q", e.Status)
	}
	return e.Message
}
