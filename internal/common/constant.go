// Package common contains shared constants, sentinel errors and small helpers
// used across the bookshelf client packages.
package common

// RefreshTokenKey is the metadata key under which the refresh token is
// persisted between runs.
const RefreshTokenKey = "refresh_token"

// AccessTokenCookieName is the cookie the API gateway sets on login, register
// and refresh responses. The HTTP client's cookie jar carries it on later
// requests.
const AccessTokenCookieName = "access_token"

const (
	ContentTypeHeader = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Envelope status values the server uses. Other server-defined strings are
// possible and are passed through untouched.
const (
	StatusSuccess   = "success"
	StatusException = "exception"
)
