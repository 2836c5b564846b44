// Package metadata stores small client-side key/value settings, such as the
// persisted refresh token, in the local SQLite database.
package metadata

import (
	"context"
)

// Repository is a string key/value store. Get reports absence through its
// boolean result rather than an error.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
