package driven

import "context"

// KeyValueStore defines the driven port for the local persistent store.
// Get reports ok=false, with a nil error, when the key has never been set.
// Set overwrites any existing value.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
