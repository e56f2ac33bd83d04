// Package credstore persists the session credential across process restarts.
// Exactly one durable record exists: the bearer token, stored under a single
// well-known key in a local sqlite key-value table.
package credstore

import "context"

// credentialKey is the well-known key the token lives under. Absence of the
// key means "no prior session".
const credentialKey = "token"

// Store loads, saves and clears the persisted session credential.
type Store interface {
	// Load returns the persisted token, or "" when none is stored.
	Load(ctx context.Context) (string, error)

	// Save overwrites the persisted token.
	Save(ctx context.Context, token string) error

	// Clear removes the persisted token. Clearing an empty store is not an
	// error.
	Clear(ctx context.Context) error
}
