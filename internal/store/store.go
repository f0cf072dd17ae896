// Package store provides the durable key-value storage the client keeps its
// session and drafts in. Keys are namespaced under an application prefix.
package store

import (
	"context"
	"encoding/json"
)

// DefaultPrefix namespaces every key written by the client.
const DefaultPrefix = "auctionhub"

// Store is the persistence capability handed to the session manager and the
// draft manager. Implementations must treat Get of a missing key as
// (_, false, nil), not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// GetJSON reads key and unmarshals it into dest. Returns (false, nil) when
// the key is absent.
func GetJSON(ctx context.Context, s Store, key string, dest any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(b))
}
