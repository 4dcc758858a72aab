// Package cache provides ephemeral caching of computed analysis
// results. It is an optimization only; results are never persisted by
// this service.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Cache stores serialized analysis results keyed by a request digest.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// Key derives a deterministic cache key from a JSON-serializable
// request. Equal requests always produce equal keys.
func Key(prefix string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:]), nil
}
