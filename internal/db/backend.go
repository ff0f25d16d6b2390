// Package db provides the key-value storage backends the schedule persists to.
package db

import (
	"context"
	"encoding/json"
	"fmt"
)

// Backend is a string-keyed value store. Every value is written whole.
type Backend interface {
	// Get returns the value stored under key. found is false if the key
	// has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the backend.
	Close() error
}

// LoadJSON decodes the JSON value under key into v.
// Returns found=false and leaves v untouched when the key does not exist.
func LoadJSON(ctx context.Context, b Backend, key string, v any) (bool, error) {
	data, found, err := b.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v as JSON and stores it under key.
func SaveJSON(ctx context.Context, b Backend, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := b.Set(ctx, key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
