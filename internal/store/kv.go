// Package store persists learner data as JSON documents under a fixed set
// of keys. SQLite, Postgres and in-memory backends share one contract.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// Key names one of the persisted documents.
type Key string

const (
	KeyUserProgress Key = "USER_PROGRESS"
	KeyWrongWords   Key = "WRONG_WORDS"
	KeyGameHistory  Key = "GAME_HISTORY"
	KeySettings     Key = "SETTINGS"
)

// AllKeys returns every key the store accepts.
func AllKeys() []Key {
	return []Key{KeyUserProgress, KeyWrongWords, KeyGameHistory, KeySettings}
}

// Valid reports whether k is one of AllKeys.
func (k Key) Valid() bool {
	return slices.Contains(AllKeys(), k)
}

// ErrUnknownKey is returned for keys outside AllKeys.
var ErrUnknownKey = errors.New("unknown store key")

// KV is the key-value contract every backend implements.
type KV interface {
	// Get returns the stored document, or nil if the key has no value.
	Get(ctx context.Context, key Key) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key Key, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key Key) error

	// Clear deletes every key.
	Clear(ctx context.Context) error

	// Close releases the backend's resources.
	Close() error
}

// GetJSON decodes the document under key into v. It reports false when the
// key has no value.
func GetJSON(ctx context.Context, kv KV, key Key, v any) (bool, error) {
	data, err := kv.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, kv KV, key Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}

func checkKey(key Key) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}
