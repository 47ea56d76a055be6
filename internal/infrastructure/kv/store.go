// Package kv is the persistence substrate: a durable key to JSON document
// store with no multi-key transactions.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnavailable marks failures of the backing store itself, as opposed to
// a key simply being absent.
var ErrUnavailable = errors.New("kv store unavailable")

type Entry struct {
	Key   string
	Value json.RawMessage
}

type Store interface {
	// Get decodes the document at key into out. A missing key reports
	// false with a nil error.
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error

	// GetMany returns the raw documents for the keys that exist; absent
	// keys are left out of the map.
	GetMany(ctx context.Context, keys []string) (map[string]json.RawMessage, error)
	// ListByPrefix returns every entry whose key starts with prefix,
	// ordered by key.
	ListByPrefix(ctx context.Context, prefix string) ([]Entry, error)

	// SetIfAbsent writes value only when key does not exist yet.
	SetIfAbsent(ctx context.Context, key string, value any) (bool, error)
	// Prepend atomically inserts item at the head of the JSON string array
	// stored at key, creating the array when the key is missing.
	Prepend(ctx context.Context, key string, item string) error

	Ping(ctx context.Context) error
	Close() error
}

type OpError struct {
	Op  string
	Key string
	Err error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key == "" {
		return fmt.Sprintf("kv %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("kv %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *OpError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return []error{ErrUnavailable, e.Err}
}

func opError(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Key: key, Err: err}
}

func encode(op, key string, value any) ([]byte, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("kv %s %q: encode: %w", op, key, err)
	}
	return b, nil
}

func decode(op, key string, b []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return opError(op, key, fmt.Errorf("decode: %w", err))
	}
	return nil
}

func prependItem(op, key string, current []byte, item string) ([]byte, error) {
	var list []string
	if len(current) > 0 {
		if err := json.Unmarshal(current, &list); err != nil {
			return nil, opError(op, key, fmt.Errorf("decode list: %w", err))
		}
	}
	list = append([]string{item}, list...)
	return encode(op, key, list)
}
