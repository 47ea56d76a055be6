package kv

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
)

var errClosed = errors.New("store closed")

// Memory keeps documents in process. It is the development and test backend;
// contents do not survive a restart.
type Memory struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string, out any) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return false, opError("get", key, errClosed)
	}
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	if err := decode("get", key, b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, value any) error {
	b, err := encode("set", key, value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return opError("set", key, errClosed)
	}
	m.data[key] = b
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return opError("delete", key, errClosed)
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) GetMany(_ context.Context, keys []string) (map[string]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, opError("get_many", "", errClosed)
	}
	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		if b, ok := m.data[k]; ok {
			out[k] = cloneBytes(b)
		}
	}
	return out, nil
}

func (m *Memory) ListByPrefix(_ context.Context, prefix string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, opError("list", prefix, errClosed)
	}
	var out []Entry
	for k, b := range m.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, Entry{Key: k, Value: cloneBytes(b)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *Memory) SetIfAbsent(_ context.Context, key string, value any) (bool, error) {
	b, err := encode("set_if_absent", key, value)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false, opError("set_if_absent", key, errClosed)
	}
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = b
	return true, nil
}

func (m *Memory) Prepend(_ context.Context, key string, item string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return opError("prepend", key, errClosed)
	}
	b, err := prependItem("prepend", key, m.data[key], item)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *Memory) Ping(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return opError("ping", "", errClosed)
	}
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

var _ Store = (*Memory)(nil)
