package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

type memoryRecord struct {
	data    []byte
	version int64
}

// Memory is an in-process Store used by tests and by the seed dry-run
// mode. It honors the same version semantics as the durable backends.
type Memory struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]memoryRecord)}
}

func (m *Memory) Get(_ context.Context, key string, dest any) (int64, error) {
	m.mu.RLock()
	rec, ok := m.records[key]
	m.mu.RUnlock()
	if !ok {
		return 0, nil
	}
	if err := json.Unmarshal(rec.data, dest); err != nil {
		return 0, err
	}
	return rec.version, nil
}

func (m *Memory) Put(_ context.Context, key string, value any, expected int64) (int64, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current := int64(0)
	if rec, ok := m.records[key]; ok {
		current = rec.version
	}
	if current != expected {
		return 0, ErrVersionConflict
	}
	next := current + 1
	m.records[key] = memoryRecord{data: data, version: next}
	return next, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.records, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.records {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
