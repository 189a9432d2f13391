package storage

import (
	"context"
	"sync"
)

// Memory keeps documents in process memory. A positive quota caps the total
// number of stored bytes, mirroring the size limit of browser storage.
type Memory struct {
	mu    sync.RWMutex
	docs  map[string][]byte
	quota int
	used  int
}

func NewMemory(quota int) *Memory {
	return &Memory{
		docs:  make(map[string][]byte),
		quota: quota,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	body, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

func (m *Memory) Put(_ context.Context, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used - len(m.docs[key]) + len(body)
	if m.quota > 0 && used > m.quota {
		return ErrQuotaExceeded
	}

	stored := make([]byte, len(body))
	copy(stored, body)
	m.docs[key] = stored
	m.used = used
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.used -= len(m.docs[key])
	delete(m.docs, key)
	return nil
}
