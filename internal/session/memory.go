package session

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is a mutex-guarded in-process store for dev and tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func key(sid string, slot Slot) string { return sid + "|" + string(slot) }

// Get decodes the slot value into out.
func (m *Memory) Get(_ context.Context, sid string, slot Slot, out any) error {
	m.mu.RLock()
	raw, ok := m.data[key(sid, slot)]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, out)
}

// Set stores v in the slot.
func (m *Memory) Set(_ context.Context, sid string, slot Slot, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key(sid, slot)] = raw
	m.mu.Unlock()
	return nil
}

// Clear removes the slot value.
func (m *Memory) Clear(_ context.Context, sid string, slot Slot) error {
	m.mu.Lock()
	delete(m.data, key(sid, slot))
	m.mu.Unlock()
	return nil
}

// Healthy always succeeds for the in-process store.
func (m *Memory) Healthy(context.Context) bool { return true }
