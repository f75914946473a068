package keystore

import (
	"sync"

	"github.com/go-ece/ece/ece"
)

// Memory is an in-process Store backed by a map, safe for concurrent
// readers and serialized writers per spec.md §5.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemory creates an empty in-memory keystore.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

func (m *Memory) RawKey(keyid string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[keyid]
	if !ok || e.Raw == nil {
		return nil, false, nil
	}
	return e.Raw, true, nil
}

func (m *Memory) DHKey(keyid string) (ece.DHPrivateKey, string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[keyid]
	if !ok || e.DH == nil {
		return nil, "", false, nil
	}
	return e.DH, e.Label, true, nil
}

func (m *Memory) SaveRaw(id string, key []byte) error {
	if len(key) != 16 {
		return ece.ErrBadKeyLength
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = Entry{Raw: append([]byte(nil), key...)}
	return nil
}

func (m *Memory) SaveDH(id string, priv ece.DHPrivateKey, label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = Entry{DH: priv, Label: label}
	return nil
}
