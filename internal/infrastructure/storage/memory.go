package storage

import (
	"context"
	"sync"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// MemoryStore is an in-memory implementation of Store for tests and
// throwaway sessions. Documents are kept as encoded JSON so a load always
// returns an independent copy, as the SQLite store does.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte

	// Hooks for test assertions
	LoadCalls  int
	SaveCalls  int
	ClearCalls int
	CloseCalls int
	LastSaved  *model.State

	// Error injection for testing error paths
	LoadErr  error
	SaveErr  error
	ClearErr error
}

// Compile-time check that MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Put stores a raw document. Tests use it to seed legacy or broken data.
func (m *MemoryStore) Put(key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte(nil), raw...)
}

// Raw returns the stored document for key.
func (m *MemoryStore) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[key]
	return data, ok
}

// Load returns the stored state.
func (m *MemoryStore) Load(_ context.Context) (*model.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return decodeState(m.docs)
}

// Save replaces all three documents.
func (m *MemoryStore) Save(_ context.Context, st *model.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	docs, err := encodeState(st)
	if err != nil {
		return err
	}
	for k, v := range docs {
		m.docs[k] = v
	}
	m.LastSaved = st.Clone()
	return nil
}

// Clear removes every document.
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.docs = make(map[string][]byte)
	return nil
}

// Close counts the call; the documents stay readable.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	return nil
}
