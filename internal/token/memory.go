package token

import (
	"context"
	"sync"
)

// MemoryStorage keeps credentials in process memory. It backs session tests
// and short-lived invocations where nothing should outlive the process; the
// tool's single GitHub credential lives under KeyGitHub.
type MemoryStorage struct {
	mu    sync.RWMutex
	creds map[string]Token
}

// NewMemoryStorage creates an empty in-memory credential store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{creds: make(map[string]Token)}
}

// Store saves a credential, replacing any previous one under the same key.
// Expired credentials may be stored; expiry is enforced on retrieval.
func (m *MemoryStorage) Store(_ context.Context, key string, t Token) error {
	if t.Value == "" {
		return ErrTokenInvalid
	}
	m.mu.Lock()
	m.creds[key] = t
	m.mu.Unlock()
	return nil
}

// Retrieve returns the credential under key. A stored credential past its
// expiry is reported as ErrTokenExpired, not returned.
func (m *MemoryStorage) Retrieve(_ context.Context, key string) (Token, error) {
	m.mu.RLock()
	t, ok := m.creds[key]
	m.mu.RUnlock()

	if !ok {
		return Token{}, ErrTokenNotFound
	}
	if IsExpired(t) {
		return Token{}, ErrTokenExpired
	}
	return t, nil
}

// Delete removes the credential under key. Deleting an absent key is not an
// error: the change-token flow deletes unconditionally before storing.
func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.creds, key)
	m.mu.Unlock()
	return nil
}

// Close wipes all held credentials.
func (m *MemoryStorage) Close(_ context.Context) error {
	m.mu.Lock()
	m.creds = make(map[string]Token)
	m.mu.Unlock()
	return nil
}
