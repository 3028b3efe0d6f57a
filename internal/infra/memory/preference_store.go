package memory

import (
	"context"
	"sync"

	"stage-game-service/internal/domain"
)

// PreferenceStore remembers locale choices for the lifetime of the process.
type PreferenceStore struct {
	mu      sync.RWMutex
	locales map[string]string
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{locales: make(map[string]string)}
}

func (p *PreferenceStore) GetLocale(_ context.Context, userID string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	locale, ok := p.locales[userID]
	if !ok {
		return "", domain.ErrPreferenceNotFound
	}
	return locale, nil
}

func (p *PreferenceStore) SetLocale(_ context.Context, userID, locale string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.locales[userID] = locale
	return nil
}
