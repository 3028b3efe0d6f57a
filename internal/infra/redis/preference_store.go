package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"stage-game-service/internal/domain"
)

// PreferenceStore keeps each user's locale under locale:pref:{userID}.
type PreferenceStore struct {
	client *redis.Client
}

func NewPreferenceStore(client *redis.Client) *PreferenceStore {
	return &PreferenceStore{client: client}
}

func (p *PreferenceStore) GetLocale(ctx context.Context, userID string) (string, error) {
	locale, err := p.client.Get(ctx, p.key(userID)).Result()
	if isMiss(err) {
		return "", domain.ErrPreferenceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get locale preference: %w", err)
	}
	return locale, nil
}

func (p *PreferenceStore) SetLocale(ctx context.Context, userID, locale string) error {
	if err := p.client.Set(ctx, p.key(userID), locale, 0).Err(); err != nil {
		return fmt.Errorf("set locale preference: %w", err)
	}
	return nil
}

func (p *PreferenceStore) key(userID string) string {
	return "locale:pref:" + userID
}
