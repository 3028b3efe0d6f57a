package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"stage-game-service/internal/domain"
)

// PreferenceStore persists locale choices in locale_preferences.
type PreferenceStore struct {
	pool *pgxpool.Pool
}

func NewPreferenceStore(pool *pgxpool.Pool) *PreferenceStore {
	return &PreferenceStore{pool: pool}
}

func (p *PreferenceStore) GetLocale(ctx context.Context, userID string) (string, error) {
	var locale string
	err := p.pool.QueryRow(ctx, `SELECT locale FROM locale_preferences WHERE user_id=$1`, userID).Scan(&locale)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrPreferenceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load locale preference: %w", err)
	}
	return locale, nil
}

func (p *PreferenceStore) SetLocale(ctx context.Context, userID, locale string) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO locale_preferences (user_id, locale, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET locale = EXCLUDED.locale, updated_at = now()`,
		userID, locale)
	if err != nil {
		return fmt.Errorf("save locale preference: %w", err)
	}
	return nil
}
