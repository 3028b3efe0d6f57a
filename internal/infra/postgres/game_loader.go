package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"stage-game-service/internal/domain"
)

// GameLoader loads game JSONB from Postgres.
type GameLoader struct {
	pool *pgxpool.Pool
}

func NewGameLoader(pool *pgxpool.Pool) *GameLoader {
	return &GameLoader{pool: pool}
}

func (l *GameLoader) LoadGame(ctx context.Context, gameID string) (domain.Game, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM games WHERE id=$1`, gameID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Game{}, domain.ErrGameNotFound
	}
	if err != nil {
		return domain.Game{}, fmt.Errorf("load game: %w", err)
	}
	var game domain.Game
	if err := json.Unmarshal(raw, &game); err != nil {
		return domain.Game{}, fmt.Errorf("unmarshal game: %w", err)
	}
	return game, nil
}

func (l *GameLoader) ListGames(ctx context.Context) ([]domain.GameSummary, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id,
		       COALESCE(data->>'title', ''),
		       COALESCE(data->>'subtitle', ''),
		       COALESCE(jsonb_array_length(data->'stages'), 0)
		FROM games
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.GameSummary, 0)
	for rows.Next() {
		var s domain.GameSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Subtitle, &s.Stages); err != nil {
			return nil, fmt.Errorf("scan game summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
