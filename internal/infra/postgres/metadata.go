package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"stage-game-service/internal/domain"
)

// MetadataLookup reads per-game reward overrides from game_metadata.
type MetadataLookup struct {
	pool *pgxpool.Pool
}

func NewMetadataLookup(pool *pgxpool.Pool) *MetadataLookup {
	return &MetadataLookup{pool: pool}
}

func (m *MetadataLookup) GetGameData(ctx context.Context, gameID string) (domain.GameData, error) {
	var data domain.GameData
	err := m.pool.QueryRow(ctx, `SELECT coins, xp FROM game_metadata WHERE game_id=$1`, gameID).Scan(&data.Coins, &data.XP)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.GameData{}, domain.ErrGameDataNotFound
	}
	if err != nil {
		return domain.GameData{}, fmt.Errorf("load game data: %w", err)
	}
	return data, nil
}
