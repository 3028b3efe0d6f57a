package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/uptrace/bun"

	"stage-game-service/internal/domain"
)

type gameRow struct {
	bun.BaseModel `bun:"table:games"`

	ID   string      `bun:"id,pk"`
	Data domain.Game `bun:"data,type:jsonb"`
}

type gameMetadataRow struct {
	bun.BaseModel `bun:"table:game_metadata"`

	GameID string `bun:"game_id,pk"`
	Coins  int    `bun:"coins"`
	XP     int    `bun:"xp"`
}

// Seeder upserts game content and reward metadata.
type Seeder struct {
	db *bun.DB
}

func NewSeeder(db *bun.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedGames writes every game and its reward in one transaction and returns
// the number of games written.
func (s *Seeder) SeedGames(ctx context.Context, games map[string]domain.Game) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(games))
	for id := range games {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	gameRows := make([]gameRow, 0, len(ids))
	metaRows := make([]gameMetadataRow, 0, len(ids))
	for _, id := range ids {
		game := games[id]
		gameRows = append(gameRows, gameRow{ID: id, Data: game})
		metaRows = append(metaRows, gameMetadataRow{GameID: id, Coins: game.Reward.Coins, XP: game.Reward.XP})
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().
			Model(&gameRows).
			On("CONFLICT (id) DO UPDATE").
			Set("data = EXCLUDED.data").
			Set("updated_at = now()").
			Exec(ctx); err != nil {
			return fmt.Errorf("upsert games: %w", err)
		}
		if _, err := tx.NewInsert().
			Model(&metaRows).
			On("CONFLICT (game_id) DO UPDATE").
			Set("coins = EXCLUDED.coins").
			Set("xp = EXCLUDED.xp").
			Exec(ctx); err != nil {
			return fmt.Errorf("upsert game metadata: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(gameRows), nil
}
