package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stage-game-service/internal/content"
	"stage-game-service/internal/infra/postgres"
)

// NewSeedCmd writes the embedded game catalog and reward metadata to Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed Postgres with the embedded game catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if err := runMigrationsWithConfig(cmd.Context(), cfg, log); err != nil {
				return err
			}

			games, err := content.Games()
			if err != nil {
				return err
			}
			for id, game := range games {
				if err := game.Validate(); err != nil {
					return fmt.Errorf("game %s: %w", id, err)
				}
			}

			db := openBun(cfg.Postgres.URL)
			defer db.Close()

			n, err := postgres.NewSeeder(db).SeedGames(cmd.Context(), games)
			if err != nil {
				return err
			}
			log.Info("games seeded", zap.Int("count", n))
			return nil
		},
	}
}
