package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"stage-game-service/internal/content"
	"stage-game-service/internal/domain"
)

// NewValidateCmd checks game content files for structural errors and
// authoring warnings.
func NewValidateCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate game content",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				games map[string]domain.Game
				err   error
			)
			if dir == "" {
				games, err = content.Games()
			} else {
				games, err = content.LoadGames(os.DirFS(dir), ".")
			}
			if err != nil {
				return err
			}
			return validateGames(cmd, games)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory of game JSON files (default: embedded catalog)")
	return cmd
}

func validateGames(cmd *cobra.Command, games map[string]domain.Game) error {
	ids := make([]string, 0, len(games))
	for id := range games {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := cmd.OutOrStdout()
	failed := 0
	for _, id := range ids {
		game := games[id]
		if err := game.Validate(); err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", id, err)
			continue
		}
		for _, w := range game.Lint() {
			fmt.Fprintf(out, "WARN %s: %s\n", id, w)
		}
		fmt.Fprintf(out, "ok   %s (%d stages)\n", id, len(game.Stages))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d games invalid", failed, len(ids))
	}
	return nil
}
