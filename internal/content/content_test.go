package content

import (
	"testing"

	"stage-game-service/internal/i18n"
)

func TestEmbeddedGamesAreValid(t *testing.T) {
	games, err := Games()
	if err != nil {
		t.Fatalf("load games: %v", err)
	}
	if len(games) < 2 {
		t.Fatalf("expected sample catalog, got %d games", len(games))
	}
	for id, game := range games {
		if err := game.Validate(); err != nil {
			t.Fatalf("game %s invalid: %v", id, err)
		}
		if warnings := game.Lint(); len(warnings) > 0 {
			t.Fatalf("game %s lint: %v", id, warnings)
		}
	}
}

func TestEveryStageHasHindiText(t *testing.T) {
	games, err := Games()
	if err != nil {
		t.Fatalf("load games: %v", err)
	}
	bundle, err := i18n.Load(i18n.Config{Locale: "en", FallbackLocale: "en"}, Locales, LocalesRoot)
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}

	for id, game := range games {
		hi := bundle.Localize(game, "hi")
		for i, stage := range hi.Stages {
			if stage.Prompt == game.Stages[i].Prompt {
				t.Fatalf("game %s stage %d prompt not translated", id, stage.ID)
			}
			for j, opt := range stage.Options {
				if opt.Label == game.Stages[i].Options[j].Label || opt.Reflection == game.Stages[i].Options[j].Reflection {
					t.Fatalf("game %s stage %d option %s not translated", id, stage.ID, opt.ID)
				}
			}
		}
	}
}
