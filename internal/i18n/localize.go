package i18n

import (
	"strconv"

	"stage-game-service/internal/domain"
)

// Localize returns a copy of game with every translatable field replaced
// by its entry under games.<id>; missing entries keep the authored text.
func (b *Bundle) Localize(game domain.Game, locale string) domain.Game {
	prefix := "games." + game.ID

	out := game
	out.Title = b.text(locale, prefix+".title", game.Title)
	out.Subtitle = b.text(locale, prefix+".subtitle", game.Subtitle)
	out.Skill = b.text(locale, prefix+".skill", game.Skill)

	out.ReflectionPrompts = make([]string, len(game.ReflectionPrompts))
	for i, prompt := range game.ReflectionPrompts {
		out.ReflectionPrompts[i] = b.text(locale, prefix+".reflectionPrompts."+strconv.Itoa(i), prompt)
	}

	out.Stages = make([]domain.Stage, len(game.Stages))
	for i, stage := range game.Stages {
		stagePrefix := prefix + ".stages." + strconv.Itoa(stage.ID)
		localized := stage
		localized.Prompt = b.text(locale, stagePrefix+".prompt", stage.Prompt)
		localized.Options = make([]domain.Option, len(stage.Options))
		for j, opt := range stage.Options {
			optPrefix := stagePrefix + ".options." + opt.ID
			opt.Label = b.text(locale, optPrefix+".label", opt.Label)
			opt.Reflection = b.text(locale, optPrefix+".reflection", opt.Reflection)
			localized.Options[j] = opt
		}
		out.Stages[i] = localized
	}
	return out
}

// LocalizeSummary translates the catalog view of a game.
func (b *Bundle) LocalizeSummary(summary domain.GameSummary, locale string) domain.GameSummary {
	prefix := "games." + summary.ID
	summary.Title = b.text(locale, prefix+".title", summary.Title)
	summary.Subtitle = b.text(locale, prefix+".subtitle", summary.Subtitle)
	return summary
}

func (b *Bundle) text(locale, key, authored string) string {
	if msg, ok := b.Lookup(locale, key); ok && msg != "" {
		return msg
	}
	return authored
}
