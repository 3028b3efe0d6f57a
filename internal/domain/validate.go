package domain

import (
	"fmt"

	"go.uber.org/multierr"
)

const (
	minOptions = 3
	maxOptions = 5
)

// Validate reports every structural problem in the game content.
// The returned error wraps ErrInvalidGame.
func (g Game) Validate() error {
	var errs error
	if g.ID == "" {
		errs = multierr.Append(errs, fmt.Errorf("game id is empty"))
	}
	if len(g.Stages) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("game %q has no stages", g.ID))
	}

	seenStages := make(map[int]struct{}, len(g.Stages))
	for _, stage := range g.Stages {
		if _, dup := seenStages[stage.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("stage %d: duplicate id", stage.ID))
		}
		seenStages[stage.ID] = struct{}{}

		if n := len(stage.Options); n < minOptions || n > maxOptions {
			errs = multierr.Append(errs, fmt.Errorf("stage %d: %d options, want %d-%d", stage.ID, n, minOptions, maxOptions))
		}
		if stage.Reward < 0 {
			errs = multierr.Append(errs, fmt.Errorf("stage %d: negative reward", stage.ID))
		}

		seenOptions := make(map[string]struct{}, len(stage.Options))
		for _, opt := range stage.Options {
			if opt.ID == "" {
				errs = multierr.Append(errs, fmt.Errorf("stage %d: option with empty id", stage.ID))
				continue
			}
			if _, dup := seenOptions[opt.ID]; dup {
				errs = multierr.Append(errs, fmt.Errorf("stage %d: duplicate option %q", stage.ID, opt.ID))
			}
			seenOptions[opt.ID] = struct{}{}
		}
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGame, errs)
	}
	return nil
}

// Lint reports authoring-convention drift that the runtime tolerates.
func (g Game) Lint() []string {
	var warnings []string
	for _, stage := range g.Stages {
		correct := 0
		for _, opt := range stage.Options {
			if opt.IsCorrect {
				correct++
			}
			if opt.Reflection == "" {
				warnings = append(warnings, fmt.Sprintf("stage %d: option %q has no reflection", stage.ID, opt.ID))
			}
		}
		if correct != 1 {
			warnings = append(warnings, fmt.Sprintf("stage %d: %d correct options, expected exactly 1", stage.ID, correct))
		}
	}
	return warnings
}
