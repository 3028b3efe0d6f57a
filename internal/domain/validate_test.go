package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAggregatesProblems(t *testing.T) {
	game := Game{
		ID: "g",
		Stages: []Stage{
			{ID: 1, Options: []Option{{ID: "a"}, {ID: "a"}, {ID: "b"}}},
			{ID: 1, Options: []Option{{ID: "a"}, {ID: "b"}}},
		},
	}

	err := game.Validate()
	if !errors.Is(err, ErrInvalidGame) {
		t.Fatalf("expected ErrInvalidGame, got %v", err)
	}
	for _, want := range []string{`duplicate option "a"`, "stage 1: duplicate id", "2 options"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestValidateAcceptsWellFormedGame(t *testing.T) {
	game := Game{
		ID: "g",
		Stages: []Stage{
			{ID: 1, Options: []Option{{ID: "a"}, {ID: "b", IsCorrect: true}, {ID: "c"}}},
		},
	}
	if err := game.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLintFlagsCorrectOptionDrift(t *testing.T) {
	game := Game{
		ID: "g",
		Stages: []Stage{
			{ID: 1, Options: []Option{
				{ID: "a", Reflection: "r", IsCorrect: true},
				{ID: "b", Reflection: "r", IsCorrect: true},
				{ID: "c", Reflection: "r"},
			}},
		},
	}
	warnings := game.Lint()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "2 correct options") {
		t.Fatalf("unexpected warnings %v", warnings)
	}
}

func TestThresholdDefaultsToAllStages(t *testing.T) {
	cfg := DefaultGameConfig()
	if cfg.Threshold(5) != 5 {
		t.Fatalf("expected all 5 stages required")
	}
	cfg.PassThreshold = 3
	if cfg.Threshold(5) != 3 {
		t.Fatalf("expected threshold 3")
	}
}
