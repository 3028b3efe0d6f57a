package cli

import (
	"bytes"
	"strings"
	"testing"

	"stage-game-service/internal/domain"
)

func TestValidateCommandEmbeddedCatalog(t *testing.T) {
	cmd := NewValidateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("validate embedded: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "ok   budget-basics (5 stages)") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestValidateGamesReportsFailuresAndWarnings(t *testing.T) {
	cmd := NewValidateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	opts := []domain.Option{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}, {ID: "c", Label: "C"}}
	games := map[string]domain.Game{
		"no-correct":  {ID: "no-correct", Stages: []domain.Stage{{ID: 1, Prompt: "?", Options: opts}}},
		"two-options": {ID: "two-options", Stages: []domain.Stage{{ID: 1, Prompt: "?", Options: opts[:2]}}},
	}

	err := validateGames(cmd, games)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 games invalid") {
		t.Fatalf("expected one invalid game, got %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "FAIL two-options") {
		t.Fatalf("expected failure line, got:\n%s", got)
	}
	if !strings.Contains(got, "WARN no-correct: stage 1: 0 correct options") {
		t.Fatalf("expected lint warning, got:\n%s", got)
	}
}
