package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"stage-game-service/internal/app"
	"stage-game-service/internal/domain"
	"stage-game-service/internal/infra/memory"
)

func TestFourOfFiveCorrectFails(t *testing.T) {
	ctx := context.Background()
	sched := &app.FakeScheduler{}
	service, _ := newTestService(sched, memory.NewStaticMetadata(map[string]domain.GameData{
		"budget-basics": {Coins: 10, XP: 20},
	}))

	state, err := service.Start(ctx, "budget-basics", "u1", "en")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	answers := []string{"b", "b", "b", "b", "a"}
	for _, optionID := range answers {
		state = play(t, service, sched, state.SessionID, optionID)
	}

	if state.FinalScore != 4 || state.Passed || state.TotalCoins != 0 {
		t.Fatalf("expected finalScore=4 passed=false coins=0, got %d %v %d", state.FinalScore, state.Passed, state.TotalCoins)
	}
}

func TestAllCorrectEarnsConfiguredCoins(t *testing.T) {
	ctx := context.Background()
	sched := &app.FakeScheduler{}
	service, _ := newTestService(sched, memory.NewStaticMetadata(map[string]domain.GameData{
		"budget-basics": {Coins: 10, XP: 20},
	}))

	state, err := service.Start(ctx, "budget-basics", "u1", "en")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 5; i++ {
		state = play(t, service, sched, state.SessionID, "b")
	}

	if state.FinalScore != 5 || !state.Passed || state.TotalCoins != 10 || state.TotalXP != 20 {
		t.Fatalf("expected finalScore=5 passed coins=10 xp=20, got %+v", state)
	}
}

func TestRewardFallsBackWithoutMetadata(t *testing.T) {
	ctx := context.Background()
	sched := &app.FakeScheduler{}
	service, _ := newTestService(sched, memory.NewStaticMetadata(nil))

	state, err := service.Start(ctx, "savings-jar", "u1", "en")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	state = play(t, service, sched, state.SessionID, "b")
	if state.TotalCoins != 7 || state.TotalXP != 15 {
		t.Fatalf("expected game reward fallback 7/15, got %d/%d", state.TotalCoins, state.TotalXP)
	}

	state, _ = service.Start(ctx, "budget-basics", "u1", "en")
	for i := 0; i < 5; i++ {
		state = play(t, service, sched, state.SessionID, "b")
	}
	if state.TotalCoins != 10 || state.TotalXP != 10 {
		t.Fatalf("expected config default 10/10, got %d/%d", state.TotalCoins, state.TotalXP)
	}
}

func TestStartErrors(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(&app.FakeScheduler{}, nil)

	if _, err := service.Start(ctx, "missing", "u1", "en"); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if _, err := service.Start(ctx, "broken", "u1", "en"); !errors.Is(err, domain.ErrInvalidGame) {
		t.Fatalf("expected ErrInvalidGame, got %v", err)
	}
	if _, err := service.Select(ctx, "nope", "a"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestLocalePreferenceRemembered(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(&app.FakeScheduler{}, nil)

	if _, err := service.Start(ctx, "budget-basics", "u1", "hi"); err != nil {
		t.Fatalf("start: %v", err)
	}
	state, err := service.Start(ctx, "budget-basics", "u1", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if state.Locale != "hi" {
		t.Fatalf("expected stored locale hi, got %q", state.Locale)
	}
}

func TestEndDropsSession(t *testing.T) {
	ctx := context.Background()
	sched := &app.FakeScheduler{}
	service, store := newTestService(sched, nil)

	state, _ := service.Start(ctx, "budget-basics", "u1", "en")
	_, _ = service.Select(ctx, state.SessionID, "b")
	service.End(ctx, state.SessionID)

	if store.Len() != 0 {
		t.Fatalf("expected session removed")
	}
	if sched.Pending() != 0 {
		t.Fatalf("expected timers cancelled")
	}
	if _, err := service.State(ctx, state.SessionID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestListGames(t *testing.T) {
	service, _ := newTestService(&app.FakeScheduler{}, nil)
	games, err := service.ListGames(context.Background(), "en")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(games) != 3 || games[0].ID != "broken" {
		t.Fatalf("unexpected catalog %+v", games)
	}
}

func play(t *testing.T, service *app.GameService, sched *app.FakeScheduler, sessionID, optionID string) domain.SessionState {
	t.Helper()
	ctx := context.Background()
	if _, err := service.Select(ctx, sessionID, optionID); err != nil {
		t.Fatalf("select: %v", err)
	}
	sched.Advance(1500 * time.Millisecond)
	state, err := service.Continue(ctx, sessionID)
	if err != nil {
		t.Fatalf("continue: %v", err)
	}
	return state
}

func newTestService(sched *app.FakeScheduler, metadata app.MetadataLookup) (*app.GameService, *memory.SessionStore) {
	store := memory.NewSessionStore()
	loader := memory.NewStaticGameLoader(testGames())
	opts := []app.Option{
		app.WithCatalog(loader),
		app.WithPreferences(memory.NewPreferenceStore()),
		app.WithScheduler(sched.Schedule),
	}
	if metadata != nil {
		opts = append(opts, app.WithMetadata(metadata))
	}
	service := app.NewGameService(store, memory.NewGameRepository(loader, 5*time.Minute), domain.DefaultGameConfig(), opts...)
	return service, store
}

func testGames() map[string]domain.Game {
	savings := stageGame("savings-jar", 1)
	savings.Reward = domain.Reward{Coins: 7, XP: 15}

	broken := stageGame("broken", 1)
	broken.Stages[0].Options = broken.Stages[0].Options[:2]

	return map[string]domain.Game{
		"budget-basics": stageGame("budget-basics", 5),
		"savings-jar":   savings,
		"broken":        broken,
	}
}

func stageGame(id string, stages int) domain.Game {
	game := domain.Game{ID: id, Title: id, Skill: "Budgeting"}
	for i := 1; i <= stages; i++ {
		stage := domain.Stage{ID: i, Prompt: fmt.Sprintf("Stage %d", i)}
		for _, optID := range []string{"a", "b", "c"} {
			stage.Options = append(stage.Options, domain.Option{
				ID:         optID,
				Label:      optID,
				Reflection: "reflection " + optID,
				IsCorrect:  optID == "b",
			})
		}
		game.Stages = append(game.Stages, stage)
	}
	return game
}
