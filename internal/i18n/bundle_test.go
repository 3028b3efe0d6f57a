package i18n

import (
	"testing"
	"testing/fstest"

	"stage-game-service/internal/domain"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"locales/en/common.json": {Data: []byte(`{"actions":{"continue":"Continue","tryAgain":"Try Again"},"score":"Score"}`)},
		"locales/hi/common.json": {Data: []byte(`{"actions":{"continue":"आगे बढ़ें"}}`)},
		"locales/hi/pages/games/teen.json": {Data: []byte(`{"heading":"पैसे की समझ"}`)},
		"locales/hi/games/budget-basics.json": {Data: []byte(`{
			"title":"बजट की बुनियाद",
			"reflectionPrompts":["आप किसके लिए बचत करेंगे?"],
			"stages":{"1":{"prompt":"पहले क्या करें?","options":{"b":{"label":"बजट बनाएं","reflection":"योजना से नियंत्रण रहता है।"}}}}
		}`)},
	}
}

func TestLoadFlattensNamespaces(t *testing.T) {
	b, err := Load(Config{Locale: "en", FallbackLocale: "en"}, testFS(), "locales")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := b.T("hi", "common.actions.continue"); got != "आगे बढ़ें" {
		t.Fatalf("unexpected hi continue %q", got)
	}
	if got := b.T("hi", "pages.games.teen.heading"); got != "पैसे की समझ" {
		t.Fatalf("unexpected nested namespace %q", got)
	}
	if got := b.T("hi", "common.actions.tryAgain"); got != "Try Again" {
		t.Fatalf("expected fallback to en, got %q", got)
	}
	if got := b.T("hi", "common.missing"); got != "common.missing" {
		t.Fatalf("expected key echo, got %q", got)
	}
}

func TestAddTreeOverridesEarlierKeys(t *testing.T) {
	b := NewBundle(Config{Locale: "en"})
	_ = b.AddTree("en", "common", map[string]interface{}{"score": "Score", "coins": "Coins"})
	_ = b.AddTree("en", "common", map[string]interface{}{"score": "Points"})

	if got := b.T("en", "common.score"); got != "Points" {
		t.Fatalf("expected override, got %q", got)
	}
	if got := b.T("en", "common.coins"); got != "Coins" {
		t.Fatalf("expected earlier key kept, got %q", got)
	}
}

func TestResolveAndMatch(t *testing.T) {
	b, err := Load(Config{Locale: "en", FallbackLocale: "en"}, testFS(), "locales")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cases := map[string]string{
		"":      "en",
		"hi":    "hi",
		"hi-IN": "hi",
		"fr":    "en",
		"???":   "en",
	}
	for in, want := range cases {
		if got := b.Resolve(in); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", in, got, want)
		}
	}

	if got := b.Match("hi-IN,hi;q=0.9,en;q=0.8"); got != "hi" {
		t.Fatalf("expected hi from Accept-Language, got %q", got)
	}
	if got := b.Match(""); got != "en" {
		t.Fatalf("expected default for empty header, got %q", got)
	}
}

func TestLocalizeGame(t *testing.T) {
	b, err := Load(Config{Locale: "en", FallbackLocale: "en"}, testFS(), "locales")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	game := domain.Game{
		ID:                "budget-basics",
		Title:             "Budget Basics",
		ReflectionPrompts: []string{"What will you save for?"},
		Stages: []domain.Stage{{
			ID:     1,
			Prompt: "What first?",
			Options: []domain.Option{
				{ID: "a", Label: "Spend", Reflection: "Gone."},
				{ID: "b", Label: "Budget", Reflection: "Control.", IsCorrect: true},
			},
		}},
	}

	hi := b.Localize(game, "hi")
	if hi.Title != "बजट की बुनियाद" || hi.Stages[0].Prompt != "पहले क्या करें?" {
		t.Fatalf("expected Hindi title and prompt, got %+v", hi)
	}
	if hi.Stages[0].Options[1].Label != "बजट बनाएं" || !hi.Stages[0].Options[1].IsCorrect {
		t.Fatalf("expected translated correct option, got %+v", hi.Stages[0].Options[1])
	}
	if hi.Stages[0].Options[0].Label != "Spend" {
		t.Fatalf("missing translation should keep authored text, got %q", hi.Stages[0].Options[0].Label)
	}
	if hi.ReflectionPrompts[0] != "आप किसके लिए बचत करेंगे?" {
		t.Fatalf("unexpected reflection prompt %q", hi.ReflectionPrompts[0])
	}
	if game.Stages[0].Prompt != "What first?" {
		t.Fatalf("localize must not mutate the source game")
	}

	summary := b.LocalizeSummary(game.Summary(), "hi")
	if summary.Title != "बजट की बुनियाद" || summary.Stages != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
