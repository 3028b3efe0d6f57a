package redis

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"stage-game-service/internal/domain"
)

func TestPreferenceStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewPreferenceStore(newClient(mr))

	if _, err := store.GetLocale(ctx, "u1"); !errors.Is(err, domain.ErrPreferenceNotFound) {
		t.Fatalf("expected ErrPreferenceNotFound, got %v", err)
	}
	if err := store.SetLocale(ctx, "u1", "hi"); err != nil {
		t.Fatalf("set locale: %v", err)
	}
	if got, _ := mr.Get("locale:pref:u1"); got != "hi" {
		t.Fatalf("expected stored hi, got %q", got)
	}
	locale, err := store.GetLocale(ctx, "u1")
	if err != nil || locale != "hi" {
		t.Fatalf("expected hi, got %q (%v)", locale, err)
	}
}
