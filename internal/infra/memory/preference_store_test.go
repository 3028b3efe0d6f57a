package memory

import (
	"context"
	"errors"
	"testing"

	"stage-game-service/internal/domain"
)

func TestPreferenceStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewPreferenceStore()

	if _, err := store.GetLocale(ctx, "u1"); !errors.Is(err, domain.ErrPreferenceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.SetLocale(ctx, "u1", "hi"); err != nil {
		t.Fatalf("set: %v", err)
	}
	locale, err := store.GetLocale(ctx, "u1")
	if err != nil || locale != "hi" {
		t.Fatalf("expected hi, got %q (%v)", locale, err)
	}
}
