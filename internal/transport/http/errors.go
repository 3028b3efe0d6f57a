package http

import (
	"errors"
	"net/http"

	"stage-game-service/internal/domain"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var errorCodes = []struct {
	err    error
	code   string
	status int
}{
	{domain.ErrSessionNotFound, "session_not_found", http.StatusNotFound},
	{domain.ErrGameNotFound, "game_not_found", http.StatusNotFound},
	{domain.ErrPreferenceNotFound, "preference_not_found", http.StatusNotFound},
	{domain.ErrOptionNotFound, "option_not_found", http.StatusBadRequest},
	{domain.ErrInvalidGame, "invalid_game", http.StatusUnprocessableEntity},
	{domain.ErrAlreadySelected, "already_selected", http.StatusConflict},
	{domain.ErrNotReady, "not_ready", http.StatusConflict},
	{domain.ErrNoSelection, "no_selection", http.StatusConflict},
	{domain.ErrStagesRemaining, "stages_remaining", http.StatusConflict},
	{domain.ErrSessionComplete, "session_complete", http.StatusConflict},
	{domain.ErrRetryNotAllowed, "retry_not_allowed", http.StatusConflict},
}

func newErrorPayload(err error) errorPayload {
	code, _ := classify(err)
	return errorPayload{Code: code, Message: err.Error()}
}

func classify(err error) (string, int) {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code, c.status
		}
	}
	return "internal", http.StatusInternalServerError
}
