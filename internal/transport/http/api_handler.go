package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"stage-game-service/internal/app"
	"stage-game-service/internal/domain"
	"stage-game-service/internal/i18n"
)

// APIHandler serves the catalog, translations and locale preferences.
type APIHandler struct {
	service *app.GameService
	bundle  *i18n.Bundle
	prefs   app.PreferenceStore
	logger  *zap.Logger
}

func NewAPIHandler(service *app.GameService, bundle *i18n.Bundle, prefs app.PreferenceStore, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{service: service, bundle: bundle, prefs: prefs, logger: logger}
}

// Register mounts the API routes on mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /games", h.listGames)
	mux.HandleFunc("GET /sessions/{sessionId}", h.getSession)
	mux.HandleFunc("GET /i18n/{locale}", h.getMessages)
	mux.HandleFunc("GET /users/{userId}/locale", h.getLocale)
	mux.HandleFunc("PUT /users/{userId}/locale", h.putLocale)
}

type messagesResponse struct {
	Locale   string            `json:"locale"`
	Messages map[string]string `json:"messages"`
}

type localeBody struct {
	Locale string `json:"locale"`
}

func (h *APIHandler) listGames(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = h.bundle.Match(r.Header.Get("Accept-Language"))
	}
	games, err := h.service.ListGames(r.Context(), locale)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *APIHandler) getSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.State(r.Context(), r.PathValue("sessionId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *APIHandler) getMessages(w http.ResponseWriter, r *http.Request) {
	locale := h.bundle.Resolve(r.PathValue("locale"))
	writeJSON(w, http.StatusOK, messagesResponse{Locale: locale, Messages: h.bundle.Messages(locale)})
}

func (h *APIHandler) getLocale(w http.ResponseWriter, r *http.Request) {
	locale, err := h.prefs.GetLocale(r.Context(), r.PathValue("userId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, localeBody{Locale: locale})
}

func (h *APIHandler) putLocale(w http.ResponseWriter, r *http.Request) {
	var body localeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Locale == "" {
		writeJSON(w, http.StatusBadRequest, errorPayload{Code: "bad_request", Message: "body must be {\"locale\": \"...\"}"})
		return
	}
	locale := h.bundle.Resolve(body.Locale)
	if err := h.prefs.SetLocale(r.Context(), r.PathValue("userId"), locale); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, localeBody{Locale: locale})
}

func (h *APIHandler) writeError(w http.ResponseWriter, err error) {
	code, status := classify(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	if errors.Is(err, domain.ErrPreferenceNotFound) {
		writeJSON(w, status, errorPayload{Code: code, Message: "no locale stored"})
		return
	}
	writeJSON(w, status, errorPayload{Code: code, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
