package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"stage-game-service/internal/app"
	"stage-game-service/internal/domain"
)

type WSHandler struct {
	service  *app.GameService
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	OptionID string `json:"optionId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades HTTP requests to websockets and drives one play-through
// per connection. State changes, including timer-driven ones, are pushed
// from the session subscription; direct replies carry selection results
// and errors.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	userID := r.URL.Query().Get("userId")
	locale := r.URL.Query().Get("locale")
	if gameID == "" || userID == "" {
		http.Error(w, "missing gameId or userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	state, err := h.service.Start(ctx, gameID, userID, locale)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: newErrorPayload(err)})
		return
	}
	sessionID := state.SessionID

	events, cancel, err := h.service.Subscribe(ctx, sessionID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: newErrorPayload(err)})
		return
	}
	defer h.service.End(ctx, sessionID)
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	eventsDone := make(chan struct{})

	// Single writer: gorilla connections allow one concurrent writer.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("ws write error", zap.String("session_id", sessionID), zap.Error(err))
				// Unblocks the read loop.
				_ = conn.Close()
				return
			}
		}
	}()

	go func() {
		defer close(eventsDone)
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				select {
				case send <- eventMessage(ev):
				case <-writerDone:
					return
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		msg, ok := h.dispatch(r, sessionID, inbound)
		if !ok {
			continue
		}
		select {
		case send <- msg:
		case <-writerDone:
		}
	}

	close(closeSignals)
	<-eventsDone
	close(send)
	<-writerDone
}

// dispatch runs one client action and returns the direct reply, if any.
func (h *WSHandler) dispatch(r *http.Request, sessionID string, inbound inboundMessage) (outboundMessage[any], bool) {
	ctx := r.Context()
	var err error

	switch inbound.Type {
	case "select":
		var payload selectPayload
		if jsonErr := json.Unmarshal(inbound.Payload, &payload); jsonErr != nil || payload.OptionID == "" {
			return outboundMessage[any]{Type: "error", Payload: errorPayload{Code: "bad_request", Message: "invalid select payload"}}, true
		}
		result, selErr := h.service.Select(ctx, sessionID, payload.OptionID)
		if selErr == nil {
			return outboundMessage[any]{Type: "selection", Payload: result}, true
		}
		err = selErr
	case "continue":
		_, err = h.service.Continue(ctx, sessionID)
	case "finish":
		_, err = h.service.Finish(ctx, sessionID)
	case "retry":
		_, err = h.service.Retry(ctx, sessionID)
	default:
		return outboundMessage[any]{Type: "error", Payload: errorPayload{Code: "bad_request", Message: "unsupported message type"}}, true
	}

	if err != nil {
		return outboundMessage[any]{Type: "error", Payload: newErrorPayload(err)}, true
	}
	return outboundMessage[any]{}, false
}

func eventMessage(ev domain.Event) outboundMessage[any] {
	switch ev.Type {
	case domain.EventFeedback:
		return outboundMessage[any]{Type: string(ev.Type), Payload: ev.Feedback}
	case domain.EventFeedbackReset:
		return outboundMessage[any]{Type: string(ev.Type), Payload: struct{}{}}
	default:
		return outboundMessage[any]{Type: string(ev.Type), Payload: ev.State}
	}
}
