package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/api/request"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/explorer"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/service"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/validation"
)

// Live event types sent by clients.
const (
	EventRace         = "race"
	EventQuery        = "query"
	EventSort         = "sort"
	EventView         = "view"
	EventClear        = "clear"
	EventOpenDetails  = "open_details"
	EventCloseDetails = "close_details"
	EventRefresh      = "refresh"
)

// maxLiveMessageSize bounds one client frame.
const maxLiveMessageSize = 64 << 10

// LiveEvent is one client event on a live connection.
type LiveEvent struct {
	Type      string                  `json:"type"`
	Race      string                  `json:"race,omitempty"`
	Query     string                  `json:"query,omitempty"`
	Column    string                  `json:"column,omitempty"`
	View      string                  `json:"view,omitempty"`
	Candidate *request.DetailsRequest `json:"candidate,omitempty"`
}

// LiveMessage is sent to the client after every event.
type LiveMessage struct {
	Type    string               `json:"type"` // "projection" or "error"
	Session *service.SessionView `json:"session,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// LiveHandler streams session projections over a WebSocket. Events from one
// connection are applied strictly in arrival order.
type LiveHandler struct {
	sessionService *service.SessionService
	upgrader       websocket.Upgrader
	logger         *zap.Logger
}

// NewLiveHandler creates a LiveHandler. Browser connections are accepted only
// from allowedOrigins.
func NewLiveHandler(sessionService *service.SessionService, allowedOrigins []string, logger *zap.Logger) *LiveHandler {
	return &LiveHandler{
		sessionService: sessionService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
		logger: logger,
	}
}

// Serve upgrades the request and runs the event loop until the client leaves.
//
// Endpoint: GET /api/session/{uuid}/live
// Error: 404 Not Found before the upgrade when the session does not exist
func (h *LiveHandler) Serve(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	view, err := h.sessionService.Get(id)
	if err != nil {
		respondServiceError(w, "failed to open live session", err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade to websocket", zap.String("session", id), zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxLiveMessageSize)

	release, err := h.sessionService.Attach(id)
	if err != nil {
		//nolint:errcheck // Best effort, the connection is closed right after
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		return
	}
	defer release()

	h.logger.Debug("live session connected", zap.String("session", id))

	if err := h.send(conn, LiveMessage{Type: "projection", Session: &view}); err != nil {
		return
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", zap.String("session", id), zap.Error(err))
			}
			break
		}

		var event LiveEvent
		if err := json.Unmarshal(message, &event); err != nil {
			if h.send(conn, LiveMessage{Type: "error", Error: "invalid message format"}) != nil {
				break
			}
			continue
		}

		view, err := h.apply(id, event)
		msg := LiveMessage{Type: "projection", Session: &view}
		if err != nil {
			msg = LiveMessage{Type: "error", Error: err.Error()}
		}
		if h.send(conn, msg) != nil {
			break
		}
	}

	h.logger.Debug("live session disconnected", zap.String("session", id))
}

func (h *LiveHandler) apply(id string, event LiveEvent) (service.SessionView, error) {
	switch event.Type {
	case EventRace:
		return h.sessionService.SetRace(id, event.Race)
	case EventQuery:
		return h.sessionService.SetQuery(id, event.Query)
	case EventSort:
		req := request.SetSortRequest{Column: event.Column}
		if err := validation.ValidateSetSort(req); err != nil {
			return service.SessionView{}, err
		}
		return h.sessionService.SetSort(id, explorer.SortColumn(req.Column))
	case EventView:
		req := request.SetViewRequest{View: event.View}
		if err := validation.ValidateSetView(req); err != nil {
			return service.SessionView{}, err
		}
		return h.sessionService.SwitchView(id, explorer.View(req.View))
	case EventClear:
		return h.sessionService.ClearFilters(id)
	case EventOpenDetails:
		if event.Candidate == nil {
			return service.SessionView{}, errors.New("open_details needs a candidate")
		}
		if err := validation.ValidateDetails(*event.Candidate); err != nil {
			return service.SessionView{}, err
		}
		return h.sessionService.OpenDetails(id, detailsID(*event.Candidate))
	case EventCloseDetails:
		return h.sessionService.CloseDetails(id)
	case EventRefresh:
		return h.sessionService.Get(id)
	}
	return service.SessionView{}, fmt.Errorf("unknown event type %q", event.Type)
}

func (h *LiveHandler) send(conn *websocket.Conn, msg LiveMessage) error {
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Debug("failed to send live message", zap.Error(err))
		return err
	}
	return nil
}
