package handler

import (
	"context"
	"encoding/json"
	"errors"

	"niche-picker-be/internal/dto"
	"niche-picker-be/internal/pkg/logger"
	"niche-picker-be/internal/service"
	internalWS "niche-picker-be/internal/websocket"
	"niche-picker-be/pkg/selection"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	FrameSelection = "selection"
	FrameError     = "error"
)

// Frame is what the server writes on the picker channel. A selection frame
// always carries the complete current view.
type Frame struct {
	Type    string               `json:"type"`
	Data    *dto.SessionResponse `json:"data,omitempty"`
	Message string               `json:"message,omitempty"`
}

// PickerHandler is the widget's emission channel: each inbound text frame is
// the widget's complete current selection as a JSON object.
type PickerHandler struct {
	sessions service.ISessionService
	hub      *internalWS.Hub
	logger   logger.ILogger
}

func NewPickerHandler(sessions service.ISessionService, hub *internalWS.Hub, log logger.ILogger) *PickerHandler {
	return &PickerHandler{
		sessions: sessions,
		hub:      hub,
		logger:   log,
	}
}

func (h *PickerHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/picker/:id", h.ServeWs)
}

// ServeWs checks the session exists before upgrading, so a stale link gets a
// plain 404 instead of a dead socket.
func (h *PickerHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	sessionID := c.Params("id")
	current, err := h.sessions.Get(c.UserContext(), sessionID)
	if errors.Is(err, service.ErrSessionNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	initial := encodeFrame(Frame{Type: FrameSelection, Data: current})

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("PickerHandler", "Starting picker session", map[string]interface{}{"session_id": sessionID})
		internalWS.ServeWs(h.hub, conn, sessionID, initial, func(client *internalWS.Client, payload []byte) []byte {
			return h.HandleEmission(context.Background(), client.SessionID, payload)
		})
		h.logger.Info("PickerHandler", "Picker session ended", map[string]interface{}{"session_id": sessionID})
	})(c)
}

// HandleEmission applies one widget emission. On success the new view is
// broadcast to every client of the session and nil is returned; otherwise
// the returned error frame is meant for the sender only and the stored
// selection is unchanged.
func (h *PickerHandler) HandleEmission(ctx context.Context, sessionID string, payload []byte) []byte {
	next := selection.New()
	if err := json.Unmarshal(payload, next); err != nil {
		h.logger.Warn("PickerHandler", "Rejected malformed emission", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
		return encodeFrame(Frame{Type: FrameError, Message: "selection must be a JSON object of industry to niche list"})
	}

	res, err := h.sessions.Replace(ctx, sessionID, next)
	if err != nil {
		h.logger.Warn("PickerHandler", "Emission not applied", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
		return encodeFrame(Frame{Type: FrameError, Message: err.Error()})
	}

	h.logger.Info("PickerHandler", "Emission applied", map[string]interface{}{
		"session_id": sessionID,
		"emission":   res.Emissions,
		"industries": next.Len(),
	})
	h.hub.Send(ctx, sessionID, encodeFrame(Frame{Type: FrameSelection, Data: res}))
	return nil
}

func encodeFrame(f Frame) []byte {
	data, err := json.Marshal(f)
	if err != nil {
		data, _ = json.Marshal(Frame{Type: FrameError, Message: "could not encode frame"})
	}
	return data
}
