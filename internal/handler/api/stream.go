package api

import (
	"time"

	models "Jyotish/internal/domain/models"
	"Jyotish/internal/usecase"
	xhttp "Jyotish/pkg/http"
	xlogger "Jyotish/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// chunkDays is the scan slice pushed per websocket frame batch. Long scans
// stream results as each slice completes instead of blocking to the end.
const chunkDays = 30.0

// StreamHandler pushes scan activations over a websocket as they are found.
type StreamHandler struct {
	logger       *xlogger.Logger
	timeline     *usecase.TimelineUseCase
	upgrader     websocket.Upgrader
	pingInterval time.Duration
}

func NewStreamHandler(logger *xlogger.Logger, timeline *usecase.TimelineUseCase) *StreamHandler {
	return &StreamHandler{
		logger:   logger,
		timeline: timeline,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		pingInterval: 15 * time.Second,
	}
}

func (h *StreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/transits", h.Transits)
}

// wsFrame is one streamed message: a batch of activations for a sub-range,
// or the terminal frame carrying done/cancelled.
type wsFrame struct {
	Type        string              `json:"type"` // batch, done, error
	FromJD      float64             `json:"from_jd,omitempty"`
	ToJD        float64             `json:"to_jd,omitempty"`
	Activations []models.Activation `json:"activations,omitempty"`
	Cancelled   bool                `json:"cancelled,omitempty"`
	Error       string              `json:"error,omitempty"`
}

func (h *StreamHandler) Transits(c echo.Context) error {
	req := &models.TransitRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("ws upgrade error", xlogger.Error(err))
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()

	// keepalive, same cadence the upstream stream clients use
	stopPing := make(chan struct{})
	go func() {
		ticker := time.NewTicker(h.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopPing:
				return
			case <-ticker.C:
				_ = conn.WriteMessage(websocket.PingMessage, nil)
			}
		}
	}()
	defer close(stopPing)

	startJD, endJD, err := h.timeline.Bounds(req.From, req.To)
	if err != nil {
		_ = conn.WriteJSON(wsFrame{Type: "error", Error: err.Error()})
		return nil
	}

	spec := req.Spec()
	for lo := startJD; lo < endJD; lo += chunkDays {
		hi := lo + chunkDays
		if hi > endJD {
			hi = endJD
		}
		res, err := h.timeline.ScanJD(ctx, spec, lo, hi, req.Kinds)
		if err != nil {
			h.logger.Error("ws scan error", xlogger.Error(err))
			_ = conn.WriteJSON(wsFrame{Type: "error", Error: err.Error()})
			return nil
		}
		if err := conn.WriteJSON(wsFrame{Type: "batch", FromJD: lo, ToJD: hi, Activations: res.Activations}); err != nil {
			h.logger.Warn("ws write error", xlogger.Error(err))
			return nil
		}
		if res.Cancelled {
			_ = conn.WriteJSON(wsFrame{Type: "done", Cancelled: true})
			return nil
		}
	}
	_ = conn.WriteJSON(wsFrame{Type: "done"})
	return nil
}
