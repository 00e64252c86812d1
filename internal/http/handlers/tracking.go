package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"dronetrack/internal/apperr"
	"dronetrack/internal/logx"
	"dronetrack/internal/service/tracking"
)

// TrackingHandler streams live tracking snapshots over SSE.
type TrackingHandler struct {
	manager trackingManager
	logger  logx.Logger
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(logger logx.Logger, manager trackingManager) *TrackingHandler {
	return &TrackingHandler{manager: manager, logger: logger}
}

// Stream handles GET /orders/{orderID}/track?locker_id= as a server-sent
// event stream. The session is stopped when the client disconnects.
func (h *TrackingHandler) Stream(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	lockerID, err := lockerIDFromQuery(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(h.logger, w, r, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	s := h.manager.Start(r.Context(), orderID, lockerID)
	defer h.manager.Stop(s)

	if err := s.WaitFirst(r.Context()); err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeError(h.logger, w, r, http.StatusNotFound, "order not found")
		case r.Context().Err() != nil:
			// Client went away before the first snapshot.
		default:
			writeError(h.logger, w, r, http.StatusBadGateway, "orders service unavailable")
		}
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, open := <-s.Updates():
			if !open {
				return
			}
			if err := writeEvent(w, snap); err != nil {
				h.logger.Debug("tracking stream write failed",
					logx.String("order_id", orderID),
					logx.Any("err", err),
				)
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, snap tracking.Snapshot) error {
	ev := trackEvent{
		OrderID:  snap.Order.ID,
		State:    string(snap.Display),
		Status:   string(snap.Order.Status),
		Route:    routeModelToResponse(snap.Route),
		Viewport: viewportToDTO(snap.Viewport),
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", b)
	return err
}
