package handlers

import (
	"errors"
	"net/http"
	"strings"

	"dronetrack/internal/apperr"
	"dronetrack/internal/domain"
	"dronetrack/internal/logx"
)

// DispatchHandler accepts START/FINISH segment commands from lockers.
type DispatchHandler struct {
	orders     orderSource
	dispatcher commandDispatcher
	logger     logx.Logger
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(logger logx.Logger, orders orderSource, dispatcher commandDispatcher) *DispatchHandler {
	return &DispatchHandler{orders: orders, dispatcher: dispatcher, logger: logger}
}

// Post handles POST /orders/{orderID}/segments/{segmentIndex}/dispatch.
func (h *DispatchHandler) Post(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	segmentIndex, err := segmentIndexFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req dispatchRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	kind := domain.CommandKind(strings.ToUpper(strings.TrimSpace(req.Action)))
	lockerID := strings.TrimSpace(req.LockerID)
	if lockerID == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "locker_id is required")
		return
	}

	o, err := h.orders.GetOrder(r.Context(), orderID)
	switch {
	case err == nil:
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
		return
	default:
		writeError(h.logger, w, r, http.StatusBadGateway, "orders service unavailable")
		return
	}

	err = h.dispatcher.Dispatch(r.Context(), o, segmentIndex, kind, lockerID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusAccepted, dispatchResponse{Status: "accepted"})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "command not allowed in current state")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "command already in flight or rejected")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "order not found")
	default:
		writeError(h.logger, w, r, http.StatusBadGateway, "command delivery failed")
	}
}
