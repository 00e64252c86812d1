package handlers

import (
	"errors"
	"net/http"

	"dronetrack/internal/apperr"
	"dronetrack/internal/domain"
	"dronetrack/internal/logx"
	"dronetrack/internal/service/display"
)

// DisplayHandler serves the five-state screen projection for a locker.
type DisplayHandler struct {
	orders orderSource
	logger logx.Logger
}

// NewDisplayHandler creates a new DisplayHandler.
func NewDisplayHandler(logger logx.Logger, orders orderSource) *DisplayHandler {
	return &DisplayHandler{orders: orders, logger: logger}
}

// Get handles GET /orders/{orderID}/display?locker_id=.
func (h *DisplayHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	state := display.Project(o, lockerID)
	writeJSON(h.logger, w, r, http.StatusOK, displayResponse{
		OrderID:  o.ID,
		LockerID: lockerID,
		Role:     string(domain.RoleFor(o, lockerID)),
		State:    string(state),
		Status:   string(o.Status),
		ETA:      o.ETA,
	})
}
