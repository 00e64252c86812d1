package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dronetrack/internal/domain"
	"dronetrack/internal/logx"
)

type stubRouteBuilder struct {
	fn func(ctx context.Context, o *domain.Order) *domain.RouteModel
}

func (s *stubRouteBuilder) Build(ctx context.Context, o *domain.Order) *domain.RouteModel {
	if s.fn == nil {
		panic("Build not expected in this test")
	}
	return s.fn(ctx, o)
}

func TestRouteHandler_Get_OK(t *testing.T) {
	t.Parallel()

	orders := &stubOrderSource{getFn: func(context.Context, string) (*domain.Order, error) {
		return twoHopOrder(), nil
	}}
	routes := &stubRouteBuilder{fn: func(_ context.Context, o *domain.Order) *domain.RouteModel {
		return &domain.RouteModel{
			OrderID: o.ID,
			Segments: []domain.SegmentRoute{
				{
					Segment:   o.Segments[0],
					Waypoints: []domain.Position{{Lat: 55.75, Lon: 37.61}, {Lat: 55.76, Lon: 37.63}},
					Progress:  domain.ProgressInProgress,
				},
			},
			Lockers: []domain.LockerWaypoint{
				{LockerID: "A", Name: "Locker A", Position: domain.Position{Lat: 55.75, Lon: 37.61}},
			},
			Path: []domain.Position{{Lat: 55.75, Lon: 37.61}, {Lat: 55.76, Lon: 37.63}},
		}
	}}
	h := NewRouteHandler(logx.Nop(), orders, routes)

	req := httptest.NewRequest(http.MethodGet, "/orders/ord-1/route?locker_id=A", nil)
	req = withURLParams(req, map[string]string{"orderID": "ord-1"})
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp routeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ord-1", resp.OrderID)
	require.Len(t, resp.Segments, 1)
	assert.Equal(t, "IN_PROGRESS", resp.Segments[0].Progress)
	assert.Len(t, resp.Segments[0].Waypoints, 2)
	require.Len(t, resp.Lockers, 1)
	assert.Equal(t, "Locker A", resp.Lockers[0].Name)
	require.NotNil(t, resp.Viewport)
	require.NotNil(t, resp.Viewport.Bounds)
	assert.Nil(t, resp.Drone)
}

func TestRouteHandler_Get_MissingLockerID(t *testing.T) {
	t.Parallel()

	h := NewRouteHandler(logx.Nop(), &stubOrderSource{}, &stubRouteBuilder{})

	req := httptest.NewRequest(http.MethodGet, "/orders/ord-1/route", nil)
	req = withURLParams(req, map[string]string{"orderID": "ord-1"})
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
