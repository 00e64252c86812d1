package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dronetrack/internal/apperr"
	"dronetrack/internal/domain"
)

func TestClient_GetOrder_MapsResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/orders/ord-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "ord-1",
			"weight": 2.5,
			"size": "M",
			"priority": "EXPRESS",
			"status": "IN_DELIVERY",
			"source_locker_id": "SRC",
			"dest_locker_id": "DST",
			"segments": [
				{"order_id": "ord-1", "index": 0, "source_locker_id": "SRC",
				 "dest_locker_id": "DST", "drone_id": "DRN-1", "gcs_id": "GCS-1",
				 "flight_lane_id": "lane-7", "status": "IN_PROGRESS",
				 "created_at": "2026-08-30T10:00:00Z"}
			],
			"created_at": "2026-08-30T09:00:00Z",
			"updated_at": "2026-08-30T10:05:00Z"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	o, err := c.GetOrder(context.Background(), "ord-1")
	require.NoError(t, err)

	require.Equal(t, "ord-1", o.ID)
	require.Equal(t, domain.OrderStatusInDelivery, o.Status)
	require.Equal(t, domain.SizeMedium, o.Size)
	require.Equal(t, domain.PriorityExpress, o.Priority)
	require.Len(t, o.Segments, 1)
	require.Equal(t, domain.SegmentInProgress, o.Segments[0].Status)
	require.Equal(t, "lane-7", o.Segments[0].FlightLaneID)
	require.Equal(t, "DRN-1", o.AssignedDroneID())
}

func TestClient_GetOrder_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.GetOrder(context.Background(), "missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestClient_SendCommand_PostsBody(t *testing.T) {
	t.Parallel()

	var got commandDTO
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/commands", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	cmd := domain.Command{
		OrderID:      "ord-1",
		Kind:         domain.CommandStart,
		SegmentIndex: 0,
		LockerID:     "SRC",
		DroneID:      "DRN-1",
		GCSID:        "GCS-1",
		IssuedAt:     time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, c.SendCommand(context.Background(), cmd))

	require.Equal(t, "ord-1", got.OrderID)
	require.Equal(t, "START", got.Action)
	require.Equal(t, "SRC", got.LockerID)
	require.Equal(t, "DRN-1", got.DroneID)
}

func TestClient_SendCommand_ConflictMapped(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.SendCommand(context.Background(), domain.Command{OrderID: "ord-1", Kind: domain.CommandFinish})
	require.ErrorIs(t, err, apperr.ErrConflict)
}
