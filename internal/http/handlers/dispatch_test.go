package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dronetrack/internal/apperr"
	"dronetrack/internal/domain"
	"dronetrack/internal/logx"
)

type stubDispatcher struct {
	fn func(ctx context.Context, o *domain.Order, segmentIndex int, kind domain.CommandKind, lockerID string) error
}

func (s *stubDispatcher) Dispatch(ctx context.Context, o *domain.Order, segmentIndex int, kind domain.CommandKind, lockerID string) error {
	if s.fn == nil {
		panic("Dispatch not expected in this test")
	}
	return s.fn(ctx, o, segmentIndex, kind, lockerID)
}

func dispatchReq(t *testing.T, orderID, segmentIndex, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost,
		"/orders/"+orderID+"/segments/"+segmentIndex+"/dispatch", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return withURLParams(req, map[string]string{"orderID": orderID, "segmentIndex": segmentIndex})
}

func TestDispatchHandler_Post_Accepted(t *testing.T) {
	t.Parallel()

	orders := &stubOrderSource{getFn: func(context.Context, string) (*domain.Order, error) {
		return twoHopOrder(), nil
	}}
	dispatcher := &stubDispatcher{fn: func(_ context.Context, o *domain.Order, idx int, kind domain.CommandKind, lockerID string) error {
		require.Equal(t, "ord-1", o.ID)
		require.Equal(t, 0, idx)
		require.Equal(t, domain.CommandStart, kind)
		require.Equal(t, "A", lockerID)
		return nil
	}}
	h := NewDispatchHandler(logx.Nop(), orders, dispatcher)

	rr := httptest.NewRecorder()
	h.Post(rr, dispatchReq(t, "ord-1", "0", `{"action":"start","locker_id":"A"}`))

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.JSONEq(t, `{"status": "accepted"}`, rr.Body.String())
}

func TestDispatchHandler_Post_InvalidStateRejected(t *testing.T) {
	t.Parallel()

	orders := &stubOrderSource{getFn: func(context.Context, string) (*domain.Order, error) {
		return twoHopOrder(), nil
	}}
	dispatcher := &stubDispatcher{fn: func(context.Context, *domain.Order, int, domain.CommandKind, string) error {
		return apperr.ErrInvalid
	}}
	h := NewDispatchHandler(logx.Nop(), orders, dispatcher)

	rr := httptest.NewRecorder()
	h.Post(rr, dispatchReq(t, "ord-1", "0", `{"action":"FINISH","locker_id":"B"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDispatchHandler_Post_Conflict(t *testing.T) {
	t.Parallel()

	orders := &stubOrderSource{getFn: func(context.Context, string) (*domain.Order, error) {
		return twoHopOrder(), nil
	}}
	dispatcher := &stubDispatcher{fn: func(context.Context, *domain.Order, int, domain.CommandKind, string) error {
		return apperr.ErrConflict
	}}
	h := NewDispatchHandler(logx.Nop(), orders, dispatcher)

	rr := httptest.NewRecorder()
	h.Post(rr, dispatchReq(t, "ord-1", "0", `{"action":"START","locker_id":"A"}`))

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestDispatchHandler_Post_BadSegmentIndex(t *testing.T) {
	t.Parallel()

	h := NewDispatchHandler(logx.Nop(), &stubOrderSource{}, &stubDispatcher{})

	rr := httptest.NewRecorder()
	h.Post(rr, dispatchReq(t, "ord-1", "abc", `{"action":"START","locker_id":"A"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDispatchHandler_Post_MissingLockerID(t *testing.T) {
	t.Parallel()

	h := NewDispatchHandler(logx.Nop(), &stubOrderSource{}, &stubDispatcher{})

	rr := httptest.NewRecorder()
	h.Post(rr, dispatchReq(t, "ord-1", "0", `{"action":"START"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDispatchHandler_Post_SendFailure(t *testing.T) {
	t.Parallel()

	orders := &stubOrderSource{getFn: func(context.Context, string) (*domain.Order, error) {
		return twoHopOrder(), nil
	}}
	dispatcher := &stubDispatcher{fn: func(context.Context, *domain.Order, int, domain.CommandKind, string) error {
		return errors.New("connection reset")
	}}
	h := NewDispatchHandler(logx.Nop(), orders, dispatcher)

	rr := httptest.NewRecorder()
	h.Post(rr, dispatchReq(t, "ord-1", "0", `{"action":"START","locker_id":"A"}`))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
