package reservation_action

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/permissions"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/reservation_session"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	reservation *domain.Reservation
	auth        domain.ReservationsAuthorizations
	station     *domain.ChargingStation
	stationErr  error
	cancelled   bool
	deleted     bool
}

func (s *stubService) Get(_ context.Context, id int64) (*domain.Reservation, error) {
	if s.reservation == nil || s.reservation.ID != id {
		return nil, domain.ErrReservationNotFound
	}
	r := *s.reservation
	return &r, nil
}

func (s *stubService) Cancel(_ context.Context, id int64) (*domain.Reservation, error) {
	s.cancelled = true
	r := *s.reservation
	r.Status = domain.ReservationStatusCancelled
	return &r, nil
}

func (s *stubService) Delete(context.Context, int64) error {
	s.deleted = true
	return nil
}

func (s *stubService) Authorizations(context.Context, string) (domain.ReservationsAuthorizations, error) {
	return s.auth, nil
}

func (s *stubService) GetChargingStation(context.Context, string) (*domain.ChargingStation, error) {
	return s.station, s.stationErr
}

type stubManager struct {
	got *reservation_session.OpenRequest
}

func (m *stubManager) Open(_ context.Context, req *reservation_session.OpenRequest) (reservation_session.Snapshot, error) {
	m.got = req
	return reservation_session.Snapshot{ID: "s-1", State: reservation_session.StateReady, ReadOnly: req.ReadOnly}, nil
}

func newService(canUpdate bool, connectorStatus domain.ConnectorStatus) *stubService {
	return &stubService{
		reservation: &domain.Reservation{
			ID:                5,
			ChargingStationID: "cs-1",
			ConnectorID:       1,
			Status:            domain.ReservationStatusScheduled,
			CanUpdate:         canUpdate,
			CanCancel:         true,
			CanDelete:         true,
		},
		auth: domain.DefaultReservationsAuthorizations(),
		station: &domain.ChargingStation{
			ID:         "cs-1",
			Connectors: []domain.Connector{{ConnectorID: 1, Status: connectorStatus}},
		},
	}
}

func serve(service *stubService, manager *stubManager, target string, operator string) *httptest.ResponseRecorder {
	h := NewHandler(service, permissions.NewGate(nopLogger{}), manager, nopLogger{})
	router := mux.NewRouter()
	router.HandleFunc("/reservations/{reservationId}/actions/{action}", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, target, nil)
	if operator != "" {
		req = req.WithContext(domain.ContextWithOperator(req.Context(), operator))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Edit(t *testing.T) {
	service := newService(true, domain.ConnectorStatusAvailable)
	manager := &stubManager{}

	rec := serve(service, manager, "/reservations/5/actions/edit", "op-1")

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, manager.got)
	require.NotNil(t, manager.got.ReservationID)
	assert.Equal(t, int64(5), *manager.got.ReservationID)
	assert.False(t, manager.got.ReadOnly)
}

func TestHandler_EditNotPermitted(t *testing.T) {
	service := newService(false, domain.ConnectorStatusAvailable)
	manager := &stubManager{}

	rec := serve(service, manager, "/reservations/5/actions/edit", "op-1")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, manager.got)
}

func TestHandler_View(t *testing.T) {
	service := newService(false, domain.ConnectorStatusAvailable)
	manager := &stubManager{}

	rec := serve(service, manager, "/reservations/5/actions/view", "op-1")

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, manager.got)
	assert.True(t, manager.got.ReadOnly)
	assert.Contains(t, rec.Body.String(), `"readOnly":true`)
}

func TestHandler_Cancel(t *testing.T) {
	service := newService(true, domain.ConnectorStatusAvailable)

	rec := serve(service, &stubManager{}, "/reservations/5/actions/cancel", "op-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, service.cancelled)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandler_CancelOnUnavailableConnector(t *testing.T) {
	service := newService(true, domain.ConnectorStatusUnavailable)

	rec := serve(service, &stubManager{}, "/reservations/5/actions/cancel", "op-1")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, service.cancelled)
}

func TestHandler_CancelWhenStationUnreachable(t *testing.T) {
	service := newService(true, domain.ConnectorStatusUnavailable)
	service.stationErr = assert.AnError

	rec := serve(service, &stubManager{}, "/reservations/5/actions/cancel", "op-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, service.cancelled)
}

func TestHandler_Delete(t *testing.T) {
	service := newService(true, domain.ConnectorStatusAvailable)

	rec := serve(service, &stubManager{}, "/reservations/5/actions/delete", "op-1")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, service.deleted)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		operator   string
		wantStatus int
	}{
		{name: "bad id", target: "/reservations/abc/actions/view", operator: "op-1", wantStatus: http.StatusBadRequest},
		{name: "unknown action", target: "/reservations/5/actions/archive", operator: "op-1", wantStatus: http.StatusBadRequest},
		{name: "toolbar action", target: "/reservations/5/actions/export", operator: "op-1", wantStatus: http.StatusBadRequest},
		{name: "missing operator", target: "/reservations/5/actions/view", wantStatus: http.StatusUnauthorized},
		{name: "not found", target: "/reservations/6/actions/view", operator: "op-1", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newService(true, domain.ConnectorStatusAvailable), &stubManager{}, tt.target, tt.operator)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
