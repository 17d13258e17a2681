package open_session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/reservation_session"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubManager struct {
	got  *reservation_session.OpenRequest
	snap reservation_session.Snapshot
	err  error
}

func (m *stubManager) Open(_ context.Context, req *reservation_session.OpenRequest) (reservation_session.Snapshot, error) {
	m.got = req
	return m.snap, m.err
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		operator   string
		err        error
		wantStatus int
		wantUser   string
	}{
		{
			name:       "without user",
			body:       `{"chargingStationId":"cs-1","connectorId":1}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "explicit user",
			body:       `{"chargingStationId":"cs-1","connectorId":1,"user":{"id":"u1","firstName":"Ana"}}`,
			wantStatus: http.StatusCreated,
			wantUser:   "u1",
		},
		{
			name:       "assign self",
			body:       `{"chargingStationId":"cs-1","connectorId":1,"assignSelf":true}`,
			operator:   "op-7",
			wantStatus: http.StatusCreated,
			wantUser:   "op-7",
		},
		{
			name:       "existing reservation",
			body:       `{"reservationId":5,"readOnly":true}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing connector",
			body:       `{"chargingStationId":"cs-1"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"chargingStationId":"cs-1","connectorId":1,"extra":1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "station not found",
			body:       `{"chargingStationId":"cs-x","connectorId":1}`,
			err:        domain.ErrChargingStationNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := &stubManager{
				snap: reservation_session.Snapshot{ID: "s-1", State: reservation_session.StateReady},
				err:  tt.err,
			}
			h := NewHandler(manager, nopLogger{})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/reservation-sessions", strings.NewReader(tt.body))
			if tt.operator != "" {
				req = req.WithContext(domain.ContextWithOperator(req.Context(), tt.operator))
			}
			rec := httptest.NewRecorder()

			h.Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusCreated {
				return
			}
			require.NotNil(t, manager.got)
			if tt.wantUser == "" {
				assert.Nil(t, manager.got.User)
			} else {
				require.NotNil(t, manager.got.User)
				assert.Equal(t, tt.wantUser, manager.got.User.ID)
			}
			assert.Contains(t, rec.Body.String(), `"id":"s-1"`)
		})
	}
}
