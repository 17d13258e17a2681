package centralserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "secret", time.Second, nopLogger{})
}

func TestClient_FetchUserSessionContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users/u1/session-context", r.URL.Path)
		assert.Equal(t, "cs-1", r.URL.Query().Get("ChargingStationID"))
		assert.Equal(t, "2", r.URL.Query().Get("ConnectorID"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"tag":{"id":"t1","visualID":"V1","userID":"u1","active":true},"errorCodes":["BILLING_NO_TAX"]}`))
	})

	facts, err := client.FetchUserSessionContext(context.Background(), "u1", "cs-1", 2)

	require.NoError(t, err)
	require.NotNil(t, facts.ActiveTag)
	assert.Equal(t, "V1", facts.ActiveTag.VisualID)
	assert.True(t, facts.ActiveTag.Active)
	assert.Equal(t, []domain.ErrorCode{domain.ErrorCodeBillingNoTax}, facts.ErrorCodes)
}

func TestClient_FetchUserSessionContextWithoutTag(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errorCodes":[]}`))
	})

	facts, err := client.FetchUserSessionContext(context.Background(), "u1", "cs-1", 1)

	require.NoError(t, err)
	assert.Nil(t, facts.ActiveTag)
	assert.False(t, facts.HasErrors())
}

func TestClient_GetChargingStation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/charging-stations/cs-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(ChargingStation{
			ID: "cs-1",
			Connectors: []Connector{
				{ConnectorID: 1, Status: "Available"},
				{ConnectorID: 2, Status: "Charging", CurrentTransactionID: 10},
			},
		})
	})

	station, err := client.GetChargingStation(context.Background(), "cs-1")
	require.NoError(t, err)
	connector, ok := station.Connector(2)
	require.True(t, ok)
	assert.Equal(t, domain.ConnectorStatusCharging, connector.Status)
	assert.True(t, connector.HasActiveTransaction())

	_, err = client.GetChargingStation(context.Background(), "cs-404")
	assert.ErrorIs(t, err, domain.ErrChargingStationNotFound)
}

func TestClient_ReserveNow(t *testing.T) {
	expiry := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/charging-stations/cs-1/reserve/now", r.URL.Path)

		var body struct {
			Args ReserveNowArgs `json:"args"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 1, body.Args.ConnectorID)
		assert.Equal(t, "t1", body.Args.IDTag)
		assert.Equal(t, int64(42), body.Args.ReservationID)
		assert.True(t, expiry.Equal(body.Args.ExpiryDate))

		_, _ = w.Write([]byte(`{"status":"Rejected"}`))
	})

	resp, err := client.ReserveNow(context.Background(), "cs-1", ReserveNowArgs{
		ConnectorID:   1,
		ExpiryDate:    expiry,
		IDTag:         "t1",
		ReservationID: 42,
	})

	require.NoError(t, err)
	assert.False(t, resp.IsAccepted())
}

func TestClient_CancelReservation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/charging-stations/cs-1/reservation/cancel", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"Accepted"}`))
	})

	resp, err := client.CancelReservation(context.Background(), "cs-1", 42)

	require.NoError(t, err)
	assert.True(t, resp.IsAccepted())
}

func TestClient_GetReservationsAuthorizationsDefaultsTrue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"canExport":false,"canDelete":true}`))
	})

	auth, err := client.GetReservationsAuthorizations(context.Background(), "u1")

	require.NoError(t, err)
	assert.False(t, auth.CanExport)
	assert.True(t, auth.CanDelete)
	assert.True(t, auth.CanCreate)
	assert.True(t, auth.CanListUsers)
}

func TestClient_Errors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/missing/session-context":
			w.WriteHeader(http.StatusNotFound)
		case "/api/users/broken/session-context":
			_, _ = w.Write([]byte(`not json`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	})

	_, err := client.GetUserSessionContext(context.Background(), "missing", "cs-1", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = client.GetUserSessionContext(context.Background(), "broken", "cs-1", 1)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetUserSessionContext(context.Background(), "other", "cs-1", 1)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", 100*time.Millisecond, nopLogger{})

	_, err := client.GetUserSessionContext(context.Background(), "u1", "cs-1", 1)

	assert.ErrorIs(t, err, ErrInternal)
}
