package reservation_session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var errStationInactive = errors.New("station inactive")

type stubStations struct {
	stations map[string]*domain.ChargingStation
	err      error
}

func (s *stubStations) GetChargingStation(_ context.Context, id string) (*domain.ChargingStation, error) {
	if s.err != nil {
		return nil, s.err
	}
	st, ok := s.stations[id]
	if !ok {
		return nil, domain.ErrChargingStationNotFound
	}
	return st, nil
}

type stubGate struct{}

func (stubGate) CheckReserveNow(station *domain.ChargingStation, _ *domain.Connector) error {
	if station.Inactive {
		return errStationInactive
	}
	return nil
}

type fixedIDs struct{}

func (fixedIDs) NewSessionID() string { return "session-1" }
func (fixedIDs) NewReservationID() int64 { return 777 }

func newTestManager(resolver *stubResolver, gateway *stubGateway, stations *stubStations) (*Manager, *Registry) {
	clock := &fixedClock{now: testNow}
	registry := NewRegistry(time.Hour, clock, nopLogger{})
	m := NewManager(registry, resolver, gateway, stations, stubGate{}, fixedIDs{}, clock, nil, nopLogger{}, 0)
	return m, registry
}

func testStations() *stubStations {
	return &stubStations{stations: map[string]*domain.ChargingStation{
		"cs-1": {
			ID: "cs-1",
			Connectors: []domain.Connector{
				{ConnectorID: 1, Status: domain.ConnectorStatusAvailable},
			},
		},
		"cs-off": {
			ID:         "cs-off",
			Inactive:   true,
			Connectors: []domain.Connector{{ConnectorID: 1, Status: domain.ConnectorStatusAvailable}},
		},
	}}
}

func TestManager_OpenNewReservation(t *testing.T) {
	resolver := newStubResolver()
	resolver.facts["u1"] = &domain.EligibilityFacts{ActiveTag: activeTag("t1", "u1")}
	m, registry := newTestManager(resolver, newStubGateway(), testStations())

	snap, err := m.Open(context.Background(), &OpenRequest{
		ChargingStationID: "cs-1",
		ConnectorID:       1,
		User:              &domain.User{ID: "u1", FirstName: "Ana", Name: "Lopez"},
	})

	require.NoError(t, err)
	assert.Equal(t, "session-1", snap.ID)
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, int64(777), snap.Draft.ReservationID)
	assert.Equal(t, testNow.Add(domain.DefaultExpiryDelay), snap.Draft.ExpiryDate)
	assert.Equal(t, "t1", snap.Draft.TagID)
	assert.True(t, snap.CanSubmit())
	assert.Equal(t, 1, registry.Len())

	s, err := m.Session("session-1")
	require.NoError(t, err)
	assert.Equal(t, snap.Draft, s.Snapshot().Draft)
}

func TestManager_OpenErrors(t *testing.T) {
	missing := int64(99)
	tests := []struct {
		name    string
		req     *OpenRequest
		wantErr error
	}{
		{name: "nil request", req: nil, wantErr: ErrInvalidInput},
		{name: "missing station", req: &OpenRequest{ConnectorID: 1}, wantErr: ErrInvalidInput},
		{name: "bad connector id", req: &OpenRequest{ChargingStationID: "cs-1"}, wantErr: ErrInvalidInput},
		{name: "unknown station", req: &OpenRequest{ChargingStationID: "cs-x", ConnectorID: 1}, wantErr: domain.ErrChargingStationNotFound},
		{name: "unknown connector", req: &OpenRequest{ChargingStationID: "cs-1", ConnectorID: 5}, wantErr: ErrConnectorNotFound},
		{name: "gate refuses", req: &OpenRequest{ChargingStationID: "cs-off", ConnectorID: 1}, wantErr: errStationInactive},
		{name: "unknown reservation", req: &OpenRequest{ReservationID: &missing}, wantErr: domain.ErrReservationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, registry := newTestManager(newStubResolver(), newStubGateway(), testStations())

			_, err := m.Open(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, registry.Len())
		})
	}
}

func TestManager_OpenStationBackendFailure(t *testing.T) {
	m, _ := newTestManager(newStubResolver(), newStubGateway(), &stubStations{err: errors.New("timeout")})

	_, err := m.Open(context.Background(), &OpenRequest{ChargingStationID: "cs-1", ConnectorID: 1})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestManager_OpenExistingReservation(t *testing.T) {
	tests := []struct {
		name         string
		canUpdate    bool
		readOnly     bool
		wantReadOnly bool
	}{
		{name: "editable", canUpdate: true, wantReadOnly: false},
		{name: "not updatable", canUpdate: false, wantReadOnly: true},
		{name: "view requested", canUpdate: true, readOnly: true, wantReadOnly: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := newStubGateway()
			gateway.stored[7] = &domain.Reservation{
				ID:                7,
				ChargingStationID: "cs-1",
				ConnectorID:       1,
				UserID:            "u1",
				IDTag:             "t1",
				ExpiryDate:        testNow.Add(time.Hour),
				Type:              domain.ReservationTypeReserveNow,
				Status:            domain.ReservationStatusScheduled,
				CanUpdate:         tt.canUpdate,
			}
			m, _ := newTestManager(newStubResolver(), gateway, testStations())
			id := int64(7)

			snap, err := m.Open(context.Background(), &OpenRequest{ReservationID: &id, ReadOnly: tt.readOnly})

			require.NoError(t, err)
			assert.Equal(t, tt.wantReadOnly, snap.ReadOnly)
			assert.True(t, snap.Draft.IsExisting())
			assert.Equal(t, "t1", snap.Draft.TagID)
			assert.Equal(t, StateReady, snap.State)
		})
	}
}

func TestManager_Close(t *testing.T) {
	m, registry := newTestManager(newStubResolver(), newStubGateway(), testStations())
	_, err := m.Open(context.Background(), &OpenRequest{ChargingStationID: "cs-1", ConnectorID: 1})
	require.NoError(t, err)

	snap, err := m.Close("session-1")

	require.NoError(t, err)
	assert.Equal(t, StateClosed, snap.State)
	assert.Equal(t, 0, registry.Len())

	_, err = m.Close("session-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_FacadeFlow(t *testing.T) {
	resolver := newStubResolver()
	resolver.facts["u1"] = &domain.EligibilityFacts{}
	gateway := newStubGateway()
	m, _ := newTestManager(resolver, gateway, testStations())

	_, err := m.Open(context.Background(), &OpenRequest{ChargingStationID: "cs-1", ConnectorID: 1})
	require.NoError(t, err)

	snap, err := m.AssignUser(context.Background(), "session-1", domain.User{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "missing_tag", string(snap.Verdict.Reason))

	snap, err = m.AssignTag("session-1", domain.Tag{ID: "t1", Active: true})
	require.NoError(t, err)
	assert.True(t, snap.CanSubmit())

	snap, err = m.SetSchedule("session-1", domain.Schedule{
		Type:       domain.ReservationTypeReserveNow,
		ExpiryDate: testNow.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, snap.CanSubmit())

	snap, err = m.Submit(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, snap.Outcome)
	assert.Equal(t, testNow.Add(2*time.Hour), snap.Request.ExpiryDate)

	snap, err = m.Snapshot("session-1")
	require.NoError(t, err)
	assert.Equal(t, StateClosed, snap.State)

	_, err = m.Cancel("session-1")
	assert.ErrorIs(t, err, ErrSessionClosed)

	_, err = m.AssignTag("missing", domain.Tag{ID: "t1"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
