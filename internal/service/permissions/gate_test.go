package permissions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGate_PermittedActions(t *testing.T) {
	tests := []struct {
		name        string
		reservation domain.Reservation
		connector   domain.ConnectorStatus
		auth        domain.ReservationsAuthorizations
		want        []domain.Action
	}{
		{
			name:        "view and delete without toolbar rights",
			reservation: domain.Reservation{CanUpdate: false, CanDelete: true},
			connector:   domain.ConnectorStatusAvailable,
			want:        []domain.Action{domain.ActionView, domain.ActionDelete},
		},
		{
			name:        "edit replaces view",
			reservation: domain.Reservation{CanUpdate: true, CanCancel: true},
			connector:   domain.ConnectorStatusReserved,
			want:        []domain.Action{domain.ActionEdit, domain.ActionCancel},
		},
		{
			name:        "cancel hidden on unavailable connector",
			reservation: domain.Reservation{CanCancel: true},
			connector:   domain.ConnectorStatusUnavailable,
			want:        []domain.Action{domain.ActionView},
		},
		{
			name:        "toolbar actions from authorizations",
			reservation: domain.Reservation{CanUpdate: true},
			connector:   domain.ConnectorStatusAvailable,
			auth:        domain.ReservationsAuthorizations{CanCreate: true, CanExport: true},
			want:        []domain.Action{domain.ActionEdit, domain.ActionCreate, domain.ActionExport},
		},
	}

	gate := NewGate(nopLogger{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.reservation
			got := gate.PermittedActions(&r, tt.connector, tt.auth)
			assert.Equal(t, tt.want, got.List())
		})
	}
}

func TestGate_EditAndViewExclusive(t *testing.T) {
	gate := NewGate(nopLogger{})
	for _, canUpdate := range []bool{true, false} {
		for _, canDelete := range []bool{true, false} {
			for _, canCancel := range []bool{true, false} {
				r := &domain.Reservation{CanUpdate: canUpdate, CanDelete: canDelete, CanCancel: canCancel}
				set := gate.PermittedActions(r, domain.ConnectorStatusAvailable, domain.DefaultReservationsAuthorizations())

				assert.NotEqual(t, set.Has(domain.ActionEdit), set.Has(domain.ActionView))
			}
		}
	}
}

func TestGate_CheckReserveNow(t *testing.T) {
	tests := []struct {
		name      string
		station   *domain.ChargingStation
		connector *domain.Connector
		wantErr   error
	}{
		{
			name:      "available",
			station:   &domain.ChargingStation{ID: "cs-1"},
			connector: &domain.Connector{ConnectorID: 1, Status: domain.ConnectorStatusAvailable},
		},
		{
			name:      "inactive station",
			station:   &domain.ChargingStation{ID: "cs-1", Inactive: true},
			connector: &domain.Connector{ConnectorID: 1, Status: domain.ConnectorStatusAvailable},
			wantErr:   ErrStationInactive,
		},
		{
			name:      "reserved connector",
			station:   &domain.ChargingStation{ID: "cs-1"},
			connector: &domain.Connector{ConnectorID: 1, Status: domain.ConnectorStatusReserved},
			wantErr:   ErrConnectorNotAvailable,
		},
		{
			name:      "unavailable connector",
			station:   &domain.ChargingStation{ID: "cs-1"},
			connector: &domain.Connector{ConnectorID: 1, Status: domain.ConnectorStatusUnavailable},
			wantErr:   ErrConnectorNotAvailable,
		},
		{
			name:      "transaction in progress",
			station:   &domain.ChargingStation{ID: "cs-1"},
			connector: &domain.Connector{ConnectorID: 1, Status: domain.ConnectorStatusCharging, CurrentTransactionID: 55},
			wantErr:   ErrTransactionInProgress,
		},
	}

	gate := NewGate(nopLogger{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.CheckReserveNow(tt.station, tt.connector)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGate_CheckCancelReservation(t *testing.T) {
	gate := NewGate(nopLogger{})
	station := &domain.ChargingStation{ID: "cs-1"}

	assert.NoError(t, gate.CheckCancelReservation(station, &domain.Connector{Status: domain.ConnectorStatusReserved}))
	assert.ErrorIs(t, gate.CheckCancelReservation(station, &domain.Connector{Status: domain.ConnectorStatusUnavailable}), ErrConnectorNotAvailable)
	assert.ErrorIs(t, gate.CheckCancelReservation(&domain.ChargingStation{Inactive: true}, &domain.Connector{}), ErrStationInactive)
}

func TestGate_Authorize(t *testing.T) {
	gate := NewGate(nopLogger{})
	r := &domain.Reservation{CanUpdate: false, CanDelete: true}

	assert.NoError(t, gate.Authorize(domain.ActionDelete, r, domain.ConnectorStatusAvailable, domain.ReservationsAuthorizations{}))
	assert.ErrorIs(t, gate.Authorize(domain.ActionEdit, r, domain.ConnectorStatusAvailable, domain.ReservationsAuthorizations{}), ErrActionNotPermitted)
	assert.ErrorIs(t, gate.Authorize(domain.Action(0), r, domain.ConnectorStatusAvailable, domain.ReservationsAuthorizations{}), domain.ErrUnknownAction)
}

func TestDispatch(t *testing.T) {
	var called []string
	handlers := Handlers{
		View:   func() error { called = append(called, "view"); return nil },
		Edit:   func() error { called = append(called, "edit"); return nil },
		Cancel: func() error { return errors.New("boom") },
		Delete: func() error { called = append(called, "delete"); return nil },
	}

	assert.NoError(t, Dispatch(domain.ActionView, handlers))
	assert.NoError(t, Dispatch(domain.ActionEdit, handlers))
	assert.NoError(t, Dispatch(domain.ActionDelete, handlers))
	assert.EqualError(t, Dispatch(domain.ActionCancel, handlers), "boom")
	assert.Equal(t, []string{"view", "edit", "delete"}, called)

	assert.ErrorIs(t, Dispatch(domain.ActionCreate, handlers), ErrActionNotApplicable)
	assert.ErrorIs(t, Dispatch(domain.ActionExport, handlers), ErrActionNotApplicable)
	assert.ErrorIs(t, Dispatch(domain.Action(77), handlers), domain.ErrUnknownAction)
	assert.ErrorIs(t, Dispatch(domain.ActionView, Handlers{}), ErrActionNotApplicable)
}
