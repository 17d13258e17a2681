package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func TestBuildListQuery_Defaults(t *testing.T) {
	query, args, err := buildListQuery(domain.ReservationFilter{}, domain.Paging{}, domain.Sorting{}).ToSql()

	require.NoError(t, err)
	assert.Contains(t, query, "FROM reservations")
	assert.Contains(t, query, "ORDER BY expiry_date DESC, id DESC")
	assert.Contains(t, query, "LIMIT 50 OFFSET 0")
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}

func TestBuildListQuery_Filters(t *testing.T) {
	station := "cs-1"
	connector := 2
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	filter := domain.ReservationFilter{
		ChargingStationID: &station,
		ConnectorID:       &connector,
		Statuses:          []domain.ReservationStatus{domain.ReservationStatusScheduled, domain.ReservationStatusInProgress},
		ExpiryFrom:        &from,
	}

	query, args, err := buildListQuery(filter, domain.Paging{Limit: 10, Skip: 20}, domain.Sorting{Field: "connectorId"}).ToSql()

	require.NoError(t, err)
	assert.Contains(t, query, "WHERE charging_station_id = $1 AND connector_id = $2 AND status IN ($3,$4) AND expiry_date >= $5")
	assert.Contains(t, query, "ORDER BY connector_id ASC, id ASC")
	assert.Contains(t, query, "LIMIT 10 OFFSET 20")
	assert.Equal(t, []interface{}{"cs-1", 2, "scheduled", "in_progress", from}, args)
}

func TestBuildCountQuery(t *testing.T) {
	user := "u1"
	query, args, err := buildCountQuery(domain.ReservationFilter{
		UserID: &user,
		Types:  []domain.ReservationType{domain.ReservationTypePlanned},
	}).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM reservations WHERE user_id = $1 AND type IN ($2)", query)
	assert.Equal(t, []interface{}{"u1", "planned_reservation"}, args)
}

func TestOrderBy_UnknownFieldFallsBack(t *testing.T) {
	assert.Equal(t, defaultOrder, orderBy(domain.Sorting{Field: "1; DROP TABLE reservations"}))
	assert.Equal(t, "status DESC, id DESC", orderBy(domain.Sorting{Field: "status", Descending: true}))
}

func TestNormalizePaging(t *testing.T) {
	assert.Equal(t, domain.Paging{Limit: domain.MaxListLimit, Skip: 0}, normalizePaging(domain.Paging{Limit: 10000, Skip: -3}))
	assert.Equal(t, domain.Paging{Limit: 5, Skip: 7}, normalizePaging(domain.Paging{Limit: 5, Skip: 7}))
}
