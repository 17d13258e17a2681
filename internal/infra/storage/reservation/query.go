package reservation

import (
	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"charging_station_id",
	"connector_id",
	"expiry_date",
	"from_date",
	"to_date",
	"id_tag",
	"parent_id_tag",
	"user_id",
	"status",
	"type",
	"created_at",
	"updated_at",
}

// sortColumns допустимые поля сортировки API -> колонка
var sortColumns = map[string]string{
	"id":                "id",
	"chargingStationId": "charging_station_id",
	"connectorId":       "connector_id",
	"expiryDate":        "expiry_date",
	"fromDate":          "from_date",
	"toDate":            "to_date",
	"idTag":             "id_tag",
	"status":            "status",
	"type":              "type",
	"createdAt":         "created_at",
}

const defaultOrder = "expiry_date DESC, id DESC"

// applyFilter добавляет условия фильтра к запросу
func applyFilter(b squirrel.SelectBuilder, filter domain.ReservationFilter) squirrel.SelectBuilder {
	if filter.ChargingStationID != nil {
		b = b.Where(squirrel.Eq{"charging_station_id": *filter.ChargingStationID})
	}
	if filter.ConnectorID != nil {
		b = b.Where(squirrel.Eq{"connector_id": *filter.ConnectorID})
	}
	if filter.UserID != nil {
		b = b.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		b = b.Where(squirrel.Eq{"status": statuses})
	}
	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		b = b.Where(squirrel.Eq{"type": types})
	}
	if filter.ExpiryFrom != nil {
		b = b.Where(squirrel.GtOrEq{"expiry_date": *filter.ExpiryFrom})
	}
	if filter.ExpiryTo != nil {
		b = b.Where(squirrel.LtOrEq{"expiry_date": *filter.ExpiryTo})
	}
	return b
}

// orderBy возвращает выражение сортировки; неизвестные поля игнорируются
func orderBy(sorting domain.Sorting) string {
	column, ok := sortColumns[sorting.Field]
	if !ok {
		return defaultOrder
	}
	direction := "ASC"
	if sorting.Descending {
		direction = "DESC"
	}
	return column + " " + direction + ", id " + direction
}

// normalizePaging ограничивает limit и skip допустимыми значениями
func normalizePaging(paging domain.Paging) domain.Paging {
	if paging.Limit <= 0 {
		paging.Limit = domain.DefaultListLimit
	}
	if paging.Limit > domain.MaxListLimit {
		paging.Limit = domain.MaxListLimit
	}
	if paging.Skip < 0 {
		paging.Skip = 0
	}
	return paging
}

func buildListQuery(filter domain.ReservationFilter, paging domain.Paging, sorting domain.Sorting) squirrel.SelectBuilder {
	paging = normalizePaging(paging)
	return applyFilter(psqlbuilder.Select(columns...).From(table), filter).
		OrderBy(orderBy(sorting)).
		Limit(uint64(paging.Limit)).
		Offset(uint64(paging.Skip))
}

func buildCountQuery(filter domain.ReservationFilter) squirrel.SelectBuilder {
	return applyFilter(psqlbuilder.Select("COUNT(*)").From(table), filter)
}
