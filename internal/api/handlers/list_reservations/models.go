package list_reservations

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers/session_view"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// ReservationRowResponse строка списка
type ReservationRowResponse struct {
	*session_view.Reservation
	Actions []string `json:"actions"`
}

// AuthorizationsResponse права оператора на список
type AuthorizationsResponse struct {
	CanListSites     bool `json:"canListSites"`
	CanListSiteAreas bool `json:"canListSiteAreas"`
	CanListCompanies bool `json:"canListCompanies"`
	CanListUsers     bool `json:"canListUsers"`
	CanListTags      bool `json:"canListTags"`
	CanExport        bool `json:"canExport"`
	CanCreate        bool `json:"canCreate"`
	CanDelete        bool `json:"canDelete"`
	CanUpdate        bool `json:"canUpdate"`
}

// ListResponse HTTP response model
type ListResponse struct {
	Count          int                      `json:"count"`
	Result         []ReservationRowResponse `json:"result"`
	Toolbar        []string                 `json:"toolbar"`
	Authorizations AuthorizationsResponse   `json:"authorizations"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP модель
func FromServiceResponse(list *models.ReservationList) *ListResponse {
	resp := &ListResponse{
		Count:   list.Count,
		Result:  make([]ReservationRowResponse, 0, len(list.Rows)),
		Toolbar: list.Toolbar.Strings(),
		Authorizations: AuthorizationsResponse{
			CanListSites:     list.Authorizations.CanListSites,
			CanListSiteAreas: list.Authorizations.CanListSiteAreas,
			CanListCompanies: list.Authorizations.CanListCompanies,
			CanListUsers:     list.Authorizations.CanListUsers,
			CanListTags:      list.Authorizations.CanListTags,
			CanExport:        list.Authorizations.CanExport,
			CanCreate:        list.Authorizations.CanCreate,
			CanDelete:        list.Authorizations.CanDelete,
			CanUpdate:        list.Authorizations.CanUpdate,
		},
	}
	for _, row := range list.Rows {
		resp.Result = append(resp.Result, ReservationRowResponse{
			Reservation: session_view.FromReservation(row.Reservation),
			Actions:     row.Actions.Strings(),
		})
	}
	return resp
}

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(userID string, query url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{
		UserID: userID,
		Paging: domain.Paging{Limit: domain.DefaultListLimit},
	}

	if v := query.Get("chargingStationId"); v != "" {
		req.Filter.ChargingStationID = &v
	}

	if v := query.Get("connectorId"); v != "" {
		connectorID, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid connectorId value: %w", err)
		}
		req.Filter.ConnectorID = &connectorID
	}

	if v := query.Get("userId"); v != "" {
		req.Filter.UserID = &v
	}

	if v := query.Get("status"); v != "" {
		for _, s := range strings.Split(v, ",") {
			status := domain.ReservationStatus(strings.TrimSpace(s))
			if !status.IsValid() {
				return nil, fmt.Errorf("invalid status value: %q", s)
			}
			req.Filter.Statuses = append(req.Filter.Statuses, status)
		}
	}

	if v := query.Get("type"); v != "" {
		for _, t := range strings.Split(v, ",") {
			typ := domain.ReservationType(strings.TrimSpace(t))
			if !typ.IsValid() {
				return nil, fmt.Errorf("invalid type value: %q", t)
			}
			req.Filter.Types = append(req.Filter.Types, typ)
		}
	}

	var err error
	if req.Filter.ExpiryFrom, err = parseTime(query, "expiryFrom"); err != nil {
		return nil, err
	}
	if req.Filter.ExpiryTo, err = parseTime(query, "expiryTo"); err != nil {
		return nil, err
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("invalid limit value: %q", v)
		}
		req.Paging.Limit = limit
	}

	if v := query.Get("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil || skip < 0 {
			return nil, fmt.Errorf("invalid skip value: %q", v)
		}
		req.Paging.Skip = skip
	}

	// sort=-expiryDate: минус означает сортировку по убыванию
	if v := query.Get("sort"); v != "" {
		req.Sorting.Field = strings.TrimPrefix(v, "-")
		req.Sorting.Descending = strings.HasPrefix(v, "-")
	}

	return req, nil
}

func parseTime(query url.Values, key string) (*time.Time, error) {
	v := query.Get(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateTimeFormat, v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return &t, nil
}
