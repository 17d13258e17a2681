package centralserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент REST API центрального сервера (OCPP backend)
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента центрального сервера
func NewClient(baseURL, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUserSessionContext получает активный бейдж пользователя и коды ошибок биллинга
func (c *Client) GetUserSessionContext(ctx context.Context, userID, stationID string, connectorID int) (*UserSessionContext, error) {
	query := url.Values{}
	query.Set("ChargingStationID", stationID)
	query.Set("ConnectorID", strconv.Itoa(connectorID))
	endpoint := fmt.Sprintf("%s/api/users/%s/session-context?%s", c.baseURL, url.PathEscape(userID), query.Encode())

	var result UserSessionContext
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchUserSessionContext возвращает факты о пользователе в доменной модели
func (c *Client) FetchUserSessionContext(ctx context.Context, userID, stationID string, connectorID int) (*domain.EligibilityFacts, error) {
	sessionContext, err := c.GetUserSessionContext(ctx, userID, stationID, connectorID)
	if err != nil {
		return nil, err
	}
	return sessionContext.ToDomain(), nil
}

// GetChargingStation получает состояние зарядной станции и её коннекторов
func (c *Client) GetChargingStation(ctx context.Context, stationID string) (*domain.ChargingStation, error) {
	endpoint := fmt.Sprintf("%s/api/charging-stations/%s", c.baseURL, url.PathEscape(stationID))

	var result ChargingStation
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		if err == ErrNotFound {
			return nil, domain.ErrChargingStationNotFound
		}
		return nil, err
	}
	return result.ToDomain(), nil
}

// ReserveNow отправляет станции команду ReserveNow
func (c *Client) ReserveNow(ctx context.Context, stationID string, args ReserveNowArgs) (*CommandResponse, error) {
	endpoint := fmt.Sprintf("%s/api/charging-stations/%s/reserve/now", c.baseURL, url.PathEscape(stationID))

	c.log.Info("CentralServer: ReserveNow station=%s connector=%d reservation=%d",
		stationID, args.ConnectorID, args.ReservationID)

	var result CommandResponse
	if err := c.do(ctx, http.MethodPut, endpoint, commandRequest{Args: args}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelReservation отправляет станции команду CancelReservation
func (c *Client) CancelReservation(ctx context.Context, stationID string, reservationID int64) (*CommandResponse, error) {
	endpoint := fmt.Sprintf("%s/api/charging-stations/%s/reservation/cancel", c.baseURL, url.PathEscape(stationID))

	c.log.Info("CentralServer: CancelReservation station=%s reservation=%d", stationID, reservationID)

	var result CommandResponse
	args := CancelReservationArgs{ReservationID: reservationID}
	if err := c.do(ctx, http.MethodPut, endpoint, commandRequest{Args: args}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetReservationsAuthorizations получает права пользователя на список резервирований
func (c *Client) GetReservationsAuthorizations(ctx context.Context, userID string) (domain.ReservationsAuthorizations, error) {
	endpoint := fmt.Sprintf("%s/api/users/%s/authorizations/reservations", c.baseURL, url.PathEscape(userID))

	var result ReservationsAuthorizations
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return domain.ReservationsAuthorizations{}, err
	}
	return result.ToDomain(), nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrNotFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		c.log.Warn("CentralServer: %s %s returned %d", method, req.URL.Path, resp.StatusCode)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
