package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/centralserver"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service сервис резервирований: backend для сессий формы и списка
type Service struct {
	repo    ReservationRepository
	central CentralServerClient
	gate    ActionGate
	events  EventPublisher
	txm     TransactionManager
	logger  Logger
}

// NewService создает новый экземпляр сервиса резервирований
func NewService(
	repo ReservationRepository,
	central CentralServerClient,
	gate ActionGate,
	events EventPublisher,
	txm TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		repo:    repo,
		central: central,
		gate:    gate,
		events:  events,
		txm:     txm,
		logger:  logger,
	}
}

// CreateOrReserve создает или обновляет резервирование.
// Для reserve-now станции отправляется команда ReserveNow; отказ станции
// возвращается как domain.ErrReservationRejected.
func (s *Service) CreateOrReserve(ctx context.Context, req domain.ReservationRequest) (*domain.Reservation, error) {
	if req.ID <= 0 || req.ChargingStationID == "" || req.ConnectorID <= 0 || req.IDTag == "" {
		return nil, fmt.Errorf("%w: id, station, connector and tag are required", ErrInvalidInput)
	}
	if req.Update {
		return s.update(ctx, req)
	}
	return s.create(ctx, req)
}

func (s *Service) create(ctx context.Context, req domain.ReservationRequest) (*domain.Reservation, error) {
	r := reservationFromRequest(req)

	switch r.Type {
	case domain.ReservationTypeReserveNow:
		r.Status = domain.ReservationStatusInProgress
	case domain.ReservationTypePlanned:
		r.Status = domain.ReservationStatusScheduled
	default:
		return nil, fmt.Errorf("%w: unknown reservation type %q", ErrInvalidInput, r.Type)
	}

	// Строка вставляется до команды станции: дубликат ID до станции не доходит,
	// а отказ станции откатывает вставку.
	var (
		created  *domain.Reservation
		reserved bool
	)
	err := s.txm.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.Create(ctx, r)
		if err != nil {
			return err
		}
		if created.Type != domain.ReservationTypeReserveNow {
			return nil
		}
		if err := s.reserveNow(ctx, created); err != nil {
			return err
		}
		reserved = true
		return nil
	})

	if err != nil {
		if reserved {
			s.releaseStation(ctx, r)
		}
		switch {
		case errors.Is(err, reservationRepo.ErrAlreadyExists):
			s.logger.Warn("CreateReservation: reservation id=%d already exists", r.ID)
			return nil, fmt.Errorf("%w: reservation id %d already exists", domain.ErrReservationRejected, r.ID)
		case errors.Is(err, domain.ErrReservationRejected), errors.Is(err, ErrInternal):
			return nil, err
		default:
			s.logger.Error("CreateReservation: failed to store reservation id=%d: %v", r.ID, err)
			return nil, fmt.Errorf("%w: failed to store reservation: %v", ErrInternal, err)
		}
	}

	s.publish(events.EventTypeReservationCreated, created)
	s.logger.Info("CreateReservation: reservation id=%d created, type=%s status=%s", created.ID, created.Type, created.Status)

	return s.decorate(ctx, created)
}

// reserveNow отправляет станции команду ReserveNow
func (s *Service) reserveNow(ctx context.Context, r *domain.Reservation) error {
	resp, err := s.central.ReserveNow(ctx, r.ChargingStationID, centralserver.ReserveNowArgs{
		ConnectorID:   r.ConnectorID,
		ExpiryDate:    r.ExpiryDate,
		IDTag:         r.IDTag,
		ParentIDTag:   r.ParentIDTag,
		ReservationID: r.ID,
	})
	if err != nil {
		s.logger.Error("CreateReservation: ReserveNow failed for station=%s: %v", r.ChargingStationID, err)
		return fmt.Errorf("%w: reserve now: %v", ErrInternal, err)
	}
	if !resp.IsAccepted() {
		s.logger.Warn("CreateReservation: station=%s rejected reservation=%d with status=%s",
			r.ChargingStationID, r.ID, resp.Status)
		return fmt.Errorf("%w: station responded %s", domain.ErrReservationRejected, resp.Status)
	}
	return nil
}

// releaseStation снимает со станции резервирование, которое не удалось сохранить
func (s *Service) releaseStation(ctx context.Context, r *domain.Reservation) {
	resp, err := s.central.CancelReservation(ctx, r.ChargingStationID, r.ID)
	if err != nil {
		s.logger.Error("CreateReservation: failed to release reservation=%d on station=%s: %v", r.ID, r.ChargingStationID, err)
		return
	}
	if !resp.IsAccepted() {
		s.logger.Error("CreateReservation: station=%s refused to release reservation=%d, status=%s",
			r.ChargingStationID, r.ID, resp.Status)
		return
	}
	s.logger.Warn("CreateReservation: reservation=%d released on station=%s after failed commit", r.ID, r.ChargingStationID)
}

func (s *Service) update(ctx context.Context, req domain.ReservationRequest) (*domain.Reservation, error) {
	var updated *domain.Reservation

	err := s.txm.Do(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if existing.Status != domain.ReservationStatusScheduled {
			return fmt.Errorf("%w: status %s", ErrCannotUpdate, existing.Status)
		}

		next := reservationFromRequest(req)
		next.Status = existing.Status
		next.CreatedAt = existing.CreatedAt
		if req.Type == "" {
			next.Type = existing.Type
		}
		if err := s.repo.Update(ctx, next); err != nil {
			return err
		}
		updated = next
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			s.logger.Warn("UpdateReservation: reservation id=%d not found", req.ID)
			return nil, domain.ErrReservationNotFound
		case errors.Is(err, ErrCannotUpdate):
			s.logger.Warn("UpdateReservation: reservation id=%d: %v", req.ID, err)
			return nil, fmt.Errorf("%w: %v", domain.ErrReservationRejected, err)
		default:
			s.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", req.ID, err)
			return nil, fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}
	}

	s.publish(events.EventTypeReservationUpdated, updated)
	s.logger.Info("UpdateReservation: reservation id=%d updated", updated.ID)

	return s.decorate(ctx, updated)
}

// Get получает резервирование с флагами действий для текущего оператора
func (s *Service) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		s.logger.Error("GetReservation: failed to get reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}
	return s.decorate(ctx, r)
}

// Cancel отменяет активное резервирование. Если резервирование уже отправлено
// станции, ей отправляется CancelReservation.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.Status.IsActive() {
		s.logger.Warn("CancelReservation: reservation id=%d has status=%s", id, r.Status)
		return nil, fmt.Errorf("%w: status %s", ErrCannotCancel, r.Status)
	}

	station, err := s.central.GetChargingStation(ctx, r.ChargingStationID)
	if err != nil {
		if errors.Is(err, domain.ErrChargingStationNotFound) {
			return nil, err
		}
		s.logger.Error("CancelReservation: failed to get station=%s: %v", r.ChargingStationID, err)
		return nil, fmt.Errorf("%w: failed to get charging station: %v", ErrInternal, err)
	}
	connector, ok := station.Connector(r.ConnectorID)
	if !ok {
		return nil, fmt.Errorf("%w: connector %d not found", ErrCannotCancel, r.ConnectorID)
	}
	if err := s.gate.CheckCancelReservation(station, connector); err != nil {
		s.logger.Warn("CancelReservation: reservation id=%d blocked: %v", id, err)
		return nil, err
	}

	// Статус меняется в той же транзакции, что и команда станции:
	// отказ станции откатывает изменение.
	err = s.txm.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStatus(ctx, id, domain.ReservationStatusCancelled); err != nil {
			s.logger.Error("CancelReservation: failed to update status of reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}
		if r.Status != domain.ReservationStatusInProgress {
			return nil
		}
		resp, err := s.central.CancelReservation(ctx, r.ChargingStationID, r.ID)
		if err != nil {
			s.logger.Error("CancelReservation: command failed for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: cancel reservation: %v", ErrInternal, err)
		}
		if !resp.IsAccepted() {
			s.logger.Warn("CancelReservation: station=%s rejected cancel of reservation=%d", r.ChargingStationID, id)
			return fmt.Errorf("%w: station responded %s", domain.ErrReservationRejected, resp.Status)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) || errors.Is(err, domain.ErrReservationRejected) {
			return nil, err
		}
		s.logger.Error("CancelReservation: failed to commit cancel of reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
	}
	r.Status = domain.ReservationStatusCancelled

	s.publish(events.EventTypeReservationCancelled, r)
	s.logger.Info("CancelReservation: reservation id=%d cancelled", id)

	return s.decorate(ctx, r)
}

// Delete удаляет резервирование
func (s *Service) Delete(ctx context.Context, id int64) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return domain.ErrReservationNotFound
		}
		return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return domain.ErrReservationNotFound
		}
		s.logger.Error("DeleteReservation: failed to delete reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to delete reservation: %v", ErrInternal, err)
	}

	s.publish(events.EventTypeReservationDeleted, r)
	s.logger.Info("DeleteReservation: reservation id=%d deleted", id)
	return nil
}

// List возвращает страницу резервирований с разрешёнными действиями по строкам
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReservationList, error) {
	auth, err := s.Authorizations(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	page, err := s.repo.List(ctx, req.Filter, req.Paging, req.Sorting)
	if err != nil {
		s.logger.Error("ListReservations: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	statuses := s.connectorStatuses(ctx, page.Result)

	list := &models.ReservationList{
		Count:          page.Count,
		Rows:           make([]models.ReservationRow, 0, len(page.Result)),
		Toolbar:        s.gate.ToolbarActions(auth),
		Authorizations: auth,
	}
	for _, r := range page.Result {
		applyRowFlags(r, auth)
		list.Rows = append(list.Rows, models.ReservationRow{
			Reservation: r,
			Actions:     s.gate.RowActions(r, statuses[connectorKey{r.ChargingStationID, r.ConnectorID}]),
		})
	}

	s.logger.Info("ListReservations: user=%s, returned %d of %d", req.UserID, len(list.Rows), list.Count)
	return list, nil
}

// Authorizations права пользователя на список резервирований
func (s *Service) Authorizations(ctx context.Context, userID string) (domain.ReservationsAuthorizations, error) {
	if userID == "" {
		return domain.DefaultReservationsAuthorizations(), nil
	}
	auth, err := s.central.GetReservationsAuthorizations(ctx, userID)
	if err != nil {
		s.logger.Error("Authorizations: failed to get authorizations for user=%s: %v", userID, err)
		return domain.ReservationsAuthorizations{}, fmt.Errorf("%w: failed to get authorizations: %v", ErrInternal, err)
	}
	return auth, nil
}

// FetchUserSessionContext получает факты о пользователе на коннекторе
func (s *Service) FetchUserSessionContext(ctx context.Context, userID, stationID string, connectorID int) (*domain.EligibilityFacts, error) {
	return s.central.FetchUserSessionContext(ctx, userID, stationID, connectorID)
}

// GetChargingStation получает состояние зарядной станции
func (s *Service) GetChargingStation(ctx context.Context, stationID string) (*domain.ChargingStation, error) {
	return s.central.GetChargingStation(ctx, stationID)
}

type connectorKey struct {
	stationID   string
	connectorID int
}

// connectorStatuses получает статусы коннекторов, по одному запросу на станцию.
// Недоступные станции пропускаются: действие Cancel в этом случае не скрывается.
func (s *Service) connectorStatuses(ctx context.Context, rows []*domain.Reservation) map[connectorKey]domain.ConnectorStatus {
	statuses := make(map[connectorKey]domain.ConnectorStatus)
	fetched := make(map[string]bool)

	for _, r := range rows {
		if fetched[r.ChargingStationID] {
			continue
		}
		fetched[r.ChargingStationID] = true

		station, err := s.central.GetChargingStation(ctx, r.ChargingStationID)
		if err != nil {
			s.logger.Warn("ListReservations: station=%s state unavailable: %v", r.ChargingStationID, err)
			continue
		}
		for _, c := range station.Connectors {
			statuses[connectorKey{station.ID, c.ConnectorID}] = c.Status
		}
	}
	return statuses
}

// decorate выставляет флаги строки по правам оператора из контекста
func (s *Service) decorate(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	userID, _ := domain.OperatorFromContext(ctx)
	auth, err := s.Authorizations(ctx, userID)
	if err != nil {
		return nil, err
	}
	applyRowFlags(r, auth)
	return r, nil
}

func (s *Service) publish(eventType string, r *domain.Reservation) {
	if err := s.events.Publish(eventType, r); err != nil {
		s.logger.Error("Failed to publish %s for reservation id=%d: %v", eventType, r.ID, err)
	}
}

// applyRowFlags вычисляет CanUpdate/CanCancel/CanDelete строки
func applyRowFlags(r *domain.Reservation, auth domain.ReservationsAuthorizations) {
	r.CanUpdate = auth.CanUpdate && r.Status == domain.ReservationStatusScheduled
	r.CanCancel = r.Status.IsActive()
	r.CanDelete = auth.CanDelete
}

func reservationFromRequest(req domain.ReservationRequest) *domain.Reservation {
	r := &domain.Reservation{
		ID:                req.ID,
		ChargingStationID: req.ChargingStationID,
		ConnectorID:       req.ConnectorID,
		ExpiryDate:        req.ExpiryDate,
		FromDate:          req.FromDate,
		ToDate:            req.ToDate,
		IDTag:             req.IDTag,
		ParentIDTag:       req.ParentIDTag,
		UserID:            req.UserID,
		Type:              req.Type,
	}
	if r.Type == "" {
		r.Type = domain.ReservationTypeReserveNow
		if r.FromDate != nil {
			r.Type = domain.ReservationTypePlanned
		}
	}
	return r
}
