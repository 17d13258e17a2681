package reservation_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Manager открывает сессии формы резервирования и выдаёт их по ID
type Manager struct {
	registry     *Registry
	resolver     EligibilityResolver
	gateway      ReservationGateway
	stations     ChargingStationProvider
	gate         ReserveNowGate
	ids          IDGenerator
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
	expiryDelay  time.Duration
}

// NewManager создает новый экземпляр менеджера сессий
func NewManager(
	registry *Registry,
	resolver EligibilityResolver,
	gateway ReservationGateway,
	stations ChargingStationProvider,
	gate ReserveNowGate,
	ids IDGenerator,
	timeProvider TimeProvider,
	metrics MetricsRecorder,
	logger Logger,
	expiryDelay time.Duration,
) *Manager {
	if expiryDelay <= 0 {
		expiryDelay = domain.DefaultExpiryDelay
	}
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Manager{
		registry:     registry,
		resolver:     resolver,
		gateway:      gateway,
		stations:     stations,
		gate:         gate,
		ids:          ids,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
		expiryDelay:  expiryDelay,
	}
}

// Open открывает сессию.
// С ReservationID черновик строится из существующего резервирования (редактирование
// или просмотр), иначе создается черновик reserve-now для коннектора станции со
// сроком действия по умолчанию и предварительным ID резервирования.
func (m *Manager) Open(ctx context.Context, req *OpenRequest) (Snapshot, error) {
	if err := validateOpenRequest(req); err != nil {
		m.logger.Warn("OpenSession: validation failed: %v", err)
		return Snapshot{}, err
	}

	var (
		draft    domain.Draft
		readOnly = req.ReadOnly
	)

	if req.ReservationID != nil {
		reservation, err := m.gateway.Get(ctx, *req.ReservationID)
		if err != nil {
			if errors.Is(err, domain.ErrReservationNotFound) {
				m.logger.Warn("OpenSession: reservation id=%d not found", *req.ReservationID)
				return Snapshot{}, err
			}
			m.logger.Error("OpenSession: failed to get reservation id=%d: %v", *req.ReservationID, err)
			return Snapshot{}, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}
		draft = domain.DraftFromReservation(reservation)
		if !reservation.CanUpdate {
			readOnly = true
		}
	} else {
		station, err := m.stations.GetChargingStation(ctx, req.ChargingStationID)
		if err != nil {
			if errors.Is(err, domain.ErrChargingStationNotFound) {
				m.logger.Warn("OpenSession: charging station id=%s not found", req.ChargingStationID)
				return Snapshot{}, err
			}
			m.logger.Error("OpenSession: failed to get charging station id=%s: %v", req.ChargingStationID, err)
			return Snapshot{}, fmt.Errorf("%w: failed to get charging station: %v", ErrInternal, err)
		}

		connector, ok := station.Connector(req.ConnectorID)
		if !ok {
			m.logger.Warn("OpenSession: connector=%d not found on station=%s", req.ConnectorID, station.ID)
			return Snapshot{}, ErrConnectorNotFound
		}

		if err := m.gate.CheckReserveNow(station, connector); err != nil {
			m.logger.Warn("OpenSession: reserve now blocked on station=%s connector=%d: %v",
				station.ID, connector.ConnectorID, err)
			return Snapshot{}, err
		}

		draft = domain.NewReserveNowDraft(
			station.ID,
			connector.ConnectorID,
			m.timeProvider.Now().Add(m.expiryDelay),
			m.ids.NewReservationID(),
		)
		if req.User != nil {
			draft = draft.WithUser(*req.User)
		}
	}

	session := NewSession(m.ids.NewSessionID(), draft, readOnly, Dependencies{
		Resolver:     m.resolver,
		Gateway:      m.gateway,
		TimeProvider: m.timeProvider,
		Metrics:      m.metrics,
		Logger:       m.logger,
	})
	m.registry.Add(session)

	m.logger.Info("OpenSession: session=%s opened for station=%s connector=%d readOnly=%t",
		session.ID(), draft.ChargingStationID, draft.ConnectorID, readOnly)

	return session.Load(ctx)
}

// Session возвращает открытую сессию по ID
func (m *Manager) Session(id string) (*Session, error) {
	return m.registry.Get(id)
}

// Close закрывает сессию и удаляет её из реестра
func (m *Manager) Close(id string) (Snapshot, error) {
	session, err := m.registry.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	snap := session.Close()
	m.registry.Remove(id)
	return snap, nil
}

func validateOpenRequest(req *OpenRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if req.ReservationID != nil {
		if *req.ReservationID <= 0 {
			return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
		}
		return nil
	}
	if req.ChargingStationID == "" {
		return fmt.Errorf("%w: chargingStationID is required", ErrInvalidInput)
	}
	if req.ConnectorID <= 0 {
		return fmt.Errorf("%w: connectorID must be positive", ErrInvalidInput)
	}
	return nil
}

// Snapshot возвращает снимок сессии
func (m *Manager) Snapshot(id string) (Snapshot, error) {
	session, err := m.registry.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return session.Snapshot(), nil
}

// AssignUser выбирает пользователя в сессии
func (m *Manager) AssignUser(ctx context.Context, id string, user domain.User) (Snapshot, error) {
	session, err := m.registry.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return session.AssignUser(ctx, user)
}

// AssignTag выбирает бейдж в сессии
func (m *Manager) AssignTag(id string, tag domain.Tag) (Snapshot, error) {
	session, err := m.registry.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return session.AssignTag(tag)
}

// SetSchedule меняет даты в сессии
func (m *Manager) SetSchedule(id string, schedule domain.Schedule) (Snapshot, error) {
	session, err := m.registry.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return session.SetSchedule(schedule)
}

// Submit отправляет резервирование сессии
func (m *Manager) Submit(ctx context.Context, id string) (Snapshot, error) {
	session, err := m.registry.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return session.Submit(ctx)
}

// Cancel отменяет форму. Закрытая сессия остаётся в реестре до вытеснения,
// чтобы клиент мог получить итоговый снимок.
func (m *Manager) Cancel(id string) (Snapshot, error) {
	session, err := m.registry.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return session.Cancel()
}
