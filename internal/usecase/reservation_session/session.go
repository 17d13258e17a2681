package reservation_session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/resolve_eligibility"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/validate_reservation"
)

// Dependencies зависимости сессии
type Dependencies struct {
	Resolver     EligibilityResolver
	Gateway      ReservationGateway
	TimeProvider TimeProvider
	Metrics      MetricsRecorder // опционально
	Logger       Logger
}

// Session машина состояний над одним черновиком резервирования:
// Idle -> Loading -> Ready -> Submitting -> Closed(Saved|Cancelled).
//
// Черновик меняется только методами сессии. Сетевые вызовы выполняются без
// блокировки; результат применяется, только если номер запроса всё ещё последний
// и сессия не закрыта.
type Session struct {
	mu sync.Mutex

	id          string
	readOnly    bool
	state       State
	outcome     Outcome
	draft       domain.Draft
	facts       *domain.EligibilityFacts
	verdict     validate_reservation.Verdict
	failure     FailureKind
	message     string
	request     *domain.ReservationRequest
	reservation *domain.Reservation

	seq          uint64 // номер последнего выданного запроса резолвера
	lastActivity time.Time

	// lifetime отменяется при закрытии, прерывая запросы в полёте
	lifetime context.Context
	stop     context.CancelFunc

	resolver     EligibilityResolver
	gateway      ReservationGateway
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
}

// NewSession создает сессию в состоянии Idle
func NewSession(id string, draft domain.Draft, readOnly bool, deps Dependencies) *Session {
	if deps.TimeProvider == nil {
		deps.TimeProvider = &RealTimeProvider{}
	}
	lifetime, stop := context.WithCancel(context.Background())

	return &Session{
		id:           id,
		readOnly:     readOnly,
		state:        StateIdle,
		draft:        draft,
		lastActivity: deps.TimeProvider.Now(),
		lifetime:     lifetime,
		stop:         stop,
		resolver:     deps.Resolver,
		gateway:      deps.Gateway,
		timeProvider: deps.TimeProvider,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
	}
}

// ID возвращает идентификатор сессии
func (s *Session) ID() string {
	return s.id
}

// Snapshot возвращает копию текущего состояния
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// LastActivity время последнего обращения к сессии
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Load выполняет первичное определение фактов для предвыбранного пользователя.
// Уже выбранный бейдж (например, из существующего резервирования) сохраняется.
func (s *Session) Load(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	switch s.state {
	case StateClosed:
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, ErrSessionClosed
	case StateSubmitting:
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, ErrSubmitInProgress
	}
	s.touchLocked()

	if s.draft.UserID == "" {
		s.enterReadyLocked()
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}

	seq := s.beginResolutionLocked()
	draft := s.draft
	s.mu.Unlock()

	return s.resolve(ctx, seq, draft)
}

// AssignUser выбирает пользователя. Бейдж сбрасывается, затем запрашиваются
// факты о пользователе и выполняется валидация.
func (s *Session) AssignUser(ctx context.Context, user domain.User) (Snapshot, error) {
	if user.ID == "" {
		return s.Snapshot(), fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	if err := s.checkMutableLocked(); err != nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, err
	}
	s.touchLocked()
	s.draft = s.draft.WithUser(user)
	s.facts = nil
	seq := s.beginResolutionLocked()
	draft := s.draft
	s.mu.Unlock()

	s.logger.Info("Session %s: user=%s assigned, resolving seq=%d", s.id, user.ID, seq)
	return s.resolve(ctx, seq, draft)
}

// AssignTag выбирает бейдж напрямую. Резолвер не вызывается, только валидация.
func (s *Session) AssignTag(tag domain.Tag) (Snapshot, error) {
	if tag.ID == "" {
		return s.Snapshot(), fmt.Errorf("%w: tag id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkMutableLocked(); err != nil {
		return s.snapshotLocked(), err
	}
	s.touchLocked()
	s.draft = s.draft.WithTag(tag)
	s.revalidateLocked()

	s.logger.Info("Session %s: tag=%s assigned, valid=%t", s.id, tag.ID, s.verdict.Valid)
	return s.snapshotLocked(), nil
}

// SetSchedule меняет срок действия или окно резервирования
func (s *Session) SetSchedule(schedule domain.Schedule) (Snapshot, error) {
	if schedule.Type != "" && !schedule.Type.IsValid() {
		return s.Snapshot(), fmt.Errorf("%w: unknown reservation type %q", ErrInvalidInput, schedule.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkMutableLocked(); err != nil {
		return s.snapshotLocked(), err
	}
	s.touchLocked()
	s.draft = s.draft.WithSchedule(schedule)
	s.revalidateLocked()

	return s.snapshotLocked(), nil
}

// Submit отправляет резервирование. Разрешено только из Ready с валидным черновиком.
// Отказ backend'а или сетевая ошибка возвращают сессию в Ready с ошибкой в снимке.
func (s *Session) Submit(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	if err := s.checkMutableLocked(); err != nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, err
	}
	if s.state != StateReady {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, snap.State)
	}
	s.touchLocked()

	// Даты проверяются относительно момента отправки
	s.verdict = validate_reservation.Validate(s.draft, s.facts, s.timeProvider.Now())
	if !s.verdict.Valid {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.logger.Warn("Session %s: submit refused, reason=%s", s.id, snap.Verdict.Reason)
		return snap, ErrNotValid
	}

	req := s.draft.ToRequest()
	s.failure = FailureNone
	s.message = ""
	s.setStateLocked(StateSubmitting)
	s.mu.Unlock()

	s.logger.Info("Session %s: submitting reservation id=%d station=%s connector=%d update=%t",
		s.id, req.ID, req.ChargingStationID, req.ConnectorID, req.Update)

	callCtx, cancel := s.callContext(ctx)
	defer cancel()
	reservation, err := s.gateway.CreateOrReserve(callCtx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSubmitting {
		s.logger.Warn("Session %s: discarding submit response, state=%s", s.id, s.state)
		return s.snapshotLocked(), ErrStaleResponse
	}
	s.touchLocked()

	if err != nil {
		if errors.Is(err, domain.ErrReservationRejected) {
			s.failure = FailureSubmitRejected
			s.logger.Warn("Session %s: reservation rejected: %v", s.id, err)
		} else {
			s.failure = FailureTransport
			s.logger.Error("Session %s: submit failed: %v", s.id, err)
		}
		s.message = err.Error()
		s.setStateLocked(StateReady)
		return s.snapshotLocked(), nil
	}

	s.request = &req
	s.reservation = reservation
	s.closeLocked(OutcomeSaved)

	s.logger.Info("Session %s: reservation id=%d saved", s.id, req.ID)
	return s.snapshotLocked(), nil
}

// Cancel отменяет форму. Недоступно во время отправки.
func (s *Session) Cancel() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateClosed:
		return s.snapshotLocked(), ErrSessionClosed
	case StateSubmitting:
		return s.snapshotLocked(), ErrSubmitInProgress
	}
	s.touchLocked()
	s.closeLocked(OutcomeCancelled)

	s.logger.Info("Session %s: cancelled", s.id)
	return s.snapshotLocked(), nil
}

// Close закрывает сессию немедленно из любого состояния (закрытие диалога).
// Ответы, пришедшие после закрытия, отбрасываются.
func (s *Session) Close() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateClosed {
		s.closeLocked(OutcomeCancelled)
		s.logger.Info("Session %s: closed", s.id)
	}
	return s.snapshotLocked()
}

func (s *Session) resolve(ctx context.Context, seq uint64, draft domain.Draft) (Snapshot, error) {
	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	facts, err := s.resolver.Execute(callCtx, &resolve_eligibility.Request{
		UserID:            draft.UserID,
		ChargingStationID: draft.ChargingStationID,
		ConnectorID:       draft.ConnectorID,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed || seq != s.seq {
		s.logger.Warn("Session %s: discarding stale resolution seq=%d (latest=%d, state=%s)",
			s.id, seq, s.seq, s.state)
		return s.snapshotLocked(), ErrStaleResponse
	}
	s.touchLocked()

	if err != nil {
		s.facts = nil
		s.failure = FailureResolutionFailed
		s.message = err.Error()
		s.enterReadyLocked()
		return s.snapshotLocked(), nil
	}

	s.facts = facts
	if facts != nil && facts.ActiveTag != nil && !s.draft.HasTag() {
		s.draft = s.draft.WithTag(*facts.ActiveTag)
	}
	s.enterReadyLocked()

	return s.snapshotLocked(), nil
}

// callContext контекст вызова, который отменяется также при закрытии сессии
func (s *Session) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	callCtx, cancel := context.WithCancel(ctx)
	stopAfter := context.AfterFunc(s.lifetime, cancel)
	return callCtx, func() {
		stopAfter()
		cancel()
	}
}

func (s *Session) checkMutableLocked() error {
	switch {
	case s.state == StateClosed:
		return ErrSessionClosed
	case s.readOnly:
		return ErrReadOnly
	case s.state == StateSubmitting:
		return ErrSubmitInProgress
	}
	return nil
}

func (s *Session) beginResolutionLocked() uint64 {
	s.seq++
	s.failure = FailureNone
	s.message = ""
	s.setStateLocked(StateLoading)
	return s.seq
}

// revalidateLocked пересчитывает вердикт. Во время Loading сессия остаётся в
// Loading: отправка без свежих фактов о пользователе невозможна.
func (s *Session) revalidateLocked() {
	if s.state == StateLoading {
		s.verdict = validate_reservation.Validate(s.draft, s.facts, s.timeProvider.Now())
		return
	}
	s.enterReadyLocked()
}

func (s *Session) enterReadyLocked() {
	s.verdict = validate_reservation.Validate(s.draft, s.facts, s.timeProvider.Now())
	s.setStateLocked(StateReady)
	if s.metrics != nil {
		reason := string(s.verdict.Reason)
		if s.verdict.Valid {
			reason = "valid"
		}
		s.metrics.RecordVerdict(reason)
	}
}

func (s *Session) closeLocked(outcome Outcome) {
	s.outcome = outcome
	s.setStateLocked(StateClosed)
	s.stop()
}

func (s *Session) setStateLocked(state State) {
	s.state = state
	if s.metrics != nil {
		s.metrics.RecordSessionTransition(state.String())
	}
}

func (s *Session) touchLocked() {
	s.lastActivity = s.timeProvider.Now()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:          s.id,
		State:       s.state,
		Outcome:     s.outcome,
		ReadOnly:    s.readOnly,
		Draft:       s.draft.Clone(),
		Facts:       s.facts.Clone(),
		Verdict:     s.verdict,
		Failure:     s.failure,
		Message:     s.message,
		Reservation: s.reservation.Clone(),
	}
	if s.request != nil {
		req := s.request.Clone()
		snap.Request = &req
	}
	return snap
}
