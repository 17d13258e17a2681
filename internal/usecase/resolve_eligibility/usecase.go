package resolve_eligibility

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UseCase определяет активный бейдж пользователя и коды, блокирующие резервирование
type UseCase struct {
	client SessionContextClient
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client SessionContextClient, logger Logger) *UseCase {
	return &UseCase{
		client: client,
		logger: logger,
	}
}

// Execute запрашивает контекст сессии пользователя на коннекторе.
// Без userID сетевой вызов не выполняется и возвращается nil.
// Состояние не изменяется, вызов можно повторять.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.EligibilityFacts, error) {
	if req == nil || req.UserID == "" {
		return nil, nil
	}

	uc.logger.Info("ResolveEligibility: user=%s, station=%s, connector=%d",
		req.UserID, req.ChargingStationID, req.ConnectorID)

	facts, err := uc.client.FetchUserSessionContext(ctx, req.UserID, req.ChargingStationID, req.ConnectorID)
	if err != nil {
		uc.logger.Error("ResolveEligibility: failed to fetch session context for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrResolutionFailed, err)
	}

	result := &domain.EligibilityFacts{}
	if facts != nil {
		if facts.ActiveTag != nil {
			tag := *facts.ActiveTag
			result.ActiveTag = &tag
		}
		result.ErrorCodes = append([]domain.ErrorCode(nil), facts.ErrorCodes...)
	}

	if result.HasErrors() {
		uc.logger.Warn("ResolveEligibility: user=%s blocked, codes=%v", req.UserID, result.ErrorCodes)
	} else {
		uc.logger.Info("ResolveEligibility: user=%s eligible, activeTag=%t", req.UserID, result.ActiveTag != nil)
	}

	return result, nil
}
