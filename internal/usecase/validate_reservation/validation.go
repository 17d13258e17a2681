package validate_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Validate проверяет черновик против фактов о пользователе.
// Правила проверяются по порядку, срабатывает первое:
//  1. коды ошибок от backend'а (про пользователя/аккаунт)
//  2. бейдж не выбран
//  3. выбранный бейдж неактивен
//  4. даты (срок действия для обоих видов, для planned ещё окно from/to)
//
// Ошибки backend'а идут первыми: смена бейджа не снимет блокировку по биллингу.
// Функция чистая, now передаётся явно.
func Validate(draft domain.Draft, facts *domain.EligibilityFacts, now time.Time) Verdict {
	if facts.HasErrors() {
		return invalid(mapErrorCode(facts.FirstErrorCode()))
	}

	if !draft.HasTag() {
		return invalid(ReasonMissingTag)
	}

	if draft.Tag != nil && !draft.Tag.Active {
		return invalid(ReasonInactiveTag)
	}

	if reason := validateSchedule(draft, now); reason != ReasonNone {
		return invalid(reason)
	}

	return valid()
}

// mapErrorCode переводит код backend'а в причину отказа
func mapErrorCode(code domain.ErrorCode) Reason {
	if code == domain.ErrorCodeBillingNoPaymentMethod {
		return ReasonNoPaymentMethod
	}
	return ReasonGeneralEligibilityError
}

// validateSchedule проверяет даты в зависимости от вида черновика
func validateSchedule(draft domain.Draft, now time.Time) Reason {
	kind := draft.Kind()

	// Объявленный тип не должен противоречить датам
	switch draft.Type {
	case domain.ReservationTypeReserveNow:
		if kind != domain.DraftKindReserveNow {
			return ReasonAmbiguousType
		}
	case domain.ReservationTypePlanned:
		if kind != domain.DraftKindPlanned {
			return ReasonAmbiguousType
		}
	}

	if !isStrictlyFuture(draft.ExpiryDate, now) {
		return ReasonInvalidExpiry
	}
	if kind == domain.DraftKindReserveNow {
		return ReasonNone
	}

	if draft.ToDate == nil || !isStrictlyFuture(*draft.ToDate, now) {
		return ReasonInvalidExpiry
	}
	if !draft.FromDate.Before(*draft.ToDate) {
		return ReasonInvalidDateRange
	}
	return ReasonNone
}

func isStrictlyFuture(t, now time.Time) bool {
	return !t.IsZero() && t.After(now)
}
