package validate_reservation

// Reason машиночитаемая причина отказа
type Reason string

const (
	ReasonNone                    Reason = ""
	ReasonNoPaymentMethod         Reason = "no_payment_method"
	ReasonGeneralEligibilityError Reason = "general_eligibility_error"
	ReasonMissingTag              Reason = "missing_tag"
	ReasonInactiveTag             Reason = "inactive_tag"
	ReasonAmbiguousType           Reason = "ambiguous_type"
	ReasonInvalidExpiry           Reason = "invalid_expiry"
	ReasonInvalidDateRange        Reason = "invalid_date_range"
)

// Category группа причины: блокировка со стороны backend'а или ошибка формы
type Category string

const (
	CategoryNone               Category = ""
	CategoryEligibilityBlocked Category = "eligibility_blocked"
	CategoryValidationFailed   Category = "validation_failed"
)

// Category возвращает группу причины
func (r Reason) Category() Category {
	switch r {
	case ReasonNoPaymentMethod, ReasonGeneralEligibilityError:
		return CategoryEligibilityBlocked
	case ReasonMissingTag, ReasonInactiveTag, ReasonAmbiguousType, ReasonInvalidExpiry, ReasonInvalidDateRange:
		return CategoryValidationFailed
	}
	return CategoryNone
}

// Verdict решение валидатора
type Verdict struct {
	Valid  bool
	Reason Reason
}

func valid() Verdict {
	return Verdict{Valid: true}
}

func invalid(reason Reason) Verdict {
	return Verdict{Valid: false, Reason: reason}
}
