package domain

// ErrorCode код, по которому backend запрещает пользователю начать сессию
type ErrorCode string

const (
	ErrorCodeBillingNoPaymentMethod      ErrorCode = "BILLING_NO_PAYMENT_METHOD"
	ErrorCodeBillingNoTax                ErrorCode = "BILLING_NO_TAX"
	ErrorCodeBillingNoSettings           ErrorCode = "BILLING_NO_SETTINGS"
	ErrorCodeBillingInconsistentSettings ErrorCode = "BILLING_INCONSISTENT_SETTINGS"
)

// EligibilityFacts результат запроса контекста сессии пользователя.
// Не сохраняется, запрашивается заново при каждой смене пользователя или коннектора.
type EligibilityFacts struct {
	ActiveTag  *Tag
	ErrorCodes []ErrorCode
}

// HasErrors returns true if the backend reported at least one blocking code
func (f *EligibilityFacts) HasErrors() bool {
	return f != nil && len(f.ErrorCodes) > 0
}

// FirstErrorCode возвращает первый код ошибки или пустую строку
func (f *EligibilityFacts) FirstErrorCode() ErrorCode {
	if !f.HasErrors() {
		return ""
	}
	return f.ErrorCodes[0]
}

// Clone возвращает независимую копию фактов
func (f *EligibilityFacts) Clone() *EligibilityFacts {
	if f == nil {
		return nil
	}
	c := &EligibilityFacts{ErrorCodes: append([]ErrorCode(nil), f.ErrorCodes...)}
	if f.ActiveTag != nil {
		t := *f.ActiveTag
		c.ActiveTag = &t
	}
	return c
}
