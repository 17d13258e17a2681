package resolve_eligibility

import "errors"

var (
	// ErrResolutionFailed возвращается при сетевой ошибке или ошибке backend'а
	ErrResolutionFailed = errors.New("resolve_eligibility: resolution failed")
)
