package domain

import "errors"

var (
	ErrBusy              = errors.New("operation already in flight")
	ErrQuotaExceeded     = errors.New("quota exhausted")
	ErrPremiumRequired   = errors.New("objective requires upgrade")
	ErrNoLook            = errors.New("no generated look")
	ErrNotAnalyzed       = errors.New("profile not analyzed")
	ErrInvalidTransition = errors.New("invalid view transition")
	ErrUnknownObjective  = errors.New("unknown objective")
	ErrUnknownPlan       = errors.New("unknown plan")
	ErrProviderFailure   = errors.New("provider failure")
)
