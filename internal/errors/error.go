package errors

import "github.com/pkg/errors"

var (
	// common errors
	ErrTenantMissing     = errors.New("tenant is missing")
	ErrConnectionTimeout = errors.New("connection timeout")

	// domain errors
	ErrDomainNotFound     = errors.New("domain not found")
	ErrDomainNotAvailable = errors.New("domain is not available")
	ErrDomainPremium      = errors.New("domain is a premium name")
	ErrPriceLimitExceeded = errors.New("domain price exceeds the configured limit")
	ErrTldNotSupported    = errors.New("domain TLD not supported")
)
