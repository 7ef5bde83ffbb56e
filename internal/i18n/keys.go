package i18n

import "github.com/guttosm/quote-service/internal/domain/model"

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates a body that could not be decoded.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	ErrKeyInvalidAPIKey  = "error.invalid_api_key"
	ErrKeyForbidden      = "error.forbidden"
	ErrKeyNotFound       = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	ErrKeyConflict          = "error.conflict"
	ErrKeyTimeout           = "error.timeout"
	// ErrKeyServiceUnavailable covers a missing store or an open circuit.
	ErrKeyServiceUnavailable = "error.service_unavailable"

	ErrKeyShareNotFound         = "error.share.not_found"
	ErrKeyShareExpired          = "error.share.expired"
	ErrKeySharePasswordRequired = "error.share.password_required"
	ErrKeyInvalidSharePassword  = "error.share.invalid_password"
	ErrKeyInvalidShareToken     = "error.share.invalid_token"
	ErrKeyInvalidShareExpiry    = "error.share.invalid_expiry"
	ErrKeyInvalidCostModel      = "error.cost_model.invalid"
)

// Success message translation keys.
const (
	SuccessKeyCacheCleared = "success.cache_cleared"
)

// KindKey returns the translation key of a pricing error kind.
func KindKey(kind model.ErrorKind) string {
	return "error.kind." + string(kind)
}
