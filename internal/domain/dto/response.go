package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
)

const (
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeInternal           = "internal_error"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeForbidden          = "forbidden"
	ErrCodeNotFound           = "not_found"
	ErrCodeRateLimit          = "rate_limit_exceeded"
	ErrCodeConflict           = "conflict"
	ErrCodeTimeout            = "timeout"
	ErrCodeGone               = "gone"
	ErrCodeUnprocessable      = "unprocessable_entity"
	ErrCodeServiceUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
//
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2026-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the error envelope of every endpoint. Kind and Issues are
// set for pricing and validation errors.
//
// @Description Standardized error response
type ErrorResponse struct {
	Error     string            `json:"error" example:"invalid_request"`
	Message   string            `json:"message,omitempty" example:"widthMm 700 exceeds 600 for flat_3_side"`
	Kind      model.ErrorKind   `json:"kind,omitempty" example:"SizeViolation"`
	Issues    []model.Issue     `json:"issues,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithQuoteError attaches the kind and issues of a pricing error.
func (e ErrorResponse) WithQuoteError(qe *model.QuoteError) ErrorResponse {
	if qe == nil {
		return e
	}
	e.Kind = qe.Kind
	e.Issues = qe.Issues
	return e
}

// ErrCodeFromStatus returns the error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusGone:
		return ErrCodeGone
	case http.StatusUnprocessableEntity:
		return ErrCodeUnprocessable
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusServiceUnavailable:
		return ErrCodeServiceUnavailable
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeInternal
	}
}

// StatusForKind maps a pricing error kind to its HTTP status.
func StatusForKind(kind model.ErrorKind) int {
	switch kind.Sentinel() {
	case model.ErrMinimumQuantityNotMet:
		return http.StatusUnprocessableEntity
	case model.ErrUnknownType:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// ValidateResponse lists every issue found for a design.
//
// @Description Validation outcome
type ValidateResponse struct {
	Valid    bool          `json:"valid" example:"false"`
	Profile  string        `json:"profile" example:"single"`
	Errors   []model.Issue `json:"errors"`
	Warnings []model.Issue `json:"warnings"`
} // @name ValidateResponse

// NewValidateResponse splits issues into errors and warnings.
func NewValidateResponse(profile string, issues model.Issues) ValidateResponse {
	errs, warns := issues.Errors(), issues.Warnings()
	if errs == nil {
		errs = model.Issues{}
	}
	if warns == nil {
		warns = model.Issues{}
	}
	return ValidateResponse{
		Valid:    len(errs) == 0,
		Profile:  profile,
		Errors:   errs,
		Warnings: warns,
	}
}

// CreateShareResponse is returned after sharing a comparison.
//
// @Description Created share link
type CreateShareResponse struct {
	ID        string    `json:"id" example:"0b6f3c52-8f0e-4c1a-9a57-3c1f7f1d2a10"`
	Path      string    `json:"path" example:"/api/v1/shares/0b6f3c52-8f0e-4c1a-9a57-3c1f7f1d2a10"`
	Protected bool      `json:"protected"`
	ExpiresAt time.Time `json:"expiresAt"`
} // @name CreateShareResponse

// ShareResponse is a shared comparison as seen by its recipients.
//
// @Description Shared comparison
type ShareResponse struct {
	ID         string             `json:"id"`
	Title      string             `json:"title,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	ExpiresAt  time.Time          `json:"expiresAt"`
	Views      int64              `json:"views"`
	Comparison ComparisonResponse `json:"comparison"`
} // @name ShareResponse

// NewShareResponse renders a share.
func NewShareResponse(s *model.ComparisonShare, taxRate float64) ShareResponse {
	return ShareResponse{
		ID:         s.ID,
		Title:      s.Title,
		CreatedAt:  s.CreatedAt,
		ExpiresAt:  s.ExpiresAt,
		Views:      s.Views,
		Comparison: NewComparisonResponse(s.Comparison, taxRate),
	}
}

// UnlockShareResponse carries the share access token.
//
// @Description Share access token, sent back in X-Share-Token
type UnlockShareResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
} // @name UnlockShareResponse

// CostModelResponse is the cost model the service prices with.
//
// @Description Active cost model and where it came from
type CostModelResponse struct {
	Source  string           `json:"source" example:"database" enums:"file,database,defaults"`
	Version int              `json:"version,omitempty" example:"3"`
	Model   *model.CostModel `json:"model"`
} // @name CostModelResponse
