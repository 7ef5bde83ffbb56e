package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quote-service/internal/circuitbreaker"
	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/service"
)

var (
	successResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.SuccessResponse{}
		},
	}

	errorResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.ErrorResponse{}
		},
	}
)

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	*resp = dto.SuccessResponse{}
	successResponsePool.Put(resp)
}

func getErrorResponse() *dto.ErrorResponse {
	if resp, ok := errorResponsePool.Get().(*dto.ErrorResponse); ok {
		return resp
	}
	return &dto.ErrorResponse{}
}

func putErrorResponse(resp *dto.ErrorResponse) {
	*resp = dto.ErrorResponse{}
	errorResponsePool.Put(resp)
}

// BuildRequest binds the JSON body into a new T.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ResponseBuilder writes the success and error envelopes. Envelopes are
// pooled; gin serializes synchronously so they can be returned right after.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends data wrapped in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := getSuccessResponse()
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	b.c.JSON(statusCode, resp)
	putSuccessResponse(resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Attachment sends body as a file download.
func (b *ResponseBuilder) Attachment(filename, contentType string, body []byte) {
	b.c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	b.c.Data(http.StatusOK, contentType, body)
}

// Error sends an error response with a translated message.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	b.ErrorWithMessage(statusCode, message, err)
}

// ErrorWithMessage sends an error response with a custom message.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.write(statusCode, message, nil, err)
}

// Fail maps err to a status and a translated message. Pricing errors carry
// their kind and issues in the body.
func (b *ResponseBuilder) Fail(err error) {
	var qe *model.QuoteError
	if errors.As(err, &qe) {
		middleware.SetLogErrorKind(b.c, qe.Kind)
		// Engine messages are English; other locales get the kind's text.
		message := qe.Message
		if locale := i18n.GetLocale(b.c); message == "" || locale != i18n.DefaultLocale {
			message = i18n.GetTranslator().TranslateKind(qe.Kind, locale)
		}
		b.write(dto.StatusForKind(qe.Kind), message, qe, err)
		return
	}

	status, key := classify(err)
	b.Error(status, key, err)
}

func (b *ResponseBuilder) write(statusCode int, message string, qe *model.QuoteError, err error) {
	resp := getErrorResponse()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = message
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()
	if qe != nil {
		resp.Kind = qe.Kind
		resp.Issues = qe.Issues
	}

	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	putErrorResponse(resp)
}

// classify maps service and infrastructure errors to a status and message key.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrShareNotFound):
		return http.StatusNotFound, i18n.ErrKeyShareNotFound
	case errors.Is(err, service.ErrShareExpired):
		return http.StatusGone, i18n.ErrKeyShareExpired
	case errors.Is(err, service.ErrSharePasswordRequired):
		return http.StatusUnauthorized, i18n.ErrKeySharePasswordRequired
	case errors.Is(err, service.ErrInvalidSharePassword):
		return http.StatusUnauthorized, i18n.ErrKeyInvalidSharePassword
	case errors.Is(err, service.ErrInvalidShareToken):
		return http.StatusUnauthorized, i18n.ErrKeyInvalidShareToken
	case errors.Is(err, service.ErrInvalidShareExpiry):
		return http.StatusBadRequest, i18n.ErrKeyInvalidShareExpiry
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest, i18n.ErrKeyInvalidCostModel
	case errors.Is(err, service.ErrRepositoryNotConfigured), errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}
