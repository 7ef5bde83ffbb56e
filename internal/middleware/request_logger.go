package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/logger"
)

const (
	logFieldsKey = "request_log_fields"
	actorKey     = "actor"
)

// quietPaths are probed constantly; they are logged at debug level and never persisted.
var quietPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// requestLogFields is what handlers add to the request log of a call.
type requestLogFields struct {
	operation   string
	packageType model.PackageType
	material    model.MaterialType
	quantities  []int
	errorKind   model.ErrorKind
	extra       map[string]any
}

func logFields(c *gin.Context) *requestLogFields {
	if v, ok := c.Get(logFieldsKey); ok {
		if f, ok := v.(*requestLogFields); ok {
			return f
		}
	}
	f := &requestLogFields{}
	c.Set(logFieldsKey, f)
	return f
}

// SetLogOperation names the operation of a request, e.g. "quote" or "compare".
func SetLogOperation(c *gin.Context, operation string) {
	logFields(c).operation = operation
}

// SetLogOrder records the design and quantities a request priced.
func SetLogOrder(c *gin.Context, spec model.PackageSpecification, quantities ...int) {
	f := logFields(c)
	f.packageType = spec.PackageType
	f.material = spec.MaterialType
	f.quantities = quantities
}

// SetLogErrorKind records the pricing error kind a request failed with.
func SetLogErrorKind(c *gin.Context, kind model.ErrorKind) {
	logFields(c).errorKind = kind
}

// SetLogField attaches a free-form field to the persisted request log.
func SetLogField(c *gin.Context, key string, value any) {
	f := logFields(c)
	if f.extra == nil {
		f.extra = make(map[string]any)
	}
	f.extra[key] = value
}

// SetActor records who made an administrative call.
func SetActor(c *gin.Context, actor string) {
	c.Set(actorKey, actor)
}

// GetActor returns the actor set by APIKeyAuth, or "".
func GetActor(c *gin.Context) string {
	return c.GetString(actorKey)
}

// RequestLogger returns a middleware that logs every request with zerolog and,
// when sink is not nil, persists it through the async logger.
func RequestLogger(sink *AsyncLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		fields := logFields(c)
		requestID := GetRequestID(c)

		log := logger.Logger()
		event := log.WithLevel(levelForStatus(statusCode))
		if statusCode < 400 {
			event = log.Info()
		}
		if quietPaths[path] && statusCode < 500 {
			event = log.Debug()
		}
		event = event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status_code", statusCode).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", c.ClientIP())
		if fields.operation != "" {
			event = event.Str("operation", fields.operation)
		}
		if fields.errorKind != "" {
			event = event.Str("error_kind", string(fields.errorKind))
		}
		event.Msg("HTTP request")

		if sink == nil || quietPaths[path] {
			return
		}

		entry := &model.RequestLog{
			Timestamp:   start.UTC(),
			Level:       getLogLevel(statusCode),
			Message:     "HTTP request",
			RequestID:   requestID,
			Method:      c.Request.Method,
			Path:        path,
			StatusCode:  statusCode,
			DurationMs:  latency.Milliseconds(),
			IP:          c.ClientIP(),
			UserAgent:   c.Request.UserAgent(),
			Operation:   fields.operation,
			PackageType: fields.packageType,
			Material:    fields.material,
			Quantities:  fields.quantities,
			ErrorKind:   fields.errorKind,
			Actor:       GetActor(c),
		}
		for k, v := range fields.extra {
			entry.WithField(k, v)
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}
		sink.Log(entry)
	}
}

// getLogLevel returns the log level based on HTTP status code.
func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
