package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/logger"
)

// AuditLog records an administrative action such as a new cost model version
// or a cache flush. It is written to the console and, when sink is not nil,
// persisted next to the request logs.
func AuditLog(sink *AsyncLogger, c *gin.Context, action, message string, fields map[string]interface{}) {
	audit(sink, c, "info", action, message, nil, fields)
}

// AuditLogError records a failed administrative action.
func AuditLogError(sink *AsyncLogger, c *gin.Context, action, message string, err error, fields map[string]interface{}) {
	audit(sink, c, "error", action, message, err, fields)
}

func audit(sink *AsyncLogger, c *gin.Context, level, action, message string, err error, fields map[string]interface{}) {
	entry := &model.RequestLog{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   message,
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Operation: "audit." + action,
		Actor:     GetActor(c),
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	log := logger.Logger()
	event := log.Info()
	if err != nil {
		event = log.Error().Err(err)
	}
	event.
		Str("request_id", entry.RequestID).
		Str("action", action).
		Str("actor", entry.Actor).
		Fields(fields).
		Msg(message)

	sink.Log(entry)
}
