package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestLog is a persisted record of one API call. Quote-specific fields are
// filled in by the handlers through the gin context.
type RequestLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	Level       string             `bson:"level" json:"level"`
	Message     string             `bson:"message" json:"message"`
	RequestID   string             `bson:"request_id,omitempty" json:"requestId,omitempty"`
	Method      string             `bson:"method,omitempty" json:"method,omitempty"`
	Path        string             `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode  int                `bson:"status_code,omitempty" json:"statusCode,omitempty"`
	DurationMs  int64              `bson:"duration_ms,omitempty" json:"durationMs,omitempty"`
	IP          string             `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent   string             `bson:"user_agent,omitempty" json:"userAgent,omitempty"`
	Error       string             `bson:"error,omitempty" json:"error,omitempty"`
	Operation   string             `bson:"operation,omitempty" json:"operation,omitempty"`
	PackageType PackageType        `bson:"package_type,omitempty" json:"packageType,omitempty"`
	Material    MaterialType       `bson:"material,omitempty" json:"material,omitempty"`
	Quantities  []int              `bson:"quantities,omitempty" json:"quantities,omitempty"`
	ErrorKind   ErrorKind          `bson:"error_kind,omitempty" json:"errorKind,omitempty"`
	Actor       string             `bson:"actor,omitempty" json:"actor,omitempty"`
	Fields      map[string]any     `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField sets a free-form field.
func (l *RequestLog) WithField(key string, value any) *RequestLog {
	if l.Fields == nil {
		l.Fields = make(map[string]any)
	}
	l.Fields[key] = value
	return l
}

// RequestLogQuery filters stored request logs.
type RequestLogQuery struct {
	RequestID string
	Operation string
	Level     string
	ErrorKind ErrorKind
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}
