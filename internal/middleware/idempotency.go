package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/logger"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key (RFC standard).
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is the TTL for cached idempotency responses.
	IdempotencyKeyTTL = 24 * time.Hour

	maxIdempotencyKeyLength = 255
	storeTimeout            = 200 * time.Millisecond
)

// replayedHeaders are restored on replay; everything else is request specific.
var replayedHeaders = []string{"Content-Type", "Content-Disposition", "Location"}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Store IdempotencyStore
	TTL   time.Duration
}

// DefaultIdempotencyConfig returns an in-process store with a 24h TTL.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Store: NewMemoryIdempotencyStore(),
		TTL:   IdempotencyKeyTTL,
	}
}

// Idempotency replays the stored response of a POST carrying an
// Idempotency-Key that was already answered with a 2xx. Reusing a key with a
// different body is rejected with 409.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.Store == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if cfg.TTL <= 0 {
		cfg.TTL = IdempotencyKeyTTL
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if c.Request.Method != http.MethodPost || key == "" {
			c.Next()
			return
		}

		if len(key) > maxIdempotencyKeyLength {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInvalidRequest, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewError(dto.ErrCodeInvalidRequest, message).WithRequestID(GetRequestID(c)))
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			_ = c.Error(err)
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInvalidRequestBody, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewError(dto.ErrCodeInvalidRequest, message).WithRequestID(GetRequestID(c)))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		storeKey := idempotencyStoreKey(key, c.Request)
		fingerprint := bodyFingerprint(body)

		if cached, ok := lookup(c.Request.Context(), cfg.Store, storeKey); ok {
			if cached.Fingerprint != fingerprint {
				message := i18n.GetTranslator().Translate(i18n.ErrKeyConflict, i18n.GetLocale(c))
				c.AbortWithStatusJSON(http.StatusConflict,
					dto.NewError(dto.ErrCodeConflict, message).WithRequestID(GetRequestID(c)))
				return
			}
			for k, v := range cached.Headers {
				c.Header(k, v)
			}
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(cached.StatusCode, cached.Headers["Content-Type"], cached.Body)
			c.Abort()
			return
		}

		writer := &capturingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		resp := &CachedResponse{
			StatusCode:  status,
			Headers:     make(map[string]string, len(replayedHeaders)),
			Body:        writer.body.Bytes(),
			Fingerprint: fingerprint,
			StoredAt:    time.Now().UTC(),
		}
		for _, h := range replayedHeaders {
			if v := writer.Header().Get(h); v != "" {
				resp.Headers[h] = v
			}
		}

		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), storeTimeout)
		defer cancel()
		if err := cfg.Store.Set(ctx, storeKey, resp, cfg.TTL); err != nil {
			log := logger.Logger()
			log.Warn().Err(err).Str("request_id", GetRequestID(c)).Msg("Failed to store idempotent response")
		}
	}
}

func lookup(parent context.Context, store IdempotencyStore, key string) (*CachedResponse, bool) {
	ctx, cancel := context.WithTimeout(parent, storeTimeout)
	defer cancel()

	cached, ok, err := store.Get(ctx, key)
	if err != nil {
		log := logger.Logger()
		log.Warn().Err(err).Msg("Idempotency store unavailable")
		return nil, false
	}
	return cached, ok
}

// idempotencyStoreKey scopes a client key to the endpoint it was sent to.
func idempotencyStoreKey(key string, req *http.Request) string {
	h := sha256.New()
	h.Write([]byte(req.Method))
	h.Write([]byte{0})
	h.Write([]byte(req.URL.Path))
	h.Write([]byte{0})
	h.Write([]byte(key))
	return hex.EncodeToString(h.Sum(nil))
}

func bodyFingerprint(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// capturingWriter copies the response body for storing.
type capturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
