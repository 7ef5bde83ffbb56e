package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/guttosm/quote-service/config"
)

// ErrInvalidShareToken is returned for a malformed, expired or foreign token.
var ErrInvalidShareToken = errors.New("invalid share token")

// ShareClaims grant read access to one shared comparison.
type ShareClaims struct {
	ShareID string `json:"sid"`
	jwt.RegisteredClaims
}

// ShareTokenConfig configures ShareTokenService.
type ShareTokenConfig struct {
	Secret string
	TTL    time.Duration
}

// NewShareTokenConfigFromAuthConfig maps the auth settings.
func NewShareTokenConfigFromAuthConfig(cfg config.AuthConfig) ShareTokenConfig {
	return ShareTokenConfig{
		Secret: cfg.ShareTokenSecret,
		TTL:    cfg.ShareTokenTTL,
	}
}

// ShareTokenService issues and checks HS256 share access tokens.
type ShareTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewShareTokenService creates the service. A zero TTL defaults to one hour.
func NewShareTokenService(cfg ShareTokenConfig) *ShareTokenService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ShareTokenService{secret: []byte(cfg.Secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for shareID that never outlives the share itself.
func (s *ShareTokenService) Issue(shareID string, shareExpiresAt time.Time) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	if !shareExpiresAt.IsZero() && shareExpiresAt.Before(expiresAt) {
		expiresAt = shareExpiresAt
	}

	claims := &ShareClaims{
		ShareID: shareID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   shareID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate checks tokenString and that it was issued for shareID.
func (s *ShareTokenService) Validate(tokenString, shareID string) (*ShareClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ShareClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidShareToken
	}

	claims, ok := token.Claims.(*ShareClaims)
	if !ok || !token.Valid || claims.ShareID != shareID {
		return nil, ErrInvalidShareToken
	}
	return claims, nil
}
