package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/metrics"
	"github.com/guttosm/quote-service/internal/repository"
)

var (
	// ErrShareNotFound is returned when no share exists for an id.
	ErrShareNotFound = repository.ErrShareNotFound
	// ErrShareExpired is returned once a share is past its expiry.
	ErrShareExpired = errors.New("share has expired")
	// ErrSharePasswordRequired is returned when a protected share is read without a token.
	ErrSharePasswordRequired = errors.New("share is password protected")
	// ErrInvalidSharePassword is returned when unlocking with a wrong password.
	ErrInvalidSharePassword = errors.New("invalid share password")
	// ErrInvalidShareExpiry is returned for an expiry outside (0, max].
	ErrInvalidShareExpiry = errors.New("share expiry out of range")
)

// ShareInput describes a share to create.
type ShareInput struct {
	Title    string
	Password string
	// ExpiresIn of zero selects the default expiry.
	ExpiresIn time.Duration
}

// ShareService stores comparisons behind opaque links.
type ShareService interface {
	Create(ctx context.Context, comparison model.MultiQuantityComparison, in ShareInput) (*model.ComparisonShare, error)
	Open(ctx context.Context, id, token string) (*model.ComparisonShare, error)
	Unlock(ctx context.Context, id, password string) (string, time.Time, error)
}

// ShareOptions bounds share lifetimes.
type ShareOptions struct {
	DefaultExpiry time.Duration
	MaxExpiry     time.Duration
}

// DefaultShareOptions returns a 7 day default and a 30 day ceiling.
func DefaultShareOptions() ShareOptions {
	return ShareOptions{
		DefaultExpiry: 7 * 24 * time.Hour,
		MaxExpiry:     30 * 24 * time.Hour,
	}
}

// ShareServiceImpl implements ShareService.
type ShareServiceImpl struct {
	repo   repository.ShareRepositoryInterface
	tokens *ShareTokenService
	opts   ShareOptions
	now    func() time.Time
	newID  func() string
}

// NewShareService creates the service. A nil repo makes every call fail with
// ErrRepositoryNotConfigured.
func NewShareService(repo repository.ShareRepositoryInterface, tokens *ShareTokenService, opts ShareOptions) *ShareServiceImpl {
	if opts.DefaultExpiry <= 0 {
		opts.DefaultExpiry = DefaultShareOptions().DefaultExpiry
	}
	if opts.MaxExpiry < opts.DefaultExpiry {
		opts.MaxExpiry = opts.DefaultExpiry
	}
	return &ShareServiceImpl{
		repo:   repo,
		tokens: tokens,
		opts:   opts,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *ShareServiceImpl) Create(ctx context.Context, comparison model.MultiQuantityComparison, in ShareInput) (*model.ComparisonShare, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	expiresIn := in.ExpiresIn
	if expiresIn == 0 {
		expiresIn = s.opts.DefaultExpiry
	}
	if expiresIn < 0 || expiresIn > s.opts.MaxExpiry {
		return nil, fmt.Errorf("%w: %s (max %s)", ErrInvalidShareExpiry, expiresIn, s.opts.MaxExpiry)
	}

	now := s.now().UTC()
	share := &model.ComparisonShare{
		ID:         s.newID(),
		Comparison: comparison,
		Title:      strings.TrimSpace(in.Title),
		CreatedAt:  now,
		ExpiresAt:  now.Add(expiresIn),
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash share password: %w", err)
		}
		share.PasswordHash = string(hash)
	}

	if err := s.repo.Create(ctx, share); err != nil {
		metrics.RecordShare("create", "error")
		return nil, err
	}
	metrics.RecordShare("create", "success")
	log.Info().
		Str("share_id", share.ID).
		Bool("protected", share.Protected()).
		Time("expires_at", share.ExpiresAt).
		Msg("Comparison shared")
	return share, nil
}

// Open returns a share and counts the view. Protected shares need a token
// from Unlock.
func (s *ShareServiceImpl) Open(ctx context.Context, id, token string) (*model.ComparisonShare, error) {
	share, err := s.load(ctx, id)
	if err != nil {
		metrics.RecordShare("open", resultOf(err))
		return nil, err
	}

	if share.Protected() {
		if token == "" {
			metrics.RecordShare("open", "locked")
			return nil, ErrSharePasswordRequired
		}
		if _, err := s.tokens.Validate(token, share.ID); err != nil {
			metrics.RecordShare("open", "locked")
			return nil, err
		}
	}

	viewed, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		metrics.RecordShare("open", resultOf(err))
		return nil, err
	}
	metrics.RecordShare("open", "success")
	return viewed, nil
}

// Unlock checks the password and issues an access token for the share.
func (s *ShareServiceImpl) Unlock(ctx context.Context, id, password string) (string, time.Time, error) {
	share, err := s.load(ctx, id)
	if err != nil {
		metrics.RecordShare("unlock", resultOf(err))
		return "", time.Time{}, err
	}

	if share.Protected() {
		if err := bcrypt.CompareHashAndPassword([]byte(share.PasswordHash), []byte(password)); err != nil {
			metrics.RecordShare("unlock", "denied")
			return "", time.Time{}, ErrInvalidSharePassword
		}
	}

	token, expiresAt, err := s.tokens.Issue(share.ID, share.ExpiresAt)
	if err != nil {
		metrics.RecordShare("unlock", "error")
		return "", time.Time{}, fmt.Errorf("sign share token: %w", err)
	}
	metrics.RecordShare("unlock", "success")
	return token, expiresAt, nil
}

// load fetches a share and rejects it once expired. The TTL index removes
// expired documents lazily, so the expiry is checked here as well.
func (s *ShareServiceImpl) load(ctx context.Context, id string) (*model.ComparisonShare, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	share, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if share.Expired(s.now()) {
		return nil, ErrShareExpired
	}
	return share, nil
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, ErrShareNotFound):
		return "not_found"
	case errors.Is(err, ErrShareExpired):
		return "expired"
	default:
		return "error"
	}
}
