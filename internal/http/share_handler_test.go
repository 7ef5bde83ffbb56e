//go:build !integration

package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/guttosm/quote-service/internal/service"
)

// memoryShareRepo is an in-process share store.
type memoryShareRepo struct {
	mu     sync.Mutex
	shares map[string]model.ComparisonShare
}

func newMemoryShareRepo() *memoryShareRepo {
	return &memoryShareRepo{shares: make(map[string]model.ComparisonShare)}
}

func (r *memoryShareRepo) Create(_ context.Context, share *model.ComparisonShare) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shares[share.ID] = *share
	return nil
}

func (r *memoryShareRepo) Get(_ context.Context, id string) (*model.ComparisonShare, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shares[id]
	if !ok {
		return nil, repository.ErrShareNotFound
	}
	return &s, nil
}

func (r *memoryShareRepo) IncrementViews(_ context.Context, id string) (*model.ComparisonShare, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shares[id]
	if !ok {
		return nil, repository.ErrShareNotFound
	}
	s.Views++
	r.shares[id] = s
	return &s, nil
}

func (r *memoryShareRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shares, id)
	return nil
}

func newShareRouter(t *testing.T, repo *memoryShareRepo) *gin.Engine {
	t.Helper()
	tokens := service.NewShareTokenService(service.ShareTokenConfig{Secret: "test-share-secret", TTL: time.Hour})
	cfg := &RouterConfig{Shares: service.NewShareService(repo, tokens, service.DefaultShareOptions())}
	pricing := NewHandler(newTestPricer(t))

	return newTestRouter(func(r *gin.Engine) {
		NewShareRoutes(pricing, cfg).RegisterRoutes(r.Group("/api/v1"), cfg)
	})
}

func shareBody(extra string) string {
	return `{"comparison": ` + compareBody + extra + `}`
}

func createShare(t *testing.T, router *gin.Engine, body string) dto.CreateShareResponse {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/shares", body, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created dto.CreateShareResponse
	decodeData(t, w, &created)
	assert.Equal(t, created.Path, w.Header().Get("Location"))
	return created
}

func TestShareHandler_OpenPublicShare(t *testing.T) {
	router := newShareRouter(t, newMemoryShareRepo())

	created := createShare(t, router, shareBody(`, "title": "Spring campaign"`))
	assert.False(t, created.Protected)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), created.ExpiresAt, time.Minute)

	for views := int64(1); views <= 2; views++ {
		w := doJSON(t, router, http.MethodGet, created.Path, "", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got dto.ShareResponse
		decodeData(t, w, &got)
		assert.Equal(t, "Spring campaign", got.Title)
		assert.Equal(t, views, got.Views)
		assert.Len(t, got.Comparison.Results, 3)
	}
}

func TestShareHandler_ProtectedShare(t *testing.T) {
	router := newShareRouter(t, newMemoryShareRepo())
	created := createShare(t, router, shareBody(`, "password": "s3cret"`))
	require.True(t, created.Protected)

	t.Run("locked without a token", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, created.Path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, created.Path, "", map[string]string{"X-Share-Token": "not-a-jwt"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, created.Path+"/unlock", `{"password":"guess"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	w := doJSON(t, router, http.MethodPost, created.Path+"/unlock", `{"password":"s3cret"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var unlocked dto.UnlockShareResponse
	decodeData(t, w, &unlocked)
	require.NotEmpty(t, unlocked.Token)
	assert.False(t, unlocked.ExpiresAt.After(created.ExpiresAt))

	t.Run("share token header", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, created.Path, "", map[string]string{"X-Share-Token": unlocked.Token})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bearer token", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, created.Path, "", map[string]string{"Authorization": "Bearer " + unlocked.Token})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("token of another share", func(t *testing.T) {
		other := createShare(t, router, shareBody(`, "password": "other-pass"`))
		w := doJSON(t, router, http.MethodGet, other.Path, "", map[string]string{"X-Share-Token": unlocked.Token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestShareHandler_Errors(t *testing.T) {
	repo := newMemoryShareRepo()
	router := newShareRouter(t, repo)

	expired := &model.ComparisonShare{
		ID:        "expired-share",
		CreatedAt: time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), expired))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "unknown share", method: http.MethodGet, path: "/api/v1/shares/missing", wantStatus: http.StatusNotFound},
		{name: "expired share", method: http.MethodGet, path: "/api/v1/shares/expired-share", wantStatus: http.StatusGone},
		{name: "unlock expired share", method: http.MethodPost, path: "/api/v1/shares/expired-share/unlock", body: `{"password":"x"}`, wantStatus: http.StatusGone},
		{name: "unlock without password", method: http.MethodPost, path: "/api/v1/shares/expired-share/unlock", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "expiry above the maximum", method: http.MethodPost, path: "/api/v1/shares", body: shareBody(`, "expiresInHours": 800`), wantStatus: http.StatusBadRequest},
		{name: "password too short", method: http.MethodPost, path: "/api/v1/shares", body: shareBody(`, "password": "abc"`), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, tt.method, tt.path, tt.body, nil)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestShareHandler_InvalidComparisonIsNotStored(t *testing.T) {
	repo := newMemoryShareRepo()
	router := newShareRouter(t, repo)

	body := strings.Replace(shareBody(""), "[10000, 1000, 5000]", "[]", 1)
	w := doJSON(t, router, http.MethodPost, "/api/v1/shares", body, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.KindEmptyQuantities, decodeError(t, w).Kind)
	assert.Empty(t, repo.shares)
}

func TestShareHandler_ExportShare(t *testing.T) {
	router := newShareRouter(t, newMemoryShareRepo())
	created := createShare(t, router, shareBody(""))

	w := doJSON(t, router, http.MethodGet, created.Path+"/export.xlsx", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.XLSXContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "share-"+created.ID)
}

func TestNewShareRoutes_WithoutService(t *testing.T) {
	assert.Nil(t, NewShareRoutes(NewHandler(newTestPricer(t)), &RouterConfig{}))
}
