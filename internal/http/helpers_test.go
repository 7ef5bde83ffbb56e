package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/service"
)

const (
	quoteBody = `{
		"specification": {"packageType": "flat_3_side", "widthMm": 100, "heightMm": 150, "thicknessMicrons": 80, "materialType": "PE"},
		"quantity": 5000
	}`
	compareBody = `{
		"baseParams": {"specification": {"packageType": "flat_3_side", "widthMm": 100, "heightMm": 150, "thicknessMicrons": 80, "materialType": "PE"}},
		"quantities": [10000, 1000, 5000]
	}`
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestPricer(t *testing.T) *service.PricingService {
	t.Helper()
	pricer := service.NewPricingService(model.DefaultCostModel(), service.WithCache(100, time.Minute, 4))
	t.Cleanup(pricer.Stop)
	return pricer
}

// newTestRouter mounts routes behind the middleware the handlers rely on.
func newTestRouter(register func(r *gin.Engine)) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(), middleware.RequestLogger(nil), middleware.ErrorHandler())
	register(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of a SuccessResponse into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) dto.SuccessResponse {
	t.Helper()
	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
	return resp
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}
