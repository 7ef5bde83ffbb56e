package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/service"
)

// ShareHandler serves shared comparisons.
type ShareHandler struct {
	pricing *Handler
	shares  service.ShareService
	audit   *middleware.AsyncLogger
}

// NewShareHandler creates a ShareHandler. Comparisons are priced by pricing.
func NewShareHandler(pricing *Handler, shares service.ShareService, audit *middleware.AsyncLogger) *ShareHandler {
	return &ShareHandler{pricing: pricing, shares: shares, audit: audit}
}

// CreateShare handles POST /api/v1/shares.
//
// @Summary      Share a comparison
// @Description  Prices the submitted comparison on the server and stores it behind an opaque id. Links expire after 7 days unless expiresInHours says otherwise (at most 720). A password makes the link require an access token from the unlock endpoint.
// @Tags         Shares
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CreateShareRequest true "Comparison to share"
// @Success      201 {object} dto.SuccessResponse{data=dto.CreateShareResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid comparison or expiry"
// @Failure      503 {object} dto.ErrorResponse "Share storage unavailable"
// @Router       /api/v1/shares [post]
func (h *ShareHandler) CreateShare(c *gin.Context) {
	builder := NewResponseBuilder(c)
	middleware.SetLogOperation(c, "share.create")

	req, err := BuildRequest[dto.CreateShareRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	comparison, err := h.pricing.compare(c, req.Comparison)
	if err != nil {
		builder.Fail(err)
		return
	}

	share, err := h.shares.Create(c.Request.Context(), comparison, service.ShareInput{
		Title:     req.Title,
		Password:  req.Password,
		ExpiresIn: req.ExpiresIn(),
	})
	if err != nil {
		builder.Fail(err)
		return
	}

	middleware.AuditLog(h.audit, c, "share.create", "Comparison shared", map[string]interface{}{
		"share_id":   share.ID,
		"protected":  share.Protected(),
		"quantities": len(req.Comparison.Quantities),
	})

	path := "/api/v1/shares/" + share.ID
	c.Header("Location", path)
	builder.SuccessCreated(dto.CreateShareResponse{
		ID:        share.ID,
		Path:      path,
		Protected: share.Protected(),
		ExpiresAt: share.ExpiresAt,
	})
}

// GetShare handles GET /api/v1/shares/{id}.
//
// @Summary      Open a shared comparison
// @Description  Returns the shared comparison and counts the view. Protected shares need the token from the unlock endpoint in X-Share-Token.
// @Tags         Shares
// @Produce      json
// @Param        id path string true "Share id"
// @Param        X-Share-Token header string false "Access token of a protected share"
// @Success      200 {object} dto.SuccessResponse{data=dto.ShareResponse}
// @Failure      401 {object} dto.ErrorResponse "Password protected"
// @Failure      404 {object} dto.ErrorResponse "Unknown share"
// @Failure      410 {object} dto.ErrorResponse "Share expired"
// @Router       /api/v1/shares/{id} [get]
func (h *ShareHandler) GetShare(c *gin.Context) {
	builder := NewResponseBuilder(c)
	middleware.SetLogOperation(c, "share.open")
	middleware.SetLogField(c, "share_id", c.Param("id"))

	share, err := h.shares.Open(c.Request.Context(), c.Param("id"), middleware.GetShareToken(c))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.NewShareResponse(share, h.pricing.TaxRate()))
}

// UnlockShare handles POST /api/v1/shares/{id}/unlock.
//
// @Summary      Unlock a protected share
// @Description  Checks the password and returns a short-lived access token for the share. The token never outlives the share.
// @Tags         Shares
// @Accept       json
// @Produce      json
// @Param        id path string true "Share id"
// @Param        request body dto.UnlockShareRequest true "Share password"
// @Success      200 {object} dto.SuccessResponse{data=dto.UnlockShareResponse}
// @Failure      401 {object} dto.ErrorResponse "Wrong password"
// @Failure      404 {object} dto.ErrorResponse "Unknown share"
// @Failure      410 {object} dto.ErrorResponse "Share expired"
// @Router       /api/v1/shares/{id}/unlock [post]
func (h *ShareHandler) UnlockShare(c *gin.Context) {
	builder := NewResponseBuilder(c)
	middleware.SetLogOperation(c, "share.unlock")
	middleware.SetLogField(c, "share_id", c.Param("id"))

	req, err := BuildRequest[dto.UnlockShareRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	id := c.Param("id")
	token, expiresAt, err := h.shares.Unlock(c.Request.Context(), id, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSharePassword) {
			middleware.AuditLogError(h.audit, c, "share.unlock", "Share unlock denied", err, map[string]interface{}{"share_id": id})
		}
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.UnlockShareResponse{Token: token, ExpiresAt: expiresAt})
}

// ExportShare handles GET /api/v1/shares/{id}/export.xlsx.
//
// @Summary      Download a shared comparison as a spreadsheet
// @Tags         Shares
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id path string true "Share id"
// @Param        X-Share-Token header string false "Access token of a protected share"
// @Success      200 {file} file "XLSX workbook"
// @Failure      401 {object} dto.ErrorResponse "Password protected"
// @Failure      404 {object} dto.ErrorResponse "Unknown share"
// @Failure      410 {object} dto.ErrorResponse "Share expired"
// @Router       /api/v1/shares/{id}/export.xlsx [get]
func (h *ShareHandler) ExportShare(c *gin.Context) {
	middleware.SetLogOperation(c, "share.export")
	middleware.SetLogField(c, "share_id", c.Param("id"))

	share, err := h.shares.Open(c.Request.Context(), c.Param("id"), middleware.GetShareToken(c))
	if err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	h.pricing.writeWorkbook(c, share.Comparison, "share-"+share.ID+"-"+time.Now().Format("20060102")+".xlsx")
}
