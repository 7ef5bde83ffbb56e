package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/metrics"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/service"
)

// Handler serves the pricing endpoints.
type Handler struct {
	pricer   service.Pricer
	exporter *service.ComparisonExporter
	taxRate  float64
	source   service.ResolvedCostModel
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithTaxRate overrides the cost model's tax rate in responses.
func WithTaxRate(rate float64) HandlerOption {
	return func(h *Handler) {
		if rate >= 0 {
			h.taxRate = rate
		}
	}
}

// WithCostModelSource records where the active cost model came from.
func WithCostModelSource(resolved service.ResolvedCostModel) HandlerOption {
	return func(h *Handler) {
		h.source = resolved
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(pricer service.Pricer, opts ...HandlerOption) *Handler {
	h := &Handler{
		pricer:  pricer,
		taxRate: pricer.CostModel().TaxRate,
		source:  service.ResolvedCostModel{Model: pricer.CostModel(), Source: service.SourceDefaults},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.exporter = service.NewComparisonExporter(h.taxRate)
	return h
}

// TaxRate is the rate applied to displayed totals.
func (h *Handler) TaxRate() float64 {
	return h.taxRate
}

// CreateQuote handles POST /api/v1/quotes.
//
// @Summary      Price one design at one quantity
// @Description  Validates the design against the single-calculation profile (100 to 100000 units) and returns the price breakdown, discount, delivery, lead time and validity. The first blocking problem is returned with its error kind.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.QuoteRequest true "Design and quantity"
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid design or quantity"
// @Failure      422 {object} dto.ErrorResponse "Below the product's minimum order quantity"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/v1/quotes [post]
func (h *Handler) CreateQuote(c *gin.Context) {
	builder := NewResponseBuilder(c)
	middleware.SetLogOperation(c, "quote")

	req, err := BuildRequest[dto.QuoteRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	req.Normalize()
	middleware.SetLogOrder(c, req.Specification, req.Quantity)

	product := h.pricer.ResolveProduct(req.Specification.PackageType, req.Product)
	start := time.Now()
	quote, err := h.pricer.Quote(req.Order(product, req.Quantity))
	if err != nil {
		metrics.RecordQuote(time.Since(start), string(req.Specification.PackageType), "error")
		builder.Fail(err)
		return
	}
	metrics.RecordQuote(time.Since(start), string(req.Specification.PackageType), "success")

	builder.SuccessOK(dto.NewQuoteResponse(quote, h.taxRate))
}

// ValidateQuote handles POST /api/v1/quotes/validate.
//
// @Summary      List every validation issue of a design
// @Description  Runs every check instead of stopping at the first. Warnings never block pricing. The profile selects the quantity bounds: single (100 to 100000) or comparison (500 to 1000000).
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        request body dto.ValidateRequest true "Design, quantity and profile"
// @Success      200 {object} dto.SuccessResponse{data=dto.ValidateResponse}
// @Failure      400 {object} dto.ErrorResponse "Malformed body"
// @Router       /api/v1/quotes/validate [post]
func (h *Handler) ValidateQuote(c *gin.Context) {
	builder := NewResponseBuilder(c)
	middleware.SetLogOperation(c, "validate")

	req, err := BuildRequest[dto.ValidateRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	req.Normalize()
	middleware.SetLogOrder(c, req.Specification, req.Quantity)

	profile := service.ProfileByName(req.Profile)
	product := h.pricer.ResolveProduct(req.Specification.PackageType, req.Product)
	issues := h.pricer.Validate(req.Specification, req.Quantity, product, profile)
	for _, issue := range issues {
		metrics.RecordValidationIssue(string(issue.Kind), string(issue.Severity))
	}

	builder.SuccessOK(dto.NewValidateResponse(profile.String(), issues))
}

// CompareQuantities handles POST /api/v1/comparisons.
//
// @Summary      Compare one design at several quantities
// @Description  Prices up to 10 quantities (500 to 1000000 units each) and returns a row per requested quantity in request order, savings between consecutive quantities, the recommended quantity and a balanced alternative. A quantity that fails on its own is reported on its row; problems with the shared design fail the whole request.
// @Tags         Comparisons
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CompareRequest true "Shared parameters and quantities"
// @Success      200 {object} dto.SuccessResponse{data=dto.ComparisonResponse}
// @Failure      400 {object} dto.ErrorResponse "Invalid design or quantity list"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Router       /api/v1/comparisons [post]
func (h *Handler) CompareQuantities(c *gin.Context) {
	builder := NewResponseBuilder(c)
	middleware.SetLogOperation(c, "compare")

	req, err := BuildRequest[dto.CompareRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	comparison, err := h.compare(c, *req)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.NewComparisonResponse(comparison, h.taxRate))
}

// ExportComparison handles POST /api/v1/comparisons/export.
//
// @Summary      Download a comparison as a spreadsheet
// @Description  Same input as POST /api/v1/comparisons; answers with an XLSX workbook holding the quotes, savings and a summary.
// @Tags         Comparisons
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        request body dto.CompareRequest true "Shared parameters and quantities"
// @Success      200 {file} file "XLSX workbook"
// @Failure      400 {object} dto.ErrorResponse "Invalid design or quantity list"
// @Router       /api/v1/comparisons/export [post]
func (h *Handler) ExportComparison(c *gin.Context) {
	builder := NewResponseBuilder(c)
	middleware.SetLogOperation(c, "export")

	req, err := BuildRequest[dto.CompareRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	comparison, err := h.compare(c, *req)
	if err != nil {
		builder.Fail(err)
		return
	}
	h.writeWorkbook(c, comparison, exportFilename(comparison.Specification.PackageType, time.Now()))
}

// GetCostModel handles GET /api/v1/cost-model.
//
// @Summary      Show the active cost model
// @Description  Returns the pricing tables this instance uses and whether they came from a file, the database or the built-in defaults.
// @Tags         Cost Model
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CostModelResponse}
// @Router       /api/v1/cost-model [get]
func (h *Handler) GetCostModel(c *gin.Context) {
	middleware.SetLogOperation(c, "cost_model")
	NewResponseBuilder(c).SuccessOK(dto.CostModelResponse{
		Source:  string(h.source.Source),
		Version: h.source.Version,
		Model:   h.pricer.CostModel(),
	})
}

// compare normalizes req and runs the comparison with the comparison profile.
func (h *Handler) compare(c *gin.Context, req dto.CompareRequest) (model.MultiQuantityComparison, error) {
	params := req.BaseParams
	params.Normalize()
	middleware.SetLogOrder(c, params.Specification, req.Quantities...)

	start := time.Now()
	comparison, err := h.pricer.Compare(params.Specification, req.Quantities, service.ComparisonOptions{
		Product:          h.pricer.ResolveProduct(params.Specification.PackageType, params.Product),
		Printing:         params.Printing,
		DeliveryLocation: params.DeliveryLocation,
		Urgency:          params.Urgency,
		SkipAnalysis:     req.SkipAnalysis,
	})
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordComparison(time.Since(start), len(req.Quantities), status)
	return comparison, err
}

func (h *Handler) writeWorkbook(c *gin.Context, comparison model.MultiQuantityComparison, filename string) {
	var buf bytes.Buffer
	if err := h.exporter.WriteXLSX(&buf, comparison); err != nil {
		NewResponseBuilder(c).Fail(fmt.Errorf("export comparison: %w", err))
		return
	}
	NewResponseBuilder(c).Attachment(filename, service.XLSXContentType, buf.Bytes())
}

func exportFilename(packageType model.PackageType, now time.Time) string {
	return fmt.Sprintf("comparison-%s-%s.xlsx", packageType, now.Format("20060102"))
}
