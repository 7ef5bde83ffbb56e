package service

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/metrics"
)

// XLSXContentType is the media type of exported workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	sheetQuotes  = "Quotes"
	sheetSavings = "Savings"
	sheetSummary = "Summary"
)

var quoteHeader = []any{
	"Quantity", "Status", "Unit Price", "Material", "Processing", "Printing", "Setup",
	"Subtotal", "Discount %", "Discount", "Delivery", "Total", "Tax", "Total With Tax",
	"Lead Time (days)", "Valid Until", "Error",
}

// ComparisonExporter writes comparisons as spreadsheets. Amounts are rounded
// the same way as the JSON responses.
type ComparisonExporter struct {
	taxRate float64
}

// NewComparisonExporter creates an exporter that adds tax at taxRate.
func NewComparisonExporter(taxRate float64) *ComparisonExporter {
	return &ComparisonExporter{taxRate: taxRate}
}

// WriteXLSX writes c as a workbook with a row per requested quantity in the
// caller's order, the savings steps and a summary sheet.
func (e *ComparisonExporter) WriteXLSX(w io.Writer, c model.MultiQuantityComparison) error {
	view := dto.NewComparisonResponse(c, e.taxRate)

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", sheetQuotes); err != nil {
		return err
	}
	if _, err := f.NewSheet(sheetSavings); err != nil {
		return err
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}

	if err := e.writeQuotes(f, view); err != nil {
		return fmt.Errorf("write quotes sheet: %w", err)
	}
	if err := e.writeSavings(f, view); err != nil {
		return fmt.Errorf("write savings sheet: %w", err)
	}
	if err := e.writeSummary(f, view); err != nil {
		return fmt.Errorf("write summary sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return err
	}
	metrics.RecordExport("xlsx")
	return nil
}

func (e *ComparisonExporter) writeQuotes(f *excelize.File, view dto.ComparisonResponse) error {
	if err := setRow(f, sheetQuotes, 1, quoteHeader); err != nil {
		return err
	}
	for i, r := range view.Results {
		row := []any{r.Quantity, r.Status}
		if q := r.Quote; q != nil {
			b := q.Breakdown
			row = append(row,
				q.UnitPrice, b.Material, b.Processing, b.Printing, b.Setup,
				b.Subtotal, q.DiscountPercent, b.Discount, b.Delivery, b.Total,
				q.Tax, q.TotalWithTax, q.LeadTimeDays, q.ValidUntil.Format("2006-01-02"), "",
			)
		} else {
			row = append(row, make([]any, len(quoteHeader)-3)...)
			row = append(row, fmt.Sprintf("%s: %s", r.Error.Kind, r.Error.Message))
		}
		if err := setRow(f, sheetQuotes, i+2, row); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(quoteHeader))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetQuotes, "A1", lastCol+"1", style); err != nil {
		return err
	}
	return f.SetPanes(sheetQuotes, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func (e *ComparisonExporter) writeSavings(f *excelize.File, view dto.ComparisonResponse) error {
	if err := setRow(f, sheetSavings, 1, []any{"From", "To", "Unit Savings", "Savings %", "Marginal Total"}); err != nil {
		return err
	}
	for i, s := range view.Savings {
		if err := setRow(f, sheetSavings, i+2, []any{s.FromQuantity, s.ToQuantity, s.UnitSavings, s.Percent, s.MarginalTotal}); err != nil {
			return err
		}
	}
	return nil
}

func (e *ComparisonExporter) writeSummary(f *excelize.File, view dto.ComparisonResponse) error {
	spec := view.Specification
	rows := [][]any{
		{"Package Type", string(spec.PackageType)},
		{"Size (mm)", fmt.Sprintf("%g x %g x %g", spec.WidthMm, spec.HeightMm, spec.DepthMm)},
		{"Material", string(spec.MaterialType)},
		{"Thickness (µm)", spec.ThicknessMicrons},
		{"Delivery", string(view.DeliveryLocation)},
		{"Urgency", string(view.Urgency)},
		{"Currency", view.Currency},
		{"Priced", view.Succeeded},
		{"Failed", view.Failed},
	}
	if view.Printing != nil {
		rows = append(rows, []any{"Printing", fmt.Sprintf("%s, %d colours, %d side(s)",
			view.Printing.Type, view.Printing.Colors, view.Printing.Sides())})
	}
	if r := view.Recommendation; r != nil {
		rows = append(rows,
			[]any{"Recommended Quantity", r.Quantity},
			[]any{"Recommended Unit Price", r.UnitPrice},
			[]any{"Rationale", r.Rationale},
		)
	}
	if r := view.Alternative; r != nil {
		rows = append(rows, []any{"Balanced Alternative", r.Quantity}, []any{"Alternative Rationale", r.Rationale})
	}
	if a := view.Analysis; a != nil {
		rows = append(rows, []any{"Trend", string(a.Trend)}, []any{"Diminishing Returns %", a.DiminishingReturns})
	}
	for _, w := range view.Warnings {
		rows = append(rows, []any{"Warning", w.Message})
	}

	for i, row := range rows {
		if err := setRow(f, sheetSummary, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
