package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"seller-payout-reconciler/internal/models"
	"seller-payout-reconciler/internal/reconciler"

	recerrors "seller-payout-reconciler/pkg/errors"
)

// OutputFormat names a supported report rendering.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatXLSX    OutputFormat = "xlsx"
)

// IsValid checks if the output format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatConsole, FormatJSON, FormatCSV, FormatXLSX:
		return true
	default:
		return false
	}
}

// ReportConfig holds report generation options.
type ReportConfig struct {
	Format OutputFormat `json:"format"`

	// IncludeOrders emits the per-order detail rows, not just summaries.
	IncludeOrders bool `json:"include_orders"`

	// IncludeResolutionNotes surfaces positional column fallbacks taken
	// during loading.
	IncludeResolutionNotes bool `json:"include_resolution_notes"`

	CSVDelimiter rune `json:"csv_delimiter"`
}

// DefaultReportConfig returns the default configuration: console output with
// summaries only.
func DefaultReportConfig() *ReportConfig {
	return &ReportConfig{
		Format:                 FormatConsole,
		IncludeOrders:          false,
		IncludeResolutionNotes: true,
		CSVDelimiter:           ',',
	}
}

// Validate validates the report configuration.
func (c *ReportConfig) Validate() error {
	if !c.Format.IsValid() {
		return recerrors.ConfigurationError(recerrors.CodeInvalidConfig, "output format", string(c.Format), nil)
	}
	return nil
}

// ReportGenerator renders reconciliation results.
type ReportGenerator struct {
	config *ReportConfig
}

// NewReportGenerator creates a generator with the given configuration. A nil
// configuration uses the defaults.
func NewReportGenerator(config *ReportConfig) (*ReportGenerator, error) {
	if config == nil {
		config = DefaultReportConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &ReportGenerator{config: config}, nil
}

// Report couples a result with its aggregated summary for rendering.
type Report struct {
	Summary         *Summary                            `json:"summary"`
	StatusCounts    map[models.PaymentStatus]int        `json:"status_counts"`
	Sources         []reconciler.SourceStats            `json:"sources"`
	ResolutionNotes []string                            `json:"resolution_notes,omitempty"`
	Orders          []*models.OrderRecord               `json:"orders,omitempty"`
	ProcessedAt     time.Time                           `json:"processed_at"`
	Duration        string                              `json:"duration"`
}

// GenerateReport aggregates the result and writes it in the configured
// format. The xlsx format is file-based and handled by WriteWorkbook, not
// here.
func (rg *ReportGenerator) GenerateReport(result *reconciler.ReconciliationResult, writer io.Writer) error {
	report := rg.buildReport(result)

	switch rg.config.Format {
	case FormatConsole:
		return rg.generateConsoleReport(report, writer)
	case FormatJSON:
		return rg.generateJSONReport(report, writer)
	case FormatCSV:
		return rg.generateCSVReport(report, writer)
	default:
		return recerrors.ConfigurationError(recerrors.CodeInvalidConfig, "output format", string(rg.config.Format), nil)
	}
}

func (rg *ReportGenerator) buildReport(result *reconciler.ReconciliationResult) *Report {
	report := &Report{
		Summary:      BuildSummary(result.Orders),
		StatusCounts: result.StatusCounts,
		Sources:      result.Sources,
		ProcessedAt:  result.ProcessedAt,
		Duration:     result.Duration.String(),
	}
	if rg.config.IncludeResolutionNotes {
		report.ResolutionNotes = result.ResolutionNotes
	}
	// The CSV rendering is the per-order table itself.
	if rg.config.IncludeOrders || rg.config.Format == FormatCSV {
		report.Orders = result.Orders
	}
	return report
}

func (rg *ReportGenerator) generateConsoleReport(report *Report, writer io.Writer) error {
	ov := report.Summary.Overview

	fmt.Fprintf(writer, "PAYOUT RECONCILIATION REPORT\n")
	fmt.Fprintf(writer, "Generated: %s\n", report.ProcessedAt.Format(time.RFC3339))
	fmt.Fprintf(writer, "Duration: %s\n\n", report.Duration)

	fmt.Fprintf(writer, "=== SOURCES ===\n")
	for _, src := range report.Sources {
		fmt.Fprintf(writer, "%-16s %6d rows -> %6d records  (%s)\n", src.Table, src.RawRows, src.Records, src.Path)
	}
	fmt.Fprintf(writer, "\n")

	fmt.Fprintf(writer, "=== OVERVIEW ===\n")
	fmt.Fprintf(writer, "Orders:            %d\n", ov.TotalOrders)
	fmt.Fprintf(writer, "Seller Value:      %s\n", ov.TotalSellerValue.StringFixed(2))
	fmt.Fprintf(writer, "Gross MRP:         %s\n", ov.GrossMRP.StringFixed(2))
	fmt.Fprintf(writer, "Avg Order Value:   %s\n", ov.AverageOrderValue.StringFixed(2))
	fmt.Fprintf(writer, "Expected Payout:   %s\n", ov.TotalCalculated.StringFixed(2))
	fmt.Fprintf(writer, "Received:          %s\n", ov.TotalReceived.StringFixed(2))
	fmt.Fprintf(writer, "Reclaimed:         %s\n", ov.TotalReclaimed.StringFixed(2))
	fmt.Fprintf(writer, "Net:               %s\n", ov.TotalNet.StringFixed(2))
	fmt.Fprintf(writer, "Pending:           %s\n", ov.TotalPending.StringFixed(2))
	fmt.Fprintf(writer, "Matched:           %d\n", ov.MatchedOrders)
	fmt.Fprintf(writer, "Unpaid:            %d\n", ov.UnpaidOrders)
	fmt.Fprintf(writer, "Returns:           %d (%s%%)\n\n", ov.ReturnOrders, ov.ReturnRate.StringFixed(2))

	fmt.Fprintf(writer, "=== STATUS BREAKDOWN ===\n")
	fmt.Fprintf(writer, "%-28s %8s %14s %14s %12s\n", "Status", "Count", "Seller Value", "Received", "Mean Diff")
	for _, row := range report.Summary.ByStatus {
		fmt.Fprintf(writer, "%-28s %8d %14s %14s %12s\n",
			row.Status, row.Count,
			row.SellerValue.StringFixed(2), row.Received.StringFixed(2),
			row.MeanDifference.StringFixed(2))
	}
	fmt.Fprintf(writer, "\n")

	if len(report.Summary.ByTypeStatus) > 0 {
		fmt.Fprintf(writer, "=== ORDER TYPE x STATUS ===\n")
		for _, row := range report.Summary.ByTypeStatus {
			fmt.Fprintf(writer, "%-14s %-28s %8d %14s\n",
				row.OrderType, row.Status, row.Count, row.NetAmount.StringFixed(2))
		}
		fmt.Fprintf(writer, "\n")
	}

	printGroupSection(writer, "SKU PERFORMANCE", report.Summary.BySKU)
	printGroupSection(writer, "ARTICLE TYPES", report.Summary.ByArticleType)
	printGroupSection(writer, "STATES", report.Summary.ByState)
	printGroupSection(writer, "ZONES", report.Summary.ByZone)
	printSettlementDates(writer, report.Summary.BySettlementDate)
	printGroupSection(writer, "UTR TRACKER", report.Summary.ByUTR)
	printGroupSection(writer, "PAYMENT MODES", report.Summary.ByPaymentMode)
	printGroupSection(writer, "RETURN TYPES", report.Summary.ByReturnType)

	if len(report.ResolutionNotes) > 0 {
		fmt.Fprintf(writer, "=== COLUMN RESOLUTION NOTES ===\n")
		for _, note := range report.ResolutionNotes {
			fmt.Fprintf(writer, "  - %s\n", note)
		}
		fmt.Fprintf(writer, "\n")
	}

	if rg.config.IncludeOrders {
		fmt.Fprintf(writer, "=== ORDERS ===\n")
		fmt.Fprintf(writer, "%-20s %-14s %12s %12s %12s %-28s\n",
			"Order ID", "Type", "Seller", "Calculated", "Received", "Status")
		for _, o := range report.Orders {
			fmt.Fprintf(writer, "%-20s %-14s %12s %12s %12s %-28s\n",
				o.OrderID, o.Type, o.SellerPrice.StringFixed(2),
				o.CalculatedPayment.StringFixed(2), o.FwdActual.StringFixed(2), o.Status)
		}
	}

	return nil
}

func printGroupSection(writer io.Writer, title string, rows []GroupSummary) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(writer, "=== %s ===\n", title)
	fmt.Fprintf(writer, "%-32s %8s %14s %14s %14s\n", "Key", "Count", "Seller Value", "Received", "Net")
	for _, row := range rows {
		fmt.Fprintf(writer, "%-32s %8d %14s %14s %14s\n",
			row.Key, row.Count,
			row.SellerValue.StringFixed(2), row.Received.StringFixed(2), row.NetAmount.StringFixed(2))
	}
	fmt.Fprintf(writer, "\n")
}

func printSettlementDates(writer io.Writer, rows []SettlementDateSummary) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(writer, "=== SETTLEMENT DATES ===\n")
	fmt.Fprintf(writer, "%-14s %6s %6s %14s %14s %14s\n", "Date", "Fwd", "Rev", "Fwd Amount", "Rev Amount", "Net")
	for _, row := range rows {
		fmt.Fprintf(writer, "%-14s %6d %6d %14s %14s %14s\n",
			row.Date, row.FwdOrders, row.RevOrders,
			row.FwdAmount.StringFixed(2), row.RevAmount.StringFixed(2), row.NetAmount.StringFixed(2))
	}
	fmt.Fprintf(writer, "\n")
}

func (rg *ReportGenerator) generateJSONReport(report *Report, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// generateCSVReport writes the per-order table. Summary breakdowns do not
// fit a single flat CSV, the json or xlsx formats carry those.
func (rg *ReportGenerator) generateCSVReport(report *Report, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	csvWriter.Comma = rg.config.CSVDelimiter
	defer csvWriter.Flush()

	headers := []string{
		"order_id", "order_type", "sku", "article_type", "state", "zone",
		"payment_method", "seller_price", "calculated_payment",
		"fwd_actual", "fwd_pending", "difference",
		"rev_actual", "rev_deducted", "net_amount",
		"settlement_date", "utr", "status",
	}
	if err := csvWriter.Write(headers); err != nil {
		return recerrors.Wrap(err, recerrors.CategoryFile, recerrors.CodeFileCorrupted, "failed to write CSV headers")
	}

	for _, o := range report.Orders {
		record := []string{
			o.OrderID,
			o.Type.String(),
			o.SKU,
			o.ArticleType,
			o.State,
			o.Zone,
			o.PaymentMethod,
			o.SellerPrice.StringFixed(2),
			o.CalculatedPayment.StringFixed(2),
			o.FwdActual.StringFixed(2),
			o.FwdPending.StringFixed(2),
			o.Difference.StringFixed(2),
			o.RevActual.StringFixed(2),
			o.RevDeducted.StringFixed(2),
			o.NetAmount.StringFixed(2),
			o.SettlementDate,
			utrKey(o),
			o.Status.String(),
		}
		if err := csvWriter.Write(record); err != nil {
			return recerrors.Wrap(err, recerrors.CategoryFile, recerrors.CodeFileCorrupted, "failed to write order record")
		}
	}

	return nil
}
