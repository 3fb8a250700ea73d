package reporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"seller-payout-reconciler/internal/models"
	"seller-payout-reconciler/internal/reconciler"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func sampleOrders() []*models.OrderRecord {
	return []*models.OrderRecord{
		{
			OrderID: "A1", SKU: "SKU-1", State: "Karnataka", PaymentMethod: "COD",
			SellerPrice: dec(1000), MRP: dec(1500), CalculatedPayment: dec(930),
			FwdReceived: dec(930), FwdActual: dec(930), NetAmount: dec(930),
			FwdPostpaidAmount: dec(930), SettlementDate: "2025-01-15", UTRPostpaid: "UTR001",
			FwdPresent: true, Status: models.StatusSalesMatched,
		},
		{
			OrderID: "A2", SKU: "SKU-1", State: "Delhi", PaymentMethod: "Prepaid",
			SellerPrice: dec(500), MRP: dec(700), CalculatedPayment: dec(470),
			Difference: dec(470), Status: models.StatusSalesNoPayment,
		},
		{
			OrderID: "A3", SKU: "SKU-2", State: "Karnataka",
			Type:        models.OrderType{RTO: true},
			SellerPrice: dec(800), MRP: dec(1000), NetAmount: dec(-50), RevDeducted: dec(50),
			RevActual: dec(-50), RevSettlementDate: "2025-01-20",
			ReturnType: "rto", Status: models.StatusRTONoForwardPayment,
		},
	}
}

func sampleResult() *reconciler.ReconciliationResult {
	orders := sampleOrders()
	counts := make(map[models.PaymentStatus]int)
	for _, o := range orders {
		counts[o.Status]++
	}
	return &reconciler.ReconciliationResult{
		Orders:         orders,
		StatusCounts:   counts,
		SalesRows:      3,
		DistinctOrders: 3,
		Sources: []reconciler.SourceStats{
			{Table: "sales", Path: "sales.csv", RawRows: 3, Records: 3},
		},
		ResolutionNotes: []string{"sales: resolved 'seller price' by position"},
	}
}

func TestBuildSummary_Overview(t *testing.T) {
	summary := BuildSummary(sampleOrders())

	ov := summary.Overview
	if ov.TotalOrders != 3 {
		t.Errorf("TotalOrders = %d, want 3", ov.TotalOrders)
	}
	if ov.TotalSellerValue.String() != "2300" {
		t.Errorf("TotalSellerValue = %s, want 2300", ov.TotalSellerValue)
	}
	if ov.TotalNet.String() != "880" {
		t.Errorf("TotalNet = %s, want 880", ov.TotalNet)
	}
	if ov.MatchedOrders != 1 || ov.UnpaidOrders != 2 || ov.ReturnOrders != 1 {
		t.Errorf("matched/unpaid/returns = %d/%d/%d, want 1/2/1",
			ov.MatchedOrders, ov.UnpaidOrders, ov.ReturnOrders)
	}
	if ov.GrossMRP.String() != "3200" {
		t.Errorf("GrossMRP = %s, want 3200", ov.GrossMRP)
	}
	if ov.AverageOrderValue.String() != "766.67" {
		t.Errorf("AverageOrderValue = %s, want 766.67", ov.AverageOrderValue)
	}
	if ov.ReturnRate.String() != "33.33" {
		t.Errorf("ReturnRate = %s, want 33.33", ov.ReturnRate)
	}
}

func TestBuildSummary_ByStatusOrderAndMean(t *testing.T) {
	summary := BuildSummary(sampleOrders())

	if len(summary.ByStatus) != 3 {
		t.Fatalf("got %d status rows, want 3 (empty statuses absent)", len(summary.ByStatus))
	}
	// Classification-table order: RTO rows before Sales rows.
	if summary.ByStatus[0].Status != models.StatusRTONoForwardPayment {
		t.Errorf("first status = %q, want RTO row first", summary.ByStatus[0].Status)
	}
	for _, row := range summary.ByStatus {
		if row.Status == models.StatusSalesNoPayment && row.MeanDifference.String() != "470" {
			t.Errorf("mean difference = %s, want 470", row.MeanDifference)
		}
	}
}

func TestBuildSummary_Groups(t *testing.T) {
	summary := BuildSummary(sampleOrders())

	if len(summary.BySKU) != 2 {
		t.Fatalf("got %d SKU rows, want 2", len(summary.BySKU))
	}
	if summary.BySKU[0].Key != "SKU-1" || summary.BySKU[0].Count != 2 {
		t.Errorf("SKU-1 row = %+v", summary.BySKU[0])
	}
	if len(summary.ByUTR) != 1 || summary.ByUTR[0].Key != "UTR001" {
		t.Errorf("UTR rows = %+v, want one row for UTR001", summary.ByUTR)
	}
	if len(summary.ByReturnType) != 1 || summary.ByReturnType[0].Key != "rto" {
		t.Errorf("return type rows = %+v", summary.ByReturnType)
	}
}

// The payment-mode split follows the forward report's prepaid and postpaid
// settlement amounts, not the Sales sheet's payment method text. Only A1 has
// a forward leg, so the Sales-side "Prepaid" label on A2 must not produce a
// prepaid row.
func TestBuildSummary_ByPaymentMode(t *testing.T) {
	summary := BuildSummary(sampleOrders())

	if len(summary.ByPaymentMode) != 1 {
		t.Fatalf("got %d payment modes, want 1", len(summary.ByPaymentMode))
	}
	mode := summary.ByPaymentMode[0]
	if mode.Key != ModePostpaid {
		t.Errorf("mode key = %q, want %q", mode.Key, ModePostpaid)
	}
	if mode.Count != 1 || mode.Received.String() != "930" {
		t.Errorf("postpaid row = %+v, want count 1 received 930", mode)
	}

	orders := append(sampleOrders(), &models.OrderRecord{
		OrderID: "A4", SellerPrice: dec(600), FwdPrepaidAmount: dec(560),
		FwdActual: dec(560), NetAmount: dec(560), FwdPresent: true,
		Status: models.StatusSalesMatched,
	})
	summary = BuildSummary(orders)
	if len(summary.ByPaymentMode) != 2 {
		t.Fatalf("got %d payment modes, want 2", len(summary.ByPaymentMode))
	}
	if summary.ByPaymentMode[0].Key != ModePrepaid || summary.ByPaymentMode[0].Received.String() != "560" {
		t.Errorf("prepaid row = %+v, want received 560", summary.ByPaymentMode[0])
	}
}

// Both gateway legs contribute to the settlement-date summary under their own
// dates, with reverse amounts keeping their sign.
func TestBuildSummary_BySettlementDate(t *testing.T) {
	summary := BuildSummary(sampleOrders())

	if len(summary.BySettlementDate) != 2 {
		t.Fatalf("got %d settlement dates, want 2", len(summary.BySettlementDate))
	}
	fwd := summary.BySettlementDate[0]
	if fwd.Date != "2025-01-15" || fwd.FwdOrders != 1 || fwd.FwdAmount.String() != "930" {
		t.Errorf("forward date row = %+v", fwd)
	}
	if fwd.NetAmount.String() != "930" {
		t.Errorf("forward net = %s, want 930", fwd.NetAmount)
	}
	rev := summary.BySettlementDate[1]
	if rev.Date != "2025-01-20" || rev.RevOrders != 1 || rev.RevAmount.String() != "-50" {
		t.Errorf("reverse date row = %+v", rev)
	}
	if rev.NetAmount.String() != "-50" {
		t.Errorf("reverse net = %s, want -50", rev.NetAmount)
	}
}

func TestGenerateConsoleReport(t *testing.T) {
	rg, err := NewReportGenerator(DefaultReportConfig())
	if err != nil {
		t.Fatalf("NewReportGenerator failed: %v", err)
	}

	var buf bytes.Buffer
	if err := rg.GenerateReport(sampleResult(), &buf); err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"PAYOUT RECONCILIATION REPORT",
		"=== OVERVIEW ===",
		"=== STATUS BREAKDOWN ===",
		"Sales – Matched",
		"=== SKU PERFORMANCE ===",
		"=== SETTLEMENT DATES ===",
		"=== UTR TRACKER ===",
		"=== PAYMENT MODES ===",
		"Avg Order Value",
		"=== COLUMN RESOLUTION NOTES ===",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q", want)
		}
	}
}

func TestGenerateJSONReport(t *testing.T) {
	rg, err := NewReportGenerator(&ReportConfig{Format: FormatJSON, IncludeOrders: true})
	if err != nil {
		t.Fatalf("NewReportGenerator failed: %v", err)
	}

	var buf bytes.Buffer
	if err := rg.GenerateReport(sampleResult(), &buf); err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := decoded["summary"]; !ok {
		t.Error("JSON output missing summary")
	}
	orders, ok := decoded["orders"].([]interface{})
	if !ok || len(orders) != 3 {
		t.Errorf("JSON output orders = %v", decoded["orders"])
	}
}

func TestGenerateCSVReport(t *testing.T) {
	rg, err := NewReportGenerator(&ReportConfig{Format: FormatCSV, CSVDelimiter: ','})
	if err != nil {
		t.Fatalf("NewReportGenerator failed: %v", err)
	}

	var buf bytes.Buffer
	if err := rg.GenerateReport(sampleResult(), &buf); err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d CSV rows, want header + 3 orders", len(rows))
	}
	if rows[0][0] != "order_id" {
		t.Errorf("first header = %q", rows[0][0])
	}
	if rows[1][0] != "A1" || rows[1][len(rows[1])-1] != models.StatusSalesMatched.String() {
		t.Errorf("unexpected first order row: %v", rows[1])
	}
}

func TestReportConfig_InvalidFormat(t *testing.T) {
	_, err := NewReportGenerator(&ReportConfig{Format: "yaml"})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	if err := WriteWorkbook(sampleResult(), path); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("workbook unreadable: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	for _, want := range []string{"Orders", "Overview", "Status Summary", "SKU Performance"} {
		found := false
		for _, s := range sheets {
			if s == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("workbook missing sheet %q (have %v)", want, sheets)
		}
	}

	rows, err := f.GetRows("Orders")
	if err != nil {
		t.Fatalf("failed to read Orders sheet: %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("Orders sheet has %d rows, want header + 3", len(rows))
	}
}
