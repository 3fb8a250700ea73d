package reporter

import (
	"fmt"

	"seller-payout-reconciler/internal/models"
	"seller-payout-reconciler/internal/reconciler"
	recerrors "seller-payout-reconciler/pkg/errors"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook renders the result as a multi-sheet Excel workbook: one
// per-order sheet plus one sheet per summary breakdown.
func WriteWorkbook(result *reconciler.ReconciliationResult, path string) error {
	summary := BuildSummary(result.Orders)

	f := excelize.NewFile()
	defer f.Close()

	if err := writeOrderSheet(f, result.Orders); err != nil {
		return err
	}
	if err := writeOverviewSheet(f, summary, result); err != nil {
		return err
	}
	if err := writeStatusSheet(f, summary); err != nil {
		return err
	}
	if err := writeTypeStatusSheet(f, summary); err != nil {
		return err
	}

	groupSheets := []struct {
		name   string
		keyCol string
		rows   []GroupSummary
	}{
		{"SKU Performance", "SKU", summary.BySKU},
		{"Article Types", "Article Type", summary.ByArticleType},
		{"States", "State", summary.ByState},
		{"Zones", "Zone", summary.ByZone},
		{"UTR Tracker", "UTR", summary.ByUTR},
		{"Payment Modes", "Payment Mode", summary.ByPaymentMode},
		{"Return Types", "Return Type", summary.ByReturnType},
	}
	for _, sheet := range groupSheets {
		if len(sheet.rows) == 0 {
			continue
		}
		if err := writeGroupSheet(f, sheet.name, sheet.keyCol, sheet.rows); err != nil {
			return err
		}
	}

	if len(summary.BySettlementDate) > 0 {
		if err := writeSettlementDateSheet(f, summary.BySettlementDate); err != nil {
			return err
		}
	}

	// The default sheet is replaced by Orders.
	f.DeleteSheet("Sheet1")
	if index, err := f.GetSheetIndex("Orders"); err == nil {
		f.SetActiveSheet(index)
	}

	if err := f.SaveAs(path); err != nil {
		return recerrors.Wrap(err, recerrors.CategoryFile, recerrors.CodeFileCorrupted,
			fmt.Sprintf("failed to write workbook to %s", path))
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return recerrors.InternalError(recerrors.CodeUnexpectedError, "workbook cell addressing", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return recerrors.Wrap(err, recerrors.CategoryFile, recerrors.CodeFileCorrupted, "failed to set workbook cell")
		}
	}
	return nil
}

func newSheet(f *excelize.File, name string) error {
	if _, err := f.NewSheet(name); err != nil {
		return recerrors.Wrap(err, recerrors.CategoryFile, recerrors.CodeFileCorrupted,
			fmt.Sprintf("failed to create sheet %s", name))
	}
	return nil
}

func writeOrderSheet(f *excelize.File, orders []*models.OrderRecord) error {
	const sheet = "Orders"
	if err := newSheet(f, sheet); err != nil {
		return err
	}

	headers := []interface{}{
		"Order ID", "Order Type", "SKU", "Article Type", "State", "Zone",
		"Payment Mode", "Seller Price", "Calculated Payment",
		"Actual Settlement", "Pending", "Difference",
		"Reverse Settlement", "Reverse Deducted", "Net Amount",
		"Settlement Date", "UTR", "Status",
	}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}

	for i, o := range orders {
		row := []interface{}{
			o.OrderID,
			o.Type.String(),
			o.SKU,
			o.ArticleType,
			o.State,
			o.Zone,
			o.PaymentMethod,
			o.SellerPrice.InexactFloat64(),
			o.CalculatedPayment.InexactFloat64(),
			o.FwdActual.InexactFloat64(),
			o.FwdPending.InexactFloat64(),
			o.Difference.InexactFloat64(),
			o.RevActual.InexactFloat64(),
			o.RevDeducted.InexactFloat64(),
			o.NetAmount.InexactFloat64(),
			o.SettlementDate,
			utrKey(o),
			o.Status.String(),
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeOverviewSheet(f *excelize.File, summary *Summary, result *reconciler.ReconciliationResult) error {
	const sheet = "Overview"
	if err := newSheet(f, sheet); err != nil {
		return err
	}

	ov := summary.Overview
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Orders", ov.TotalOrders},
		{"Total Seller Value", ov.TotalSellerValue.InexactFloat64()},
		{"Gross MRP", ov.GrossMRP.InexactFloat64()},
		{"Average Order Value", ov.AverageOrderValue.InexactFloat64()},
		{"Expected Payout", ov.TotalCalculated.InexactFloat64()},
		{"Received", ov.TotalReceived.InexactFloat64()},
		{"Reclaimed", ov.TotalReclaimed.InexactFloat64()},
		{"Net", ov.TotalNet.InexactFloat64()},
		{"Pending", ov.TotalPending.InexactFloat64()},
		{"Matched Orders", ov.MatchedOrders},
		{"Unpaid Orders", ov.UnpaidOrders},
		{"Return Orders", ov.ReturnOrders},
		{"Return Rate %", ov.ReturnRate.InexactFloat64()},
		{"Duplicate Sales Rows", result.DuplicateOrders},
		{"Unmatched Forward Rows", result.FwdUnmatched},
		{"Unmatched Reverse Rows", result.RevUnmatched},
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func writeStatusSheet(f *excelize.File, summary *Summary) error {
	const sheet = "Status Summary"
	if err := newSheet(f, sheet); err != nil {
		return err
	}

	headers := []interface{}{"Status", "Count", "Seller Value", "Received", "Total Difference", "Mean Difference"}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i, row := range summary.ByStatus {
		values := []interface{}{
			row.Status.String(),
			row.Count,
			row.SellerValue.InexactFloat64(),
			row.Received.InexactFloat64(),
			row.Difference.InexactFloat64(),
			row.MeanDifference.InexactFloat64(),
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeTypeStatusSheet(f *excelize.File, summary *Summary) error {
	const sheet = "Order Types"
	if err := newSheet(f, sheet); err != nil {
		return err
	}

	headers := []interface{}{"Order Type", "Status", "Count", "Net Amount"}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i, row := range summary.ByTypeStatus {
		values := []interface{}{row.OrderType, row.Status.String(), row.Count, row.NetAmount.InexactFloat64()}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeSettlementDateSheet(f *excelize.File, rows []SettlementDateSummary) error {
	const sheet = "Settlement Dates"
	if err := newSheet(f, sheet); err != nil {
		return err
	}

	headers := []interface{}{"Settlement Date", "Fwd Orders", "Rev Orders", "Fwd Amount", "Rev Amount", "Net Amount"}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		values := []interface{}{
			row.Date,
			row.FwdOrders,
			row.RevOrders,
			row.FwdAmount.InexactFloat64(),
			row.RevAmount.InexactFloat64(),
			row.NetAmount.InexactFloat64(),
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeGroupSheet(f *excelize.File, sheet, keyCol string, rows []GroupSummary) error {
	if err := newSheet(f, sheet); err != nil {
		return err
	}

	headers := []interface{}{keyCol, "Count", "Seller Value", "Received", "Net Amount"}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		values := []interface{}{
			row.Key,
			row.Count,
			row.SellerValue.InexactFloat64(),
			row.Received.InexactFloat64(),
			row.NetAmount.InexactFloat64(),
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}
