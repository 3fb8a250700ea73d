// Package reporter turns a classified order table into grouped summaries and
// renders them to console, JSON, CSV or an Excel workbook.
package reporter

import (
	"sort"

	"seller-payout-reconciler/internal/models"

	"github.com/shopspring/decimal"
)

// Overview holds the headline figures of one run.
type Overview struct {
	TotalOrders      int             `json:"total_orders"`
	TotalSellerValue decimal.Decimal `json:"total_seller_value"`
	GrossMRP         decimal.Decimal `json:"gross_mrp"`
	TotalCalculated  decimal.Decimal `json:"total_calculated"`
	TotalReceived    decimal.Decimal `json:"total_received"`
	TotalReclaimed   decimal.Decimal `json:"total_reclaimed"`
	TotalNet         decimal.Decimal `json:"total_net"`
	TotalPending     decimal.Decimal `json:"total_pending"`

	// AverageOrderValue is seller value per order, ReturnRate the share of
	// RTO/RT orders as a percentage. Both round to two places.
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	ReturnRate        decimal.Decimal `json:"return_rate"`

	MatchedOrders int `json:"matched_orders"`
	UnpaidOrders  int `json:"unpaid_orders"`
	ReturnOrders  int `json:"return_orders"`
}

// StatusSummary is one row of the by-status breakdown.
type StatusSummary struct {
	Status         models.PaymentStatus `json:"status"`
	Count          int                  `json:"count"`
	SellerValue    decimal.Decimal      `json:"seller_value"`
	Received       decimal.Decimal      `json:"received"`
	Difference     decimal.Decimal      `json:"difference"`
	MeanDifference decimal.Decimal      `json:"mean_difference"`
}

// TypeStatusSummary is one row of the order type by status breakdown.
type TypeStatusSummary struct {
	OrderType string               `json:"order_type"`
	Status    models.PaymentStatus `json:"status"`
	Count     int                  `json:"count"`
	NetAmount decimal.Decimal      `json:"net_amount"`
}

// SettlementDateSummary is one row of the per-date settlement breakdown. The
// forward and reverse reports carry their own settlement dates, so one order
// can contribute to two rows. Reverse amounts keep their negative sign and
// NetAmount is their sum with the forward total.
type SettlementDateSummary struct {
	Date      string          `json:"date"`
	FwdOrders int             `json:"fwd_orders"`
	RevOrders int             `json:"rev_orders"`
	FwdAmount decimal.Decimal `json:"fwd_amount"`
	RevAmount decimal.Decimal `json:"rev_amount"`
	NetAmount decimal.Decimal `json:"net_amount"`
}

// GroupSummary is one row of a generic single-key breakdown (SKU, article
// type, state, zone, UTR, payment mode, return type).
type GroupSummary struct {
	Key         string          `json:"key"`
	Count       int             `json:"count"`
	SellerValue decimal.Decimal `json:"seller_value"`
	Received    decimal.Decimal `json:"received"`
	NetAmount   decimal.Decimal `json:"net_amount"`
}

// Summary is the full aggregated view of a classified order table.
type Summary struct {
	Overview Overview `json:"overview"`

	ByStatus     []StatusSummary     `json:"by_status"`
	ByTypeStatus []TypeStatusSummary `json:"by_type_status"`

	BySKU            []GroupSummary          `json:"by_sku,omitempty"`
	ByArticleType    []GroupSummary          `json:"by_article_type,omitempty"`
	ByState          []GroupSummary          `json:"by_state,omitempty"`
	ByZone           []GroupSummary          `json:"by_zone,omitempty"`
	BySettlementDate []SettlementDateSummary `json:"by_settlement_date,omitempty"`
	ByUTR            []GroupSummary          `json:"by_utr,omitempty"`
	ByPaymentMode    []GroupSummary          `json:"by_payment_mode,omitempty"`
	ByReturnType     []GroupSummary          `json:"by_return_type,omitempty"`
}

// BuildSummary aggregates the classified orders. Groups with no members are
// absent from the output, and rows whose grouping key is blank are omitted
// from the keyed breakdowns.
func BuildSummary(orders []*models.OrderRecord) *Summary {
	s := &Summary{}
	s.Overview = buildOverview(orders)
	s.ByStatus = buildByStatus(orders)
	s.ByTypeStatus = buildByTypeStatus(orders)

	s.BySKU = buildGroups(orders, func(o *models.OrderRecord) string { return o.SKU })
	s.ByArticleType = buildGroups(orders, func(o *models.OrderRecord) string { return o.ArticleType })
	s.ByState = buildGroups(orders, func(o *models.OrderRecord) string { return o.State })
	s.ByZone = buildGroups(orders, func(o *models.OrderRecord) string { return o.Zone })
	s.BySettlementDate = buildBySettlementDate(orders)
	s.ByUTR = buildGroups(orders, utrKey)
	s.ByPaymentMode = buildByPaymentMode(orders)
	s.ByReturnType = buildGroups(orders, func(o *models.OrderRecord) string { return o.ReturnType })

	return s
}

func buildOverview(orders []*models.OrderRecord) Overview {
	ov := Overview{TotalOrders: len(orders)}
	for _, o := range orders {
		ov.TotalSellerValue = ov.TotalSellerValue.Add(o.SellerPrice)
		ov.TotalCalculated = ov.TotalCalculated.Add(o.CalculatedPayment)
		ov.TotalReceived = ov.TotalReceived.Add(o.FwdReceived)
		ov.TotalReclaimed = ov.TotalReclaimed.Add(o.RevDeducted)
		ov.TotalNet = ov.TotalNet.Add(o.NetAmount)
		ov.TotalPending = ov.TotalPending.Add(o.FwdPending)

		switch o.Status {
		case models.StatusSalesMatched, models.StatusRTOForwardSettled, models.StatusRTReverseSettled:
			ov.MatchedOrders++
		case models.StatusSalesNoPayment, models.StatusRTONoForwardPayment:
			ov.UnpaidOrders++
		}
		if !o.Type.IsPlainSales() {
			ov.ReturnOrders++
		}
	}
	ov.GrossMRP = grossMRP(orders)
	if ov.TotalOrders > 0 {
		total := decimal.NewFromInt(int64(ov.TotalOrders))
		ov.AverageOrderValue = ov.TotalSellerValue.Div(total).Round(2)
		ov.ReturnRate = decimal.NewFromInt(int64(ov.ReturnOrders)).
			Div(total).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return ov
}

func grossMRP(orders []*models.OrderRecord) decimal.Decimal {
	var sum decimal.Decimal
	for _, o := range orders {
		sum = sum.Add(o.MRP)
	}
	return sum
}

func buildByStatus(orders []*models.OrderRecord) []StatusSummary {
	byStatus := make(map[models.PaymentStatus]*StatusSummary)
	for _, o := range orders {
		row, ok := byStatus[o.Status]
		if !ok {
			row = &StatusSummary{Status: o.Status}
			byStatus[o.Status] = row
		}
		row.Count++
		row.SellerValue = row.SellerValue.Add(o.SellerPrice)
		row.Received = row.Received.Add(o.FwdReceived)
		row.Difference = row.Difference.Add(o.Difference)
	}

	// Emit in classification-table order, skipping empty statuses.
	var out []StatusSummary
	for _, status := range models.AllStatuses() {
		row, ok := byStatus[status]
		if !ok {
			continue
		}
		row.MeanDifference = row.Difference.Div(decimal.NewFromInt(int64(row.Count))).Round(2)
		out = append(out, *row)
	}
	return out
}

func buildByTypeStatus(orders []*models.OrderRecord) []TypeStatusSummary {
	type key struct {
		orderType string
		status    models.PaymentStatus
	}
	rows := make(map[key]*TypeStatusSummary)
	for _, o := range orders {
		k := key{o.Type.String(), o.Status}
		row, ok := rows[k]
		if !ok {
			row = &TypeStatusSummary{OrderType: k.orderType, Status: k.status}
			rows[k] = row
		}
		row.Count++
		row.NetAmount = row.NetAmount.Add(o.NetAmount)
	}

	out := make([]TypeStatusSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderType != out[j].OrderType {
			return out[i].OrderType < out[j].OrderType
		}
		return out[i].Status < out[j].Status
	})
	return out
}

func buildGroups(orders []*models.OrderRecord, keyOf func(*models.OrderRecord) string) []GroupSummary {
	groups := make(map[string]*GroupSummary)
	for _, o := range orders {
		k := keyOf(o)
		if k == "" {
			continue
		}
		row, ok := groups[k]
		if !ok {
			row = &GroupSummary{Key: k}
			groups[k] = row
		}
		row.Count++
		row.SellerValue = row.SellerValue.Add(o.SellerPrice)
		row.Received = row.Received.Add(o.FwdReceived)
		row.NetAmount = row.NetAmount.Add(o.NetAmount)
	}

	out := make([]GroupSummary, 0, len(groups))
	for _, row := range groups {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// buildBySettlementDate sums the actual settlement amounts of both gateway
// legs per settlement date. Each leg contributes under its own date.
func buildBySettlementDate(orders []*models.OrderRecord) []SettlementDateSummary {
	rows := make(map[string]*SettlementDateSummary)
	rowFor := func(date string) *SettlementDateSummary {
		row, ok := rows[date]
		if !ok {
			row = &SettlementDateSummary{Date: date}
			rows[date] = row
		}
		return row
	}

	for _, o := range orders {
		if o.SettlementDate != "" {
			row := rowFor(o.SettlementDate)
			row.FwdOrders++
			row.FwdAmount = row.FwdAmount.Add(o.FwdActual)
		}
		if o.RevSettlementDate != "" {
			row := rowFor(o.RevSettlementDate)
			row.RevOrders++
			row.RevAmount = row.RevAmount.Add(o.RevActual)
		}
	}

	out := make([]SettlementDateSummary, 0, len(rows))
	for _, row := range rows {
		row.NetAmount = row.FwdAmount.Add(row.RevAmount)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Payment-mode keys. The forward report settles every order on exactly one
// of the two rails, flagged by a positive prepaid or postpaid amount.
const (
	ModePrepaid  = "Prepaid (Online)"
	ModePostpaid = "Postpaid (COD)"
)

// buildByPaymentMode splits orders by settlement rail using the forward
// report's prepaid and postpaid amounts, not the Sales sheet's payment
// method text. Received carries the per-mode settled value.
func buildByPaymentMode(orders []*models.OrderRecord) []GroupSummary {
	prepaid := &GroupSummary{Key: ModePrepaid}
	postpaid := &GroupSummary{Key: ModePostpaid}

	for _, o := range orders {
		if o.FwdPrepaidAmount.IsPositive() {
			prepaid.Count++
			prepaid.SellerValue = prepaid.SellerValue.Add(o.SellerPrice)
			prepaid.Received = prepaid.Received.Add(o.FwdPrepaidAmount)
			prepaid.NetAmount = prepaid.NetAmount.Add(o.NetAmount)
		}
		if o.FwdPostpaidAmount.IsPositive() {
			postpaid.Count++
			postpaid.SellerValue = postpaid.SellerValue.Add(o.SellerPrice)
			postpaid.Received = postpaid.Received.Add(o.FwdPostpaidAmount)
			postpaid.NetAmount = postpaid.NetAmount.Add(o.NetAmount)
		}
	}

	var out []GroupSummary
	if prepaid.Count > 0 {
		out = append(out, *prepaid)
	}
	if postpaid.Count > 0 {
		out = append(out, *postpaid)
	}
	return out
}

// utrKey picks the bank reference of the leg that actually paid: prepaid UTR
// when set, otherwise postpaid.
func utrKey(o *models.OrderRecord) string {
	if o.UTRPrepaid != "" {
		return o.UTRPrepaid
	}
	return o.UTRPostpaid
}
