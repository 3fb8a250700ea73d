// Package joiner builds the per-order view: it deduplicates the Sales master,
// indexes the gateway reports by order id and performs a left-outer join so
// that every distinct Sales order yields exactly one OrderRecord, with missing
// gateway legs zero-filled.
package joiner

import (
	"seller-payout-reconciler/internal/models"
	"seller-payout-reconciler/pkg/logger"

	"github.com/shopspring/decimal"
)

// Joiner joins normalized source records into OrderRecords.
type Joiner struct {
	logger logger.Logger
}

// New creates a Joiner. A nil logger falls back to the global instance.
func New(log logger.Logger) *Joiner {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Joiner{logger: log.WithComponent("joiner")}
}

// Result carries the joined records plus join statistics for reporting.
type Result struct {
	Orders []*models.OrderRecord

	SalesRows       int // rows in the Sales master before dedup
	DistinctOrders  int
	DuplicateOrders int // dropped later occurrences
	FwdMatched      int
	RevMatched      int
	FwdUnmatched    int // forward rows with no Sales counterpart
	RevUnmatched    int
}

// Join performs the left-outer join. The Sales master is authoritative:
// gateway rows whose order id never appears in Sales are counted but dropped.
// Duplicate Sales rows keep the first occurrence. RTO and RT memberships only
// tag the order type, their values do not enter the join.
func (j *Joiner) Join(
	sales []*models.SalesRecord,
	forward []*models.GatewayRecord,
	reverse []*models.GatewayRecord,
	rto []*models.ReturnMembership,
	rt []*models.ReturnMembership,
) *Result {
	fwdIndex := indexGateway(forward)
	revIndex := indexGateway(reverse)
	rtoSet := indexReturns(rto)
	rtSet := indexReturns(rt)

	result := &Result{SalesRows: len(sales)}
	seen := make(map[string]bool, len(sales))
	fwdUsed := make(map[string]bool, len(fwdIndex))
	revUsed := make(map[string]bool, len(revIndex))

	for _, s := range sales {
		if seen[s.OrderID] {
			result.DuplicateOrders++
			continue
		}
		seen[s.OrderID] = true

		order := &models.OrderRecord{
			OrderID:       s.OrderID,
			PacketID:      s.PacketID,
			SKU:           s.SKU,
			ArticleType:   s.ArticleType,
			State:         s.State,
			PaymentMethod: s.PaymentMethod,
			SellerPrice:   s.SellerPrice,
			InvoiceAmount: s.InvoiceAmount,
			MRP:           s.MRP,
			Discount:      s.Discount,
			Type: models.OrderType{
				RTO: rtoSet[s.OrderID],
				RT:  rtSet[s.OrderID],
			},
		}

		if fwd, ok := fwdIndex[s.OrderID]; ok {
			applyForward(order, fwd)
			fwdUsed[s.OrderID] = true
			result.FwdMatched++
		}
		if rev, ok := revIndex[s.OrderID]; ok {
			applyReverse(order, rev)
			revUsed[s.OrderID] = true
			result.RevMatched++
		}

		result.Orders = append(result.Orders, order)
	}

	result.DistinctOrders = len(result.Orders)
	result.FwdUnmatched = len(fwdIndex) - len(fwdUsed)
	result.RevUnmatched = len(revIndex) - len(revUsed)

	j.logger.WithFields(logger.Fields{
		"sales_rows":      result.SalesRows,
		"distinct_orders": result.DistinctOrders,
		"duplicates":      result.DuplicateOrders,
		"fwd_matched":     result.FwdMatched,
		"rev_matched":     result.RevMatched,
		"fwd_unmatched":   result.FwdUnmatched,
		"rev_unmatched":   result.RevUnmatched,
	}).Info("Join completed")

	return result
}

// indexGateway builds a first-wins order id index over gateway rows.
func indexGateway(records []*models.GatewayRecord) map[string]*models.GatewayRecord {
	index := make(map[string]*models.GatewayRecord, len(records))
	for _, r := range records {
		if _, exists := index[r.OrderID]; !exists {
			index[r.OrderID] = r
		}
	}
	return index
}

func indexReturns(records []*models.ReturnMembership) map[string]bool {
	set := make(map[string]bool, len(records))
	for _, r := range records {
		set[r.OrderID] = true
	}
	return set
}

// applyForward copies the forward leg onto the order. Descriptive fields from
// the gateway win over the Sales sheet when non-empty, the gateway report is
// the fresher source.
func applyForward(order *models.OrderRecord, fwd *models.GatewayRecord) {
	order.FwdCommissionTax = fwd.CommissionTaxDeduction
	order.FwdCommission = fwd.Commission
	order.FwdTCS = fwd.TCS
	order.FwdTDS = fwd.TDS
	order.FwdLogistics = fwd.LogisticsDeduction
	order.FwdPrepaidCharge = fwd.PrepaidCharge
	order.FwdPostpaidCharge = fwd.PostpaidCharge
	order.FwdPrepaidAmount = fwd.PrepaidAmount
	order.FwdPostpaidAmount = fwd.PostpaidAmount
	order.FwdActual = fwd.ActualSettlement
	order.FwdExpected = fwd.ExpectedSettlement
	order.FwdPending = fwd.PendingSettlement
	order.FwdPresent = anyNonZero(
		fwd.CommissionTaxDeduction, fwd.Commission, fwd.TCS, fwd.TDS,
		fwd.LogisticsDeduction, fwd.PrepaidCharge, fwd.PostpaidCharge,
		fwd.PrepaidAmount, fwd.PostpaidAmount,
		fwd.ActualSettlement, fwd.ExpectedSettlement, fwd.PendingSettlement,
	)

	order.SettlementDate = fwd.SettlementDate
	order.UTRPrepaid = fwd.UTRPrepaid
	order.UTRPostpaid = fwd.UTRPostpaid

	if fwd.SKU != "" {
		order.SKU = fwd.SKU
	}
	if fwd.ArticleType != "" {
		order.ArticleType = fwd.ArticleType
	}
	if fwd.State != "" {
		order.State = fwd.State
	}
	if fwd.Zone != "" {
		order.Zone = fwd.Zone
	}
	if order.PacketID == "" {
		order.PacketID = fwd.PacketID
	}
}

// applyReverse copies the reverse leg onto the order. RevActual keeps the
// report's sign: negative means money reclaimed from the seller.
func applyReverse(order *models.OrderRecord, rev *models.GatewayRecord) {
	order.RevCommissionTax = rev.CommissionTaxDeduction
	order.RevCommission = rev.Commission
	order.RevTCS = rev.TCS
	order.RevTDS = rev.TDS
	order.RevLogistics = rev.LogisticsDeduction
	order.RevPrepaidCharge = rev.PrepaidCharge
	order.RevPostpaidCharge = rev.PostpaidCharge
	order.RevActual = rev.ActualSettlement
	order.RevPending = rev.PendingSettlement
	order.RevPresent = anyNonZero(
		rev.CommissionTaxDeduction, rev.Commission, rev.TCS, rev.TDS,
		rev.LogisticsDeduction, rev.PrepaidCharge, rev.PostpaidCharge,
		rev.ActualSettlement, rev.PendingSettlement,
	)
	order.ReturnType = rev.ReturnType
	order.RevSettlementDate = rev.SettlementDate

	if order.Zone == "" {
		order.Zone = rev.Zone
	}
}

func anyNonZero(values ...decimal.Decimal) bool {
	for _, v := range values {
		if !v.IsZero() {
			return true
		}
	}
	return false
}
