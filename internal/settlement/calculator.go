// Package settlement derives the expected payout per order from the gateway
// deduction fields, compares it against the disbursed amount and classifies
// every order into one terminal payment status.
package settlement

import (
	"seller-payout-reconciler/internal/models"
	"seller-payout-reconciler/pkg/logger"

	"github.com/shopspring/decimal"
)

// MatchTolerance is the settlement tolerance band in rupees. An absolute
// difference at or below this value is rounding noise in the upstream
// reports, not a real discrepancy.
var MatchTolerance = decimal.NewFromInt(2)

// moneyScale is the rounding scale for derived currency amounts.
const moneyScale = 2

// Calculator computes the derived settlement fields on joined orders.
type Calculator struct {
	logger logger.Logger
}

// NewCalculator creates a Calculator. A nil logger falls back to the global
// instance.
func NewCalculator(log logger.Logger) *Calculator {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Calculator{logger: log.WithComponent("settlement_calculator")}
}

// Compute fills CalculatedPayment, Difference, FwdReceived, RevDeducted and
// NetAmount on every order, in place. The commission fallback decision is
// table-wide: some report revisions omit the pre-combined commission column,
// leaving it absent or all zero, in which case the component fields
// reconstruct it for every row.
func (c *Calculator) Compute(orders []*models.OrderRecord) {
	fwdFallback := needsCommissionFallback(orders, func(o *models.OrderRecord) decimal.Decimal {
		return o.FwdCommissionTax
	})
	revFallback := needsCommissionFallback(orders, func(o *models.OrderRecord) decimal.Decimal {
		return o.RevCommissionTax
	})

	if fwdFallback {
		c.logger.Warn("Forward commission composite column absent or all zero, reconstructing from commission + TCS + TDS")
	}
	if revFallback {
		c.logger.Debug("Reverse commission composite column absent or all zero, reconstructing from components")
	}

	for _, o := range orders {
		c.computeOrder(o, fwdFallback, revFallback)
	}
}

func (c *Calculator) computeOrder(o *models.OrderRecord, fwdFallback, revFallback bool) {
	fwdCommTax := o.FwdCommissionTax
	if fwdFallback {
		fwdCommTax = o.FwdCommission.Abs().Add(o.FwdTCS.Abs()).Add(o.FwdTDS.Abs())
	}

	o.CalculatedPayment = o.SellerPrice.
		Sub(fwdCommTax.Abs()).
		Sub(o.FwdLogistics.Abs()).
		Sub(o.FwdPrepaidCharge.Abs()).
		Sub(o.FwdPostpaidCharge.Abs()).
		Round(moneyScale)

	o.Difference = o.CalculatedPayment.Sub(o.FwdActual).Round(moneyScale)
	o.FwdReceived = o.FwdActual

	revCommTax := o.RevCommissionTax
	if revFallback {
		revCommTax = o.RevCommission.Abs().Add(o.RevTCS.Abs()).Add(o.RevTDS.Abs())
	}

	// Logistics is subtracted on the reverse leg: on a return, the logistics
	// deduction reduces the amount reclaimed from the seller.
	o.RevDeducted = revCommTax.Abs().
		Sub(o.RevLogistics.Abs()).
		Add(o.RevPrepaidCharge.Abs()).
		Add(o.RevPostpaidCharge.Abs()).
		Round(moneyScale)

	o.NetAmount = o.FwdReceived.Sub(o.RevDeducted).Round(moneyScale)
}

// needsCommissionFallback reports whether the pre-combined commission column
// should be ignored in favor of its component fields: true when it sums to
// exactly zero across the whole table.
func needsCommissionFallback(orders []*models.OrderRecord, field func(*models.OrderRecord) decimal.Decimal) bool {
	if len(orders) == 0 {
		return false
	}
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(field(o).Abs())
	}
	return sum.IsZero()
}
