package settlement

import (
	"testing"

	"seller-payout-reconciler/internal/models"
	"seller-payout-reconciler/pkg/logger"

	"github.com/shopspring/decimal"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func newTestCalculator() *Calculator {
	return NewCalculator(logger.NewTestLogger())
}

func TestCompute_DeductionFormula(t *testing.T) {
	calc := newTestCalculator()

	order := &models.OrderRecord{
		OrderID:          "A2",
		SellerPrice:      dec(1000),
		FwdCommissionTax: dec(50),
		FwdLogistics:     dec(20),
		FwdActual:        dec(930),
		FwdPresent:       true,
	}

	calc.Compute([]*models.OrderRecord{order})

	if order.CalculatedPayment.String() != "930" {
		t.Errorf("CalculatedPayment = %s, want 930", order.CalculatedPayment)
	}
	if !order.Difference.IsZero() {
		t.Errorf("Difference = %s, want 0", order.Difference)
	}
}

func TestCompute_NegativeDeductionsUseAbsoluteValues(t *testing.T) {
	calc := newTestCalculator()

	// Some report revisions carry deductions as negative amounts.
	order := &models.OrderRecord{
		SellerPrice:      dec(1000),
		FwdCommissionTax: dec(-50),
		FwdLogistics:     dec(-20),
		FwdActual:        dec(930),
		FwdPresent:       true,
	}

	calc.Compute([]*models.OrderRecord{order})

	if order.CalculatedPayment.String() != "930" {
		t.Errorf("CalculatedPayment = %s, want 930", order.CalculatedPayment)
	}
}

func TestCompute_CommissionFallback(t *testing.T) {
	calc := newTestCalculator()

	// The pre-combined commission column is all zero across the table, so the
	// component fields reconstruct it.
	orders := []*models.OrderRecord{
		{
			SellerPrice:   dec(1000),
			FwdCommission: dec(-30),
			FwdTCS:        dec(10),
			FwdTDS:        dec(10),
			FwdActual:     dec(950),
			FwdPresent:    true,
		},
	}

	calc.Compute(orders)

	if orders[0].CalculatedPayment.String() != "950" {
		t.Errorf("CalculatedPayment = %s, want 950 (1000 - 30 - 10 - 10)", orders[0].CalculatedPayment)
	}
}

func TestCompute_NoFallbackWhenCompositePresent(t *testing.T) {
	calc := newTestCalculator()

	// One row with a non-zero composite disables the fallback for the whole
	// table, including rows whose composite is zero.
	orders := []*models.OrderRecord{
		{SellerPrice: dec(1000), FwdCommissionTax: dec(50), FwdActual: dec(950)},
		{SellerPrice: dec(500), FwdCommission: dec(99), FwdActual: dec(500)},
	}

	calc.Compute(orders)

	if orders[1].CalculatedPayment.String() != "500" {
		t.Errorf("CalculatedPayment = %s, want 500 (component fields ignored)", orders[1].CalculatedPayment)
	}
}

func TestCompute_ReverseLegAsymmetry(t *testing.T) {
	calc := newTestCalculator()

	order := &models.OrderRecord{
		SellerPrice:       dec(1000),
		FwdActual:         dec(900),
		RevCommissionTax:  dec(-40),
		RevLogistics:      dec(15),
		RevPrepaidCharge:  dec(5),
		RevPostpaidCharge: dec(10),
		RevPresent:        true,
	}

	calc.Compute([]*models.OrderRecord{order})

	// 40 - 15 + 5 + 10: logistics reduces the reclaimed amount.
	if order.RevDeducted.String() != "40" {
		t.Errorf("RevDeducted = %s, want 40", order.RevDeducted)
	}
	if order.NetAmount.String() != "860" {
		t.Errorf("NetAmount = %s, want 860 (900 - 40)", order.NetAmount)
	}
}

func TestCompute_ZeroFilledOrder(t *testing.T) {
	calc := newTestCalculator()

	order := &models.OrderRecord{OrderID: "A1", SellerPrice: dec(1000)}

	calc.Compute([]*models.OrderRecord{order})

	if order.CalculatedPayment.String() != "1000" {
		t.Errorf("CalculatedPayment = %s, want 1000", order.CalculatedPayment)
	}
	if order.Difference.String() != "1000" {
		t.Errorf("Difference = %s, want 1000", order.Difference)
	}
	if !order.NetAmount.Equal(dec(0)) {
		t.Errorf("NetAmount = %s, want 0", order.NetAmount)
	}
}

func TestClassify_SalesBranch(t *testing.T) {
	tests := []struct {
		name  string
		order *models.OrderRecord
		want  models.PaymentStatus
	}{
		{
			name:  "no payment received",
			order: &models.OrderRecord{Difference: dec(1000)},
			want:  models.StatusSalesNoPayment,
		},
		{
			name:  "settlement pending",
			order: &models.OrderRecord{FwdPresent: true, FwdPending: dec(50)},
			want:  models.StatusSalesSettlementPending,
		},
		{
			name:  "matched at zero difference",
			order: &models.OrderRecord{FwdPresent: true},
			want:  models.StatusSalesMatched,
		},
		{
			name:  "matched at inclusive boundary",
			order: &models.OrderRecord{FwdPresent: true, Difference: dec(2.00)},
			want:  models.StatusSalesMatched,
		},
		{
			name:  "underpaid just past boundary",
			order: &models.OrderRecord{FwdPresent: true, Difference: dec(2.01)},
			want:  models.StatusSalesUnderpaid,
		},
		{
			name:  "underpaid",
			order: &models.OrderRecord{FwdPresent: true, Difference: dec(30)},
			want:  models.StatusSalesUnderpaid,
		},
		{
			name:  "overpaid",
			order: &models.OrderRecord{FwdPresent: true, Difference: dec(-5)},
			want:  models.StatusSalesOverpaid,
		},
		{
			name:  "matched at negative boundary",
			order: &models.OrderRecord{FwdPresent: true, Difference: dec(-2.00)},
			want:  models.StatusSalesMatched,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.order); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_RTOBranch(t *testing.T) {
	rto := models.OrderType{RTO: true}

	tests := []struct {
		name  string
		order *models.OrderRecord
		want  models.PaymentStatus
	}{
		{
			name:  "no forward payment",
			order: &models.OrderRecord{Type: rto},
			want:  models.StatusRTONoForwardPayment,
		},
		{
			name:  "forward pending",
			order: &models.OrderRecord{Type: rto, FwdPresent: true, FwdPending: dec(50)},
			want:  models.StatusRTOForwardPending,
		},
		{
			name:  "forward settled within tolerance",
			order: &models.OrderRecord{Type: rto, FwdPresent: true, Difference: dec(1.50)},
			want:  models.StatusRTOForwardSettled,
		},
		{
			name:  "amount mismatch",
			order: &models.OrderRecord{Type: rto, FwdPresent: true, Difference: dec(100)},
			want:  models.StatusRTOAmountMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.order); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_RTBranch(t *testing.T) {
	rt := models.OrderType{RT: true}

	tests := []struct {
		name  string
		order *models.OrderRecord
		want  models.PaymentStatus
	}{
		{
			name:  "no reverse entry",
			order: &models.OrderRecord{Type: rt, FwdPresent: true},
			want:  models.StatusRTNoReverseEntry,
		},
		{
			name:  "reverse pending",
			order: &models.OrderRecord{Type: rt, RevPresent: true, RevPending: dec(20)},
			want:  models.StatusRTReversePending,
		},
		{
			name:  "reverse settled",
			order: &models.OrderRecord{Type: rt, RevPresent: true, RevActual: dec(-400)},
			want:  models.StatusRTReverseSettled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.order); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_RTOWinsOverRT(t *testing.T) {
	order := &models.OrderRecord{
		Type:       models.OrderType{RTO: true, RT: true},
		FwdPresent: true,
		RevPresent: true,
	}

	if got := Classify(order); got != models.StatusRTOForwardSettled {
		t.Errorf("Classify() = %q, RTO branch must win for composite returns", got)
	}
}

func TestClassifyAll_Totality(t *testing.T) {
	classifier := NewClassifier(logger.NewTestLogger())

	orders := []*models.OrderRecord{
		{},
		{Type: models.OrderType{RTO: true}},
		{Type: models.OrderType{RT: true}},
		{FwdPresent: true, Difference: dec(500)},
	}

	counts := classifier.ClassifyAll(orders)

	total := 0
	for status, n := range counts {
		if !status.IsValid() {
			t.Errorf("unknown status %q in counts", status)
		}
		total += n
	}
	if total != len(orders) {
		t.Errorf("classified %d of %d orders", total, len(orders))
	}
	for _, o := range orders {
		if o.Status == "" {
			t.Errorf("order left unclassified: %+v", o)
		}
	}
}
