package joiner

import (
	"testing"

	"seller-payout-reconciler/internal/models"
	"seller-payout-reconciler/pkg/logger"

	"github.com/shopspring/decimal"
)

func newTestJoiner() *Joiner {
	return New(logger.NewTestLogger())
}

func sale(id string, price float64) *models.SalesRecord {
	return &models.SalesRecord{OrderID: id, SellerPrice: decimal.NewFromFloat(price)}
}

func TestJoin_LeftOuterZeroFill(t *testing.T) {
	j := newTestJoiner()

	sales := []*models.SalesRecord{sale("A1", 1000), sale("A2", 500)}
	forward := []*models.GatewayRecord{
		{OrderID: "A1", ActualSettlement: decimal.NewFromInt(930)},
		{OrderID: "GHOST", ActualSettlement: decimal.NewFromInt(99)},
	}

	result := j.Join(sales, forward, nil, nil, nil)

	if result.DistinctOrders != 2 {
		t.Fatalf("DistinctOrders = %d, want 2", result.DistinctOrders)
	}
	if result.FwdMatched != 1 || result.FwdUnmatched != 1 {
		t.Errorf("fwd matched/unmatched = %d/%d, want 1/1", result.FwdMatched, result.FwdUnmatched)
	}

	a2 := result.Orders[1]
	if a2.OrderID != "A2" {
		t.Fatalf("order sequence not preserved, got %s", a2.OrderID)
	}
	if !a2.FwdActual.IsZero() || a2.FwdPresent {
		t.Errorf("unmatched order should be zero-filled and not present, got actual=%s present=%v",
			a2.FwdActual, a2.FwdPresent)
	}
}

func TestJoin_DuplicateSalesFirstWins(t *testing.T) {
	j := newTestJoiner()

	sales := []*models.SalesRecord{sale("A1", 1000), sale("A1", 777)}

	result := j.Join(sales, nil, nil, nil, nil)

	if result.DistinctOrders != 1 || result.DuplicateOrders != 1 {
		t.Fatalf("distinct/dup = %d/%d, want 1/1", result.DistinctOrders, result.DuplicateOrders)
	}
	if result.Orders[0].SellerPrice.String() != "1000" {
		t.Errorf("first occurrence should win, got price %s", result.Orders[0].SellerPrice)
	}
}

func TestJoin_AllZeroForwardNotPresent(t *testing.T) {
	j := newTestJoiner()

	// A forward row exists but every monetary field is zero: the order counts
	// as matched yet FwdPresent stays false.
	sales := []*models.SalesRecord{sale("A1", 1000)}
	forward := []*models.GatewayRecord{{OrderID: "A1"}}

	result := j.Join(sales, forward, nil, nil, nil)

	if result.FwdMatched != 1 {
		t.Fatalf("FwdMatched = %d, want 1", result.FwdMatched)
	}
	if result.Orders[0].FwdPresent {
		t.Error("all-zero forward row must not set FwdPresent")
	}
}

func TestJoin_ReturnTagging(t *testing.T) {
	j := newTestJoiner()

	sales := []*models.SalesRecord{sale("A1", 100), sale("A2", 200), sale("A3", 300)}
	rto := []*models.ReturnMembership{{OrderID: "A1"}, {OrderID: "A3"}}
	rt := []*models.ReturnMembership{{OrderID: "A3"}}

	result := j.Join(sales, nil, nil, rto, rt)

	want := []string{"Sales+RTO", "Sales", "Sales+RTO+RT"}
	for i, w := range want {
		if got := result.Orders[i].Type.String(); got != w {
			t.Errorf("order %s type = %q, want %q", result.Orders[i].OrderID, got, w)
		}
	}
}

func TestJoin_DescriptiveFieldsPreferForward(t *testing.T) {
	j := newTestJoiner()

	sales := []*models.SalesRecord{{
		OrderID:     "A1",
		SKU:         "SKU-SALES",
		State:       "Karnataka",
		SellerPrice: decimal.NewFromInt(100),
	}}
	forward := []*models.GatewayRecord{{
		OrderID:          "A1",
		SKU:              "SKU-FWD",
		Zone:             "South",
		ActualSettlement: decimal.NewFromInt(90),
	}}

	result := j.Join(sales, forward, nil, nil, nil)

	got := result.Orders[0]
	if got.SKU != "SKU-FWD" {
		t.Errorf("SKU = %q, want forward value", got.SKU)
	}
	if got.State != "Karnataka" {
		t.Errorf("State = %q, empty forward field must not clobber sales value", got.State)
	}
	if got.Zone != "South" {
		t.Errorf("Zone = %q, want South", got.Zone)
	}
}

func TestJoin_ReverseLeg(t *testing.T) {
	j := newTestJoiner()

	sales := []*models.SalesRecord{sale("A1", 100)}
	reverse := []*models.GatewayRecord{{
		OrderID:          "A1",
		ActualSettlement: decimal.NewFromInt(-60),
		ReturnType:       "return_refund",
	}}

	result := j.Join(sales, nil, reverse, nil, nil)

	got := result.Orders[0]
	if !got.RevPresent {
		t.Error("reverse row with non-zero actual should set RevPresent")
	}
	if got.RevActual.String() != "-60" {
		t.Errorf("RevActual = %s, sign must be preserved", got.RevActual)
	}
	if got.ReturnType != "return_refund" {
		t.Errorf("ReturnType = %q", got.ReturnType)
	}
}

// The two legs settle on their own dates, so the reverse date lands in its
// own field instead of overwriting the forward one.
func TestJoin_SettlementDatesPerLeg(t *testing.T) {
	j := newTestJoiner()

	sales := []*models.SalesRecord{sale("A1", 100)}
	forward := []*models.GatewayRecord{{
		OrderID:          "A1",
		ActualSettlement: decimal.NewFromInt(90),
		SettlementDate:   "2025-01-15",
	}}
	reverse := []*models.GatewayRecord{{
		OrderID:          "A1",
		ActualSettlement: decimal.NewFromInt(-40),
		SettlementDate:   "2025-01-22",
	}}

	result := j.Join(sales, forward, reverse, nil, nil)

	got := result.Orders[0]
	if got.SettlementDate != "2025-01-15" {
		t.Errorf("SettlementDate = %q, want forward date", got.SettlementDate)
	}
	if got.RevSettlementDate != "2025-01-22" {
		t.Errorf("RevSettlementDate = %q, want 2025-01-22", got.RevSettlementDate)
	}
}

// Prepaid and postpaid settlement amounts travel with the forward leg and
// count toward forward presence on their own.
func TestJoin_ForwardPaymentModeAmounts(t *testing.T) {
	j := newTestJoiner()

	sales := []*models.SalesRecord{sale("A1", 100)}
	forward := []*models.GatewayRecord{{
		OrderID:       "A1",
		PrepaidAmount: decimal.NewFromInt(95),
	}}

	result := j.Join(sales, forward, nil, nil, nil)

	got := result.Orders[0]
	if got.FwdPrepaidAmount.String() != "95" {
		t.Errorf("FwdPrepaidAmount = %s, want 95", got.FwdPrepaidAmount)
	}
	if !got.FwdPostpaidAmount.IsZero() {
		t.Errorf("FwdPostpaidAmount = %s, want zero", got.FwdPostpaidAmount)
	}
	if !got.FwdPresent {
		t.Error("non-zero prepaid amount should set FwdPresent")
	}
}
