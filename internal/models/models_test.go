package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrderType_String(t *testing.T) {
	tests := []struct {
		name string
		typ  OrderType
		want string
	}{
		{"plain sales", OrderType{}, "Sales"},
		{"courier return", OrderType{RTO: true}, "Sales+RTO"},
		{"customer return", OrderType{RT: true}, "Sales+RT"},
		{"both memberships", OrderType{RTO: true, RT: true}, "Sales+RTO+RT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOrderType_IsPlainSales(t *testing.T) {
	if !(OrderType{}).IsPlainSales() {
		t.Error("empty tag should be plain sales")
	}
	if (OrderType{RTO: true}).IsPlainSales() {
		t.Error("RTO tag is not plain sales")
	}
	if (OrderType{RT: true}).IsPlainSales() {
		t.Error("RT tag is not plain sales")
	}
}

func TestPaymentStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses() {
		if !s.IsValid() {
			t.Errorf("enumerated status %q should be valid", s)
		}
	}

	if PaymentStatus("").IsValid() {
		t.Error("empty status should not be valid")
	}
	if PaymentStatus("Sales – Unknown").IsValid() {
		t.Error("unknown status should not be valid")
	}
}

func TestAllStatuses_Count(t *testing.T) {
	if got := len(AllStatuses()); got != 12 {
		t.Errorf("taxonomy has %d statuses, want 12", got)
	}
}

func TestSalesRecord_Validate(t *testing.T) {
	r := &SalesRecord{OrderID: "A1", SellerPrice: decimal.NewFromInt(1000)}
	if err := r.Validate(); err != nil {
		t.Errorf("valid record failed validation: %v", err)
	}

	empty := &SalesRecord{OrderID: "   "}
	if err := empty.Validate(); err == nil {
		t.Error("blank order id should fail validation")
	}
}

func TestGatewayRecord_Validate(t *testing.T) {
	r := &GatewayRecord{OrderID: "A1"}
	if err := r.Validate(); err != nil {
		t.Errorf("valid record failed validation: %v", err)
	}

	if err := (&GatewayRecord{}).Validate(); err == nil {
		t.Error("blank order id should fail validation")
	}
}
