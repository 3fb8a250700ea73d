// Package models defines the typed records flowing through the
// reconciliation pipeline: normalized per-source rows, the joined OrderRecord
// that is the central entity, the composite order-type tag, and the payment
// status taxonomy.
package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderType tags an order with its return memberships. The base tag is
// always Sales; RTO (courier-initiated return) and RT (customer-initiated
// return) memberships combine, they are not exclusive.
type OrderType struct {
	RTO bool `json:"rto"`
	RT  bool `json:"rt"`
}

// String renders the composite tag: "Sales", "Sales+RTO", "Sales+RT" or
// "Sales+RTO+RT".
func (t OrderType) String() string {
	parts := []string{"Sales"}
	if t.RTO {
		parts = append(parts, "RTO")
	}
	if t.RT {
		parts = append(parts, "RT")
	}
	return strings.Join(parts, "+")
}

// IsPlainSales reports whether the order carries no return membership.
func (t OrderType) IsPlainSales() bool {
	return !t.RTO && !t.RT
}

// PaymentStatus is the terminal classification of an order's settlement
// state. Classification is total: every order gets exactly one status.
type PaymentStatus string

const (
	StatusRTONoForwardPayment PaymentStatus = "RTO – No Forward Payment"
	StatusRTOForwardPending   PaymentStatus = "RTO – Forward Pending"
	StatusRTOForwardSettled   PaymentStatus = "RTO – Forward Settled"
	StatusRTOAmountMismatch   PaymentStatus = "RTO – Amount Mismatch"

	StatusRTNoReverseEntry PaymentStatus = "RT – No Reverse Entry"
	StatusRTReversePending PaymentStatus = "RT – Reverse Pending"
	StatusRTReverseSettled PaymentStatus = "RT – Reverse Settled"

	StatusSalesNoPayment         PaymentStatus = "Sales – No Payment Received"
	StatusSalesSettlementPending PaymentStatus = "Sales – Settlement Pending"
	StatusSalesMatched           PaymentStatus = "Sales – Matched"
	StatusSalesUnderpaid         PaymentStatus = "Sales – Underpaid"
	StatusSalesOverpaid          PaymentStatus = "Sales – Overpaid"
)

// AllStatuses lists every status in classification-table order, used by the
// aggregator to emit summary rows in a stable order.
func AllStatuses() []PaymentStatus {
	return []PaymentStatus{
		StatusRTONoForwardPayment,
		StatusRTOForwardPending,
		StatusRTOForwardSettled,
		StatusRTOAmountMismatch,
		StatusRTNoReverseEntry,
		StatusRTReversePending,
		StatusRTReverseSettled,
		StatusSalesNoPayment,
		StatusSalesSettlementPending,
		StatusSalesMatched,
		StatusSalesUnderpaid,
		StatusSalesOverpaid,
	}
}

// String returns the string representation of the status.
func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the enumerated values.
func (s PaymentStatus) IsValid() bool {
	for _, known := range AllStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// SalesRecord is one normalized row of the Sales master sheet.
type SalesRecord struct {
	OrderID       string `json:"order_id"`
	PacketID      string `json:"packet_id,omitempty"`
	SKU           string `json:"sku,omitempty"`
	ArticleType   string `json:"article_type,omitempty"`
	State         string `json:"state,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	OrderStatus   string `json:"order_status,omitempty"`

	SellerPrice   decimal.Decimal `json:"seller_price"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount"`
	ShipmentValue decimal.Decimal `json:"shipment_value"`
	BaseValue     decimal.Decimal `json:"base_value"`
	MRP           decimal.Decimal `json:"mrp"`
	Discount      decimal.Decimal `json:"discount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TCS           decimal.Decimal `json:"tcs_amount"`
	TDS           decimal.Decimal `json:"tds_amount"`
	NetAmount     decimal.Decimal `json:"net_amount"`
}

// Validate performs basic validation on the SalesRecord.
func (r *SalesRecord) Validate() error {
	if strings.TrimSpace(r.OrderID) == "" {
		return fmt.Errorf("sales record order id cannot be empty")
	}
	return nil
}

// GatewayRecord is one normalized row of a payment gateway report. The
// forward report and the reverse report share this shape; reverse rows carry
// the return-only fields and a negative ActualSettlement (money reclaimed).
type GatewayRecord struct {
	OrderID     string `json:"order_id"`
	PacketID    string `json:"packet_id,omitempty"`
	SKU         string `json:"sku,omitempty"`
	ArticleType string `json:"article_type,omitempty"`
	State       string `json:"state,omitempty"`
	Zone        string `json:"zone,omitempty"`

	// CommissionTaxDeduction is the pre-combined commission+TCS+TDS column.
	// Some report revisions omit it; the calculator reconstructs it from the
	// three component fields below when the column is absent or all zero.
	CommissionTaxDeduction decimal.Decimal `json:"commission_tax_deduction"`
	Commission             decimal.Decimal `json:"commission"`
	TCS                    decimal.Decimal `json:"tcs_amount"`
	TDS                    decimal.Decimal `json:"tds_amount"`

	LogisticsDeduction decimal.Decimal `json:"logistics_deduction"`

	// PrepaidCharge and PostpaidCharge are additional per-mode deduction
	// charges. No column of the current gateway report revisions maps to
	// them, so they stay zero; the settlement formula keeps the terms.
	PrepaidCharge  decimal.Decimal `json:"prepaid_charge"`
	PostpaidCharge decimal.Decimal `json:"postpaid_charge"`

	// PrepaidAmount and PostpaidAmount are the payment-mode settlement
	// values at order-value scale. They feed the payment-mode split, never
	// the payout formula.
	PrepaidAmount  decimal.Decimal `json:"prepaid_amount"`
	PostpaidAmount decimal.Decimal `json:"postpaid_amount"`

	ActualSettlement   decimal.Decimal `json:"actual_settlement"`
	ExpectedSettlement decimal.Decimal `json:"expected_settlement"`
	PendingSettlement  decimal.Decimal `json:"pending_settlement"`

	SellerProductAmount  decimal.Decimal `json:"seller_product_amount"`
	MRP                  decimal.Decimal `json:"mrp"`
	CommissionPercentage decimal.Decimal `json:"commission_percentage"`
	ShippingFee          decimal.Decimal `json:"shipping_fee"`

	SettlementDate string `json:"settlement_date,omitempty"`
	UTRPrepaid     string `json:"utr_prepaid,omitempty"`
	UTRPostpaid    string `json:"utr_postpaid,omitempty"`

	// Reverse-report only.
	ReturnType string `json:"return_type,omitempty"`
	ReturnDate string `json:"return_date,omitempty"`
}

// Validate performs basic validation on the GatewayRecord.
func (r *GatewayRecord) Validate() error {
	if strings.TrimSpace(r.OrderID) == "" {
		return fmt.Errorf("gateway record order id cannot be empty")
	}
	return nil
}

// ReturnMembership is one row of the supplementary courier-return (RTO) or
// customer-return (RT) report: only the order id and the reported return
// value matter for tagging.
type ReturnMembership struct {
	OrderID string          `json:"order_id"`
	Value   decimal.Decimal `json:"value"`
}

// OrderRecord is the central post-join entity: one row per distinct Sales
// order id, with gateway fields zero-filled when no counterpart row exists.
type OrderRecord struct {
	OrderID     string    `json:"order_id"`
	PacketID    string    `json:"packet_id,omitempty"`
	SKU         string    `json:"sku,omitempty"`
	ArticleType string    `json:"article_type,omitempty"`
	State       string    `json:"state,omitempty"`
	Zone        string    `json:"zone,omitempty"`
	Type        OrderType `json:"order_type"`

	SellerPrice   decimal.Decimal `json:"seller_price"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount"`
	MRP           decimal.Decimal `json:"mrp"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"payment_method,omitempty"`

	// Forward leg (zero when no forward row matched).
	FwdCommissionTax  decimal.Decimal `json:"fwd_commission_tax"`
	FwdCommission     decimal.Decimal `json:"fwd_commission"`
	FwdTCS            decimal.Decimal `json:"fwd_tcs"`
	FwdTDS            decimal.Decimal `json:"fwd_tds"`
	FwdLogistics      decimal.Decimal `json:"fwd_logistics"`
	FwdPrepaidCharge  decimal.Decimal `json:"fwd_prepaid_charge"`
	FwdPostpaidCharge decimal.Decimal `json:"fwd_postpaid_charge"`
	FwdPrepaidAmount  decimal.Decimal `json:"fwd_prepaid_amount"`
	FwdPostpaidAmount decimal.Decimal `json:"fwd_postpaid_amount"`
	FwdActual         decimal.Decimal `json:"fwd_actual"`
	FwdExpected       decimal.Decimal `json:"fwd_expected"`
	FwdPending        decimal.Decimal `json:"fwd_pending"`

	// FwdPresent means the forward source effectively paid something:
	// some forward monetary field is non-zero post-fill. A zero-filled join
	// row and a genuine all-zero match both count as "not present".
	FwdPresent bool `json:"fwd_present"`

	// Reverse leg (zero when no reverse row matched). RevActual keeps the
	// sign the report uses: negative means money reclaimed.
	RevCommissionTax  decimal.Decimal `json:"rev_commission_tax"`
	RevCommission     decimal.Decimal `json:"rev_commission"`
	RevTCS            decimal.Decimal `json:"rev_tcs"`
	RevTDS            decimal.Decimal `json:"rev_tds"`
	RevLogistics      decimal.Decimal `json:"rev_logistics"`
	RevPrepaidCharge  decimal.Decimal `json:"rev_prepaid_charge"`
	RevPostpaidCharge decimal.Decimal `json:"rev_postpaid_charge"`
	RevActual         decimal.Decimal `json:"rev_actual"`
	RevPending        decimal.Decimal `json:"rev_pending"`
	RevPresent        bool            `json:"rev_present"`
	ReturnType        string          `json:"return_type,omitempty"`
	RevSettlementDate string          `json:"rev_settlement_date,omitempty"`

	SettlementDate string `json:"settlement_date,omitempty"`
	UTRPrepaid     string `json:"utr_prepaid,omitempty"`
	UTRPostpaid    string `json:"utr_postpaid,omitempty"`

	// Derived by the settlement calculator.
	CalculatedPayment decimal.Decimal `json:"calculated_payment"`
	Difference        decimal.Decimal `json:"difference"`
	FwdReceived       decimal.Decimal `json:"fwd_received"`
	RevDeducted       decimal.Decimal `json:"rev_deducted"`
	NetAmount         decimal.Decimal `json:"net_amount"`

	Status PaymentStatus `json:"status"`
}

// String returns a short representation for logs and debugging.
func (r *OrderRecord) String() string {
	return fmt.Sprintf("Order{ID: %s, Type: %s, SellerPrice: %s, Calculated: %s, Actual: %s, Status: %s}",
		r.OrderID, r.Type, r.SellerPrice.StringFixed(2),
		r.CalculatedPayment.StringFixed(2), r.FwdActual.StringFixed(2), r.Status)
}
