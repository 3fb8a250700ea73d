package parsers

import (
	"seller-payout-reconciler/internal/tables"
)

// Semantic role names shared between the role tables and the normalizers.
const (
	RoleOrderID        = "order id"
	RolePacketID       = "packet id"
	RoleSKU            = "sku"
	RoleArticleType    = "article type"
	RoleState          = "state"
	RoleZone           = "zone"
	RolePaymentMethod  = "payment method"
	RoleOrderStatus    = "order status"
	RoleSellerPrice    = "seller price"
	RoleInvoiceAmount  = "invoice amount"
	RoleShipmentValue  = "shipment value"
	RoleBaseValue      = "base value"
	RoleMRP            = "mrp"
	RoleDiscount       = "discount"
	RoleTaxAmount      = "tax amount"
	RoleTCS            = "tcs"
	RoleTDS            = "tds"
	RoleNetAmount      = "net amount"
	RoleCommissionTax  = "commission tax deduction"
	RoleCommission     = "commission"
	RoleLogistics      = "logistics deduction"
	RolePrepaidAmount  = "prepaid amount"
	RolePostpaidAmount = "postpaid amount"
	RoleActual         = "actual settlement"
	RoleExpected       = "expected settlement"
	RolePending        = "pending settlement"
	RoleSellerAmount   = "seller product amount"
	RoleCommissionPct  = "commission percentage"
	RoleShippingFee    = "shipping fee"
	RoleSettlementDate = "settlement date"
	RoleUTRPrepaid     = "utr prepaid"
	RoleUTRPostpaid    = "utr postpaid"
	RoleReturnType     = "return type"
	RoleReturnDate     = "return date"
	RoleReturnValue    = "return value"
)

// Logical table names used in diagnostics and error messages.
const (
	TableSales      = "sales"
	TablePGForward  = "pg forward"
	TablePGReverse  = "pg reverse"
	TableRTO        = "courier return"
	TableRT         = "customer return"
)

// SalesRoles returns the column roles of the Sales master sheet. Positional
// fallbacks mirror the seller-portal export layout: the order id sits in
// column F and the seller price in column AU.
func SalesRoles() []tables.Role {
	return []tables.Role{
		{
			Name:          RoleOrderID,
			Candidates:    []string{"order_release_id", "order_id", "orderreleaseid", "Order_Release_Id"},
			FallbackIndex: 5, // column F
			Required:      true,
		},
		{
			Name:          RoleSellerPrice,
			Candidates:    []string{"seller_price", "Seller_Price", "seller price"},
			FallbackIndex: 46, // column AU
			Required:      true,
		},
		{Name: RolePacketID, Candidates: []string{"packet_id"}, FallbackIndex: -1},
		{Name: RoleSKU, Candidates: []string{"SKU", "sku_code", "sku"}, FallbackIndex: -1},
		{Name: RoleArticleType, Candidates: []string{"article_type"}, FallbackIndex: -1},
		{Name: RoleState, Candidates: []string{"state", "shipping_state"}, FallbackIndex: -1},
		{Name: RolePaymentMethod, Candidates: []string{"payment_method"}, FallbackIndex: -1},
		{Name: RoleOrderStatus, Candidates: []string{"order_status"}, FallbackIndex: -1},
		{Name: RoleInvoiceAmount, Candidates: []string{"invoiceamount", "invoice_amount"}, FallbackIndex: -1},
		{Name: RoleShipmentValue, Candidates: []string{"shipment_value"}, FallbackIndex: -1},
		{Name: RoleBaseValue, Candidates: []string{"base_value"}, FallbackIndex: -1},
		{Name: RoleMRP, Candidates: []string{"mrp"}, FallbackIndex: -1},
		{Name: RoleDiscount, Candidates: []string{"discount"}, FallbackIndex: -1},
		{Name: RoleTaxAmount, Candidates: []string{"tax_amount"}, FallbackIndex: -1},
		{Name: RoleTCS, Candidates: []string{"tcs_amount"}, FallbackIndex: -1},
		{Name: RoleTDS, Candidates: []string{"tds_amount"}, FallbackIndex: -1},
		{Name: RoleNetAmount, Candidates: []string{"net_amount"}, FallbackIndex: -1},
	}
}

// GatewayRoles returns the column roles shared by the PG Forward and PG
// Reverse reports. The reverse report additionally carries return type and
// date, harmless absences on the forward side.
func GatewayRoles() []tables.Role {
	return []tables.Role{
		{
			Name:          RoleOrderID,
			Candidates:    []string{"order_release_id", "order_id"},
			FallbackIndex: 0, // column A
			Required:      true,
		},
		{Name: RolePacketID, Candidates: []string{"packet_id"}, FallbackIndex: -1},
		{Name: RoleSKU, Candidates: []string{"sku_code", "SKU", "sku"}, FallbackIndex: -1},
		{Name: RoleArticleType, Candidates: []string{"article_type"}, FallbackIndex: -1},
		{Name: RoleState, Candidates: []string{"shipping_state"}, FallbackIndex: -1},
		{Name: RoleZone, Candidates: []string{"shipment_zone_classification"}, FallbackIndex: -1},
		{Name: RoleCommissionTax, Candidates: []string{"total_commission_plus_tcs_tds_deduction"}, FallbackIndex: -1},
		{Name: RoleCommission, Candidates: []string{"total_commission"}, FallbackIndex: -1},
		{Name: RoleTCS, Candidates: []string{"tcs_amount"}, FallbackIndex: -1},
		{Name: RoleTDS, Candidates: []string{"tds_amount"}, FallbackIndex: -1},
		{Name: RoleLogistics, Candidates: []string{"total_logistics_deduction"}, FallbackIndex: -1},
		// prepaid_amount/postpaid_amount are the payment-mode settlement
		// values at order-value scale, not deduction charges; they feed the
		// payment-mode split and must never enter the payout formula.
		{Name: RolePrepaidAmount, Candidates: []string{"prepaid_amount", "prepaid_payment"}, FallbackIndex: -1},
		{Name: RolePostpaidAmount, Candidates: []string{"postpaid_amount", "postpaid_payment"}, FallbackIndex: -1},
		{
			Name:          RoleActual,
			Candidates:    []string{"total_actual_settlement"},
			FallbackIndex: 40, // column AO
		},
		{Name: RoleExpected, Candidates: []string{"total_expected_settlement"}, FallbackIndex: -1},
		{Name: RolePending, Candidates: []string{"amount_pending_settlement"}, FallbackIndex: -1},
		{Name: RoleSellerAmount, Candidates: []string{"seller_product_amount"}, FallbackIndex: -1},
		{Name: RoleMRP, Candidates: []string{"mrp"}, FallbackIndex: -1},
		{Name: RoleCommissionPct, Candidates: []string{"commission_percentage"}, FallbackIndex: -1},
		{Name: RoleShippingFee, Candidates: []string{"shipping_fee"}, FallbackIndex: -1},
		{
			Name: RoleSettlementDate,
			Candidates: []string{
				"settlement_date_prepaid_payment",
				"settlement_date_postpaid_payment",
				"settlement_date",
			},
			FallbackIndex: -1,
		},
		{Name: RoleUTRPrepaid, Candidates: []string{"bank_utr_no_prepaid_payment"}, FallbackIndex: -1},
		{Name: RoleUTRPostpaid, Candidates: []string{"bank_utr_no_postpaid_payment"}, FallbackIndex: -1},
		{Name: RoleReturnType, Candidates: []string{"return_type"}, FallbackIndex: -1},
		{Name: RoleReturnDate, Candidates: []string{"return_date"}, FallbackIndex: -1},
	}
}

// RTORoles returns the column roles of the supplementary courier-return
// report: the order id sits in column E and the reported value in column BM.
func RTORoles() []tables.Role {
	return []tables.Role{
		{
			Name:          RoleOrderID,
			Candidates:    []string{"order_release_id", "order_id"},
			FallbackIndex: 4, // column E
			Required:      true,
		},
		{
			Name:          RoleReturnValue,
			Candidates:    []string{"total_actual_settlement"},
			FallbackIndex: 64, // column BM
		},
	}
}

// RTRoles returns the column roles of the supplementary customer-return
// report: the order id sits in column F and the reported value in column BC.
func RTRoles() []tables.Role {
	return []tables.Role{
		{
			Name:          RoleOrderID,
			Candidates:    []string{"order_release_id", "order_id"},
			FallbackIndex: 5, // column F
			Required:      true,
		},
		{
			Name:          RoleReturnValue,
			Candidates:    []string{"total_actual_settlement"},
			FallbackIndex: 54, // column BC
		},
	}
}
