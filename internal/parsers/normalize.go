package parsers

import (
	"strings"

	"seller-payout-reconciler/internal/models"
	"seller-payout-reconciler/internal/tables"
	"seller-payout-reconciler/pkg/logger"
)

// NormalizeSales resolves the Sales table's column roles and produces one
// typed record per row. Rows with a blank order id are dropped: they cannot
// join and would only pollute the master set.
func NormalizeSales(t *tables.Table) ([]*models.SalesRecord, *tables.ColumnMap, error) {
	cm, err := tables.Resolve(t, SalesRoles())
	if err != nil {
		return nil, nil, err
	}

	log := logger.WithComponent("normalizer").WithField("table", t.Name)

	records := make([]*models.SalesRecord, 0, t.NumRows())
	skipped := 0
	for _, row := range t.Rows {
		orderID := cm.Identifier(row, RoleOrderID)
		if orderID == "" {
			skipped++
			continue
		}

		records = append(records, &models.SalesRecord{
			OrderID:       orderID,
			PacketID:      cm.Identifier(row, RolePacketID),
			SKU:           strings.TrimSpace(cm.Value(row, RoleSKU)),
			ArticleType:   strings.TrimSpace(cm.Value(row, RoleArticleType)),
			State:         strings.TrimSpace(cm.Value(row, RoleState)),
			PaymentMethod: strings.TrimSpace(cm.Value(row, RolePaymentMethod)),
			OrderStatus:   strings.TrimSpace(cm.Value(row, RoleOrderStatus)),
			SellerPrice:   cm.Money(row, RoleSellerPrice),
			InvoiceAmount: cm.Money(row, RoleInvoiceAmount),
			ShipmentValue: cm.Money(row, RoleShipmentValue),
			BaseValue:     cm.Money(row, RoleBaseValue),
			MRP:           cm.Money(row, RoleMRP),
			Discount:      cm.Money(row, RoleDiscount),
			TaxAmount:     cm.Money(row, RoleTaxAmount),
			TCS:           cm.Money(row, RoleTCS),
			TDS:           cm.Money(row, RoleTDS),
			NetAmount:     cm.Money(row, RoleNetAmount),
		})
	}

	if skipped > 0 {
		log.WithField("skipped_rows", skipped).Warn("Dropped rows without an order id")
	}

	return records, cm, nil
}

// NormalizeGateway resolves a payment gateway table (forward or reverse) and
// produces typed records. The two reports share a shape; reverse rows carry
// the return fields where present.
func NormalizeGateway(t *tables.Table) ([]*models.GatewayRecord, *tables.ColumnMap, error) {
	cm, err := tables.Resolve(t, GatewayRoles())
	if err != nil {
		return nil, nil, err
	}

	log := logger.WithComponent("normalizer").WithField("table", t.Name)

	records := make([]*models.GatewayRecord, 0, t.NumRows())
	skipped := 0
	for _, row := range t.Rows {
		orderID := cm.Identifier(row, RoleOrderID)
		if orderID == "" {
			skipped++
			continue
		}

		records = append(records, &models.GatewayRecord{
			OrderID:                orderID,
			PacketID:               cm.Identifier(row, RolePacketID),
			SKU:                    strings.TrimSpace(cm.Value(row, RoleSKU)),
			ArticleType:            strings.TrimSpace(cm.Value(row, RoleArticleType)),
			State:                  strings.TrimSpace(cm.Value(row, RoleState)),
			Zone:                   strings.TrimSpace(cm.Value(row, RoleZone)),
			CommissionTaxDeduction: cm.Money(row, RoleCommissionTax),
			Commission:             cm.Money(row, RoleCommission),
			TCS:                    cm.Money(row, RoleTCS),
			TDS:                    cm.Money(row, RoleTDS),
			LogisticsDeduction:     cm.Money(row, RoleLogistics),
			PrepaidAmount:          cm.Money(row, RolePrepaidAmount),
			PostpaidAmount:         cm.Money(row, RolePostpaidAmount),
			ActualSettlement:       cm.Money(row, RoleActual),
			ExpectedSettlement:     cm.Money(row, RoleExpected),
			PendingSettlement:      cm.Money(row, RolePending),
			SellerProductAmount:    cm.Money(row, RoleSellerAmount),
			MRP:                    cm.Money(row, RoleMRP),
			CommissionPercentage:   cm.Money(row, RoleCommissionPct),
			ShippingFee:            cm.Money(row, RoleShippingFee),
			SettlementDate:         strings.TrimSpace(cm.Value(row, RoleSettlementDate)),
			UTRPrepaid:             strings.TrimSpace(cm.Value(row, RoleUTRPrepaid)),
			UTRPostpaid:            strings.TrimSpace(cm.Value(row, RoleUTRPostpaid)),
			ReturnType:             strings.TrimSpace(cm.Value(row, RoleReturnType)),
			ReturnDate:             strings.TrimSpace(cm.Value(row, RoleReturnDate)),
		})
	}

	if skipped > 0 {
		log.WithField("skipped_rows", skipped).Warn("Dropped rows without an order id")
	}

	return records, cm, nil
}

// NormalizeReturns resolves a supplementary return-membership table (courier
// or customer return) and produces the order id / value pairs used for
// order-type tagging.
func NormalizeReturns(t *tables.Table, roles []tables.Role) ([]*models.ReturnMembership, *tables.ColumnMap, error) {
	cm, err := tables.Resolve(t, roles)
	if err != nil {
		return nil, nil, err
	}

	records := make([]*models.ReturnMembership, 0, t.NumRows())
	for _, row := range t.Rows {
		orderID := cm.Identifier(row, RoleOrderID)
		if orderID == "" {
			continue
		}
		records = append(records, &models.ReturnMembership{
			OrderID: orderID,
			Value:   cm.Money(row, RoleReturnValue),
		})
	}

	return records, cm, nil
}
