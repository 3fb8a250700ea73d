package settlement

import (
	"seller-payout-reconciler/internal/models"
	"seller-payout-reconciler/pkg/logger"
)

// Classifier assigns each order its terminal payment status. Classification
// is total: every order gets exactly one of the twelve statuses.
type Classifier struct {
	logger logger.Logger
}

// NewClassifier creates a Classifier. A nil logger falls back to the global
// instance.
func NewClassifier(log logger.Logger) *Classifier {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Classifier{logger: log.WithComponent("status_classifier")}
}

// ClassifyAll sets Status on every order in place and returns per-status
// counts.
func (c *Classifier) ClassifyAll(orders []*models.OrderRecord) map[models.PaymentStatus]int {
	counts := make(map[models.PaymentStatus]int)
	for _, o := range orders {
		o.Status = Classify(o)
		counts[o.Status]++
	}
	c.logger.WithField("orders", len(orders)).Info("Classification completed")
	return counts
}

// Classify maps one computed order to its status. Rules are checked in
// order; the RTO branch wins over the RT branch when an order carries both
// return memberships.
func Classify(o *models.OrderRecord) models.PaymentStatus {
	switch {
	case o.Type.RTO:
		return classifyRTO(o)
	case o.Type.RT:
		return classifyRT(o)
	default:
		return classifySales(o)
	}
}

func classifyRTO(o *models.OrderRecord) models.PaymentStatus {
	switch {
	case !o.FwdPresent:
		return models.StatusRTONoForwardPayment
	case o.FwdPending.IsPositive():
		return models.StatusRTOForwardPending
	case o.Difference.Abs().LessThanOrEqual(MatchTolerance):
		return models.StatusRTOForwardSettled
	default:
		return models.StatusRTOAmountMismatch
	}
}

func classifyRT(o *models.OrderRecord) models.PaymentStatus {
	switch {
	case !o.RevPresent:
		return models.StatusRTNoReverseEntry
	case o.RevPending.IsPositive():
		return models.StatusRTReversePending
	default:
		return models.StatusRTReverseSettled
	}
}

func classifySales(o *models.OrderRecord) models.PaymentStatus {
	switch {
	case !o.FwdPresent:
		return models.StatusSalesNoPayment
	case o.FwdPending.IsPositive():
		return models.StatusSalesSettlementPending
	case o.Difference.Abs().LessThanOrEqual(MatchTolerance):
		return models.StatusSalesMatched
	case o.Difference.GreaterThan(MatchTolerance):
		return models.StatusSalesUnderpaid
	default:
		return models.StatusSalesOverpaid
	}
}
