// Package reconciler orchestrates the payout reconciliation pipeline: load
// the source reports, normalize them, join on order id, compute the derived
// settlement fields and classify every order.
package reconciler

import (
	"context"
	"time"

	"seller-payout-reconciler/internal/joiner"
	"seller-payout-reconciler/internal/models"
	"seller-payout-reconciler/internal/parsers"
	"seller-payout-reconciler/internal/settlement"
	"seller-payout-reconciler/internal/tables"
	recerrors "seller-payout-reconciler/pkg/errors"
	"seller-payout-reconciler/pkg/logger"
)

// ReconciliationRequest names the input files of one run. Sales, forward and
// reverse reports are required; the return reports are optional.
type ReconciliationRequest struct {
	SalesFile   string
	ForwardFile string
	ReverseFile string
	RTOFile     string
	RTFile      string
}

// Validate checks that the required inputs are set.
func (r *ReconciliationRequest) Validate() error {
	if r.SalesFile == "" {
		return recerrors.ConfigurationError(recerrors.CodeMissingConfig, "sales file", nil, nil)
	}
	if r.ForwardFile == "" {
		return recerrors.ConfigurationError(recerrors.CodeMissingConfig, "forward settlement file", nil, nil)
	}
	if r.ReverseFile == "" {
		return recerrors.ConfigurationError(recerrors.CodeMissingConfig, "reverse settlement file", nil, nil)
	}
	return nil
}

// SourceStats describes one loaded source table.
type SourceStats struct {
	Table   string `json:"table"`
	Path    string `json:"path"`
	RawRows int    `json:"raw_rows"`
	Records int    `json:"records"`
}

// ReconciliationResult is the complete outcome of one run.
type ReconciliationResult struct {
	Orders []*models.OrderRecord `json:"orders"`

	StatusCounts map[models.PaymentStatus]int `json:"status_counts"`

	SalesRows       int `json:"sales_rows"`
	DistinctOrders  int `json:"distinct_orders"`
	DuplicateOrders int `json:"duplicate_orders"`
	FwdMatched      int `json:"fwd_matched"`
	RevMatched      int `json:"rev_matched"`
	FwdUnmatched    int `json:"fwd_unmatched"`
	RevUnmatched    int `json:"rev_unmatched"`

	Sources []SourceStats `json:"sources"`

	// ResolutionNotes lists every positional column fallback taken during
	// loading, for the operator to verify a format assumption.
	ResolutionNotes []string `json:"resolution_notes,omitempty"`

	ProcessedAt time.Time     `json:"processed_at"`
	Duration    time.Duration `json:"duration"`
}

// ProgressFunc is invoked at the start of each pipeline stage.
type ProgressFunc func(stage string)

// ReconciliationService runs the pipeline.
type ReconciliationService struct {
	logger   logger.Logger
	progress ProgressFunc
}

// NewService creates a ReconciliationService. A nil logger falls back to the
// global instance; a nil progress callback disables stage reporting.
func NewService(log logger.Logger, progress ProgressFunc) *ReconciliationService {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &ReconciliationService{
		logger:   log.WithComponent("reconciliation_service"),
		progress: progress,
	}
}

func (s *ReconciliationService) stage(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return recerrors.Wrap(err, recerrors.CategoryInternal, recerrors.CodeUnexpectedError,
			"reconciliation cancelled during "+name)
	}
	s.logger.WithField("stage", name).Debug("Pipeline stage starting")
	if s.progress != nil {
		s.progress(name)
	}
	return nil
}

// Reconcile runs the full pipeline for one request.
func (s *ReconciliationService) Reconcile(ctx context.Context, req *ReconciliationRequest) (*ReconciliationResult, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := &ReconciliationResult{ProcessedAt: start}

	if err := s.stage(ctx, "load sales"); err != nil {
		return nil, err
	}
	sales, err := s.loadSales(req.SalesFile, result)
	if err != nil {
		return nil, err
	}

	if err := s.stage(ctx, "load forward settlements"); err != nil {
		return nil, err
	}
	forward, err := s.loadGateway(req.ForwardFile, parsers.TablePGForward, result)
	if err != nil {
		return nil, err
	}

	if err := s.stage(ctx, "load reverse settlements"); err != nil {
		return nil, err
	}
	reverse, err := s.loadGateway(req.ReverseFile, parsers.TablePGReverse, result)
	if err != nil {
		return nil, err
	}

	var rto, rt []*models.ReturnMembership
	if req.RTOFile != "" {
		if err := s.stage(ctx, "load courier returns"); err != nil {
			return nil, err
		}
		rto, err = s.loadReturns(req.RTOFile, parsers.TableRTO, parsers.RTORoles(), result)
		if err != nil {
			return nil, err
		}
	}
	if req.RTFile != "" {
		if err := s.stage(ctx, "load customer returns"); err != nil {
			return nil, err
		}
		rt, err = s.loadReturns(req.RTFile, parsers.TableRT, parsers.RTRoles(), result)
		if err != nil {
			return nil, err
		}
	}

	if err := s.stage(ctx, "join"); err != nil {
		return nil, err
	}
	joined := joiner.New(s.logger).Join(sales, forward, reverse, rto, rt)
	result.Orders = joined.Orders
	result.SalesRows = joined.SalesRows
	result.DistinctOrders = joined.DistinctOrders
	result.DuplicateOrders = joined.DuplicateOrders
	result.FwdMatched = joined.FwdMatched
	result.RevMatched = joined.RevMatched
	result.FwdUnmatched = joined.FwdUnmatched
	result.RevUnmatched = joined.RevUnmatched

	if err := s.stage(ctx, "compute settlements"); err != nil {
		return nil, err
	}
	settlement.NewCalculator(s.logger).Compute(result.Orders)

	if err := s.stage(ctx, "classify"); err != nil {
		return nil, err
	}
	result.StatusCounts = settlement.NewClassifier(s.logger).ClassifyAll(result.Orders)

	result.Duration = time.Since(start)

	s.logger.WithFields(logger.Fields{
		"orders":   result.DistinctOrders,
		"duration": result.Duration.String(),
	}).Info("Reconciliation completed")

	return result, nil
}

func (s *ReconciliationService) loadSales(path string, result *ReconciliationResult) ([]*models.SalesRecord, error) {
	tbl, err := parsers.LoadTable(path, parsers.TableSales)
	if err != nil {
		return nil, err
	}
	records, cm, err := parsers.NormalizeSales(tbl)
	if err != nil {
		return nil, err
	}
	s.record(result, parsers.TableSales, path, tbl, len(records), cm)
	return records, nil
}

func (s *ReconciliationService) loadGateway(path, name string, result *ReconciliationResult) ([]*models.GatewayRecord, error) {
	tbl, err := parsers.LoadTable(path, name)
	if err != nil {
		return nil, err
	}
	records, cm, err := parsers.NormalizeGateway(tbl)
	if err != nil {
		return nil, err
	}
	s.record(result, name, path, tbl, len(records), cm)
	return records, nil
}

func (s *ReconciliationService) loadReturns(path, name string, roles []tables.Role, result *ReconciliationResult) ([]*models.ReturnMembership, error) {
	tbl, err := parsers.LoadTable(path, name)
	if err != nil {
		return nil, err
	}
	records, cm, err := parsers.NormalizeReturns(tbl, roles)
	if err != nil {
		return nil, err
	}
	s.record(result, name, path, tbl, len(records), cm)
	return records, nil
}

func (s *ReconciliationService) record(result *ReconciliationResult, name, path string, tbl *tables.Table, records int, cm *tables.ColumnMap) {
	result.Sources = append(result.Sources, SourceStats{
		Table:   name,
		Path:    path,
		RawRows: tbl.NumRows(),
		Records: records,
	})
	result.ResolutionNotes = append(result.ResolutionNotes, cm.Notes...)
}
