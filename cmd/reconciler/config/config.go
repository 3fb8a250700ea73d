// Package config assembles typed configuration for the CLI from flag values.
package config

import (
	"seller-payout-reconciler/internal/reconciler"
	"seller-payout-reconciler/internal/reporter"
	"seller-payout-reconciler/pkg/logger"
)

// CreateRequest builds a reconciliation request from the file path flags.
func CreateRequest(salesFile, pgForward, pgReverse, rtoFile, rtFile string) *reconciler.ReconciliationRequest {
	return &reconciler.ReconciliationRequest{
		SalesFile:   salesFile,
		ForwardFile: pgForward,
		ReverseFile: pgReverse,
		RTOFile:     rtoFile,
		RTFile:      rtFile,
	}
}

// CreateReportConfig builds a report configuration from the output flags.
func CreateReportConfig(format string, includeOrders bool) *reporter.ReportConfig {
	config := reporter.DefaultReportConfig()
	config.Format = reporter.OutputFormat(format)
	config.IncludeOrders = includeOrders
	return config
}

// CreateLoggerConfig builds the logger configuration for the given verbosity.
func CreateLoggerConfig(verbose bool) *logger.Config {
	level := logger.InfoLevel
	if verbose {
		level = logger.DebugLevel
	}
	return &logger.Config{
		Level:  level,
		Format: logger.TextFormat,
	}
}
