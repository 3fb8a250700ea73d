package config

import (
	"testing"

	"seller-payout-reconciler/internal/reporter"
	"seller-payout-reconciler/pkg/logger"
)

func TestCreateRequest(t *testing.T) {
	req := CreateRequest("sales.csv", "fwd.csv", "rev.csv", "rto.csv", "")

	if req.SalesFile != "sales.csv" || req.ForwardFile != "fwd.csv" || req.ReverseFile != "rev.csv" {
		t.Errorf("required paths not carried: %+v", req)
	}
	if req.RTOFile != "rto.csv" || req.RTFile != "" {
		t.Errorf("optional paths not carried: %+v", req)
	}
	if err := req.Validate(); err != nil {
		t.Errorf("complete request should validate: %v", err)
	}
}

func TestCreateReportConfig(t *testing.T) {
	config := CreateReportConfig("json", true)

	if config.Format != reporter.FormatJSON {
		t.Errorf("Format = %q, want json", config.Format)
	}
	if !config.IncludeOrders {
		t.Error("IncludeOrders not set")
	}
	if err := config.Validate(); err != nil {
		t.Errorf("config should validate: %v", err)
	}

	if config := CreateReportConfig("yaml", false); config.Validate() == nil {
		t.Error("unsupported format should fail validation")
	}
}

func TestCreateLoggerConfig(t *testing.T) {
	if got := CreateLoggerConfig(false).Level; got != logger.InfoLevel {
		t.Errorf("default level = %q, want info", got)
	}
	if got := CreateLoggerConfig(true).Level; got != logger.DebugLevel {
		t.Errorf("verbose level = %q, want debug", got)
	}
}
