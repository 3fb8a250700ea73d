package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"seller-payout-reconciler/cmd/reconciler/config"
	"seller-payout-reconciler/internal/reconciler"
	"seller-payout-reconciler/internal/reporter"
	"seller-payout-reconciler/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the reconcile command
var (
	salesFile    string
	pgForward    string
	pgReverse    string
	rtoFile      string
	rtFile       string
	outputFormat string
	outputFile   string
	showOrders   bool
	showProgress bool
)

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile seller payouts against the sales ledger",
	Long: `Reconcile joins the Sales report against the payment gateway's forward
and reverse settlement reports, computes the expected payout per order from
the deduction columns, compares it to the disbursed amount and classifies
every order.

This command requires:
- The Sales report (CSV or XLSX)
- The PG forward settlement report (CSV or XLSX)
- The PG reverse settlement report (CSV or XLSX)

The courier-return (RTO) and customer-return reports are optional; when
supplied they tag orders with their return membership.

Examples:
  # Basic reconciliation to the console
  reconciler reconcile --sales-file sales.csv --pg-forward fwd.csv --pg-reverse rev.csv

  # Full run with return reports and an Excel workbook
  reconciler reconcile --sales-file sales.xlsx --pg-forward fwd.xlsx --pg-reverse rev.xlsx \
    --rto-file rto.csv --rt-file rt.csv \
    --output-format xlsx --output-file report.xlsx

  # Machine-readable output with per-order detail
  reconciler reconcile --sales-file sales.csv --pg-forward fwd.csv --pg-reverse rev.csv \
    --output-format json --orders --output-file report.json`,

	PreRunE: validateReconcileFlags,
	RunE:    runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	// Required flags
	reconcileCmd.Flags().StringVarP(&salesFile, "sales-file", "s", "", "path to the Sales report (required)")
	reconcileCmd.Flags().StringVar(&pgForward, "pg-forward", "", "path to the PG forward settlement report (required)")
	reconcileCmd.Flags().StringVar(&pgReverse, "pg-reverse", "", "path to the PG reverse settlement report (required)")

	// Optional return reports
	reconcileCmd.Flags().StringVar(&rtoFile, "rto-file", "", "path to the courier-return (RTO) report")
	reconcileCmd.Flags().StringVar(&rtFile, "rt-file", "", "path to the customer-return report")

	// Output flags
	reconcileCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "console", "output format: console, json, csv, xlsx")
	reconcileCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "output file path (default: stdout; required for xlsx)")
	reconcileCmd.Flags().BoolVar(&showOrders, "orders", false, "include per-order detail rows in the output")

	// UI flags
	reconcileCmd.Flags().BoolVar(&showProgress, "progress", false, "show pipeline stage progress")

	reconcileCmd.MarkFlagRequired("sales-file")
	reconcileCmd.MarkFlagRequired("pg-forward")
	reconcileCmd.MarkFlagRequired("pg-reverse")

	viper.BindPFlag("sales-file", reconcileCmd.Flags().Lookup("sales-file"))
	viper.BindPFlag("pg-forward", reconcileCmd.Flags().Lookup("pg-forward"))
	viper.BindPFlag("pg-reverse", reconcileCmd.Flags().Lookup("pg-reverse"))
	viper.BindPFlag("rto-file", reconcileCmd.Flags().Lookup("rto-file"))
	viper.BindPFlag("rt-file", reconcileCmd.Flags().Lookup("rt-file"))
	viper.BindPFlag("output-format", reconcileCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("output-file", reconcileCmd.Flags().Lookup("output-file"))
	viper.BindPFlag("orders", reconcileCmd.Flags().Lookup("orders"))
	viper.BindPFlag("progress", reconcileCmd.Flags().Lookup("progress"))
}

func validateReconcileFlags(cmd *cobra.Command, args []string) error {
	// Viper values allow overrides from a config file or environment.
	salesFile = viper.GetString("sales-file")
	pgForward = viper.GetString("pg-forward")
	pgReverse = viper.GetString("pg-reverse")
	rtoFile = viper.GetString("rto-file")
	rtFile = viper.GetString("rt-file")
	outputFormat = viper.GetString("output-format")
	outputFile = viper.GetString("output-file")
	showOrders = viper.GetBool("orders")
	showProgress = viper.GetBool("progress")

	required := []struct {
		path, description string
	}{
		{salesFile, "sales report"},
		{pgForward, "forward settlement report"},
		{pgReverse, "reverse settlement report"},
	}
	for _, f := range required {
		if err := validateFileExists(f.path, f.description); err != nil {
			return err
		}
	}
	if rtoFile != "" {
		if err := validateFileExists(rtoFile, "courier-return report"); err != nil {
			return err
		}
	}
	if rtFile != "" {
		if err := validateFileExists(rtFile, "customer-return report"); err != nil {
			return err
		}
	}

	if !reporter.OutputFormat(outputFormat).IsValid() {
		return fmt.Errorf("invalid output format '%s'. Valid formats: console, json, csv, xlsx", outputFormat)
	}
	if outputFormat == string(reporter.FormatXLSX) && outputFile == "" {
		return fmt.Errorf("the xlsx format writes a workbook and requires --output-file")
	}

	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("output directory does not exist: %s", dir)
			}
		}
	}

	return nil
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", description, err)
	}
	file.Close()

	return nil
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Starting payout reconciliation...\n")
		fmt.Fprintf(os.Stderr, "Sales file: %s\n", salesFile)
		fmt.Fprintf(os.Stderr, "Forward file: %s\n", pgForward)
		fmt.Fprintf(os.Stderr, "Reverse file: %s\n", pgReverse)
		if rtoFile != "" {
			fmt.Fprintf(os.Stderr, "RTO file: %s\n", rtoFile)
		}
		if rtFile != "" {
			fmt.Fprintf(os.Stderr, "RT file: %s\n", rtFile)
		}
	}

	var progress reconciler.ProgressFunc
	if showProgress {
		progress = func(stage string) {
			fmt.Fprintf(os.Stderr, "-> %s\n", stage)
		}
	}

	service := reconciler.NewService(logger.GetGlobalLogger(), progress)

	request := config.CreateRequest(salesFile, pgForward, pgReverse, rtoFile, rtFile)

	result, err := service.Reconcile(ctx, request)
	if err != nil {
		return err
	}

	if outputFormat == string(reporter.FormatXLSX) {
		if err := reporter.WriteWorkbook(result, outputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Workbook written to %s\n", outputFile)
		return nil
	}

	reportConfig := config.CreateReportConfig(outputFormat, showOrders)
	generator, err := reporter.NewReportGenerator(reportConfig)
	if err != nil {
		return err
	}

	writer := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	if err := generator.GenerateReport(result, writer); err != nil {
		return err
	}

	if outputFile != "" {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", outputFile)
	}
	return nil
}
