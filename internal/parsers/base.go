// Package parsers loads the marketplace report files into generic tables and
// normalizes them into typed records.
//
// Supported inputs are CSV (the payment gateway exports) and XLSX (the sales
// sheet, which the seller portal exports as a workbook). A file that cannot
// be read as a table at all is a fatal InputFormatError; individual dirty
// cells are never fatal and coerce to zero/empty during normalization.
package parsers

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"seller-payout-reconciler/internal/tables"
	"seller-payout-reconciler/pkg/errors"
	"seller-payout-reconciler/pkg/logger"

	"github.com/xuri/excelize/v2"
)

// LoadTable reads a report file into a Table, dispatching on the file
// extension. The logical table name is used in diagnostics and errors.
func LoadTable(path, name string) (*tables.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, name)
	case ".xls":
		// Legacy binary workbooks are not supported; the seller portal can
		// re-export as .xlsx or CSV.
		return nil, errors.InputFormatError(name, path, nil).
			WithSuggestion("open the sheet and re-save it as .xlsx or CSV, legacy .xls is not supported")
	default:
		return LoadCSV(path, name)
	}
}

// LoadCSV reads a CSV file into a Table. The first non-empty row is the
// header row; fully empty rows are skipped; ragged rows are kept as-is.
func LoadCSV(path, name string) (*tables.Table, error) {
	log := logger.WithComponent("parsers").WithFields(logger.Fields{
		"table": name,
		"file":  path,
	})

	file, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := validateEncoding(file, path); err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, errors.FileError(errors.CodeFileCorrupted, path, err)
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var headers []string
	var rows [][]string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.InputFormatError(name, path, err)
		}
		if isEmptyRecord(record) {
			continue
		}
		if headers == nil {
			headers = record
			continue
		}
		rows = append(rows, record)
	}

	if headers == nil {
		return nil, errors.InputFormatError(name, path, nil).
			WithSuggestion("the file is empty; export the report again with a header row")
	}

	log.WithFields(logger.Fields{
		"columns": len(headers),
		"rows":    len(rows),
	}).Debug("Loaded CSV table")

	return tables.New(name, headers, rows), nil
}

// LoadXLSX reads the first sheet of a workbook into a Table.
func LoadXLSX(path, name string) (*tables.Table, error) {
	log := logger.WithComponent("parsers").WithFields(logger.Fields{
		"table": name,
		"file":  path,
	})

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.FileError(errors.CodeFileNotFound, path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.InputFormatError(name, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InputFormatError(name, path, nil).
			WithSuggestion("the workbook has no sheets")
	}

	allRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.InputFormatError(name, path, err)
	}

	var headers []string
	var rows [][]string
	for _, record := range allRows {
		if isEmptyRecord(record) {
			continue
		}
		if headers == nil {
			headers = record
			continue
		}
		rows = append(rows, record)
	}

	if headers == nil {
		return nil, errors.InputFormatError(name, path, nil).
			WithSuggestion("the first sheet is empty; export the report again with a header row")
	}

	log.WithFields(logger.Fields{
		"sheet":   sheets[0],
		"columns": len(headers),
		"rows":    len(rows),
	}).Debug("Loaded XLSX table")

	return tables.New(name, headers, rows), nil
}

func openFile(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileError(errors.CodeFileNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, errors.FileError(errors.CodeFilePermission, path, err)
		}
		return nil, errors.FileError(errors.CodeFileCorrupted, path, err)
	}
	return file, nil
}

// validateEncoding checks the first lines of the file for valid UTF-8.
func validateEncoding(file *os.File, path string) error {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() && lineNum < 100 {
		lineNum++
		if !utf8.Valid(scanner.Bytes()) {
			return errors.New(errors.CategoryParse, errors.CodeEncodingError,
				"invalid UTF-8 encoding detected in "+path).
				WithSuggestion("save the file in UTF-8 encoding and try again").
				WithContext("file_path", path).
				WithContext("line", lineNum)
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.FileError(errors.CodeFileCorrupted, path, err)
	}

	return nil
}

func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
