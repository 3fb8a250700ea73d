package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestValidateFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	validFile := filepath.Join(tmpDir, "valid.csv")
	if err := os.WriteFile(validFile, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name        string
		filePath    string
		expectError bool
	}{
		{name: "valid file", filePath: validFile, expectError: false},
		{name: "empty path", filePath: "", expectError: true},
		{name: "non-existent file", filePath: "/non/existent/file.csv", expectError: true},
		{name: "directory instead of file", filePath: tmpDir, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFileExists(tt.filePath, "test file")

			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateReconcileFlags(t *testing.T) {
	tmpDir := t.TempDir()
	sales := filepath.Join(tmpDir, "sales.csv")
	fwd := filepath.Join(tmpDir, "fwd.csv")
	rev := filepath.Join(tmpDir, "rev.csv")

	for _, f := range []string{sales, fwd, rev} {
		if err := os.WriteFile(f, []byte("order_release_id\nA1\n"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
	}

	setRequired := func() {
		viper.Set("sales-file", sales)
		viper.Set("pg-forward", fwd)
		viper.Set("pg-reverse", rev)
		viper.Set("output-format", "console")
		viper.Set("output-file", "")
		viper.Set("rto-file", "")
		viper.Set("rt-file", "")
	}

	tests := []struct {
		name          string
		setupFlags    func()
		expectError   bool
		errorContains string
	}{
		{
			name:        "valid flags",
			setupFlags:  setRequired,
			expectError: false,
		},
		{
			name: "missing sales file",
			setupFlags: func() {
				setRequired()
				viper.Set("sales-file", "")
			},
			expectError:   true,
			errorContains: "sales report",
		},
		{
			name: "missing return report tolerated when unset",
			setupFlags: func() {
				setRequired()
				viper.Set("rto-file", "")
			},
			expectError: false,
		},
		{
			name: "nonexistent optional return report",
			setupFlags: func() {
				setRequired()
				viper.Set("rto-file", filepath.Join(tmpDir, "missing.csv"))
			},
			expectError:   true,
			errorContains: "courier-return",
		},
		{
			name: "invalid output format",
			setupFlags: func() {
				setRequired()
				viper.Set("output-format", "yaml")
			},
			expectError:   true,
			errorContains: "invalid output format",
		},
		{
			name: "xlsx requires output file",
			setupFlags: func() {
				setRequired()
				viper.Set("output-format", "xlsx")
			},
			expectError:   true,
			errorContains: "output-file",
		},
		{
			name: "output directory must exist",
			setupFlags: func() {
				setRequired()
				viper.Set("output-file", "/no/such/dir/report.json")
			},
			expectError:   true,
			errorContains: "output directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			tt.setupFlags()

			err := validateReconcileFlags(reconcileCmd, nil)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("error %q does not contain %q", err, tt.errorContains)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
