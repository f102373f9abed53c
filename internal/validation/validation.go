// Package validation checks command inputs before any work is done.
package validation

import (
	"fmt"
	"os"
	"strings"
	"time"

	"finize/txextract/internal/parsererror"
)

// IsValidInputFile checks that path names an existing regular file.
func IsValidInputFile(path string) error {
	if path == "" {
		return fmt.Errorf("input file must be specified with --input")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking input file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input path %s is not a regular file", path)
	}
	return nil
}

// IsValidOutputFormat checks that format is one of supported.
func IsValidOutputFormat(format string, supported ...string) error {
	for _, s := range supported {
		if format == s {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q (expected one of: %s)", format, strings.Join(supported, ", "))
}

// IsValidMonth checks a YYYY-MM month as used by ledger reports. Failures are
// returned as a *parsererror.ParseError.
func IsValidMonth(month string) error {
	_, err := time.Parse("2006-01", month)
	if err == nil && len(month) != 7 {
		err = fmt.Errorf("expected YYYY-MM")
	}
	if err != nil {
		return &parsererror.ParseError{Source: "--month", Field: "month", Value: month, Err: err}
	}
	return nil
}
