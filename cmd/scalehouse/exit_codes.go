package main

import (
	"errors"
	"os"

	"github.com/scalehouse/scalehouse"
	"github.com/scalehouse/scalehouse/internal/config"
)

// Exit codes for the scalehouse CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Successful conversion
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or validation
	ExitIO         = 3 // File not found, permission denied
	ExitRender     = 4 // Font, logo, or PDF backend errors
	ExitExtraction = 5 // Mail does not match the expected document shape
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Extraction errors (exit 5)
	if errors.Is(err, scalehouse.ErrNoHTMLFragment) ||
		errors.Is(err, scalehouse.ErrNoBody) ||
		errors.Is(err, scalehouse.ErrNoTitle) ||
		errors.Is(err, scalehouse.ErrNoDate) ||
		errors.Is(err, scalehouse.ErrNoCompanyInfo) ||
		errors.Is(err, scalehouse.ErrNoCustomerInfo) ||
		errors.Is(err, scalehouse.ErrMissingTable) ||
		errors.Is(err, scalehouse.ErrMissingRow) ||
		errors.Is(err, scalehouse.ErrMissingCell) ||
		errors.Is(err, scalehouse.ErrNoAmountDue) ||
		errors.Is(err, scalehouse.ErrNoEmployee) ||
		errors.Is(err, scalehouse.ErrNoSlogan) ||
		errors.Is(err, scalehouse.ErrDepositValue) ||
		errors.Is(err, scalehouse.ErrItemCode) {
		return ExitExtraction
	}

	// Render errors (exit 4)
	if errors.Is(err, scalehouse.ErrFontLoad) ||
		errors.Is(err, scalehouse.ErrLogoLoad) ||
		errors.Is(err, scalehouse.ErrPDFRender) {
		return ExitRender
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMail) ||
		errors.Is(err, ErrWritePDF) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, scalehouse.ErrEmptyMail) ||
		errors.Is(err, scalehouse.ErrNilResources) ||
		errors.Is(err, ErrNoInput) {
		return ExitUsage
	}

	return ExitGeneral
}
