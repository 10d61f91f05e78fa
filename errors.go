package scalehouse

import (
	"errors"

	"github.com/scalehouse/scalehouse/internal/moneyfmt"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMail    = errors.New("mail content cannot be empty")
	ErrNilResources = errors.New("resources cannot be nil")

	// Structural extraction errors. Each structural expectation of the mail
	// template gets its own sentinel so callers can tell which checkpoint
	// failed when quarantining an input.
	ErrNoHTMLFragment = errors.New("no <html> fragment found in mail")
	ErrNoBody         = errors.New("no body element found")
	ErrNoTitle        = errors.New("no title span found")
	ErrNoDate         = errors.New("no date span found")
	ErrNoCompanyInfo  = errors.New("no company info found")
	ErrNoCustomerInfo = errors.New("no customer info found")
	ErrMissingTable   = errors.New("table does not exist")
	ErrMissingRow     = errors.New("table row does not exist")
	ErrMissingCell    = errors.New("table cell does not exist")
	ErrNoAmountDue    = errors.New("no amount due found")
	ErrNoEmployee     = errors.New("no employee name found")
	ErrNoSlogan       = errors.New("no footer slogan found")

	// Value parsing errors.
	ErrDepositValue = errors.New("deposit value is not a decimal number")

	// Resource loading errors. These are fatal to startup, not per-document.
	ErrFontLoad = errors.New("failed to load font")
	ErrLogoLoad = errors.New("failed to load logo")

	// Rendering errors.
	ErrPDFRender = errors.New("PDF rendering failed")
)

// ErrItemCode reports a line-item code that cannot be parsed during
// unit-of-measure inference. Re-exported so callers can match it with
// errors.Is without importing the internal package.
var ErrItemCode = moneyfmt.ErrItemCode
