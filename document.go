package scalehouse

import "strings"

// DocType identifies which kind of business document a sale notification
// describes. It is set once at extraction and never changes afterwards;
// layout selection depends on it.
type DocType int

const (
	DocInvoice DocType = iota
	DocReceipt
	DocQuote
)

// String returns the human-readable document type name.
func (t DocType) String() string {
	switch t {
	case DocReceipt:
		return "Receipt"
	case DocQuote:
		return "Quote"
	default:
		return "Invoice"
	}
}

// NumberLabel returns the document-number label printed in the header box.
func (t DocType) NumberLabel() string {
	switch t {
	case DocReceipt:
		return "Receipt Number:"
	case DocQuote:
		return "Quote Number:"
	default:
		return "Invoice Number:"
	}
}

// Document is the complete structured representation of one invoice,
// receipt, or quote extracted from a sale notification mail.
//
// Quantity, price, and amount fields are display-ready decimal strings, not
// numeric types: all arithmetic happens upstream in the point-of-sale system
// and this library only renders precomputed values. The single exception is
// the deposit normalization rule (see NormalizeDocument).
//
// Lifecycle: populated by ExtractDocument, mutated exactly once by
// NormalizeDocument, then consumed read-only by layout selection and
// typesetting.
type Document struct {
	Title string
	Date  string

	// CompanyName is the first line of the company info block; CompanyInfo
	// holds the remaining lines joined with " • " for the contact header.
	CompanyName string
	CompanyInfo string

	// CustomerInfo is the customer address block, one address line per
	// newline (line breaks in the source markup are meaningful here).
	CustomerInfo string

	TransactionNumber string
	OrderID           string
	VATNumber         string
	DocNumber         string
	Type              DocType

	Items []LineItem

	// DeliveryTickets and WeighTickets aggregate the ticket references
	// carried by the reserved item codes 2300 and 2301.
	DeliveryTickets string
	WeighTickets    string

	Totals   []Amount
	Payments []Amount

	// AmountDue is read from the mail but not rendered yet.
	AmountDue string

	Employee string
	Slogan   string
}

// HasDiscounts reports whether any line item carries a per-line discount.
func (d *Document) HasDiscounts() bool {
	for _, it := range d.Items {
		if strings.TrimSpace(it.Discount) != "" {
			return true
		}
	}
	return false
}

// LineItem is one priced entry in the line-item table of a Document.
type LineItem struct {
	Code        string
	Description string
	Quantity    string
	Price       string // empty for non-priced lines
	Amount      string
	Unit        string // explicit unit-of-measure; empty = infer from Code
	Discount    string // optional per-line discount amount
	Taxable     bool
}

// Amount is one name/value row of the totals or payments blocks.
// A row with an empty Name is a deliberate separator sentinel: it draws a
// rule line and contributes no text.
type Amount struct {
	Name  string
	Value string
}
