package scalehouse

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildMail assembles a sale-notification mail around the given title and
// line-item rows, with binary-looking garbage around the HTML fragment and
// uppercase tags, the way the upstream mailer actually emits them.
func buildMail(title, itemRows string) string {
	return "\x02\x00junk-envelope-bytes\r\n" + fmt.Sprintf(`<HTML>
<BODY>
<span>%s</span>
<span>01/15/2026 10:42 AM</span>
<table>
  <tr>
    <td>ACME Aggregates
123 Quarry Rd
Springfield</td>
    <td>Jones Construction
88 Main St
Springfield</td>
  </tr>
  <tr><td> </td></tr>
  <tr>
    <td>TransactionNumber: 445</td>
    <td>OrderId: 9912</td>
    <td>Invoice#: 10023</td>
  </tr>
</table>
<table>
  <tr><td>Item</td><td>Description</td><td>U/M</td><td>Quantity</td><td>Unit Price</td><td>Total</td></tr>
</table>
<table>
%s
</table>
<table><tr><td> </td></tr></table>
<table>
  <tr><td>Subtotal:</td><td>$600.00</td></tr>
  <tr><td>Tax:</td><td>$49.50</td></tr>
  <tr><td></td><td></td></tr>
  <tr><td>Total:</td><td>$649.50</td></tr>
</table>
<table>
  <tr><td>Check</td><td>$649.50</td></tr>
</table>
<table><tr><td>Amount</td><td>Due:</td><td>$0.00</td></tr></table>
<table><tr><td>Clerk:</td><td>D. Smith</td></tr></table>
<table><tr><td>Thank you for your business!</td></tr></table>
</BODY>
</HTML>`, title, itemRows) + "\r\ntrailing-envelope-junk"
}

const defaultItemRows = `  <tr><td>100</td><td>Crushed Limestone 57</td><td>TON</td><td>12.50</td><td>$48.00</td><td>$600.00 T</td></tr>
  <tr><td>2300</td><td>DT#4821</td><td></td><td></td><td></td><td></td></tr>
  <tr><td>2301</td><td>WT 77-3</td><td></td><td></td><td></td><td></td></tr>`

func TestExtractDocument(t *testing.T) {
	t.Parallel()

	d, err := ExtractDocument(buildMail("Invoice", defaultItemRows))
	if err != nil {
		t.Fatalf("ExtractDocument: %v", err)
	}

	if d.Title != "Invoice" {
		t.Errorf("Title = %q, want %q", d.Title, "Invoice")
	}
	if d.Date != "01/15/2026 10:42 AM" {
		t.Errorf("Date = %q", d.Date)
	}
	if d.Type != DocInvoice {
		t.Errorf("Type = %v, want DocInvoice", d.Type)
	}
	if d.CompanyName != "ACME Aggregates" {
		t.Errorf("CompanyName = %q", d.CompanyName)
	}
	if d.CompanyInfo != "123 Quarry Rd • Springfield" {
		t.Errorf("CompanyInfo = %q", d.CompanyInfo)
	}
	if d.CustomerInfo != "Jones Construction\n88 Main St\nSpringfield" {
		t.Errorf("CustomerInfo = %q", d.CustomerInfo)
	}
	if d.TransactionNumber != "445" || d.VATNumber != "445" {
		t.Errorf("TransactionNumber = %q, VATNumber = %q, want both 445", d.TransactionNumber, d.VATNumber)
	}
	if d.OrderID != "9912" {
		t.Errorf("OrderID = %q", d.OrderID)
	}
	if d.DocNumber != "10023" {
		t.Errorf("DocNumber = %q", d.DocNumber)
	}

	if len(d.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1 (ticket rows must not become items)", len(d.Items))
	}
	it := d.Items[0]
	if it.Code != "100" || it.Description != "Crushed Limestone 57" || it.Unit != "TON" {
		t.Errorf("item = %+v", it)
	}
	if it.Quantity != "12.50" || it.Price != "48.00" {
		t.Errorf("item quantity/price = %q/%q", it.Quantity, it.Price)
	}
	if it.Amount != "600.00" || !it.Taxable {
		t.Errorf("amount = %q taxable = %v, want 600.00 true", it.Amount, it.Taxable)
	}

	if d.DeliveryTickets != "#4821" {
		t.Errorf("DeliveryTickets = %q, want %q", d.DeliveryTickets, "#4821")
	}
	if d.WeighTickets != "77-3" {
		t.Errorf("WeighTickets = %q, want %q", d.WeighTickets, "77-3")
	}

	wantTotals := []Amount{
		{Name: "Subtotal:", Value: "600.00"},
		{Name: "Tax:", Value: "49.50"},
		{Name: "", Value: ""},
		{Name: "Total:", Value: "649.50"},
	}
	if len(d.Totals) != len(wantTotals) {
		t.Fatalf("Totals = %+v", d.Totals)
	}
	for i, want := range wantTotals {
		if d.Totals[i] != want {
			t.Errorf("Totals[%d] = %+v, want %+v", i, d.Totals[i], want)
		}
	}

	if len(d.Payments) != 1 || d.Payments[0] != (Amount{Name: "Check", Value: "649.50"}) {
		t.Errorf("Payments = %+v", d.Payments)
	}
	if d.AmountDue != "0.00" {
		t.Errorf("AmountDue = %q", d.AmountDue)
	}
	if d.Employee != "D. Smith" {
		t.Errorf("Employee = %q", d.Employee)
	}
	if d.Slogan != "Thank you for your business!" {
		t.Errorf("Slogan = %q", d.Slogan)
	}
}

func TestExtractDocument_NonASCIIEnvelope(t *testing.T) {
	t.Parallel()

	// Runes whose lowercase form has a different byte length. The Kelvin
	// sign shrinks (3 bytes to 1) and U+023A grows (2 bytes to 3); either
	// way the fragment bounds must still refer to the original bytes.
	tests := []struct {
		name   string
		prefix string
	}{
		{"shrinking rune", strings.Repeat("K", 8)}, // Kelvin sign
		{"growing rune", strings.Repeat("Ⱥ", 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := ExtractDocument(tt.prefix + buildMail("Invoice", defaultItemRows))
			if err != nil {
				t.Fatalf("ExtractDocument: %v", err)
			}
			if d.DocNumber != "10023" {
				t.Errorf("DocNumber = %q, want %q", d.DocNumber, "10023")
			}
		})
	}
}

func TestHTMLFragmentBounds(t *testing.T) {
	t.Parallel()

	mail := strings.Repeat("K", 4) + "<HTML><BODY>x</BODY></HTML>" + strings.Repeat("Ⱥ", 4)
	got, err := htmlFragment(mail)
	if err != nil {
		t.Fatalf("htmlFragment: %v", err)
	}
	if got != "<HTML><BODY>x</BODY></HTML>" {
		t.Errorf("fragment = %q", got)
	}
}

func TestExtractDocument_TitleClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  DocType
	}{
		{"Invoice", DocInvoice},
		{"Sales Receipt", DocReceipt},
		{"Quote", DocQuote},
		{"Quotation", DocQuote},
		{"Statement", DocInvoice}, // unknown defaults to invoice
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()

			d, err := ExtractDocument(buildMail(tt.title, defaultItemRows))
			if err != nil {
				t.Fatalf("ExtractDocument: %v", err)
			}
			if d.Type != tt.want {
				t.Errorf("Type = %v, want %v", d.Type, tt.want)
			}
		})
	}
}

func TestExtractDocument_RowShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  string
		want LineItem
	}{
		{
			name: "legacy five-cell row has no unit",
			row:  `<tr><td>2050</td><td>Retaining Block</td><td>5.00</td><td>$120.00</td><td>$600.00</td></tr>`,
			want: LineItem{Code: "2050", Description: "Retaining Block", Quantity: "5.00", Price: "120.00", Amount: "600.00"},
		},
		{
			name: "six-cell row carries explicit unit",
			row:  `<tr><td>100</td><td>Pea Gravel</td><td>TON</td><td>3.25</td><td>$52.00</td><td>$169.00</td></tr>`,
			want: LineItem{Code: "100", Description: "Pea Gravel", Unit: "TON", Quantity: "3.25", Price: "52.00", Amount: "169.00"},
		},
		{
			name: "seven-cell row carries discount",
			row:  `<tr><td>100</td><td>Pea Gravel</td><td>TON</td><td>3.25</td><td>$52.00</td><td>$10.00</td><td>$159.00</td></tr>`,
			want: LineItem{Code: "100", Description: "Pea Gravel", Unit: "TON", Quantity: "3.25", Price: "52.00", Discount: "10.00", Amount: "159.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := ExtractDocument(buildMail("Invoice", tt.row))
			if err != nil {
				t.Fatalf("ExtractDocument: %v", err)
			}
			if len(d.Items) != 1 {
				t.Fatalf("len(Items) = %d, want 1", len(d.Items))
			}
			if d.Items[0] != tt.want {
				t.Errorf("item = %+v, want %+v", d.Items[0], tt.want)
			}
		})
	}
}

func TestExtractDocument_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mail    string
		wantErr error
	}{
		{
			name:    "no html fragment",
			mail:    "plain text mail without markup",
			wantErr: ErrNoHTMLFragment,
		},
		{
			name:    "open tag without close",
			mail:    "<html><body>truncated",
			wantErr: ErrNoHTMLFragment,
		},
		{
			name:    "no spans",
			mail:    "<html><body><table></table></body></html>",
			wantErr: ErrNoTitle,
		},
		{
			name:    "title but no date",
			mail:    "<html><body><span>Invoice</span></body></html>",
			wantErr: ErrNoDate,
		},
		{
			name:    "missing tables",
			mail:    "<html><body><span>Invoice</span><span>01/15/2026</span></body></html>",
			wantErr: ErrMissingTable,
		},
		{
			name:    "item row with too few cells",
			mail:    buildMail("Invoice", `<tr><td>100</td><td>Gravel</td></tr>`),
			wantErr: ErrMissingCell,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ExtractDocument(tt.mail)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ExtractDocument error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
