package scalehouse

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Reserved item codes whose rows are ticket references, not line items.
const (
	deliveryTicketCode = "2300"
	weighTicketCode    = "2301"
)

// Known label prefixes stripped from the order metadata cells. The upstream
// template writes "<Label>: <value>" but the labels have drifted across
// template versions, so each cell tries its candidates and falls back to the
// verbatim text.
var (
	transactionPrefixes = []string{"TransactionNumber: ", "VAT#: ", "VAT Number: "}
	orderIDPrefixes     = []string{"OrderId: ", "Order ID: "}
	docNumberPrefixes   = []string{"Invoice#: ", "Receipt#: ", "Quote#: "}
)

// ExtractDocument locates the HTML fragment in a raw mail file and reads the
// fixed sequence of tables, rows, and cells the sale notification template
// emits. Extraction is all-or-nothing: any missing structural element fails
// the whole document with a sentinel identifying the expectation that was
// violated. The caller is responsible for quarantining failing inputs.
func ExtractDocument(mail string) (*Document, error) {
	fragment, err := htmlFragment(mail)
	if err != nil {
		return nil, err
	}

	root, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML fragment: %w", err)
	}

	body := root.Find("body").First()
	if body.Length() == 0 {
		return nil, ErrNoBody
	}

	d := &Document{}

	// The first two spans are the title and the date/time.
	spans := body.Find("span")
	if spans.Length() < 1 {
		return nil, ErrNoTitle
	}
	if spans.Length() < 2 {
		return nil, ErrNoDate
	}
	d.Title = cleanText(spans.Eq(0))
	d.Date = cleanText(spans.Eq(1))
	d.Type = classifyTitle(d.Title)

	tables := body.Find("table")

	if err := extractHeaderTable(tables, d); err != nil {
		return nil, err
	}

	// Table 2 holds the line-item column headers. Read and discarded.
	if _, err := table(tables, 1); err != nil {
		return nil, err
	}

	if err := extractLineItems(tables, d); err != nil {
		return nil, err
	}

	// Table 4 is empty/reserved.
	if _, err := table(tables, 3); err != nil {
		return nil, err
	}

	if d.Totals, err = extractAmounts(tables, 4); err != nil {
		return nil, err
	}
	if d.Payments, err = extractAmounts(tables, 5); err != nil {
		return nil, err
	}

	if err := extractAmountDue(tables, d); err != nil {
		return nil, err
	}
	if err := extractEmployee(tables, d); err != nil {
		return nil, err
	}
	if err := extractSlogan(tables, d); err != nil {
		return nil, err
	}

	return d, nil
}

// htmlFragment slices the portion of the mail between the case-insensitive
// <html> and </html> markers, inclusive. The markers are located directly in
// the original bytes: the envelope may carry non-ASCII runes whose lowercase
// form has a different byte length, so indices into a lowered copy would not
// be valid offsets into mail.
func htmlFragment(mail string) (string, error) {
	const openTag, closeTag = "<html>", "</html>"

	start := indexFold(mail, openTag)
	if start < 0 {
		return "", ErrNoHTMLFragment
	}
	end := indexFold(mail[start:], closeTag)
	if end < 0 {
		return "", ErrNoHTMLFragment
	}
	return mail[start : start+end+len(closeTag)], nil
}

// indexFold returns the byte offset of the first ASCII-case-insensitive
// occurrence of the ASCII pattern pat in s, or -1.
func indexFold(s, pat string) int {
	for i := 0; i+len(pat) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(pat)], pat) {
			return i
		}
	}
	return -1
}

// classifyTitle derives the document type from the title span. The title is
// the only place the template states what kind of document the mail is.
func classifyTitle(title string) DocType {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "receipt"):
		return DocReceipt
	case strings.Contains(t, "quot"): // "Quote" or "Quotation"
		return DocQuote
	default:
		return DocInvoice
	}
}

// extractHeaderTable reads table 1: company and customer blocks on row 1, a
// blank separator row, then the order metadata row.
func extractHeaderTable(tables *goquery.Selection, d *Document) error {
	t, err := table(tables, 0)
	if err != nil {
		return err
	}
	rows := t.Find("tr")

	// Row 1: company info block and customer info block.
	first, err := row(rows, 1, 0)
	if err != nil {
		return err
	}
	cells := first.Find("td")
	if cells.Length() < 1 {
		return ErrNoCompanyInfo
	}
	if cells.Length() < 2 {
		return ErrNoCustomerInfo
	}
	company := cleanMultiline(cells.Eq(0))
	d.CompanyName, d.CompanyInfo = splitCompanyBlock(company)
	d.CustomerInfo = cleanMultiline(cells.Eq(1))

	// Row 2 is an expected blank separator.
	if _, err := row(rows, 1, 1); err != nil {
		return err
	}

	// Row 3: "<Label>: <value>" cells for transaction, order, and document
	// numbers.
	meta, err := row(rows, 1, 2)
	if err != nil {
		return err
	}
	metaCells := meta.Find("td")
	if metaCells.Length() < 3 {
		return fmt.Errorf("%w: table 1 metadata row", ErrMissingCell)
	}
	d.TransactionNumber = stripLabel(cleanText(metaCells.Eq(0)), transactionPrefixes)
	d.OrderID = stripLabel(cleanText(metaCells.Eq(1)), orderIDPrefixes)
	d.DocNumber = stripLabel(cleanText(metaCells.Eq(2)), docNumberPrefixes)

	// Newer templates repurposed the transaction cell as the VAT identifier;
	// the header box renders it either way.
	d.VATNumber = d.TransactionNumber

	return nil
}

// extractLineItems reads table 3. Rows with the reserved ticket codes feed
// the delivery/weigh ticket aggregates instead of producing line items.
func extractLineItems(tables *goquery.Selection, d *Document) error {
	t, err := table(tables, 2)
	if err != nil {
		return err
	}

	var dtRefs, wtRefs []string
	var itemErr error
	t.Find("tr").EachWithBreak(func(i int, r *goquery.Selection) bool {
		cells := r.Find("td")
		if cells.Length() < 5 {
			itemErr = fmt.Errorf("%w: table 3 row %d has %d cells", ErrMissingCell, i+1, cells.Length())
			return false
		}

		code := cleanText(cells.Eq(0))
		description := cleanText(cells.Eq(1))
		switch code {
		case deliveryTicketCode:
			dtRefs = append(dtRefs, description)
			return true
		case weighTicketCode:
			wtRefs = append(wtRefs, description)
			return true
		}

		d.Items = append(d.Items, lineItemFromCells(code, description, cells))
		return true
	})
	if itemErr != nil {
		return itemErr
	}

	d.DeliveryTickets = joinTicketRefs(dtRefs)
	d.WeighTickets = joinTicketRefs(wtRefs)
	return nil
}

// lineItemFromCells builds a LineItem from a table-3 row. The template has
// three row shapes across its versions, distinguished by cell count:
//
//	5 cells: code, description, quantity, price, amount (legacy, no unit)
//	6 cells: code, description, unit, quantity, price, amount
//	7 cells: code, description, unit, quantity, price, discount, amount
//
// A trailing "T" marker in the amount cell flags the line as taxable.
func lineItemFromCells(code, description string, cells *goquery.Selection) LineItem {
	it := LineItem{Code: code, Description: description}

	switch {
	case cells.Length() >= 7:
		it.Unit = cleanText(cells.Eq(2))
		it.Quantity = cleanText(cells.Eq(3))
		it.Price = cleanAmount(cells.Eq(4))
		it.Discount = cleanAmount(cells.Eq(5))
		it.Amount = cleanAmount(cells.Eq(6))
	case cells.Length() == 6:
		it.Unit = cleanText(cells.Eq(2))
		it.Quantity = cleanText(cells.Eq(3))
		it.Price = cleanAmount(cells.Eq(4))
		it.Amount = cleanAmount(cells.Eq(5))
	default:
		it.Quantity = cleanText(cells.Eq(2))
		it.Price = cleanAmount(cells.Eq(3))
		it.Amount = cleanAmount(cells.Eq(4))
	}

	if rest, ok := strings.CutSuffix(it.Amount, " T"); ok {
		it.Amount = rest
		it.Taxable = true
	}
	return it
}

// joinTicketRefs filters each ticket description down to digits,
// punctuation, and whitespace, trims it, and joins the survivors with
// single spaces.
func joinTicketRefs(refs []string) string {
	var out []string
	for _, ref := range refs {
		var b strings.Builder
		for _, r := range ref {
			if unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSpace(r) {
				b.WriteRune(r)
			}
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, " ")
}

// extractAmounts reads a two-column name/value table (totals or payments).
func extractAmounts(tables *goquery.Selection, index int) ([]Amount, error) {
	t, err := table(tables, index)
	if err != nil {
		return nil, err
	}

	var amounts []Amount
	var rowErr error
	t.Find("tr").EachWithBreak(func(i int, r *goquery.Selection) bool {
		cells := r.Find("td")
		if cells.Length() < 2 {
			rowErr = fmt.Errorf("%w: table %d row %d", ErrMissingCell, index+1, i+1)
			return false
		}
		amounts = append(amounts, Amount{
			Name:  cleanText(cells.Eq(0)),
			Value: cleanAmount(cells.Eq(1)),
		})
		return true
	})
	return amounts, rowErr
}

// extractAmountDue reads table 7: a single "amount due" row whose third cell
// carries the value. Kept on the model but not rendered yet.
func extractAmountDue(tables *goquery.Selection, d *Document) error {
	t, err := table(tables, 6)
	if err != nil {
		return err
	}
	cells := t.Find("td")
	if cells.Length() < 3 {
		return ErrNoAmountDue
	}
	d.AmountDue = cleanAmount(cells.Eq(2))
	return nil
}

// extractEmployee reads table 8: label cell, then the clerk name.
func extractEmployee(tables *goquery.Selection, d *Document) error {
	t, err := table(tables, 7)
	if err != nil {
		return err
	}
	cells := t.Find("td")
	if cells.Length() < 2 {
		return ErrNoEmployee
	}
	d.Employee = cleanText(cells.Eq(1))
	return nil
}

// extractSlogan reads table 9: a single cell with the footer slogan.
func extractSlogan(tables *goquery.Selection, d *Document) error {
	t, err := table(tables, 8)
	if err != nil {
		return err
	}
	cells := t.Find("td")
	if cells.Length() < 1 {
		return ErrNoSlogan
	}
	d.Slogan = cleanText(cells.Eq(0))
	return nil
}

// table returns the i-th table (0-based) or a checkpoint error naming the
// 1-based table number the template was expected to contain.
func table(tables *goquery.Selection, i int) (*goquery.Selection, error) {
	if tables.Length() <= i {
		return nil, fmt.Errorf("%w: table %d", ErrMissingTable, i+1)
	}
	return tables.Eq(i), nil
}

// row returns the i-th row (0-based) of a table selection, naming the
// 1-based table and row in the checkpoint error.
func row(rows *goquery.Selection, tableNum, i int) (*goquery.Selection, error) {
	if rows.Length() <= i {
		return nil, fmt.Errorf("%w: table %d row %d", ErrMissingRow, tableNum, i+1)
	}
	return rows.Eq(i), nil
}

// splitCompanyBlock splits the cleaned company block into the display name
// (first line) and the contact line (remaining lines joined with bullets).
func splitCompanyBlock(block string) (name, info string) {
	lines := strings.Split(block, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	return lines[0], strings.Join(lines[1:], " • ")
}

// stripLabel removes the first matching label prefix, or returns the value
// verbatim when no known label is present.
func stripLabel(value string, prefixes []string) string {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(value, p); ok {
			return rest
		}
	}
	return value
}

// textNodes collects the raw text nodes under a selection in document order.
func textNodes(sel *goquery.Selection) []string {
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			out = append(out, n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return out
}

// cleanText concatenates all text nodes under an element with single-space
// separators, collapses runs of whitespace, and trims.
func cleanText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(strings.Join(textNodes(sel), " ")), " ")
}

// cleanAmount is cleanText with one leading currency symbol stripped.
func cleanAmount(sel *goquery.Selection) string {
	return strings.TrimPrefix(cleanText(sel), "$")
}

// cleanMultiline preserves the source line breaks: text nodes are
// concatenated, re-split on line breaks, each line's whitespace collapsed,
// empty lines dropped, and the survivors rejoined with newlines. Used for
// the company and customer address blocks where line breaks are meaningful.
func cleanMultiline(sel *goquery.Selection) string {
	folded := strings.Join(textNodes(sel), " ")
	var lines []string
	for _, line := range strings.Split(folded, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
