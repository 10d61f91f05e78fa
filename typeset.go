package scalehouse

import (
	"fmt"

	"github.com/scalehouse/scalehouse/internal/moneyfmt"
	"github.com/scalehouse/scalehouse/internal/textwrap"
)

// fontFace selects one of the three loaded typefaces.
type fontFace int

const (
	faceRegular fontFace = iota
	faceBold
	faceMono
)

// pageDevice receives absolute-positioned draw operations for exactly one
// page. Coordinates are PostScript points with the origin at the bottom-left
// corner of a US-Letter page; the y passed to Text is the text baseline.
type pageDevice interface {
	Text(x, y, size float64, face fontFace, s string)
	Line(x1, y1, x2, y2 float64)
	Box(x1, y1, x2, y2 float64)
	Logo(x, y, scale float64)
	Finish() ([]byte, error)
}

// Fixed vertical geometry of the page regions (pt, bottom-left origin).
const (
	titleY = 750.0

	companyNameY = 712.0
	companyInfoY = 690.0

	logoX     = 55.0
	logoY     = 682.0
	logoScale = 0.65

	headerBoxBottom = 640.0
	spacingPt       = 5.0

	infoBoxTop    = 630.0
	infoBoxBottom = 530.0
	infoTopY      = 618.0
	infoLineH     = 16.0

	itemBoxTop    = 514.0
	itemBoxBottom = 254.0
	headerRowH    = 20.0
	itemRowH      = 15.0

	totalsLineH  = 16.0
	totalsNameX  = 398.0
	totalsValueX = 481.0

	tenderTopY   = 214.0
	tenderValueX = 200.0

	signatureY = 84.0
	sloganY    = 54.0
	legalY     = 40.0
)

// legalLine is the boilerplate printed under the slogan on every document.
const legalLine = "All material is sold by weight or count as ticketed at the scale house."

// typesetDocument deterministically emits the draw operations for one
// normalized document against the selected layout, top region to bottom.
// Pagination overflow is the caller's concern: the design assumes the batch
// size keeps the line items on a single page.
func typesetDocument(d *Document, lay Layout, dev pageDevice) error {
	dev.Text(260, titleY, 14, faceBold, d.Title)

	dev.Text(225, companyNameY, 28, faceBold, d.CompanyName)
	dev.Text(228, companyInfoY, 18, faceRegular, d.CompanyInfo)
	dev.Logo(logoX, logoY, logoScale)

	drawHeaderBox(d, dev)
	drawInfoBoxes(d, dev)

	if err := drawItemTable(d, lay, dev); err != nil {
		return err
	}

	drawTotals(d.Totals, dev)
	drawTender(d.Payments, dev)

	// Signature line and footer.
	dev.Line(350, signatureY, rightMarginPt, signatureY)
	dev.Text(350, signatureY-10, 10, faceRegular, "Received By")
	dev.Text(258, sloganY, 9, faceRegular, d.Slogan)
	dev.Text(176, legalY, 7, faceRegular, legalLine)

	return nil
}

// drawHeaderBox renders the three label/value pairs under the company
// header: date, VAT identifier, and the per-document-type number.
func drawHeaderBox(d *Document, dev pageDevice) {
	positions := [3]float64{leftMarginPt, 222, 390}
	labelY := headerBoxBottom + 20
	valueY := headerBoxBottom + 4

	dev.Text(positions[0]+spacingPt, labelY, 8, faceBold, "Date/Time:")
	dev.Text(positions[1]+spacingPt, labelY, 8, faceBold, "VAT Number:")
	dev.Text(positions[2]+spacingPt, labelY, 8, faceBold, d.Type.NumberLabel())

	dev.Text(positions[0]+spacingPt, valueY, 12, faceRegular, d.Date)
	dev.Text(positions[1]+spacingPt, valueY, 12, faceRegular, d.VATNumber)
	dev.Text(positions[2]+spacingPt, valueY-1, 18, faceBold, d.DocNumber)
}

// drawInfoBoxes renders the customer address block and, in a parallel
// column, the clerk and ticket references.
func drawInfoBoxes(d *Document, dev pageDevice) {
	dev.Box(leftMarginPt, infoBoxBottom, rightMarginPt, infoBoxTop)

	y := infoTopY
	dev.Text(leftMarginPt+spacingPt, y, 8, faceBold, "Sold to:")
	for _, line := range splitLines(d.CustomerInfo) {
		y -= infoLineH
		dev.Text(leftMarginPt+spacingPt, y, 12, faceRegular, line)
	}

	x := 390 + spacingPt
	dev.Text(x, infoTopY, 8, faceBold, "Clerk:")
	dev.Text(x, infoTopY-16, 12, faceRegular, d.Employee)
	dev.Text(x, infoTopY-32, 8, faceBold, "Delivery Ticket #:")
	dev.Text(x, infoTopY-48, 12, faceRegular, d.DeliveryTickets)
	dev.Text(x, infoTopY-64, 8, faceBold, "Weigh Ticket #:")
	dev.Text(x, infoTopY-80, 12, faceRegular, d.WeighTickets)
}

// drawItemTable renders the line-item box, the column dividers, the header
// row, and one row per line item with wrapped descriptions. The row cursor
// is stateful and advances monotonically: every wrapped continuation line
// shifts all subsequent rows downward.
func drawItemTable(d *Document, lay Layout, dev pageDevice) error {
	dev.Box(leftMarginPt, itemBoxBottom, rightMarginPt, itemBoxTop)
	for _, x := range lay.boundaries {
		dev.Line(x, itemBoxBottom, x, itemBoxTop)
	}

	// Header row.
	bottom := itemBoxTop - headerRowH
	cursor := bottom + spacingPt
	dev.Line(leftMarginPt, bottom, rightMarginPt, bottom)
	for _, col := range lay.columns {
		dev.Text(col.x+spacingPt, cursor, 12, faceRegular, col.label)
	}

	// Data rows.
	bottom -= headerRowH
	cursor = bottom + spacingPt
	descX := descriptionX(lay)
	// Unit inference can reject a legacy item code, so it only runs when a
	// column actually displays the unit.
	needUnit := lay.hasField(fieldUnit) || lay.hasField(fieldQuantity)
	for i, it := range d.Items {
		var unit string
		if needUnit {
			var err error
			unit, err = itemUnit(it)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
		}

		descLines := textwrap.Lines(it.Description, lay.MaxDescLen)
		for _, col := range lay.columns {
			dev.Text(col.x+spacingPt, cursor, 10, faceMono, fieldValue(it, col.field, unit, descLines))
		}
		if it.Taxable {
			dev.Text(rightMarginPt+2, cursor, 10, faceMono, "T")
		}

		// Wrapped continuation lines each consume one extra row.
		if len(descLines) > 1 {
			for _, cont := range descLines[1:] {
				bottom -= itemRowH
				cursor = bottom + spacingPt
				dev.Text(descX+spacingPt, cursor, 10, faceMono, cont)
			}
		}
		bottom -= itemRowH
		cursor = bottom + spacingPt
	}
	return nil
}

// itemUnit resolves the unit-of-measure for one line item: the explicit
// field when present, code-range inference as the compatibility fallback,
// and blank for code-less synthetic lines (the deposit item).
func itemUnit(it LineItem) (string, error) {
	if it.Unit != "" {
		return it.Unit, nil
	}
	if it.Code == "" {
		return "", nil
	}
	return moneyfmt.UnitForCode(it.Code)
}

// fieldValue formats one cell of a line-item row.
func fieldValue(it LineItem, f itemField, unit string, descLines []string) string {
	switch f {
	case fieldCode:
		return it.Code
	case fieldDescription:
		if len(descLines) == 0 {
			return ""
		}
		return descLines[0]
	case fieldUnit:
		return unit
	case fieldQuantity:
		return moneyfmt.Quantity(it.Quantity, unit)
	case fieldPrice:
		return moneyfmt.Currency(it.Price)
	case fieldDiscount:
		return moneyfmt.Currency(it.Discount)
	case fieldTotal:
		return moneyfmt.Currency(it.Amount)
	}
	return ""
}

// descriptionX returns the left edge of the description column.
func descriptionX(lay Layout) float64 {
	for _, col := range lay.columns {
		if col.field == fieldDescription {
			return col.x
		}
	}
	return leftMarginPt
}

// drawTotals renders the totals block below the table on the right side.
// "Total:" is emphasized, "Tax:" is relabeled "VAT:" at render time only,
// and an empty-name entry draws a separator rule advancing the cursor by
// half a line instead of a full one.
func drawTotals(totals []Amount, dev pageDevice) {
	y := itemBoxBottom
	for _, amount := range totals {
		y -= totalsLineH
		if amount.Name == "" {
			dev.Line(totalsNameX, y+spacingPt, rightMarginPt, y+spacingPt)
			y += totalsLineH / 2
			continue
		}

		face := faceRegular
		if amount.Name == "Total:" {
			face = faceBold
		}
		name := amount.Name
		if name == "Tax:" {
			name = "VAT:"
		}
		dev.Text(totalsNameX, y, 12, face, name)
		dev.Text(totalsValueX, y, 10, faceMono, moneyfmt.Currency(amount.Value))
	}
}

// drawTender renders the payments block below the table on the left side.
func drawTender(payments []Amount, dev pageDevice) {
	x := leftMarginPt + spacingPt
	y := tenderTopY - totalsLineH
	dev.Text(x, y, 12, faceRegular, "Tender")
	y -= 4
	dev.Line(x, y, tenderValueX+80, y)
	for _, amount := range payments {
		y -= totalsLineH
		dev.Text(x, y, 10, faceRegular, amount.Name)
		dev.Text(tenderValueX, y, 10, faceMono, moneyfmt.Currency(amount.Value))
	}
}

// splitLines splits a newline-joined block, yielding nothing for an empty
// block.
func splitLines(block string) []string {
	if block == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(block); i++ {
		if block[i] == '\n' {
			lines = append(lines, block[start:i])
			start = i + 1
		}
	}
	return append(lines, block[start:])
}
