package scalehouse

// Page geometry in PostScript points. US Letter: 8.5" x 11" = 612pt x 792pt.
const (
	pageWidthPt  = 612.0
	pageHeightPt = 792.0

	leftMarginPt  = 54.0
	rightMarginPt = 558.0
)

// itemField identifies one column of the line-item table. The typesetting
// loop is generic over the enabled columns of the selected layout, so the
// three layout variants share a single rendering pass.
type itemField int

const (
	fieldCode itemField = iota
	fieldDescription
	fieldUnit
	fieldQuantity
	fieldPrice
	fieldDiscount
	fieldTotal
)

// itemColumn binds a field to the horizontal offset its cell starts at.
type itemColumn struct {
	field itemField
	x     float64 // pt
	label string  // header-row label
}

// Layout fixes the geometry of one document-format variant: the column
// boundaries partitioning the line-item table, the enabled columns, and the
// description width that forces wrapping.
type Layout struct {
	Name       string
	MaxDescLen int

	// boundaries are the x-offsets of the vertical divider lines inside the
	// line-item box. columns[i].x is the left edge of each enabled cell.
	boundaries []float64
	columns    []itemColumn
}

// hasField reports whether the layout displays the given column.
func (l Layout) hasField(f itemField) bool {
	for _, col := range l.columns {
		if col.field == f {
			return true
		}
	}
	return false
}

var (
	// layoutStandard: invoices and quotes without per-line discounts.
	// Five data columns plus the item-code column at the left margin.
	layoutStandard = Layout{
		Name:       "Standard",
		MaxDescLen: 23,
		boundaries: []float64{104, 282, 322, 393, 476},
		columns: []itemColumn{
			{fieldCode, leftMarginPt, "Item"},
			{fieldDescription, 104, "Description"},
			{fieldUnit, 282, "U/M"},
			{fieldQuantity, 322, "Quantity"},
			{fieldPrice, 393, "Unit Price"},
			{fieldTotal, 476, "Total"},
		},
	}

	// layoutStandardWithDiscounts squeezes in a discount column between
	// unit price and total.
	layoutStandardWithDiscounts = Layout{
		Name:       "StandardWithDiscounts",
		MaxDescLen: 21,
		boundaries: []float64{104, 262, 302, 358, 428, 496},
		columns: []itemColumn{
			{fieldCode, leftMarginPt, "Item"},
			{fieldDescription, 104, "Description"},
			{fieldUnit, 262, "U/M"},
			{fieldQuantity, 302, "Quantity"},
			{fieldPrice, 358, "Unit Price"},
			{fieldDiscount, 428, "Disc"},
			{fieldTotal, 496, "Total"},
		},
	}

	// layoutReceipt shows only description and total.
	layoutReceipt = Layout{
		Name:       "Receipt",
		MaxDescLen: 60,
		boundaries: []float64{476},
		columns: []itemColumn{
			{fieldDescription, leftMarginPt, "Description"},
			{fieldTotal, 476, "Total"},
		},
	}
)

// SelectLayout chooses the layout variant for a normalized document. It is
// a pure function of the document type and discount presence:
//
//	Receipt               — document type is Receipt, discounts irrelevant
//	StandardWithDiscounts — Invoice or Quote with at least one discount
//	Standard              — Invoice or Quote without discounts
func SelectLayout(d *Document) Layout {
	if d.Type == DocReceipt {
		return layoutReceipt
	}
	if d.HasDiscounts() {
		return layoutStandardWithDiscounts
	}
	return layoutStandard
}
