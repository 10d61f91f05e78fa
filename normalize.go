package scalehouse

import (
	"fmt"
	"strings"

	"github.com/divan/num2words"
	"github.com/shopspring/decimal"
)

// payOnAccountLabel marks the payment entry that represents a cash deposit.
const payOnAccountLabel = "Pay on Account"

// NormalizeDocument applies the business-rule pass that runs exactly once on
// a fully extracted Document, before layout selection.
//
// Deposit rule: a payment named "Pay on Account" is a cash deposit, and a
// deposit receipt is self-contained — its stated total must equal the
// deposit, not the sum of the underlying line items. The payment entry is
// removed, a synthetic line item spelling the deposit amount in words is
// appended, and the Totals sequence is replaced with a single "Total:" entry
// equal to the deposit. The rule fires at most once per document.
//
// Documents without such a payment pass through untouched.
func NormalizeDocument(d *Document) error {
	idx := -1
	for i, tender := range d.Payments {
		if tender.Name == payOnAccountLabel {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	tender := d.Payments[idx]
	d.Payments = append(d.Payments[:idx], d.Payments[idx+1:]...)

	value, err := decimal.NewFromString(strings.TrimSpace(tender.Value))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrDepositValue, tender.Value)
	}
	value = value.Abs()

	d.Items = append(d.Items, LineItem{
		Description: fmt.Sprintf("Received as cash deposit the sum of %s for materials.", amountInWords(value)),
		Amount:      value.StringFixed(2),
	})
	d.Totals = []Amount{{Name: "Total:", Value: value.StringFixed(2)}}
	return nil
}

// amountInWords spells a dollar amount, e.g. "one hundred twenty-three
// dollars" or "five dollars and seven cents".
func amountInWords(v decimal.Decimal) string {
	dollars := v.IntPart()
	cents := v.Sub(v.Truncate(0)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	s := num2words.Convert(int(dollars)) + " dollars"
	if cents > 0 {
		s += " and " + num2words.Convert(int(cents)) + " cents"
	}
	return s
}
