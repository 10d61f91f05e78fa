// Package moneyfmt renders the currency, quantity, and unit-of-measure
// fields of line items as fixed-width monospace cells.
//
// All monetary strings are display-ready two-decimal values produced
// upstream; this package never does arithmetic, only padding and symbol
// placement.
package moneyfmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Unit-of-measure codes.
const (
	UnitEach = "EA"
	UnitTon  = "TON"
)

// Item codes 2000-2099 are blocks, sold by the each; everything else is
// bulk material sold by the ton.
const (
	eachCodeLow  = 2000
	eachCodeHigh = 2100 // exclusive
)

// ErrItemCode reports a line-item code that cannot be parsed as a number
// during unit-of-measure inference.
var ErrItemCode = errors.New("item code is not numeric")

// Currency right-justifies a decimal string to 11 characters and prefixes
// the currency symbol. An empty value renders as nothing at all: no symbol,
// no padding.
func Currency(v string) string {
	if v == "" {
		return ""
	}
	return fmt.Sprintf("$%11s", v)
}

// Quantity right-pads a quantity string to the fixed column width. For
// each-counted goods a meaningless ".00" fraction is suppressed and the
// integer part is shifted left by the width of the dropped fraction.
func Quantity(qty, unit string) string {
	if qty == "" {
		return ""
	}
	if unit == UnitEach && strings.HasSuffix(qty, ".00") {
		return fmt.Sprintf("%7s    ", strings.TrimSuffix(qty, ".00"))
	}
	return fmt.Sprintf("%10s", qty)
}

// UnitForCode infers the unit-of-measure from a numeric item code. This is
// a compatibility fallback for older mails that carry no explicit unit;
// prefer LineItem.Unit when it is set.
func UnitForCode(code string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrItemCode, code)
	}
	if n >= eachCodeLow && n < eachCodeHigh {
		return UnitEach, nil
	}
	return UnitTon, nil
}
