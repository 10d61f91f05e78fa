package moneyfmt_test

import (
	"errors"
	"testing"

	"github.com/scalehouse/scalehouse/internal/moneyfmt"
)

func TestCurrency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{
			name:  "right-justified with symbol",
			value: "600.00",
			want:  "$     600.00",
		},
		{
			name:  "wide value keeps symbol",
			value: "1234567.89",
			want:  "$ 1234567.89",
		},
		{
			name:  "empty renders nothing",
			value: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := moneyfmt.Currency(tt.value); got != tt.want {
				t.Errorf("Currency(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		qty  string
		unit string
		want string
	}{
		{
			name: "each with whole quantity drops fraction",
			qty:  "5.00",
			unit: moneyfmt.UnitEach,
			want: "      5    ",
		},
		{
			name: "each with fractional quantity keeps it",
			qty:  "5.50",
			unit: moneyfmt.UnitEach,
			want: "      5.50",
		},
		{
			name: "tonnage always keeps fraction",
			qty:  "12.00",
			unit: moneyfmt.UnitTon,
			want: "     12.00",
		},
		{
			name: "empty renders nothing",
			qty:  "",
			unit: moneyfmt.UnitEach,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := moneyfmt.Quantity(tt.qty, tt.unit); got != tt.want {
				t.Errorf("Quantity(%q, %q) = %q, want %q", tt.qty, tt.unit, got, tt.want)
			}
		})
	}
}

func TestUnitForCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    string
		want    string
		wantErr error
	}{
		{name: "low block code", code: "2000", want: moneyfmt.UnitEach},
		{name: "mid block code", code: "2050", want: moneyfmt.UnitEach},
		{name: "high block code", code: "2099", want: moneyfmt.UnitEach},
		{name: "just past block range", code: "2100", want: moneyfmt.UnitTon},
		{name: "bulk material code", code: "100", want: moneyfmt.UnitTon},
		{name: "code with surrounding spaces", code: " 2050 ", want: moneyfmt.UnitEach},
		{name: "non-numeric code", code: "abc", wantErr: moneyfmt.ErrItemCode},
		{name: "empty code", code: "", wantErr: moneyfmt.ErrItemCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := moneyfmt.UnitForCode(tt.code)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("UnitForCode(%q) error = %v, want %v", tt.code, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnitForCode(%q) unexpected error: %v", tt.code, err)
			}
			if got != tt.want {
				t.Errorf("UnitForCode(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}
