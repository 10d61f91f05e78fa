package scalehouse

import "testing"

func TestDocTypeLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ        DocType
		wantString string
		wantLabel  string
	}{
		{DocInvoice, "Invoice", "Invoice Number:"},
		{DocReceipt, "Receipt", "Receipt Number:"},
		{DocQuote, "Quote", "Quote Number:"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.wantString {
			t.Errorf("String() = %q, want %q", got, tt.wantString)
		}
		if got := tt.typ.NumberLabel(); got != tt.wantLabel {
			t.Errorf("NumberLabel() = %q, want %q", got, tt.wantLabel)
		}
	}
}

func TestHasDiscounts(t *testing.T) {
	t.Parallel()

	d := &Document{Items: []LineItem{{Code: "100"}, {Code: "200"}}}
	if d.HasDiscounts() {
		t.Error("HasDiscounts = true without discounts")
	}

	d.Items[1].Discount = "10.00"
	if !d.HasDiscounts() {
		t.Error("HasDiscounts = false with a discount present")
	}

	d.Items[1].Discount = "   "
	if d.HasDiscounts() {
		t.Error("HasDiscounts = true for whitespace-only discount")
	}
}
