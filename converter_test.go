package scalehouse

import (
	"context"
	"errors"
	"testing"
)

func newTestConverter(t *testing.T, rec *recorder, opts ...Option) *Converter {
	t.Helper()

	conv, err := NewConverter(&Resources{}, opts...)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	conv.newDevice = func() (pageDevice, error) { return rec, nil }
	return conv
}

func TestNewConverter_NilResources(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(nil)
	if !errors.Is(err, ErrNilResources) {
		t.Errorf("NewConverter(nil) error = %v, want ErrNilResources", err)
	}
}

func TestConvert_EmptyMail(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, &recorder{})
	_, err := conv.Convert(context.Background(), Input{})
	if !errors.Is(err, ErrEmptyMail) {
		t.Errorf("Convert error = %v, want ErrEmptyMail", err)
	}
}

func TestConvert_EndToEnd(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	conv := newTestConverter(t, rec)

	result, err := conv.Convert(context.Background(), Input{Mail: buildMail("Invoice", defaultItemRows)})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if len(result.PDF) == 0 {
		t.Error("result.PDF is empty")
	}
	if !rec.finished {
		t.Error("device Finish was never called")
	}
	if result.Document == nil || result.Document.DocNumber != "10023" {
		t.Errorf("result.Document = %+v", result.Document)
	}
	if _, ok := rec.findText("10023"); !ok {
		t.Error("document number never reached the device")
	}
}

func TestConvert_CompanyHeaderOverride(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	conv := newTestConverter(t, rec,
		WithCompanyHeader("Scale House Materials", "555-0100"))

	result, err := conv.Convert(context.Background(), Input{Mail: buildMail("Invoice", defaultItemRows)})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if result.Document.CompanyName != "Scale House Materials" {
		t.Errorf("CompanyName = %q, want override", result.Document.CompanyName)
	}
	if result.Document.CompanyInfo != "555-0100" {
		t.Errorf("CompanyInfo = %q, want override", result.Document.CompanyInfo)
	}
	if _, ok := rec.findText("Scale House Materials"); !ok {
		t.Error("overridden company name never reached the device")
	}
}

func TestConvert_ExtractionErrorPropagates(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, &recorder{})
	_, err := conv.Convert(context.Background(), Input{Mail: "no markup here"})
	if !errors.Is(err, ErrNoHTMLFragment) {
		t.Errorf("Convert error = %v, want ErrNoHTMLFragment", err)
	}
}

func TestConvert_CancelledContext(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, &recorder{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.Convert(ctx, Input{Mail: buildMail("Invoice", defaultItemRows)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert error = %v, want context.Canceled", err)
	}
}
