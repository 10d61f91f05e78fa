package scalehouse

import (
	"context"
	"fmt"
)

// Compile-time interface implementation checks.
var _ pageDevice = (*canvasDevice)(nil)

// Input carries one conversion request: the raw mail body as delivered,
// garbage bytes and all.
type Input struct {
	Mail string
}

// Result is the outcome of one conversion. Document is the normalized model
// the PDF was rendered from, exposed for callers that want to inspect or
// index what was printed.
type Result struct {
	PDF      []byte
	Document *Document
}

// converterConfig holds the per-converter settings applied by options.
type converterConfig struct {
	companyName string
	companyInfo string
}

// Option customizes a Converter at construction time.
type Option func(*Converter)

// WithCompanyHeader overrides the company name and contact line printed in
// the page header, replacing whatever the mail carries. Useful when the
// upstream system emits a stale or abbreviated company block.
func WithCompanyHeader(name, info string) Option {
	return func(c *Converter) {
		c.cfg.companyName = name
		c.cfg.companyInfo = info
	}
}

// Converter turns sale-notification mails into paginated PDF documents.
// Create with NewConverter; a Converter is safe for concurrent use.
type Converter struct {
	res       *Resources
	cfg       converterConfig
	newDevice func() (pageDevice, error)
}

// NewConverter creates a Converter around loaded render resources.
func NewConverter(res *Resources, opts ...Option) (*Converter, error) {
	if res == nil {
		return nil, ErrNilResources
	}

	c := &Converter{res: res}
	for _, opt := range opts {
		opt(c)
	}

	// Create the render device factory if not injected (e.g., by tests).
	if c.newDevice == nil {
		c.newDevice = func() (pageDevice, error) {
			return newCanvasDevice(res)
		}
	}
	return c, nil
}

// Convert runs the full pipeline and returns the rendered PDF together with
// the normalized document model. The context is checked between stages.
// Recovers from internal panics to prevent crashes from propagating to
// callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Mail == "" {
		return nil, ErrEmptyMail
	}

	doc, err := ExtractDocument(input.Mail)
	if err != nil {
		return nil, fmt.Errorf("extracting document: %w", err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if c.cfg.companyName != "" {
		doc.CompanyName = c.cfg.companyName
	}
	if c.cfg.companyInfo != "" {
		doc.CompanyInfo = c.cfg.companyInfo
	}

	if err := NormalizeDocument(doc); err != nil {
		return nil, fmt.Errorf("normalizing document: %w", err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	lay := SelectLayout(doc)

	dev, err := c.newDevice()
	if err != nil {
		return nil, err
	}
	if err := typesetDocument(doc, lay, dev); err != nil {
		return nil, fmt.Errorf("typesetting document: %w", err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	pdfBytes, err := dev.Finish()
	if err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}

	return &Result{PDF: pdfBytes, Document: doc}, nil
}
