// Package scalehouse converts the HTML sale-notification mails emitted by a
// scale-house point-of-sale system into paginated PDF business documents:
// invoices, receipts, and quotes.
//
// # Quick Start
//
// Load the render resources once, create a converter, and convert mails:
//
//	res, err := scalehouse.LoadResources("/usr/share/scalehouse")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	conv, err := scalehouse.NewConverter(res)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, scalehouse.Input{Mail: rawMail})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// The result carries both the PDF bytes (result.PDF) and the normalized
// document model (result.Document) for callers that index or inspect what
// was printed.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Document extraction: locate the HTML fragment in the raw mail and walk
//     its fixed table sequence into a typed Document
//  2. Normalization: the cash-deposit business rule ("Pay on Account")
//  3. Layout selection: receipt, standard, or standard-with-discounts
//  4. Typesetting: absolute-positioned draw operations on a US-Letter grid
//  5. PDF rendering via tdewolff/canvas
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := scalehouse.NewConverter(res,
//	    scalehouse.WithCompanyHeader("ACME Aggregates", "555-0100 • acme.example"),
//	)
//
// # Render Resources
//
// LoadResources reads the assets from a data directory:
//
//	data/
//	├── fonts/
//	│   ├── NotoSans-Regular.ttf
//	│   ├── NotoSans-Bold.ttf
//	│   └── NotoSansMono-Regular.ttf
//	└── logo.png
package scalehouse
