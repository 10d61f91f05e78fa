package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scalehouse/scalehouse"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput  = errors.New("no input mail given")
	ErrReadMail = errors.New("failed to read mail file")
	ErrWritePDF = errors.New("failed to write PDF file")
)

// docConverter is the interface the CLI needs from the library. Narrowed
// for testability.
type docConverter interface {
	Convert(ctx context.Context, input scalehouse.Input) (*scalehouse.Result, error)
}

// run reads the mail, delegates to the converter, and writes the PDF.
func run(ctx context.Context, args []string, conv docConverter, out io.Writer) error {
	if len(args) < 1 {
		return ErrNoInput
	}

	inputPath := args[0]
	outputPath := ""
	if len(args) > 1 {
		outputPath = args[1]
	}
	if outputPath == "" {
		outputPath = replaceExt(inputPath, ".pdf")
	}

	mail, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMail, err)
	}

	result, err := conv.Convert(ctx, scalehouse.Input{Mail: string(mail)})
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, result.PDF, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}

	fmt.Fprintf(out, "Created %s (%s %s)\n", outputPath, result.Document.Type, result.Document.DocNumber)
	return nil
}

// replaceExt swaps the extension of path for ext, appending when path has
// none.
func replaceExt(path, ext string) string {
	if i := strings.LastIndexByte(path, '.'); i > strings.LastIndexByte(path, '/') {
		return path[:i] + ext
	}
	return path + ext
}
