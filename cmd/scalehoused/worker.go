package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scalehouse/scalehouse"
)

// deliverTimeout bounds the HTTP delivery of one finished PDF.
const deliverTimeout = 30 * time.Second

// worker drains the mail queue: each path is converted, written next to the
// configured output directory, and optionally delivered over HTTP. A failed
// mail is renamed with the failed suffix so it is skipped on restart and
// left behind for inspection.
type worker struct {
	log        *zap.Logger
	conv       *scalehouse.Converter
	outDir     string
	deliverURL string
	client     *http.Client
}

func (wk *worker) run(ctx context.Context, paths <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-paths:
			if !ok {
				return
			}
			if err := wk.process(ctx, path); err != nil {
				wk.log.Error("conversion failed",
					zap.String("mail", path),
					zap.Error(err))
				wk.quarantine(path)
			}
		}
	}
}

// process converts one mail file into a PDF.
func (wk *worker) process(ctx context.Context, path string) error {
	mail, err := os.ReadFile(path) // #nosec G304 -- path comes from the watched inbox
	if err != nil {
		return fmt.Errorf("reading mail: %w", err)
	}

	result, err := wk.conv.Convert(ctx, scalehouse.Input{Mail: string(mail)})
	if err != nil {
		return err
	}

	outPath := wk.outputPath(path)
	if err := os.WriteFile(outPath, result.PDF, 0o644); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}

	wk.log.Info("converted",
		zap.String("mail", path),
		zap.String("pdf", outPath),
		zap.String("type", result.Document.Type.String()),
		zap.String("number", result.Document.DocNumber))

	if wk.deliverURL != "" {
		if err := wk.deliver(ctx, outPath, result.PDF); err != nil {
			return fmt.Errorf("delivering PDF: %w", err)
		}
	}
	return nil
}

// outputPath maps a mail path to its PDF destination.
func (wk *worker) outputPath(mailPath string) string {
	base := filepath.Base(mailPath)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	dir := wk.outDir
	if dir == "" {
		dir = filepath.Dir(mailPath)
	}
	return filepath.Join(dir, base+".pdf")
}

// deliver POSTs the finished PDF to the configured endpoint.
func (wk *worker) deliver(ctx context.Context, name string, pdf []byte) error {
	ctx, cancel := context.WithTimeout(ctx, deliverTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wk.deliverURL, bytes.NewReader(pdf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("X-Document-Name", filepath.Base(name))

	resp, err := wk.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected delivery status %s", resp.Status)
	}
	return nil
}

// quarantine renames a failed mail so the watcher skips it from now on.
func (wk *worker) quarantine(path string) {
	if err := os.Rename(path, path+failedSuffix); err != nil {
		wk.log.Warn("quarantine rename failed",
			zap.String("mail", path),
			zap.Error(err))
	}
}
