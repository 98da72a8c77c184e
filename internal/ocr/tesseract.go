// Package ocr extracts plain text from receipt images by shelling out to
// tesseract. The extractor is deliberately thin: it produces raw text and
// leaves all interpretation to the scanner package.
package ocr

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"smartpantry/internal/config"
)

// Extractor runs tesseract against image files on local disk.
type Extractor struct {
	cfg    config.OCRConfig
	runner Runner
}

// NewExtractor builds an extractor from configuration, filling in sensible
// tesseract defaults for anything unset.
func NewExtractor(cfg config.OCRConfig) *Extractor {
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.PageSegMode <= 0 {
		cfg.PageSegMode = 6
	}
	if cfg.EngineMode <= 0 {
		cfg.EngineMode = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Extractor{cfg: cfg, runner: execRunner{}}
}

// WithRunner swaps the command runner; used by tests.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// ExtractText runs one tesseract pass over the image at path and returns the
// recognized text. The call is bounded by the configured timeout on top of
// any deadline already on ctx.
func (e *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	args := []string{path, "stdout",
		"-l", e.cfg.Language,
		"--psm", strconv.Itoa(e.cfg.PageSegMode),
		"--oem", strconv.Itoa(e.cfg.EngineMode),
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	start := time.Now()
	out, _, err := e.runner.Run(ctx, e.cfg.Binary, args...)
	if err != nil {
		return "", fmt.Errorf("ocr.ExtractText: %w", err)
	}
	log.Printf("ocr.ExtractText: %s -> %d bytes in %s",
		path, len(out), time.Since(start).Round(time.Millisecond))
	return string(out), nil
}
