// Package extract is the extraction collaborator: it turns a document file
// into the page-ordered block list the pipeline consumes. Native text comes
// from the PDF text layer via pdfcpu; pages with too few native blocks are
// treated as scanned and fall back to OCR.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/docforge/outliner/internal/model"
)

// minNativeBlocks is the per-page threshold below which a page is considered
// scanned and OCR is triggered.
const minNativeBlocks = 3

// ocrFontSize is the synthetic size assigned to OCR spans; Tesseract reports
// pixel boxes, not typographic sizes.
const ocrFontSize = 12.0

// ocrFontName is the placeholder font for OCR spans.
const ocrFontName = "OCR-Default"

// Config tunes the extractor.
type Config struct {
	// OCRLanguage is the Tesseract language string, e.g. "eng" or "eng+fra".
	OCRLanguage string
	// DisableOCR skips the scanned-page fallback entirely.
	DisableOCR bool
	Logger     *slog.Logger
}

// Extractor extracts positioned text blocks from PDF files.
type Extractor struct {
	cfg    Config
	ocr    *ocrEngine
	logger *slog.Logger
}

// New creates an extractor.
func New(cfg Config) *Extractor {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	e := &Extractor{cfg: cfg, logger: cfg.Logger}
	if !cfg.DisableOCR {
		e.ocr = newOCREngine(cfg.OCRLanguage, cfg.Logger)
	}
	return e
}

// Close releases OCR resources.
func (e *Extractor) Close() error {
	if e.ocr != nil {
		return e.ocr.Close()
	}
	return nil
}

// ExtractBlocks returns all blocks of the document in page-then-reading
// order. An unreadable file returns a wrapped error and no blocks.
func (e *Extractor) ExtractBlocks(ctx context.Context, path string) ([]*model.Block, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("document not found: %w", err)
	}

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", path, err)
	}
	pageCount := pdfCtx.PageCount

	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}

	var all []*model.Block
	for page := 0; page < pageCount; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		width, height := 595.0, 842.0
		if page < len(dims) {
			width, height = dims[page].Width, dims[page].Height
		}

		native, err := e.nativePageBlocks(pdfCtx, path, page, width, height, conf)
		if err != nil {
			e.logger.Debug("native extraction failed for page",
				"file", path, "page", page, "error", err)
		}

		if len(native) >= minNativeBlocks || e.ocr == nil {
			all = append(all, native...)
			continue
		}

		// Scanned page: recognize the rasterized content instead.
		ocrBlocks, err := e.ocr.recognizePage(ctx, path, page, width, height, conf)
		if err != nil {
			e.logger.Warn("OCR failed for page, keeping native blocks",
				"file", path, "page", page, "error", err)
			all = append(all, native...)
			continue
		}
		if len(ocrBlocks) == 0 {
			all = append(all, native...)
			continue
		}
		e.logger.Debug("OCR applied", "file", path, "page", page, "blocks", len(ocrBlocks))
		all = append(all, ocrBlocks...)
	}

	return all, nil
}

// nativePageBlocks extracts the vector text layer of one page (0-based).
func (e *Extractor) nativePageBlocks(pdfCtx *pdfmodel.Context, path string, page int, width, height float64, conf *pdfmodel.Configuration) ([]*model.Block, error) {
	content, err := pageContent(path, page+1, conf)
	if err != nil {
		return nil, err
	}
	fonts := pageFonts(pdfCtx, page+1)
	return scanContent(content, fonts, page, width, height), nil
}
