package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/avast/retry-go/v4"
	"github.com/otiai10/gosseract/v2"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/docforge/outliner/internal/model"
)

// ocrAttempts bounds retries of a flaky Tesseract invocation per page.
const ocrAttempts = 3

// ocrEngine wraps a Tesseract client. The client is not safe for concurrent
// use, so recognition is serialized with a mutex; extraction parallelism
// lives at the document level, not the page level.
type ocrEngine struct {
	mu     sync.Mutex
	client *gosseract.Client
	logger *slog.Logger
}

func newOCREngine(language string, logger *slog.Logger) *ocrEngine {
	client := gosseract.NewClient()
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			logger.Warn("failed to set OCR language, using default", "language", language, "error", err)
		}
	}
	return &ocrEngine{client: client, logger: logger}
}

func (e *ocrEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// recognizePage rasterizes one page (0-based) and runs OCR over it,
// reconstructing one single-line block per recognized text line. OCR spans
// carry the synthetic font size and placeholder font name.
func (e *ocrEngine) recognizePage(ctx context.Context, path string, page int, width, height float64, conf *pdfmodel.Configuration) ([]*model.Block, error) {
	imgData, err := pageImage(path, page+1, conf)
	if err != nil {
		return nil, err
	}
	if imgData == nil {
		return nil, nil
	}

	// Pixel coordinates from Tesseract are scaled back into page units.
	imgCfg, _, err := image.DecodeConfig(bytes.NewReader(imgData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode page image: %w", err)
	}
	scaleX := width / float64(imgCfg.Width)
	scaleY := height / float64(imgCfg.Height)

	var boxes []gosseract.BoundingBox
	err = retry.Do(
		func() error {
			e.mu.Lock()
			defer e.mu.Unlock()
			if err := e.client.SetImageFromBytes(imgData); err != nil {
				return fmt.Errorf("failed to set OCR image: %w", err)
			}
			var err error
			boxes, err = e.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
			if err != nil {
				return fmt.Errorf("OCR recognition failed: %w", err)
			}
			return nil
		},
		retry.Attempts(ocrAttempts),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	var blocks []*model.Block
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		bbox := model.BBox{
			X0: float64(box.Box.Min.X) * scaleX,
			Y0: float64(box.Box.Min.Y) * scaleY,
			X1: float64(box.Box.Max.X) * scaleX,
			Y1: float64(box.Box.Max.Y) * scaleY,
		}
		span := model.Span{
			Text: text + " ",
			Size: ocrFontSize,
			Font: ocrFontName,
			BBox: bbox,
		}
		blocks = append(blocks, &model.Block{
			Lines:      []model.Line{{Spans: []model.Span{span}, BBox: bbox}},
			BBox:       bbox,
			Page:       page,
			PageWidth:  width,
			PageHeight: height,
			Source:     model.SourceOCR,
			Type:       model.BlockTypeText,
		})
	}
	return blocks, nil
}

// pageImage extracts the scan image embedded in one page (1-based). Scanned
// documents carry the page as a single full-page image object, so embedded
// image extraction stands in for rendering here.
func pageImage(path string, pageNr int, conf *pdfmodel.Configuration) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "outliner-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pages := []string{strconv.Itoa(pageNr)}
	if err := api.ExtractImagesFile(path, tmpDir, pages, conf); err != nil {
		return nil, fmt.Errorf("failed to extract page image: %w", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}
	// A scanned page yields one image; take the largest if there are several.
	var best string
	var bestSize int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Size() > bestSize {
			best = filepath.Join(tmpDir, entry.Name())
			bestSize = info.Size()
		}
	}
	if best == "" {
		return nil, nil
	}
	return os.ReadFile(best)
}
