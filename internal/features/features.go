// Package features converts unclassified blocks into the fixed-schema numeric
// records consumed by the structure classifier. The field set and order are
// the contract with the trained model; changing either invalidates saved
// artifacts.
package features

import (
	"strings"

	"github.com/docforge/outliner/internal/heuristics"
	"github.com/docforge/outliner/internal/model"
)

// Names lists the record fields in schema order.
var Names = []string{
	"font_size_ratio",
	"is_bold",
	"word_count",
	"is_all_caps",
	"is_title_case",
	"has_form_keyword",
	"is_numbered_list",
	"is_page_number",
	"x_position",
	"y_position",
	"block_width",
	"block_height",
	"gap_above",
}

// maxWords bounds the block lengths the classifier was trained on.
const maxWords = 50

// Record is one classifier input row.
type Record struct {
	FontSizeRatio  float64
	IsBold         bool
	WordCount      int
	IsAllCaps      bool
	IsTitleCase    bool
	HasFormKeyword bool
	IsNumberedList bool
	IsPageNumber   bool
	XPosition      float64
	YPosition      float64
	BlockWidth     float64
	BlockHeight    float64
	GapAbove       float64
}

// Vector returns the record's values in the order given by Names.
func (r Record) Vector() []float64 {
	return []float64{
		r.FontSizeRatio,
		boolVal(r.IsBold),
		float64(r.WordCount),
		boolVal(r.IsAllCaps),
		boolVal(r.IsTitleCase),
		boolVal(r.HasFormKeyword),
		boolVal(r.IsNumberedList),
		boolVal(r.IsPageNumber),
		r.XPosition,
		r.YPosition,
		r.BlockWidth,
		r.BlockHeight,
		r.GapAbove,
	}
}

func boolVal(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Build maps a block to a classifier record. The second return value is false
// when the block is not applicable: OCR-sourced, empty, span-less, or with a
// word count outside the trained range. Such blocks are silently excluded
// from classification rather than treated as errors.
func Build(b *model.Block, stats heuristics.Stats, pageWidth, pageHeight float64, prev *model.Block) (Record, bool) {
	if b.Source == model.SourceOCR {
		return Record{}, false
	}
	spans := b.Spans()
	if len(spans) == 0 {
		return Record{}, false
	}
	text := b.Text()
	if text == "" {
		return Record{}, false
	}
	words := len(strings.Fields(text))
	if words < 1 || words > maxWords {
		return Record{}, false
	}

	var sizeSum float64
	bold := false
	for _, s := range spans {
		sizeSum += s.Size
		if s.Bold() {
			bold = true
		}
	}
	avgSize := sizeSum / float64(len(spans))

	gap := b.BBox.Y0
	if prev != nil {
		gap = b.BBox.Y0 - prev.BBox.Y1
	}

	return Record{
		FontSizeRatio:  avgSize / stats.MedianFontSize,
		IsBold:         bold,
		WordCount:      words,
		IsAllCaps:      heuristics.IsAllCaps(text),
		IsTitleCase:    heuristics.IsTitleCase(text),
		HasFormKeyword: heuristics.HasFormKeyword(text),
		IsNumberedList: heuristics.HasNumberedPrefix(text),
		IsPageNumber:   heuristics.IsNumeric(text),
		XPosition:      b.BBox.X0 / pageWidth,
		YPosition:      b.BBox.Y0 / pageHeight,
		BlockWidth:     b.BBox.Width() / pageWidth,
		BlockHeight:    b.BBox.Height(),
		GapAbove:       gap,
	}, true
}
