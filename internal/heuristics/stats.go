// Package heuristics implements the document-structure classification rules:
// document statistics, title extraction, header/footer and table noise
// filtering, and heading recognition.
package heuristics

import (
	"sort"

	"github.com/docforge/outliner/internal/model"
)

// DefaultFontSize is assumed when a document carries no native spans.
const DefaultFontSize = 12.0

// DefaultLineSpacing is assumed when no multi-line native blocks exist.
const DefaultLineSpacing = 12.0

// Stats holds document-wide layout statistics consumed by the classifiers.
type Stats struct {
	// MedianFontSize is the element at index n/2 of the sorted native span sizes.
	MedianFontSize float64
	// AvgLineSpacing is the mean positive gap between consecutive lines,
	// measured over native blocks with at least two lines.
	AvgLineSpacing float64
}

// Collect computes document statistics over all blocks.
// OCR-sourced blocks carry a synthetic font size and contribute nothing.
func Collect(blocks []*model.Block) Stats {
	return Stats{
		MedianFontSize: medianFontSize(blocks),
		AvgLineSpacing: avgLineSpacing(blocks),
	}
}

// medianFontSize returns the element at index n/2 of the sorted native span
// sizes, not the average of the two middle values for even n. Downstream
// thresholds are calibrated against this exact value.
func medianFontSize(blocks []*model.Block) float64 {
	var sizes []float64
	for _, b := range blocks {
		if b.Source == model.SourceOCR {
			continue
		}
		for _, line := range b.Lines {
			for _, span := range line.Spans {
				sizes = append(sizes, span.Size)
			}
		}
	}
	if len(sizes) == 0 {
		return DefaultFontSize
	}
	sort.Float64s(sizes)
	return sizes[len(sizes)/2]
}

func avgLineSpacing(blocks []*model.Block) float64 {
	var sum float64
	var n int
	for _, b := range blocks {
		if b.Source == model.SourceOCR || len(b.Lines) < 2 {
			continue
		}
		for i := 1; i < len(b.Lines); i++ {
			gap := b.Lines[i].BBox.Y0 - b.Lines[i-1].BBox.Y1
			if gap > 0 {
				sum += gap
				n++
			}
		}
	}
	if n == 0 {
		return DefaultLineSpacing
	}
	return sum / float64(n)
}

// avgSpanSize returns the unweighted mean font size over the given spans,
// and false when there are none.
func avgSpanSize(spans []model.Span) (float64, bool) {
	if len(spans) == 0 {
		return 0, false
	}
	var sum float64
	for _, s := range spans {
		sum += s.Size
	}
	return sum / float64(len(spans)), true
}

// anyBold reports whether any span uses a bold font.
func anyBold(spans []model.Span) bool {
	for _, s := range spans {
		if s.Bold() {
			return true
		}
	}
	return false
}
