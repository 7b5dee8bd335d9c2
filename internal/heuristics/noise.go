package heuristics

import (
	"math"
	"regexp"
	"strings"

	"github.com/docforge/outliner/internal/model"
)

const (
	// headerBand and footerBand bound the page-height fractions treated as
	// repeating-chrome territory.
	headerBand = 0.15
	footerBand = 0.85

	// chromeSizeTolerance protects large-font headings from being counted
	// into a repetition signature: only blocks at or below this multiple of
	// the median font size may build one.
	chromeSizeTolerance = 1.2
)

// signature identifies a potentially repeating header or footer block.
type signature struct {
	text   string
	bucket string
}

// positionBucket assigns a block to the header or footer band, or "" when it
// sits in the page body.
func positionBucket(b *model.Block) string {
	switch {
	case b.BBox.Y0 < b.PageHeight*headerBand:
		return "header"
	case b.BBox.Y0 > b.PageHeight*footerBand:
		return "footer"
	default:
		return ""
	}
}

// FilterHeadersFooters removes blocks whose (text, position bucket) signature
// repeats on at least half the pages. Documents shorter than three pages are
// returned untouched; repetition is not meaningful there.
//
// Font size gates only signature construction: once a signature qualifies,
// every exact match is removed regardless of its styling.
func FilterHeadersFooters(blocks []*model.Block, pageCount int, stats Stats) []*model.Block {
	if pageCount < 3 {
		return blocks
	}

	tally := make(map[signature]int)
	for _, b := range blocks {
		text := b.NormText()
		if len(text) <= 2 || len(text) >= 80 || IsNumeric(text) {
			continue
		}
		if b.Source != model.SourceOCR {
			if avg, ok := avgSpanSize(b.Spans()); ok && avg > stats.MedianFontSize*chromeSizeTolerance {
				continue
			}
		}
		if bucket := positionBucket(b); bucket != "" {
			tally[signature{text, bucket}]++
		}
	}

	threshold := int(math.Ceil(float64(pageCount) * 0.5))
	repeating := make(map[signature]bool)
	for sig, count := range tally {
		if count >= threshold {
			repeating[sig] = true
		}
	}

	var out []*model.Block
	for _, b := range blocks {
		sig := signature{b.NormText(), positionBucket(b)}
		if repeating[sig] {
			continue
		}
		out = append(out, b)
	}
	return out
}

var (
	numberedLabelRe = regexp.MustCompile(`^\d+\.\s+[A-Z][a-z]`)
	numericPrefixRe = regexp.MustCompile(`^\d+\.`)
)

// formKeywords flag rows of administrative forms when combined with a
// numeric-dot prefix.
var formKeywords = []string{
	"name", "designation", "pay", "permanent", "temporary", "home town",
	"service book", "advance required", "government servant", "amount",
}

// HasFormKeyword reports whether text mentions one of the administrative
// form keywords.
func HasFormKeyword(text string) bool {
	return containsAny(strings.ToLower(text), formKeywords)
}

// IsTableBlock reports whether a native block looks like table or form-cell
// content. The reference list supplies adjacency context and must be the
// original unfiltered block set even when a filtered list is being scanned;
// callers thread it explicitly so the behavior stays reproducible.
func IsTableBlock(b *model.Block, reference []*model.Block, stats Stats) bool {
	if b.Source == model.SourceOCR {
		return false
	}

	text := b.Text()

	// Numbered capitalized label, e.g. "1. Name".
	if numberedLabelRe.MatchString(text) {
		return true
	}

	// Numeric prefix plus a form keyword, e.g. "3. Designation of the...".
	if numericPrefixRe.MatchString(text) && containsAny(strings.ToLower(text), formKeywords) {
		return true
	}

	if len(text) >= 30 {
		return false
	}

	// Short text indented past the left fifth of the page.
	if b.BBox.X0 > b.PageWidth*0.2 {
		return true
	}

	// Short text misaligned against its vertical neighbors.
	if mean, ok := adjacentMeanX0(b, reference, stats.AvgLineSpacing); ok {
		if math.Abs(b.BBox.X0-mean) > b.PageWidth*0.1 {
			return true
		}
	}

	// Short text with unusually tight internal line spacing.
	if len(b.Lines) >= 2 {
		if gap, ok := tightestLineGap(b); ok && gap < stats.AvgLineSpacing*0.8 {
			return true
		}
	}

	return false
}

// adjacentMeanX0 averages the left edges of reference blocks whose vertical
// position is within twice the document line spacing of b.
func adjacentMeanX0(b *model.Block, reference []*model.Block, lineSpacing float64) (float64, bool) {
	var sum float64
	var n int
	for _, other := range reference {
		if other == b {
			continue
		}
		if math.Abs(other.BBox.Y0-b.BBox.Y0) <= lineSpacing*2 {
			sum += other.BBox.X0
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// tightestLineGap returns the smallest gap between consecutive lines.
func tightestLineGap(b *model.Block) (float64, bool) {
	if len(b.Lines) < 2 {
		return 0, false
	}
	min := math.Inf(1)
	for i := 1; i < len(b.Lines); i++ {
		gap := b.Lines[i].BBox.Y0 - b.Lines[i-1].BBox.Y1
		if gap < min {
			min = gap
		}
	}
	return min, true
}

// RemoveNoise applies the composite filter: the header/footer pass for
// documents of three or more pages, then the table/form pass. The table pass
// always measures adjacency against the original unfiltered list.
func RemoveNoise(blocks []*model.Block, pageCount int, stats Stats) []*model.Block {
	working := blocks
	if pageCount >= 3 {
		working = FilterHeadersFooters(blocks, pageCount, stats)
	}

	var out []*model.Block
	for _, b := range working {
		if IsTableBlock(b, blocks, stats) {
			continue
		}
		out = append(out, b)
	}
	return out
}
