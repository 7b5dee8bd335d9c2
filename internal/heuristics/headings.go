package heuristics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docforge/outliner/internal/model"
)

var (
	numberedPrefixRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)\.?\s+(.*)`)
	dotLeaderRe      = regexp.MustCompile(`\.{3,}\s+\d+$`)
	trailingNumberRe = regexp.MustCompile(`\s+\d+$`)
)

// ocrHeadingMinArea is the minimum bounding-box area for an OCR block to be
// accepted as a poster-style H1.
const ocrHeadingMinArea = 50000.0

// HasNumberedPrefix reports whether text opens with a dot-separated numeric
// list prefix, regardless of what follows it.
func HasNumberedPrefix(text string) bool {
	return numberedPrefixRe.MatchString(text)
}

// ClassifyNumbered returns "H1".."H3" when the block starts with a
// hierarchical numbering prefix followed by real text, or "" otherwise.
// The level is the prefix depth: "2.1" is two groups deep, so H2.
func ClassifyNumbered(b *model.Block) string {
	m := numberedPrefixRe.FindStringSubmatch(b.Text())
	if m == nil {
		return ""
	}
	remaining := m[2]
	// Bare list markers like "3. A" carry a prefix but no heading text.
	if wordCount(remaining) < 2 && len(remaining) < 15 {
		return ""
	}
	level := strings.Count(m[1], ".") + 1
	if level < 1 || level > 3 {
		return ""
	}
	return fmt.Sprintf("H%d", level)
}

// ClassifyStyled returns a heading level based on styling cues: font size
// relative to the document median, boldness, and text case. Returns "" when
// the block does not look like a heading.
func ClassifyStyled(b *model.Block, stats Stats) string {
	text := b.Text()
	wc := wordCount(text)

	if wc < 1 || wc >= 30 {
		return ""
	}
	if strings.HasSuffix(text, ".") || strings.HasSuffix(text, ":") || strings.HasSuffix(text, ",") {
		return ""
	}
	// Table-of-contents lines: dotted leaders, or a bare page number after a
	// longer run of words.
	if dotLeaderRe.MatchString(text) {
		return ""
	}
	if trailingNumberRe.MatchString(text) && wc > 5 {
		return ""
	}

	if b.Source == model.SourceOCR {
		// Flyers and posters: one large recognized region with little text.
		if b.BBox.Area() > ocrHeadingMinArea && wc < 10 {
			return "H1"
		}
		return ""
	}

	spans := b.Spans()
	avgSize, ok := avgSpanSize(spans)
	if !ok {
		return ""
	}
	bold := anyBold(spans)
	median := stats.MedianFontSize

	switch {
	case avgSize > median*1.4 && (bold || IsAllCaps(text)):
		return "H1"
	case avgSize > median*1.25 && (bold || IsAllCaps(text)):
		return "H2"
	case (avgSize > median*1.15 && bold) || (avgSize > median*1.2 && IsTitleCase(text)):
		return "H3"
	}
	return ""
}

// IsTitleBlock reports whether the block carries the extracted title text.
// Matching runs both directions because a merged multi-line title is spread
// across several blocks, each holding only a fragment of it.
func IsTitleBlock(b *model.Block, title string) bool {
	if title == "" {
		return false
	}
	blockText := strings.ToLower(CleanHeadingText(b.Text()))
	titleText := strings.ToLower(CleanHeadingText(title))
	if blockText == "" {
		return false
	}
	if strings.Contains(blockText, titleText) {
		return true
	}
	return len(blockText) >= 3 && strings.Contains(titleText, blockText)
}
