package heuristics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/docforge/outliner/internal/model"
)

// titleRegionMaxY bounds how far down the first page title lines may sit.
const titleRegionMaxY = 400.0

// titleBoilerplate marks lines that are chrome rather than title material.
var titleBoilerplate = []string{
	"date:", "time:", "address:", "tel:", "fax:", "version", "page", "confidential",
}

var paddingPrefix = regexp.MustCompile(`^[~\s]+`)

type titleCandidate struct {
	text  string
	score int
	y0    float64
	size  float64
}

// FindTitle scores lines on the first page and merges the best candidates
// into a possibly multi-line title. Returns "" when no line qualifies.
func FindTitle(blocks []*model.Block) string {
	var firstPage []*model.Block
	for _, b := range blocks {
		if b.Page == 0 && b.Type == model.BlockTypeText {
			firstPage = append(firstPage, b)
		}
	}
	if len(firstPage) == 0 {
		return ""
	}

	if title, ok := rfpTitle(firstPage); ok {
		return title
	}

	var maxSize float64
	for _, b := range firstPage {
		if b.Source == model.SourceOCR {
			continue
		}
		for _, span := range b.Spans() {
			if span.Size > maxSize {
				maxSize = span.Size
			}
		}
	}
	if maxSize == 0 {
		return ""
	}

	var candidates []titleCandidate
	for _, b := range firstPage {
		if b.BBox.Y0 > titleRegionMaxY {
			continue
		}
		for _, line := range b.Lines {
			text := lineText(line)
			if len(text) < 3 {
				continue
			}
			lower := strings.ToLower(text)
			if containsAny(lower, titleBoilerplate) {
				continue
			}
			if paddingPrefix.MatchString(text) || IsNumeric(text) {
				continue
			}

			avgSize, ok := avgSpanSize(line.Spans)
			if !ok {
				continue
			}

			score := 0
			switch {
			case avgSize >= maxSize*0.9:
				score += 5
			case avgSize > maxSize*0.7:
				score += 2
			}
			if anyBold(line.Spans) {
				score += 2
			}
			if wordCount(text) < 15 {
				score++
			}

			candidates = append(candidates, titleCandidate{
				text:  text,
				score: score,
				y0:    line.BBox.Y0,
				size:  avgSize,
			})
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	// Highest score wins; ties go to the topmost line.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].y0 < candidates[j].y0
	})

	seed := candidates[0]
	parts := []titleCandidate{seed}
	for _, cand := range candidates[1:] {
		if cand.score < seed.score-2 {
			continue
		}
		gap := cand.y0 - parts[len(parts)-1].y0
		if gap < 0 {
			gap = -gap
		}
		if gap < seed.size*2.5 {
			parts = append(parts, cand)
		}
	}

	sort.SliceStable(parts, func(i, j int) bool { return parts[i].y0 < parts[j].y0 })
	texts := make([]string, len(parts))
	for i, p := range parts {
		texts[i] = p.text
	}
	joined := strings.Join(texts, " ")
	return strings.TrimSpace(strings.ReplaceAll(joined, "  ", " "))
}

// rfpTitle handles request-for-proposal cover pages, where the real title is
// split across an "RFP:" line (often with stuttered repeats from the text
// layer) and a "to present a proposal" line. Fires only when both markers
// appear on the first page.
func rfpTitle(firstPage []*model.Block) (string, bool) {
	var rfpLine, proposalLine string
	for _, b := range firstPage {
		for _, line := range b.Lines {
			text := lineText(line)
			lower := strings.ToLower(text)
			if rfpLine == "" && strings.Contains(lower, "rfp") {
				rfpLine = text
				continue
			}
			if proposalLine == "" && strings.Contains(lower, "to present a proposal") {
				proposalLine = text
			}
		}
	}
	if rfpLine == "" || proposalLine == "" {
		return "", false
	}

	cleaned := dedupeStutter(rfpLine)
	return strings.TrimSpace(cleaned + " " + strings.TrimSpace(proposalLine)), true
}

// dedupeStutter removes immediately-repeated words and keeps only the first
// "RFP:" marker when the text layer duplicated it.
func dedupeStutter(text string) string {
	fields := strings.Fields(text)
	var out []string
	seenRFP := false
	for _, f := range fields {
		if len(out) > 0 && out[len(out)-1] == f {
			continue
		}
		if strings.EqualFold(f, "rfp:") {
			if seenRFP {
				continue
			}
			seenRFP = true
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

// lineText joins the trimmed span texts of a line with single spaces.
func lineText(line model.Line) string {
	var parts []string
	for _, s := range line.Spans {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
