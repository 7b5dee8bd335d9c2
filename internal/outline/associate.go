package outline

import (
	"strings"

	"github.com/docforge/outliner/internal/model"
)

type position struct {
	page int
	y    float64
}

func (p position) before(other position) bool {
	if p.page != other.page {
		return p.page < other.page
	}
	return p.y < other.y
}

// AssociateContent attaches body text to each heading: every block from the
// noise-filtered set lying strictly after the heading and strictly before
// the next one (end of document for the last). Blocks sitting exactly at any
// heading's position are the headings themselves and are never content.
func AssociateContent(headings []model.Heading, blocks []*model.Block) {
	if len(headings) == 0 {
		return
	}

	headingPos := make(map[position]bool, len(headings))
	for _, h := range headings {
		headingPos[position{h.Page, h.Y}] = true
	}

	var paragraphs []*model.Block
	for _, b := range blocks {
		if !headingPos[position{b.Page, b.BBox.Y0}] {
			paragraphs = append(paragraphs, b)
		}
	}

	for i := range headings {
		start := position{headings[i].Page, headings[i].Y}
		var end *position
		if i+1 < len(headings) {
			end = &position{headings[i+1].Page, headings[i+1].Y}
		}

		var parts []string
		for _, b := range paragraphs {
			pos := position{b.Page, b.BBox.Y0}
			if !start.before(pos) {
				continue
			}
			if end != nil && !pos.before(*end) {
				continue
			}
			if text := b.SpacedText(); text != "" {
				parts = append(parts, text)
			}
		}
		headings[i].Content = strings.Join(parts, "\n")
	}
}
