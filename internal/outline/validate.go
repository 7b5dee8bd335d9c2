// Package outline assembles classified headings into the final document
// outline: hierarchy repair, content association, and the per-document
// processing pipeline.
package outline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docforge/outliner/internal/model"
)

// ValidateHierarchy repairs heading levels in a single forward pass over
// headings already sorted by (page, y). A heading may never sit more than one
// level below its predecessor: upward skips are clamped to last+1, which also
// forces the first heading to H1. Levels may decrease or repeat freely.
// Anything deeper than H3 is folded into H3 first.
func ValidateHierarchy(headings []model.Heading) []model.Heading {
	last := 0
	for i := range headings {
		level := parseLevel(headings[i].Level)
		if level > 3 {
			level = 3
		}
		if level > last+1 {
			level = last + 1
		}
		headings[i].Level = fmt.Sprintf("H%d", level)
		last = level
	}
	return headings
}

func parseLevel(label string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(label, "H"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
