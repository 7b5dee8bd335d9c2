package heuristics

import (
	"testing"

	"github.com/docforge/outliner/internal/model"
)

func TestClassifyNumbered(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"top level", "1 Introduction to the System", "H1"},
		{"top level with dot", "4. Evaluation and Results", "H1"},
		{"second level", "2.1 Scope of Work", "H2"},
		{"third level", "3.2.1 Database Schema Design", "H3"},
		{"too deep", "1.2.3.4 Deep Item", ""},
		{"bare list marker", "3. A", ""},
		{"short remainder accepted by length", "5. Appendix-and-References", "H1"},
		{"no prefix", "Introduction", ""},
		{"numeric only", "42", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := textBlock(0, 100, 12, "Helvetica", tt.text)
			if got := ClassifyNumbered(b); got != tt.expected {
				t.Errorf("ClassifyNumbered(%q): got %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestClassifyStyled(t *testing.T) {
	stats := Stats{MedianFontSize: 12, AvgLineSpacing: 12}

	tests := []struct {
		name     string
		block    *model.Block
		expected string
	}{
		{
			name:     "large all caps is H1",
			block:    textBlock(0, 100, 18, "Helvetica", "INTRODUCTION"),
			expected: "H1",
		},
		{
			name:     "large bold is H1",
			block:    boldBlock(0, 100, 17, "System Architecture"),
			expected: "H1",
		},
		{
			name:     "medium bold is H2",
			block:    boldBlock(0, 100, 15.5, "Deployment Overview"),
			expected: "H2",
		},
		{
			name:     "slightly large bold is H3",
			block:    boldBlock(0, 100, 14, "Error Handling"),
			expected: "H3",
		},
		{
			name:     "title case without bold is H3",
			block:    textBlock(0, 100, 14.5, "Helvetica", "Future Work"),
			expected: "H3",
		},
		{
			name:     "body-sized text is not a heading",
			block:    boldBlock(0, 100, 12, "Important Note"),
			expected: "",
		},
		{
			name:     "sentence terminator declines",
			block:    boldBlock(0, 100, 18, "This ends with a period."),
			expected: "",
		},
		{
			name:     "colon terminator declines",
			block:    boldBlock(0, 100, 18, "Requirements:"),
			expected: "",
		},
		{
			name:     "dotted toc leader declines",
			block:    boldBlock(0, 100, 18, "Introduction ....... 5"),
			expected: "",
		},
		{
			name:     "long line with trailing page number declines",
			block:    boldBlock(0, 100, 18, "A Very Long Chapter Name About Things 42"),
			expected: "",
		},
		{
			name:     "short line with trailing number allowed",
			block:    boldBlock(0, 100, 18, "CHAPTER 1"),
			expected: "H1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyStyled(tt.block, stats); got != tt.expected {
				t.Errorf("ClassifyStyled(%q): got %q, want %q", tt.block.Text(), got, tt.expected)
			}
		})
	}
}

func TestClassifyStyledOCR(t *testing.T) {
	stats := Stats{MedianFontSize: 12, AvgLineSpacing: 12}

	big := asOCR(textBlock(0, 100, 12, "OCR-Default", "GRAND OPENING SALE"))
	big.BBox = model.BBox{X0: 50, Y0: 100, X1: 450, Y1: 300} // area 80000

	small := asOCR(textBlock(0, 100, 12, "OCR-Default", "fine print"))
	small.BBox = model.BBox{X0: 50, Y0: 100, X1: 150, Y1: 120}

	if got := ClassifyStyled(big, stats); got != "H1" {
		t.Errorf("large ocr region: got %q, want H1", got)
	}
	if got := ClassifyStyled(small, stats); got != "" {
		t.Errorf("small ocr region: got %q, want no heading", got)
	}
}

func TestIsTitleBlock(t *testing.T) {
	title := "Comprehensive Study of Everything"

	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"exact match", "Comprehensive Study of Everything", true},
		{"fragment of merged title", "Comprehensive Study", true},
		{"block containing title", "Comprehensive Study of Everything 2024", true},
		{"tiny fragment below minimum", "of", false},
		{"unrelated text", "Introduction", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := textBlock(0, 100, 12, "Helvetica", tt.text)
			if got := IsTitleBlock(b, title); got != tt.expected {
				t.Errorf("IsTitleBlock(%q): got %v, want %v", tt.text, got, tt.expected)
			}
		})
	}

	t.Run("empty title matches nothing", func(t *testing.T) {
		b := textBlock(0, 100, 12, "Helvetica", "anything")
		if IsTitleBlock(b, "") {
			t.Error("empty title must never match")
		}
	})
}
