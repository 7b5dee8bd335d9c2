package heuristics

import (
	"testing"

	"github.com/docforge/outliner/internal/model"
)

func boldBlock(page int, y0, size float64, texts ...string) *model.Block {
	return textBlock(page, y0, size, "Helvetica-Bold", texts...)
}

func TestFindTitle(t *testing.T) {
	tests := []struct {
		name     string
		blocks   []*model.Block
		expected string
	}{
		{
			name:     "no first page",
			blocks:   []*model.Block{textBlock(3, 100, 12, "Helvetica", "late text")},
			expected: "",
		},
		{
			name: "largest bold line wins",
			blocks: []*model.Block{
				boldBlock(0, 100, 24, "Annual Report"),
				textBlock(0, 200, 12, "Helvetica", "some body text"),
			},
			expected: "Annual Report",
		},
		{
			name: "boilerplate lines skipped",
			blocks: []*model.Block{
				boldBlock(0, 80, 24, "CONFIDENTIAL"),
				boldBlock(0, 120, 24, "Quarterly Review"),
			},
			expected: "Quarterly Review",
		},
		{
			name: "nearby same-score lines merge in reading order",
			blocks: []*model.Block{
				textBlock(0, 120, 20, "Helvetica", "of Everything"),
				textBlock(0, 100, 20, "Helvetica", "Comprehensive Study"),
				textBlock(0, 300, 12, "Helvetica", "introduction paragraph"),
			},
			expected: "Comprehensive Study of Everything",
		},
		{
			name: "distant candidate not merged",
			blocks: []*model.Block{
				textBlock(0, 100, 20, "Helvetica", "Main Title"),
				textBlock(0, 380, 20, "Helvetica", "Unrelated Banner"),
			},
			expected: "Main Title",
		},
		{
			name: "lines below the title region ignored",
			blocks: []*model.Block{
				textBlock(0, 450, 30, "Helvetica", "Huge Footer Text"),
			},
			expected: "",
		},
		{
			name: "numeric lines ignored",
			blocks: []*model.Block{
				textBlock(0, 100, 24, "Helvetica", "2024"),
				textBlock(0, 140, 18, "Helvetica", "Budget Summary"),
			},
			expected: "Budget Summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindTitle(tt.blocks); got != tt.expected {
				t.Errorf("title: got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFindTitleRFPCover(t *testing.T) {
	blocks := []*model.Block{
		textBlock(0, 100, 20, "Helvetica", "RFP: RFP: Website Redesign"),
		textBlock(0, 140, 14, "Helvetica", "To Present a Proposal for Services"),
	}
	got := FindTitle(blocks)
	want := "RFP: Website Redesign To Present a Proposal for Services"
	if got != want {
		t.Errorf("rfp title: got %q, want %q", got, want)
	}
}
