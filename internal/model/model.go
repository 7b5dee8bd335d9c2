// Package model provides the shared document types used across the pipeline.
// This package has no dependencies on other outliner packages to avoid import cycles.
package model

import "strings"

// Source indicates how a block's text was obtained.
type Source string

const (
	// SourceNative indicates text taken from the document's vector text layer.
	SourceNative Source = "native"
	// SourceOCR indicates text recognized from a rasterized page image.
	SourceOCR Source = "ocr"
)

// BlockType distinguishes text blocks from image blocks.
type BlockType int

const (
	BlockTypeText BlockType = iota
	BlockTypeImage
)

// BBox is an axis-aligned bounding box in page coordinates.
// The origin is the top-left corner of the page; Y grows downward.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.Y1 - b.Y0 }

// Area returns the area of the box in page units squared.
func (b BBox) Area() float64 { return b.Width() * b.Height() }

// Union returns the smallest box covering both b and other.
func (b BBox) Union(other BBox) BBox {
	out := b
	if other.X0 < out.X0 {
		out.X0 = other.X0
	}
	if other.Y0 < out.Y0 {
		out.Y0 = other.Y0
	}
	if other.X1 > out.X1 {
		out.X1 = other.X1
	}
	if other.Y1 > out.Y1 {
		out.Y1 = other.Y1
	}
	return out
}

// Span is a run of text sharing one font and size within a line.
type Span struct {
	Text string
	Size float64
	Font string
	BBox BBox
}

// Bold reports whether the span's font name marks it as bold.
func (s Span) Bold() bool {
	return strings.Contains(strings.ToLower(s.Font), "bold")
}

// Line is an ordered sequence of spans sharing a baseline.
type Line struct {
	Spans []Span
	BBox  BBox
}

// Block is a page-positioned group of lines treated as one layout unit.
// Blocks are immutable after extraction; the pipeline only ever excludes
// them from derived collections.
type Block struct {
	Lines      []Line
	BBox       BBox
	Page       int
	PageWidth  float64
	PageHeight float64
	Source     Source
	Type       BlockType
}

// Text returns all span text concatenated without separators, trimmed.
func (b *Block) Text() string {
	var sb strings.Builder
	for _, line := range b.Lines {
		for _, span := range line.Spans {
			sb.WriteString(span.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// SpacedText returns all span text joined by single spaces, trimmed.
// Used when blocks are rendered as body content.
func (b *Block) SpacedText() string {
	var parts []string
	for _, line := range b.Lines {
		for _, span := range line.Spans {
			if t := strings.TrimSpace(span.Text); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " ")
}

// NormText returns the block text lowercased, for repetition signatures.
func (b *Block) NormText() string {
	return strings.ToLower(b.Text())
}

// Spans returns every span in the block in reading order.
func (b *Block) Spans() []Span {
	var spans []Span
	for _, line := range b.Lines {
		spans = append(spans, line.Spans...)
	}
	return spans
}

// Heading is one entry of the extracted outline.
// Level is the only field mutated after creation (by hierarchy validation);
// Content is populated once during association.
type Heading struct {
	Level   string  `json:"level"`
	Text    string  `json:"text"`
	Page    int     `json:"page"`
	Y       float64 `json:"-"`
	Content string  `json:"content,omitempty"`
}

// Document is the final output for one input document.
type Document struct {
	Title   string    `json:"title"`
	Outline []Heading `json:"outline"`
}
