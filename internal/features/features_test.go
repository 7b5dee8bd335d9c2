package features

import (
	"strings"
	"testing"

	"github.com/docforge/outliner/internal/heuristics"
	"github.com/docforge/outliner/internal/model"
)

func spanBlock(text string, size float64, font string, bbox model.BBox) *model.Block {
	return &model.Block{
		Lines: []model.Line{{
			Spans: []model.Span{{Text: text, Size: size, Font: font, BBox: bbox}},
			BBox:  bbox,
		}},
		BBox:       bbox,
		Page:       0,
		PageWidth:  612,
		PageHeight: 792,
		Source:     model.SourceNative,
		Type:       model.BlockTypeText,
	}
}

func TestVectorMatchesSchema(t *testing.T) {
	r := Record{
		FontSizeRatio: 1.5,
		IsBold:        true,
		WordCount:     3,
		IsTitleCase:   true,
		XPosition:     0.25,
		YPosition:     0.5,
		BlockWidth:    0.4,
		BlockHeight:   18,
		GapAbove:      24,
	}
	vec := r.Vector()
	if len(vec) != len(Names) {
		t.Fatalf("vector length %d does not match %d schema fields", len(vec), len(Names))
	}
	want := []float64{1.5, 1, 3, 0, 1, 0, 0, 0, 0.25, 0.5, 0.4, 18, 24}
	for i, v := range vec {
		if v != want[i] {
			t.Errorf("field %s: got %v, want %v", Names[i], v, want[i])
		}
	}
}

func TestBuild(t *testing.T) {
	stats := heuristics.Stats{MedianFontSize: 12, AvgLineSpacing: 12}
	bbox := model.BBox{X0: 153, Y0: 396, X1: 400, Y1: 414}

	rec, ok := Build(spanBlock("2.1 Scope of Work", 18, "Helvetica-Bold", bbox), stats, 612, 792, nil)
	if !ok {
		t.Fatal("expected block to be applicable")
	}
	if rec.FontSizeRatio != 1.5 {
		t.Errorf("FontSizeRatio: got %v, want 1.5", rec.FontSizeRatio)
	}
	if !rec.IsBold {
		t.Error("IsBold: want true")
	}
	if rec.WordCount != 4 {
		t.Errorf("WordCount: got %d, want 4", rec.WordCount)
	}
	if !rec.IsNumberedList {
		t.Error("IsNumberedList: want true")
	}
	if rec.XPosition != 0.25 || rec.YPosition != 0.5 {
		t.Errorf("position: got %v, %v", rec.XPosition, rec.YPosition)
	}
	if rec.GapAbove != 396 {
		t.Errorf("GapAbove without prev: got %v, want y0", rec.GapAbove)
	}
}

func TestBuildGapAbove(t *testing.T) {
	stats := heuristics.Stats{MedianFontSize: 12}
	prev := spanBlock("previous paragraph", 12, "Helvetica", model.BBox{X0: 72, Y0: 300, X1: 400, Y1: 350})
	b := spanBlock("Next Section", 12, "Helvetica", model.BBox{X0: 72, Y0: 380, X1: 400, Y1: 394})

	rec, ok := Build(b, stats, 612, 792, prev)
	if !ok {
		t.Fatal("expected block to be applicable")
	}
	if rec.GapAbove != 30 {
		t.Errorf("GapAbove: got %v, want 30", rec.GapAbove)
	}
}

func TestBuildRejections(t *testing.T) {
	stats := heuristics.Stats{MedianFontSize: 12}
	bbox := model.BBox{X0: 72, Y0: 100, X1: 400, Y1: 114}

	t.Run("ocr block", func(t *testing.T) {
		b := spanBlock("recognized text", 12, "OCR-Default", bbox)
		b.Source = model.SourceOCR
		if _, ok := Build(b, stats, 612, 792, nil); ok {
			t.Error("ocr block must not be applicable")
		}
	})

	t.Run("empty text", func(t *testing.T) {
		b := spanBlock("   ", 12, "Helvetica", bbox)
		if _, ok := Build(b, stats, 612, 792, nil); ok {
			t.Error("whitespace-only block must not be applicable")
		}
	})

	t.Run("no spans", func(t *testing.T) {
		b := &model.Block{BBox: bbox, Source: model.SourceNative}
		if _, ok := Build(b, stats, 612, 792, nil); ok {
			t.Error("span-less block must not be applicable")
		}
	})

	t.Run("too many words", func(t *testing.T) {
		long := strings.Repeat("word ", maxWords+1)
		b := spanBlock(long, 12, "Helvetica", bbox)
		if _, ok := Build(b, stats, 612, 792, nil); ok {
			t.Error("over-long block must not be applicable")
		}
	})
}
