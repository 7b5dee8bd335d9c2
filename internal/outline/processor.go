package outline

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/docforge/outliner/internal/classify"
	"github.com/docforge/outliner/internal/features"
	"github.com/docforge/outliner/internal/heuristics"
	"github.com/docforge/outliner/internal/model"
)

// Extractor produces page-ordered blocks for a document path.
type Extractor interface {
	ExtractBlocks(ctx context.Context, path string) ([]*model.Block, error)
}

// Predictor labels feature records for blocks the heuristics declined.
type Predictor interface {
	Predict(records []features.Record) []string
}

// Processor runs the full per-document pipeline. It holds no mutable state;
// one Processor may serve concurrent workers.
type Processor struct {
	extractor Extractor
	predictor Predictor
	logger    *slog.Logger
}

// NewProcessor wires a processor from its collaborators.
func NewProcessor(extractor Extractor, predictor Predictor, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		extractor: extractor,
		predictor: predictor,
		logger:    logger,
	}
}

// Process extracts the outline for one document. An unreadable document
// yields an empty outline, never an error: one bad input must not abort a
// batch.
func (p *Processor) Process(ctx context.Context, path string) *model.Document {
	start := time.Now()
	log := p.logger.With("file", filepath.Base(path))

	blocks, err := p.extractor.ExtractBlocks(ctx, path)
	if err != nil {
		log.Warn("extraction failed, emitting empty outline", "error", err)
		return &model.Document{Outline: []model.Heading{}}
	}
	if len(blocks) == 0 {
		log.Warn("no text blocks found")
		return &model.Document{Outline: []model.Heading{}}
	}

	pageCount := 0
	for _, b := range blocks {
		if b.Page+1 > pageCount {
			pageCount = b.Page + 1
		}
	}

	stats := heuristics.Collect(blocks)

	title := heuristics.FindTitle(blocks)
	if strings.EqualFold(title, filepath.Base(path)) {
		// A "title" that is just the filename means none was found.
		title = ""
	}

	filtered := heuristics.RemoveNoise(blocks, pageCount, stats)
	log.Debug("noise filtered", "before", len(blocks), "after", len(filtered))

	headings, leftovers := p.classifyHeuristic(filtered, stats, title)
	headings = append(headings, p.classifyModel(leftovers, stats)...)
	log.Debug("classification done",
		"heuristic", len(headings), "model_candidates", len(leftovers))

	sort.SliceStable(headings, func(i, j int) bool {
		if headings[i].Page != headings[j].Page {
			return headings[i].Page < headings[j].Page
		}
		return headings[i].Y < headings[j].Y
	})

	headings = ValidateHierarchy(headings)
	AssociateContent(headings, filtered)

	for i := range headings {
		headings[i].Text = heuristics.CleanHeadingText(headings[i].Text)
	}

	log.Info("document processed",
		"pages", pageCount,
		"headings", len(headings),
		"duration", time.Since(start).Round(time.Millisecond))

	if headings == nil {
		headings = []model.Heading{}
	}
	return &model.Document{Title: title, Outline: headings}
}

// classifyHeuristic applies both recognizers in fixed order: the numbered
// recognizer first, the styled recognizer only when it declines. Blocks
// carrying the title are excluded; blocks declined by both recognizers are
// returned for the model pass.
func (p *Processor) classifyHeuristic(blocks []*model.Block, stats heuristics.Stats, title string) ([]model.Heading, []*model.Block) {
	var headings []model.Heading
	var leftovers []*model.Block

	for _, b := range blocks {
		if heuristics.IsTitleBlock(b, title) {
			continue
		}

		level := heuristics.ClassifyNumbered(b)
		if level == "" {
			level = heuristics.ClassifyStyled(b, stats)
		}
		if level == "" {
			leftovers = append(leftovers, b)
			continue
		}

		text := heuristics.CleanHeadingText(b.Text())
		if text == "" {
			continue
		}
		headings = append(headings, model.Heading{
			Level: level,
			Text:  text,
			Page:  b.Page,
			Y:     b.BBox.Y0,
		})
	}
	return headings, leftovers
}

// classifyModel builds feature records for the leftover blocks and merges
// back the model's H1/H2/H3 answers. Blocks the feature builder rejects are
// silently absent from the outline.
func (p *Processor) classifyModel(blocks []*model.Block, stats heuristics.Stats) []model.Heading {
	var records []features.Record
	var recordBlocks []*model.Block

	var prev *model.Block
	for _, b := range blocks {
		if rec, ok := features.Build(b, stats, b.PageWidth, b.PageHeight, prev); ok {
			records = append(records, rec)
			recordBlocks = append(recordBlocks, b)
		}
		prev = b
	}
	if len(records) == 0 {
		return nil
	}

	labels := p.predictor.Predict(records)

	var headings []model.Heading
	for i, label := range labels {
		if !classify.HeadingLabels[label] {
			continue
		}
		b := recordBlocks[i]
		text := heuristics.CleanHeadingText(b.Text())
		if text == "" {
			continue
		}
		headings = append(headings, model.Heading{
			Level: label,
			Text:  text,
			Page:  b.Page,
			Y:     b.BBox.Y0,
		})
	}
	return headings
}
