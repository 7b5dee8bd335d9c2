// Package classify wraps the trained gradient-boosted-tree model used to
// label blocks the heuristic recognizers decline.
package classify

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bytedance/sonic"

	"github.com/docforge/outliner/internal/features"
)

// LabelNoOpinion is returned per record when no model is loaded.
const LabelNoOpinion = ""

// HeadingLabels are the classifier outputs merged back into the outline.
// Everything else (BodyText, no-opinion) is dropped.
var HeadingLabels = map[string]bool{"H1": true, "H2": true, "H3": true}

type treeNode struct {
	Feature   string  `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Leaf      bool    `json:"leaf,omitempty"`
	Value     float64 `json:"value,omitempty"`
}

type tree struct {
	Class int        `json:"class"`
	Nodes []treeNode `json:"nodes"`
}

type treeModel struct {
	NumClass int      `json:"num_class"`
	Features []string `json:"features"`
	Trees    []tree   `json:"trees"`
}

type labelMapping struct {
	Labels []string `json:"labels"`
}

// Predictor scores feature records against a tree ensemble. A predictor with
// no model (missing or unreadable artifacts) still answers Predict calls; it
// just offers no opinion. That keeps a missing model from ever failing a
// document.
type Predictor struct {
	model      *treeModel
	labels     []string
	featureIdx []int // model feature position -> features.Names index
	logger     *slog.Logger
}

// New loads the model and label mapping from the given paths. Load failures
// are logged and produce a degraded predictor rather than an error.
func New(modelPath, labelsPath string, logger *slog.Logger) *Predictor {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Predictor{logger: logger}

	model, labels, err := loadArtifacts(modelPath, labelsPath)
	if err != nil {
		logger.Warn("structure model unavailable, heuristic classification only",
			"model", modelPath, "labels", labelsPath, "error", err)
		return p
	}

	idx, err := resolveFeatures(model.Features)
	if err != nil {
		logger.Warn("structure model feature schema mismatch", "error", err)
		return p
	}

	p.model = model
	p.labels = labels
	p.featureIdx = idx
	logger.Debug("structure model loaded",
		"trees", len(model.Trees), "classes", model.NumClass)
	return p
}

func loadArtifacts(modelPath, labelsPath string) (*treeModel, []string, error) {
	modelData, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read model: %w", err)
	}
	var model treeModel
	if err := sonic.Unmarshal(modelData, &model); err != nil {
		return nil, nil, fmt.Errorf("parse model: %w", err)
	}

	labelData, err := os.ReadFile(labelsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read label mapping: %w", err)
	}
	var mapping labelMapping
	if err := sonic.Unmarshal(labelData, &mapping); err != nil {
		return nil, nil, fmt.Errorf("parse label mapping: %w", err)
	}

	if model.NumClass <= 0 || len(mapping.Labels) != model.NumClass {
		return nil, nil, fmt.Errorf("label count %d does not match num_class %d",
			len(mapping.Labels), model.NumClass)
	}
	return &model, mapping.Labels, nil
}

// resolveFeatures maps the model's feature names onto the record schema.
func resolveFeatures(names []string) ([]int, error) {
	schema := make(map[string]int, len(features.Names))
	for i, name := range features.Names {
		schema[name] = i
	}
	idx := make([]int, len(names))
	for i, name := range names {
		pos, ok := schema[name]
		if !ok {
			return nil, fmt.Errorf("unknown feature %q", name)
		}
		idx[i] = pos
	}
	return idx, nil
}

// Ready reports whether a model is loaded.
func (p *Predictor) Ready() bool {
	return p.model != nil
}

// Predict returns one label per record. With no model loaded every record
// gets LabelNoOpinion. An empty input yields an empty output.
func (p *Predictor) Predict(records []features.Record) []string {
	out := make([]string, len(records))
	if p.model == nil {
		return out
	}
	for i, r := range records {
		out[i] = p.predictOne(r.Vector())
	}
	return out
}

func (p *Predictor) predictOne(vec []float64) string {
	scores := make([]float64, p.model.NumClass)
	for _, t := range p.model.Trees {
		if t.Class < 0 || t.Class >= p.model.NumClass {
			continue
		}
		scores[t.Class] += p.evalTree(t, vec)
	}

	best := 0
	for c := 1; c < len(scores); c++ {
		if scores[c] > scores[best] {
			best = c
		}
	}
	return p.labels[best]
}

// evalTree walks one decision tree from the root. Node indices reference the
// tree's flat node array; malformed indices terminate the walk with a zero
// contribution.
func (p *Predictor) evalTree(t tree, vec []float64) float64 {
	node := 0
	for i := 0; i < len(t.Nodes); i++ {
		if node < 0 || node >= len(t.Nodes) {
			return 0
		}
		n := t.Nodes[node]
		if n.Leaf {
			return n.Value
		}
		fi := p.resolve(n.Feature)
		if fi < 0 {
			return 0
		}
		if vec[fi] <= n.Threshold {
			node = n.Left
		} else {
			node = n.Right
		}
	}
	return 0
}

func (p *Predictor) resolve(name string) int {
	for i, f := range p.model.Features {
		if f == name {
			return p.featureIdx[i]
		}
	}
	return -1
}
