package forecast

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BoostParams configures the gradient-boosted tree ensemble.
type BoostParams struct {
	NEstimators    int     `mapstructure:"n_estimators" yaml:"n_estimators"`
	MaxDepth       int     `mapstructure:"max_depth" yaml:"max_depth"`
	LearningRate   float64 `mapstructure:"learning_rate" yaml:"learning_rate"`
	Lambda         float64 `mapstructure:"lambda" yaml:"lambda"`
	MinChildWeight float64 `mapstructure:"min_child_weight" yaml:"min_child_weight"`
}

// DefaultBoostParams: 100 trees of depth 3, learning rate 0.1, L2 leaf
// regularisation 1.
func DefaultBoostParams() BoostParams {
	return BoostParams{NEstimators: 100, MaxDepth: 3, LearningRate: 0.1, Lambda: 1, MinChildWeight: 1}
}

// Boost is a fitted ensemble of regression trees trained on squared error.
// Each tree fits the residual gradient of the ensemble before it.
type Boost struct {
	Params    BoostParams
	BaseScore float64
	Trees     []*TreeNode
	Features  int
}

// TreeNode is a split or a leaf. Samples with x[Feature] < Threshold go left.
type TreeNode struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *TreeNode `json:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty"`
	Leaf      bool      `json:"leaf,omitempty"`
	Weight    float64   `json:"weight,omitempty"`
}

func (n *TreeNode) predict(x []float64) float64 {
	for !n.Leaf {
		if x[n.Feature] < n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Weight
}

// FitBoost trains the ensemble on x (one row per sample) and targets y.
func FitBoost(x [][]float64, y []float64, p BoostParams) (*Boost, error) {
	if p.NEstimators <= 0 || p.MaxDepth <= 0 || p.LearningRate <= 0 || p.Lambda < 0 || p.MinChildWeight < 0 {
		return nil, fmt.Errorf("invalid boost parameters %+v", p)
	}
	if len(x) == 0 || len(x) != len(y) {
		return nil, &ModelFitError{Model: "boost", Reason: fmt.Sprintf("%d feature rows for %d targets", len(x), len(y))}
	}
	width := len(x[0])
	for i, row := range x {
		if len(row) != width {
			return nil, &ModelFitError{Model: "boost", Reason: fmt.Sprintf("row %d has %d features, want %d", i, len(row), width)}
		}
		if floats.HasNaN(row) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return nil, &ModelFitError{Model: "boost", Reason: fmt.Sprintf("row %d has a missing value", i)}
		}
	}

	b := &Boost{Params: p, BaseScore: stat.Mean(y, nil), Features: width}
	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = b.BaseScore
	}
	grad := make([]float64, len(y))
	all := make([]int, len(y))
	for i := range all {
		all[i] = i
	}

	for round := 0; round < p.NEstimators; round++ {
		for i := range grad {
			grad[i] = pred[i] - y[i]
		}
		tb := treeBuilder{x: x, grad: grad, params: p}
		tree := tb.build(all, 0)
		b.Trees = append(b.Trees, tree)
		for i := range pred {
			pred[i] += p.LearningRate * tree.predict(x[i])
		}
	}
	return b, nil
}

// Predict returns the ensemble prediction for one feature vector. It panics
// when the vector width differs from the one the model was trained on.
func (b *Boost) Predict(features []float64) float64 {
	if len(features) != b.Features {
		panic(fmt.Sprintf("boost: got %d features, model was trained on %d", len(features), b.Features))
	}
	out := b.BaseScore
	for _, t := range b.Trees {
		out += b.Params.LearningRate * t.predict(features)
	}
	return out
}

// PredictAll predicts every row of x.
func (b *Boost) PredictAll(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = b.Predict(row)
	}
	return out
}

type treeBuilder struct {
	x      [][]float64
	grad   []float64
	params BoostParams
}

// build grows a tree over the sample indices. The hessian of squared error
// is 1 per sample, so a node's hessian sum is its sample count.
func (tb *treeBuilder) build(idx []int, depth int) *TreeNode {
	g := 0.0
	for _, i := range idx {
		g += tb.grad[i]
	}
	h := float64(len(idx))
	leaf := &TreeNode{Leaf: true, Weight: -g / (h + tb.params.Lambda)}
	if depth >= tb.params.MaxDepth || h < 2*tb.params.MinChildWeight {
		return leaf
	}

	parentScore := g * g / (h + tb.params.Lambda)
	bestGain, bestFeature, bestThreshold := 0.0, -1, 0.0
	sorted := make([]int, len(idx))
	for f := 0; f < len(tb.x[idx[0]]); f++ {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, b int) bool { return tb.x[sorted[a]][f] < tb.x[sorted[b]][f] })

		gl, hl := 0.0, 0.0
		for k := 0; k < len(sorted)-1; k++ {
			gl += tb.grad[sorted[k]]
			hl++
			cur, next := tb.x[sorted[k]][f], tb.x[sorted[k+1]][f]
			if cur == next {
				continue
			}
			gr, hr := g-gl, h-hl
			if hl < tb.params.MinChildWeight || hr < tb.params.MinChildWeight {
				continue
			}
			gain := 0.5 * (gl*gl/(hl+tb.params.Lambda) + gr*gr/(hr+tb.params.Lambda) - parentScore)
			if gain > bestGain {
				bestGain, bestFeature, bestThreshold = gain, f, (cur+next)/2
			}
		}
	}
	if bestFeature < 0 {
		return leaf
	}

	var left, right []int
	for _, i := range idx {
		if tb.x[i][bestFeature] < bestThreshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &TreeNode{
		Feature:   bestFeature,
		Threshold: bestThreshold,
		Left:      tb.build(left, depth+1),
		Right:     tb.build(right, depth+1),
	}
}
