package model

import "fmt"

type linearRegressor struct {
	intercept float64
	coef      []float64
}

func (l *linearRegressor) kind() string { return KindLinear }

func (l *linearRegressor) predict(x []float64) float64 {
	y := l.intercept
	for i, c := range l.coef {
		y += c * x[i]
	}
	return y
}

type treeNode struct {
	feature     int
	threshold   float64
	left, right int
	leaf        bool
	value       float64
}

// treeEnsemble sums leaf values of gradient-boosted trees.
type treeEnsemble struct {
	base  float64
	rate  float64
	trees [][]treeNode
}

func (t *treeEnsemble) kind() string { return KindTreeEnsemble }

func (t *treeEnsemble) predict(x []float64) float64 {
	y := t.base
	for _, nodes := range t.trees {
		i := 0
		for !nodes[i].leaf {
			n := nodes[i]
			if x[n.feature] <= n.threshold {
				i = n.left
			} else {
				i = n.right
			}
		}
		y += t.rate * nodes[i].value
	}
	return y
}

func compileRegressor(spec RegressorSpec, features map[string]int) (regressor, error) {
	switch spec.Kind {
	case KindLinear:
		l := &linearRegressor{intercept: spec.Intercept, coef: make([]float64, len(features))}
		for name, c := range spec.Coefficients {
			i, ok := features[name]
			if !ok {
				return nil, fmt.Errorf("coefficient for unknown feature %q", name)
			}
			l.coef[i] = c
		}
		return l, nil
	case KindTreeEnsemble:
		if len(spec.Trees) == 0 {
			return nil, fmt.Errorf("tree ensemble has no trees")
		}
		rate := spec.LearningRate
		if rate == 0 {
			rate = 1
		}
		t := &treeEnsemble{base: spec.BaseScore, rate: rate}
		for ti, ts := range spec.Trees {
			nodes, err := compileTree(ts, features)
			if err != nil {
				return nil, fmt.Errorf("tree %d: %w", ti, err)
			}
			t.trees = append(t.trees, nodes)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported kind %q", spec.Kind)
	}
}

// compileTree resolves feature names and checks that every split points
// forward to an existing node, so evaluation always reaches a leaf.
func compileTree(ts TreeSpec, features map[string]int) ([]treeNode, error) {
	if len(ts.Nodes) == 0 {
		return nil, fmt.Errorf("no nodes")
	}
	out := make([]treeNode, len(ts.Nodes))
	for i, n := range ts.Nodes {
		if n.Leaf {
			out[i] = treeNode{leaf: true, value: n.Value}
			continue
		}
		fi, ok := features[n.Feature]
		if !ok {
			return nil, fmt.Errorf("node %d: unknown feature %q", i, n.Feature)
		}
		for _, child := range []int{n.Left, n.Right} {
			if child <= i || child >= len(ts.Nodes) {
				return nil, fmt.Errorf("node %d: child index %d out of range", i, child)
			}
		}
		out[i] = treeNode{feature: fi, threshold: n.Threshold, left: n.Left, right: n.Right}
	}
	return out, nil
}
