package forest

import (
	"fmt"

	"github.com/abhisek/mindcheck/internal/assessment"
)

// leafChild marks a node without children.
const leafChild = -1

// Node is one split or leaf of a decision tree. Samples with
// x[Feature] <= Threshold go Left.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"` // per-class weights, leaves only
}

func (n *Node) isLeaf() bool { return n.Left == leafChild && n.Right == leafChild }

// Tree is a flat array of nodes rooted at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Model is a random forest classifier over a fixed feature schema.
type Model struct {
	Format       string   `json:"format"`
	FeatureNames []string `json:"feature_names"`
	NClasses     int      `json:"n_classes"`
	Trees        []Tree   `json:"trees"`
}

// check verifies the forest is structurally consistent with its declared
// schema: every split references a known feature, every child index is in
// range, and every leaf carries one weight per class.
func (m *Model) check() error {
	if len(m.Trees) == 0 {
		return &assessment.SchemaMismatchError{Detail: "model has no trees"}
	}
	if m.NClasses <= 0 {
		return &assessment.SchemaMismatchError{Detail: fmt.Sprintf("model declares %d classes", m.NClasses)}
	}
	nFeatures := len(m.FeatureNames)
	for ti, tree := range m.Trees {
		if len(tree.Nodes) == 0 {
			return &assessment.SchemaMismatchError{Detail: fmt.Sprintf("tree %d is empty", ti)}
		}
		for ni, n := range tree.Nodes {
			if n.isLeaf() {
				if len(n.Value) != m.NClasses {
					return &assessment.SchemaMismatchError{
						Detail: fmt.Sprintf("tree %d node %d has %d class weights, want %d", ti, ni, len(n.Value), m.NClasses),
					}
				}
				continue
			}
			if n.Feature < 0 || n.Feature >= nFeatures {
				return &assessment.SchemaMismatchError{
					Detail: fmt.Sprintf("tree %d node %d splits on feature %d of %d", ti, ni, n.Feature, nFeatures),
				}
			}
			// Children must point forward so prediction always terminates.
			if n.Left <= ni || n.Left >= len(tree.Nodes) || n.Right <= ni || n.Right >= len(tree.Nodes) {
				return &assessment.SchemaMismatchError{
					Detail: fmt.Sprintf("tree %d node %d has children %d/%d outside (%d, %d)", ti, ni, n.Left, n.Right, ni, len(tree.Nodes)),
				}
			}
		}
	}
	return nil
}

// Predict returns the class index with the highest mean probability across
// trees. Ties go to the lowest index.
func (m *Model) Predict(x []float64) (int, error) {
	if len(x) != len(m.FeatureNames) {
		return 0, &assessment.SchemaMismatchError{
			Detail: fmt.Sprintf("feature vector has %d values, model expects %d", len(x), len(m.FeatureNames)),
		}
	}

	proba := make([]float64, m.NClasses)
	for _, tree := range m.Trees {
		leaf := tree.leaf(x)
		var total float64
		for _, w := range leaf.Value {
			total += w
		}
		if total == 0 {
			continue
		}
		for i, w := range leaf.Value {
			proba[i] += w / total
		}
	}

	best := 0
	for i := 1; i < len(proba); i++ {
		if proba[i] > proba[best] {
			best = i
		}
	}
	return best, nil
}

func (t *Tree) leaf(x []float64) *Node {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.isLeaf() {
			return n
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}
