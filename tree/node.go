// Package tree implements the regression trees fitted to boosting residuals:
// exhaustive split search by MSE reduction, recursive construction and
// traversal against normalized feature values.
package tree

import (
	"github.com/YuminosukeSato/heartrisk/clinical"
)

// NodeKind tags a Node as a leaf or an internal split.
type NodeKind int

const (
	// LeafNode represents a terminal node with a value
	LeafNode NodeKind = iota
	// SplitNode represents a node with a numerical split
	SplitNode
)

func (k NodeKind) String() string {
	switch k {
	case LeafNode:
		return "leaf"
	case SplitNode:
		return "split"
	default:
		return "unknown"
	}
}

// Node is a tagged variant: leaves carry Value, splits carry Feature,
// Threshold, Left and Right. Threshold is kept in raw feature units; Eval
// compares normalized values. Nodes are immutable once Build returns.
type Node struct {
	Kind NodeKind

	// Leaf
	Value float64

	// Split
	Feature   clinical.Feature
	Threshold float64
	Left      *Node
	Right     *Node

	// Gain is the MSE reduction achieved by the split (0 for leaves).
	Gain float64
	// Samples is the partition size the node was built from.
	Samples int
}

// Normalizer maps a raw feature value into the space thresholds are compared
// in. *preprocessing.FeatureStats implements it.
type Normalizer interface {
	Normalize(f clinical.Feature, v float64) float64
}

// Eval walks the tree for sample: at each split the sample's normalized value
// is compared to the normalized threshold, ≤ goes left. The sample must have
// every feature on the path present.
func Eval(root *Node, sample clinical.Sample, norm Normalizer) float64 {
	node := root
	for node != nil && node.Kind == SplitNode {
		v := norm.Normalize(node.Feature, sample.Value(node.Feature))
		t := norm.Normalize(node.Feature, node.Threshold)
		if v <= t {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	if node == nil {
		return 0
	}
	return node.Value
}

// Depth is the number of split levels on the longest root-to-leaf path.
// A single leaf has depth 0.
func Depth(n *Node) int {
	if n == nil || n.Kind == LeafNode {
		return 0
	}
	return 1 + max(Depth(n.Left), Depth(n.Right))
}

// NumLeaves counts the leaves under n.
func NumLeaves(n *Node) int {
	if n == nil {
		return 0
	}
	if n.Kind == LeafNode {
		return 1
	}
	return NumLeaves(n.Left) + NumLeaves(n.Right)
}

// Walk visits every node in pre-order.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	if n.Kind == SplitNode {
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	}
}
