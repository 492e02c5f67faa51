package tree

import (
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/heartrisk/clinical"
)

// Default construction limits.
const (
	DefaultMaxDepth     = 4
	DefaultMinPartition = 5
)

// Builder grows one regression tree over a residual vector.
type Builder struct {
	// MaxDepth stops recursion once depth ≥ MaxDepth.
	MaxDepth int
	// MinPartition turns partitions with fewer rows into leaves.
	MinPartition int
}

// NewBuilder returns a Builder with the default limits.
func NewBuilder() *Builder {
	return &Builder{MaxDepth: DefaultMaxDepth, MinPartition: DefaultMinPartition}
}

// Build returns a leaf holding the mean residual when depth ≥ MaxDepth, the
// partition is smaller than MinPartition, or BestSplit finds nothing;
// otherwise a split node whose children are built at depth+1 from their own
// partitions.
func (b *Builder) Build(data clinical.Dataset, rows []int, residuals []float64, depth int) *Node {
	if depth >= b.MaxDepth || len(rows) < b.MinPartition {
		return leaf(residuals)
	}

	split, ok := BestSplit(data, rows, residuals)
	if !ok {
		return leaf(residuals)
	}

	return &Node{
		Kind:      SplitNode,
		Feature:   split.Feature,
		Threshold: split.Threshold,
		Gain:      split.Gain,
		Samples:   len(rows),
		Left:      b.Build(data, split.LeftRows, split.LeftResiduals, depth+1),
		Right:     b.Build(data, split.RightRows, split.RightResiduals, depth+1),
	}
}

func leaf(residuals []float64) *Node {
	n := &Node{Kind: LeafNode, Samples: len(residuals)}
	if len(residuals) > 0 {
		n.Value = stat.Mean(residuals, nil)
	}
	return n
}
