package tree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/heartrisk/clinical"
)

type identity struct{}

func (identity) Normalize(_ clinical.Feature, v float64) float64 { return v }

// scaled is a monotone normalizer with a negative offset.
type scaled struct{}

func (scaled) Normalize(_ clinical.Feature, v float64) float64 { return (v - 50) / 7 }

// datasetFrom builds samples where every feature is 0 except the ones given.
func datasetFrom(cols map[clinical.Feature][]float64, n int) clinical.Dataset {
	ds := make(clinical.Dataset, n)
	for i := range ds {
		var vals [clinical.NumFeatures]float64
		for f, col := range cols {
			vals[f] = col[i]
		}
		ds[i] = clinical.NewSample(vals)
	}
	return ds
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestBestSplit_SeparatesResiduals(t *testing.T) {
	ds := datasetFrom(map[clinical.Feature][]float64{
		clinical.Cholesterol: {180, 190, 260, 280},
	}, 4)
	residuals := []float64{-0.5, -0.5, 0.5, 0.5}

	split, ok := BestSplit(ds, allRows(4), residuals)
	require.True(t, ok)
	assert.Equal(t, clinical.Cholesterol, split.Feature)
	assert.Equal(t, 190.0, split.Threshold)
	assert.InDelta(t, 0.25, split.Gain, 1e-12)
	assert.Equal(t, []int{0, 1}, split.LeftRows)
	assert.Equal(t, []int{2, 3}, split.RightRows)
	assert.Equal(t, []float64{-0.5, -0.5}, split.LeftResiduals)
	assert.Equal(t, []float64{0.5, 0.5}, split.RightResiduals)
}

func TestBestSplit_TieKeepsEarlierFeature(t *testing.T) {
	col := []float64{1, 2, 3, 4}
	ds := datasetFrom(map[clinical.Feature][]float64{
		clinical.Thal:         col,
		clinical.MajorVessels: col,
		clinical.Age:          col,
	}, 4)

	split, ok := BestSplit(ds, allRows(4), []float64{-1, -1, 1, 1})
	require.True(t, ok)
	assert.Equal(t, clinical.Age, split.Feature)
}

func TestBestSplit_TieKeepsFirstOccurrence(t *testing.T) {
	// Thresholds 1 and 2 give the same gain on these residuals.
	tests := []struct {
		name   string
		values []float64
		resid  []float64
		want   float64
	}{
		{name: "ascending", values: []float64{1, 2, 3}, resid: []float64{1, 0, 1}, want: 1},
		{name: "two first", values: []float64{2, 1, 3}, resid: []float64{0, 1, 1}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := datasetFrom(map[clinical.Feature][]float64{clinical.Age: tt.values}, 3)
			split, ok := BestSplit(ds, allRows(3), tt.resid)
			require.True(t, ok)
			assert.Equal(t, tt.want, split.Threshold)
		})
	}
}

func TestBestSplit_NoSplit(t *testing.T) {
	t.Run("constant features", func(t *testing.T) {
		ds := datasetFrom(nil, 6)
		_, ok := BestSplit(ds, allRows(6), []float64{1, -1, 1, -1, 1, -1})
		assert.False(t, ok)
	})
	t.Run("constant residuals", func(t *testing.T) {
		ds := datasetFrom(map[clinical.Feature][]float64{clinical.Age: {1, 2, 3, 4}}, 4)
		_, ok := BestSplit(ds, allRows(4), []float64{0.5, 0.5, 0.5, 0.5})
		assert.False(t, ok)
	})
	t.Run("single row", func(t *testing.T) {
		ds := datasetFrom(map[clinical.Feature][]float64{clinical.Age: {1}}, 1)
		_, ok := BestSplit(ds, allRows(1), []float64{1})
		assert.False(t, ok)
	})
}

func TestBestSplit_UsesOnlyPartitionRows(t *testing.T) {
	ds := datasetFrom(map[clinical.Feature][]float64{
		clinical.Age: {10, 20, 30, 40, 50, 60},
	}, 6)
	rows := []int{3, 4, 5}
	split, ok := BestSplit(ds, rows, []float64{-1, 1, 1})
	require.True(t, ok)
	assert.Equal(t, 40.0, split.Threshold)
	assert.Equal(t, []int{3}, split.LeftRows)
	assert.Equal(t, []int{4, 5}, split.RightRows)
}

func TestBuilder_LeafConditions(t *testing.T) {
	ds := datasetFrom(map[clinical.Feature][]float64{clinical.Age: {1, 2, 3, 4}}, 4)
	residuals := []float64{-1, -1, 1, 3}

	t.Run("partition below minimum", func(t *testing.T) {
		node := NewBuilder().Build(ds, allRows(4), residuals, 0)
		assert.Equal(t, LeafNode, node.Kind)
		assert.InDelta(t, 0.5, node.Value, 1e-12)
	})

	t.Run("depth reached", func(t *testing.T) {
		b := &Builder{MaxDepth: 2, MinPartition: 1}
		node := b.Build(ds, allRows(4), residuals, 2)
		assert.Equal(t, LeafNode, node.Kind)
	})

	t.Run("splits when allowed", func(t *testing.T) {
		b := &Builder{MaxDepth: 4, MinPartition: 2}
		node := b.Build(ds, allRows(4), residuals, 0)
		require.Equal(t, SplitNode, node.Kind)
		assert.Equal(t, clinical.Age, node.Feature)
		assert.Equal(t, 4, node.Samples)
	})
}

func TestBuilder_DepthBound(t *testing.T) {
	n := 64
	age := make([]float64, n)
	chol := make([]float64, n)
	residuals := make([]float64, n)
	for i := 0; i < n; i++ {
		age[i] = float64(30 + (i*7)%45)
		chol[i] = float64(150 + (i*13)%160)
		residuals[i] = math.Sin(float64(i))
	}
	ds := datasetFrom(map[clinical.Feature][]float64{clinical.Age: age, clinical.Cholesterol: chol}, n)

	for maxDepth := 0; maxDepth <= 5; maxDepth++ {
		b := &Builder{MaxDepth: maxDepth, MinPartition: 1}
		root := b.Build(ds, allRows(n), residuals, 0)
		assert.LessOrEqual(t, Depth(root), maxDepth)
		assert.LessOrEqual(t, NumLeaves(root), 1<<maxDepth)

		leaves := 0
		Walk(root, func(node *Node) {
			if node.Kind == LeafNode {
				leaves++
			}
		})
		assert.Equal(t, NumLeaves(root), leaves)
	}
}

func TestBuilder_Deterministic(t *testing.T) {
	ds := datasetFrom(map[clinical.Feature][]float64{
		clinical.Age:         {63, 37, 41, 56, 57, 57, 56, 44, 52, 57},
		clinical.RestingBP:   {145, 130, 130, 120, 120, 140, 140, 120, 172, 150},
		clinical.Cholesterol: {233, 250, 204, 236, 354, 192, 294, 263, 199, 168},
	}, 10)
	residuals := []float64{0.5, -0.5, 0.5, -0.5, 0.5, 0.5, -0.5, -0.5, 0.5, -0.5}

	b := &Builder{MaxDepth: 3, MinPartition: 2}
	a := b.Build(ds, allRows(10), residuals, 0)
	c := b.Build(ds, allRows(10), residuals, 0)
	assert.Equal(t, a, c)
}

func TestEval(t *testing.T) {
	root := &Node{
		Kind:      SplitNode,
		Feature:   clinical.Age,
		Threshold: 50,
		Left:      &Node{Kind: LeafNode, Value: -0.25},
		Right: &Node{
			Kind:      SplitNode,
			Feature:   clinical.Cholesterol,
			Threshold: 240,
			Left:      &Node{Kind: LeafNode, Value: 0.1},
			Right:     &Node{Kind: LeafNode, Value: 0.4},
		},
	}

	sample := func(age, chol float64) clinical.Sample {
		var vals [clinical.NumFeatures]float64
		vals[clinical.Age] = age
		vals[clinical.Cholesterol] = chol
		return clinical.NewSample(vals)
	}

	tests := []struct {
		name string
		s    clinical.Sample
		want float64
	}{
		{"threshold goes left", sample(50, 300), -0.25},
		{"right then left", sample(51, 240), 0.1},
		{"right then right", sample(70, 241), 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Eval(root, tt.s, identity{}))
			assert.Equal(t, tt.want, Eval(root, tt.s, scaled{}), "monotone normalization keeps the route")
		})
	}

	assert.Equal(t, 2, Depth(root))
	assert.Equal(t, 3, NumLeaves(root))
	assert.Equal(t, 0.0, Eval(nil, sample(1, 1), identity{}))
	assert.Equal(t, "split", SplitNode.String())
}
