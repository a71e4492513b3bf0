package ml

import (
	"math/rand"
	"sort"
)

// treeNode is one node of a CART tree. Leaf values hold a class
// distribution for classification trees and a single fitted value for the
// regression trees used by gradient boosting.
type treeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
	Leaf      bool      `json:"leaf"`
	Value     []float64 `json:"value,omitempty"`
}

// predict walks the tree for one feature vector.
func (t *treeNode) predict(features []float64) []float64 {
	node := t
	for !node.Leaf {
		if features[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// treeParams bound tree growth.
type treeParams struct {
	maxDepth    int
	minSplit    int
	maxFeatures int // 0 means consider every feature
}

// classTreeBuilder grows classification trees split by Gini impurity.
type classTreeBuilder struct {
	params     treeParams
	numClasses int
	rng        *rand.Rand
	importance []float64 // impurity decrease per feature, sample-weighted
}

func (b *classTreeBuilder) build(X [][]float64, y []int, indices []int, depth int) *treeNode {
	counts := make([]float64, b.numClasses)
	for _, i := range indices {
		counts[y[i]]++
	}
	n := float64(len(indices))

	if depth >= b.params.maxDepth || len(indices) < b.params.minSplit || isPure(counts) {
		return classLeaf(counts, n)
	}

	feature, threshold, gain, left, right := b.bestGiniSplit(X, y, indices, counts)
	if feature < 0 {
		return classLeaf(counts, n)
	}
	b.importance[feature] += gain * n

	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.build(X, y, left, depth+1),
		Right:     b.build(X, y, right, depth+1),
	}
}

// bestGiniSplit scans every candidate feature for the split with the
// largest impurity decrease. Thresholds sit midway between adjacent
// distinct values. Returns feature -1 when no split improves on the parent.
func (b *classTreeBuilder) bestGiniSplit(X [][]float64, y []int, indices []int, counts []float64) (int, float64, float64, []int, []int) {
	n := float64(len(indices))
	parent := gini(counts, n)

	bestFeature := -1
	var bestThreshold, bestGain float64

	sorted := make([]int, len(indices))
	leftCounts := make([]float64, b.numClasses)
	rightCounts := make([]float64, b.numClasses)

	for _, f := range b.candidateFeatures(len(X[0])) {
		copy(sorted, indices)
		sort.Slice(sorted, func(i, j int) bool { return X[sorted[i]][f] < X[sorted[j]][f] })

		for i := range leftCounts {
			leftCounts[i] = 0
		}
		copy(rightCounts, counts)

		for i := 0; i < len(sorted)-1; i++ {
			c := y[sorted[i]]
			leftCounts[c]++
			rightCounts[c]--

			v, next := X[sorted[i]][f], X[sorted[i+1]][f]
			if v == next {
				continue
			}
			nl := float64(i + 1)
			nr := n - nl
			gain := parent - (nl*gini(leftCounts, nl)+nr*gini(rightCounts, nr))/n
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (v + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return -1, 0, 0, nil, nil
	}

	var left, right []int
	for _, i := range indices {
		if X[i][bestFeature] <= bestThreshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return bestFeature, bestThreshold, bestGain, left, right
}

// candidateFeatures returns the feature subset examined at one node: all
// features, or a random draw of maxFeatures for forest trees.
func (b *classTreeBuilder) candidateFeatures(d int) []int {
	if b.params.maxFeatures <= 0 || b.params.maxFeatures >= d {
		all := make([]int, d)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return b.rng.Perm(d)[:b.params.maxFeatures]
}

func classLeaf(counts []float64, n float64) *treeNode {
	value := make([]float64, len(counts))
	for i, c := range counts {
		value[i] = c / n
	}
	return &treeNode{Leaf: true, Value: value}
}

func isPure(counts []float64) bool {
	nonzero := 0
	for _, c := range counts {
		if c > 0 {
			nonzero++
		}
	}
	return nonzero <= 1
}

// gini computes 1 - Σ p² for a class count vector.
func gini(counts []float64, n float64) float64 {
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := c / n
		g -= p * p
	}
	return g
}

// regTreeBuilder grows regression trees split by squared-error reduction.
type regTreeBuilder struct {
	params     treeParams
	importance []float64
}

func (b *regTreeBuilder) build(X [][]float64, target []float64, indices []int, depth int) *treeNode {
	var sum, sumSq float64
	for _, i := range indices {
		sum += target[i]
		sumSq += target[i] * target[i]
	}
	n := float64(len(indices))

	if depth >= b.params.maxDepth || len(indices) < b.params.minSplit {
		return &treeNode{Leaf: true, Value: []float64{sum / n}}
	}

	feature, threshold, gain, left, right := b.bestMSESplit(X, target, indices, sum, sumSq)
	if feature < 0 {
		return &treeNode{Leaf: true, Value: []float64{sum / n}}
	}
	b.importance[feature] += gain

	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.build(X, target, left, depth+1),
		Right:     b.build(X, target, right, depth+1),
	}
}

// bestMSESplit finds the split with the largest sum-of-squared-error
// reduction, using running sums over the sorted rows.
func (b *regTreeBuilder) bestMSESplit(X [][]float64, target []float64, indices []int, sum, sumSq float64) (int, float64, float64, []int, []int) {
	n := float64(len(indices))
	parentSSE := sumSq - sum*sum/n

	bestFeature := -1
	var bestThreshold, bestGain float64

	sorted := make([]int, len(indices))
	for f := 0; f < len(X[0]); f++ {
		copy(sorted, indices)
		sort.Slice(sorted, func(i, j int) bool { return X[sorted[i]][f] < X[sorted[j]][f] })

		var leftSum, leftSumSq float64
		for i := 0; i < len(sorted)-1; i++ {
			t := target[sorted[i]]
			leftSum += t
			leftSumSq += t * t

			v, next := X[sorted[i]][f], X[sorted[i+1]][f]
			if v == next {
				continue
			}
			nl := float64(i + 1)
			nr := n - nl
			rightSum := sum - leftSum
			rightSumSq := sumSq - leftSumSq
			sse := (leftSumSq - leftSum*leftSum/nl) + (rightSumSq - rightSum*rightSum/nr)
			gain := parentSSE - sse
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (v + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return -1, 0, 0, nil, nil
	}

	var left, right []int
	for _, i := range indices {
		if X[i][bestFeature] <= bestThreshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return bestFeature, bestThreshold, bestGain, left, right
}
