package ml

import (
	"fmt"
	"math"
	"math/rand"
)

// RandomForest averages the class distributions of Gini trees grown on
// bootstrap samples. Each split examines a random √d feature subset.
type RandomForest struct {
	ClassNames []string    `json:"classes"`
	NumTrees   int         `json:"n_estimators"`
	MaxDepth   int         `json:"max_depth"`
	Seed       int64       `json:"seed"`
	Trees      []*treeNode `json:"trees"`
	Importance []float64   `json:"feature_importances,omitempty"`
}

// NewRandomForest returns an untrained forest of numTrees depth-bounded
// trees.
func NewRandomForest(numTrees, maxDepth int) *RandomForest {
	return &RandomForest{NumTrees: numTrees, MaxDepth: maxDepth, Seed: 42}
}

// Fit trains the forest on the given rows. Each tree draws its own
// bootstrap sample and feature subsets from a seed offset by the tree
// index, so refitting reproduces the same forest.
func (rf *RandomForest) Fit(X [][]float64, y []string) error {
	n := len(X)
	if n == 0 || len(y) != n {
		return fmt.Errorf("forest: got %d feature rows for %d labels", len(X), len(y))
	}
	d := len(X[0])

	rf.ClassNames = uniqueSorted(y)
	labels := labelIndices(y, rf.ClassNames)
	maxFeatures := int(math.Round(math.Sqrt(float64(d))))

	rf.Trees = make([]*treeNode, 0, rf.NumTrees)
	rf.Importance = make([]float64, d)

	for t := 0; t < rf.NumTrees; t++ {
		rng := rand.New(rand.NewSource(rf.Seed + int64(t)))

		sample := make([]int, n)
		for i := range sample {
			sample[i] = rng.Intn(n)
		}

		builder := &classTreeBuilder{
			params:     treeParams{maxDepth: rf.MaxDepth, minSplit: 2, maxFeatures: maxFeatures},
			numClasses: len(rf.ClassNames),
			rng:        rng,
			importance: make([]float64, d),
		}
		rf.Trees = append(rf.Trees, builder.build(X, labels, sample, 0))
		for j, imp := range builder.importance {
			rf.Importance[j] += imp
		}
	}

	normalizeImportance(rf.Importance)
	return nil
}

// PredictProba averages the leaf class distributions across trees.
func (rf *RandomForest) PredictProba(features []float64) []float64 {
	probs := make([]float64, len(rf.ClassNames))
	for _, tree := range rf.Trees {
		for i, p := range tree.predict(features) {
			probs[i] += p
		}
	}
	for i := range probs {
		probs[i] /= float64(len(rf.Trees))
	}
	return probs
}

// Classes returns the class labels in probability order.
func (rf *RandomForest) Classes() []string { return rf.ClassNames }

// FeatureImportances returns the normalized impurity-decrease importances.
func (rf *RandomForest) FeatureImportances() []float64 { return rf.Importance }

// normalizeImportance scales importances to sum to one.
func normalizeImportance(imp []float64) {
	sum := 0.0
	for _, v := range imp {
		sum += v
	}
	if sum == 0 {
		return
	}
	for i := range imp {
		imp[i] /= sum
	}
}
