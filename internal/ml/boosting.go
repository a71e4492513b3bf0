package ml

import (
	"fmt"
	"math"
)

// GradientBoosting fits one regression tree per class per round against the
// softmax residuals, multinomial-deviance style. Scores start from the log
// class priors.
type GradientBoosting struct {
	ClassNames []string      `json:"classes"`
	NumRounds  int           `json:"n_estimators"`
	MaxDepth   int           `json:"max_depth"`
	LearnRate  float64       `json:"learning_rate"`
	InitScore  []float64     `json:"init_score"`
	Trees      [][]*treeNode `json:"trees"` // [round][class]
	Importance []float64     `json:"feature_importances,omitempty"`
}

// NewGradientBoosting returns an untrained booster.
func NewGradientBoosting(numRounds, maxDepth int, learnRate float64) *GradientBoosting {
	return &GradientBoosting{NumRounds: numRounds, MaxDepth: maxDepth, LearnRate: learnRate}
}

// Fit trains the booster on the given rows.
func (gb *GradientBoosting) Fit(X [][]float64, y []string) error {
	n := len(X)
	if n == 0 || len(y) != n {
		return fmt.Errorf("boosting: got %d feature rows for %d labels", len(X), len(y))
	}
	d := len(X[0])

	gb.ClassNames = uniqueSorted(y)
	k := len(gb.ClassNames)
	labels := labelIndices(y, gb.ClassNames)

	gb.InitScore = make([]float64, k)
	for _, c := range labels {
		gb.InitScore[c]++
	}
	for c := range gb.InitScore {
		gb.InitScore[c] = math.Log(gb.InitScore[c] / float64(n))
	}

	scores := make([][]float64, n)
	for i := range scores {
		scores[i] = append([]float64(nil), gb.InitScore...)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	gb.Trees = make([][]*treeNode, gb.NumRounds)
	gb.Importance = make([]float64, d)
	residual := make([]float64, n)

	for round := 0; round < gb.NumRounds; round++ {
		// Probability snapshot for the round; every class tree fits
		// residuals against the same snapshot.
		probs := make([][]float64, n)
		for i := range scores {
			p := append([]float64(nil), scores[i]...)
			softmaxInPlace(p)
			probs[i] = p
		}

		gb.Trees[round] = make([]*treeNode, k)
		for c := 0; c < k; c++ {
			for i := range residual {
				target := 0.0
				if labels[i] == c {
					target = 1
				}
				residual[i] = target - probs[i][c]
			}

			builder := &regTreeBuilder{
				params:     treeParams{maxDepth: gb.MaxDepth, minSplit: 2},
				importance: make([]float64, d),
			}
			tree := builder.build(X, residual, indices, 0)
			gb.Trees[round][c] = tree
			for j, imp := range builder.importance {
				gb.Importance[j] += imp
			}

			for i := range scores {
				scores[i][c] += gb.LearnRate * tree.predict(X[i])[0]
			}
		}
	}

	normalizeImportance(gb.Importance)
	return nil
}

// PredictProba returns the softmax of the boosted class scores.
func (gb *GradientBoosting) PredictProba(features []float64) []float64 {
	scores := append([]float64(nil), gb.InitScore...)
	for _, round := range gb.Trees {
		for c, tree := range round {
			scores[c] += gb.LearnRate * tree.predict(features)[0]
		}
	}
	softmaxInPlace(scores)
	return scores
}

// Classes returns the class labels in probability order.
func (gb *GradientBoosting) Classes() []string { return gb.ClassNames }

// FeatureImportances returns the normalized impurity-decrease importances.
func (gb *GradientBoosting) FeatureImportances() []float64 { return gb.Importance }
