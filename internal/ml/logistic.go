package ml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LogisticRegression is a multinomial softmax classifier trained by batch
// gradient descent. Features are standardized internally and the scaling is
// stored with the weights, so a reloaded model predicts identically.
type LogisticRegression struct {
	ClassNames []string    `json:"classes"`
	Weights    [][]float64 `json:"weights"` // [class][feature]
	Bias       []float64   `json:"bias"`
	FeatMean   []float64   `json:"feature_mean"`
	FeatStd    []float64   `json:"feature_std"`

	MaxIter   int     `json:"max_iter"`
	LearnRate float64 `json:"learning_rate"`
}

// NewLogisticRegression returns a classifier with the default training
// schedule.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{MaxIter: 1000, LearnRate: 0.1}
}

// Fit trains the classifier on the given rows.
func (lr *LogisticRegression) Fit(X [][]float64, y []string) error {
	n := len(X)
	if n == 0 || len(y) != n {
		return fmt.Errorf("logistic: got %d feature rows for %d labels", len(X), len(y))
	}
	d := len(X[0])

	lr.ClassNames = uniqueSorted(y)
	k := len(lr.ClassNames)
	labels := labelIndices(y, lr.ClassNames)

	lr.FeatMean, lr.FeatStd = standardScale(X)

	xd := mat.NewDense(n, d, nil)
	for i, row := range X {
		for j, v := range row {
			xd.Set(i, j, (v-lr.FeatMean[j])/lr.FeatStd[j])
		}
	}

	target := mat.NewDense(n, k, nil)
	for i, c := range labels {
		target.Set(i, c, 1)
	}

	weights := mat.NewDense(d, k, nil)
	bias := make([]float64, k)

	probs := mat.NewDense(n, k, nil)
	var grad mat.Dense
	for iter := 0; iter < lr.MaxIter; iter++ {
		// P = softmax(XW + b), row-wise
		probs.Mul(xd, weights)
		for i := 0; i < n; i++ {
			row := probs.RawRowView(i)
			for c := range row {
				row[c] += bias[c]
			}
			softmaxInPlace(row)
		}

		// Cross-entropy gradient: Xᵀ(P − Y)/n for the weights, the
		// column sums of (P − Y)/n for the bias.
		probs.Sub(probs, target)
		grad.Mul(xd.T(), probs)

		for j := 0; j < d; j++ {
			for c := 0; c < k; c++ {
				weights.Set(j, c, weights.At(j, c)-lr.LearnRate*grad.At(j, c)/float64(n))
			}
		}
		for c := 0; c < k; c++ {
			sum := 0.0
			for i := 0; i < n; i++ {
				sum += probs.At(i, c)
			}
			bias[c] -= lr.LearnRate * sum / float64(n)
		}
	}

	lr.Weights = make([][]float64, k)
	for c := 0; c < k; c++ {
		lr.Weights[c] = make([]float64, d)
		for j := 0; j < d; j++ {
			lr.Weights[c][j] = weights.At(j, c)
		}
	}
	lr.Bias = bias
	return nil
}

// PredictProba returns the softmax class probabilities for one feature
// vector.
func (lr *LogisticRegression) PredictProba(features []float64) []float64 {
	k := len(lr.ClassNames)
	logits := make([]float64, k)
	for c := 0; c < k; c++ {
		z := lr.Bias[c]
		for j, v := range features {
			z += lr.Weights[c][j] * (v - lr.FeatMean[j]) / lr.FeatStd[j]
		}
		logits[c] = z
	}
	softmaxInPlace(logits)
	return logits
}

// Classes returns the class labels in probability order.
func (lr *LogisticRegression) Classes() []string { return lr.ClassNames }

// standardScale returns per-column means and standard deviations.
// Zero-variance columns get a unit scale so standardizing is a no-op.
func standardScale(X [][]float64) (mean, std []float64) {
	n := float64(len(X))
	d := len(X[0])
	mean = make([]float64, d)
	std = make([]float64, d)
	for _, row := range X {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= n
	}
	for _, row := range X {
		for j, v := range row {
			diff := v - mean[j]
			std[j] += diff * diff
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / n)
		if std[j] < 1e-9 {
			std[j] = 1
		}
	}
	return mean, std
}
