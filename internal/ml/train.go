package ml

import (
	"fmt"
	"math"
)

// Candidate pairs a display name with a fresh-model constructor.
type Candidate struct {
	Name string
	New  func() Trainable
}

// DefaultCandidates returns the model lineup compared during training.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Name: "Logistic Regression", New: func() Trainable { return NewLogisticRegression() }},
		{Name: "Random Forest (n=100, d=5)", New: func() Trainable { return NewRandomForest(100, 5) }},
		{Name: "Random Forest (n=100, d=10)", New: func() Trainable { return NewRandomForest(100, 10) }},
		{Name: "Gradient Boosting", New: func() Trainable { return NewGradientBoosting(100, 3, 0.1) }},
	}
}

// CVResult summarizes one candidate's cross-validation run.
type CVResult struct {
	Name     string
	Mean     float64
	Std      float64
	TrainAcc float64
}

// CrossValidate scores a candidate with stratified k-fold accuracy.
func CrossValidate(c Candidate, ds *Dataset, k int, seed int64) (CVResult, error) {
	folds := StratifiedFolds(ds.Y, k, seed)
	accs := make([]float64, 0, k)
	for fold := range folds {
		trainIdx, testIdx := TrainTestSplit(folds, fold)
		train := ds.Subset(trainIdx)
		test := ds.Subset(testIdx)

		m := c.New()
		if err := m.Fit(train.X, train.Y); err != nil {
			return CVResult{}, fmt.Errorf("%s fold %d: %w", c.Name, fold, err)
		}
		accs = append(accs, Accuracy(m, test.X, test.Y))
	}

	res := CVResult{Name: c.Name}
	for _, a := range accs {
		res.Mean += a
	}
	res.Mean /= float64(len(accs))
	for _, a := range accs {
		d := a - res.Mean
		res.Std += d * d
	}
	res.Std = math.Sqrt(res.Std / float64(len(accs)))
	return res, nil
}

// TrainBest cross-validates every candidate, refits each on the full
// dataset for its training accuracy, and returns the one with the highest
// CV mean. Ties keep the earlier candidate. The report callback, when not
// nil, sees every candidate's numbers as they come in.
func TrainBest(ds *Dataset, k int, seed int64, report func(CVResult)) (Trainable, CVResult, error) {
	var (
		best    Trainable
		bestRes CVResult
		have    bool
	)
	for _, c := range DefaultCandidates() {
		res, err := CrossValidate(c, ds, k, seed)
		if err != nil {
			return nil, CVResult{}, err
		}

		m := c.New()
		if err := m.Fit(ds.X, ds.Y); err != nil {
			return nil, CVResult{}, fmt.Errorf("%s: %w", c.Name, err)
		}
		res.TrainAcc = Accuracy(m, ds.X, ds.Y)
		if report != nil {
			report(res)
		}

		if !have || res.Mean > bestRes.Mean {
			best = m
			bestRes = res
			have = true
		}
	}
	if !have {
		return nil, CVResult{}, fmt.Errorf("no candidate models")
	}
	return best, bestRes, nil
}

// Accuracy returns the fraction of rows the model labels correctly.
func Accuracy(m Model, X [][]float64, y []string) float64 {
	if len(X) == 0 {
		return 0
	}
	correct := 0
	for i, row := range X {
		if label, _ := Predict(m, row); label == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(X))
}

// AccuracyByClass returns per-class [correct, total] counts.
func AccuracyByClass(m Model, X [][]float64, y []string) map[string][2]int {
	out := make(map[string][2]int)
	for i, row := range X {
		counts := out[y[i]]
		counts[1]++
		if label, _ := Predict(m, row); label == y[i] {
			counts[0]++
		}
		out[y[i]] = counts
	}
	return out
}

// FeatureImportances returns the model's impurity importances when it
// tracks them, nil otherwise.
func FeatureImportances(m Model) []float64 {
	if r, ok := m.(interface{ FeatureImportances() []float64 }); ok {
		return r.FeatureImportances()
	}
	return nil
}
