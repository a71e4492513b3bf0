package ml

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
)

// makeBlobs generates four tight, well separated 2D clusters labeled with
// the season names.
func makeBlobs(perClass int, noise float64, seed int64) ([][]float64, []string) {
	centers := map[string][2]float64{
		"가을": {5, 5},
		"겨울": {-5, 5},
		"봄":  {5, -5},
		"여름": {-5, -5},
	}
	rng := rand.New(rand.NewSource(seed))

	var X [][]float64
	var y []string
	for _, label := range []string{"가을", "겨울", "봄", "여름"} {
		c := centers[label]
		for i := 0; i < perClass; i++ {
			X = append(X, []float64{
				c[0] + noise*(2*rng.Float64()-1),
				c[1] + noise*(2*rng.Float64()-1),
			})
			y = append(y, label)
		}
	}
	return X, y
}

func checkProbaSimplex(t *testing.T, m Model, features []float64) {
	t.Helper()
	probs := m.PredictProba(features)
	if len(probs) != len(m.Classes()) {
		t.Fatalf("%d probabilities for %d classes", len(probs), len(m.Classes()))
	}
	sum := 0.0
	for _, p := range probs {
		if p < 0 {
			t.Errorf("negative probability %v", p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("probabilities sum to %v, want 1", sum)
	}
}

func TestLogisticRegression_SeparableBlobs(t *testing.T) {
	X, y := makeBlobs(25, 0.5, 1)

	m := NewLogisticRegression()
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if acc := Accuracy(m, X, y); acc < 0.98 {
		t.Errorf("train accuracy = %.3f on separable blobs", acc)
	}
	checkProbaSimplex(t, m, X[0])

	want := []string{"가을", "겨울", "봄", "여름"}
	if !reflect.DeepEqual(m.Classes(), want) {
		t.Errorf("classes = %v, want %v", m.Classes(), want)
	}
}

func TestLogisticRegression_PredictsClusterCenters(t *testing.T) {
	X, y := makeBlobs(25, 0.5, 2)

	m := NewLogisticRegression()
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	centers := map[string][]float64{
		"가을": {5, 5}, "겨울": {-5, 5}, "봄": {5, -5}, "여름": {-5, -5},
	}
	for label, center := range centers {
		got, p := Predict(m, center)
		if got != label {
			t.Errorf("center of %s predicted as %s (p=%.3f)", label, got, p)
		}
		if p < 0.9 {
			t.Errorf("center of %s got weak probability %.3f", label, p)
		}
	}
}

func TestLogisticRegression_FitRejectsMismatchedLabels(t *testing.T) {
	m := NewLogisticRegression()
	if err := m.Fit([][]float64{{1, 2}, {3, 4}}, []string{"a"}); err == nil {
		t.Fatal("mismatched rows and labels accepted")
	}
	if err := m.Fit(nil, nil); err == nil {
		t.Fatal("empty dataset accepted")
	}
}

func TestRandomForest_SeparableBlobs(t *testing.T) {
	X, y := makeBlobs(25, 0.5, 3)

	m := NewRandomForest(25, 5)
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if acc := Accuracy(m, X, y); acc < 0.98 {
		t.Errorf("train accuracy = %.3f on separable blobs", acc)
	}
	checkProbaSimplex(t, m, X[0])

	imp := m.FeatureImportances()
	if len(imp) != 2 {
		t.Fatalf("importances have %d entries, want 2", len(imp))
	}
	sum := imp[0] + imp[1]
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("importances sum to %v, want 1", sum)
	}
}

func TestRandomForest_RefitIsReproducible(t *testing.T) {
	X, y := makeBlobs(20, 0.5, 4)

	first := NewRandomForest(10, 5)
	if err := first.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	second := NewRandomForest(10, 5)
	if err := second.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	probes := [][]float64{{5, 5}, {-5, 5}, {0, 0}, {2.5, -3.5}}
	for _, probe := range probes {
		a := first.PredictProba(probe)
		b := second.PredictProba(probe)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("probe %v: %v vs %v", probe, a, b)
		}
	}
}

func TestGradientBoosting_SeparableBlobs(t *testing.T) {
	X, y := makeBlobs(25, 0.5, 5)

	m := NewGradientBoosting(50, 3, 0.1)
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if acc := Accuracy(m, X, y); acc < 0.98 {
		t.Errorf("train accuracy = %.3f on separable blobs", acc)
	}
	checkProbaSimplex(t, m, X[0])
}

func TestGradientBoosting_SkewedPriors(t *testing.T) {
	// 10:1 class imbalance; the init score should still let the minority
	// class win near its own center.
	var X [][]float64
	var y []string
	rng := rand.New(rand.NewSource(6))
	for i := 0; i < 50; i++ {
		X = append(X, []float64{5 + rng.Float64(), 5 + rng.Float64()})
		y = append(y, "다수")
	}
	for i := 0; i < 5; i++ {
		X = append(X, []float64{-5 + rng.Float64(), -5 + rng.Float64()})
		y = append(y, "소수")
	}

	m := NewGradientBoosting(50, 3, 0.1)
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if got, _ := Predict(m, []float64{-5, -5}); got != "소수" {
		t.Errorf("minority center predicted as %s", got)
	}
	if got, _ := Predict(m, []float64{5.5, 5.5}); got != "다수" {
		t.Errorf("majority center predicted as %s", got)
	}
}
