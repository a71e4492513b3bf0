package ml

import (
	"reflect"
	"testing"
)

func labelBlock(counts map[string]int) []string {
	var y []string
	for _, label := range []string{"가을", "겨울", "봄", "여름"} {
		for i := 0; i < counts[label]; i++ {
			y = append(y, label)
		}
	}
	return y
}

func TestStratifiedFolds_Deterministic(t *testing.T) {
	y := labelBlock(map[string]int{"가을": 13, "겨울": 11, "봄": 17, "여름": 9})

	first := StratifiedFolds(y, 5, 42)
	second := StratifiedFolds(y, 5, 42)
	if !reflect.DeepEqual(first, second) {
		t.Error("same seed produced different folds")
	}

	other := StratifiedFolds(y, 5, 7)
	if reflect.DeepEqual(first, other) {
		t.Error("different seeds produced identical folds")
	}
}

func TestStratifiedFolds_DisjointCover(t *testing.T) {
	y := labelBlock(map[string]int{"가을": 13, "겨울": 11, "봄": 17, "여름": 9})

	folds := StratifiedFolds(y, 5, 42)

	seen := make(map[int]int)
	for _, fold := range folds {
		for _, idx := range fold {
			seen[idx]++
		}
	}
	if len(seen) != len(y) {
		t.Errorf("folds cover %d of %d rows", len(seen), len(y))
	}
	for idx, n := range seen {
		if n != 1 {
			t.Errorf("row %d appears %d times", idx, n)
		}
	}
}

func TestStratifiedFolds_ClassBalance(t *testing.T) {
	y := labelBlock(map[string]int{"가을": 10, "겨울": 10, "봄": 10, "여름": 10})

	folds := StratifiedFolds(y, 5, 42)

	for i, fold := range folds {
		counts := make(map[string]int)
		for _, idx := range fold {
			counts[y[idx]]++
		}
		for label, n := range counts {
			if n != 2 {
				t.Errorf("fold %d has %d rows of %s, want 2", i, n, label)
			}
		}
	}
}

func TestTrainTestSplit(t *testing.T) {
	folds := [][]int{{0, 1}, {2, 3}, {4, 5}}

	train, test := TrainTestSplit(folds, 1)

	if !reflect.DeepEqual(test, []int{2, 3}) {
		t.Errorf("test = %v, want [2 3]", test)
	}
	if !reflect.DeepEqual(train, []int{0, 1, 4, 5}) {
		t.Errorf("train = %v, want [0 1 4 5]", train)
	}
}
