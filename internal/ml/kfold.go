package ml

import (
	"math/rand"
	"sort"
)

// StratifiedFolds splits row indices into k folds whose class mix matches
// the full set. Rows of each class are shuffled with the given seed, then
// dealt round-robin across the folds.
func StratifiedFolds(y []string, k int, seed int64) [][]int {
	rng := rand.New(rand.NewSource(seed))

	byClass := make(map[string][]int)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	classes := make([]string, 0, len(byClass))
	for label := range byClass {
		classes = append(classes, label)
	}
	sort.Strings(classes)

	folds := make([][]int, k)
	for _, label := range classes {
		indices := byClass[label]
		rng.Shuffle(len(indices), func(a, b int) {
			indices[a], indices[b] = indices[b], indices[a]
		})
		for j, idx := range indices {
			folds[j%k] = append(folds[j%k], idx)
		}
	}
	return folds
}

// TrainTestSplit returns the train and test indices for one held-out fold.
func TrainTestSplit(folds [][]int, test int) (trainIdx, testIdx []int) {
	for i, fold := range folds {
		if i == test {
			testIdx = append(testIdx, fold...)
			continue
		}
		trainIdx = append(trainIdx, fold...)
	}
	return trainIdx, testIdx
}
