// Command seasontrain trains the four-season classifier from a feature CSV.
// It compares the candidate models by stratified cross-validation, refits
// the best on the full dataset, and writes the model artifact JSON.
//
// Usage: seasontrain <features-csv> [output-json]
package main

import (
	"fmt"
	"os"
	"sort"

	"tonelab/internal/ml"
)

const (
	cvFolds = 5
	cvSeed  = 42
)

var seasonOrder = []string{"봄", "여름", "가을", "겨울"}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <features-csv> [output-json]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nTrains the four-season classifier and writes the model artifact.\n")
		fmt.Fprintf(os.Stderr, "Default output: %s\n", ml.DefaultArtifactName)
		os.Exit(1)
	}

	csvPath := os.Args[1]
	outputPath := ml.DefaultArtifactName
	if len(os.Args) >= 3 {
		outputPath = os.Args[2]
	}

	ds, err := ml.LoadCSV(csvPath, ml.DefaultFeatureCols, ml.LabelCol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %d samples from %s\n", ds.Len(), csvPath)
	counts := ds.CountByClass()
	for _, s := range seasonOrder {
		fmt.Printf("  %s: %d\n", s, counts[s])
	}
	fmt.Printf("Features: %v\n", ds.FeatureCols)

	fmt.Printf("\nModel comparison (%d-fold stratified cross-validation)\n", cvFolds)
	best, bestRes, err := ml.TrainBest(ds, cvFolds, cvSeed, func(r ml.CVResult) {
		fmt.Printf("\n%s:\n", r.Name)
		fmt.Printf("  CV Mean:   %.3f ± %.3f\n", r.Mean, r.Std)
		fmt.Printf("  Train Acc: %.3f\n", r.TrainAcc)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error training: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nBest model: %s (CV %.3f)\n", bestRes.Name, bestRes.Mean)

	fmt.Println("\nPer-class accuracy:")
	byClass := ml.AccuracyByClass(best, ds.X, ds.Y)
	for _, s := range seasonOrder {
		c, ok := byClass[s]
		if !ok {
			continue
		}
		fmt.Printf("  %s: %d/%d = %.1f%%\n", s, c[0], c[1], 100*float64(c[0])/float64(c[1]))
	}

	if imp := ml.FeatureImportances(best); imp != nil {
		type featImp struct {
			name  string
			value float64
		}
		pairs := make([]featImp, len(imp))
		for i, v := range imp {
			pairs[i] = featImp{ds.FeatureCols[i], v}
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].value > pairs[j].value })

		fmt.Println("\nFeature importances:")
		for _, p := range pairs {
			fmt.Printf("  %-12s: %.3f\n", p.name, p.value)
		}
	}

	if err := ml.SaveModel(outputPath, best, bestRes.Name, ds.FeatureCols, bestRes.Mean, bestRes.TrainAcc); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving model: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nWrote model to %s\n", outputPath)
	fmt.Printf("  Model:     %s\n", bestRes.Name)
	fmt.Printf("  CV Score:  %.1f%%\n", 100*bestRes.Mean)
	fmt.Printf("  Train Acc: %.1f%%\n", 100*bestRes.TrainAcc)
}
