// Command featureextract builds the season training CSV from a labeled
// image tree. The data directory holds one folder per class, named
// <season>_<subtype>, e.g. 가을_딥/. Every image is run through the
// robust extraction pipeline and written as one CSV row.
//
// Usage: featureextract <data-dir> [output-csv]
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tonelab/internal/config"
	"tonelab/internal/diagnose"
	"tonelab/internal/imaging"
	"tonelab/internal/logging"
)

// classFolders is the labeled dataset layout. Order fixes the row order
// of the output CSV.
var classFolders = []string{
	"가을_딥", "가을_소프트", "가을_트루",
	"겨울_딥", "겨울_브라이트", "겨울_트루",
	"봄_라이트", "봄_브라이트", "봄_트루",
	"여름_라이트", "여름_뮤트", "여름_트루",
}

var csvHeader = []string{
	"season", "subtype",
	"a_median", "b_median", "chroma", "L_normalized", "L_raw", "warmth_score",
	"season_group", "folder", "filename", "eyes_detected",
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <data-dir> [output-csv]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nExtracts LAB skin features from a labeled image tree.\n")
		fmt.Fprintf(os.Stderr, "Default output: final_lab_features_wb.csv\n")
		os.Exit(1)
	}

	dataDir := os.Args[1]
	outputPath := "final_lab_features_wb.csv"
	if len(os.Args) >= 3 {
		outputPath = os.Args[2]
	}

	cfg := config.Load()
	// Extraction stops before classification; the threshold strategy
	// keeps the engine constructible without a trained model artifact.
	cfg.Strategy = config.StrategyThreshold
	logging.Setup(cfg.LogLevel)

	engine, err := diagnose.NewEngine(cfg, logging.NewComponentLogger("extract"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building pipeline: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	// Excel needs the BOM to detect UTF-8 in the Korean labels.
	if _, err := out.WriteString("\uFEFF"); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	extracted, failed := 0, 0
	for _, folder := range classFolders {
		parts := strings.SplitN(folder, "_", 2)
		seasonName, subtype := parts[0], parts[1]

		dir := filepath.Join(dataDir, folder)
		entries, err := os.ReadDir(dir)
		if err != nil {
			fmt.Printf("Skipping %s: %v\n", folder, err)
			continue
		}

		var images []string
		for _, e := range entries {
			if e.IsDir() || !imaging.IsSupportedFormat(e.Name()) {
				continue
			}
			images = append(images, e.Name())
		}

		fmt.Printf("Processing %s (%d images)\n", folder, len(images))
		for _, name := range images {
			img, err := imaging.ReadMat(filepath.Join(dir, name))
			if err != nil {
				img.Close()
				fmt.Printf("  %s: %v\n", name, err)
				failed++
				continue
			}

			ext, err := engine.ExtractFeatures(img)
			img.Close()
			if err != nil {
				fmt.Printf("  %s: %v\n", name, err)
				failed++
				continue
			}

			f := ext.Features
			group := seasonName + "_쿨"
			if f.Warmth > 0 {
				group = seasonName + "_웜"
			}
			record := []string{
				seasonName, subtype,
				ff(f.AMedian), ff(f.BMedian), ff(f.Chroma),
				ff(f.LNormalized), ff(f.LCheekRaw), ff(f.Warmth),
				group, folder, name,
				strconv.FormatBool(ext.EyesDetected),
			}
			ext.Close()

			if err := w.Write(record); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
				os.Exit(1)
			}
			extracted++
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nExtracted %d samples (%d failed) to %s\n", extracted, failed, outputPath)
}

func ff(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
