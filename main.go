// Command tonelab diagnoses a personal color season from a face photo.
//
// Usage: tonelab [options] <image>
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"gocv.io/x/gocv"

	"tonelab/internal/config"
	"tonelab/internal/diagnose"
	"tonelab/internal/imaging"
	"tonelab/internal/logging"
	"tonelab/internal/version"
)

func main() {
	cfg := config.Load()

	var (
		pipeline    = flag.String("pipeline", cfg.Pipeline, "processing pipeline: robust or legacy")
		strategy    = flag.String("strategy", cfg.Strategy, "classification strategy: rule or threshold")
		modelPath   = flag.String("model", cfg.ModelPath, "season model artifact (rule strategy)")
		cascadeDir  = flag.String("cascades", cfg.CascadeDir, "pigo cascade directory")
		visPath     = flag.String("vis", "", "write the detection overlay PNG to this path")
		asJSON      = flag.Bool("json", false, "print the raw result as JSON")
		logLevel    = flag.String("log-level", cfg.LogLevel, "log level: debug, info, warn, error")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <image>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nDiagnoses a personal color season from a face photo.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("tonelab %s\n", version.String())
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	// Override config with command line args
	cfg.Pipeline = *pipeline
	cfg.Strategy = *strategy
	cfg.ModelPath = *modelPath
	cfg.CascadeDir = *cascadeDir
	cfg.LogLevel = *logLevel
	logging.Setup(cfg.LogLevel)

	engine, err := diagnose.NewEngine(cfg, logging.NewComponentLogger("diagnose"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building pipeline: %v\n", err)
		os.Exit(1)
	}

	img, err := imaging.ReadMat(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading image: %v\n", err)
		os.Exit(1)
	}
	defer img.Close()

	diag, err := engine.Diagnose(img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer diag.Close()

	if *visPath != "" {
		if ok := gocv.IMWrite(*visPath, diag.Visualization); !ok {
			fmt.Fprintf(os.Stderr, "Error writing overlay to %s\n", *visPath)
			os.Exit(1)
		}
	}

	if *asJSON {
		out, err := json.MarshalIndent(diag.Result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error serializing result: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	printResult(diag)
	if *visPath != "" {
		fmt.Printf("\n검출 영역 이미지: %s\n", *visPath)
	}
}

func printResult(diag *diagnose.Diagnosis) {
	fmt.Println("=== 퍼스널 컬러 분석 결과 ===")
	if diag.Result.BestType != nil {
		printThresholdResult(diag)
		return
	}
	printRuleResult(diag)
}

// printThresholdResult renders the catalog-distance classification: the
// confidence message, the measured values and the top-3 ranking.
func printThresholdResult(diag *diagnose.Diagnosis) {
	r := diag.Result

	fmt.Printf("\n%s\n", r.Message)

	fmt.Println("\n측정된 LAB 값 (볼 중앙 영역 기준):")
	fmt.Printf("  L* (밝기):  %.1f\n", r.LabValues.L)
	fmt.Printf("  a* (적-녹): %+.1f\n", r.LabValues.A)
	fmt.Printf("  b* (황-청): %+.1f\n", r.LabValues.B)

	fmt.Printf("\n1단계: 4계절 분류 → %s\n", r.Season)
	fmt.Printf("2단계: 세부 타입 → %s (%.1f%%)\n", r.BestType.Name, r.BestType.Probability)
	fmt.Printf("  특징: %s\n", r.BestType.Description)

	fmt.Println("\n상위 3개 가능성 (거리 기반):")
	for i, rank := range r.Top3 {
		fmt.Printf("  %d. %s: %.1f%% (LAB 거리: %.2f)\n",
			i+1, rank.Name, rank.Probability, rank.Distance)
	}
}

// printRuleResult renders the rule-tree classification: the verdict, the
// model confidence, the measured values and the decision trace.
func printRuleResult(diag *diagnose.Diagnosis) {
	r := diag.Result

	fmt.Printf("\n퍼스널 컬러: %s %s (%s)\n", r.Season, r.Subtype, r.Tone)
	fmt.Printf("  기본 계절: %s톤\n", r.Season)
	fmt.Printf("  세부 타입: %s\n", r.Subtype)
	fmt.Printf("  확신도: %s (%.0f%%)\n", r.ModelConfidence, 100*r.SeasonConfidence)

	fmt.Println("\n측정값:")
	fmt.Printf("  L* (밝기, 0~100):       %.1f\n", r.LabValues.L)
	fmt.Printf("  a* (Red-Green, ±60):    %+.1f\n", r.LabValues.A)
	fmt.Printf("  b* (Yellow-Blue, ±60):  %+.1f\n", r.LabValues.B)
	fmt.Printf("  Chroma (채도):          %.1f\n", diag.Features.Chroma)

	fmt.Println("\n분류 근거:")
	for _, line := range strings.Split(r.Reason, "\n") {
		fmt.Printf("  %s\n", line)
	}
}
