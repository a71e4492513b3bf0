// Package diagnose wires white balance, face detection, skin extraction
// and season classification into the end-to-end diagnosis pipelines.
package diagnose

import (
	"fmt"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"tonelab/internal/config"
	"tonelab/internal/face"
	"tonelab/internal/imaging"
	"tonelab/internal/ml"
	"tonelab/internal/season"
	"tonelab/internal/skin"
)

// Engine runs the configured diagnosis pipeline. Safe for concurrent use
// once constructed.
type Engine struct {
	detector *face.Detector
	strategy season.Strategy

	params       skin.Params
	legacyParams skin.LegacyParams

	pipeline   string
	wbStrength float64
	log        zerolog.Logger
}

// Diagnosis is one finished pipeline run. The caller owns the
// visualization Mat and must Close it exactly once.
type Diagnosis struct {
	Result        *season.Result
	Features      season.Features
	EyesDetected  bool
	Visualization gocv.Mat
}

// Close releases the visualization.
func (d *Diagnosis) Close() { d.Visualization.Close() }

// Extraction is the feature-extraction product for the dataset tooling.
// The caller owns the visualization Mat and must Close it exactly once.
type Extraction struct {
	Features      season.Features
	EyesDetected  bool
	Visualization gocv.Mat
}

// Close releases the visualization.
func (e *Extraction) Close() { e.Visualization.Close() }

// NewEngine resolves the configured assets and assembles the pipeline:
// cascades for the detector, and for the rule strategy the trained season
// model.
func NewEngine(cfg *config.Config, log zerolog.Logger) (*Engine, error) {
	cascadeDir, err := face.ResolveCascadeDir(cfg.CascadeDir)
	if err != nil {
		return nil, err
	}
	cascades, err := face.LoadCascades(cascadeDir)
	if err != nil {
		return nil, err
	}

	var strategy season.Strategy
	switch cfg.Strategy {
	case config.StrategyThreshold:
		strategy = season.NewThresholdStrategy(season.DefaultThresholdConfig(), log)
	case config.StrategyRule:
		modelPath, err := ml.ResolveArtifactPath(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		art, model, err := ml.LoadModel(modelPath)
		if err != nil {
			return nil, fmt.Errorf("load season model: %w", err)
		}
		log.Info().
			Str("model", art.ModelName).
			Float64("cv_score", art.CVScore).
			Str("path", modelPath).
			Msg("season model loaded")
		strategy, err = season.NewRuleStrategy(season.DefaultRuleConfig(), model, log)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}

	if cfg.Pipeline != config.PipelineRobust && cfg.Pipeline != config.PipelineLegacy {
		return nil, fmt.Errorf("unknown pipeline %q", cfg.Pipeline)
	}

	return &Engine{
		detector:     face.NewDetectorDefault(cascades, log),
		strategy:     strategy,
		params:       skin.DefaultParams(),
		legacyParams: skin.DefaultLegacyParams(),
		pipeline:     cfg.Pipeline,
		wbStrength:   cfg.WBStrength,
		log:          log,
	}, nil
}

// Pipeline returns the active pipeline name.
func (e *Engine) Pipeline() string { return e.pipeline }

// StrategyName returns the active classification strategy name.
func (e *Engine) StrategyName() string { return e.strategy.Name() }

// Diagnose runs the full pipeline on a BGR image and classifies the
// extracted features.
func (e *Engine) Diagnose(img gocv.Mat) (*Diagnosis, error) {
	feats, layout, vis, err := e.analyze(img)
	if err != nil {
		return nil, err
	}

	result, err := e.strategy.Classify(feats)
	if err != nil {
		vis.Close()
		return nil, err
	}

	return &Diagnosis{
		Result:        result,
		Features:      feats,
		EyesDetected:  layout.EyesDetected,
		Visualization: vis,
	}, nil
}

// ExtractFeatures runs the pipeline up to the feature vector, without
// classifying.
func (e *Engine) ExtractFeatures(img gocv.Mat) (*Extraction, error) {
	feats, layout, vis, err := e.analyze(img)
	if err != nil {
		return nil, err
	}
	return &Extraction{
		Features:      feats,
		EyesDetected:  layout.EyesDetected,
		Visualization: vis,
	}, nil
}

// analyze runs detection and skin extraction for the configured pipeline
// and renders the overlay. On success the caller owns the returned Mat.
func (e *Engine) analyze(img gocv.Mat) (season.Features, *face.Layout, gocv.Mat, error) {
	if e.pipeline == config.PipelineLegacy {
		return e.analyzeLegacy(img)
	}

	balanced := imaging.GrayWorldWhiteBalance(img, e.wbStrength)
	defer balanced.Close()

	layout, err := e.detector.Detect(balanced)
	if err != nil {
		return season.Features{}, nil, gocv.Mat{}, err
	}

	faceROI := imaging.CropRect(balanced, layout.Face)
	defer faceROI.Close()

	stats, err := skin.ExtractRobust(faceROI, layout.Regions, e.params)
	if err != nil {
		return season.Features{}, nil, gocv.Mat{}, err
	}

	feats := season.FromRegions(stats)
	e.log.Debug().
		Float64("L", feats.LCheekRaw).
		Float64("a", feats.AMedian).
		Float64("b", feats.BMedian).
		Float64("l_norm", feats.LNormalized).
		Float64("warmth", feats.Warmth).
		Bool("eyes", layout.EyesDetected).
		Msg("features extracted")

	return feats, layout, face.DrawLayout(balanced, layout), nil
}

// analyzeLegacy runs the mean-based cheek pipeline on the raw image.
func (e *Engine) analyzeLegacy(img gocv.Mat) (season.Features, *face.Layout, gocv.Mat, error) {
	layout, err := e.detector.DetectLegacy(img)
	if err != nil {
		return season.Features{}, nil, gocv.Mat{}, err
	}

	faceROI := imaging.CropRect(img, layout.Face)
	defer faceROI.Close()

	l, a, b, err := skin.ExtractLegacy(faceROI, layout.Regions, e.legacyParams)
	if err != nil {
		return season.Features{}, nil, gocv.Mat{}, err
	}

	return season.FromLab(l, a, b), layout, face.DrawLayout(img, layout), nil
}
