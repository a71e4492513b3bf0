package season

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
)

// ProbabilityModel supplies class probabilities for a feature vector. The
// rule strategy uses it only to annotate its verdict with a confidence
// band; the season itself comes from the decision tree.
type ProbabilityModel interface {
	PredictProba(features []float64) []float64
	Classes() []string
}

// RuleConfig holds the decision thresholds of the rule strategy.
type RuleConfig struct {
	WarmB       float64 // b* above this is a warm tone
	VeryBrightL float64 // L* floor of the bright-warm override
	VeryBrightA float64 // a* floor of the bright-warm override
	WarmSplitL  float64 // L* split between 봄 and 가을
	CoolSplitL  float64 // L* split between 여름 and 겨울
	HighConf    float64 // model probability floor of 높음
	MediumConf  float64 // model probability floor of 중간
}

// DefaultRuleConfig returns the tuned rule thresholds.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		WarmB:       12.0,
		VeryBrightL: 83.0,
		VeryBrightA: 10.0,
		WarmSplitL:  77.0,
		CoolSplitL:  79.0,
		HighConf:    0.6,
		MediumConf:  0.4,
	}
}

// subtypeRange is one subtype's expected feature box. An axis scores +1
// inside its closed range, else minus a tenth of the distance to the
// nearer bound.
type subtypeRange struct {
	name     string
	bLo, bHi float64
	lLo, lHi float64
	aLo, aHi float64
}

// Per-season subtype boxes from the labeled samples. Order matters: the
// first of equally scored entries wins.
var subtypeRanges = map[string][]subtypeRange{
	"봄": {
		{"라이트", -20, 20, 72, 90, -2, 15},
		{"트루", 17, 22, 69, 75, 3, 6},
		{"브라이트", 22, 28, 66, 74, 6, 9},
	},
	"여름": {
		{"라이트", -10, 3, 80, 90, 9, 12},
		{"트루", -4, 2, 65, 70, 7, 10},
		{"뮤트", 2, 12, 58, 85, 5, 11},
	},
	"가을": {
		{"소프트", 16, 18, 58, 72, 8, 11},
		{"딥", 15, 19, 74, 76, 10, 11},
	},
	"겨울": {
		{"브라이트", -12, -6, 68, 72, 6, 8},
		{"트루", -6, 8, 75, 82, 3, 7},
		{"딥", -20, 12, 55, 79, -3, 14},
	},
}

// RuleStrategy classifies by a fixed decision tree over b* and L*, scores
// subtypes against per-season feature boxes, and annotates the verdict
// with a trained model's best season probability.
type RuleStrategy struct {
	cfg   RuleConfig
	model ProbabilityModel
	log   zerolog.Logger
}

// NewRuleStrategy builds a rule strategy. The model is required; its
// probabilities drive the reported confidence band.
func NewRuleStrategy(cfg RuleConfig, model ProbabilityModel, log zerolog.Logger) (*RuleStrategy, error) {
	if model == nil {
		return nil, fmt.Errorf("rule strategy requires a season model")
	}
	return &RuleStrategy{cfg: cfg, model: model, log: log}, nil
}

// Name implements Strategy.
func (s *RuleStrategy) Name() string { return "rule" }

// Classify implements Strategy.
func (s *RuleStrategy) Classify(f Features) (*Result, error) {
	l, a, b := f.LCheekRaw, f.AMedian, f.BMedian

	var tone, seasonName string
	switch {
	case b > s.cfg.WarmB:
		tone = "웜톤"
		if l >= s.cfg.WarmSplitL {
			seasonName = "봄"
		} else {
			seasonName = "가을"
		}
	case l >= s.cfg.VeryBrightL && a >= s.cfg.VeryBrightA:
		tone = "웜톤"
		seasonName = "봄"
	default:
		tone = "쿨톤"
		if l >= s.cfg.CoolSplitL {
			seasonName = "여름"
		} else {
			seasonName = "겨울"
		}
	}

	seasonConf := s.seasonConfidence(f)
	subtype, score := bestSubtype(seasonName, l, a, b)

	confidence := "낮음"
	switch {
	case seasonConf > s.cfg.HighConf:
		confidence = "높음"
	case seasonConf > s.cfg.MediumConf:
		confidence = "중간"
	}

	s.log.Debug().
		Str("season", seasonName).
		Str("subtype", subtype).
		Float64("season_confidence", seasonConf).
		Msg("rule classification")

	return &Result{
		LabValues:        LabValues{L: round1(l), A: round1(a), B: round1(b)},
		Season:           seasonName,
		Tone:             tone,
		Subtype:          subtype,
		Subseason:        seasonName + "_" + subtype,
		Reason:           s.reason(tone, seasonName, subtype, score, l, a, b),
		ModelConfidence:  confidence,
		SeasonConfidence: seasonConf,
	}, nil
}

// seasonConfidence is the model's best class probability for the feature
// vector, assembled in training column order.
func (s *RuleStrategy) seasonConfidence(f Features) float64 {
	probs := s.model.PredictProba([]float64{f.AMedian, f.BMedian, f.Chroma, f.LCheekRaw})
	best := 0.0
	for _, p := range probs {
		if p > best {
			best = p
		}
	}
	return best
}

// bestSubtype scores every subtype box of the season and keeps the first
// highest. Unknown seasons return an empty subtype.
func bestSubtype(seasonName string, l, a, b float64) (string, float64) {
	ranges, ok := subtypeRanges[seasonName]
	if !ok {
		return "", 0
	}
	bestName := ""
	bestScore := math.Inf(-1)
	for _, r := range ranges {
		score := axisScore(b, r.bLo, r.bHi) + axisScore(l, r.lLo, r.lHi) + axisScore(a, r.aLo, r.aHi)
		if score > bestScore {
			bestScore = score
			bestName = r.name
		}
	}
	return bestName, bestScore
}

// axisScore awards one point inside the closed range and subtracts a tenth
// of the distance to the nearer bound outside it.
func axisScore(v, lo, hi float64) float64 {
	if v >= lo && v <= hi {
		return 1
	}
	return -0.1 * math.Min(math.Abs(v-lo), math.Abs(v-hi))
}

// reason assembles the step-by-step explanation, one decision per line.
// The copy quotes fixed bounds; the warm line's printed bound lags the
// cutoff (11 vs 12).
func (s *RuleStrategy) reason(tone, seasonName, subtype string, score, l, a, b float64) string {
	var parts []string
	switch {
	case b > s.cfg.WarmB:
		parts = append(parts, fmt.Sprintf("웜/쿨: b*=%+.1f > 11 → 웜톤", b))
	case l >= s.cfg.VeryBrightL && a >= s.cfg.VeryBrightA:
		parts = append(parts, fmt.Sprintf("웜/쿨: L*=%.1f >= 83 and a*=%+.1f >= 10 (매우 밝음+높은 a*) → 웜톤 (봄)", l, a))
	default:
		parts = append(parts, fmt.Sprintf("웜/쿨: b*=%+.1f ≤ 12 and L*=%.1f < 83 → 쿨톤", b, l))
	}

	if tone == "웜톤" && !(l >= 83 && b <= 11) {
		cmp := "<"
		if l >= s.cfg.WarmSplitL {
			cmp = "≥"
		}
		parts = append(parts, fmt.Sprintf("봄/가을: L*=%.1f %s 77 → %s", l, cmp, seasonName))
	} else if tone == "쿨톤" {
		cmp := "<"
		if l >= s.cfg.CoolSplitL {
			cmp = "≥"
		}
		parts = append(parts, fmt.Sprintf("여름/겨울: L*=%.1f %s 79 → %s", l, cmp, seasonName))
	}

	parts = append(parts, fmt.Sprintf("세부 타입: %s (매칭 점수: %.1f/3)", subtype, score))
	return strings.Join(parts, "\n")
}
