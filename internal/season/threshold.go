package season

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
)

// ThresholdConfig holds the tuning constants of the threshold strategy.
type ThresholdConfig struct {
	WarmThreshold float64    // b* at or above this reads as a warm tone
	BrightWarm    float64    // L* split between 봄 and 가을
	BrightCool    float64    // L* split between 여름 and 겨울
	Weights       [3]float64 // distance weights for L, a, b
	Temperature   float64    // softmax temperature, lower concentrates mass
	ConfidentBand float64    // probability floor of the confident status
	UncertainBand float64    // probability floor of the uncertain status
}

// DefaultThresholdConfig returns the tuned thresholds. Splits come from
// labeled-sample medians; the warm split sits higher than the cool one to
// balance the 봄/가을 boundary.
func DefaultThresholdConfig() ThresholdConfig {
	return ThresholdConfig{
		WarmThreshold: 4.0,
		BrightWarm:    67.0,
		BrightCool:    62.0,
		Weights:       [3]float64{2.0, 1.5, 1.0},
		Temperature:   1.5,
		ConfidentBand: 60,
		UncertainBand: 40,
	}
}

// relativeTable places a measurement within one season by its position
// against the season's sample medians. types is indexed [bright][strong].
type relativeTable struct {
	lMid, bMid float64
	warm       bool
	types      [2][2]string
}

// Per-season medians from the labeled samples; 가을 was nudged from its
// raw median (59.4, 8.8) to balance the 가을 딥 cell.
var relativeTables = map[string]relativeTable{
	"봄": {72.6, 17.8, true, [2][2]string{
		{"봄 클리어", "봄 트루"},
		{"봄 라이트", "봄 브라이트"},
	}},
	"여름": {65.0, -2.4, false, [2][2]string{
		{"여름 뮤트", "여름 트루"},
		{"여름 소프트", "여름 라이트"},
	}},
	"가을": {60.5, 9.5, true, [2][2]string{
		{"가을 딥", "가을 트루"},
		{"가을 뮤트", "가을 소프트"},
	}},
	"겨울": {59.4, -2.6, false, [2][2]string{
		{"겨울 딥", "겨울 트루"},
		{"겨울 클리어", "겨울 브라이트"},
	}},
}

// ThresholdStrategy classifies by fixed warm/bright thresholds, then picks
// the subtype from the season's relative table, with weighted catalog
// distances supplying probabilities and the top-3 ranking.
type ThresholdStrategy struct {
	cfg ThresholdConfig
	log zerolog.Logger
}

// NewThresholdStrategy builds a threshold strategy with the given config.
func NewThresholdStrategy(cfg ThresholdConfig, log zerolog.Logger) *ThresholdStrategy {
	return &ThresholdStrategy{cfg: cfg, log: log}
}

// Name implements Strategy.
func (s *ThresholdStrategy) Name() string { return "threshold" }

// Classify implements Strategy.
func (s *ThresholdStrategy) Classify(f Features) (*Result, error) {
	l, a, b := f.LCheekRaw, f.AMedian, f.BMedian

	seasonName := s.classifySeason(l, b)
	subtype, haveSubtype := relativeSubtype(l, b, seasonName)

	types := SeasonTypes(seasonName)
	distances := make(map[string]float64, len(types))
	for _, ct := range types {
		distances[ct.Subtype] = s.weightedDistance(l, a, b, ct)
	}
	probs := s.probabilities(distances)

	ranking := make([]Rank, 0, len(types))
	for _, ct := range types {
		ranking = append(ranking, Rank{
			Name:        ct.Subtype,
			Probability: probs[ct.Subtype],
			Distance:    distances[ct.Subtype],
		})
	}
	// Stable keeps catalog order on ties.
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Probability > ranking[j].Probability
	})
	top3 := ranking[:3]

	var best ColorType
	var confidence float64
	if haveSubtype {
		best, _ = BySubtype(subtype)
		confidence = probs[subtype]
	} else {
		// Distance fallback when the season has no relative table.
		best, _ = BySubtype(top3[0].Name)
		confidence = top3[0].Probability
	}

	var status, message string
	switch {
	case confidence >= s.cfg.ConfidentBand:
		status = StatusConfident
		message = fmt.Sprintf("당신의 퍼스널컬러는 **%s**입니다!", best.Subtype)
	case confidence >= s.cfg.UncertainBand:
		status = StatusUncertain
		message = fmt.Sprintf("**%s** 또는 **%s**일 가능성이 높습니다.", best.Subtype, top3[1].Name)
	default:
		status = StatusRequireExpert
		message = "AI 분석으로는 정확한 판단이 어렵습니다. 전문가 상담을 권장합니다."
	}

	s.log.Debug().
		Str("season", seasonName).
		Str("subtype", best.Subtype).
		Float64("confidence", confidence).
		Msg("threshold classification")

	out := make([]Rank, len(top3))
	for i, r := range top3 {
		out[i] = Rank{Name: r.Name, Probability: round1(r.Probability), Distance: round2(r.Distance)}
	}

	return &Result{
		Status:    status,
		Message:   message,
		LabValues: LabValues{L: l, A: a, B: b},
		Season:    seasonName,
		BestType: &BestType{
			Name:        best.Subtype,
			NameEng:     best.SubtypeEng,
			Season:      best.Season,
			Description: best.Description,
			Probability: round1(confidence),
		},
		Top3: out,
	}, nil
}

// classifySeason buckets a measurement into one of the four seasons. Warm
// and cool tones get different brightness splits.
func (s *ThresholdStrategy) classifySeason(l, b float64) string {
	isWarm := b >= s.cfg.WarmThreshold
	var isBright bool
	if isWarm {
		isBright = l >= s.cfg.BrightWarm
	} else {
		isBright = l >= s.cfg.BrightCool
	}
	switch {
	case isWarm && isBright:
		return "봄"
	case isWarm:
		return "가을"
	case isBright:
		return "여름"
	default:
		return "겨울"
	}
}

// relativeSubtype resolves the subtype from the season's relative table.
// Warm seasons read strength as high b*, cool seasons as low b*.
func relativeSubtype(l, b float64, seasonName string) (string, bool) {
	t, ok := relativeTables[seasonName]
	if !ok {
		return "", false
	}
	bright := l >= t.lMid
	var strong bool
	if t.warm {
		strong = b >= t.bMid
	} else {
		strong = b <= t.bMid
	}
	return t.types[b2i(bright)][b2i(strong)], true
}

// weightedDistance is the Euclidean distance with per-axis weights applied
// to the differences before squaring.
func (s *ThresholdStrategy) weightedDistance(l, a, b float64, ct ColorType) float64 {
	dl := s.cfg.Weights[0] * (l - ct.L)
	da := s.cfg.Weights[1] * (a - ct.A)
	db := s.cfg.Weights[2] * (b - ct.B)
	return math.Sqrt(dl*dl + da*da + db*db)
}

// probabilities converts distances to percentages with a tempered softmax.
// Shorter distances get more mass; the max shift guards against overflow.
func (s *ThresholdStrategy) probabilities(distances map[string]float64) map[string]float64 {
	maxNeg := math.Inf(-1)
	for _, d := range distances {
		if v := -d / s.cfg.Temperature; v > maxNeg {
			maxNeg = v
		}
	}
	probs := make(map[string]float64, len(distances))
	var total float64
	for k, d := range distances {
		e := math.Exp(-d/s.cfg.Temperature - maxNeg)
		probs[k] = e
		total += e
	}
	for k := range probs {
		probs[k] = probs[k] / total * 100
	}
	return probs
}

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
