package season

import (
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// stubModel returns fixed probabilities regardless of input.
type stubModel struct {
	classes []string
	probs   []float64
}

func (m *stubModel) PredictProba([]float64) []float64 { return m.probs }
func (m *stubModel) Classes() []string                { return m.classes }

func newRule(t *testing.T, probs []float64) *RuleStrategy {
	t.Helper()
	model := &stubModel{classes: []string{"가을", "겨울", "봄", "여름"}, probs: probs}
	s, err := NewRuleStrategy(DefaultRuleConfig(), model, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRuleStrategy failed: %v", err)
	}
	return s
}

func TestNewRuleStrategy_RequiresModel(t *testing.T) {
	if _, err := NewRuleStrategy(DefaultRuleConfig(), nil, zerolog.Nop()); err == nil {
		t.Fatal("nil model accepted")
	}
}

func TestRuleClassify_WinterDeep(t *testing.T) {
	s := newRule(t, []float64{0.1, 0.7, 0.1, 0.1})

	res, err := s.Classify(Features{LCheekRaw: 60, AMedian: 5, BMedian: 9, Chroma: math.Hypot(5, 9)})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if res.Tone != "쿨톤" {
		t.Errorf("tone = %s, want 쿨톤", res.Tone)
	}
	if res.Season != "겨울" {
		t.Errorf("season = %s, want 겨울", res.Season)
	}
	// 딥 matches all three axis boxes; 트루 and 브라이트 miss on L*.
	if res.Subtype != "딥" {
		t.Errorf("subtype = %s, want 딥", res.Subtype)
	}
	if res.Subseason != "겨울_딥" {
		t.Errorf("subseason = %s, want 겨울_딥", res.Subseason)
	}
	if res.SeasonConfidence != 0.7 {
		t.Errorf("season confidence = %v, want 0.7", res.SeasonConfidence)
	}
	if res.ModelConfidence != "높음" {
		t.Errorf("model confidence = %s, want 높음", res.ModelConfidence)
	}
	if !strings.Contains(res.Reason, "매칭 점수: 3.0/3") {
		t.Errorf("reason %q does not report the full match", res.Reason)
	}
}

func TestRuleClassify_SeasonTree(t *testing.T) {
	s := newRule(t, []float64{0.25, 0.25, 0.25, 0.25})

	tests := []struct {
		name       string
		l, a, b    float64
		wantTone   string
		wantSeason string
	}{
		{"warm bright spring", 80, 8, 15, "웜톤", "봄"},
		{"warm dark autumn", 70, 8, 15, "웜톤", "가을"},
		{"warm split boundary", 77, 8, 15, "웜톤", "봄"},
		{"very bright override", 84, 11, 5, "웜톤", "봄"},
		{"override needs high a", 84, 9, 5, "쿨톤", "여름"},
		{"cool bright summer", 80, 5, 5, "쿨톤", "여름"},
		{"cool dark winter", 78, 5, 5, "쿨톤", "겨울"},
		{"warm boundary stays cool", 82, 5, 12, "쿨톤", "여름"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Classify(Features{LCheekRaw: tt.l, AMedian: tt.a, BMedian: tt.b})
			if err != nil {
				t.Fatalf("Classify failed: %v", err)
			}
			if res.Tone != tt.wantTone || res.Season != tt.wantSeason {
				t.Errorf("(%v, %v, %v) = %s %s, want %s %s",
					tt.l, tt.a, tt.b, res.Tone, res.Season, tt.wantTone, tt.wantSeason)
			}
		})
	}
}

func TestRuleClassify_ConfidenceBands(t *testing.T) {
	tests := []struct {
		name  string
		probs []float64
		want  string
	}{
		{"high", []float64{0.7, 0.1, 0.1, 0.1}, "높음"},
		{"high boundary is exclusive", []float64{0.6, 0.2, 0.1, 0.1}, "중간"},
		{"medium", []float64{0.5, 0.3, 0.1, 0.1}, "중간"},
		{"medium boundary is exclusive", []float64{0.4, 0.3, 0.2, 0.1}, "낮음"},
		{"low", []float64{0.3, 0.3, 0.2, 0.2}, "낮음"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newRule(t, tt.probs)
			res, err := s.Classify(Features{LCheekRaw: 60, AMedian: 5, BMedian: 9})
			if err != nil {
				t.Fatalf("Classify failed: %v", err)
			}
			if res.ModelConfidence != tt.want {
				t.Errorf("confidence = %s, want %s", res.ModelConfidence, tt.want)
			}
		})
	}
}

func TestRuleClassify_ReasonTrace(t *testing.T) {
	s := newRule(t, []float64{0.25, 0.25, 0.25, 0.25})

	res, err := s.Classify(Features{LCheekRaw: 60, AMedian: 5, BMedian: 9})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	lines := strings.Split(res.Reason, "\n")
	if len(lines) != 3 {
		t.Fatalf("reason has %d lines: %q", len(lines), res.Reason)
	}
	if want := "웜/쿨: b*=+9.0 ≤ 12 and L*=60.0 < 83 → 쿨톤"; lines[0] != want {
		t.Errorf("line 1 = %q, want %q", lines[0], want)
	}
	if want := "여름/겨울: L*=60.0 < 79 → 겨울"; lines[1] != want {
		t.Errorf("line 2 = %q, want %q", lines[1], want)
	}
	if want := "세부 타입: 딥 (매칭 점수: 3.0/3)"; lines[2] != want {
		t.Errorf("line 3 = %q, want %q", lines[2], want)
	}
}

func TestRuleClassify_BrightOverrideReason(t *testing.T) {
	s := newRule(t, []float64{0.25, 0.25, 0.25, 0.25})

	res, err := s.Classify(Features{LCheekRaw: 84, AMedian: 11, BMedian: 5})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if !strings.Contains(res.Reason, "매우 밝음") {
		t.Errorf("override reason missing: %q", res.Reason)
	}
	// The override already names 봄; no second split line follows.
	if strings.Contains(res.Reason, "봄/가을") {
		t.Errorf("override should skip the season split line: %q", res.Reason)
	}
}

func TestBestSubtype_TieKeepsFirst(t *testing.T) {
	// b* and a* inside both 가을 boxes, L* one unit outside each, so 소프트
	// and 딥 score identically and the earlier entry wins.
	subtype, score := bestSubtype("가을", 73, 10.5, 17)
	if subtype != "소프트" {
		t.Errorf("subtype = %s, want 소프트", subtype)
	}
	if math.Abs(score-1.9) > 1e-9 {
		t.Errorf("score = %v, want 1.9", score)
	}
}

func TestBestSubtype_UnknownSeason(t *testing.T) {
	if subtype, _ := bestSubtype("장마", 70, 5, 5); subtype != "" {
		t.Errorf("unknown season produced subtype %q", subtype)
	}
}

func TestAxisScore(t *testing.T) {
	if got := axisScore(5, 0, 10); got != 1 {
		t.Errorf("inside score = %v, want 1", got)
	}
	if got := axisScore(0, 0, 10); got != 1 {
		t.Errorf("boundary score = %v, want 1", got)
	}
	if got := axisScore(12, 0, 10); math.Abs(got-(-0.2)) > 1e-9 {
		t.Errorf("outside score = %v, want -0.2", got)
	}
	if got := axisScore(-30, 0, 10); math.Abs(got-(-3.0)) > 1e-9 {
		t.Errorf("far outside score = %v, want -3.0", got)
	}
}

func TestRuleClassify_RoundsLabValues(t *testing.T) {
	s := newRule(t, []float64{0.25, 0.25, 0.25, 0.25})

	res, err := s.Classify(Features{LCheekRaw: 60.127, AMedian: 5.04, BMedian: 9.96})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if res.LabValues != (LabValues{L: 60.1, A: 5, B: 10}) {
		t.Errorf("lab values = %+v, want rounded (60.1, 5, 10)", res.LabValues)
	}
}
