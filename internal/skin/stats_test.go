package skin

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	oneToTen := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name string
		vals []float64
		p    float64
		want float64
	}{
		{"median of 1..10", oneToTen, 50, 5.5},
		{"p0 is min", oneToTen, 0, 1},
		{"p100 is max", oneToTen, 100, 10},
		{"interpolated p90", oneToTen, 90, 9.1},
		{"interpolated p25", []float64{1, 2, 3, 4}, 25, 1.75},
		{"single value", []float64{7}, 30, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentile(tt.vals, tt.p); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("percentile(%v, %v) = %v, want %v", tt.vals, tt.p, got, tt.want)
			}
		})
	}
}

func TestPercentile_LeavesInputUnsorted(t *testing.T) {
	vals := []float64{3, 1, 2}
	percentile(vals, 50)
	if vals[0] != 3 || vals[1] != 1 || vals[2] != 2 {
		t.Errorf("input reordered to %v", vals)
	}
}

func TestMedian(t *testing.T) {
	if got := median([]float64{3, 1, 2}); got != 2 {
		t.Errorf("odd median = %v, want 2", got)
	}
	if got := median([]float64{4, 1, 3, 2}); got != 2.5 {
		t.Errorf("even median = %v, want 2.5", got)
	}
}

func TestGather(t *testing.T) {
	got := gather([]float64{10, 20, 30, 40}, []int{3, 0})
	if len(got) != 2 || got[0] != 40 || got[1] != 10 {
		t.Errorf("gather = %v, want [40 10]", got)
	}
}

// uniformSamples builds n pixels with constant channel values.
func uniformSamples(n int, l, a, b, cr, cb float64) samples {
	var s samples
	for i := 0; i < n; i++ {
		s.l = append(s.l, l)
		s.a = append(s.a, a)
		s.b = append(s.b, b)
		s.cr = append(s.cr, cr)
		s.cb = append(s.cb, cb)
	}
	return s
}

func TestRegionStats_StrictGate(t *testing.T) {
	p := DefaultParams()
	s := uniformSamples(20, 150, 140, 150, 150, 100)

	got := p.regionStats(s)
	if !got.Valid {
		t.Fatal("region invalid for clean skin samples")
	}
	if got.L != 150 || got.A != 140 || got.B != 150 {
		t.Errorf("stats = (%v, %v, %v), want (150, 140, 150)", got.L, got.A, got.B)
	}
}

func TestRegionStats_RelaxedFallback(t *testing.T) {
	p := DefaultParams()
	// Cr far outside the strict box, but lightness above the relaxed floor.
	s := uniformSamples(20, 150, 140, 150, 200, 100)

	got := p.regionStats(s)
	if !got.Valid {
		t.Fatal("relaxed fallback did not engage")
	}
	if got.L != 150 {
		t.Errorf("L = %v, want 150", got.L)
	}
}

func TestRegionStats_RawFallback(t *testing.T) {
	p := DefaultParams()
	// Fails the strict box and the relaxed lightness floor; enough raw
	// pixels still produce a statistic.
	s := uniformSamples(20, 30, 140, 150, 200, 100)

	got := p.regionStats(s)
	if !got.Valid {
		t.Fatal("raw fallback did not engage")
	}
	if got.L != 30 {
		t.Errorf("L = %v, want 30", got.L)
	}
}

func TestRegionStats_TooFewPixels(t *testing.T) {
	p := DefaultParams()

	if got := p.regionStats(uniformSamples(p.MinRegionPixels-1, 150, 140, 150, 150, 100)); got.Valid {
		t.Errorf("region valid with %d pixels", p.MinRegionPixels-1)
	}
	if got := p.regionStats(samples{}); got.Valid {
		t.Error("region valid with no pixels")
	}
}

func TestRegionStats_MedianResistsOutliers(t *testing.T) {
	p := DefaultParams()
	s := uniformSamples(19, 150, 140, 150, 150, 100)
	// One blown-out highlight pixel.
	s.l = append(s.l, 255)
	s.a = append(s.a, 128)
	s.b = append(s.b, 128)
	s.cr = append(s.cr, 150)
	s.cb = append(s.cb, 100)

	got := p.regionStats(s)
	if !got.Valid {
		t.Fatal("region invalid")
	}
	if got.L != 150 || got.A != 140 || got.B != 150 {
		t.Errorf("stats = (%v, %v, %v), want (150, 140, 150)", got.L, got.A, got.B)
	}
}
