package season

import (
	"math"
	"testing"

	"tonelab/internal/skin"
)

func TestFromRegions(t *testing.T) {
	stats := &skin.RegionStats{
		Forehead: skin.RegionLab{L: 160, A: 138, B: 148, Valid: true},
		Cheek:    skin.RegionLab{L: 150, A: 140, B: 150, Valid: true},
		Chin:     skin.RegionLab{L: 150, A: 139, B: 149, Valid: true},
	}

	f := FromRegions(stats)

	if f.AMedian != 12 || f.BMedian != 22 {
		t.Errorf("chromaticity = (%v, %v), want (12, 22)", f.AMedian, f.BMedian)
	}
	if want := math.Sqrt(12*12 + 22*22); math.Abs(f.Chroma-want) > 1e-9 {
		t.Errorf("chroma = %v, want %v", f.Chroma, want)
	}
	if want := 150 * 100.0 / 255.0; math.Abs(f.LCheekRaw-want) > 1e-9 {
		t.Errorf("L raw = %v, want %v", f.LCheekRaw, want)
	}
	// Reference lightness is the forehead/chin average in OpenCV scale.
	if want := 150.0 / 155.0; math.Abs(f.LNormalized-want) > 1e-9 {
		t.Errorf("L normalized = %v, want %v", f.LNormalized, want)
	}
	if f.Warmth != f.BMedian {
		t.Errorf("warmth = %v, want b* %v", f.Warmth, f.BMedian)
	}
	if f.LOpenCV != 150 || f.AOpenCV != 140 || f.BOpenCV != 150 {
		t.Errorf("OpenCV passthrough = (%v, %v, %v)", f.LOpenCV, f.AOpenCV, f.BOpenCV)
	}
}

func TestFromRegions_MissingReferenceRegion(t *testing.T) {
	stats := &skin.RegionStats{
		Cheek: skin.RegionLab{L: 150, A: 140, B: 150, Valid: true},
		Chin:  skin.RegionLab{L: 140, A: 139, B: 149, Valid: true},
	}

	f := FromRegions(stats)
	if f.LNormalized != 1 {
		t.Errorf("L normalized = %v, want 1 without both reference regions", f.LNormalized)
	}
}

func TestFromLab(t *testing.T) {
	f := FromLab(60, 10, 20)

	if f.LCheekRaw != 60 || f.AMedian != 10 || f.BMedian != 20 {
		t.Errorf("standard values = (%v, %v, %v)", f.LCheekRaw, f.AMedian, f.BMedian)
	}
	if f.LNormalized != 1 {
		t.Errorf("L normalized = %v, want 1", f.LNormalized)
	}
	if f.AOpenCV != 138 || f.BOpenCV != 148 {
		t.Errorf("OpenCV chroma = (%v, %v), want (138, 148)", f.AOpenCV, f.BOpenCV)
	}
	if want := 60 * 255.0 / 100.0; f.LOpenCV != want {
		t.Errorf("OpenCV L = %v, want %v", f.LOpenCV, want)
	}
}
