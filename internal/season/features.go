package season

import (
	"tonelab/internal/skin"
	"tonelab/pkg/colorspace"
)

// Features is the canonical classification input derived from the robust
// per-region statistics. Chromaticity values are standard LAB scale; the
// OpenCV-scale cheek medians ride along for compatibility output.
type Features struct {
	AMedian     float64 `json:"a_median"`
	BMedian     float64 `json:"b_median"`
	Chroma      float64 `json:"chroma"`
	LNormalized float64 `json:"L_normalized"`
	LCheekRaw   float64 `json:"L_cheek_raw"`
	Warmth      float64 `json:"warmth_score"`

	LOpenCV float64 `json:"L_opencv"`
	AOpenCV float64 `json:"a_opencv"`
	BOpenCV float64 `json:"b_opencv"`
}

// FromRegions normalizes the per-region cheek statistic into Features.
// Cheek lightness is referenced against the forehead/chin average when
// both are available; otherwise the ratio defaults to 1. Warmth is the
// absolute b* value. Relative in-face warmth was tried and rejected
// because it tracks lighting more than undertone.
func FromRegions(stats *skin.RegionStats) Features {
	l, a, b := colorspace.ToStandard(stats.Cheek.L, stats.Cheek.A, stats.Cheek.B)

	lNorm := 1.0
	if stats.Forehead.Valid && stats.Chin.Valid {
		ref := 0.5*stats.Forehead.L + 0.5*stats.Chin.L
		if ref > 0 {
			lNorm = stats.Cheek.L / ref
		}
	}

	return Features{
		AMedian:     a,
		BMedian:     b,
		Chroma:      colorspace.Chroma(a, b),
		LNormalized: lNorm,
		LCheekRaw:   l,
		Warmth:      b,
		LOpenCV:     stats.Cheek.L,
		AOpenCV:     stats.Cheek.A,
		BOpenCV:     stats.Cheek.B,
	}
}

// FromLab builds Features directly from a standard-scale LAB triple, as
// produced by the legacy extractor. The normalized ratio is unavailable
// and defaults to 1.
func FromLab(l, a, b float64) Features {
	cvL, cvA, cvB := colorspace.FromStandard(l, a, b)
	return Features{
		AMedian:     a,
		BMedian:     b,
		Chroma:      colorspace.Chroma(a, b),
		LNormalized: 1.0,
		LCheekRaw:   l,
		Warmth:      b,
		LOpenCV:     cvL,
		AOpenCV:     cvA,
		BOpenCV:     cvB,
	}
}
