// Package skin masks skin pixels inside a face ROI and reduces them to
// per-region LAB statistics for tone classification.
package skin

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"

	"gocv.io/x/gocv"

	"tonelab/internal/face"
	"tonelab/pkg/colorspace"
)

// RegionLab is a per-region LAB statistic in OpenCV scale. Valid is false
// when the region had too few usable pixels.
type RegionLab struct {
	L, A, B float64
	Valid   bool
}

// RegionStats holds the robust statistics for the three sampling regions.
// Both cheeks contribute to the single Cheek statistic.
type RegionStats struct {
	Forehead RegionLab
	Cheek    RegionLab
	Chin     RegionLab
}

// samples holds parallel per-pixel channel values collected from one
// region: LAB plus the YCrCb chroma pair, all OpenCV scale.
type samples struct {
	l, a, b []float64
	cr, cb  []float64
}

// ExtractRobust computes median LAB statistics for the forehead, cheek and
// chin regions of a face ROI. The cheek statistic is mandatory; forehead
// and chin may come back invalid on occluded or cropped faces.
func ExtractRobust(faceROI gocv.Mat, regions face.Regions, p Params) (*RegionStats, error) {
	mask := RobustMask(faceROI, p)
	defer mask.Close()

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(faceROI, &lab, gocv.ColorBGRToLab)
	ycrcb := gocv.NewMat()
	defer ycrcb.Close()
	gocv.CvtColor(faceROI, &ycrcb, gocv.ColorBGRToYCrCb)

	stats := &RegionStats{
		Forehead: p.regionStats(collectSamples(lab, ycrcb, mask, regions.Forehead)),
		Cheek:    p.regionStats(collectSamples(lab, ycrcb, mask, regions.CheekL, regions.CheekR)),
		Chin:     p.regionStats(collectSamples(lab, ycrcb, mask, regions.Chin)),
	}
	if !stats.Cheek.Valid {
		return nil, ErrNoCheekSkin
	}
	return stats, nil
}

// ExtractLegacy computes the legacy mean LAB of the cheek mask in standard
// scale, rounded to two decimals.
func ExtractLegacy(faceROI gocv.Mat, regions face.Regions, p LegacyParams) (float64, float64, float64, error) {
	mask := LegacyMask(faceROI, regions, p)
	defer mask.Close()

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(faceROI, &lab, gocv.ColorBGRToLab)
	ycrcb := gocv.NewMat()
	defer ycrcb.Close()
	gocv.CvtColor(faceROI, &ycrcb, gocv.ColorBGRToYCrCb)

	bounds := image.Rect(0, 0, faceROI.Cols(), faceROI.Rows())
	s := collectSamples(lab, ycrcb, mask, bounds)
	if len(s.l) == 0 {
		return 0, 0, 0, ErrNoSkinPixels
	}

	valid := make([]int, 0, len(s.l))
	for i := range s.l {
		if s.l[i] > p.DarkFloor {
			valid = append(valid, i)
		}
	}
	if len(valid) == 0 {
		return 0, 0, 0, ErrTooDark
	}

	lVals := gather(s.l, valid)
	floor := percentile(lVals, p.BrightPercentile)
	bright := make([]int, 0, len(valid))
	for _, i := range valid {
		if s.l[i] > floor {
			bright = append(bright, i)
		}
	}
	if len(bright) < p.MinBrightPixels {
		bright = valid
	}

	l, a, b := colorspace.ToStandard(
		stat.Mean(gather(s.l, bright), nil),
		stat.Mean(gather(s.a, bright), nil),
		stat.Mean(gather(s.b, bright), nil))
	return round2(l), round2(a), round2(b), nil
}

// regionStats reduces one region's samples to a median LAB statistic.
// A strict YCrCb skin gate is tried first, then a relaxed lightness gate,
// then the raw set; too few pixels at the end invalidates the region.
// Survivors are trimmed to the joint inner percentile band per channel
// before the median.
func (p Params) regionStats(s samples) RegionLab {
	n := len(s.l)
	if n == 0 {
		return RegionLab{}
	}

	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if s.cr[i] >= p.CrMin && s.cr[i] <= p.CrMax &&
			s.cb[i] >= p.CbMin && s.cb[i] <= p.CbMax {
			keep = append(keep, i)
		}
	}
	if len(keep) < p.MinRegionPixels {
		relaxed := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if s.l[i] > p.RelaxedLFloor {
				relaxed = append(relaxed, i)
			}
		}
		if len(relaxed) >= p.MinRegionPixels {
			keep = relaxed
		} else {
			keep = keep[:0]
			for i := 0; i < n; i++ {
				keep = append(keep, i)
			}
		}
	}
	if len(keep) < p.MinRegionPixels {
		return RegionLab{}
	}

	l := gather(s.l, keep)
	a := gather(s.a, keep)
	b := gather(s.b, keep)

	lLo, lHi := percentile(l, p.TrimLow), percentile(l, p.TrimHigh)
	aLo, aHi := percentile(a, p.TrimLow), percentile(a, p.TrimHigh)
	bLo, bHi := percentile(b, p.TrimLow), percentile(b, p.TrimHigh)
	trimmed := make([]int, 0, len(l))
	for i := range l {
		if l[i] >= lLo && l[i] <= lHi &&
			a[i] >= aLo && a[i] <= aHi &&
			b[i] >= bLo && b[i] <= bHi {
			trimmed = append(trimmed, i)
		}
	}
	if len(trimmed) >= p.MinTrimPixels {
		l = gather(l, trimmed)
		a = gather(a, trimmed)
		b = gather(b, trimmed)
	}

	return RegionLab{L: median(l), A: median(a), B: median(b), Valid: true}
}

// collectSamples gathers channel values for every masked pixel inside the
// given windows. Windows must already be clamped to the Mat bounds.
func collectSamples(lab, ycrcb, mask gocv.Mat, windows ...image.Rectangle) samples {
	var s samples
	for _, win := range windows {
		for y := win.Min.Y; y < win.Max.Y; y++ {
			for x := win.Min.X; x < win.Max.X; x++ {
				if mask.GetUCharAt(y, x) == 0 {
					continue
				}
				lv := lab.GetVecbAt(y, x)
				cv := ycrcb.GetVecbAt(y, x)
				s.l = append(s.l, float64(lv[0]))
				s.a = append(s.a, float64(lv[1]))
				s.b = append(s.b, float64(lv[2]))
				s.cr = append(s.cr, float64(cv[1]))
				s.cb = append(s.cb, float64(cv[2]))
			}
		}
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
