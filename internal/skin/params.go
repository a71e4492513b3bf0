package skin

// Params configures the robust skin mask and per-region statistics.
type Params struct {
	// YCrCb in-range bounds for the coarse mask.
	MaskYMin, MaskYMax   float64
	MaskCrMin, MaskCrMax float64
	MaskCbMin, MaskCbMax float64

	GrayFloor  float64 // Pixels at or below this grayscale value are dropped
	KernelSize int     // Elliptical kernel side for close/open cleanup

	// Strict per-pixel skin re-filter applied during statistics.
	CrMin, CrMax float64
	CbMin, CbMax float64

	RelaxedLFloor   float64 // Lightness floor of the relaxed fallback filter
	MinRegionPixels int     // Fewer qualifying pixels makes a region unusable
	TrimLow         float64 // Percentile trim bounds, applied jointly per channel
	TrimHigh        float64
	MinTrimPixels   int     // Below this survivor count the trim is skipped
}

// DefaultParams returns the robust-pipeline extraction defaults.
func DefaultParams() Params {
	return Params{
		// Wide coarse gate; the strict re-filter below does the real work.
		MaskYMin: 0, MaskYMax: 255,
		MaskCrMin: 110, MaskCrMax: 200,
		MaskCbMin: 50, MaskCbMax: 155,

		GrayFloor:  15,
		KernelSize: 3,

		// Classic skin chroma box in YCrCb.
		CrMin: 133, CrMax: 173,
		CbMin: 77, CbMax: 127,

		// 50/255 rejects only near-black pixels when the strict gate
		// starves a region on edge-lit photos.
		RelaxedLFloor:   50,
		MinRegionPixels: 10,
		TrimLow:         10,
		TrimHigh:        90,
		MinTrimPixels:   5,
	}
}

// LegacyParams configures the legacy cheek-only mask and mean statistics.
type LegacyParams struct {
	MaskYMin, MaskYMax   float64
	MaskCrMin, MaskCrMax float64
	MaskCbMin, MaskCbMax float64

	GrayFloor  float64
	KernelSize int

	DarkFloor        float64 // LAB lightness floor, OpenCV scale
	BrightPercentile float64 // Keep pixels brighter than this L percentile
	MinBrightPixels  int     // Below this the percentile cut is skipped
}

// DefaultLegacyParams returns the legacy-pipeline extraction defaults.
func DefaultLegacyParams() LegacyParams {
	return LegacyParams{
		MaskYMin: 0, MaskYMax: 255,
		MaskCrMin: 131, MaskCrMax: 175,
		MaskCbMin: 73, MaskCbMax: 130,

		GrayFloor:  30,
		KernelSize: 5,

		DarkFloor: 30,
		// Top 70% of the lightness distribution; shadows drag means down.
		BrightPercentile: 30,
		MinBrightPixels:  10,
	}
}
