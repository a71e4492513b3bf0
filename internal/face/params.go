package face

// DetectionParams configures the face and pupil cascade passes plus the
// eye plausibility filter.
type DetectionParams struct {
	MinFaceSize int     // Smallest face box the cascade reports, pixels
	ShiftFactor float64 // Detection window shift as a fraction of its size
	ScaleFactor float64 // Multi-scale pyramid step
	ClusterIoU  float64 // Overlap threshold when merging raw detections
	MinQuality  float32 // Cascade score gate
	Perturbs    int     // Pupil localisation perturbation count
	EyeBoxRatio float64 // Synthesized eye box width as a fraction of face width
}

// DefaultParams returns detection defaults tuned for frontal portrait photos.
func DefaultParams() DetectionParams {
	return DetectionParams{
		// Faces under ~100px carry too few cheek pixels to sample reliably.
		MinFaceSize: 100,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ClusterIoU:  0.2,

		// 5.0 rejects the low-scoring clusters that survive on busy
		// backgrounds while keeping soft-lit frontal faces.
		MinQuality: 5.0,

		Perturbs: 63,

		// 0.18 of face width, inside the 10-25% band the plausibility
		// filter accepts for a human eye.
		EyeBoxRatio: 0.18,
	}
}
