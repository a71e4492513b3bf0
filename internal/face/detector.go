// Package face provides face and eye detection plus the skin sampling
// region layout used by the diagnosis pipeline.
package face

import (
	"fmt"
	"image"
	"sort"

	pigo "github.com/esimov/pigo/core"
	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// Layout is the detected face geometry: the face box in image coordinates
// plus face-local eye boxes and sampling windows.
type Layout struct {
	Face         image.Rectangle
	LeftEye      image.Rectangle
	RightEye     image.Rectangle
	EyesDetected bool
	Legacy       bool
	Regions      Regions
}

// Detector locates the dominant face and lays out the skin sampling
// windows. Safe for concurrent use once constructed.
type Detector struct {
	cascades *Cascades
	params   DetectionParams
	log      zerolog.Logger
}

// NewDetector builds a Detector from unpacked cascades. A nil params-free
// caller gets DefaultParams via NewDetectorDefault.
func NewDetector(cascades *Cascades, params DetectionParams, log zerolog.Logger) *Detector {
	return &Detector{cascades: cascades, params: params, log: log}
}

// NewDetectorDefault builds a Detector with default parameters.
func NewDetectorDefault(cascades *Cascades, log zerolog.Logger) *Detector {
	return NewDetector(cascades, DefaultParams(), log)
}

// Detect finds the largest face in a BGR image and lays out the sampling
// regions, eye-anchored when both pupils localize plausibly. Returns
// ErrNoFace when no detection passes the quality gate.
func (d *Detector) Detect(img gocv.Mat) (*Layout, error) {
	best, imgParams, err := d.findFace(img)
	if err != nil {
		return nil, err
	}

	faceRect := detectionRect(best, imgParams.Cols, imgParams.Rows)
	w, h := faceRect.Dx(), faceRect.Dy()

	layout := &Layout{Face: faceRect}

	// Pupil passes seeded left and right of the face center.
	side := int(d.params.EyeBoxRatio * float64(w))
	var candidates []image.Rectangle
	for _, dir := range []int{-1, +1} {
		loc := d.runPuploc(best, imgParams, dir)
		if loc == nil {
			continue
		}
		r := image.Rect(0, 0, side, side).
			Add(image.Pt(loc.Col-side/2-faceRect.Min.X, loc.Row-side/2-faceRect.Min.Y))
		if ValidEyeBox(r, w, h) {
			candidates = append(candidates, r)
		}
	}

	if len(candidates) >= 2 {
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].Min.X < candidates[j].Min.X
		})
		layout.LeftEye = candidates[0]
		layout.RightEye = candidates[len(candidates)-1]
		layout.EyesDetected = true

		leftCY := layout.LeftEye.Min.Y + layout.LeftEye.Dy()/2
		rightCY := layout.RightEye.Min.Y + layout.RightEye.Dy()/2
		eyeLineY := (leftCY + rightCY) / 2
		layout.Regions = EyeAnchoredRegions(w, h, eyeLineY)

		d.log.Debug().
			Int("eye_line_y", eyeLineY).
			Int("face_w", w).Int("face_h", h).
			Msg("eye-anchored region layout")
	} else {
		layout.Regions = FallbackRegions(w, h)
		d.log.Debug().
			Int("eye_candidates", len(candidates)).
			Msg("eye detection failed, using fallback region layout")
	}

	return layout, nil
}

// DetectLegacy finds the largest face and returns the legacy cheek-only
// layout. No eye pass runs.
func (d *Detector) DetectLegacy(img gocv.Mat) (*Layout, error) {
	best, imgParams, err := d.findFace(img)
	if err != nil {
		return nil, err
	}

	faceRect := detectionRect(best, imgParams.Cols, imgParams.Rows)
	return &Layout{
		Face:    faceRect,
		Legacy:  true,
		Regions: LegacyCheekRegions(faceRect.Dx(), faceRect.Dy()),
	}, nil
}

// findFace runs the face cascade and keeps the largest detection above the
// quality gate.
func (d *Detector) findFace(img gocv.Mat) (pigo.Detection, pigo.ImageParams, error) {
	src, err := img.ToImage()
	if err != nil {
		return pigo.Detection{}, pigo.ImageParams{}, fmt.Errorf("converting image: %w", err)
	}
	nrgba := pigo.ImgToNRGBA(src)
	pixels := pigo.RgbToGrayscale(nrgba)
	cols, rows := nrgba.Bounds().Max.X, nrgba.Bounds().Max.Y

	imgParams := pigo.ImageParams{
		Pixels: pixels,
		Rows:   rows,
		Cols:   cols,
		Dim:    cols,
	}

	maxSize := rows
	if cols < rows {
		maxSize = cols
	}
	cParams := pigo.CascadeParams{
		MinSize:     d.params.MinFaceSize,
		MaxSize:     maxSize,
		ShiftFactor: d.params.ShiftFactor,
		ScaleFactor: d.params.ScaleFactor,
		ImageParams: imgParams,
	}

	dets := d.cascades.Face.RunCascade(cParams, 0.0)
	dets = d.cascades.Face.ClusterDetections(dets, d.params.ClusterIoU)

	var best pigo.Detection
	found := false
	for _, det := range dets {
		if det.Q < d.params.MinQuality {
			continue
		}
		if !found || det.Scale > best.Scale {
			best = det
			found = true
		}
	}
	if !found {
		d.log.Debug().Int("raw_detections", len(dets)).Msg("no face above quality gate")
		return pigo.Detection{}, imgParams, ErrNoFace
	}

	return best, imgParams, nil
}

// runPuploc localizes one pupil. dir is -1 for the image-left eye and +1
// for the image-right eye.
func (d *Detector) runPuploc(det pigo.Detection, imgParams pigo.ImageParams, dir int) *pigo.Puploc {
	seed := pigo.Puploc{
		Row:      det.Row - int(0.085*float32(det.Scale)),
		Col:      det.Col + dir*int(0.185*float32(det.Scale)),
		Scale:    float32(det.Scale) * 0.4,
		Perturbs: d.params.Perturbs,
	}
	loc := d.cascades.Puploc.RunDetector(seed, imgParams, 0.0, false)
	if loc.Row > 0 && loc.Col > 0 {
		return loc
	}
	return nil
}

// detectionRect converts a centered square detection into an image-clamped
// rectangle.
func detectionRect(det pigo.Detection, cols, rows int) image.Rectangle {
	half := det.Scale / 2
	return image.Rect(det.Col-half, det.Row-half, det.Col-half+det.Scale, det.Row-half+det.Scale).
		Intersect(image.Rect(0, 0, cols, rows))
}
