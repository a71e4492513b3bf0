package face

import "image"

// Regions holds the face-local sampling windows for the skin areas. The two
// cheek windows are symmetric and share a single mask downstream. In the
// legacy layout only the cheek windows are populated.
type Regions struct {
	Forehead image.Rectangle
	CheekL   image.Rectangle
	CheekR   image.Rectangle
	Chin     image.Rectangle
}

// EyeAnchoredRegions lays out the sampling windows relative to the detected
// eye line. Vertical anchors are fractions of the face height: the cheek row
// sits two steps below the eye line (cheekbone +15%, lower cheek +12%), the
// forehead row 15% above it but never higher than the 15% line, and the chin
// row 15% below the cheek row capped at the 75% line.
func EyeAnchoredRegions(w, h, eyeLineY int) Regions {
	cheekboneY := eyeLineY + int(0.15*float64(h))
	lowerCheekY := cheekboneY + int(0.12*float64(h))

	foreheadY := eyeLineY - int(0.15*float64(h))
	if floor := int(0.15 * float64(h)); foreheadY < floor {
		foreheadY = floor
	}

	chinY := lowerCheekY + int(0.15*float64(h))
	if ceil := int(0.75 * float64(h)); chinY > ceil {
		chinY = ceil
	}

	return regionsAt(w, h, foreheadY, lowerCheekY, chinY)
}

// FallbackRegions lays out the sampling windows at fixed face fractions,
// used when fewer than two plausible eyes are found.
func FallbackRegions(w, h int) Regions {
	return regionsAt(w, h,
		int(0.15*float64(h)),
		int(0.50*float64(h)),
		int(0.70*float64(h)))
}

func regionsAt(w, h, foreheadY, cheekY, chinY int) Regions {
	bounds := image.Rect(0, 0, w, h)

	// Cheek window height tracks face width so the sampled patch keeps its
	// proportions across face sizes.
	cheekH := int(0.12 * float64(w))

	fx := int(0.30 * float64(w))
	cxL := int(0.15 * float64(w))
	cxR := int(0.67 * float64(w))
	chx := int(0.35 * float64(w))

	return Regions{
		Forehead: image.Rect(fx, foreheadY, fx+int(0.40*float64(w)), foreheadY+int(0.08*float64(h))).Intersect(bounds),
		CheekL:   image.Rect(cxL, cheekY, cxL+int(0.18*float64(w)), cheekY+cheekH).Intersect(bounds),
		CheekR:   image.Rect(cxR, cheekY, cxR+int(0.18*float64(w)), cheekY+cheekH).Intersect(bounds),
		Chin:     image.Rect(chx, chinY, chx+int(0.30*float64(w)), chinY+int(0.08*float64(h))).Intersect(bounds),
	}
}

// LegacyCheekRegions returns the fixed cheek windows of the legacy pipeline.
// Both boxes are squares whose side tracks face width, placed at the 45%
// height line.
func LegacyCheekRegions(w, h int) Regions {
	bounds := image.Rect(0, 0, w, h)
	y := int(0.45 * float64(h))
	side := int(0.15 * float64(w))
	xL := int(0.15 * float64(w))
	xR := int(0.70 * float64(w))
	return Regions{
		CheekL: image.Rect(xL, y, xL+side, y+side).Intersect(bounds),
		CheekR: image.Rect(xR, y, xR+side, y+side).Intersect(bounds),
	}
}

// ValidEyeBox reports whether a face-local eye candidate passes the
// plausibility filter: width within [10%,25%] of face width and vertical
// center within [20%,45%] of face height.
func ValidEyeBox(r image.Rectangle, w, h int) bool {
	ew := float64(r.Dx())
	cy := float64(r.Min.Y + r.Dy()/2)
	if ew < 0.1*float64(w) || ew > 0.25*float64(w) {
		return false
	}
	if cy < 0.2*float64(h) || cy > 0.45*float64(h) {
		return false
	}
	return true
}
