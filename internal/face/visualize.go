package face

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"tonelab/pkg/colorspace"
)

// DrawLayout renders the detection overlay onto a copy of img: face box,
// eye boxes, and sampling windows, each in its conventional color, with a
// caption naming the layout mode. The caller owns the returned Mat.
func DrawLayout(img gocv.Mat, l *Layout) gocv.Mat {
	vis := img.Clone()
	gocv.Rectangle(&vis, l.Face, colorspace.Green, 2)

	off := l.Face.Min

	if l.Legacy {
		drawRegion(&vis, l.Regions.CheekL, off, colorspace.Blue)
		drawRegion(&vis, l.Regions.CheekR, off, colorspace.Blue)
		return vis
	}

	if l.EyesDetected {
		drawRegion(&vis, l.LeftEye, off, colorspace.Cyan)
		drawRegion(&vis, l.RightEye, off, colorspace.Cyan)
	}
	drawRegion(&vis, l.Regions.Forehead, off, colorspace.Blue)
	drawRegion(&vis, l.Regions.CheekL, off, colorspace.Red)
	drawRegion(&vis, l.Regions.CheekR, off, colorspace.Red)
	drawRegion(&vis, l.Regions.Chin, off, colorspace.Green)

	caption := "Robust Eye-based ROI"
	if !l.EyesDetected {
		caption = "Robust Fallback ROI"
	}
	gocv.PutText(&vis, caption, image.Pt(10, 30), gocv.FontHersheySimplex, 0.7, colorspace.Green, 2)

	return vis
}

func drawRegion(vis *gocv.Mat, r image.Rectangle, off image.Point, c color.RGBA) {
	if r.Empty() {
		return
	}
	gocv.Rectangle(vis, r.Add(off), c, 2)
}
