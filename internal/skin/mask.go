package skin

import (
	"image"

	"gocv.io/x/gocv"

	"tonelab/internal/face"
	"tonelab/pkg/colorspace"
)

// RobustMask builds the binary skin mask for a face ROI. Pixels must fall
// inside the YCrCb bounds and above the grayscale floor; an elliptical
// close then open pass removes speckle. Caller owns the returned Mat.
func RobustMask(img gocv.Mat, p Params) gocv.Mat {
	mask := rangeMask(img,
		gocv.NewScalar(p.MaskYMin, p.MaskCrMin, p.MaskCbMin, 0),
		gocv.NewScalar(p.MaskYMax, p.MaskCrMax, p.MaskCbMax, 0),
		p.GrayFloor, p.KernelSize)
	return mask
}

// LegacyMask builds the legacy cheek mask: the same YCrCb gate with the
// legacy bounds, restricted to the two cheek rectangles.
func LegacyMask(img gocv.Mat, regions face.Regions, p LegacyParams) gocv.Mat {
	mask := rangeMask(img,
		gocv.NewScalar(p.MaskYMin, p.MaskCrMin, p.MaskCbMin, 0),
		gocv.NewScalar(p.MaskYMax, p.MaskCrMax, p.MaskCbMax, 0),
		p.GrayFloor, p.KernelSize)

	cheeks := gocv.NewMatWithSize(img.Rows(), img.Cols(), gocv.MatTypeCV8U)
	defer cheeks.Close()
	gocv.Rectangle(&cheeks, regions.CheekL, colorspace.White, -1)
	gocv.Rectangle(&cheeks, regions.CheekR, colorspace.White, -1)
	gocv.BitwiseAnd(mask, cheeks, &mask)

	return mask
}

func rangeMask(img gocv.Mat, lower, upper gocv.Scalar, grayFloor float64, kernelSize int) gocv.Mat {
	ycrcb := gocv.NewMat()
	defer ycrcb.Close()
	gocv.CvtColor(img, &ycrcb, gocv.ColorBGRToYCrCb)

	mask := gocv.NewMat()
	gocv.InRangeWithScalar(ycrcb, lower, upper, &mask)

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	bright := gocv.NewMat()
	defer bright.Close()
	gocv.Threshold(gray, &bright, float32(grayFloor), 255, gocv.ThresholdBinary)
	gocv.BitwiseAnd(mask, bright, &mask)

	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(kernelSize, kernelSize))
	defer kernel.Close()
	gocv.MorphologyEx(mask, &mask, gocv.MorphClose, kernel)
	gocv.MorphologyEx(mask, &mask, gocv.MorphOpen, kernel)

	return mask
}
