package imaging

import (
	"github.com/rs/zerolog/log"
	"gocv.io/x/gocv"
)

// GrayWorldWhiteBalance applies a partial gray-world correction in LAB space:
// the a* and b* channel means are shifted toward neutral (128) by the given
// fraction, then the image is converted back to BGR. A small strength keeps
// genuine skin chroma while removing ambient color cast.
func GrayWorldWhiteBalance(img gocv.Mat, strength float64) gocv.Mat {
	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(img, &lab, gocv.ColorBGRToLab)

	channels := gocv.Split(lab)
	defer func() {
		for i := range channels {
			channels[i].Close()
		}
	}()

	aMean := channels[1].Mean().Val1
	bMean := channels[2].Mean().Val1
	log.Debug().
		Float64("a_mean", aMean).
		Float64("b_mean", bMean).
		Float64("strength", strength).
		Msg("gray-world white balance")

	// Saturating add clips to [0,255] for 8-bit channels.
	channels[1].AddFloat(float32(-(aMean - 128.0) * strength))
	channels[2].AddFloat(float32(-(bMean - 128.0) * strength))

	merged := gocv.NewMat()
	defer merged.Close()
	gocv.Merge(channels, &merged)

	out := gocv.NewMat()
	gocv.CvtColor(merged, &out, gocv.ColorLabToBGR)
	return out
}
