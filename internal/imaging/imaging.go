// Package imaging provides image decoding and gocv.Mat conversion helpers.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ReadMat loads an image file into a BGR gocv.Mat. Formats are decoded
// through the Go image registry, so everything registered above works
// regardless of how the local OpenCV build was configured.
func ReadMat(path string) (gocv.Mat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to open image: %w", err)
	}
	return DecodeMat(data)
}

// DecodeMat decodes raw image bytes into a BGR gocv.Mat.
func DecodeMat(data []byte) (gocv.Mat, error) {
	if len(data) == 0 {
		return gocv.NewMat(), fmt.Errorf("empty image data")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to decode image: %w", err)
	}
	return ImageToMat(img)
}

// ImageToMat converts a Go image.Image to a gocv.Mat in BGR format.
func ImageToMat(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return gocv.NewMat(), fmt.Errorf("zero-size image")
	}

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}

	return mat, nil
}

// CropRect returns an owned copy of the given rectangle of img.
func CropRect(img gocv.Mat, r image.Rectangle) gocv.Mat {
	region := img.Region(r)
	defer region.Close()
	return region.Clone()
}

// EncodePNGBase64 encodes a Mat as a PNG data URI, the form the HTTP layer
// returns visualizations in.
func EncodePNGBase64(img gocv.Mat) (string, error) {
	buf, err := gocv.IMEncode(gocv.PNGFileExt, img)
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.GetBytes()), nil
}

// SupportedFormats returns the image extensions the batch tools accept.
func SupportedFormats() []string {
	return []string{".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".tif", ".webp"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
