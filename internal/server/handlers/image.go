// Package handlers implements the HTTP endpoints of the diagnosis API.
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gocv.io/x/gocv"

	"tonelab/internal/diagnose"
	"tonelab/internal/face"
	"tonelab/internal/imaging"
	"tonelab/internal/season"
	"tonelab/internal/skin"
)

// ImageHandler serves the diagnosis endpoints.
type ImageHandler struct {
	engine *diagnose.Engine
}

func NewImageHandler(engine *diagnose.Engine) *ImageHandler {
	return &ImageHandler{engine: engine}
}

type PingResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// PredictResponse wraps a successful classification.
type PredictResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Result  *PredictResult `json:"result"`
}

// PredictResult is the classification plus its encoded overlay.
type PredictResult struct {
	*season.Result
	VisualizationB64 string `json:"visualization_b64,omitempty"`
}

// FeaturesResponse wraps a successful feature extraction.
type FeaturesResponse struct {
	Status   string           `json:"status"`
	Features *FeaturesPayload `json:"features"`
}

// FeaturesPayload is the feature vector plus its encoded overlay.
type FeaturesPayload struct {
	season.Features
	VisualizationB64 string `json:"visualization_b64,omitempty"`
}

// Ping reports service liveness.
func (h *ImageHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Status: "ok", Service: "api_image"})
}

// Predict classifies an uploaded face photo.
func (h *ImageHandler) Predict(c *gin.Context) {
	img, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Invalid image: %v", err)})
		return
	}
	defer img.Close()

	if h.engine == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Classifier not available"})
		return
	}

	diag, err := h.engine.Diagnose(img)
	if err != nil {
		writePipelineError(c, err, "분석 실패")
		return
	}
	defer diag.Close()

	result := &PredictResult{Result: diag.Result}
	if b64, err := imaging.EncodePNGBase64(diag.Visualization); err == nil {
		result.VisualizationB64 = b64
	}

	c.JSON(http.StatusOK, PredictResponse{
		Status:  "success",
		Message: "분석 완료",
		Result:  result,
	})
}

// ExtractFeatures returns the raw feature vector for an uploaded photo.
func (h *ImageHandler) ExtractFeatures(c *gin.Context) {
	img, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Invalid image: %v", err)})
		return
	}
	defer img.Close()

	if h.engine == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Classifier not available"})
		return
	}

	ext, err := h.engine.ExtractFeatures(img)
	if err != nil {
		writePipelineError(c, err, "추출 실패")
		return
	}
	defer ext.Close()

	payload := &FeaturesPayload{Features: ext.Features}
	if b64, err := imaging.EncodePNGBase64(ext.Visualization); err == nil {
		payload.VisualizationB64 = b64
	}

	c.JSON(http.StatusOK, FeaturesResponse{Status: "success", Features: payload})
}

// readUpload decodes the multipart "file" field into a BGR Mat. The caller
// owns the Mat on success.
func readUpload(c *gin.Context) (gocv.Mat, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return gocv.Mat{}, err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return gocv.Mat{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return gocv.Mat{}, err
	}
	if len(data) == 0 {
		return gocv.Mat{}, errors.New("empty file")
	}

	mat, err := imaging.DecodeMat(data)
	if err != nil {
		mat.Close()
		return gocv.Mat{}, err
	}
	return mat, nil
}

// writePipelineError maps expected pipeline failures (no face, no usable
// skin) to 400 with their message; everything else is a 500 under the
// given prefix.
func writePipelineError(c *gin.Context, err error, prefix string) {
	if expectedError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("%s: %v", prefix, err)})
}

func expectedError(err error) bool {
	return errors.Is(err, face.ErrNoFace) ||
		errors.Is(err, skin.ErrNoCheekSkin) ||
		errors.Is(err, skin.ErrNoSkinPixels) ||
		errors.Is(err, skin.ErrTooDark)
}
