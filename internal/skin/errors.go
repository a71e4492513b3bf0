package skin

import "errors"

// Extraction errors carry user-facing Korean messages. The service layer
// returns them to clients verbatim.
var (
	// ErrNoCheekSkin is returned by the robust extractor when the cheek
	// region yields no usable skin statistic.
	ErrNoCheekSkin = errors.New("볼 영역에서 유효한 피부를 찾을 수 없습니다.")

	// ErrNoSkinPixels is returned by the legacy extractor when the mask
	// selects no pixels at all.
	ErrNoSkinPixels = errors.New("유효한 피부 영역을 찾을 수 없습니다.")

	// ErrTooDark is returned by the legacy extractor when every masked
	// pixel fails the lightness floor.
	ErrTooDark = errors.New("유효한 밝기의 피부 영역을 찾을 수 없습니다. 조명을 확인해주세요.")
)
