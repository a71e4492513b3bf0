package face

import "errors"

// ErrNoFace indicates that no face passed the detection quality gate.
// The message is surfaced verbatim to end users by the service layer.
var ErrNoFace = errors.New("얼굴을 검출할 수 없습니다.")
