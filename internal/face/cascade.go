package face

import (
	"fmt"
	"os"
	"path/filepath"

	pigo "github.com/esimov/pigo/core"
)

// Cascade file names expected inside the cascade directory.
const (
	FaceCascadeFile   = "facefinder"
	PuplocCascadeFile = "puploc"
)

// Cascades bundles the unpacked face and pupil classifiers.
type Cascades struct {
	Face   *pigo.Pigo
	Puploc *pigo.PuplocCascade
}

// LoadCascades reads and unpacks the two binary cascade files from dir.
func LoadCascades(dir string) (*Cascades, error) {
	faceData, err := os.ReadFile(filepath.Join(dir, FaceCascadeFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read face cascade: %w", err)
	}
	faceClassifier, err := pigo.NewPigo().Unpack(faceData)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack face cascade: %w", err)
	}

	puplocData, err := os.ReadFile(filepath.Join(dir, PuplocCascadeFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read puploc cascade: %w", err)
	}
	puplocClassifier, err := pigo.NewPuplocCascade().UnpackCascade(puplocData)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack puploc cascade: %w", err)
	}

	return &Cascades{Face: faceClassifier, Puploc: puplocClassifier}, nil
}

// getCascadeExePath returns the cascades/ directory next to the executable,
// or empty string if it can't be determined.
func getCascadeExePath() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(exe), "cascades")
}

// ResolveCascadeDir returns the directory holding the cascade files.
// Prefers the explicit path when given; falls back to cascades/ next to the
// executable, then to the tonelab directory under the user config dir.
func ResolveCascadeDir(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if exeDir := getCascadeExePath(); exeDir != "" {
		if info, err := os.Stat(exeDir); err == nil && info.IsDir() {
			return exeDir, nil
		}
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine config directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}

	dir := filepath.Join(configDir, "tonelab", "cascades")
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("no cascade directory found (looked for cascades/ beside the executable and %s)", dir)
	}
	return dir, nil
}
