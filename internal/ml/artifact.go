package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultArtifactName is the file the trainer writes and the service loads.
const DefaultArtifactName = "full_season_ml_model.json"

// Artifact is the serialized form of a trained model plus the metadata
// recorded at training time.
type Artifact struct {
	ModelName   string          `json:"model_name"`
	FeatureCols []string        `json:"feature_cols"`
	Classes     []string        `json:"classes"`
	CVScore     float64         `json:"cv_score"`
	TrainAcc    float64         `json:"train_acc"`
	Model       json.RawMessage `json:"model"`
}

// SaveModel writes the model and its training metadata to a JSON file.
func SaveModel(path string, m Model, name string, featureCols []string, cvScore, trainAcc float64) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	art := Artifact{
		ModelName:   name,
		FeatureCols: featureCols,
		Classes:     m.Classes(),
		CVScore:     cvScore,
		TrainAcc:    trainAcc,
		Model:       raw,
	}
	data, err := json.MarshalIndent(&art, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create model directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// LoadModel reads an artifact and reconstructs its model, dispatching the
// concrete type on the recorded model name.
func LoadModel(path string) (*Artifact, Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, nil, fmt.Errorf("parse model artifact: %w", err)
	}

	var m Model
	switch {
	case strings.HasPrefix(art.ModelName, "Logistic Regression"):
		m = &LogisticRegression{}
	case strings.HasPrefix(art.ModelName, "Random Forest"):
		m = &RandomForest{}
	case strings.HasPrefix(art.ModelName, "Gradient Boosting"):
		m = &GradientBoosting{}
	default:
		return nil, nil, fmt.Errorf("unknown model %q in %s", art.ModelName, path)
	}
	if err := json.Unmarshal(art.Model, m); err != nil {
		return nil, nil, fmt.Errorf("parse %s model: %w", art.ModelName, err)
	}
	return &art, m, nil
}

// ResolveArtifactPath returns the season model path. Prefers the explicit
// path when given, then models/ next to the executable, then the user
// config directory.
func ResolveArtifactPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if exe, err := os.Executable(); err == nil {
		libPath := filepath.Join(filepath.Dir(exe), "models", DefaultArtifactName)
		if _, err := os.Stat(libPath); err == nil {
			return libPath, nil
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
	return filepath.Join(configDir, "tonelab", DefaultArtifactName), nil
}
