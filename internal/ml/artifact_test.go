package ml

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestArtifactRoundTrip(t *testing.T) {
	X, y := makeBlobs(15, 0.5, 7)
	probes := [][]float64{{5, 5}, {-5, 5}, {5, -5}, {-5, -5}, {1.5, -2}}

	for _, c := range DefaultCandidates() {
		t.Run(c.Name, func(t *testing.T) {
			m := c.New()
			if err := m.Fit(X, y); err != nil {
				t.Fatalf("Fit failed: %v", err)
			}

			path := filepath.Join(t.TempDir(), "model.json")
			if err := SaveModel(path, m, c.Name, []string{"x", "y"}, 0.91, 0.97); err != nil {
				t.Fatalf("SaveModel failed: %v", err)
			}

			art, loaded, err := LoadModel(path)
			if err != nil {
				t.Fatalf("LoadModel failed: %v", err)
			}

			if art.ModelName != c.Name {
				t.Errorf("model name = %q, want %q", art.ModelName, c.Name)
			}
			if !reflect.DeepEqual(art.FeatureCols, []string{"x", "y"}) {
				t.Errorf("feature cols = %v", art.FeatureCols)
			}
			if !reflect.DeepEqual(art.Classes, m.Classes()) {
				t.Errorf("classes = %v, want %v", art.Classes, m.Classes())
			}
			if art.CVScore != 0.91 || art.TrainAcc != 0.97 {
				t.Errorf("scores = (%v, %v), want (0.91, 0.97)", art.CVScore, art.TrainAcc)
			}

			for _, probe := range probes {
				want := m.PredictProba(probe)
				got := loaded.PredictProba(probe)
				for i := range want {
					if math.Abs(got[i]-want[i]) > 1e-12 {
						t.Fatalf("probe %v class %d: %v after reload, want %v", probe, i, got[i], want[i])
					}
				}
			}
		})
	}
}

func TestSaveModel_CreatesDirectories(t *testing.T) {
	X, y := makeBlobs(10, 0.5, 8)
	m := NewLogisticRegression()
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "models", "nested", "model.json")
	if err := SaveModel(path, m, "Logistic Regression", []string{"x", "y"}, 0.9, 0.9); err != nil {
		t.Fatalf("SaveModel failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
}

func TestLoadModel_UnknownModelName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(`{"model_name":"SVM","model":{}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := LoadModel(path)
	if err == nil {
		t.Fatal("unknown model name accepted")
	}
	if !strings.Contains(err.Error(), "unknown model") {
		t.Errorf("error = %v", err)
	}
}

func TestLoadModel_MissingFile(t *testing.T) {
	if _, _, err := LoadModel(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestResolveArtifactPath_ExplicitWins(t *testing.T) {
	got, err := ResolveArtifactPath("/srv/models/season.json")
	if err != nil {
		t.Fatalf("ResolveArtifactPath failed: %v", err)
	}
	if got != "/srv/models/season.json" {
		t.Errorf("path = %q", got)
	}
}
