package ml

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "features.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	// BOM and extra columns as written by the extraction tool.
	path := writeCSV(t, "\ufeffseason,subtype,a_median,b_median,chroma,L_raw,eyes_detected\n"+
		"가을,딥,10,15,18,60,true\n"+
		"봄,라이트,12.5,20,23.6,80.2,false\n")

	ds, err := LoadCSV(path, DefaultFeatureCols, LabelCol)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}

	if ds.Len() != 2 {
		t.Fatalf("len = %d, want 2", ds.Len())
	}
	if !reflect.DeepEqual(ds.X[0], []float64{10, 15, 18, 60}) {
		t.Errorf("row 0 = %v", ds.X[0])
	}
	if !reflect.DeepEqual(ds.X[1], []float64{12.5, 20, 23.6, 80.2}) {
		t.Errorf("row 1 = %v", ds.X[1])
	}
	if !reflect.DeepEqual(ds.Y, []string{"가을", "봄"}) {
		t.Errorf("labels = %v", ds.Y)
	}
	if !reflect.DeepEqual(ds.Classes(), []string{"가을", "봄"}) {
		t.Errorf("classes = %v", ds.Classes())
	}
}

func TestLoadCSV_MissingFeatureColumn(t *testing.T) {
	path := writeCSV(t, "season,a_median,b_median,L_raw\n가을,10,15,60\n")

	_, err := LoadCSV(path, DefaultFeatureCols, LabelCol)
	if err == nil {
		t.Fatal("missing column accepted")
	}
	if !strings.Contains(err.Error(), `"chroma"`) {
		t.Errorf("error = %v", err)
	}
}

func TestLoadCSV_MissingLabelColumn(t *testing.T) {
	path := writeCSV(t, "a_median,b_median,chroma,L_raw\n10,15,18,60\n")

	if _, err := LoadCSV(path, DefaultFeatureCols, LabelCol); err == nil {
		t.Fatal("missing label column accepted")
	}
}

func TestLoadCSV_BadValue(t *testing.T) {
	path := writeCSV(t, "season,a_median,b_median,chroma,L_raw\n가을,10,abc,18,60\n")

	_, err := LoadCSV(path, DefaultFeatureCols, LabelCol)
	if err == nil {
		t.Fatal("unparsable value accepted")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("error does not locate the row: %v", err)
	}
}

func TestLoadCSV_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "season,a_median,b_median,chroma,L_raw\n")

	if _, err := LoadCSV(path, DefaultFeatureCols, LabelCol); err == nil {
		t.Fatal("header-only file accepted")
	}
}

func TestDatasetSubset(t *testing.T) {
	ds := &Dataset{
		FeatureCols: []string{"x"},
		X:           [][]float64{{0}, {1}, {2}, {3}},
		Y:           []string{"a", "b", "c", "d"},
	}

	sub := ds.Subset([]int{2, 0})

	if !reflect.DeepEqual(sub.X, [][]float64{{2}, {0}}) {
		t.Errorf("X = %v", sub.X)
	}
	if !reflect.DeepEqual(sub.Y, []string{"c", "a"}) {
		t.Errorf("Y = %v", sub.Y)
	}
}

func TestCountByClass(t *testing.T) {
	ds := &Dataset{Y: []string{"봄", "봄", "겨울"}}

	got := ds.CountByClass()
	if got["봄"] != 2 || got["겨울"] != 1 {
		t.Errorf("counts = %v", got)
	}
}
