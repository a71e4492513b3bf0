package ml

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// DefaultFeatureCols are the feature columns the season models train on.
var DefaultFeatureCols = []string{"a_median", "b_median", "chroma", "L_raw"}

// LabelCol is the dataset column holding the season label.
const LabelCol = "season"

// Dataset holds feature rows with their class labels.
type Dataset struct {
	FeatureCols []string
	X           [][]float64
	Y           []string
}

// LoadCSV reads a feature CSV produced by the extraction tool. The header
// row names the columns; featureCols and labelCol select what to load.
func LoadCSV(path string, featureCols []string, labelCol string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	header := records[0]
	// Tolerate a UTF-8 BOM from spreadsheet-oriented writers.
	header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}

	featIdx := make([]int, len(featureCols))
	for i, name := range featureCols {
		idx, ok := colIndex[name]
		if !ok {
			return nil, fmt.Errorf("%s: missing feature column %q", path, name)
		}
		featIdx[i] = idx
	}
	labelIdx, ok := colIndex[labelCol]
	if !ok {
		return nil, fmt.Errorf("%s: missing label column %q", path, labelCol)
	}

	ds := &Dataset{FeatureCols: featureCols}
	for rowNum, rec := range records[1:] {
		row := make([]float64, len(featIdx))
		for i, idx := range featIdx {
			v, err := strconv.ParseFloat(rec[idx], 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: column %q: %w", path, rowNum+2, featureCols[i], err)
			}
			row[i] = v
		}
		ds.X = append(ds.X, row)
		ds.Y = append(ds.Y, rec[labelIdx])
	}
	return ds, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.X) }

// Classes returns the sorted unique labels of the dataset.
func (d *Dataset) Classes() []string { return uniqueSorted(d.Y) }

// uniqueSorted returns the sorted distinct values of labels.
func uniqueSorted(labels []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, label := range labels {
		if !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}

// CountByClass returns the number of rows per label.
func (d *Dataset) CountByClass() map[string]int {
	counts := make(map[string]int)
	for _, label := range d.Y {
		counts[label]++
	}
	return counts
}

// Subset returns a new dataset restricted to the given row indices.
func (d *Dataset) Subset(indices []int) *Dataset {
	sub := &Dataset{
		FeatureCols: d.FeatureCols,
		X:           make([][]float64, len(indices)),
		Y:           make([]string, len(indices)),
	}
	for i, idx := range indices {
		sub.X[i] = d.X[idx]
		sub.Y[i] = d.Y[idx]
	}
	return sub
}

// labelIndices maps each row label to its index in classes.
func labelIndices(y []string, classes []string) []int {
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	out := make([]int, len(y))
	for i, label := range y {
		out[i] = index[label]
	}
	return out
}
