// Package season classifies skin-tone features into one of the four
// personal color seasons and a subtype. Two interchangeable strategies are
// provided: a threshold-plus-distance classifier over the sixteen-type
// catalog and a rule-tree classifier with range scoring and a model-based
// confidence annotation.
package season

// Classification status bands.
const (
	StatusConfident     = "confident"
	StatusUncertain     = "uncertain"
	StatusRequireExpert = "require_expert"
)

// LabValues is the measured standard-scale LAB triple echoed back with a
// classification.
type LabValues struct {
	L float64 `json:"L"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// BestType is the winning catalog entry of a threshold classification.
type BestType struct {
	Name        string  `json:"name"`
	NameEng     string  `json:"name_eng"`
	Season      string  `json:"season"`
	Description string  `json:"description"`
	Probability float64 `json:"probability"`
}

// Rank is one row of the top-3 ranking.
type Rank struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	Distance    float64 `json:"distance"`
}

// Result is a finished classification. The threshold strategy fills the
// status, message, best-type and ranking fields; the rule strategy fills
// the tone, subtype and reasoning fields. Immutable once returned.
type Result struct {
	Status    string    `json:"status,omitempty"`
	Message   string    `json:"message,omitempty"`
	LabValues LabValues `json:"lab_values"`
	Season    string    `json:"season"`
	BestType  *BestType `json:"best_type,omitempty"`
	Top3      []Rank    `json:"top3,omitempty"`

	Tone             string  `json:"tone,omitempty"`
	Subtype          string  `json:"subtype,omitempty"`
	Subseason        string  `json:"subseason,omitempty"`
	Reason           string  `json:"reason,omitempty"`
	ModelConfidence  string  `json:"model_confidence,omitempty"`
	SeasonConfidence float64 `json:"season_confidence,omitempty"`
}

// Strategy classifies a feature vector into a season and subtype.
type Strategy interface {
	Classify(f Features) (*Result, error)
	Name() string
}
