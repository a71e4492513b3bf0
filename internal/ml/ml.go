// Package ml implements the season classifiers trained on extracted skin
// features: multinomial logistic regression, random forests and gradient
// boosting, selected against each other by stratified cross-validation.
package ml

import "math"

// Model predicts class membership probabilities for one feature vector.
type Model interface {
	// PredictProba returns one probability per class, aligned with Classes.
	PredictProba(features []float64) []float64
	// Classes returns the class labels in probability order.
	Classes() []string
}

// Trainable is a Model that can be fit to labeled feature rows.
type Trainable interface {
	Model
	Fit(X [][]float64, y []string) error
}

// Predict returns the most probable class and its probability.
func Predict(m Model, features []float64) (string, float64) {
	probs := m.PredictProba(features)
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return m.Classes()[best], probs[best]
}

// MaxProba returns the highest class probability for a feature vector.
func MaxProba(m Model, features []float64) float64 {
	_, p := Predict(m, features)
	return p
}

// softmaxInPlace rewrites logits as probabilities, shifting by the row max
// for numeric stability.
func softmaxInPlace(logits []float64) {
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}
	sum := 0.0
	for i, v := range logits {
		e := math.Exp(v - maxLogit)
		logits[i] = e
		sum += e
	}
	for i := range logits {
		logits[i] /= sum
	}
}
