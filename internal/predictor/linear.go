package predictor

import (
	"fmt"
	"math"
)

// Scaler standardises each feature as (x - mean) / scale before the model sees it.
type Scaler struct {
	Mean  []float64 `json:"mean" yaml:"mean"`
	Scale []float64 `json:"scale" yaml:"scale"`
}

func (s *Scaler) transform(x []float64) []float64 {
	if s == nil {
		return x
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.Mean[i]) / s.Scale[i]
	}
	return out
}

// linear is the weighted sum shared by both model kinds.
type linear struct {
	coefficients []float64
	intercept    float64
	threshold    float64
	scaler       *Scaler
}

func (l linear) decision(features []float64) (float64, error) {
	if len(features) != len(l.coefficients) {
		return 0, fmt.Errorf("X has %d features, but model is expecting %d features as input", len(features), len(l.coefficients))
	}
	z := l.intercept
	for i, v := range l.scaler.transform(features) {
		z += l.coefficients[i] * v
	}
	return z, nil
}

// LogisticModel is a binary logistic regression. It reports probabilities.
type LogisticModel struct {
	linear
}

func (m *LogisticModel) PredictProbability(features []float64) ([]float64, error) {
	z, err := m.decision(features)
	if err != nil {
		return nil, err
	}
	p := 1 / (1 + math.Exp(-z))
	return []float64{1 - p, p}, nil
}

func (m *LogisticModel) Predict(features []float64) (int, error) {
	probs, err := m.PredictProbability(features)
	if err != nil {
		return 0, err
	}
	if probs[1] > m.threshold {
		return 1, nil
	}
	return 0, nil
}

// LinearModel classifies by the sign of its decision function and has no
// probability output, like a linear SVM.
type LinearModel struct {
	linear
}

func (m *LinearModel) Predict(features []float64) (int, error) {
	z, err := m.decision(features)
	if err != nil {
		return 0, err
	}
	if z > m.threshold {
		return 1, nil
	}
	return 0, nil
}

// DecisionFunction returns the signed distance to the separating hyperplane.
func (m *LinearModel) DecisionFunction(features []float64) (float64, error) {
	return m.decision(features)
}
