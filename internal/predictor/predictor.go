// Package predictor loads the serialized cardiovascular risk classifier and
// exposes it behind a small interface.
package predictor

import (
	"fmt"

	"github.com/Skufu/cardiocare/internal/apperrors"
)

// Predictor returns the class label for one feature vector.
type Predictor interface {
	Predict(features []float64) (int, error)
}

// ProbabilityPredictor is implemented by models that can also report class
// probabilities, ordered by class label.
type ProbabilityPredictor interface {
	Predictor
	PredictProbability(features []float64) ([]float64, error)
}

// Prediction is the classifier outcome for one request.
type Prediction struct {
	Label       int     `json:"prediction"`
	Probability float64 `json:"probability"`
}

// Service is the process-wide, read-only handle to a loaded model.
type Service struct {
	model Predictor
	proba ProbabilityPredictor
}

// NewService checks once whether the model reports probabilities.
func NewService(model Predictor) *Service {
	s := &Service{model: model}
	if p, ok := model.(ProbabilityPredictor); ok {
		s.proba = p
	}
	return s
}

func (s *Service) SupportsProbability() bool {
	return s.proba != nil
}

// Assess runs the model. Probability is the positive-class percentage, or 0
// when the model cannot report one.
func (s *Service) Assess(features []float64) (Prediction, error) {
	label, err := s.model.Predict(features)
	if err != nil {
		return Prediction{}, apperrors.Wrap(err, apperrors.ErrPredictFailed)
	}

	out := Prediction{Label: label}
	if s.proba == nil {
		return out, nil
	}

	probs, err := s.proba.PredictProbability(features)
	if err != nil {
		return Prediction{}, apperrors.Wrap(err, apperrors.ErrPredictFailed)
	}
	switch len(probs) {
	case 0:
		return Prediction{}, apperrors.Wrap(fmt.Errorf("model returned no class probabilities"), apperrors.ErrPredictFailed)
	case 1:
		out.Probability = probs[0] * 100
	default:
		out.Probability = probs[1] * 100
	}
	return out, nil
}
