package predictor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Skufu/cardiocare/internal/apperrors"
	"github.com/Skufu/cardiocare/internal/cardio"
)

const (
	KindLogistic = "logistic"
	KindLinear   = "linear"

	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Artifact is the on-disk description of a trained model.
type Artifact struct {
	Kind         string    `json:"kind" yaml:"kind"`
	Features     []string  `json:"features,omitempty" yaml:"features,omitempty"`
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
	Intercept    float64   `json:"intercept" yaml:"intercept"`
	Threshold    *float64  `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Scaler       *Scaler   `json:"scaler,omitempty" yaml:"scaler,omitempty"`
}

// Loaded is a model ready to serve plus what is known about how it was read.
type Loaded struct {
	Model    Predictor
	Format   string
	Kind     string
	Features []string
}

// Load reads the artifact at path, trying JSON first and YAML second.
func Load(path string) (*Loaded, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.Wrap(fmt.Errorf("model file %s not found", path), apperrors.ErrModelUnavailable)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrModelUnavailable)
	}

	art, format, err := decode(raw)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrModelUnavailable)
	}

	model, err := Build(art)
	if err != nil {
		return nil, err
	}

	features := art.Features
	if len(features) == 0 {
		features = cardio.FeatureNames
	}
	return &Loaded{Model: model, Format: format, Kind: art.Kind, Features: features}, nil
}

func decode(raw []byte) (Artifact, string, error) {
	var art Artifact

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	jsonErr := dec.Decode(&art)
	if jsonErr == nil {
		return art, FormatJSON, nil
	}

	art = Artifact{}
	ydec := yaml.NewDecoder(bytes.NewReader(raw))
	ydec.KnownFields(true)
	yamlErr := ydec.Decode(&art)
	if yamlErr == nil {
		return art, FormatYAML, nil
	}

	return Artifact{}, "", fmt.Errorf("decode model artifact: json: %v; yaml: %v", jsonErr, yamlErr)
}

// Build validates an artifact and constructs the matching model.
func Build(art Artifact) (Predictor, error) {
	if err := validate(art); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrModelInvalid)
	}

	base := linear{
		coefficients: slices.Clone(art.Coefficients),
		intercept:    art.Intercept,
		scaler:       art.Scaler,
	}

	switch art.Kind {
	case KindLogistic:
		base.threshold = 0.5
		if art.Threshold != nil {
			base.threshold = *art.Threshold
		}
		return &LogisticModel{linear: base}, nil
	case KindLinear:
		if art.Threshold != nil {
			base.threshold = *art.Threshold
		}
		return &LinearModel{linear: base}, nil
	default:
		return nil, apperrors.Wrap(fmt.Errorf("unknown model kind %q", art.Kind), apperrors.ErrModelInvalid)
	}
}

func validate(art Artifact) error {
	if len(art.Coefficients) != cardio.FeatureCount {
		return fmt.Errorf("expected %d coefficients, got %d", cardio.FeatureCount, len(art.Coefficients))
	}
	if len(art.Features) > 0 && !slices.Equal(art.Features, cardio.FeatureNames) {
		return fmt.Errorf("feature order %v does not match %v", art.Features, cardio.FeatureNames)
	}
	if art.Scaler != nil {
		if len(art.Scaler.Mean) != cardio.FeatureCount || len(art.Scaler.Scale) != cardio.FeatureCount {
			return fmt.Errorf("scaler must have %d means and scales", cardio.FeatureCount)
		}
		for i, s := range art.Scaler.Scale {
			if s == 0 {
				return fmt.Errorf("scaler scale for %s is zero", cardio.FeatureNames[i])
			}
		}
	}
	return nil
}
