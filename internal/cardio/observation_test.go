package cardio

import (
	"errors"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValuesDefaults(t *testing.T) {
	obs, err := ParseValues(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, DefaultObservation(), obs)
}

func TestParseValuesReadsEveryField(t *testing.T) {
	obs, err := ParseValues(url.Values{
		"gender":      {"1"},
		"height":      {"156"},
		"weight":      {"85.5"},
		"ap_hi":       {"140"},
		"ap_lo":       {" 90 "},
		"cholesterol": {"3"},
		"gluc":        {"2"},
		"smoke":       {"1"},
		"alco":        {"1"},
		"active":      {"0"},
		"Age_Year":    {"55"},
	})
	require.NoError(t, err)
	assert.Equal(t, Observation{
		Gender: 1, Height: 156, Weight: 85.5, Systolic: 140, Diastolic: 90,
		Cholesterol: 3, Glucose: 2, Smoke: 1, Alcohol: 1, Active: 0, Age: 55,
	}, obs)
}

func TestParseValuesRejectsMalformed(t *testing.T) {
	cases := map[string]url.Values{
		"non numeric float": {"ap_hi": {"abc"}},
		"empty float":       {"weight": {""}},
		"fractional int":    {"cholesterol": {"1.5"}},
		"non numeric int":   {"smoke": {"yes"}},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseValues(values)
			require.Error(t, err)

			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			for field := range values {
				assert.Equal(t, field, fieldErr.Field)
			}
			assert.True(t, errors.Is(err, strconv.ErrSyntax))
		})
	}
}

func TestParseValuesRejectsNonFinite(t *testing.T) {
	cases := map[string]url.Values{
		"NaN age":       {"Age_Year": {"NaN"}},
		"lower nan":     {"ap_hi": {"nan"}},
		"Inf age":       {"Age_Year": {"Inf"}},
		"signed inf":    {"weight": {"-Inf"}},
		"plus infinity": {"height": {"+Infinity"}},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseValues(values)
			require.Error(t, err)

			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			for field := range values {
				assert.Equal(t, field, fieldErr.Field)
			}
			assert.ErrorIs(t, err, errNonFinite)
		})
	}
}

func TestParseValuesRejectsZeroHeight(t *testing.T) {
	_, err := ParseValues(url.Values{"height": {"0"}})
	require.Error(t, err)
	assert.Equal(t, "height: float division by zero", err.Error())
}

func TestVectorOrder(t *testing.T) {
	o := Observation{
		Gender: 2, Height: 169, Weight: 82, Systolic: 150, Diastolic: 100,
		Cholesterol: 1, Glucose: 1, Smoke: 0, Alcohol: 0, Active: 1, Age: 48,
	}
	assert.Equal(t, []float64{2, 169, 82, 150, 100, 1, 1, 0, 0, 1, 48}, o.Vector())
	assert.Len(t, FeatureNames, FeatureCount)
}

func TestTriggers(t *testing.T) {
	o := Observation{Height: 156, Weight: 85, Systolic: 130, Diastolic: 90, Smoke: 1, Active: 0}
	assert.Equal(t, Triggers{BPHigh: true, Smoker: true, Inactive: true, Obese: true}, o.Triggers())
	assert.InDelta(t, 34.93, o.BMI(), 0.01)

	assert.Equal(t, Triggers{}, DefaultObservation().Triggers())
}
