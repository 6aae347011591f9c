// Package cardio holds the per-request domain logic: parsing a patient
// observation from form fields, the heart-age estimate and the weekly reboot plan.
package cardio

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// FeatureNames is the column order the risk classifier was trained on.
var FeatureNames = []string{
	"gender", "height", "weight", "ap_hi", "ap_lo",
	"cholesterol", "gluc", "smoke", "alco", "active", "Age_Year",
}

// FeatureCount is the length of every feature vector.
const FeatureCount = 11

// Observation is one patient's vitals and lifestyle flags as submitted.
type Observation struct {
	Gender      int     `json:"gender"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	Systolic    float64 `json:"ap_hi"`
	Diastolic   float64 `json:"ap_lo"`
	Cholesterol int     `json:"cholesterol"`
	Glucose     int     `json:"gluc"`
	Smoke       int     `json:"smoke"`
	Alcohol     int     `json:"alco"`
	Active      int     `json:"active"`
	Age         float64 `json:"Age_Year"`
}

// DefaultObservation carries the values used for fields missing from a form.
func DefaultObservation() Observation {
	return Observation{
		Gender:      0,
		Height:      170,
		Weight:      70,
		Systolic:    120,
		Diastolic:   80,
		Cholesterol: 1,
		Glucose:     1,
		Smoke:       0,
		Alcohol:     0,
		Active:      1,
		Age:         45,
	}
}

// Lookup returns a form value and whether the key was present.
// gin.Context.GetPostForm satisfies it.
type Lookup func(key string) (string, bool)

// FieldError reports the form field that could not be parsed.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

var (
	errZeroHeight = errors.New("float division by zero")
	errNonFinite  = errors.New("input contains NaN or infinity")
)

// ParseObservation builds an Observation from form fields. Absent fields take
// their defaults; a present but non-numeric field is an error.
func ParseObservation(lookup Lookup) (Observation, error) {
	obs := DefaultObservation()
	p := parser{lookup: lookup}

	p.int("gender", &obs.Gender)
	p.float("height", &obs.Height)
	p.float("weight", &obs.Weight)
	p.float("ap_hi", &obs.Systolic)
	p.float("ap_lo", &obs.Diastolic)
	p.int("cholesterol", &obs.Cholesterol)
	p.int("gluc", &obs.Glucose)
	p.int("smoke", &obs.Smoke)
	p.int("alco", &obs.Alcohol)
	p.int("active", &obs.Active)
	p.float("Age_Year", &obs.Age)

	if p.err != nil {
		return Observation{}, p.err
	}
	if obs.Height == 0 {
		return Observation{}, &FieldError{Field: "height", Err: errZeroHeight}
	}
	return obs, nil
}

// ParseValues is ParseObservation over url.Values.
func ParseValues(values url.Values) (Observation, error) {
	return ParseObservation(func(key string) (string, bool) {
		v, ok := values[key]
		if !ok || len(v) == 0 {
			return "", false
		}
		return v[0], true
	})
}

// parser keeps the first error and skips the remaining fields after it.
type parser struct {
	lookup Lookup
	err    error
}

func (p *parser) float(field string, dst *float64) {
	if p.err != nil {
		return
	}
	raw, ok := p.lookup(field)
	if !ok {
		return
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		p.err = &FieldError{Field: field, Err: err}
		return
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		p.err = &FieldError{Field: field, Err: errNonFinite}
		return
	}
	*dst = v
}

func (p *parser) int(field string, dst *int) {
	if p.err != nil {
		return
	}
	raw, ok := p.lookup(field)
	if !ok {
		return
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		p.err = &FieldError{Field: field, Err: err}
		return
	}
	*dst = v
}

// Vector returns the classifier input in FeatureNames order.
func (o Observation) Vector() []float64 {
	return []float64{
		float64(o.Gender),
		o.Height,
		o.Weight,
		o.Systolic,
		o.Diastolic,
		float64(o.Cholesterol),
		float64(o.Glucose),
		float64(o.Smoke),
		float64(o.Alcohol),
		float64(o.Active),
		o.Age,
	}
}

// BMI is weight(kg) / height(m)^2.
func (o Observation) BMI() float64 {
	m := o.Height / 100
	return o.Weight / (m * m)
}

// Triggers are the boolean risk flags the reboot plan branches on.
type Triggers struct {
	BPHigh   bool
	Smoker   bool
	Inactive bool
	Obese    bool
}

func (o Observation) Triggers() Triggers {
	return Triggers{
		BPHigh:   o.Systolic >= 140 || o.Diastolic >= 90,
		Smoker:   o.Smoke == 1,
		Inactive: o.Active == 0,
		Obese:    o.BMI() >= 30,
	}
}
