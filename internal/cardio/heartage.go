package cardio

import "math"

const maxHeartAge = 100

// HeartAge adjusts the chronological age by additive risk-factor penalties and
// bonuses. The result never drops below Age-5 and never exceeds 100 unless
// Age-5 itself does, in which case the lower bound wins.
func HeartAge(o Observation) int {
	age := o.Age

	switch {
	case o.Systolic >= 140 || o.Diastolic >= 90:
		age += 7
	case o.Systolic >= 130 || o.Diastolic >= 85:
		age += 3
	case o.Systolic < 120 && o.Diastolic < 80:
		age--
	}

	if o.Smoke == 1 {
		age += 5
	}

	bmi := o.BMI()
	if bmi >= 30 {
		age += 6
	} else if bmi >= 25 {
		age += 2
	}

	if o.Cholesterol > 1 {
		age += 2
	}
	if o.Glucose > 1 {
		age += 2
	}

	if o.Active == 0 {
		age += 3
	} else {
		age--
	}

	clamped := math.Max(o.Age-5, math.Min(age, maxHeartAge))
	return int(math.RoundToEven(clamped))
}

// AgeGap is heart age minus chronological age.
func AgeGap(heartAge int, o Observation) float64 {
	return float64(heartAge) - o.Age
}
